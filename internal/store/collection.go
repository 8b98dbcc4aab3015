package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// Исходы загрузки коллекции для метрик
const (
	outcomeSuccess   = "success"
	outcomeError     = "error"
	outcomeSkipped   = "skipped"
	outcomeCancelled = "cancelled"
)

// Fetcher загружает содержимое коллекции с fleet API
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Snapshot копия состояния коллекции на момент чтения
type Snapshot[T any] struct {
	Items     []T
	Loaded    bool
	Fetching  bool
	Err       error
	FetchedAt time.Time
}

// Collection кэш одной коллекции с защитой от повторной загрузки.
// Одновременно выполняется не больше одного запроса, результаты
// отмененного (устаревшего) запроса отбрасываются.
type Collection[T any] struct {
	name    string
	fetch   Fetcher[T]
	log     Logger
	metrics FetchObserver
	now     func() time.Time

	mu        sync.Mutex
	items     []T
	loaded    bool
	fetching  bool
	err       error
	fetchedAt time.Time
	gen       uint64
	cancel    context.CancelFunc
}

// NewCollection создает пустую коллекцию
func NewCollection[T any](name string, fetch Fetcher[T], log Logger, metrics FetchObserver) *Collection[T] {
	return &Collection[T]{
		name:    name,
		fetch:   fetch,
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

// Name имя коллекции
func (c *Collection[T]) Name() string {
	return c.name
}

// Load загружает коллекцию, только если в кэше ничего нет
func (c *Collection[T]) Load(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	if len(c.items) > 0 {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()

	return c.run(ctx, false)
}

// Refetch принудительно перезагружает коллекцию
func (c *Collection[T]) Refetch(ctx context.Context) Snapshot[T] {
	return c.run(ctx, false)
}

// Retry сбрасывает ошибку и перезагружает коллекцию
func (c *Collection[T]) Retry(ctx context.Context) Snapshot[T] {
	return c.run(ctx, true)
}

// Trigger перезагрузка для периодического обновления
func (c *Collection[T]) Trigger(ctx context.Context) error {
	return c.Refetch(ctx).Err
}

// Clean очищает кэш и прерывает текущую загрузку
func (c *Collection[T]) Clean() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.items = nil
	c.loaded = false
	c.err = nil
	c.fetchedAt = time.Time{}
}

// Cancel прерывает текущую загрузку, кэш не трогает
func (c *Collection[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
}

// Snapshot текущее состояние без загрузки
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Set заменяет содержимое коллекции
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.items = slices.Clone(items)
	c.loaded = true
	c.err = nil
	c.fetchedAt = c.now()
}

// Update применяет изменение к загруженному кэшу. Загрузка в процессе
// отменяется, чтобы ее результат не перезаписал локальное изменение.
// Незагруженная коллекция не меняется: следующий Load получит все с сервера.
func (c *Collection[T]) Update(fn func(items []T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	if !c.loaded {
		return
	}
	c.items = fn(slices.Clone(c.items))
}

func (c *Collection[T]) run(ctx context.Context, clearErr bool) Snapshot[T] {
	c.mu.Lock()
	if c.fetching {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.observe(outcomeSkipped)
		return snap
	}

	if clearErr {
		c.err = nil
	}

	c.gen++
	gen := c.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.fetching = true
	c.mu.Unlock()

	items, err := c.fetch(fetchCtx)
	aborted := fetchCtx.Err() != nil
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// запрос был прерван через Clean/Cancel/Update, состояние уже новее
		c.log.Info("%s: discarding superseded fetch result", c.name)
		c.observe(outcomeCancelled)
		return c.snapshotLocked()
	}

	c.fetching = false
	c.cancel = nil

	if err != nil {
		if aborted && errors.Is(err, context.Canceled) {
			c.log.Info("%s: fetch cancelled", c.name)
			c.observe(outcomeCancelled)
			return c.snapshotLocked()
		}
		c.log.Warn("%s: fetch failed: %v", c.name, err)
		c.observe(outcomeError)
		c.err = err
		return c.snapshotLocked()
	}

	c.items = items
	c.loaded = true
	c.err = nil
	c.fetchedAt = c.now()
	c.observe(outcomeSuccess)

	return c.snapshotLocked()
}

func (c *Collection[T]) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.IncStoreFetch(c.name, outcome)
	}
}

func (c *Collection[T]) abortLocked() {
	if !c.fetching {
		return
	}
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.fetching = false
}

func (c *Collection[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Items:     slices.Clone(c.items),
		Loaded:    c.loaded,
		Fetching:  c.fetching,
		Err:       c.err,
		FetchedAt: c.fetchedAt,
	}
}
