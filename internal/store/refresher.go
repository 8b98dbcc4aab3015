package store

import (
	"context"
	"time"
)

// Refreshable коллекция, которую можно перезагрузить по таймеру
type Refreshable interface {
	Name() string
	Trigger(ctx context.Context) error
}

// Refresher периодически перезагружает коллекции администратора.
// Защита от параллельной загрузки обеспечивается самими коллекциями.
type Refresher struct {
	interval time.Duration
	targets  []Refreshable
	enabled  func() bool
	ticks    <-chan time.Time
	log      Logger
}

// RefresherOption настройка Refresher
type RefresherOption func(*Refresher)

// WithCondition обновлять только когда cond возвращает true (например, активна сессия администратора)
func WithCondition(cond func() bool) RefresherOption {
	return func(r *Refresher) {
		r.enabled = cond
	}
}

// WithTicks подменяет источник тиков (используется в тестах)
func WithTicks(ticks <-chan time.Time) RefresherOption {
	return func(r *Refresher) {
		r.ticks = ticks
	}
}

// NewRefresher создает Refresher
func NewRefresher(interval time.Duration, targets []Refreshable, log Logger, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		interval: interval,
		targets:  targets,
		log:      log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run блокируется до отмены ctx
func (r *Refresher) Run(ctx context.Context) {
	ticks := r.ticks
	if ticks == nil {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	r.log.Info("Refresher: started, interval=%s, collections=%d", r.interval, len(r.targets))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Refresher: stopped")
			return
		case <-ticks:
			if r.enabled != nil && !r.enabled() {
				continue
			}
			for _, target := range r.targets {
				if err := target.Trigger(ctx); err != nil {
					r.log.Warn("Refresher: %s refresh failed: %v", target.Name(), err)
				}
			}
		}
	}
}
