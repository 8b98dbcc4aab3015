package store

import (
	"context"
	"slices"
	"sync"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

const partItemsCollection = "part_items"

// PartItems запчасти в наличии, отдельный fetch-once кэш на каждый автомобиль.
// Черновики разных автомобилей не видят запчасти друг друга.
type PartItems struct {
	api     PartItemsAPI
	log     Logger
	metrics FetchObserver

	mu   sync.Mutex
	cars map[string]*Collection[domain.PartItem]
}

func newPartItems(api PartItemsAPI, log Logger, metrics FetchObserver) *PartItems {
	return &PartItems{
		api:     api,
		log:     log,
		metrics: metrics,
		cars:    make(map[string]*Collection[domain.PartItem]),
	}
}

// collection кэш автомобиля, создается при первом обращении
func (p *PartItems) collection(carID string) *Collection[domain.PartItem] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.cars[carID]; ok {
		return c
	}

	c := NewCollection[domain.PartItem](partItemsCollection, func(ctx context.Context) ([]domain.PartItem, error) {
		items, err := p.api.GoldInStockForCar(ctx, carID)
		if err != nil {
			return nil, err
		}
		return domain.FilterInStock(items), nil
	}, p.log, p.metrics)
	p.cars[carID] = c
	return c
}

// existing кэш автомобиля без создания нового
func (p *PartItems) existing(carID string) (*Collection[domain.PartItem], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.cars[carID]
	return c, ok
}

// ForCar загружает запчасти автомобиля (однократно, пока кэш не очищен)
func (p *PartItems) ForCar(ctx context.Context, carID string) Snapshot[domain.PartItem] {
	return p.collection(carID).Load(ctx)
}

// RetryForCar сбрасывает ошибку и загружает запчасти автомобиля заново
func (p *PartItems) RetryForCar(ctx context.Context, carID string) Snapshot[domain.PartItem] {
	return p.collection(carID).Retry(ctx)
}

// Loaded возвращает true, если для автомобиля уже есть кэш
func (p *PartItems) Loaded(carID string) bool {
	_, ok := p.existing(carID)
	return ok
}

// CleanCar очищает кэш автомобиля и прерывает его загрузку
func (p *PartItems) CleanCar(carID string) {
	p.mu.Lock()
	c, ok := p.cars[carID]
	delete(p.cars, carID)
	p.mu.Unlock()

	if ok {
		c.Clean()
	}
}

// Clean очищает кэши всех автомобилей
func (p *PartItems) Clean() {
	p.mu.Lock()
	cars := p.cars
	p.cars = make(map[string]*Collection[domain.PartItem])
	p.mu.Unlock()

	for _, c := range cars {
		c.Clean()
	}
}

// UpdateCar меняет кэш автомобиля, если он уже загружен
func (p *PartItems) UpdateCar(carID string, fn func(items []domain.PartItem) []domain.PartItem) {
	if c, ok := p.existing(carID); ok {
		c.Update(fn)
	}
}

// Remove удаляет запчасть из кэшей всех автомобилей
func (p *PartItems) Remove(id string) {
	p.mu.Lock()
	cars := make([]*Collection[domain.PartItem], 0, len(p.cars))
	for _, c := range p.cars {
		cars = append(cars, c)
	}
	p.mu.Unlock()

	for _, c := range cars {
		if !c.Snapshot().Loaded {
			continue
		}
		c.Update(func(items []domain.PartItem) []domain.PartItem {
			return slices.DeleteFunc(items, func(item domain.PartItem) bool { return item.ID == id })
		})
	}
}
