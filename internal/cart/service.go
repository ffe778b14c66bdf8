package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/storage"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Service manages the cart line items persisted under a single storage
// key. Mutations are whole-cart read-modify-write cycles serialized by a
// mutex; reads always go through to storage.
type Service struct {
	store   storage.KeyedStore
	catalog catalog.Catalog
	key     string

	mu      sync.Mutex         // serializes read-modify-write cycles
	sfg     singleflight.Group // collapses concurrent enriched reads
	breaker *gobreaker.CircuitBreaker[*domain.Product]
}

func NewService(store storage.KeyedStore, cat catalog.Catalog, key string) *Service {
	breaker := gobreaker.NewCircuitBreaker[*domain.Product](gobreaker.Settings{
		Name:        "catalog-lookup",
		MaxRequests: 3,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Service{
		store:   store,
		catalog: cat,
		key:     key,
		breaker: breaker,
	}
}

// Items returns the persisted cart as-is, without catalog enrichment.
// A corrupt payload is logged and treated as an empty cart.
func (s *Service) Items(ctx context.Context) ([]domain.CartItem, error) {
	items, err := storage.LoadRecords[domain.CartItem](ctx, s.store, s.key)
	if errors.Is(err, storage.ErrCorruptPayload) {
		log.Printf("cart payload corrupt, starting empty: %v", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem merges quantity into an existing line for the product, or
// appends a new line. The store enforces no upper bound; capping to stock
// on hand is the caller's concern.
func (s *Service) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}

	return storage.SaveRecords(ctx, s.store, s.key, items)
}

// UpdateQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line entirely. Unknown products are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	index := -1
	for i := range items {
		if items[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}

	if quantity <= 0 {
		items = append(items[:index], items[index+1:]...)
	} else {
		items[index].Quantity = quantity
	}

	return storage.SaveRecords(ctx, s.store, s.key, items)
}

// RemoveItem drops the line for the product. Unknown products are a no-op.
func (s *Service) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	return storage.SaveRecords(ctx, s.store, s.key, kept)
}

// Clear empties the persisted cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx, s.key)
}

// Enriched joins each line item with its catalog record. Lines whose
// product cannot be resolved are logged and dropped from the view but
// stay in storage, so a transient catalog outage never destroys cart
// data. Concurrent calls share one underlying read; it runs detached
// from any single caller's cancellation so one caller hanging up does
// not fail the others.
func (s *Service) Enriched(ctx context.Context) ([]domain.EnrichedCartItem, error) {
	v, err, _ := s.sfg.Do(s.key, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		items, err := s.Items(ctx)
		if err != nil {
			return nil, err
		}

		enriched := make([]domain.EnrichedCartItem, 0, len(items))
		for _, item := range items {
			id := item.ProductID
			product, err := s.breaker.Execute(func() (*domain.Product, error) {
				return s.catalog.GetByID(ctx, id)
			})
			if err != nil {
				log.Printf("failed to resolve product %d, dropping line from view: %v", id, err)
				continue
			}
			enriched = append(enriched, domain.EnrichedCartItem{CartItem: item, Product: product})
		}
		return enriched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.EnrichedCartItem), nil
}

// Total sums price*quantity over resolvable lines only.
func (s *Service) Total(ctx context.Context) (float64, error) {
	enriched, err := s.Enriched(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range enriched {
		total += item.Subtotal()
	}
	return total, nil
}

// Count sums quantities over resolvable lines only.
func (s *Service) Count(ctx context.Context) (int, error) {
	enriched, err := s.Enriched(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range enriched {
		count += item.Quantity
	}
	return count, nil
}
