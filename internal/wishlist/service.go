package wishlist

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/storage"
)

var (
	ErrAlreadyInWishlist = errors.New("item already in wishlist")
	ErrNotInWishlist     = errors.New("item not found in wishlist")
)

// Service manages saved products under its own storage key. Each Service
// is an independent instance; there is no package-level state. Ids are
// assigned from max(existing)+1 so they stay unique across removals.
type Service struct {
	store storage.KeyedStore
	key   string

	mu     sync.RWMutex
	member map[int64]bool // productID -> present, mirror of storage
}

func NewService(store storage.KeyedStore, key string) *Service {
	return &Service{
		store:  store,
		key:    key,
		member: make(map[int64]bool),
	}
}

func (s *Service) load(ctx context.Context) ([]domain.WishlistItem, error) {
	items, err := storage.LoadRecords[domain.WishlistItem](ctx, s.store, s.key)
	if errors.Is(err, storage.ErrCorruptPayload) {
		log.Printf("wishlist payload corrupt, starting empty: %v", err)
		items, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	member := make(map[int64]bool, len(items))
	for _, item := range items {
		member[item.ProductID] = true
	}
	s.member = member
	return items, nil
}

// GetAll returns every saved item.
func (s *Service) GetAll(ctx context.Context) ([]domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add saves a product. Adding a product that is already saved fails with
// ErrAlreadyInWishlist.
func (s *Service) Add(ctx context.Context, productID int64) (*domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.add(ctx, items, productID)
}

// add assumes the mutex is held and items is fresh from load.
func (s *Service) add(ctx context.Context, items []domain.WishlistItem, productID int64) (*domain.WishlistItem, error) {
	if s.member[productID] {
		return nil, ErrAlreadyInWishlist
	}

	var maxID int64
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}

	item := domain.WishlistItem{
		ID:        maxID + 1,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
	items = append(items, item)

	if err := storage.SaveRecords(ctx, s.store, s.key, items); err != nil {
		return nil, err
	}
	s.member[productID] = true
	return &item, nil
}

// Remove deletes a saved product. Removing a product that is not saved
// fails with ErrNotInWishlist.
func (s *Service) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.remove(ctx, items, productID)
}

// remove assumes the mutex is held and items is fresh from load.
func (s *Service) remove(ctx context.Context, items []domain.WishlistItem, productID int64) error {
	index := -1
	for i := range items {
		if items[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotInWishlist
	}

	items = append(items[:index], items[index+1:]...)
	if err := storage.SaveRecords(ctx, s.store, s.key, items); err != nil {
		return err
	}
	delete(s.member, productID)
	return nil
}

// Toggle adds the product when absent and removes it when present. It
// reports whether the product is saved afterwards. Membership is decided
// from a fresh load, not the mirror, so the first call on a freshly
// constructed Service over a durable substrate still sees prior state.
func (s *Service) Toggle(ctx context.Context, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if s.member[productID] {
		if err := s.remove(ctx, items, productID); err != nil {
			return true, err
		}
		return false, nil
	}

	if _, err := s.add(ctx, items, productID); err != nil {
		return false, err
	}
	return true, nil
}

// IsInWishlist checks membership against the in-memory mirror without
// touching storage. Before the first load it reports false.
func (s *Service) IsInWishlist(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.member[productID]
}
