package order

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/storage"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// DeliveryEstimate is the fixed shipping promise applied to every new
// order regardless of destination or contents.
const DeliveryEstimate = 7 * 24 * time.Hour

// Draft is the input contract for Create. Items must already be
// denormalized snapshots and PaymentMethod must be a display string,
// never raw payment data.
type Draft struct {
	Items           []domain.OrderItem
	Total           float64
	ShippingAddress domain.Address
	PaymentMethod   string
}

// Service manages the append-only order log under a single storage key.
// On first access it seeds storage from the given fixture set, once.
type Service struct {
	store storage.KeyedStore
	key   string
	seed  []domain.Order

	mu sync.Mutex
}

// NewService builds an order store. seed may be nil to start from an
// empty log (tests do this); the binary passes the bundled fixtures.
func NewService(store storage.KeyedStore, key string, seed []domain.Order) *Service {
	return &Service{store: store, key: key, seed: seed}
}

// load reads the order log, bootstrapping storage from the seed fixtures
// when no prior value exists.
func (s *Service) load(ctx context.Context) ([]domain.Order, error) {
	payload, err := s.store.Read(ctx, s.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		if len(s.seed) > 0 {
			if err := storage.SaveRecords(ctx, s.store, s.key, s.seed); err != nil {
				return nil, err
			}
		}
		return append([]domain.Order(nil), s.seed...), nil
	}
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(payload, &orders); err != nil {
		log.Printf("order payload corrupt, starting empty: %v", err)
		return nil, nil
	}
	return orders, nil
}

// GetAll returns the order log, most recent first.
func (s *Service) GetAll(ctx context.Context) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	result := make([]*domain.Order, len(orders))
	for i := range orders {
		result[i] = orders[i].Clone()
	}
	return result, nil
}

// GetByID returns one order by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return orders[i].Clone(), nil
		}
	}
	return nil, ErrOrderNotFound
}

// Create materializes an order from a draft: the id is max(existing)+1,
// status starts at Processing and the delivery estimate is a fixed seven
// days out. The log is append-only; orders are never deleted.
func (s *Service) Create(ctx context.Context, draft Draft) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for i := range orders {
		if orders[i].ID > maxID {
			maxID = orders[i].ID
		}
	}

	now := time.Now()
	order := domain.Order{
		ID:                maxID + 1,
		Items:             append([]domain.OrderItem(nil), draft.Items...),
		Total:             draft.Total,
		ShippingAddress:   draft.ShippingAddress,
		PaymentMethod:     draft.PaymentMethod,
		Status:            domain.OrderStatusProcessing,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(DeliveryEstimate),
	}

	orders = append(orders, order)
	if err := storage.SaveRecords(ctx, s.store, s.key, orders); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// UpdateStatus overwrites the status field of one order, nothing else.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			if err := storage.SaveRecords(ctx, s.store, s.key, orders); err != nil {
				return nil, err
			}
			return orders[i].Clone(), nil
		}
	}
	return nil, ErrOrderNotFound
}
