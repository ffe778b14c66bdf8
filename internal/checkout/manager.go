package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Manager tracks in-flight checkout flows by session id for the HTTP
// adapter. Flows live in memory only; an abandoned session is simply
// dropped with the process, matching the no-draft-persistence rule.
type Manager struct {
	cart    *cart.Service
	orders  *order.Service
	pricing Pricing

	mu    sync.RWMutex
	flows map[string]*Flow
}

func NewManager(cartSvc *cart.Service, orders *order.Service, pricing Pricing) *Manager {
	return &Manager{
		cart:    cartSvc,
		orders:  orders,
		pricing: pricing,
		flows:   make(map[string]*Flow),
	}
}

// Begin starts a new flow and returns its session id.
func (m *Manager) Begin(ctx context.Context) (string, *Flow, error) {
	flow, err := Begin(ctx, m.cart, m.orders, m.pricing)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.flows[id] = flow
	m.mu.Unlock()
	return id, flow, nil
}

// Get returns the flow for a session id.
func (m *Manager) Get(id string) (*Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flow, exists := m.flows[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return flow, nil
}

// Abandon discards a session without completing it.
func (m *Manager) Abandon(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, id)
}
