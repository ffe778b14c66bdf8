package order

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

//go:embed orders.json
var seedJSON []byte

// SeedOrders returns the bundled fixture orders used to bootstrap an
// empty order log on first access.
func SeedOrders() ([]domain.Order, error) {
	var orders []domain.Order
	if err := json.Unmarshal(seedJSON, &orders); err != nil {
		return nil, fmt.Errorf("decode order fixtures: %w", err)
	}
	return orders, nil
}
