package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

//go:embed products.json
var productsJSON []byte

// FixtureCatalog serves products from the bundled static fixture set.
// The data is immutable after load; lookups return copies.
type FixtureCatalog struct {
	products []domain.Product
	byID     map[int64]int
}

func NewFixtureCatalog() (*FixtureCatalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode product fixtures: %w", err)
	}

	byID := make(map[int64]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &FixtureCatalog{products: products, byID: byID}, nil
}

func (c *FixtureCatalog) GetAll(_ context.Context) ([]*domain.Product, error) {
	return c.copyAll(), nil
}

func (c *FixtureCatalog) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	i, exists := c.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	p := c.products[i]
	return &p, nil
}

func (c *FixtureCatalog) GetByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	if category == "" || category == "All" {
		return c.copyAll(), nil
	}

	var result []*domain.Product
	for i := range c.products {
		if c.products[i].Category == category {
			p := c.products[i]
			result = append(result, &p)
		}
	}
	return result, nil
}

func (c *FixtureCatalog) Search(_ context.Context, term string) ([]*domain.Product, error) {
	if term == "" {
		return c.copyAll(), nil
	}

	needle := strings.ToLower(term)
	var result []*domain.Product
	for i := range c.products {
		p := c.products[i]
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			result = append(result, &p)
		}
	}
	return result, nil
}

func (c *FixtureCatalog) GetFeatured(_ context.Context, limit int) ([]*domain.Product, error) {
	all := c.copyAll()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Rating > all[j].Rating
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (c *FixtureCatalog) GetRelated(_ context.Context, id int64, limit int) ([]*domain.Product, error) {
	i, exists := c.byID[id]
	if !exists {
		return nil, nil
	}
	category := c.products[i].Category

	var result []*domain.Product
	for j := range c.products {
		if c.products[j].ID == id || c.products[j].Category != category {
			continue
		}
		p := c.products[j]
		result = append(result, &p)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (c *FixtureCatalog) copyAll() []*domain.Product {
	result := make([]*domain.Product, len(c.products))
	for i := range c.products {
		p := c.products[i]
		result[i] = &p
	}
	return result
}
