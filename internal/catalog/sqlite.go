package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

// SQLiteCatalog serves products from an embedded sqlite database. Image
// lists are stored as a JSON column.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteCatalog{db: db}, nil
}

func (c *SQLiteCatalog) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(c.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

const productColumns = `id, name, description, price, category, images, rating, stock`

func scanProduct(scan func(dest ...any) error) (*domain.Product, error) {
	p := &domain.Product{}
	var imagesJSON []byte
	err := scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&imagesJSON,
		&p.Rating,
		&p.Stock,
	)
	if err != nil {
		return nil, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal product images: %w", err)
		}
	}
	return p, nil
}

func (c *SQLiteCatalog) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (c *SQLiteCatalog) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return c.queryProducts(ctx, fmt.Sprintf(
		`SELECT %s FROM products ORDER BY id`, productColumns))
}

func (c *SQLiteCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := c.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT %s FROM products WHERE id = $1`, productColumns), id)

	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func (c *SQLiteCatalog) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	if category == "" || category == "All" {
		return c.GetAll(ctx)
	}
	return c.queryProducts(ctx, fmt.Sprintf(
		`SELECT %s FROM products WHERE category = $1 ORDER BY id`, productColumns), category)
}

func (c *SQLiteCatalog) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	if term == "" {
		return c.GetAll(ctx)
	}
	pattern := "%" + term + "%"
	return c.queryProducts(ctx, fmt.Sprintf(
		`SELECT %s FROM products
		 WHERE name LIKE $1 COLLATE NOCASE
		    OR description LIKE $1 COLLATE NOCASE
		    OR category LIKE $1 COLLATE NOCASE
		 ORDER BY id`, productColumns), pattern)
}

func (c *SQLiteCatalog) GetFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	// a non-positive limit means no cap; sqlite reads LIMIT 0 as none
	if limit <= 0 {
		return c.queryProducts(ctx, fmt.Sprintf(
			`SELECT %s FROM products ORDER BY rating DESC`, productColumns))
	}
	return c.queryProducts(ctx, fmt.Sprintf(
		`SELECT %s FROM products ORDER BY rating DESC LIMIT $1`, productColumns), limit)
}

func (c *SQLiteCatalog) GetRelated(ctx context.Context, id int64, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		return c.queryProducts(ctx, fmt.Sprintf(
			`SELECT %s FROM products
			 WHERE id != $1 AND category = (SELECT category FROM products WHERE id = $1)
			 ORDER BY id`, productColumns), id)
	}
	return c.queryProducts(ctx, fmt.Sprintf(
		`SELECT %s FROM products
		 WHERE id != $1 AND category = (SELECT category FROM products WHERE id = $1)
		 ORDER BY id LIMIT $2`, productColumns), id, limit)
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
