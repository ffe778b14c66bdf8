package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore implements KeyedStore over a single key/value table. It works
// with both the sqlite and postgres drivers; the caller opens the
// connection and registers the driver.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLStore{db: db}
	if err := store.ensureSchema(driver); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLStore) ensureSchema(driver string) error {
	blobType := "BLOB"
	if driver == "postgres" {
		blobType = "BYTEA"
	}
	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS storefront_kv (k TEXT PRIMARY KEY, v %s NOT NULL)`,
		blobType)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLStore) Read(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT v FROM storefront_kv WHERE k = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query value for %q: %w", key, err)
	}
	return payload, nil
}

func (s *SQLStore) Write(ctx context.Context, key string, payload []byte) error {
	query := `INSERT INTO storefront_kv (k, v) VALUES ($1, $2)
	          ON CONFLICT (k) DO UPDATE SET v = excluded.v`

	if _, err := s.db.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("upsert value for %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM storefront_kv WHERE k = $1`, key); err != nil {
		return fmt.Errorf("delete value for %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
