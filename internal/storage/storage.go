package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned by Read when nothing was ever written
	// under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptPayload wraps deserialization failures. Callers are
	// expected to treat a corrupt payload as an empty sequence rather
	// than crash.
	ErrCorruptPayload = errors.New("corrupt stored payload")
)

// KeyedStore is a durable key-value substrate holding one opaque JSON
// payload per key. Write overwrites the whole value; there is no
// transaction across keys and no partial-write protection.
type KeyedStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
	Clear(ctx context.Context, key string) error
}

// LoadRecords reads and decodes the record sequence stored under key.
// An absent key yields an empty sequence; a payload that fails to decode
// yields an error wrapping ErrCorruptPayload.
func LoadRecords[T any](ctx context.Context, s KeyedStore, key string) ([]T, error) {
	payload, err := s.Read(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode %q: %w: %v", key, ErrCorruptPayload, err)
	}
	return records, nil
}

// SaveRecords encodes records and overwrites the value stored under key.
func SaveRecords[T any](ctx context.Context, s KeyedStore, key string, records []T) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Write(ctx, key, payload); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
