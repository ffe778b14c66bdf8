package storage

import (
	"context"
	"math/rand"
	"time"
)

// latencyStore delays every operation by a bounded random duration to
// mimic network variance over a local substrate. The bounds are
// configuration and a zero max disables the wrapper entirely.
type latencyStore struct {
	inner KeyedStore
	min   time.Duration
	max   time.Duration
}

// WithLatency decorates store with a simulated per-operation delay drawn
// uniformly from [min, max]. When max <= 0 the store is returned as-is.
func WithLatency(store KeyedStore, min, max time.Duration) KeyedStore {
	if max <= 0 {
		return store
	}
	if min < 0 {
		min = 0
	}
	if min > max {
		min = max
	}
	return &latencyStore{inner: store, min: min, max: max}
}

func (l *latencyStore) delay(ctx context.Context) error {
	d := l.min
	if span := l.max - l.min; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *latencyStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := l.delay(ctx); err != nil {
		return nil, err
	}
	return l.inner.Read(ctx, key)
}

func (l *latencyStore) Write(ctx context.Context, key string, payload []byte) error {
	if err := l.delay(ctx); err != nil {
		return err
	}
	return l.inner.Write(ctx, key, payload)
}

func (l *latencyStore) Clear(ctx context.Context, key string) error {
	if err := l.delay(ctx); err != nil {
		return err
	}
	return l.inner.Clear(ctx, key)
}
