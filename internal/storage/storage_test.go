package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestMemoryStore_ReadAbsentKey(t *testing.T) {
	sut := NewMemoryStore()

	_, err := sut.Read(context.Background(), "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_WriteReadClear(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, sut.Write(ctx, "k", []byte(`[{"id":1}]`)))

	payload, err := sut.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(payload))

	require.NoError(t, sut.Clear(ctx, "k"))
	_, err = sut.Read(ctx, "k")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_ReadReturnsCopy(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, sut.Write(ctx, "k", []byte("abc")))

	payload, err := sut.Read(ctx, "k")
	require.NoError(t, err)
	payload[0] = 'X'

	again, err := sut.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLoadRecords_AbsentKeyIsEmpty(t *testing.T) {
	sut := NewMemoryStore()

	records, err := LoadRecords[record](context.Background(), sut, "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRecords_RoundTrip(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	in := []record{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, SaveRecords(ctx, sut, "k", in))

	out, err := LoadRecords[record](ctx, sut, "k")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadRecords_CorruptPayload(t *testing.T) {
	sut := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, sut.Write(ctx, "k", []byte("{not json")))

	_, err := LoadRecords[record](ctx, sut, "k")
	require.ErrorIs(t, err, ErrCorruptPayload)
}

func TestFileStore_WriteReadClear(t *testing.T) {
	sut, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = sut.Read(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, sut.Write(ctx, "cart", []byte(`[]`)))
	payload, err := sut.Read(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(payload))

	// overwrite replaces the whole value
	require.NoError(t, sut.Write(ctx, "cart", []byte(`[{"id":9}]`)))
	payload, err = sut.Read(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":9}]`, string(payload))

	require.NoError(t, sut.Clear(ctx, "cart"))
	_, err = sut.Read(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)

	// clearing an absent key is a no-op
	require.NoError(t, sut.Clear(ctx, "cart"))
}

func TestWithLatency_ZeroDisables(t *testing.T) {
	inner := NewMemoryStore()
	sut := WithLatency(inner, 0, 0)
	assert.Same(t, inner, sut)
}

func TestWithLatency_DelaysAndDelegates(t *testing.T) {
	inner := NewMemoryStore()
	sut := WithLatency(inner, 10*time.Millisecond, 20*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, sut.Write(ctx, "k", []byte("v")))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	payload, err := sut.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(payload))
}

func TestWithLatency_RespectsContextCancellation(t *testing.T) {
	inner := NewMemoryStore()
	sut := WithLatency(inner, time.Second, 2*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sut.Read(ctx, "k")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
