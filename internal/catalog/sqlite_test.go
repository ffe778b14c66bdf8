package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()

	cat, err := NewSQLiteCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })

	require.NoError(t, cat.RunMigrations("../../migrations/catalog"))
	return cat
}

func TestSQLiteCatalog_GetByID(t *testing.T) {
	sut := newSQLiteCatalog(t)
	ctx := context.Background()

	p, err := sut.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Images)

	_, err = sut.GetByID(ctx, 99999)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestSQLiteCatalog_GetFeatured(t *testing.T) {
	sut := newSQLiteCatalog(t)
	ctx := context.Background()

	all, err := sut.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	featured, err := sut.GetFeatured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	for i := 1; i < len(featured); i++ {
		assert.GreaterOrEqual(t, featured[i-1].Rating, featured[i].Rating)
	}

	// a non-positive limit means no cap, same as the fixture catalog
	uncapped, err := sut.GetFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, uncapped, len(all))
}

func TestSQLiteCatalog_GetRelated(t *testing.T) {
	sut := newSQLiteCatalog(t)
	ctx := context.Background()

	anchor, err := sut.GetByID(ctx, 1)
	require.NoError(t, err)

	related, err := sut.GetRelated(ctx, 1, 2)
	require.NoError(t, err)
	require.NotEmpty(t, related)
	assert.LessOrEqual(t, len(related), 2)
	for _, p := range related {
		assert.NotEqual(t, anchor.ID, p.ID)
		assert.Equal(t, anchor.Category, p.Category)
	}

	uncapped, err := sut.GetRelated(ctx, 1, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, uncapped)
}
