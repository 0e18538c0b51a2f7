package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	calls   atomic.Int32
	entries []domain.CatalogEntry
	err     error
	delay   time.Duration
}

func (c *countingCatalog) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.entries, c.err
}

func newCache(t *testing.T, backend *countingCatalog) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCatalogCache(backend, client, time.Minute, nil), mr
}

func TestCatalogCache_HitAfterMiss(t *testing.T) {
	backend := &countingCatalog{entries: []domain.CatalogEntry{{EntryID: "u1", Kind: domain.CatalogUnit, Name: "Box", Code: "BX"}}}
	c, mr := newCache(t, backend)
	ctx := context.Background()

	first, err := c.ListCatalog(ctx, "t1", domain.CatalogUnit)
	require.NoError(t, err)
	second, err := c.ListCatalog(ctx, "t1", domain.CatalogUnit)
	require.NoError(t, err)

	assert.Equal(t, backend.entries, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, backend.calls.Load())
	assert.True(t, mr.Exists("catalog:t1:unit"))
	assert.Equal(t, time.Minute, mr.TTL("catalog:t1:unit"))
}

func TestCatalogCache_Invalidate(t *testing.T) {
	backend := &countingCatalog{entries: []domain.CatalogEntry{}}
	c, _ := newCache(t, backend)
	ctx := context.Background()

	_, err := c.ListCatalog(ctx, "t1", domain.CatalogStore)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "t1", domain.CatalogStore))
	_, err = c.ListCatalog(ctx, "t1", domain.CatalogStore)
	require.NoError(t, err)

	assert.EqualValues(t, 2, backend.calls.Load())
}

func TestCatalogCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	backend := &countingCatalog{entries: []domain.CatalogEntry{{EntryID: "c1"}}, delay: 50 * time.Millisecond}
	c, _ := newCache(t, backend)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListCatalog(context.Background(), "t1", domain.CatalogCategory)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, backend.calls.Load())
}

func TestCatalogCache_BackendErrorIsNotCached(t *testing.T) {
	backend := &countingCatalog{err: errors.New("db down")}
	c, mr := newCache(t, backend)

	_, err := c.ListCatalog(context.Background(), "t1", domain.CatalogUnit)
	assert.Error(t, err)
	assert.False(t, mr.Exists("catalog:t1:unit"))
}

func TestCatalogCache_FallsBackWhenRedisIsDown(t *testing.T) {
	backend := &countingCatalog{entries: []domain.CatalogEntry{{EntryID: "u1"}}}
	c, mr := newCache(t, backend)
	mr.Close()

	got, err := c.ListCatalog(context.Background(), "t1", domain.CatalogUnit)
	require.NoError(t, err)
	assert.Equal(t, backend.entries, got)
}
