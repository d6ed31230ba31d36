package redis

import (
	"context"
	"discovery-service/internal/core/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*PageCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache, err := NewPageCache(client, ttl)
	require.NoError(t, err)
	return cache, mr
}

func samplePage() domain.ResultPage[domain.VendorRecord] {
	price := 120.0
	records := []domain.VendorRecord{{
		ID:          uuid.MustParse("6a1f1c7e-2d8b-4c5a-9e3f-1b2c3d4e5f60"),
		VendorType:  domain.VendorTypeArtist,
		Name:        "DJ Nachtklang",
		CategoryIDs: []string{"electronic", "house"},
		PriceMin:    &price,
		PriceMax:    &price,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}
	count := 3
	return domain.NewResultPage(records, &count, domain.Paging{Limit: 1, Offset: 0})
}

func TestPageCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := domain.DefaultCriteria().Key(domain.VendorTypeArtist)
	paging := domain.Paging{Limit: 1, Offset: 0}

	_, ok, err := cache.Get(ctx, key, paging)
	require.NoError(t, err)
	assert.False(t, ok)

	page := samplePage()
	require.NoError(t, cache.Set(ctx, key, paging, page))

	got, ok, err := cache.Get(ctx, key, paging)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, page.Items[0].Name, got.Items[0].Name)
	assert.Equal(t, page.Items[0].CategoryIDs, got.Items[0].CategoryIDs)
	require.NotNil(t, got.NextCursor)
	assert.Equal(t, 1, got.NextCursor.Offset)
	require.NotNil(t, got.TotalCount)
	assert.Equal(t, 3, *got.TotalCount)

	_, ok, err = cache.Get(ctx, key, domain.Paging{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.False(t, ok, "another window is another entry")
}

func TestPageCache_KeysSeparateCriteria(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	paging := domain.Paging{Limit: 20}

	jazz := domain.DefaultCriteria()
	jazz.Categories = []string{"jazz"}
	require.NoError(t, cache.Set(ctx, jazz.Key(domain.VendorTypeArtist), paging, samplePage()))

	_, ok, err := cache.Get(ctx, jazz.Key(domain.VendorTypeVenue), paging)
	require.NoError(t, err)
	assert.False(t, ok)

	jazz.ViewMode = domain.ViewModeList
	_, ok, err = cache.Get(ctx, jazz.Key(domain.VendorTypeArtist), paging)
	require.NoError(t, err)
	assert.True(t, ok, "view mode does not change the key")
}

func TestPageCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()
	key := domain.DefaultCriteria().Key(domain.VendorTypeArtist)
	paging := domain.Paging{Limit: 20}

	require.NoError(t, cache.Set(ctx, key, paging, samplePage()))
	mr.FastForward(31 * time.Second)

	_, ok, err := cache.Get(ctx, key, paging)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	key := domain.DefaultCriteria().Key(domain.VendorTypeArtist)
	paging := domain.Paging{Limit: 20}
	require.NoError(t, mr.Set(pageKey(key, paging), "{not json"))

	_, ok, err := cache.Get(context.Background(), key, paging)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Get(context.Background(), domain.DefaultCriteria().Key(domain.VendorTypeArtist), domain.Paging{Limit: 20})
	assert.Error(t, err)
}

func TestNewPageCache_Validation(t *testing.T) {
	_, err := NewPageCache(nil, 0)
	assert.Error(t, err)

	cache, err := NewPageCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultTTL, cache.ttl)
}
