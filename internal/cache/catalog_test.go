package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	mu       sync.Mutex
	videos   map[string]domain.VideoRecord
	byIDs    [][]string
	recent   int
	channels int
	err      error
}

func (c *countingCatalog) FetchByIDs(_ context.Context, ids []string) ([]domain.VideoRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byIDs = append(c.byIDs, ids)
	if c.err != nil {
		return nil, c.err
	}
	out := []domain.VideoRecord{}
	for _, id := range ids {
		if v, ok := c.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c *countingCatalog) FetchRecent(_ context.Context, limit int, _ string) (*domain.VideoPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent++
	if c.err != nil {
		return nil, c.err
	}
	return &domain.VideoPage{Videos: []domain.VideoRecord{c.videos["a"]}, NextPageToken: "next"}, nil
}

func (c *countingCatalog) FetchChannel(context.Context) (*domain.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels++
	if c.err != nil {
		return nil, c.err
	}
	return &domain.Channel{ID: "UC1", Title: "Podcast"}, nil
}

func setupCache(t *testing.T) (*miniredis.Miniredis, *countingCatalog, *CachedCatalog) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	published := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	next := &countingCatalog{videos: map[string]domain.VideoRecord{
		"a": {ID: "a", Title: "A", PublishedAt: published, Duration: "1:00", ViewCount: "10"},
		"b": {ID: "b", Title: "B", PublishedAt: published, Duration: "2:00", ViewCount: "20"},
	}}

	return mr, next, NewCachedCatalog(next, client, time.Minute, zerolog.Nop())
}

func TestCachedCatalog_FetchByIDs(t *testing.T) {
	_, next, cached := setupCache(t)
	ctx := context.Background()

	videos, err := cached.FetchByIDs(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "a", videos[0].ID)
	assert.Equal(t, "b", videos[1].ID)

	// Second call only asks upstream for the id that was never found.
	videos, err = cached.FetchByIDs(ctx, []string{"b", "a", "missing"})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "b", videos[0].ID)
	assert.True(t, videos[0].PublishedAt.Equal(next.videos["b"].PublishedAt))

	require.Len(t, next.byIDs, 2)
	assert.Equal(t, []string{"a", "b", "missing"}, next.byIDs[0])
	assert.Equal(t, []string{"missing"}, next.byIDs[1])
}

func TestCachedCatalog_FetchByIDs_TrimsIDs(t *testing.T) {
	_, next, cached := setupCache(t)
	ctx := context.Background()

	videos, err := cached.FetchByIDs(ctx, []string{"a", " b", "a "})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "a", videos[0].ID)
	assert.Equal(t, "b", videos[1].ID)
	assert.Equal(t, []string{"a", "b"}, next.byIDs[0])

	// Cached under the trimmed id.
	videos, err = cached.FetchByIDs(ctx, []string{"b"})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Len(t, next.byIDs, 1)
}

func TestCachedCatalog_Expiry(t *testing.T) {
	mr, next, cached := setupCache(t)
	ctx := context.Background()

	_, err := cached.FetchByIDs(ctx, []string{"a"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.FetchByIDs(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Len(t, next.byIDs, 2)
}

func TestCachedCatalog_RecentAndChannel(t *testing.T) {
	_, next, cached := setupCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, err := cached.FetchRecent(ctx, 9, "")
		require.NoError(t, err)
		assert.Equal(t, "next", page.NextPageToken)

		channel, err := cached.FetchChannel(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Podcast", channel.Title)
	}

	assert.Equal(t, 1, next.recent)
	assert.Equal(t, 1, next.channels)

	// Different cursors are cached separately.
	_, err := cached.FetchRecent(ctx, 9, "next")
	require.NoError(t, err)
	assert.Equal(t, 2, next.recent)
}

func TestCachedCatalog_UpstreamErrorNotCached(t *testing.T) {
	_, next, cached := setupCache(t)
	ctx := context.Background()

	next.err = &domain.UpstreamError{Status: 500, Message: "boom"}
	_, err := cached.FetchRecent(ctx, 9, "")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	next.err = nil
	_, err = cached.FetchRecent(ctx, 9, "")
	require.NoError(t, err)
	assert.Equal(t, 2, next.recent)
}

func TestCachedCatalog_RedisDown(t *testing.T) {
	mr, next, cached := setupCache(t)
	ctx := context.Background()

	mr.Close()

	videos, err := cached.FetchByIDs(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	channel, err := cached.FetchChannel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UC1", channel.ID)
	assert.Equal(t, 1, next.channels)
}
