// Package cache provides a Redis read-through cache in front of the video catalog.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "podcast:catalog:"

// Catalog is the subset of the video catalog client that can be cached.
type Catalog interface {
	FetchByIDs(ctx context.Context, ids []string) ([]domain.VideoRecord, error)
	FetchRecent(ctx context.Context, limit int, pageToken string) (*domain.VideoPage, error)
	FetchChannel(ctx context.Context) (*domain.Channel, error)
}

// CachedCatalog caches individual videos, recent-upload pages and the channel
// profile. Redis failures degrade to cache misses.
type CachedCatalog struct {
	next   Catalog
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient connects to the Redis instance at url (redis://host:port/db).
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

func NewCachedCatalog(next Catalog, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedCatalog{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedCatalog) FetchByIDs(ctx context.Context, ids []string) ([]domain.VideoRecord, error) {
	if len(ids) == 0 {
		return c.next.FetchByIDs(ctx, ids)
	}

	ordered := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}

	found := make(map[string]domain.VideoRecord, len(ordered))
	keys := make([]string, len(ordered))
	for i, id := range ordered {
		keys[i] = videoKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn().Err(err).Msg("redis mget failed")
		metrics.RecordCacheLookup("video", "error")
		values = nil
	}
	for i, raw := range values {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		var v domain.VideoRecord
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			continue
		}
		found[ordered[i]] = v
	}

	var missing []string
	for _, id := range ordered {
		if _, ok := found[id]; ok {
			metrics.RecordCacheLookup("video", "hit")
			continue
		}
		metrics.RecordCacheLookup("video", "miss")
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := c.next.FetchByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		pipe := c.client.Pipeline()
		for _, v := range fetched {
			found[v.ID] = v
			if data, err := json.Marshal(v); err == nil {
				pipe.Set(ctx, videoKey(v.ID), data, c.ttl)
			}
		}
		if _, err := pipe.Exec(ctx); err != nil {
			c.logger.Warn().Err(err).Int("count", len(fetched)).Msg("redis video write failed")
		}
	}

	videos := make([]domain.VideoRecord, 0, len(found))
	for _, id := range ordered {
		if v, ok := found[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func (c *CachedCatalog) FetchRecent(ctx context.Context, limit int, pageToken string) (*domain.VideoPage, error) {
	key := fmt.Sprintf("%srecent:%d:%s", keyPrefix, limit, pageToken)

	var page domain.VideoPage
	if c.lookup(ctx, "recent", key, &page) {
		return &page, nil
	}

	fetched, err := c.next.FetchRecent(ctx, limit, pageToken)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CachedCatalog) FetchChannel(ctx context.Context) (*domain.Channel, error) {
	key := keyPrefix + "channel"

	var channel domain.Channel
	if c.lookup(ctx, "channel", key, &channel) {
		return &channel, nil
	}

	fetched, err := c.next.FetchChannel(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fetched)
	return fetched, nil
}

func (c *CachedCatalog) lookup(ctx context.Context, kind, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.RecordCacheLookup(kind, "miss")
		return false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed")
		metrics.RecordCacheLookup(kind, "error")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		metrics.RecordCacheLookup(kind, "error")
		return false
	}
	metrics.RecordCacheLookup(kind, "hit")
	return true
}

func (c *CachedCatalog) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

func videoKey(id string) string {
	return keyPrefix + "video:" + id
}
