// Package youtube is the video catalog client for the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/metrics"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// MaxPageSize is the largest maxResults the API accepts.
	MaxPageSize = 50
)

type Config struct {
	APIKey     string
	ChannelID  string
	PlaylistID string
	BaseURL    string
	Timeout    time.Duration
}

type Client struct {
	http   *resty.Client
	cfg    Config
	logger zerolog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: log.WithComponent("youtube"),
	}
}

// FetchByIDs returns the videos that exist among ids. Unknown ids are omitted.
func (c *Client) FetchByIDs(ctx context.Context, ids []string) ([]domain.VideoRecord, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []domain.VideoRecord{}, nil
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY", domain.ErrConfiguration)
	}

	videos := make([]domain.VideoRecord, 0, len(ids))
	for start := 0; start < len(ids); start += MaxPageSize {
		end := start + MaxPageSize
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := c.fetchVideos(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		videos = append(videos, batch...)
	}
	return videos, nil
}

// FetchRecent lists up to limit uploads from the configured playlist (or the
// channel's uploads playlist), newest first.
func (c *Client) FetchRecent(ctx context.Context, limit int, pageToken string) (*domain.VideoPage, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY", domain.ErrConfiguration)
	}
	if c.cfg.PlaylistID == "" && c.cfg.ChannelID == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_CHANNEL_ID", domain.ErrConfiguration)
	}

	playlistID := c.cfg.PlaylistID
	if playlistID == "" {
		uploads, err := c.uploadsPlaylist(ctx)
		if err != nil {
			return nil, err
		}
		playlistID = uploads
	}

	params := map[string]string{
		"part":       "snippet",
		"playlistId": playlistID,
		"maxResults": strconv.Itoa(clampLimit(limit)),
	}
	if pageToken != "" {
		params["pageToken"] = pageToken
	}

	var playlist playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &playlist); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		if item.Snippet != nil && item.Snippet.ResourceID != nil && item.Snippet.ResourceID.VideoID != "" {
			ids = append(ids, item.Snippet.ResourceID.VideoID)
		}
	}

	page := &domain.VideoPage{
		Videos:        []domain.VideoRecord{},
		NextPageToken: playlist.NextPageToken,
	}
	if len(ids) == 0 {
		return page, nil
	}

	videos, err := c.fetchVideos(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].PublishedAt.After(videos[j].PublishedAt)
	})
	page.Videos = videos
	return page, nil
}

// FetchChannel returns the configured channel's profile and statistics.
func (c *Client) FetchChannel(ctx context.Context) (*domain.Channel, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY", domain.ErrConfiguration)
	}
	if c.cfg.ChannelID == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_CHANNEL_ID", domain.ErrConfiguration)
	}

	var resp channelListResponse
	err := c.get(ctx, "/channels", map[string]string{
		"part": "snippet,statistics",
		"id":   c.cfg.ChannelID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, &domain.UpstreamError{Status: http.StatusNotFound, Message: "channel not found"}
	}

	item := resp.Items[0]
	channel := &domain.Channel{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: channelThumbnail(item.Snippet.Thumbnails),
	}
	if item.Statistics != nil {
		channel.SubscriberCount = item.Statistics.SubscriberCount
		channel.VideoCount = item.Statistics.VideoCount
	}
	return channel, nil
}

func (c *Client) uploadsPlaylist(ctx context.Context) (string, error) {
	var resp channelListResponse
	err := c.get(ctx, "/channels", map[string]string{
		"part": "contentDetails",
		"id":   c.cfg.ChannelID,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil || resp.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", &domain.UpstreamError{Status: http.StatusNotFound, Message: "uploads playlist not found"}
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (c *Client) fetchVideos(ctx context.Context, ids []string) ([]domain.VideoRecord, error) {
	var resp videoListResponse
	err := c.get(ctx, "/videos", map[string]string{
		"part": "snippet,contentDetails,statistics",
		"id":   strings.Join(ids, ","),
	}, &resp)
	if err != nil {
		return nil, err
	}

	videos := make([]domain.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		video, err := parseVideo(item)
		if err != nil {
			c.logger.Warn().Err(err).Str("video_id", item.ID).Msg("dropping malformed video item")
			continue
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	var apiErr apiErrorResponse
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", c.cfg.APIKey).
		SetResult(out).
		SetError(&apiErr).
		Get(path)

	if err != nil {
		metrics.RecordCatalogRequest(path, err, time.Since(start))
		c.logger.Error().Err(err).Str("endpoint", path).Msg("youtube request failed")
		return fmt.Errorf("%w: GET %s: %w", domain.ErrUpstream, path, err)
	}

	if resp.IsError() {
		upstreamErr := &domain.UpstreamError{
			Status:  resp.StatusCode(),
			Message: apiErr.Error.Message,
		}
		if upstreamErr.Message == "" {
			upstreamErr.Message = http.StatusText(resp.StatusCode())
		}
		metrics.RecordCatalogRequest(path, upstreamErr, time.Since(start))
		c.logger.Error().
			Int("status", upstreamErr.Status).
			Str("endpoint", path).
			Str("message", upstreamErr.Message).
			Msg("youtube returned error status")
		return upstreamErr
	}

	metrics.RecordCatalogRequest(path, nil, time.Since(start))
	return nil
}

var errMalformedItem = errors.New("malformed video item")

// parseVideo is the validation boundary for raw API items.
func parseVideo(item videoItem) (domain.VideoRecord, error) {
	if item.ID == "" {
		return domain.VideoRecord{}, fmt.Errorf("%w: missing id", errMalformedItem)
	}
	if item.Snippet == nil {
		return domain.VideoRecord{}, fmt.Errorf("%w: missing snippet", errMalformedItem)
	}

	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return domain.VideoRecord{}, fmt.Errorf("%w: publishedAt %q", errMalformedItem, item.Snippet.PublishedAt)
	}

	duration := "0:00"
	if item.ContentDetails != nil {
		duration = FormatDuration(item.ContentDetails.Duration)
	}

	var views int64
	if item.Statistics != nil && item.Statistics.ViewCount != "" {
		if n, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64); err == nil {
			views = n
		}
	}

	return domain.VideoRecord{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		PublishedAt:  publishedAt,
		Duration:     duration,
		ThumbnailURL: BestThumbnail(item.Snippet.Thumbnails),
		URL:          WatchURL(item.ID),
		ViewCount:    FormatViewCount(views),
		Category:     item.Snippet.CategoryID,
	}, nil
}

func channelThumbnail(t *Thumbnails) string {
	if t == nil {
		return ""
	}
	if t.High != nil && t.High.URL != "" {
		return t.High.URL
	}
	if t.Default != nil {
		return t.Default.URL
	}
	return ""
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
