package service

import (
	"context"

	"github.com/podcastsite/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// VideoCatalog is the read side of the YouTube client, optionally behind the cache.
type VideoCatalog interface {
	FetchByIDs(ctx context.Context, ids []string) ([]domain.VideoRecord, error)
	FetchRecent(ctx context.Context, limit int, pageToken string) (*domain.VideoPage, error)
	FetchChannel(ctx context.Context) (*domain.Channel, error)
}

// VideoFeed is the payload of the public video metadata endpoint.
type VideoFeed struct {
	Videos        []domain.VideoRecord `json:"videos"`
	Channel       *domain.Channel      `json:"channel,omitempty"`
	TotalResults  int                  `json:"totalResults"`
	NextPageToken string               `json:"nextPageToken,omitempty"`
}

type VideoService struct {
	catalog VideoCatalog
}

func NewVideoService(catalog VideoCatalog) *VideoService {
	return &VideoService{catalog: catalog}
}

// ByIDs looks up specific videos. Unknown ids are silently omitted.
func (s *VideoService) ByIDs(ctx context.Context, ids []string) (*VideoFeed, error) {
	videos, err := s.catalog.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &VideoFeed{Videos: videos, TotalResults: len(videos)}, nil
}

// Recent lists the newest uploads together with the channel profile. Both
// upstream calls run concurrently; either failing fails the feed.
func (s *VideoService) Recent(ctx context.Context, maxResults int, pageToken string) (*VideoFeed, error) {
	var (
		page    *domain.VideoPage
		channel *domain.Channel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.catalog.FetchRecent(gctx, maxResults, pageToken)
		return err
	})
	g.Go(func() error {
		var err error
		channel, err = s.catalog.FetchChannel(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &VideoFeed{
		Videos:        page.Videos,
		Channel:       channel,
		TotalResults:  len(page.Videos),
		NextPageToken: page.NextPageToken,
	}, nil
}
