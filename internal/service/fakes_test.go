package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/podcastsite/backend/internal/domain"
)

// memorySlotStore is an in-memory SlotRepository and RevisionRepository.
type memorySlotStore struct {
	mu           sync.Mutex
	slots        map[int]*domain.Slot
	revisions    []*domain.CarouselRevision
	listErr      error
	listDelay    time.Duration
	replaceErr   error
	replaceCalls int
	revisionLim  int
}

func newMemorySlotStore() *memorySlotStore {
	return &memorySlotStore{slots: make(map[int]*domain.Slot)}
}

func (s *memorySlotStore) bind(position int, videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := videoID
	s.slots[position] = &domain.Slot{Position: position, VideoID: &id}
}

func (s *memorySlotStore) List(ctx context.Context) ([]*domain.Slot, error) {
	if s.listDelay > 0 {
		select {
		case <-time.After(s.listDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]*domain.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		copied := *slot
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *memorySlotStore) ReplaceAll(_ context.Context, slots []*domain.Slot, revision *domain.CarouselRevision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceCalls++
	if s.replaceErr != nil {
		return s.replaceErr
	}
	for _, slot := range slots {
		copied := *slot
		s.slots[slot.Position] = &copied
	}
	if revision != nil {
		s.revisions = append(s.revisions, revision)
	}
	return nil
}

func (s *memorySlotStore) SeedEmpty(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var inserted int64
	for p := 1; p <= domain.SlotCount; p++ {
		if _, ok := s.slots[p]; !ok {
			s.slots[p] = &domain.Slot{Position: p}
			inserted++
		}
	}
	return inserted, nil
}

func (s *memorySlotStore) ListRecent(_ context.Context, limit int) ([]*domain.CarouselRevision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisionLim = limit
	out := make([]*domain.CarouselRevision, 0, len(s.revisions))
	for i := len(s.revisions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.revisions[i])
	}
	return out, nil
}

// stubCatalog serves a fixed set of videos.
type stubCatalog struct {
	mu         sync.Mutex
	videos     map[string]domain.VideoRecord
	recent     []domain.VideoRecord
	channel    *domain.Channel
	byIDsErr   error
	recentErr  error
	channelErr error
	byIDsCalls [][]string
	recentArgs []int
}

func newStubCatalog(videos ...domain.VideoRecord) *stubCatalog {
	c := &stubCatalog{
		videos:  make(map[string]domain.VideoRecord),
		channel: &domain.Channel{ID: "UC1", Title: "The Podcast"},
	}
	for _, v := range videos {
		c.videos[v.ID] = v
	}
	return c
}

func (c *stubCatalog) FetchByIDs(_ context.Context, ids []string) ([]domain.VideoRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byIDsCalls = append(c.byIDsCalls, ids)
	if c.byIDsErr != nil {
		return nil, c.byIDsErr
	}
	seen := make(map[string]bool)
	out := []domain.VideoRecord{}
	for _, id := range ids {
		if v, ok := c.videos[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (c *stubCatalog) FetchRecent(_ context.Context, limit int, _ string) (*domain.VideoPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentArgs = append(c.recentArgs, limit)
	if c.recentErr != nil {
		return nil, c.recentErr
	}
	videos := c.recent
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return &domain.VideoPage{Videos: videos}, nil
}

func (c *stubCatalog) FetchChannel(context.Context) (*domain.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channelErr != nil {
		return nil, c.channelErr
	}
	return c.channel, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]*domain.Slot
}

func (n *recordingNotifier) BroadcastSlots(slots []*domain.Slot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, slots)
}

func video(id string, day int) domain.VideoRecord {
	return domain.VideoRecord{
		ID:          id,
		Title:       "Episode " + id,
		PublishedAt: time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC),
		Duration:    "45:10",
		URL:         "https://www.youtube.com/watch?v=" + id,
		ViewCount:   "1.2K",
	}
}
