package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/metrics"
	"github.com/podcastsite/backend/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const (
	defaultRevisionLimit = 20
	maxRevisionLimit     = 100
)

// SlotNotifier is told about every committed slot layout.
type SlotNotifier interface {
	BroadcastSlots(slots []*domain.Slot)
}

type CarouselService struct {
	slotRepo     repository.SlotRepository
	revisionRepo repository.RevisionRepository
	catalog      VideoCatalog
	notifier     SlotNotifier
	readTimeout  time.Duration
	now          func() time.Time
	logger       zerolog.Logger
}

func NewCarouselService(
	slotRepo repository.SlotRepository,
	revisionRepo repository.RevisionRepository,
	catalog VideoCatalog,
	notifier SlotNotifier,
	cfg *config.Config,
) *CarouselService {
	readTimeout := cfg.StoreReadTimeout
	if readTimeout <= 0 {
		readTimeout = 3 * time.Second
	}
	return &CarouselService{
		slotRepo:     slotRepo,
		revisionRepo: revisionRepo,
		catalog:      catalog,
		notifier:     notifier,
		readTimeout:  readTimeout,
		now:          time.Now,
		logger:       log.WithComponent("carousel"),
	}
}

// WithClock replaces the time source used to stamp slot updates.
func (s *CarouselService) WithClock(now func() time.Time) *CarouselService {
	s.now = now
	return s
}

// ListSlots returns all nine slots in position order, synthesising empty ones
// for positions that have never been written.
func (s *CarouselService) ListSlots(ctx context.Context) ([]*domain.Slot, error) {
	stored, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carousel slots: %w", err)
	}
	return domain.NormalizeSlots(stored), nil
}

// ReplaceSlots validates and writes a full nine-slot layout atomically, then
// returns the layout as read back from the store.
func (s *CarouselService) ReplaceSlots(ctx context.Context, sessionID string, assignments []domain.SlotAssignment) ([]*domain.Slot, error) {
	if err := validateAssignments(assignments); err != nil {
		metrics.RecordSlotWrite("invalid")
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	slots := make([]*domain.Slot, len(assignments))
	for i, a := range assignments {
		stamped := now
		slots[i] = &domain.Slot{Position: a.Position, VideoID: a.VideoID, UpdatedAt: &stamped}
	}

	snapshot, err := json.Marshal(domain.NormalizeSlots(slots))
	if err != nil {
		return nil, fmt.Errorf("encode revision: %w", err)
	}
	revision := &domain.CarouselRevision{
		SessionID: sessionID,
		Slots:     datatypes.JSON(snapshot),
		CreatedAt: now,
	}

	if err := s.slotRepo.ReplaceAll(ctx, slots, revision); err != nil {
		metrics.RecordSlotWrite("failure")
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("carousel update failed")
		return nil, fmt.Errorf("replace carousel slots: %w", err)
	}
	metrics.RecordSlotWrite("success")

	updated, err := s.ListSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("session_id", sessionID).Msg("carousel updated")
	if s.notifier != nil {
		s.notifier.BroadcastSlots(updated)
	}
	return updated, nil
}

// ListRevisions returns the most recent bulk updates, newest first.
func (s *CarouselService) ListRevisions(ctx context.Context, limit int) ([]*domain.CarouselRevision, error) {
	if limit <= 0 {
		limit = defaultRevisionLimit
	}
	if limit > maxRevisionLimit {
		limit = maxRevisionLimit
	}
	return s.revisionRepo.ListRecent(ctx, limit)
}

// Resolve produces the nine public carousel entries. Curated slots are used
// when the store answers; otherwise the newest uploads fill the carousel.
func (s *CarouselService) Resolve(ctx context.Context) (*domain.Carousel, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
	stored, storeErr := s.slotRepo.List(readCtx)
	cancel()

	if storeErr == nil {
		metrics.RecordCarouselResolution(metrics.SourceDatabase)
		return s.resolveCurated(ctx, domain.NormalizeSlots(stored)), nil
	}

	s.logger.Warn().Err(storeErr).Msg("slot store unavailable, falling back to recent uploads")

	page, err := s.catalog.FetchRecent(ctx, domain.SlotCount, "")
	if err != nil {
		metrics.RecordCarouselResolution(metrics.SourceUnavailable)
		s.logger.Error().Err(err).Msg("recent uploads fallback failed")
		return nil, &domain.CarouselUnavailableError{StoreErr: storeErr, FallbackErr: err}
	}

	metrics.RecordCarouselResolution(metrics.SourceFallback)
	entries := make([]domain.CarouselEntry, domain.SlotCount)
	for i := range entries {
		position := i + 1
		if i < len(page.Videos) {
			entries[i] = domain.VideoEntry(position, page.Videos[i])
			continue
		}
		entries[i] = domain.PlaceholderEntry(position)
	}
	return &domain.Carousel{Entries: entries, IsFromDatabase: false}, nil
}

func (s *CarouselService) resolveCurated(ctx context.Context, slots []*domain.Slot) *domain.Carousel {
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.HasVideo() {
			ids = append(ids, *slot.VideoID)
		}
	}

	byID := make(map[string]domain.VideoRecord, len(ids))
	if len(ids) > 0 {
		videos, err := s.catalog.FetchByIDs(ctx, ids)
		switch {
		case err == nil:
			for _, v := range videos {
				byID[v.ID] = v
			}
		case errors.Is(err, context.Canceled):
			s.logger.Debug().Err(err).Msg("carousel hydration cancelled")
		default:
			s.logger.Error().Err(err).Int("ids", len(ids)).Msg("carousel hydration failed, showing placeholders")
		}
	}

	entries := make([]domain.CarouselEntry, len(slots))
	for i, slot := range slots {
		if slot.HasVideo() {
			if video, ok := byID[*slot.VideoID]; ok {
				entries[i] = domain.VideoEntry(slot.Position, video)
				continue
			}
		}
		entries[i] = domain.PlaceholderEntry(slot.Position)
	}
	return &domain.Carousel{Entries: entries, IsFromDatabase: true}
}
