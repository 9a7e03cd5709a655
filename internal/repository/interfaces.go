package repository

import (
	"context"

	"github.com/podcastsite/backend/internal/domain"
)

type SlotRepository interface {
	// List returns stored rows ordered by position. Missing positions are not synthesised.
	List(ctx context.Context) ([]*domain.Slot, error)
	// ReplaceAll upserts every slot and records revision in a single transaction.
	ReplaceAll(ctx context.Context, slots []*domain.Slot, revision *domain.CarouselRevision) error
	// SeedEmpty inserts empty rows for positions that do not exist yet.
	SeedEmpty(ctx context.Context) (int64, error)
}

type RevisionRepository interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.CarouselRevision, error)
}

type Repositories struct {
	Slot     SlotRepository
	Revision RevisionRepository
}
