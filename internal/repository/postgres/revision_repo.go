package postgres

import (
	"context"

	"github.com/podcastsite/backend/internal/domain"
	"gorm.io/gorm"
)

type revisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) *revisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.CarouselRevision, error) {
	var revisions []*domain.CarouselRevision
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&revisions).Error
	if err != nil {
		return nil, err
	}
	return revisions, nil
}
