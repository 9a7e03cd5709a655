package postgres

import (
	"context"
	"fmt"

	"github.com/podcastsite/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *slotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) List(ctx context.Context) ([]*domain.Slot, error) {
	var slots []*domain.Slot
	err := r.db.WithContext(ctx).Order("position ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) ReplaceAll(ctx context.Context, slots []*domain.Slot, revision *domain.CarouselRevision) error {
	if len(slots) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "position"}},
			DoUpdates: clause.AssignmentColumns([]string{"video_id", "updated_at"}),
		}).Create(slots).Error
		if err != nil {
			return fmt.Errorf("upsert carousel slots: %w", err)
		}

		if revision != nil {
			if err := tx.Create(revision).Error; err != nil {
				return fmt.Errorf("record carousel revision: %w", err)
			}
		}
		return nil
	})
}

func (r *slotRepository) SeedEmpty(ctx context.Context) (int64, error) {
	slots := make([]*domain.Slot, domain.SlotCount)
	for i := range slots {
		slots[i] = &domain.Slot{Position: i + 1}
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(slots)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
