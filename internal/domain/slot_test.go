package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/podcastsite/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeSlots(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		stored []*domain.Slot
		check  func(*testing.T, []*domain.Slot)
	}{
		{
			name:   "empty store",
			stored: nil,
			check: func(t *testing.T, slots []*domain.Slot) {
				for i, s := range slots {
					assert.Equal(t, i+1, s.Position)
					assert.Nil(t, s.VideoID)
					assert.Nil(t, s.UpdatedAt)
				}
			},
		},
		{
			name: "partial rows out of order",
			stored: []*domain.Slot{
				{Position: 7, VideoID: strPtr("seven"), UpdatedAt: &now},
				{Position: 2, VideoID: strPtr("two"), UpdatedAt: &now},
			},
			check: func(t *testing.T, slots []*domain.Slot) {
				require.NotNil(t, slots[1].VideoID)
				assert.Equal(t, "two", *slots[1].VideoID)
				require.NotNil(t, slots[6].VideoID)
				assert.Equal(t, "seven", *slots[6].VideoID)
				assert.Nil(t, slots[0].VideoID)
				assert.Nil(t, slots[8].VideoID)
			},
		},
		{
			name: "rows outside range are ignored",
			stored: []*domain.Slot{
				{Position: 0, VideoID: strPtr("zero")},
				{Position: 10, VideoID: strPtr("ten")},
			},
			check: func(t *testing.T, slots []*domain.Slot) {
				for _, s := range slots {
					assert.Nil(t, s.VideoID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := domain.NormalizeSlots(tt.stored)
			require.Len(t, slots, domain.SlotCount)
			tt.check(t, slots)
		})
	}
}

func TestSlotAssignment_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantErr      bool
		wantPosition int
		wantVideoID  *string
	}{
		{
			name:         "string video id",
			input:        `{"position":3,"videoId":"abc"}`,
			wantPosition: 3,
			wantVideoID:  strPtr("abc"),
		},
		{
			name:         "null video id",
			input:        `{"position":4,"videoId":null}`,
			wantPosition: 4,
		},
		{
			name:         "missing video id",
			input:        `{"position":5}`,
			wantPosition: 5,
		},
		{
			name:    "numeric video id",
			input:   `{"position":1,"videoId":42}`,
			wantErr: true,
		},
		{
			name:    "string position",
			input:   `{"position":"1","videoId":null}`,
			wantErr: true,
		},
		{
			name:    "fractional position",
			input:   `{"position":1.5,"videoId":null}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a domain.SlotAssignment
			err := json.Unmarshal([]byte(tt.input), &a)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPosition, a.Position)
			assert.Equal(t, tt.wantVideoID, a.VideoID)
		})
	}
}

func TestCarouselUnavailableError_Unwrap(t *testing.T) {
	storeErr := &domain.UpstreamError{Status: 503, Message: "down"}
	err := &domain.CarouselUnavailableError{StoreErr: assert.AnError, FallbackErr: storeErr}

	assert.ErrorIs(t, err, domain.ErrCarouselUnavailable)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, assert.AnError)
}
