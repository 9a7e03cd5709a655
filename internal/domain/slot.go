package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SlotCount is the number of fixed carousel positions.
const SlotCount = 9

// MaxVideoIDLength bounds the stored identifier column.
const MaxVideoIDLength = 20

type Slot struct {
	Position  int        `json:"position" gorm:"primaryKey;autoIncrement:false"`
	VideoID   *string    `json:"videoId" gorm:"type:varchar(20)"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

func (Slot) TableName() string {
	return "carousel_slots"
}

// HasVideo reports whether the slot is bound to a video.
func (s *Slot) HasVideo() bool {
	return s.VideoID != nil && *s.VideoID != ""
}

// NormalizeSlots returns exactly SlotCount slots ordered by position. Positions
// missing from stored are synthesised as empty slots; rows outside 1..9 are ignored.
func NormalizeSlots(stored []*Slot) []*Slot {
	byPosition := make(map[int]*Slot, len(stored))
	for _, s := range stored {
		if s != nil {
			byPosition[s.Position] = s
		}
	}

	normalized := make([]*Slot, SlotCount)
	for i := 1; i <= SlotCount; i++ {
		if s, ok := byPosition[i]; ok {
			normalized[i-1] = &Slot{Position: i, VideoID: s.VideoID, UpdatedAt: s.UpdatedAt}
			continue
		}
		normalized[i-1] = &Slot{Position: i}
	}
	return normalized
}

// SlotAssignment is one entry of a bulk slot update.
type SlotAssignment struct {
	Position int     `json:"position" validate:"min=1,max=9"`
	VideoID  *string `json:"videoId" validate:"omitempty,videoid"`
}

// UnmarshalJSON rejects non-integer positions and non-string video ids with a
// ValidationError instead of a generic decode error.
func (a *SlotAssignment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position json.RawMessage `json:"position"`
		VideoID  json.RawMessage `json:"videoId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewValidationError("slots", "each slot must be an object")
	}

	if len(raw.Position) > 0 {
		if err := json.Unmarshal(raw.Position, &a.Position); err != nil {
			return NewValidationError("position", fmt.Sprintf("Invalid position: %s", string(raw.Position)))
		}
	}

	a.VideoID = nil
	if len(raw.VideoID) == 0 || bytes.Equal(raw.VideoID, []byte("null")) {
		return nil
	}
	var id string
	if err := json.Unmarshal(raw.VideoID, &id); err != nil {
		return NewValidationError("videoId", fmt.Sprintf("Invalid videoId for position %d", a.Position))
	}
	a.VideoID = &id
	return nil
}

// CarouselRevision is an audit record of one successful bulk update.
type CarouselRevision struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID string         `json:"sessionId" gorm:"not null"`
	Slots     datatypes.JSON `json:"slots" gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
}
