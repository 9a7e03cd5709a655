package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/podcastsite/backend/internal/api/middleware"
	"github.com/podcastsite/backend/internal/domain"
	"gorm.io/gorm"
)

// SlotsBuilder creates carousel rows directly in the database
type SlotsBuilder struct {
	videoIDs  map[int]string
	positions []int
	updatedAt time.Time
}

// NewSlotsBuilder starts with no rows at all
func NewSlotsBuilder() *SlotsBuilder {
	return &SlotsBuilder{
		videoIDs:  make(map[int]string),
		updatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithVideo binds position to videoID
func (b *SlotsBuilder) WithVideo(position int, videoID string) *SlotsBuilder {
	b.videoIDs[position] = videoID
	b.positions = append(b.positions, position)
	return b
}

// WithEmpty adds an unbound row for position
func (b *SlotsBuilder) WithEmpty(position int) *SlotsBuilder {
	b.positions = append(b.positions, position)
	return b
}

// WithAllEmpty adds unbound rows for every position not yet added
func (b *SlotsBuilder) WithAllEmpty() *SlotsBuilder {
	seen := make(map[int]bool, len(b.positions))
	for _, p := range b.positions {
		seen[p] = true
	}
	for p := 1; p <= domain.SlotCount; p++ {
		if !seen[p] {
			b.positions = append(b.positions, p)
		}
	}
	return b
}

// Build inserts the rows
func (b *SlotsBuilder) Build(t *testing.T, db *gorm.DB) []*domain.Slot {
	t.Helper()

	slots := make([]*domain.Slot, 0, len(b.positions))
	for _, p := range b.positions {
		updatedAt := b.updatedAt
		slot := &domain.Slot{Position: p, UpdatedAt: &updatedAt}
		if id, ok := b.videoIDs[p]; ok {
			id := id
			slot.VideoID = &id
		}
		slots = append(slots, slot)
	}

	if len(slots) > 0 {
		if err := db.WithContext(context.Background()).Create(slots).Error; err != nil {
			t.Fatalf("failed to create slots: %v", err)
		}
	}
	return slots
}

// Assignments builds a full nine-slot update with the given bindings; every
// other position is empty.
func Assignments(bindings map[int]string) []domain.SlotAssignment {
	out := make([]domain.SlotAssignment, domain.SlotCount)
	for i := range out {
		out[i].Position = i + 1
		if id, ok := bindings[i+1]; ok {
			id := id
			out[i].VideoID = &id
		}
	}
	return out
}

// Login posts the test PIN and returns the session cookie
func (ts *TestServer) Login(t *testing.T) *http.Cookie {
	t.Helper()

	resp := ts.DoJSON(t, http.MethodPost, ts.APIURL("/auth/login"), map[string]string{"pin": ts.Config.AdminPIN}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed: status %d: %s", resp.StatusCode, string(body))
	}

	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

// DoJSON sends body as JSON with an optional cookie. Redirects are not followed.
func (ts *TestServer) DoJSON(t *testing.T, method, url string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
