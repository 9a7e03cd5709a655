package domain

import (
	"fmt"
	"time"
)

type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"publishedAt"`
	Duration     string    `json:"duration"`     // "H:MM:SS" or "M:SS"
	ThumbnailURL string    `json:"thumbnailUrl"` // empty when no candidate exists
	URL          string    `json:"youtubeUrl"`   // canonical watch link
	ViewCount    string    `json:"viewCount"`    // "1.2M", "4.2K", "850"
	Category     string    `json:"category"`     // upstream category id
}

// VideoPage is one page of recent uploads, newest first.
type VideoPage struct {
	Videos        []VideoRecord `json:"videos"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
}

type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

// CarouselEntry is the resolved content of one carousel position.
type CarouselEntry struct {
	Position      int          `json:"position"`
	ID            string       `json:"id"`
	IsPlaceholder bool         `json:"isPlaceholder"`
	Video         *VideoRecord `json:"video,omitempty"`
}

type Carousel struct {
	Entries        []CarouselEntry `json:"slots"`
	IsFromDatabase bool            `json:"isFromDatabase"`
}

func PlaceholderID(position int) string {
	return fmt.Sprintf("placeholder-%d", position)
}

func PlaceholderEntry(position int) CarouselEntry {
	return CarouselEntry{
		Position:      position,
		ID:            PlaceholderID(position),
		IsPlaceholder: true,
	}
}

func VideoEntry(position int, video VideoRecord) CarouselEntry {
	return CarouselEntry{
		Position: position,
		ID:       video.ID,
		Video:    &video,
	}
}
