package youtube_test

import (
	"testing"

	"github.com/podcastsite/backend/internal/youtube"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "hours minutes seconds", code: "PT1H30M45S", want: "1:30:45"},
		{name: "minutes and seconds", code: "PT5M9S", want: "5:09"},
		{name: "nothing", code: "PT", want: "0:00"},
		{name: "empty string", code: "", want: "0:00"},
		{name: "seconds only", code: "PT42S", want: "0:42"},
		{name: "hours only", code: "PT2H", want: "2:00:00"},
		{name: "long episode", code: "PT10H5M", want: "10:05:00"},
		{name: "garbage", code: "four minutes", want: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, youtube.FormatDuration(tt.code))
		})
	}
}

func TestFormatViewCount(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{count: 1_234_567, want: "1.2M"},
		{count: 1_000_000, want: "1.0M"},
		{count: 4_200, want: "4.2K"},
		{count: 1_000, want: "1.0K"},
		{count: 999, want: "999"},
		{count: 850, want: "850"},
		{count: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, youtube.FormatViewCount(tt.count))
		})
	}
}

func TestBestThumbnail(t *testing.T) {
	thumb := func(url string) *youtube.Thumbnail { return &youtube.Thumbnail{URL: url} }

	tests := []struct {
		name   string
		thumbs *youtube.Thumbnails
		want   string
	}{
		{
			name: "maxres wins",
			thumbs: &youtube.Thumbnails{
				Maxres:  thumb("maxres.jpg"),
				High:    thumb("high.jpg"),
				Default: thumb("default.jpg"),
			},
			want: "maxres.jpg",
		},
		{
			name:   "falls through to medium",
			thumbs: &youtube.Thumbnails{Medium: thumb("medium.jpg"), Default: thumb("default.jpg")},
			want:   "medium.jpg",
		},
		{
			name:   "empty url is skipped",
			thumbs: &youtube.Thumbnails{Standard: thumb(""), Default: thumb("default.jpg")},
			want:   "default.jpg",
		},
		{
			name:   "no candidates",
			thumbs: &youtube.Thumbnails{},
			want:   "",
		},
		{
			name:   "nil thumbnails",
			thumbs: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, youtube.BestThumbnail(tt.thumbs))
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", youtube.WatchURL("dQw4w9WgXcQ"))
}
