package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/podcastsite/backend/internal/youtube"
)

const (
	FakeAPIKey            = "test-youtube-key"
	FakeChannelID         = "UCtestchannel"
	FakeUploadsPlaylistID = "UUtestuploads"
)

// FakeVideo is a video served by FakeYouTube.
type FakeVideo struct {
	ID          string
	Title       string
	PublishedAt time.Time
	Duration    string
	Views       int64
	Thumbnail   string
}

// FakeYouTube is an in-process stand-in for the YouTube Data API v3.
type FakeYouTube struct {
	Server *httptest.Server

	mu          sync.Mutex
	videos      map[string]FakeVideo
	uploads     []string
	failStatus  int
	failMessage string
	requests    map[string]int
}

// NewFakeYouTube starts a fake API server that is closed when the test ends.
func NewFakeYouTube(t *testing.T) *FakeYouTube {
	t.Helper()

	f := &FakeYouTube{
		videos:   make(map[string]FakeVideo),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/videos", f.handleVideos)
	mux.HandleFunc("/playlistItems", f.handlePlaylistItems)
	mux.HandleFunc("/channels", f.handleChannels)

	f.Server = httptest.NewServer(f.guard(mux))
	t.Cleanup(f.Server.Close)

	return f
}

// ClientConfig returns a youtube.Config pointing at the fake.
func (f *FakeYouTube) ClientConfig() youtube.Config {
	return youtube.Config{
		APIKey:    FakeAPIKey,
		ChannelID: FakeChannelID,
		BaseURL:   f.Server.URL,
		Timeout:   5 * time.Second,
	}
}

// AddVideo registers a video and appends it to the channel uploads.
func (f *FakeYouTube) AddVideo(v FakeVideo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if v.PublishedAt.IsZero() {
		v.PublishedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	if v.Duration == "" {
		v.Duration = "PT45M10S"
	}
	f.videos[v.ID] = v
	f.uploads = append(f.uploads, v.ID)
}

// AddVideos registers n videos named prefix-1..prefix-n, one day apart, the
// last one being the newest.
func (f *FakeYouTube) AddVideos(prefix string, n int) []FakeVideo {
	added := make([]FakeVideo, n)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		added[i] = FakeVideo{
			ID:          fmt.Sprintf("%s-%d", prefix, i+1),
			Title:       fmt.Sprintf("Episode %d", i+1),
			PublishedAt: base.Add(time.Duration(i) * 24 * time.Hour),
			Views:       int64(1000 * (i + 1)),
		}
		f.AddVideo(added[i])
	}
	return added
}

// FailWith makes every subsequent request return status with message.
// A zero status restores normal behaviour.
func (f *FakeYouTube) FailWith(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
	f.failMessage = message
}

// RequestCount returns how many requests hit path.
func (f *FakeYouTube) RequestCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *FakeYouTube) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		status, message := f.failStatus, f.failMessage
		f.mu.Unlock()

		if status != 0 {
			writeAPIError(w, status, message)
			return
		}
		if r.URL.Query().Get("key") != FakeAPIKey {
			writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeYouTube) handleVideos(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := []map[string]interface{}{}
	for _, id := range strings.Split(r.URL.Query().Get("id"), ",") {
		v, ok := f.videos[id]
		if !ok {
			continue
		}
		items = append(items, map[string]interface{}{
			"id": v.ID,
			"snippet": map[string]interface{}{
				"title":       v.Title,
				"description": "Description of " + v.Title,
				"publishedAt": v.PublishedAt.UTC().Format(time.RFC3339),
				"categoryId":  "22",
				"thumbnails": map[string]interface{}{
					"high":    map[string]string{"url": thumbnailFor(v)},
					"default": map[string]string{"url": "https://i.ytimg.com/vi/" + v.ID + "/default.jpg"},
				},
			},
			"contentDetails": map[string]string{"duration": v.Duration},
			"statistics":     map[string]string{"viewCount": strconv.FormatInt(v.Views, 10)},
		})
	}
	writeJSON(w, map[string]interface{}{"items": items})
}

func (f *FakeYouTube) handlePlaylistItems(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := r.URL.Query()
	if q.Get("playlistId") != FakeUploadsPlaylistID {
		writeAPIError(w, http.StatusNotFound, "The playlist identified with the request's playlistId parameter cannot be found.")
		return
	}

	maxResults, err := strconv.Atoi(q.Get("maxResults"))
	if err != nil || maxResults <= 0 {
		maxResults = 5
	}
	offset, _ := strconv.Atoi(q.Get("pageToken"))

	// Uploads playlists list newest first.
	ordered := make([]string, len(f.uploads))
	for i, id := range f.uploads {
		ordered[len(f.uploads)-1-i] = id
	}

	end := offset + maxResults
	if end > len(ordered) {
		end = len(ordered)
	}
	items := []map[string]interface{}{}
	if offset < len(ordered) {
		for _, id := range ordered[offset:end] {
			items = append(items, map[string]interface{}{
				"snippet": map[string]interface{}{
					"resourceId": map[string]string{"videoId": id},
				},
			})
		}
	}

	resp := map[string]interface{}{"items": items}
	if end < len(ordered) {
		resp["nextPageToken"] = strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

func (f *FakeYouTube) handleChannels(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != FakeChannelID {
		writeJSON(w, map[string]interface{}{"items": []interface{}{}})
		return
	}

	f.mu.Lock()
	videoCount := len(f.videos)
	f.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"items": []map[string]interface{}{{
			"id": FakeChannelID,
			"snippet": map[string]interface{}{
				"title":       "The Test Podcast",
				"description": "Weekly conversations",
				"thumbnails": map[string]interface{}{
					"high": map[string]string{"url": "https://yt3.ggpht.com/channel-high.jpg"},
				},
			},
			"statistics": map[string]string{
				"subscriberCount": "12345",
				"videoCount":      strconv.Itoa(videoCount),
			},
			"contentDetails": map[string]interface{}{
				"relatedPlaylists": map[string]string{"uploads": FakeUploadsPlaylistID},
			},
		}},
	})
}

func thumbnailFor(v FakeVideo) string {
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return "https://i.ytimg.com/vi/" + v.ID + "/hqdefault.jpg"
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
		},
	})
}
