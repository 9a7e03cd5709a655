package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/podcastsite/backend/internal/api/handlers"
	"github.com/podcastsite/backend/internal/service"
	"github.com/podcastsite/backend/internal/testutil"
	"github.com/podcastsite/backend/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.YouTube.AddVideos("ep", 5)

	tests := []struct {
		name        string
		query       string
		wantIDs     []string
		wantChannel bool
		wantNext    bool
	}{
		{name: "by ids", query: "?ids=ep-2,unknown,ep-4", wantIDs: []string{"ep-2", "ep-4"}},
		{name: "recent page", query: "?maxResults=2", wantIDs: []string{"ep-5", "ep-4"}, wantChannel: true, wantNext: true},
		{name: "recent next page", query: "?maxResults=2&pageToken=4", wantIDs: []string{"ep-1"}, wantChannel: true},
		{name: "recent default size", query: "", wantIDs: []string{"ep-5", "ep-4", "ep-3", "ep-2", "ep-1"}, wantChannel: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.DoJSON(t, http.MethodGet, ts.APIURL("/youtube"+tt.query), nil, nil)
			defer resp.Body.Close()
			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var feed service.VideoFeed
			testutil.AssertJSONResponse(t, resp, &feed)

			got := make([]string, len(feed.Videos))
			for i, v := range feed.Videos {
				got[i] = v.ID
			}
			assert.Equal(t, tt.wantIDs, got)
			assert.Equal(t, len(tt.wantIDs), feed.TotalResults)
			assert.Equal(t, tt.wantChannel, feed.Channel != nil)
			assert.Equal(t, tt.wantNext, feed.NextPageToken != "")
		})
	}
}

func TestVideoHandler_Errors(t *testing.T) {
	t.Run("upstream failure", func(t *testing.T) {
		ts := testutil.NewTestServer(t)
		ts.YouTube.FailWith(http.StatusInternalServerError, "backendError")

		resp := ts.DoJSON(t, http.MethodGet, ts.APIURL("/youtube?ids=abc"), nil, nil)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusInternalServerError, "Failed to fetch YouTube data")
	})

	t.Run("missing configuration", func(t *testing.T) {
		fake := testutil.NewFakeYouTube(t)
		unconfigured := youtube.NewClient(youtube.Config{BaseURL: fake.Server.URL})
		handler := handlers.NewVideoHandler(service.NewVideoService(unconfigured))

		for _, target := range []string{"/api/youtube", "/api/youtube?ids=abc"} {
			rec := httptest.NewRecorder()
			handler.Get(rec, httptest.NewRequest(http.MethodGet, target, nil))

			testutil.AssertErrorResponse(t, rec.Result(), http.StatusInternalServerError, "YouTube API configuration missing")
		}
		assert.Equal(t, 0, fake.RequestCount("/videos"))
	})
}

func TestVideoHandler_RateLimit(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.VideoRateLimitPerMinute = 2
	ts := testutil.NewTestServerWithConfig(t, cfg)

	for i := 0; i < 2; i++ {
		resp := ts.DoJSON(t, http.MethodGet, ts.APIURL("/youtube?ids=abc"), nil, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := ts.DoJSON(t, http.MethodGet, ts.APIURL("/youtube?ids=abc"), nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))

	// Other endpoints are not limited.
	health := ts.DoJSON(t, http.MethodGet, ts.BaseURL()+"/health", nil, nil)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
