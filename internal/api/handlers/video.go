package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/service"
)

const defaultMaxResults = 50

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Get answers either an explicit id lookup (?ids=a,b) or a page of recent
// uploads (?maxResults=&pageToken=).
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		feed *service.VideoFeed
		err  error
	)
	if rawIDs := q.Get("ids"); rawIDs != "" {
		feed, err = h.videoService.ByIDs(r.Context(), strings.Split(rawIDs, ","))
	} else {
		maxResults, convErr := strconv.Atoi(q.Get("maxResults"))
		if convErr != nil {
			maxResults = defaultMaxResults
		}
		feed, err = h.videoService.Recent(r.Context(), maxResults, q.Get("pageToken"))
	}

	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			logger().Error().Err(err).Msg("video catalog is not configured")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "YouTube API configuration missing"})
			return
		}
		logger().Error().Err(err).Msg("video catalog request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch YouTube data"})
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
