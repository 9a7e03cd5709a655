package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/podcastsite/backend/internal/api/middleware"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/service"
)

type CarouselHandler struct {
	carouselService *service.CarouselService
}

func NewCarouselHandler(carouselService *service.CarouselService) *CarouselHandler {
	return &CarouselHandler{carouselService: carouselService}
}

type UpdateSlotsRequest struct {
	Slots []domain.SlotAssignment `json:"slots"`
}

// Get serves the resolved public carousel.
func (h *CarouselHandler) Get(w http.ResponseWriter, r *http.Request) {
	carousel, err := h.carouselService.Resolve(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCarouselUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Episodes unavailable")
			return
		}
		logger().Error().Err(err).Msg("carousel resolution failed")
		writeError(w, http.StatusInternalServerError, "Episodes unavailable")
		return
	}
	writeData(w, carousel)
}

func (h *CarouselHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.carouselService.ListSlots(r.Context())
	if err != nil {
		logger().Error().Err(err).Msg("failed to list carousel slots")
		writeError(w, http.StatusInternalServerError, "Failed to fetch carousel slots")
		return
	}
	writeData(w, slots)
}

func (h *CarouselHandler) UpdateSlots(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Reason)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := ""
	if claims, ok := middleware.GetSessionClaims(r.Context()); ok {
		sessionID = claims.ID
	}

	slots, err := h.carouselService.ReplaceSlots(r.Context(), sessionID, req.Slots)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Reason)
			return
		}
		logger().Error().Err(err).Msg("failed to update carousel slots")
		writeError(w, http.StatusInternalServerError, "Failed to update carousel slots")
		return
	}
	writeData(w, slots)
}

func (h *CarouselHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	revisions, err := h.carouselService.ListRevisions(r.Context(), limit)
	if err != nil {
		logger().Error().Err(err).Msg("failed to list carousel revisions")
		writeError(w, http.StatusInternalServerError, "Failed to fetch carousel revisions")
		return
	}
	writeData(w, revisions)
}
