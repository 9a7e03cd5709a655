package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/podcastsite/backend/internal/api/middleware"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/service"
)

const invalidPINMessage = "Invalid PIN"

type AuthHandler struct {
	sessionService *service.SessionService
	secureCookie   bool
}

func NewAuthHandler(sessionService *service.SessionService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		secureCookie:   secureCookie,
	}
}

type LoginRequest struct {
	PIN string `json:"pin"`
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Login never tells the caller why a PIN was refused.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PIN == "" {
		writeError(w, http.StatusUnauthorized, invalidPINMessage)
		return
	}

	session, err := h.sessionService.Login(req.PIN)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			logger().Error().Err(err).Msg("login failed")
		}
		writeError(w, http.StatusUnauthorized, invalidPINMessage)
		return
	}

	middleware.SetSessionCookie(w, session.Token, int(h.sessionService.TTL().Seconds()), h.secureCookie)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := h.sessionService.Verify(middleware.SessionToken(r)); ok {
		h.sessionService.Logout(claims)
	}
	middleware.ClearSessionCookie(w, h.secureCookie)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessionService.Verify(middleware.SessionToken(r))
	if !ok {
		writeJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	expiresAt := claims.ExpiresAt.Time.UTC()
	writeJSON(w, http.StatusOK, SessionResponse{Authenticated: true, ExpiresAt: &expiresAt})
}
