package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/podcastsite/backend/internal/log"
	"github.com/rs/zerolog"
)

func logger() *zerolog.Logger {
	l := log.WithComponent("handlers")
	return &l
}

// envelope is the response shape shared by the carousel and admin APIs.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Error().Err(err).Msg("failed to encode response")
	}
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}
