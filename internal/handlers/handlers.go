package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bigdaditor/weather-board-backend/internal/database"
	"github.com/bigdaditor/weather-board-backend/internal/kma"
	"github.com/bigdaditor/weather-board-backend/internal/period"
	"github.com/bigdaditor/weather-board-backend/internal/statistics"
)

type Handler struct {
	repo  *database.Repository
	stats *statistics.Service
	kma   *kma.Client
	log   zerolog.Logger
}

func New(repo *database.Repository, stats *statistics.Service, kmaClient *kma.Client, log zerolog.Logger) *Handler {
	return &Handler{
		repo:  repo,
		stats: stats,
		kma:   kmaClient,
		log:   log,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the service error taxonomy onto HTTP statuses: malformed
// dates are the client's (or an upstream feed's) fault, missing rows are 404,
// everything else is a store failure.
func (h *Handler) respondError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, period.ErrMalformedDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, msg, http.StatusNotFound)
	default:
		h.log.Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
