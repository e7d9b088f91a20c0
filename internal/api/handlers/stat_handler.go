package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// StatHandler handles HTTP requests related to statistic events.
type StatHandler struct {
	service services.StatServiceProvider
}

// NewStatHandler creates a new StatHandler.
func NewStatHandler(service services.StatServiceProvider) *StatHandler {
	return &StatHandler{service: service}
}

// StatPayload defines the structure for recording a statistic event.
type StatPayload struct {
	PlayerID int64  `json:"playerId"`
	PointID  int64  `json:"pointId"`
	Stat     string `json:"stat"`
}

// Create handles the request to record a single statistic event.
func (h *StatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload StatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.PlayerID == 0 || payload.PointID == 0 || payload.Stat == "" {
		respondError(w, http.StatusBadRequest, "must include playerId, pointId and stat fields")
		return
	}

	stat, err := h.service.RecordStat(payload.PlayerID, payload.PointID, payload.Stat)
	if err != nil {
		log.Error().Err(err).Int64("player_id", payload.PlayerID).Msg("Failed to record statistic")
		respondError(w, http.StatusInternalServerError, "failed to record statistic")
		return
	}
	respondJSON(w, http.StatusCreated, stat)
}

// Get handles the request to get a single statistic event.
func (h *StatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "statistic not found")
		return
	}

	stat, err := h.service.GetStatByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "statistic not found")
			return
		}
		log.Error().Err(err).Int64("stat_id", id).Msg("Failed to get statistic")
		respondError(w, http.StatusInternalServerError, "failed to get statistic")
		return
	}
	respondJSON(w, http.StatusOK, stat)
}

// Delete handles the request to delete a statistic event.
func (h *StatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "statistic not found")
		return
	}

	if err := h.service.DeleteStat(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "statistic not found")
			return
		}
		log.Error().Err(err).Int64("stat_id", id).Msg("Failed to delete statistic")
		respondError(w, http.StatusInternalServerError, "failed to delete statistic")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
