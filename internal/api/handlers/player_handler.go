package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apython1998/ultistats/internal/models"
	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// PlayerHandler handles HTTP requests related to players.
type PlayerHandler struct {
	service services.PlayerServiceProvider
	stats   services.StatServiceProvider
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(service services.PlayerServiceProvider, stats services.StatServiceProvider) *PlayerHandler {
	return &PlayerHandler{service: service, stats: stats}
}

// GetAll handles the request to get all players.
func (h *PlayerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.GetAllPlayers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve players")
		respondError(w, http.StatusInternalServerError, "failed to retrieve players")
		return
	}
	respondJSON(w, http.StatusOK, players)
}

// Get handles the request to get a single player by their ID.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	player, err := h.service.GetPlayerByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		log.Error().Err(err).Int64("player_id", id).Msg("Failed to get player")
		respondError(w, http.StatusInternalServerError, "failed to get player")
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// Create handles the request to create a new player.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var player models.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil || player.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	created, err := h.service.CreatePlayer(player)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create player")
		respondError(w, http.StatusInternalServerError, "failed to create player")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update a player.
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	var player models.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil || player.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	updated, err := h.service.UpdatePlayer(id, player)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		log.Error().Err(err).Int64("player_id", id).Msg("Failed to update player")
		respondError(w, http.StatusInternalServerError, "failed to update player")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a player.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	if err := h.service.DeletePlayer(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "player not found")
			return
		}
		log.Error().Err(err).Int64("player_id", id).Msg("Failed to delete player")
		respondError(w, http.StatusInternalServerError, "failed to delete player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatistics handles the request to list a player's statistic events.
func (h *PlayerHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	if _, err := h.service.GetPlayerByID(id); err != nil {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	stats, err := h.stats.GetPlayerStats(id)
	if err != nil {
		log.Error().Err(err).Int64("player_id", id).Msg("Failed to list player statistics")
		respondError(w, http.StatusInternalServerError, "failed to list player statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetStatTotals handles the request for a player's aggregated stat counts.
func (h *PlayerHandler) GetStatTotals(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	if _, err := h.service.GetPlayerByID(id); err != nil {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	totals, err := h.stats.GetPlayerTotals(id)
	if err != nil {
		log.Error().Err(err).Int64("player_id", id).Msg("Failed to aggregate player statistics")
		respondError(w, http.StatusInternalServerError, "failed to aggregate player statistics")
		return
	}
	respondJSON(w, http.StatusOK, totals)
}
