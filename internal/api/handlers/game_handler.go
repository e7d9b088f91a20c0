package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apython1998/ultistats/internal/models"
	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// GameHandler handles HTTP requests related to games and their points.
type GameHandler struct {
	service services.GameServiceProvider
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service services.GameServiceProvider) *GameHandler {
	return &GameHandler{service: service}
}

// PointPayload defines the structure for recording a played point.
type PointPayload struct {
	Won       bool    `json:"won"`
	PlayerIDs []int64 `json:"playerIds"`
}

// GetAll handles the request to get all games.
func (h *GameHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetAllGames()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve games")
		respondError(w, http.StatusInternalServerError, "failed to retrieve games")
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// Get handles the request to get a single game by its ID.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	game, err := h.service.GetGameByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Msg("Failed to get game")
		respondError(w, http.StatusInternalServerError, "failed to get game")
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// Create handles the request to create a new game.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var game models.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil || game.OpponentTeamName == "" {
		respondError(w, http.StatusBadRequest, "must include an opponentTeamName field")
		return
	}

	created, err := h.service.CreateGame(game)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create game")
		respondError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update a game.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var game models.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil || game.OpponentTeamName == "" {
		respondError(w, http.StatusBadRequest, "must include an opponentTeamName field")
		return
	}

	updated, err := h.service.UpdateGame(id, game)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Msg("Failed to update game")
		respondError(w, http.StatusInternalServerError, "failed to update game")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a game.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	if err := h.service.DeleteGame(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Msg("Failed to delete game")
		respondError(w, http.StatusInternalServerError, "failed to delete game")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPoints handles the request to list the points of a game.
func (h *GameHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	points, err := h.service.GetGamePoints(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Msg("Failed to list game points")
		respondError(w, http.StatusInternalServerError, "failed to list game points")
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// AddPoint handles the request to record a played point.
func (h *GameHandler) AddPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	var payload PointPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	point, err := h.service.AddPoint(id, payload.Won, payload.PlayerIDs)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Msg("Failed to record point")
		respondError(w, http.StatusInternalServerError, "failed to record point")
		return
	}
	respondJSON(w, http.StatusCreated, point)
}

// DeletePoint handles the request to remove a recorded point.
func (h *GameHandler) DeletePoint(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}
	pointID, ok := idParam(r, "pointID")
	if !ok {
		respondError(w, http.StatusNotFound, "point not found")
		return
	}

	if err := h.service.DeletePoint(id, pointID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "point not found")
			return
		}
		log.Error().Err(err).Int64("game_id", id).Int64("point_id", pointID).Msg("Failed to delete point")
		respondError(w, http.StatusInternalServerError, "failed to delete point")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
