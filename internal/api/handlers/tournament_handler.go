package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apython1998/ultistats/internal/models"
	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// TournamentHandler handles HTTP requests related to tournaments.
type TournamentHandler struct {
	service services.TournamentServiceProvider
}

// NewTournamentHandler creates a new TournamentHandler.
func NewTournamentHandler(service services.TournamentServiceProvider) *TournamentHandler {
	return &TournamentHandler{service: service}
}

// GetAll handles the request to get all tournaments.
func (h *TournamentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.GetAllTournaments()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve tournaments")
		respondError(w, http.StatusInternalServerError, "failed to retrieve tournaments")
		return
	}
	respondJSON(w, http.StatusOK, tournaments)
}

// Get handles the request to get a single tournament by its ID.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}

	tournament, err := h.service.GetTournamentByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Msg("Failed to get tournament")
		respondError(w, http.StatusInternalServerError, "failed to get tournament")
		return
	}
	respondJSON(w, http.StatusOK, tournament)
}

// Create handles the request to create a new tournament.
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tournament models.Tournament
	if err := json.NewDecoder(r.Body).Decode(&tournament); err != nil || tournament.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	created, err := h.service.CreateTournament(tournament)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create tournament")
		respondError(w, http.StatusInternalServerError, "failed to create tournament")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles the request to update a tournament.
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}

	var tournament models.Tournament
	if err := json.NewDecoder(r.Body).Decode(&tournament); err != nil || tournament.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	updated, err := h.service.UpdateTournament(id, tournament)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Msg("Failed to update tournament")
		respondError(w, http.StatusInternalServerError, "failed to update tournament")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a tournament.
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}

	if err := h.service.DeleteTournament(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Msg("Failed to delete tournament")
		respondError(w, http.StatusInternalServerError, "failed to delete tournament")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPlayers handles the request to list a tournament roster.
func (h *TournamentHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}

	players, err := h.service.GetTournamentPlayers(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Msg("Failed to list tournament players")
		respondError(w, http.StatusInternalServerError, "failed to list tournament players")
		return
	}
	respondJSON(w, http.StatusOK, players)
}

// AddPlayer handles the request to register a player for a tournament.
func (h *TournamentHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}
	playerID, ok := idParam(r, "playerID")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	if err := h.service.AddTournamentPlayer(id, playerID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Int64("player_id", playerID).Msg("Failed to add tournament player")
		respondError(w, http.StatusInternalServerError, "failed to add tournament player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemovePlayer handles the request to drop a player from a tournament.
func (h *TournamentHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "tournament not found")
		return
	}
	playerID, ok := idParam(r, "playerID")
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	if err := h.service.RemoveTournamentPlayer(id, playerID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "tournament player not found")
			return
		}
		log.Error().Err(err).Int64("tournament_id", id).Int64("player_id", playerID).Msg("Failed to remove tournament player")
		respondError(w, http.StatusInternalServerError, "failed to remove tournament player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
