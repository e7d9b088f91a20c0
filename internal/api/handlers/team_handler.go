package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// TeamHandler handles HTTP requests related to teams.
type TeamHandler struct {
	service services.TeamServiceProvider
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service services.TeamServiceProvider) *TeamHandler {
	return &TeamHandler{service: service}
}

// TeamPayload defines the structure for team create/update requests.
type TeamPayload struct {
	Name string `json:"name"`
}

// GetAll handles the request to get all teams.
func (h *TeamHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.GetAllTeams()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve teams")
		respondError(w, http.StatusInternalServerError, "failed to retrieve teams")
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// Get handles the request to get a single team by its ID.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "team not found")
		return
	}

	team, err := h.service.GetTeamByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "team not found")
			return
		}
		log.Error().Err(err).Int64("team_id", id).Msg("Failed to get team")
		respondError(w, http.StatusInternalServerError, "failed to get team")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// Create handles the request to create a new team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload TeamPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	team, err := h.service.CreateTeam(payload.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create team")
		respondError(w, http.StatusInternalServerError, "failed to create team")
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

// Update handles the request to rename a team.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "team not found")
		return
	}

	var payload TeamPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		respondError(w, http.StatusBadRequest, "must include a name field")
		return
	}

	team, err := h.service.UpdateTeam(id, payload.Name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "team not found")
			return
		}
		log.Error().Err(err).Int64("team_id", id).Msg("Failed to update team")
		respondError(w, http.StatusInternalServerError, "failed to update team")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// Delete handles the request to delete a team.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "team not found")
		return
	}

	if err := h.service.DeleteTeam(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "team not found")
			return
		}
		log.Error().Err(err).Int64("team_id", id).Msg("Failed to delete team")
		respondError(w, http.StatusInternalServerError, "failed to delete team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPlayers handles the request to list a team's roster.
func (h *TeamHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "team not found")
		return
	}

	players, err := h.service.GetTeamPlayers(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "team not found")
			return
		}
		log.Error().Err(err).Int64("team_id", id).Msg("Failed to list team players")
		respondError(w, http.StatusInternalServerError, "failed to list team players")
		return
	}
	respondJSON(w, http.StatusOK, players)
}
