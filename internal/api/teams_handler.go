package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
)

// teamsHandler groups team lifecycle HTTP handlers.
type teamsHandler struct {
	teams   *org.TeamService
	metrics *metrics.Metrics
}

func newTeamsHandler(teams *org.TeamService, m *metrics.Metrics) *teamsHandler {
	return &teamsHandler{teams: teams, metrics: m}
}

// CreateTeam handles POST /company/{companyId}/teams.
func (h *teamsHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	var input org.TeamInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	team, err := h.teams.Create(r.Context(), companyID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("team", "create")
	writeJSON(w, http.StatusCreated, team)
}

// UpdateTeam handles PATCH /company/{companyId}/teams/{teamId}.
func (h *teamsHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	teamID := chi.URLParam(r, "teamId")

	var input org.TeamInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	team, err := h.teams.Update(r.Context(), companyID, teamID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("team", "update")
	writeJSON(w, http.StatusOK, team)
}

// DeleteTeam handles DELETE /company/{companyId}/teams/{teamId}.
func (h *teamsHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	teamID := chi.URLParam(r, "teamId")

	if err := h.teams.Delete(r.Context(), companyID, teamID); err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("team", "delete")
	w.WriteHeader(http.StatusNoContent)
}
