package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acourt/roster/internal/org"
)

// companyHandler groups the company-scoped read handlers.
type companyHandler struct {
	companies *org.CompanyService
}

func newCompanyHandler(companies *org.CompanyService) *companyHandler {
	return &companyHandler{companies: companies}
}

// GetUsers handles GET /company/{companyId}/users.
func (h *companyHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	users, err := h.companies.GetUsers(r.Context(), companyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetTeams handles GET /company/{companyId}/teams.
func (h *companyHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	teams, err := h.companies.GetTeams(r.Context(), companyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

// GetAnnouncements handles GET /company/{companyId}/announcements.
func (h *companyHandler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	anns, err := h.companies.GetAnnouncements(r.Context(), companyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, anns)
}

// GetProjects handles GET /company/{companyId}/teams/{teamId}/projects.
func (h *companyHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	teamID := chi.URLParam(r, "teamId")

	projects, err := h.companies.GetProjects(r.Context(), companyID, teamID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}
