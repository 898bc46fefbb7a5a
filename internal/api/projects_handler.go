package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
)

// projectsHandler groups project lifecycle HTTP handlers.
type projectsHandler struct {
	projects *org.ProjectService
	metrics  *metrics.Metrics
}

func newProjectsHandler(projects *org.ProjectService, m *metrics.Metrics) *projectsHandler {
	return &projectsHandler{projects: projects, metrics: m}
}

// CreateProject handles POST /projects.
func (h *projectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input org.ProjectInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	project, err := h.projects.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("project", "create")
	writeJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PATCH /projects/{projectId}.
func (h *projectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")

	var input org.ProjectInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	project, err := h.projects.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("project", "update")
	writeJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{projectId}.
func (h *projectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")

	if err := h.projects.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("project", "delete")
	w.WriteHeader(http.StatusNoContent)
}
