package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
)

// announcementsHandler groups announcement lifecycle HTTP handlers.
type announcementsHandler struct {
	announcements *org.AnnouncementService
	metrics       *metrics.Metrics
}

func newAnnouncementsHandler(announcements *org.AnnouncementService, m *metrics.Metrics) *announcementsHandler {
	return &announcementsHandler{announcements: announcements, metrics: m}
}

// CreateAnnouncement handles POST /company/{companyId}/announcements.
func (h *announcementsHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	var input org.AnnouncementInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	ann, err := h.announcements.Create(r.Context(), companyID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("announcement", "create")
	writeJSON(w, http.StatusCreated, ann)
}

// UpdateAnnouncement handles PUT /announcements/{announcementId}.
func (h *announcementsHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "announcementId")

	var input org.AnnouncementInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	ann, err := h.announcements.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("announcement", "update")
	writeJSON(w, http.StatusOK, ann)
}

// DeleteAnnouncement handles DELETE /announcements/{announcementId}. The
// acting admin's credentials ride in the request body; an empty body is
// rejected by the service.
func (h *announcementsHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "announcementId")

	var body struct {
		Credentials *org.CredentialsInput `json:"credentials"`
	}
	if err := readJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if err := h.announcements.Delete(r.Context(), id, body.Credentials); err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("announcement", "delete")
	w.WriteHeader(http.StatusNoContent)
}
