package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
)

// usersHandler groups user lifecycle HTTP handlers.
type usersHandler struct {
	users   *org.UserService
	metrics *metrics.Metrics
}

func newUsersHandler(users *org.UserService, m *metrics.Metrics) *usersHandler {
	return &usersHandler{users: users, metrics: m}
}

// Login handles POST /users/login.
func (h *usersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds org.CredentialsInput
	if err := readJSON(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Login(r.Context(), &creds)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// AddUser handles POST /company/{companyId}/users.
func (h *usersHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	var input org.AddUserInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Add(r.Context(), companyID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("user", "create")
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser handles PATCH /users/{userId}.
func (h *usersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	var input org.UpdateUserInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("user", "update")
	writeJSON(w, http.StatusOK, u)
}

// ReinstateUser handles PATCH /users/{userId}/reinstate.
func (h *usersHandler) ReinstateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	var creds org.CredentialsInput
	if err := readJSON(r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	u, err := h.users.Reinstate(r.Context(), id, &creds)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("user", "reinstate")
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /users/{userId} (soft delete).
func (h *usersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("user", "delete")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUserPermanent handles DELETE /users/{userId}/permanent.
func (h *usersHandler) DeleteUserPermanent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	if err := h.users.DeletePermanent(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.IncEntityWrite("user", "delete_permanent")
	w.WriteHeader(http.StatusNoContent)
}
