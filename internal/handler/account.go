package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "name, email and password are required")
		return
	}

	u, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, userResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]userResponse{
		"user": {ID: u.ID.String(), Name: u.Name, Email: u.Email},
	})
}

func (h *Handler) updatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	var info map[string]string
	if err := decode(r, &info); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accounts.UpdatePersonalInfo(r.Context(), id, info); err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "personal info updated"})
}
