package concept

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type Handler struct {
	service ConceptService
}

func NewHandler(s ConceptService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	resp, err := h.service.Resolve(r.Context(), userID, req)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req FavoriteRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	e, err := h.service.ToggleFavorite(r.Context(), userID, req.Word)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, FavoriteResponse{Word: e.Word, ConceptID: e.ConceptID, IsFavorite: e.IsFavorite})
}

func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req FavoriteRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}
	if req.IsFavorite == nil {
		config.Error(w, r, apperr.BadRequest("is_favorite is required"))
		return
	}

	e, err := h.service.SetFavorite(r.Context(), userID, req.Word, *req.IsFavorite)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, FavoriteResponse{Word: e.Word, ConceptID: e.ConceptID, IsFavorite: e.IsFavorite})
}

func (h *Handler) RecordQuizAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req QuizAttemptRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	st, err := h.service.RecordQuizAttempt(r.Context(), userID, req)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, QuizAttemptResponse{Message: "quiz attempt recorded", Stats: st})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, entries)
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.UserID(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Request without an authenticated user")
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}
