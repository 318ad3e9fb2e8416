package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type Handler struct {
	service GameService
}

func NewHandler(s GameService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserID(r.Context())
	if err != nil {
		log.Warn("Unauthenticated game request")
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req CreateJobRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	resp, err := h.service.CreateJob(r.Context(), userID, req)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusAccepted, resp)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserID(r.Context())
	if err != nil {
		log.Warn("Unauthenticated job status request")
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	jobID, err := uuid.Parse(chi.URLParam(r, "job_id"))
	if err != nil {
		config.Error(w, r, apperr.NotFound("job not found"))
		return
	}

	resp, err := h.service.GetStatus(r.Context(), userID, jobID)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
