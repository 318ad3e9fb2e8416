package streak

import (
	"net/http"

	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type Handler struct {
	service StreakService
}

func NewHandler(s StreakService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserID(r.Context())
	if err != nil {
		log.Warn("Unauthenticated streak submission")
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req SubmitRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	history, err := h.service.Submit(r.Context(), userID, req)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, HistoryResponse{Message: "streak saved", Streaks: history})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserID(r.Context())
	if err != nil {
		log.Warn("Unauthenticated streak history request")
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	history, err := h.service.History(r.Context(), userID)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, HistoryResponse{Streaks: history})
}
