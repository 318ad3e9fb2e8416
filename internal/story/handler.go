package story

import (
	"net/http"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateNode(w http.ResponseWriter, r *http.Request) {
	var req NodeRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, r, err)
		return
	}

	node, err := h.service.NextNode(r.Context(), req)
	if err != nil {
		config.Error(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, node)
}
