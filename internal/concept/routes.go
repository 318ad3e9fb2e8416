package concept

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/generate", h.Generate)
	r.Post("/favorite/toggle", h.ToggleFavorite)
	r.Put("/favorite", h.SetFavorite)
	r.Post("/quiz-attempts", h.RecordQuizAttempt)
	return r
}
