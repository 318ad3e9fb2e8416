package game

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateJob)
	return r
}

func JobRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{job_id}", h.GetJob)
	return r
}
