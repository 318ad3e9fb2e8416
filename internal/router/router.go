package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
	_ "github.com/brainboyai/tiny-tutor-api/internal/docs"
	"github.com/brainboyai/tiny-tutor-api/internal/game"
	"github.com/brainboyai/tiny-tutor-api/internal/middlewares"
	"github.com/brainboyai/tiny-tutor-api/internal/profile"
	"github.com/brainboyai/tiny-tutor-api/internal/story"
	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

type RouterConfig struct {
	AllowedOrigins []string

	AuthHandler    *auth.Handler
	ConceptHandler *concept.Handler
	StreakHandler  *streak.Handler
	GameHandler    *game.Handler
	StoryHandler   *story.Handler
	ProfileHandler *profile.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/concepts", concept.Routes(cfg.ConceptHandler))
		r.Mount("/streaks", streak.Routes(cfg.StreakHandler))
		r.Mount("/games", game.Routes(cfg.GameHandler))
		r.Mount("/job", game.JobRoutes(cfg.GameHandler))
		r.Mount("/story", story.Routes(cfg.StoryHandler))
		r.Mount("/profile", profile.Routes(cfg.ProfileHandler))
	})
	return r
}
