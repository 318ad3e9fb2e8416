package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/brainboyai/tiny-tutor-api/internal/auth"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/game"
	"github.com/brainboyai/tiny-tutor-api/internal/generator"
	"github.com/brainboyai/tiny-tutor-api/internal/profile"
	"github.com/brainboyai/tiny-tutor-api/internal/router"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
	"github.com/brainboyai/tiny-tutor-api/internal/story"
	"github.com/brainboyai/tiny-tutor-api/internal/streak"
)

type Container struct {
	Settings *config.Settings
	DB       *gorm.DB
	Queue    game.Queue

	AuthHandler      *auth.Handler
	ConceptContainer *concept.ConceptContainer
	StreakContainer  *streak.StreakContainer
	GameContainer    *game.GameContainer
	StoryContainer   *story.StoryContainer
	ProfileContainer *profile.ProfileContainer
}

// New connects the database and job queue and wires every feature.
func New(ctx context.Context, settings *config.Settings) (*Container, error) {
	if settings.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	auth.Init(settings.JWTSecret)

	db, err := config.Connect(ctx, settings.DatabaseDSN, settings.DBConnAttempts)
	if err != nil {
		return nil, err
	}

	gen, err := generator.FromSettings(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}
	if gen == nil {
		config.WithContext(ctx).Warn("No generation backend configured; generation endpoints will return 503")
	}

	queue, err := game.NewQueue(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("init job queue: %w", err)
	}

	return Wire(settings, db, queue, gen), nil
}

// Wire builds the feature containers from already opened resources.
func Wire(settings *config.Settings, db *gorm.DB, queue game.Queue, gen *generator.Generator) *Container {
	var (
		contentGen concept.ContentGenerator
		gameGen    game.Generator
		storyGen   story.StructuredGenerator
	)
	if gen != nil {
		contentGen, gameGen, storyGen = gen, gen, gen
	}

	authHandler := auth.NewHandler(auth.SessionCookie{
		Domain: settings.CookieDomain,
		Secure: settings.CookieSecure,
	})
	statsRepo := stats.NewRepository(db)
	conceptContainer := concept.NewConceptContainer(db, statsRepo, contentGen)
	streakContainer := streak.NewStreakContainer(db)
	gameContainer := game.NewGameContainer(
		db,
		queue,
		gameGen,
		conceptContainer.Service,
		game.RunnerConfigFromSettings(settings),
	)
	storyContainer := story.NewStoryContainer(storyGen)
	profileContainer := profile.NewProfileContainer(
		conceptContainer.Service,
		streakContainer.Service,
		statsRepo,
	)

	return &Container{
		Settings:         settings,
		DB:               db,
		Queue:            queue,
		AuthHandler:      authHandler,
		ConceptContainer: conceptContainer,
		StreakContainer:  streakContainer,
		GameContainer:    gameContainer,
		StoryContainer:   storyContainer,
		ProfileContainer: profileContainer,
	}
}

func (c *Container) Handler() *chi.Mux {
	return router.New(router.RouterConfig{
		AllowedOrigins: c.Settings.Origins(),
		AuthHandler:    c.AuthHandler,
		ConceptHandler: c.ConceptContainer.Handler,
		StreakHandler:  c.StreakContainer.Handler,
		GameHandler:    c.GameContainer.Handler,
		StoryHandler:   c.StoryContainer.Handler,
		ProfileHandler: c.ProfileContainer.Handler,
	})
}

func (c *Container) Runner() *game.Runner {
	return c.GameContainer.Runner
}

func (c *Container) Close() error {
	var errs []error
	if c.Queue != nil {
		errs = append(errs, c.Queue.Close())
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
