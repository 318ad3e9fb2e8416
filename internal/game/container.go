package game

import "gorm.io/gorm"

type GameContainer struct {
	Repo    Repository
	Service GameService
	Handler *Handler
	Runner  *Runner
}

// NewGameContainer wires both sides of the job pipeline around one queue.
// gen is nil when no generation backend is configured.
func NewGameContainer(db *gorm.DB, queue Queue, gen Generator, cache GameCache, cfg RunnerConfig) *GameContainer {
	repo := NewRepository(db)
	service := NewService(repo, queue, gen != nil)
	handler := NewHandler(service)
	runner := NewRunner(repo, queue, gen, cache, cfg)

	return &GameContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
		Runner:  runner,
	}
}
