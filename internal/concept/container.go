package concept

import (
	"gorm.io/gorm"

	"github.com/brainboyai/tiny-tutor-api/internal/stats"
)

type ConceptContainer struct {
	Repo    Repository
	Service ConceptService
	Handler *Handler
}

// NewConceptContainer wires the concept feature. Pass a nil gen when no
// generation backend is configured.
func NewConceptContainer(db *gorm.DB, statsRepo stats.Repository, gen ContentGenerator) *ConceptContainer {
	repo := NewRepository(db)
	service := NewService(repo, statsRepo, gen)
	handler := NewHandler(service)

	return &ConceptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
