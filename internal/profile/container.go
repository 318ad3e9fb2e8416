package profile

import "github.com/brainboyai/tiny-tutor-api/internal/stats"

type ProfileContainer struct {
	Handler *Handler
}

func NewProfileContainer(concepts ConceptLister, streaks StreakHistory, statsRepo stats.Repository) *ProfileContainer {
	service := NewService(concepts, streaks, statsRepo)
	handler := NewHandler(service)

	return &ProfileContainer{
		Handler: handler,
	}
}
