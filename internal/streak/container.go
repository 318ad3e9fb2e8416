package streak

import "gorm.io/gorm"

type StreakContainer struct {
	Service StreakService
	Handler *Handler
}

func NewStreakContainer(db *gorm.DB) *StreakContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &StreakContainer{
		Service: service,
		Handler: handler,
	}
}
