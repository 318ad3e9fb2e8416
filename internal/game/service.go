package game

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

type GameService interface {
	CreateJob(ctx context.Context, userID uuid.UUID, req CreateJobRequest) (*CreateJobResponse, error)
	GetStatus(ctx context.Context, userID, jobID uuid.UUID) (*JobStatusResponse, error)
}

type gameService struct {
	repo    Repository
	queue   Queue
	enabled bool
}

// NewService builds the submitter side of the pipeline. enabled reports
// whether a generation backend is configured.
func NewService(repo Repository, queue Queue, enabled bool) GameService {
	return &gameService{repo: repo, queue: queue, enabled: enabled}
}

// CreateJob records a pending job and hands it to the workers without
// waiting for the result.
func (s *gameService) CreateJob(ctx context.Context, userID uuid.UUID, req CreateJobRequest) (*CreateJobResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperr.BadRequest("topic is required to generate a game")
	}
	if !s.enabled {
		return nil, apperr.DependencyUnavailable("game generation is not configured")
	}

	job := &GenerationJob{
		ID:           uuid.New(),
		OwnerUserID:  userID,
		Topic:        topic,
		ConceptID:    concept.Normalize(topic),
		ForceRefresh: req.ForceRefresh,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, apperr.Internal("failed to create job", err)
	}

	log := config.WithContext(ctx).WithField("job_id", job.ID)
	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		// The row is durable; the sweeper picks it up after the claim grace.
		log.WithError(err).Warn("Failed to enqueue job")
	}
	log.WithField("topic", topic).Info("Game job submitted")

	return &CreateJobResponse{JobID: job.ID, Status: job.Status}, nil
}

func (s *gameService) GetStatus(ctx context.Context, userID, jobID uuid.UUID) (*JobStatusResponse, error) {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, apperr.Internal("failed to load job", err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}
	if job.OwnerUserID != userID {
		return nil, apperr.Forbidden("you do not have access to this job")
	}
	return newJobStatusResponse(job), nil
}
