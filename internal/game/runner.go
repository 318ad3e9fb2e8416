package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

// Generator builds a game document for a topic. *generator.Generator
// satisfies it.
type Generator interface {
	Game(ctx context.Context, topic string) (string, error)
}

// GameCache reads and writes the game mode of a user's concept entry.
type GameCache interface {
	CachedGame(ctx context.Context, userID uuid.UUID, conceptID string) (string, bool, error)
	StoreGame(ctx context.Context, userID uuid.UUID, conceptID, topic, html string) error
}

const (
	InterruptedMessage = "generation was interrupted, please try again"
	genericFailure     = "failed to generate the game, please try again"

	jobTimeout     = 5 * time.Minute
	sweepBatchSize = 100
)

type RunnerConfig struct {
	Concurrency   int
	SweepInterval time.Duration
	// ClaimGrace is how long a job may sit unclaimed before it is re-enqueued.
	ClaimGrace time.Duration
	// StaleAfter fails jobs whose worker has not reported back in time.
	StaleAfter time.Duration
}

func RunnerConfigFromSettings(s *config.Settings) RunnerConfig {
	return RunnerConfig{
		Concurrency:   s.WorkerConcurrency,
		SweepInterval: s.JobSweepInterval,
		ClaimGrace:    s.JobClaimGrace,
		StaleAfter:    s.JobStaleAfter,
	}
}

// Runner executes generation jobs. Each job runs at most once; failures are
// recorded on the job and never retried.
type Runner struct {
	repo  Repository
	queue Queue
	gen   Generator
	cache GameCache
	cfg   RunnerConfig
}

// NewRunner builds a runner. gen may be nil, in which case every job fails
// with a dependency error.
func NewRunner(repo Repository, queue Queue, gen Generator, cache GameCache, cfg RunnerConfig) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 30 * time.Second
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 2 * jobTimeout
	}
	return &Runner{repo: repo, queue: queue, gen: gen, cache: cache, cfg: cfg}
}

// Run starts the worker pool and the sweeper and blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	log := config.WithContext(ctx)
	log.WithField("concurrency", r.cfg.Concurrency).Info("Starting game job runner")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Concurrency; i++ {
		workerID := i + 1
		g.Go(func() error { return r.workLoop(ctx, workerID) })
	}
	g.Go(func() error { return r.sweepLoop(ctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrQueueClosed) {
		err = nil
	}
	log.Info("Game job runner stopped")
	return err
}

func (r *Runner) workLoop(ctx context.Context, workerID int) error {
	log := config.WithContext(ctx).WithField("worker_id", workerID)
	for {
		id, err := r.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrQueueClosed) {
				return nil
			}
			log.WithError(err).Warn("Dequeue failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		r.Process(ctx, id)
	}
}

func (r *Runner) sweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	r.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep re-enqueues jobs nobody picked up and fails jobs whose worker went
// away mid-generation.
func (r *Runner) Sweep(ctx context.Context) {
	log := config.WithContext(ctx)

	n, err := r.repo.FailStale(ctx, r.cfg.StaleAfter, InterruptedMessage)
	if err != nil {
		log.WithError(err).Warn("Failed to expire stale jobs")
	} else if n > 0 {
		log.WithField("count", n).Warn("Expired interrupted jobs")
	}

	ids, err := r.repo.ListUnclaimed(ctx, r.cfg.ClaimGrace, sweepBatchSize)
	if err != nil {
		log.WithError(err).Warn("Failed to list unclaimed jobs")
		return
	}
	for _, id := range ids {
		if err := r.queue.Enqueue(ctx, id); err != nil {
			log.WithError(err).WithField("job_id", id).Warn("Failed to re-enqueue job")
			return
		}
	}
	if len(ids) > 0 {
		log.WithField("count", len(ids)).Info("Swept unclaimed jobs back onto the queue")
	}
}

// Process claims and executes one job. Ids that are unknown, already claimed
// or already final are ignored.
func (r *Runner) Process(ctx context.Context, id uuid.UUID) {
	ctx = config.ContextWithLogFields(ctx, logrus.Fields{"job_id": id.String()})
	log := config.WithContext(ctx)

	job, err := r.repo.Claim(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to claim job")
		return
	}
	if job == nil {
		log.Debug("Job already claimed or finished")
		return
	}
	ctx = config.ContextWithLogFields(ctx, logrus.Fields{"user_id": job.OwnerUserID.String()})
	log = config.WithContext(ctx).WithField("topic", job.Topic)

	started := time.Now()
	html, runErr := r.execute(ctx, job)

	// The outcome is recorded even when ctx was cancelled mid-run.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if runErr != nil {
		msg := failureMessage(runErr)
		if errors.Is(runErr, context.Canceled) {
			msg = InterruptedMessage
		}
		log.WithError(runErr).Error("Game generation failed")
		if _, err := r.repo.Fail(writeCtx, job.ID, msg); err != nil {
			log.WithError(err).Error("Failed to record job failure")
		}
		return
	}

	ok, err := r.repo.Complete(writeCtx, job.ID, html)
	switch {
	case err != nil:
		log.WithError(err).Error("Failed to record job result")
	case !ok:
		log.Warn("Job was finalized elsewhere before completion was recorded")
	default:
		log.WithField("duration", time.Since(started).String()).Info("Game generation completed")
	}
}

func (r *Runner) execute(ctx context.Context, job *GenerationJob) (html string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			config.WithContext(ctx).WithField("panic", rec).Error("Game job panic")
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	if r.gen == nil {
		return "", apperr.DependencyUnavailable("game generation is not configured")
	}

	if !job.ForceRefresh && r.cache != nil {
		cached, ok, err := r.cache.CachedGame(ctx, job.OwnerUserID, job.ConceptID)
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("Game cache lookup failed, generating")
		} else if ok {
			config.WithContext(ctx).Info("Serving cached game")
			return cached, nil
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	html, err = r.gen.Game(genCtx, job.Topic)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		if err := r.cache.StoreGame(ctx, job.OwnerUserID, job.ConceptID, job.Topic, html); err != nil {
			config.WithContext(ctx).WithError(err).Warn("Failed to cache generated game")
		}
	}
	return html, nil
}

// failureMessage is the text stored on a failed job and shown to its owner.
func failureMessage(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindGenerationFailed, apperr.KindDependencyUnavailable:
		return apperr.PublicMessage(err)
	}
	return genericFailure
}
