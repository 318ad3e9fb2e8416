package game_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/game"
)

// memoryRepo applies the same guarded transitions as the SQL repository.
type memoryRepo struct {
	mu   sync.Mutex
	now  time.Time
	jobs map[uuid.UUID]*game.GenerationJob
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), jobs: map[uuid.UUID]*game.GenerationJob{}}
}

func (r *memoryRepo) advance(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = r.now.Add(d)
}

func (r *memoryRepo) Create(_ context.Context, job *game.GenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		return errors.New("duplicate job id")
	}
	c := *job
	c.CreatedAt, c.UpdatedAt = r.now, r.now
	r.jobs[job.ID] = &c
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (*game.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

func (r *memoryRepo) Claim(_ context.Context, id uuid.UUID) (*game.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != game.StatusPending || j.ClaimedAt != nil {
		return nil, nil
	}
	now := r.now
	j.ClaimedAt = &now
	c := *j
	return &c, nil
}

func (r *memoryRepo) finish(id uuid.UUID, apply func(*game.GenerationJob)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != game.StatusPending {
		return false
	}
	apply(j)
	j.UpdatedAt = r.now
	return true
}

func (r *memoryRepo) Complete(_ context.Context, id uuid.UUID, result string) (bool, error) {
	return r.finish(id, func(j *game.GenerationJob) {
		j.Status = game.StatusCompleted
		j.Result = result
	}), nil
}

func (r *memoryRepo) Fail(_ context.Context, id uuid.UUID, message string) (bool, error) {
	return r.finish(id, func(j *game.GenerationJob) {
		j.Status = game.StatusFailed
		j.ErrorMessage = message
	}), nil
}

func (r *memoryRepo) ListUnclaimed(_ context.Context, olderThan time.Duration, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []*game.GenerationJob
	for _, j := range r.jobs {
		if j.Status == game.StatusPending && j.ClaimedAt == nil && j.CreatedAt.Before(r.now.Add(-olderThan)) {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].CreatedAt.Before(jobs[b].CreatedAt) })
	var ids []uuid.UUID
	for _, j := range jobs {
		if len(ids) == limit {
			break
		}
		ids = append(ids, j.ID)
	}
	return ids, nil
}

func (r *memoryRepo) FailStale(_ context.Context, claimedBefore time.Duration, message string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.Status == game.StatusPending && j.ClaimedAt != nil && j.ClaimedAt.Before(r.now.Add(-claimedBefore)) {
			j.Status = game.StatusFailed
			j.ErrorMessage = message
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) job(id uuid.UUID) game.GenerationJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.jobs[id]
}

type fakeGenerator struct {
	mu     sync.Mutex
	calls  int
	html   string
	err    error
	panics bool
	block  chan struct{}
}

func (g *fakeGenerator) Game(ctx context.Context, topic string) (string, error) {
	g.mu.Lock()
	g.calls++
	block := g.block
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.panics {
		panic("template exploded")
	}
	if g.err != nil {
		return "", g.err
	}
	if g.html != "" {
		return g.html, nil
	}
	return "<html><body>" + topic + "</body></html>", nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type cacheKey struct {
	user uuid.UUID
	id   string
}

type memoryCache struct {
	mu    sync.Mutex
	games map[cacheKey]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{games: map[cacheKey]string{}}
}

func (c *memoryCache) CachedGame(_ context.Context, userID uuid.UUID, conceptID string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	html, ok := c.games[cacheKey{userID, conceptID}]
	return html, ok, nil
}

func (c *memoryCache) StoreGame(_ context.Context, userID uuid.UUID, conceptID, _ string, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.games[cacheKey{userID, conceptID}] = html
	return nil
}
