package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

var (
	ErrQueueClosed = errors.New("job queue closed")
	ErrQueueFull   = errors.New("job queue full")
)

// Queue carries job ids from submitters to workers. Delivery is at least
// once; workers dedupe through Repository.Claim. Enqueue never waits for
// workers, and enqueueing an id that is still waiting is a no-op.
type Queue interface {
	Enqueue(ctx context.Context, id uuid.UUID) error
	// Dequeue blocks until an id is available or ctx is done.
	Dequeue(ctx context.Context) (uuid.UUID, error)
	Close() error
}

// MemoryQueue is a bounded in-process queue. Ids are lost on restart and
// recovered by the sweeper.
type MemoryQueue struct {
	mu        sync.Mutex
	queued    map[uuid.UUID]struct{}
	ch        chan uuid.UUID
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{
		queued: make(map[uuid.UUID]struct{}, size),
		ch:     make(chan uuid.UUID, size),
		done:   make(chan struct{}),
	}
}

// Enqueue returns ErrQueueFull instead of blocking when the buffer is full.
func (q *MemoryQueue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queued[id]; ok {
		return nil
	}
	select {
	case q.ch <- id:
		q.queued[id] = struct{}{}
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	select {
	case id := <-q.ch:
		q.mu.Lock()
		delete(q.queued, id)
		q.mu.Unlock()
		return id, nil
	case <-q.done:
		return uuid.Nil, ErrQueueClosed
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// Len reports how many ids are waiting.
func (q *MemoryQueue) Len() int {
	return len(q.ch)
}

func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

// markerTTL bounds how long a lost marker can suppress a re-enqueue.
const markerTTL = time.Hour

// RedisQueue is a list-backed queue shared by API and worker processes. A
// short-lived marker key per waiting id keeps the sweeper from pushing
// duplicates.
type RedisQueue struct {
	rdb  *redis.Client
	key  string
	wait time.Duration
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key, wait: 5 * time.Second}
}

func (q *RedisQueue) marker(id string) string {
	return q.key + ":queued:" + id
}

func (q *RedisQueue) Enqueue(ctx context.Context, id uuid.UUID) error {
	marker := q.marker(id.String())
	fresh, err := q.rdb.SetNX(ctx, marker, 1, markerTTL).Result()
	if err != nil {
		return fmt.Errorf("mark %s: %w", id, err)
	}
	if !fresh {
		return nil
	}
	if err := q.rdb.LPush(ctx, q.key, id.String()).Err(); err != nil {
		_ = q.rdb.Del(context.WithoutCancel(ctx), marker).Err()
		return err
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	for {
		if err := ctx.Err(); err != nil {
			return uuid.Nil, err
		}
		res, err := q.rdb.BRPop(ctx, q.wait, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if errors.Is(err, redis.ErrClosed) {
			return uuid.Nil, ErrQueueClosed
		}
		if err != nil {
			if ctx.Err() != nil {
				return uuid.Nil, ctx.Err()
			}
			return uuid.Nil, fmt.Errorf("brpop %s: %w", q.key, err)
		}
		// res is [key, value].
		id, err := uuid.Parse(res[1])
		if err != nil {
			config.WithContext(ctx).WithField("value", res[1]).Warn("Dropping malformed job id from queue")
			continue
		}
		if err := q.rdb.Del(ctx, q.marker(res[1])).Err(); err != nil {
			config.WithContext(ctx).WithError(err).WithField("job_id", res[1]).Warn("Failed to clear queue marker")
		}
		return id, nil
	}
}

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}

const memoryQueueSize = 1024

// NewQueue builds the queue selected by settings.
func NewQueue(ctx context.Context, s *config.Settings) (Queue, error) {
	switch strings.ToLower(s.QueueDriver) {
	case "", "memory":
		return NewMemoryQueue(memoryQueueSize), nil
	case "redis":
		if s.RedisAddr == "" {
			return nil, errors.New("REDIS_ADDR is required for the redis queue")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:                  s.RedisAddr,
			DialTimeout:           5 * time.Second,
			ContextTimeoutEnabled: true,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisQueue(rdb, s.RedisQueueKey), nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", s.QueueDriver)
	}
}
