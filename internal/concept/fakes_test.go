package concept_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/brainboyai/tiny-tutor-api/internal/concept"
	"github.com/brainboyai/tiny-tutor-api/internal/generator"
	"github.com/brainboyai/tiny-tutor-api/internal/stats"
)

type entryKey struct {
	user uuid.UUID
	id   string
}

// memoryRepo mirrors the upsert semantics of the SQL repository.
type memoryRepo struct {
	mu      sync.Mutex
	entries map[entryKey]*concept.Entry
	writes  int
	clock   time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{entries: map[entryKey]*concept.Entry{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *memoryRepo) now() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memoryRepo) Get(_ context.Context, userID uuid.UUID, conceptID string) (*concept.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryKey{userID, conceptID}]
	if !ok {
		return nil, nil
	}
	return clone(e), nil
}

func (r *memoryRepo) ensure(userID uuid.UUID, conceptID, word string) (*concept.Entry, bool) {
	k := entryKey{userID, conceptID}
	if e, ok := r.entries[k]; ok {
		return e, false
	}
	now := r.now()
	e := &concept.Entry{
		UserID:                userID,
		ConceptID:             conceptID,
		Word:                  word,
		FirstSeenAt:           now,
		LastSeenAt:            now,
		GeneratedContentCache: datatypes.JSONMap{},
		ModesGenerated:        datatypes.JSONSlice[string]{},
	}
	r.entries[k] = e
	return e, true
}

func (r *memoryRepo) Upsert(_ context.Context, userID uuid.UUID, conceptID string, p concept.Patch) (*concept.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	e, created := r.ensure(userID, conceptID, p.Word)
	if !created && !p.KeepWord {
		e.Word = p.Word
	}
	for m, payload := range p.Content {
		if m.Cacheable() {
			e.GeneratedContentCache[m.String()] = payload
		}
	}
	set := map[string]bool{}
	for _, m := range e.ModesGenerated {
		set[m] = true
	}
	for _, m := range p.Modes {
		set[m.String()] = true
	}
	modes := make([]string, 0, len(set))
	for m := range set {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	e.ModesGenerated = modes
	e.LastSeenAt = r.now()
	return clone(e), nil
}

func (r *memoryRepo) SetFavorite(_ context.Context, userID uuid.UUID, conceptID, word string, value bool) (*concept.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	e, _ := r.ensure(userID, conceptID, word)
	e.IsFavorite = value
	e.LastSeenAt = r.now()
	return clone(e), nil
}

func (r *memoryRepo) ToggleFavorite(_ context.Context, userID uuid.UUID, conceptID, word string) (*concept.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	e, created := r.ensure(userID, conceptID, word)
	if created {
		e.IsFavorite = true
	} else {
		e.IsFavorite = !e.IsFavorite
	}
	e.LastSeenAt = r.now()
	return clone(e), nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*concept.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*concept.Entry
	for k, e := range r.entries {
		if k.user == userID {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastSeenAt.After(out[j].LastSeenAt) })
	return out, nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func clone(e *concept.Entry) *concept.Entry {
	c := *e
	c.GeneratedContentCache = datatypes.JSONMap{}
	for k, v := range e.GeneratedContentCache {
		c.GeneratedContentCache[k] = v
	}
	c.ModesGenerated = append(datatypes.JSONSlice[string]{}, e.ModesGenerated...)
	return &c
}

type memoryStats struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*stats.UserStats
}

func newMemoryStats() *memoryStats {
	return &memoryStats{rows: map[uuid.UUID]*stats.UserStats{}}
}

func (s *memoryStats) Get(_ context.Context, userID uuid.UUID) (*stats.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[userID]; ok {
		c := *row
		return &c, nil
	}
	return &stats.UserStats{UserID: userID}, nil
}

func (s *memoryStats) Increment(_ context.Context, userID uuid.UUID, d stats.Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[userID]
	if !ok {
		row = &stats.UserStats{UserID: userID}
		s.rows[userID] = row
	}
	row.QuizPoints += d.QuizPoints
	row.TotalQuizQuestionsAnswered += d.Answered
	row.TotalQuizQuestionsCorrect += d.Correct
	return nil
}

// fakeGenerator numbers its outputs so tests can tell fresh content from
// cached content.
type fakeGenerator struct {
	mu       sync.Mutex
	explains []generator.ExplainInput
	quizzes  []generator.QuizInput
	quiz     []string
	err      error
}

func (g *fakeGenerator) Explain(_ context.Context, in generator.ExplainInput) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.explains = append(g.explains, in)
	if len(in.StreakContext) > 0 {
		return "contextual explanation of " + in.Word, nil
	}
	return "explanation of " + in.Word + " #" + string(rune('0'+len(g.explains))), nil
}

func (g *fakeGenerator) Quiz(_ context.Context, in generator.QuizInput) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.quizzes = append(g.quizzes, in)
	if g.quiz == nil {
		return []string{"**Question 1:** about " + in.Word}, nil
	}
	return g.quiz, nil
}

func (g *fakeGenerator) explainCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.explains)
}

var errBackend = errors.New("backend timed out")
