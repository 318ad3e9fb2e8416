package concept_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
	"github.com/brainboyai/tiny-tutor-api/internal/concept"
)

type fixture struct {
	repo  *memoryRepo
	stats *memoryStats
	gen   *fakeGenerator
	svc   concept.ConceptService
	user  uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:  newMemoryRepo(),
		stats: newMemoryStats(),
		gen:   &fakeGenerator{},
		user:  uuid.New(),
	}
	f.svc = concept.NewService(f.repo, f.stats, f.gen)
	return f
}

func TestResolveExplainIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := concept.GenerateRequest{Word: "Photosynthesis", Mode: concept.ModeExplain}

	first, err := f.svc.Resolve(ctx, f.user, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.Resolve(ctx, f.user, req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Source != concept.SourceGenerated || second.Source != concept.SourceCache {
		t.Errorf("sources = %s, %s; want generated, cache", first.Source, second.Source)
	}
	if first.Content != second.Content {
		t.Errorf("cached content %v differs from generated %v", second.Content, first.Content)
	}
	if f.gen.explainCalls() != 1 {
		t.Errorf("generator called %d times, want 1", f.gen.explainCalls())
	}
	if !second.LastSeenAt.After(first.LastSeenAt) {
		t.Error("cache hit should refresh last_seen_at")
	}
	if second.FirstSeenAt != first.FirstSeenAt {
		t.Error("first_seen_at must not change")
	}
	if second.GeneratedContentCache["explain"] != first.Content {
		t.Error("response should carry the persisted content map")
	}
}

func TestResolveNormalizationCollision(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "Black Hole"}); err != nil {
		t.Fatal(err)
	}
	resp, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "  black   HOLE "})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Source != concept.SourceCache || resp.ConceptID != "black_hole" {
		t.Errorf("source=%s concept_id=%s", resp.Source, resp.ConceptID)
	}
	if resp.Word != "black   HOLE" {
		t.Errorf("display word should follow the latest request, got %q", resp.Word)
	}
	if f.repo.count() != 1 {
		t.Errorf("entries = %d, want 1", f.repo.count())
	}
}

func TestResolveForceRefresh(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := concept.GenerateRequest{Word: "gravity"}

	first, _ := f.svc.Resolve(ctx, f.user, req)
	req.ForceRefresh = true
	second, err := f.svc.Resolve(ctx, f.user, req)
	if err != nil {
		t.Fatal(err)
	}
	if second.Source != concept.SourceGenerated || second.Content == first.Content {
		t.Errorf("forced refresh should regenerate, got %s %v", second.Source, second.Content)
	}
	if second.GeneratedContentCache["explain"] != second.Content {
		t.Error("forced refresh should overwrite the cached explanation")
	}
}

func TestResolveContextualBypassesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cold, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "chlorophyll"})
	if err != nil {
		t.Fatal(err)
	}

	warm, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{
		Word:          "chlorophyll",
		StreakContext: []string{"photosynthesis", " ", "light"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if warm.Source != concept.SourceGenerated {
		t.Error("contextual requests must never be served from the cold cache")
	}
	if warm.GeneratedContentCache["explain"] != cold.Content {
		t.Error("contextual requests must not overwrite the cold explanation")
	}
	if got := f.gen.explains[1].StreakContext; len(got) != 2 {
		t.Errorf("blank streak words should be dropped, got %q", got)
	}

	again, _ := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "chlorophyll"})
	if again.Source != concept.SourceCache || again.Content != cold.Content {
		t.Error("cold cache should still serve the original explanation")
	}
}

func TestResolveContextualFirstLeavesCacheEmpty(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.Resolve(context.Background(), f.user, concept.GenerateRequest{
		Word:          "mitochondria",
		StreakContext: []string{"cell"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := resp.GeneratedContentCache["explain"]; ok {
		t.Error("contextual output must not be cached")
	}
	if len(resp.ModesGenerated) != 1 || resp.ModesGenerated[0] != "explain" {
		t.Errorf("modes_generated = %v", resp.ModesGenerated)
	}
}

func TestResolveQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("NeverCached", func(t *testing.T) {
		f := newFixture()
		req := concept.GenerateRequest{Word: "atom", Mode: concept.ModeQuiz, SourceText: "An atom is small."}
		for i := 0; i < 2; i++ {
			resp, err := f.svc.Resolve(ctx, f.user, req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.Source != concept.SourceGenerated {
				t.Errorf("call %d: quiz must always be generated", i)
			}
			if _, ok := resp.GeneratedContentCache["quiz"]; ok {
				t.Error("quiz content must never be persisted")
			}
			if len(resp.ModesGenerated) != 1 || resp.ModesGenerated[0] != "quiz" {
				t.Errorf("modes_generated = %v", resp.ModesGenerated)
			}
		}
		if len(f.gen.quizzes) != 2 {
			t.Errorf("quiz generated %d times, want 2", len(f.gen.quizzes))
		}
	})

	t.Run("NoQuizPossible", func(t *testing.T) {
		f := newFixture()
		f.gen.quiz = []string{}
		resp, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "a", Mode: concept.ModeQuiz, SourceText: "a"})
		if err != nil {
			t.Fatalf("an empty quiz is not an error: %v", err)
		}
		if qs, _ := resp.Content.([]string); qs == nil || len(qs) != 0 {
			t.Errorf("content = %#v, want empty list", resp.Content)
		}
	})

	t.Run("MissingSourceText", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "atom", Mode: concept.ModeQuiz})
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Fatalf("expected bad request, got %v", err)
		}
	})

	t.Run("ExplainAndQuizShareEntry", func(t *testing.T) {
		f := newFixture()
		exp, _ := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "atom"})
		resp, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "atom", Mode: concept.ModeQuiz, SourceText: exp.Content.(string)})
		if err != nil {
			t.Fatal(err)
		}
		if resp.GeneratedContentCache["explain"] != exp.Content {
			t.Error("quiz must not disturb the cached explanation")
		}
		if len(resp.ModesGenerated) != 2 {
			t.Errorf("modes_generated = %v, want explain and quiz", resp.ModesGenerated)
		}
	})
}

func TestResolvePreconditions(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()

	t.Run("NoGenerator", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := concept.NewService(repo, newMemoryStats(), nil)
		_, err := svc.Resolve(ctx, user, concept.GenerateRequest{})
		if !apperr.Is(err, apperr.KindDependencyUnavailable) {
			t.Fatalf("expected dependency unavailable before validation, got %v", err)
		}
		if repo.writes != 0 {
			t.Error("no write expected")
		}
	})

	t.Run("EmptyWord", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Resolve(ctx, user, concept.GenerateRequest{Word: "   "})
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Fatalf("expected bad request, got %v", err)
		}
	})

	t.Run("GameIsAsync", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Resolve(ctx, user, concept.GenerateRequest{Word: "volcano", Mode: concept.ModeGame})
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Fatalf("expected bad request, got %v", err)
		}
	})

	t.Run("GenerationFailureWritesNothing", func(t *testing.T) {
		f := newFixture()
		f.gen.err = apperr.GenerationFailed("failed to generate explanation", errBackend)
		_, err := f.svc.Resolve(ctx, user, concept.GenerateRequest{Word: "volcano"})
		if !apperr.Is(err, apperr.KindGenerationFailed) {
			t.Fatalf("expected generation failure, got %v", err)
		}
		if f.repo.writes != 0 || f.repo.count() != 0 {
			t.Error("a failed generation must not touch the cache")
		}
	})
}

func TestResolveLanguageIsForwarded(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Resolve(context.Background(), f.user, concept.GenerateRequest{Word: "eau", Language: "fr"}); err != nil {
		t.Fatal(err)
	}
	if got := f.gen.explains[0]; got.Language != "fr" || got.Word != "eau" {
		t.Errorf("language not forwarded: %+v", got)
	}
}

func TestFavorites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.ToggleFavorite(ctx, f.user, "Quantum Leap")
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsFavorite || e.ConceptID != "quantum_leap" {
		t.Fatalf("first toggle should create a favorite, got %+v", e)
	}

	e, err = f.svc.ToggleFavorite(ctx, f.user, "quantum leap")
	if err != nil {
		t.Fatal(err)
	}
	if e.IsFavorite {
		t.Error("second toggle should clear the favorite")
	}
	if f.repo.count() != 1 {
		t.Errorf("entries = %d, want 1", f.repo.count())
	}

	e, err = f.svc.SetFavorite(ctx, f.user, "Quantum Leap", true)
	if err != nil || !e.IsFavorite {
		t.Fatalf("SetFavorite = %+v, %v", e, err)
	}

	if _, err := f.svc.ToggleFavorite(ctx, f.user, ""); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("empty word should be rejected, got %v", err)
	}
}

func TestFavoriteIndependentOfContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.ToggleFavorite(ctx, f.user, "comet"); err != nil {
		t.Fatal(err)
	}
	resp, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "comet"})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsFavorite || resp.Source != concept.SourceGenerated {
		t.Errorf("favorite=%v source=%s", resp.IsFavorite, resp.Source)
	}
}

func TestRecordQuizAttempt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	const correct, wrong = 3, 2
	for i := 0; i < correct; i++ {
		if _, err := f.svc.RecordQuizAttempt(ctx, f.user, concept.QuizAttemptRequest{Word: "Atom", IsCorrect: true}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < wrong; i++ {
		if _, err := f.svc.RecordQuizAttempt(ctx, f.user, concept.QuizAttemptRequest{Word: "atom"}); err != nil {
			t.Fatal(err)
		}
	}

	st, _ := f.stats.Get(ctx, f.user)
	if st.TotalQuizQuestionsAnswered != correct+wrong || st.TotalQuizQuestionsCorrect != correct || st.QuizPoints != 10*correct {
		t.Errorf("stats = %+v", st)
	}

	e, _ := f.repo.Get(ctx, f.user, "atom")
	if e == nil || e.Word != "Atom" {
		t.Fatalf("entry should exist and keep its display word, got %+v", e)
	}
	if len(e.ModesGenerated) != 1 || e.ModesGenerated[0] != "quiz" {
		t.Errorf("modes_generated = %v", e.ModesGenerated)
	}
	if len(e.GeneratedContentCache) != 0 {
		t.Error("quiz attempts must not write content")
	}

	if _, err := f.svc.RecordQuizAttempt(ctx, f.user, concept.QuizAttemptRequest{}); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("empty word should be rejected, got %v", err)
	}
}

func TestGameCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := concept.Normalize("Volcano")

	if _, ok, err := f.svc.CachedGame(ctx, f.user, id); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if _, err := f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "Volcano"}); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.StoreGame(ctx, f.user, id, "Volcano", "<html></html>"); err != nil {
		t.Fatal(err)
	}
	html, ok, err := f.svc.CachedGame(ctx, f.user, id)
	if err != nil || !ok || html != "<html></html>" {
		t.Fatalf("CachedGame = %q %v %v", html, ok, err)
	}

	e, _ := f.repo.Get(ctx, f.user, id)
	if _, ok := e.GeneratedContentCache["explain"]; !ok {
		t.Error("storing a game must keep the explanation")
	}
}

func TestList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	list, err := f.svc.List(ctx, f.user)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("empty list = %v, %v", list, err)
	}
	_, _ = f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "first"})
	_, _ = f.svc.Resolve(ctx, f.user, concept.GenerateRequest{Word: "second"})
	_, _ = f.svc.Resolve(ctx, uuid.New(), concept.GenerateRequest{Word: "other user"})

	list, _ = f.svc.List(ctx, f.user)
	if len(list) != 2 || list[0].ConceptID != "second" {
		t.Errorf("list = %+v", list)
	}
}
