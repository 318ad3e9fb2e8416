package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
)

func TestKindStatus(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindBadRequest:            http.StatusBadRequest,
		apperr.KindNotFound:              http.StatusNotFound,
		apperr.KindForbidden:             http.StatusForbidden,
		apperr.KindDependencyUnavailable: http.StatusServiceUnavailable,
		apperr.KindGenerationFailed:      http.StatusInternalServerError,
		apperr.KindInternal:              http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Errorf("%s: status %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("resolve: %w", apperr.NotFound("job %s not found", "abc"))
	if got := apperr.KindOf(err); got != apperr.KindNotFound {
		t.Fatalf("KindOf = %s, want not_found", got)
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatal("Is should match wrapped kind")
	}
	if got := apperr.KindOf(errors.New("boom")); got != apperr.KindInternal {
		t.Fatalf("plain errors should be internal, got %s", got)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Run("BadRequestKeepsMessage", func(t *testing.T) {
		err := apperr.BadRequest("word is required")
		if got := apperr.PublicMessage(err); got != "word is required" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("InternalHidesCause", func(t *testing.T) {
		err := apperr.Internal("database exploded", errors.New("pq: secret detail"))
		if got := apperr.PublicMessage(err); got != "internal server error" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("UnknownError", func(t *testing.T) {
		if got := apperr.PublicMessage(errors.New("x")); got != "internal server error" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("UnwrapKeepsCause", func(t *testing.T) {
		cause := errors.New("timeout")
		err := apperr.GenerationFailed("the AI service did not answer", cause)
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through errors.Is")
		}
	})
}
