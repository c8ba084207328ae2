package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
	tu "github.com/desertthunder/tabernacle/internal/testing"
)

func TestSoftAssistant(t *testing.T) {
	ctx := context.Background()
	failing := &tu.MockAssistant{Err: fmt.Errorf("%w: timeout", shared.ErrAPIRequest)}

	t.Run("Chat", func(t *testing.T) {
		tc := []struct {
			name  string
			inner Assistant
			want  string
		}{
			{name: "reply", inner: &tu.MockAssistant{Reply: "Amen"}, want: "Amen"},
			{name: "empty", inner: &tu.MockAssistant{}, want: FallbackChatEmpty},
			{name: "error", inner: failing, want: FallbackChatError},
			{name: "nil", inner: nil, want: FallbackChatError},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got, err := NewSoftAssistant(tt.inner, nil).Chat(ctx, "x", nil)
				if err != nil {
					t.Fatalf("chat must not fail, got %v", err)
				}
				if got != tt.want {
					t.Errorf("got %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("Text Fallbacks", func(t *testing.T) {
		soft := NewSoftAssistant(failing, nil)

		if got, _ := soft.ChapterExplanation(ctx, "Jean", 1); got != FallbackExplanation {
			t.Errorf("explanation = %q", got)
		}
		if got, _ := soft.Meditation(ctx, "Jean 8:12"); got != FallbackMeditationError {
			t.Errorf("meditation = %q", got)
		}
		if got, _ := soft.PhotoCaption(ctx, "x"); got != FallbackCaptionError {
			t.Errorf("caption = %q", got)
		}

		silent := NewSoftAssistant(&tu.MockAssistant{}, nil)
		if got, _ := silent.Meditation(ctx, "v"); got != FallbackMeditation {
			t.Errorf("empty meditation = %q", got)
		}
		if got, _ := silent.PhotoCaption(ctx, "x"); got != FallbackCaption {
			t.Errorf("empty caption = %q", got)
		}
	})

	t.Run("Quiz Passes Errors", func(t *testing.T) {
		_, err := NewSoftAssistant(failing, nil).QuizQuestion(ctx, DifficultyBeginner)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Chapter", func(t *testing.T) {
		malformed := &tu.MockAssistant{Err: shared.ErrMalformedResponse}
		verses, err := NewSoftAssistant(malformed, nil).ChapterText(ctx, "Jean", 1)
		if err != nil || verses == nil || len(verses) != 0 {
			t.Errorf("malformed chapter should be empty and valid, got %v %v", verses, err)
		}

		if _, err := NewSoftAssistant(failing, nil).ChapterText(ctx, "Jean", 1); err == nil {
			t.Error("transport failure should be returned")
		}

		ok := &tu.MockAssistant{Verses: []models.Verse{{Number: 1, Text: "x"}}}
		verses, _ = NewSoftAssistant(ok, nil).ChapterText(ctx, "Jean", 1)
		if len(verses) != 1 {
			t.Errorf("expected 1 verse, got %d", len(verses))
		}
	})

	t.Run("Narrate Passes Errors", func(t *testing.T) {
		if _, err := NewSoftAssistant(failing, nil).Narrate(ctx, "x"); err == nil {
			t.Error("expected narration error")
		}
		if _, err := NewSoftAssistant(nil, nil).Narrate(ctx, "x"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Ping Without Prober", func(t *testing.T) {
		if _, err := NewSoftAssistant(&tu.MockAssistant{}, nil).Ping(ctx); !errors.Is(err, shared.ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})
}
