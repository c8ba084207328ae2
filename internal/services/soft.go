package services

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// SoftAssistant wraps an [Assistant] so text operations never fail.
type SoftAssistant struct {
	inner  Assistant
	logger *log.Logger
}

// NewSoftAssistant wraps inner. A nil inner behaves like an unreachable service.
func NewSoftAssistant(inner Assistant, logger *log.Logger) *SoftAssistant {
	return &SoftAssistant{inner: inner, logger: logger}
}

func (s *SoftAssistant) warn(op string, err error) {
	if s.logger != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("assistant request failed", "op", op, "error", err)
	}
}

// Chat returns the reply, [FallbackChatEmpty] for a silent reply, or [FallbackChatError] on failure.
func (s *SoftAssistant) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if s.inner == nil {
		return FallbackChatError, nil
	}
	reply, err := s.inner.Chat(ctx, message, history)
	if err != nil {
		s.warn("chat", err)
		return FallbackChatError, nil
	}
	if reply == "" {
		return FallbackChatEmpty, nil
	}
	return reply, nil
}

// QuizQuestion passes failures through so the quiz can return to idle.
func (s *SoftAssistant) QuizQuestion(ctx context.Context, difficulty string) (models.QuizQuestion, error) {
	if s.inner == nil {
		return models.QuizQuestion{}, shared.ErrServiceUnavailable
	}
	q, err := s.inner.QuizQuestion(ctx, difficulty)
	if err != nil {
		s.warn("quiz", err)
		return models.QuizQuestion{}, err
	}
	return q, nil
}

// ChapterText degrades a malformed reply to an empty chapter. Transport failures are returned.
func (s *SoftAssistant) ChapterText(ctx context.Context, book string, chapter int) ([]models.Verse, error) {
	if s.inner == nil {
		return nil, shared.ErrServiceUnavailable
	}
	verses, err := s.inner.ChapterText(ctx, book, chapter)
	if errors.Is(err, shared.ErrMalformedResponse) {
		s.warn("chapter", err)
		return []models.Verse{}, nil
	}
	if err != nil {
		s.warn("chapter", err)
		return nil, err
	}
	if verses == nil {
		verses = []models.Verse{}
	}
	return verses, nil
}

func (s *SoftAssistant) ChapterExplanation(ctx context.Context, book string, chapter int) (string, error) {
	return s.text("explanation", FallbackExplanation, FallbackExplanation, func() (string, error) {
		return s.inner.ChapterExplanation(ctx, book, chapter)
	})
}

func (s *SoftAssistant) Meditation(ctx context.Context, verse string) (string, error) {
	return s.text("meditation", FallbackMeditation, FallbackMeditationError, func() (string, error) {
		return s.inner.Meditation(ctx, verse)
	})
}

func (s *SoftAssistant) PhotoCaption(ctx context.Context, description string) (string, error) {
	return s.text("caption", FallbackCaption, FallbackCaptionError, func() (string, error) {
		return s.inner.PhotoCaption(ctx, description)
	})
}

// Narrate passes failures through; callers stop playback silently.
func (s *SoftAssistant) Narrate(ctx context.Context, text string) ([]byte, error) {
	if s.inner == nil {
		return nil, shared.ErrServiceUnavailable
	}
	pcm, err := s.inner.Narrate(ctx, text)
	if err != nil {
		s.warn("narrate", err)
		return nil, err
	}
	return pcm, nil
}

// Ping forwards to the wrapped assistant when it can probe latency.
func (s *SoftAssistant) Ping(ctx context.Context) (time.Duration, error) {
	p, ok := s.inner.(Prober)
	if !ok {
		return 0, shared.ErrNotImplemented
	}
	return p.Ping(ctx)
}

func (s *SoftAssistant) text(op, empty, failed string, call func() (string, error)) (string, error) {
	if s.inner == nil {
		return failed, nil
	}
	out, err := call()
	if err != nil {
		s.warn(op, err)
		return failed, nil
	}
	if out == "" {
		return empty, nil
	}
	return out, nil
}
