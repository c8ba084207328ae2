package services

import (
	"context"
	"time"

	"github.com/desertthunder/tabernacle/internal/models"
)

// Assistant is the request/response facade over the generative-AI service.
//
// Implementations keep no conversation state; the caller passes the chat history.
type Assistant interface {
	// Chat answers message given the prior turns.
	Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error)

	// QuizQuestion generates one four-option question at the given difficulty.
	QuizQuestion(ctx context.Context, difficulty string) (models.QuizQuestion, error)

	// ChapterText returns the verses of a chapter in the Louis Segond translation.
	ChapterText(ctx context.Context, book string, chapter int) ([]models.Verse, error)

	// ChapterExplanation returns a short theological and practical commentary.
	ChapterExplanation(ctx context.Context, book string, chapter int) (string, error)

	// Meditation returns a two or three line meditation on verse.
	Meditation(ctx context.Context, verse string) (string, error)

	// Narrate returns 16-bit little-endian mono PCM sampled at 24 kHz.
	Narrate(ctx context.Context, text string) ([]byte, error)

	// PhotoCaption returns a poetic caption for a gallery photo.
	PhotoCaption(ctx context.Context, description string) (string, error)
}

// Prober is implemented by assistants that can report round-trip latency.
type Prober interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// Fallback sentences shown when the service is unavailable or silent.
const (
	FallbackChatEmpty       = "La connexion spirituelle est momentanément interrompue."
	FallbackChatError       = "Désolé, je rencontre une difficulté. Prions pour que mon système se rétablisse vite !"
	FallbackExplanation     = "Que l'Esprit de vérité vous éclaire."
	FallbackMeditation      = "Que la paix de Dieu soit votre partage."
	FallbackMeditationError = "Que la paix du Seigneur soit avec vous aujourd'hui au Tabernacle."
	FallbackCaption         = "Un instant de foi gravé dans la lumière."
	FallbackCaptionError    = "Une image de foi et d'unité au Tabernacle."
)

// Difficulty levels accepted by [Assistant.QuizQuestion].
const (
	DifficultyBeginner     = "Débutant"
	DifficultyIntermediate = "Intermédiaire"
	DifficultyAdvanced     = "Avancé"
)

// Difficulties lists the levels in increasing order.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
