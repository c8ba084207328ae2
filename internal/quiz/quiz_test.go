package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

func pool(n int) []models.QuizQuestion {
	out := make([]models.QuizQuestion, n)
	for i := range out {
		out[i] = models.QuizQuestion{
			Question:      fmt.Sprintf("q%d", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
		}
	}
	return out
}

func first(n int) int { return 0 }

func TestChurchModeDrawsWithoutRepetition(t *testing.T) {
	for _, size := range []int{0, 1, 3, 10, 14} {
		t.Run(fmt.Sprintf("pool of %d", size), func(t *testing.T) {
			s := New(pool(size))
			step := s.Start(ModeChurch)
			assert.Equal(t, StepNone, step)

			want := min(size, MaxQuestions)
			assert.Equal(t, want, s.Total())

			seen := map[string]bool{}
			for s.Status() == Playing {
				q, ok := s.Question()
				require.True(t, ok)
				assert.False(t, seen[q.Question], "question %s repeated", q.Question)
				seen[q.Question] = true

				_, err := s.Answer(0)
				require.NoError(t, err)
				s.Next()
			}

			assert.Equal(t, Finished, s.Status())
			assert.Len(t, seen, want)
		})
	}
}

func TestAIMode(t *testing.T) {
	s := New(nil)
	require.Equal(t, StepFetch, s.Start(ModeAI))
	assert.Equal(t, Loading, s.Status())
	assert.Equal(t, MaxQuestions, s.Total())

	q := models.QuizQuestion{Question: "Qui ?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2}
	require.NoError(t, s.Deliver(q))
	assert.Equal(t, Playing, s.Status())
	assert.Equal(t, 1, s.Count())

	correct, err := s.Answer(2)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, 10, s.Score())

	// second answer is ignored
	correct, _ = s.Answer(1)
	assert.True(t, correct)
	assert.Equal(t, 10, s.Score())
	assert.Equal(t, 2, s.Selected())

	assert.ErrorIs(t, s.Deliver(q), shared.ErrStaleResult, "delivery while playing is stale")
}

func TestFetchFailureReturnsToIdle(t *testing.T) {
	s := New(nil)
	s.Start(ModeAI)
	s.FetchFailed()
	assert.Equal(t, Idle, s.Status())

	s.Start(ModeAI)
	err := s.Deliver(models.QuizQuestion{Question: "bad"})
	assert.ErrorIs(t, err, shared.ErrMalformedResponse)
	assert.Equal(t, Idle, s.Status())
}

func TestAnswerErrors(t *testing.T) {
	s := NewWithPicker(pool(2), first)
	_, err := s.Answer(0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	s.Start(ModeChurch)
	_, err = s.Answer(7)
	assert.ErrorIs(t, err, shared.ErrOutOfRange)
}

func TestEncouragement(t *testing.T) {
	tc := []struct {
		mode    Mode
		correct int
		prefix  string
	}{
		{ModeChurch, 10, "Vrai Citoyen"},
		{ModeChurch, 7, "Impliqué"},
		{ModeChurch, 3, "Chaque jour"},
		{ModeAI, 9, "Une sagesse divine"},
		{ModeAI, 8, "Fidèle et perspicace"},
		{ModeAI, 0, "Sonder les Écritures"},
	}

	for _, tt := range tc {
		t.Run(fmt.Sprintf("%s %d", tt.mode, tt.correct), func(t *testing.T) {
			s := NewWithPicker(pool(10), first)
			step := s.Start(tt.mode)
			answered := 0
			for s.Status() != Finished {
				if step == StepFetch {
					require.NoError(t, s.Deliver(models.QuizQuestion{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0}))
				}
				q, _ := s.Question()
				choice := (q.CorrectAnswer + 1) % 4
				if answered < tt.correct {
					choice = q.CorrectAnswer
				}
				_, err := s.Answer(choice)
				require.NoError(t, err)
				answered++
				step = s.Next()
			}
			assert.Contains(t, s.Encouragement(), tt.prefix)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("church")
	require.NoError(t, err)
	assert.Equal(t, ModeChurch, m)
	assert.Equal(t, "VIE DE L'ÉGLISE", m.Label())

	_, err = ParseMode("bible")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestPoolIsCopied(t *testing.T) {
	p := pool(1)
	s := NewWithPicker(p, first)
	p[0].Options[0] = "changed"
	s.Start(ModeChurch)
	q, _ := s.Question()
	assert.Equal(t, "a", q.Options[0])
}

func TestZeroTotalPercentage(t *testing.T) {
	s := New(nil)
	s.Start(ModeChurch)
	assert.Equal(t, Finished, s.Status())
	assert.Equal(t, float64(0), s.Percentage())
}
