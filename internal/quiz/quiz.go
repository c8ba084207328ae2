// package quiz runs a scored quiz session over AI-generated or admin-curated questions.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Status is the session state.
type Status string

const (
	Idle     Status = "idle"
	Loading  Status = "loading"
	Playing  Status = "playing"
	Finished Status = "finished"
)

// Mode selects where questions come from.
type Mode string

const (
	ModeAI     Mode = "ia"     // generated by the assistant
	ModeChurch Mode = "church" // drawn from the admin-curated pool
)

// ParseMode accepts "ia" or "church".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAI, ModeChurch:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown quiz mode %q", shared.ErrInvalidArgument, s)
}

// Label is the French heading of the mode.
func (m Mode) Label() string {
	if m == ModeChurch {
		return "VIE DE L'ÉGLISE"
	}
	return "BIBLIQUE"
}

const (
	// MaxQuestions caps every session.
	MaxQuestions = 10
	// PointsPerAnswer is awarded for each correct answer.
	PointsPerAnswer = 10
)

// Step tells the caller what to do after [Session.Next].
type Step int

const (
	StepNone  Step = iota // session finished or a question is ready
	StepFetch             // request a question from the assistant, then call Deliver or FetchFailed
)

// Session holds one quiz run. It is driven from a single goroutine.
type Session struct {
	status     Status
	mode       Mode
	difficulty string
	pool       []models.QuizQuestion
	used       map[int]bool
	question   *models.QuizQuestion
	selected   int
	answered   bool
	score      int
	count      int
	total      int
	pick       func(n int) int
}

// New creates an idle session over the curated pool. The pool is copied.
func New(pool []models.QuizQuestion) *Session {
	return NewWithPicker(pool, rand.IntN)
}

// NewWithPicker is New with a custom random index picker returning a value in [0, n).
func NewWithPicker(pool []models.QuizQuestion, pick func(n int) int) *Session {
	cp := make([]models.QuizQuestion, len(pool))
	for i, q := range pool {
		cp[i] = q.Clone()
	}
	return &Session{
		status:     Idle,
		mode:       ModeAI,
		difficulty: "Intermédiaire",
		pool:       cp,
		selected:   -1,
		total:      MaxQuestions,
		pick:       pick,
	}
}

func (s *Session) Status() Status     { return s.status }
func (s *Session) Mode() Mode         { return s.mode }
func (s *Session) Difficulty() string { return s.difficulty }
func (s *Session) Score() int         { return s.score }
func (s *Session) Count() int         { return s.count }
func (s *Session) Total() int         { return s.total }
func (s *Session) Selected() int      { return s.selected }
func (s *Session) Answered() bool     { return s.answered }
func (s *Session) PoolSize() int      { return len(s.pool) }

// Question returns the question on screen.
func (s *Session) Question() (models.QuizQuestion, bool) {
	if s.question == nil {
		return models.QuizQuestion{}, false
	}
	return *s.question, true
}

// SetDifficulty changes the level used for AI questions. Allowed only while idle or finished.
func (s *Session) SetDifficulty(d string) {
	if s.status == Idle || s.status == Finished {
		s.difficulty = d
	}
}

// Start resets the score and counters and moves to the first question.
func (s *Session) Start(mode Mode) Step {
	s.mode = mode
	s.score = 0
	s.count = 0
	s.used = make(map[int]bool)
	s.question = nil
	if mode == ModeChurch {
		s.total = min(len(s.pool), MaxQuestions)
	} else {
		s.total = MaxQuestions
	}
	return s.Next()
}

// Next advances to the following question, or to Finished once the limit is reached.
func (s *Session) Next() Step {
	if s.count >= s.total {
		s.status = Finished
		return StepNone
	}

	s.selected = -1
	s.answered = false

	if s.mode == ModeAI {
		s.status = Loading
		return StepFetch
	}

	available := make([]int, 0, len(s.pool))
	for i := range s.pool {
		if !s.used[i] {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		s.status = Finished
		return StepNone
	}

	idx := available[s.pick(len(available))]
	s.used[idx] = true
	q := s.pool[idx]
	s.question = &q
	s.count++
	s.status = Playing
	return StepNone
}

// Deliver installs a fetched question. It is rejected unless the session is loading.
func (s *Session) Deliver(q models.QuizQuestion) error {
	if s.status != Loading {
		return fmt.Errorf("%w: no question requested", shared.ErrStaleResult)
	}
	if err := q.Validate(); err != nil {
		s.status = Idle
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	s.question = &q
	s.count++
	s.status = Playing
	return nil
}

// FetchFailed returns a loading session to idle.
func (s *Session) FetchFailed() {
	if s.status == Loading {
		s.status = Idle
	}
}

// Answer records the selected option. A second answer to the same question is ignored.
func (s *Session) Answer(idx int) (bool, error) {
	if s.status != Playing || s.question == nil {
		return false, fmt.Errorf("%w: no question on screen", shared.ErrInvalidInput)
	}
	if idx < 0 || idx >= len(s.question.Options) {
		return false, fmt.Errorf("%w: option %d", shared.ErrOutOfRange, idx)
	}
	if s.answered {
		return s.selected == s.question.CorrectAnswer, nil
	}

	s.selected = idx
	s.answered = true
	correct := idx == s.question.CorrectAnswer
	if correct {
		s.score += PointsPerAnswer
	}
	return correct, nil
}

// Reset returns to idle without clearing the difficulty.
func (s *Session) Reset() {
	s.status = Idle
	s.question = nil
	s.selected = -1
	s.answered = false
}

// Percentage is the score relative to the maximum for the session.
func (s *Session) Percentage() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.score) / float64(s.total*PointsPerAnswer) * 100
}

// Encouragement returns the closing message for the final score.
func (s *Session) Encouragement() string {
	pct := s.Percentage()
	if s.mode == ModeAI {
		switch {
		case pct >= 90:
			return "Une sagesse divine ! Votre connaissance des écritures est un pilier pour la communauté."
		case pct >= 70:
			return "Fidèle et perspicace ! Vous marchez avec assurance dans la Parole."
		}
		return "Sonder les Écritures est une force. Continuez ce beau voyage spirituel."
	}
	switch {
	case pct >= 90:
		return "Vrai Citoyen du Tabernacle ! Vous connaissez l'église sur le bout des doigts."
	case pct >= 70:
		return "Impliqué et attentif. Merci de faire battre le cœur de notre communauté."
	}
	return "Chaque jour au Tabernacle est une occasion d'apprendre et de grandir ensemble."
}
