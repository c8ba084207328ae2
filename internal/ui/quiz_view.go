package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/quiz"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/shared"
)

type quizView struct {
	session *quiz.Session
	mode    int // 0 ia, 1 church
	cursor  int
	err     string
}

func newQuizView(pool []models.QuizQuestion) quizView {
	return quizView{session: quiz.New(pool)}
}

// reload picks up admin edits to the curated pool between sessions.
func (q *quizView) reload(pool []models.QuizQuestion) {
	switch q.session.Status() {
	case quiz.Idle, quiz.Finished:
		diff := q.session.Difficulty()
		q.session = quiz.New(pool)
		q.session.SetDifficulty(diff)
	}
}

func (q *quizView) selectedMode() quiz.Mode {
	if q.mode == 1 {
		return quiz.ModeChurch
	}
	return quiz.ModeAI
}

func (m *Model) updateQuiz(msg tea.KeyMsg) tea.Cmd {
	q := &m.quiz
	s := q.session

	switch s.Status() {
	case quiz.Idle:
		switch {
		case key.Matches(msg, m.keys.left), key.Matches(msg, m.keys.right):
			q.mode = 1 - q.mode
		case msg.String() == "d":
			s.SetDifficulty(nextDifficulty(s.Difficulty()))
		case key.Matches(msg, m.keys.enter):
			q.err = ""
			q.cursor = 0
			return m.quizStep(s.Start(q.selectedMode()))
		}
	case quiz.Playing:
		if s.Answered() {
			if key.Matches(msg, m.keys.enter) || msg.String() == " " {
				q.cursor = 0
				return m.quizStep(s.Next())
			}
			return nil
		}
		switch {
		case key.Matches(msg, m.keys.up):
			q.cursor = max(q.cursor-1, 0)
		case key.Matches(msg, m.keys.down):
			q.cursor = min(q.cursor+1, models.QuizOptionCount-1)
		case key.Matches(msg, m.keys.enter):
			_, _ = s.Answer(q.cursor)
		default:
			if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '4' {
				q.cursor = int(k[0] - '1')
				_, _ = s.Answer(q.cursor)
			}
		}
	case quiz.Finished:
		if key.Matches(msg, m.keys.enter) {
			s.Reset()
			m.quiz.reload(m.state.Quiz)
		}
	}
	return nil
}

func nextDifficulty(cur string) string {
	for i, d := range services.Difficulties {
		if d == cur {
			return services.Difficulties[(i+1)%len(services.Difficulties)]
		}
	}
	return services.DifficultyIntermediate
}

// quizStep requests a generated question when the session asks for one.
func (m *Model) quizStep(step quiz.Step) tea.Cmd {
	if step != quiz.StepFetch {
		return nil
	}
	t := m.begin(router.Quiz)
	ai := m.ai
	difficulty := m.quiz.session.Difficulty()
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		q, err := ai.QuizQuestion(t.Context(), difficulty)
		return quizQuestionMsg(t.Gen, q, err)
	})
}

func (m *Model) handleQuizQuestion(msg Msg) {
	if !m.current(router.Quiz, msg.gen) {
		return
	}
	res := msg.data.(quizResult)
	s := m.quiz.session
	if res.err != nil {
		s.FetchFailed()
		m.quiz.err = "Impossible de générer une question. Réessayez dans un instant."
		return
	}
	if err := s.Deliver(res.question); err != nil {
		if errors.Is(err, shared.ErrMalformedResponse) {
			m.quiz.err = "La question reçue était invalide."
		}
	}
}

func (m *Model) viewQuiz() string {
	st := m.styles()
	q := &m.quiz
	s := q.session
	var b strings.Builder

	b.WriteString(st.title.Render("Quiz du Tabernacle") + "\n")

	switch s.Status() {
	case quiz.Idle:
		modes := []quiz.Mode{quiz.ModeAI, quiz.ModeChurch}
		labels := make([]string, len(modes))
		for i, md := range modes {
			if i == q.mode {
				labels[i] = st.active.Render(md.Label())
			} else {
				labels[i] = st.tab.Render(md.Label())
			}
		}
		b.WriteString(strings.Join(labels, " ") + "\n\n")
		if q.selectedMode() == quiz.ModeAI {
			fmt.Fprintf(&b, "Niveau : %s\n", st.gold.Render(s.Difficulty()))
		} else {
			fmt.Fprintf(&b, "%d questions préparées par l'église\n", min(s.PoolSize(), quiz.MaxQuestions))
		}
		b.WriteString("\n" + st.active.Render("COMMENCER") + "\n")
		if q.err != "" {
			b.WriteString("\n" + st.err.Render(q.err) + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("←/→", "mode"), binding("d", "niveau"), binding("entrée", "commencer")}))

	case quiz.Loading:
		fmt.Fprintf(&b, "Question %d / %d\n\n", s.Count()+1, s.Total())
		b.WriteString(m.spin("Génération de la question..."))

	case quiz.Playing:
		question, _ := s.Question()
		fmt.Fprintf(&b, "%s   %s\n\n", st.muted.Render(fmt.Sprintf("Question %d / %d", s.Count(), s.Total())), st.gold.Render(fmt.Sprintf("Score %d", s.Score())))
		b.WriteString(st.text.Bold(true).Render(question.Question) + "\n\n")
		for i, opt := range question.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			switch {
			case s.Answered() && i == question.CorrectAnswer:
				line = st.ok.Render("✓ " + line)
			case s.Answered() && i == s.Selected():
				line = st.err.Render("✗ " + line)
			case i == q.cursor:
				line = st.gold.Render("▸ " + line)
			default:
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
		if s.Answered() {
			if question.Explanation != "" {
				b.WriteString("\n" + st.help.Render(question.Explanation) + "\n")
			}
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("entrée", "question suivante")}))
		} else {
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("1-4", "répondre"), m.keys.up, m.keys.down, m.keys.enter}))
		}

	case quiz.Finished:
		fmt.Fprintf(&b, "Score final : %s\n", st.gold.Render(fmt.Sprintf("%d / %d", s.Score(), s.Total()*quiz.PointsPerAnswer)))
		fmt.Fprintf(&b, "%.0f%%\n\n", s.Percentage())
		b.WriteString(st.text.Render(s.Encouragement()) + "\n")
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("entrée", "rejouer")}))
	}
	return b.String()
}
