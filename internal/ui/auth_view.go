package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/shared"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// authForm is the sign-in / sign-up form shown while logged out.
type authForm struct {
	signup bool
	inputs [3]textinput.Model
	cursor int
	err    string
}

func newAuthForm() authForm {
	var f authForm
	for i, ph := range []string{"Nom Complet", "adresse@email.com", "Mot de passe"} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 120
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '•'
	f.cursor = fieldEmail
	return f
}

// fields lists the visible inputs in tab order.
func (f *authForm) fields() []int {
	if f.signup {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f *authForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.cursor].Focus()
}

func (f *authForm) move(delta int) tea.Cmd {
	fs := f.fields()
	pos := 0
	for i, id := range fs {
		if id == f.cursor {
			pos = i
		}
	}
	pos = (pos + delta + len(fs)) % len(fs)
	f.cursor = fs[pos]
	return f.focus()
}

func (f *authForm) last() bool {
	fs := f.fields()
	return f.cursor == fs[len(fs)-1]
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.cursor], cmd = f.inputs[f.cursor].Update(msg)
	return cmd
}

func (f *authForm) submission() auth.Submission {
	s := auth.Submission{
		Email:    strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Password: f.inputs[fieldPassword].Value(),
		Signup:   f.signup,
	}
	if f.signup {
		s.Name = strings.TrimSpace(f.inputs[fieldName].Value())
	}
	return s
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	f.cursor = fieldEmail
}

func (m *Model) updateAuth(msg tea.KeyMsg) tea.Cmd {
	if m.gate.Status() == auth.LoggingIn {
		return nil
	}
	f := &m.authForm

	switch msg.String() {
	case "ctrl+t":
		f.signup = !f.signup
		f.err = ""
		if f.signup {
			f.cursor = fieldName
		} else {
			f.cursor = fieldEmail
		}
		return f.focus()
	case "tab", "down":
		return f.move(1)
	case "shift+tab", "up":
		return f.move(-1)
	case "enter":
		if !f.last() {
			return f.move(1)
		}
		return m.submitAuth()
	}
	return f.update(msg)
}

func (m *Model) submitAuth() tea.Cmd {
	f := &m.authForm
	sub := f.submission()
	if err := m.gate.Begin(sub); err != nil {
		f.err = authError(err)
		return nil
	}
	f.err = ""

	t := m.authJobs.Begin()
	gate := m.gate
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		id, err := gate.Verify(t.Context(), sub)
		return authResultMsg(t.Gen, id, err)
	})
}

func (m *Model) handleAuthResult(msg Msg) tea.Cmd {
	if !m.authJobs.Current(msg.gen) {
		return nil
	}
	res := msg.data.(authResult)
	if res.err != nil {
		m.gate.Fail()
		m.authForm.err = authError(res.err)
		return nil
	}

	profile, err := m.gate.Complete(m.ctx, res.id)
	if err != nil {
		m.authForm.err = authError(err)
		return nil
	}

	m.logger.Info("member signed in", "email", profile.Email)
	m.authForm.reset()
	m.router.Reset()
	m.members.reset()
	return tea.Batch(m.enter(router.Home), m.showToast("Bienvenue, "+profile.Name))
}

func authError(err error) string {
	switch {
	case errors.Is(err, shared.ErrMissingCredentials):
		return "Veuillez remplir tous les champs."
	case errors.Is(err, shared.ErrAuthFailed):
		return "Identifiants incorrects."
	case errors.Is(err, shared.ErrAuthInProgress):
		return "Connexion déjà en cours..."
	}
	return err.Error()
}

func (m *Model) viewAuth() string {
	s := m.styles()
	f := &m.authForm

	heading := "Entrez dans le Sanctuaire"
	action := "SE CONNECTER"
	other := "S'inscrire"
	if f.signup {
		heading = "Rejoignez la Communauté"
		action = "CRÉER MON COMPTE"
		other = "Se connecter"
	}

	labels := map[int]string{fieldName: "NOM COMPLET", fieldEmail: "EMAIL", fieldPassword: "MOT DE PASSE"}
	var b strings.Builder
	b.WriteString(s.gold.Bold(true).Render("✝ "+strings.ToUpper(churchName)) + "\n\n")
	b.WriteString(s.title.Render(heading) + "\n")
	for _, id := range f.fields() {
		b.WriteString(s.muted.Render(labels[id]) + "\n")
		b.WriteString(f.inputs[id].View() + "\n\n")
	}

	if m.gate.Status() == auth.LoggingIn {
		b.WriteString(m.spin("TRAITEMENT...") + "\n")
	} else {
		b.WriteString(s.active.Render(action) + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + s.err.Render(f.err) + "\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		binding("tab", "champ suivant"),
		binding("entrée", "valider"),
		binding("ctrl+t", other),
		m.keys.forceQuit,
	})
	form := s.panel.Render(b.String())
	return lipgloss.Place(max(m.width, lipgloss.Width(form)), max(m.height-2, lipgloss.Height(form)),
		lipgloss.Center, lipgloss.Center, form) + "\n" + helpView
}
