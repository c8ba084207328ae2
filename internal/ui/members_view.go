package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
)

type memberSection int

const (
	sectionDashboard memberSection = iota
	sectionSteps
	sectionGroups
	sectionHistory
	sectionProfile
)

var memberSections = []string{"TABLEAU DE BORD", "MES DÉMARCHES", "MES GROUPES", "HISTORIQUE DONS", "GÉRER LE PROFIL"}

const progressWidth = 24

// membersView is the member space. Edits go to the stored profile on save.
type membersView struct {
	section        memberSection
	statsCollapsed bool
	editing        bool
	inputs         [2]textinput.Model // name, email
	cursor         int
	err            string
}

func newMembersView() membersView {
	var v membersView
	for i, ph := range []string{"Nom Complet", "adresse@email.com"} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 120
		in.Width = 40
		v.inputs[i] = in
	}
	return v
}

// reset returns the member space to its dashboard, as after a fresh login.
func (v *membersView) reset() {
	v.section = sectionDashboard
	v.statsCollapsed = false
	v.editing = false
	v.err = ""
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
}

func (m *Model) updateMembers(msg tea.KeyMsg) tea.Cmd {
	v := &m.members
	if v.editing {
		return m.updateProfileForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.left):
		v.section = (v.section - 1 + memberSection(len(memberSections))) % memberSection(len(memberSections))
	case key.Matches(msg, m.keys.right):
		v.section = (v.section + 1) % memberSection(len(memberSections))
	case msg.String() == "x":
		return m.logout()
	case v.section == sectionDashboard && msg.String() == "s":
		v.statsCollapsed = !v.statsCollapsed
	case v.section == sectionProfile:
		return m.updateProfileSection(msg)
	}
	return nil
}

func (m *Model) updateProfileSection(msg tea.KeyMsg) tea.Cmd {
	v := &m.members
	p := m.state.Profile
	if p == nil {
		return nil
	}
	next := *p
	switch msg.String() {
	case "e":
		v.editing = true
		v.cursor = 0
		v.err = ""
		v.inputs[0].SetValue(p.Name)
		v.inputs[1].SetValue(p.Email)
		v.inputs[1].Blur()
		return v.inputs[0].Focus()
	case "n":
		next.Preferences.Notifications = !next.Preferences.Notifications
	case "w":
		next.Preferences.Newsletter = !next.Preferences.Newsletter
	case "c":
		next.Preferences.HighContrast = !next.Preferences.HighContrast
	case "f":
		next.Preferences.FontSize = nextFontSize(next.Preferences.FontSize)
	default:
		return nil
	}
	return m.saveProfile(next)
}

func nextFontSize(f models.FontSize) models.FontSize {
	switch f {
	case models.FontNormal:
		return models.FontLarge
	case models.FontLarge:
		return models.FontExtra
	}
	return models.FontNormal
}

func (m *Model) updateProfileForm(msg tea.KeyMsg) tea.Cmd {
	v := &m.members
	switch {
	case key.Matches(msg, m.keys.back):
		v.editing = false
		v.inputs[v.cursor].Blur()
		return nil
	case msg.String() == "tab" || msg.String() == "down" || msg.String() == "up" || msg.String() == "shift+tab":
		v.inputs[v.cursor].Blur()
		v.cursor = 1 - v.cursor
		return v.inputs[v.cursor].Focus()
	case key.Matches(msg, m.keys.enter):
		if m.state.Profile == nil {
			return nil
		}
		next := *m.state.Profile
		next.Name = strings.TrimSpace(v.inputs[0].Value())
		next.Email = strings.TrimSpace(v.inputs[1].Value())
		if cmd := m.saveProfile(next); v.err == "" {
			v.editing = false
			v.inputs[v.cursor].Blur()
			return cmd
		}
		return nil
	}
	var cmd tea.Cmd
	v.inputs[v.cursor], cmd = v.inputs[v.cursor].Update(msg)
	return cmd
}

func (m *Model) saveProfile(p models.UserProfile) tea.Cmd {
	v := &m.members
	if err := p.Validate(); err != nil {
		v.err = "Le nom ne peut pas être vide."
		return nil
	}
	if err := m.state.SetProfile(m.ctx, &p); err != nil {
		m.logger.Error("failed to save profile", "error", err)
		v.err = "Impossible d'enregistrer le profil."
		return nil
	}
	v.err = ""
	return m.showToast("PROFIL ENREGISTRÉ")
}

// logout ends the session: pending requests are cancelled and playback stops.
func (m *Model) logout() tea.Cmd {
	if err := m.gate.Logout(); err != nil {
		m.logger.Warn("logout", "error", err)
	}
	for _, t := range m.trackers {
		t.Advance()
	}
	m.chatJobs.Advance()
	m.chat.open = false
	m.stopPlayback()
	m.leave(m.router.Active())
	m.router.Reset()
	m.members.reset()
	m.authForm = newAuthForm()
	return m.authForm.focus()
}

func progressBar(s *Palette, pct int) string {
	n := max(min(pct*progressWidth/100, progressWidth), 0)
	return s.gold.Render(strings.Repeat("█", n)) + s.muted.Render(strings.Repeat("░", progressWidth-n))
}

func onOff(b bool) string {
	if b {
		return "activé"
	}
	return "désactivé"
}

func (m *Model) viewMembers() string {
	s := m.styles()
	v := &m.members
	p := m.state.Profile
	var b strings.Builder

	if p == nil {
		return s.muted.Render("Aucun profil enregistré.")
	}

	b.WriteString(s.gold.Bold(true).Render("("+p.Initial()+")") + " " + s.title.Render(p.Name) + "  " + s.muted.Render("Membre depuis "+p.MemberSince) + "\n")
	tabs := make([]string, len(memberSections))
	for i, label := range memberSections {
		if memberSection(i) == v.section {
			tabs[i] = s.active.Render(label)
		} else {
			tabs[i] = s.tab.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch v.section {
	case sectionDashboard:
		b.WriteString(s.text.Render(fmt.Sprintf("Bienvenue, %s.", p.Name)) + "\n\n")
		if !v.statsCollapsed {
			total := 0
			for _, d := range models.DonationHistory() {
				total += d.Amount
			}
			fmt.Fprintf(&b, "Groupes     %s\n", s.gold.Render(fmt.Sprint(len(p.Groups))))
			fmt.Fprintf(&b, "Démarches   %s\n", s.gold.Render(fmt.Sprint(len(p.Steps))))
			fmt.Fprintf(&b, "Dons        %s\n", s.gold.Render(donation.FormatFCFA(total)))
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("s", "afficher / masquer stats")}))
	case sectionSteps:
		for _, st := range p.Steps {
			b.WriteString(s.text.Bold(true).Render(st.Title) + " " + s.muted.Render(string(st.Status)) + "\n")
			b.WriteString(progressBar(s, st.Progress) + fmt.Sprintf(" %d%%", st.Progress) + "\n")
			if st.NextTask != "" {
				b.WriteString(s.help.Render("Prochaine étape : "+st.NextTask) + "\n")
			}
			b.WriteString("\n")
		}
	case sectionGroups:
		if len(p.Groups) == 0 {
			b.WriteString(s.muted.Render("Vous n'avez rejoint aucun groupe.") + "\n")
		}
		for _, g := range p.Groups {
			b.WriteString("• " + s.text.Render(g) + "\n")
		}
	case sectionHistory:
		for _, d := range models.DonationHistory() {
			status := s.ok.Render(d.Status)
			if d.Status != "Completed" {
				status = s.warn.Render(d.Status)
			}
			fmt.Fprintf(&b, "%-14s %-14s %16s  %s\n", d.Date, d.Method, donation.FormatFCFA(d.Amount), status)
		}
	case sectionProfile:
		if v.editing {
			b.WriteString(v.inputs[0].View() + "\n" + v.inputs[1].View() + "\n")
		} else {
			fmt.Fprintf(&b, "Nom     %s\nEmail   %s\n", s.text.Render(p.Name), s.text.Render(p.Email))
		}
		pr := p.Preferences
		b.WriteString("\n" + s.gold.Render("Préférences") + "\n")
		fmt.Fprintf(&b, "Notifications      %s\n", onOff(pr.Notifications))
		fmt.Fprintf(&b, "Lettre d'info      %s\n", onOff(pr.Newsletter))
		fmt.Fprintf(&b, "Taille du texte    %s\n", pr.FontSize)
		fmt.Fprintf(&b, "Contraste élevé    %s\n", onOff(pr.HighContrast))
		if v.err != "" {
			b.WriteString("\n" + s.err.Render(v.err) + "\n")
		}
		if v.editing {
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("tab", "champ"), binding("entrée", "enregistrer"), m.keys.back}))
		} else {
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
				binding("e", "éditer"), binding("n", "notifications"), binding("w", "lettre"), binding("f", "taille"), binding("c", "contraste"),
			}))
		}
	}

	if !v.editing {
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("←/→", "section"), binding("x", "déconnexion")}))
	}
	return b.String()
}
