package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/notify"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/shared"
)

const chartWidth = 32

// homeView is the landing page. Its sections scroll inside one viewport.
type homeView struct {
	slide      int
	meditation string
	meditating bool
	filter     int // 0 is All, then models.EventTypes
	cursor     int
	reminded   map[string]bool
	vp         viewport.Model
	anchorLine int
	highlight  bool
}

func newHomeView() homeView {
	return homeView{reminded: make(map[string]bool), vp: viewport.New(80, 20)}
}

func (h *homeView) resize(w, ht int) {
	h.vp.Width = w
	h.vp.Height = ht
}

func (h *homeView) filterName() string {
	if h.filter == 0 {
		return "All"
	}
	return models.EventTypes[h.filter-1]
}

func (h *homeView) events() []models.ChurchEvent {
	return models.FilterEvents(models.Events(), h.filterName())
}

func (h *homeView) sync(m *Model) {
	content, anchor := m.renderHome()
	h.anchorLine = anchor
	h.vp.SetContent(content)
}

func (m *Model) fetchMeditation() tea.Cmd {
	m.home.meditating = true
	t := m.begin(router.Home)
	ai := m.ai
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		text, err := ai.Meditation(t.Context(), models.DailyVerseLabel+" - "+models.DailyVerseText)
		if err != nil || text == "" {
			text = services.FallbackMeditationError
		}
		return meditationMsg(t.Gen, text)
	})
}

func (m *Model) updateHome(msg tea.KeyMsg) tea.Cmd {
	h := &m.home
	h.highlight = false
	switch {
	case key.Matches(msg, m.keys.left):
		if n := len(m.state.Hero); n > 0 {
			h.slide = (h.slide - 1 + n) % n
		}
	case key.Matches(msg, m.keys.right):
		if n := len(m.state.Hero); n > 0 {
			h.slide = (h.slide + 1) % n
		}
	case key.Matches(msg, m.keys.up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if h.cursor < len(h.events())-1 {
			h.cursor++
		}
	case msg.String() == "f":
		h.filter = (h.filter + 1) % (len(models.EventTypes) + 1)
		h.cursor = 0
	case msg.String() == "r":
		return m.toggleReminder()
	case msg.String() == "m":
		if !h.meditating {
			return m.fetchMeditation()
		}
	case msg.String() == "p" || key.Matches(msg, m.keys.enter):
		live := m.state.Live
		return m.jumpToMedia(live.ID, live.Title, true)
	default:
		var cmd tea.Cmd
		h.vp, cmd = h.vp.Update(msg)
		return cmd
	}
	return nil
}

// toggleReminder asks for notification permission, then flips the reminder of the selected event.
func (m *Model) toggleReminder() tea.Cmd {
	events := m.home.events()
	if m.home.cursor >= len(events) {
		return nil
	}
	ev := events[m.home.cursor]
	t := m.begin(router.Home)
	n := m.deps.Notifier
	return func() tea.Msg {
		granted, err := n.RequestPermission(t.Context())
		return reminderMsg(t.Gen, ev.ID, granted && err == nil)
	}
}

func (m *Model) handleReminder(msg Msg) tea.Cmd {
	if !m.current(router.Home, msg.gen) {
		return nil
	}
	r := msg.data.(reminder)
	if m.home.reminded[r.eventID] {
		delete(m.home.reminded, r.eventID)
		return nil
	}
	m.home.reminded[r.eventID] = true

	if !r.granted {
		return m.showToast("RAPPEL ACTIVÉ (SANS NOTIFICATION)")
	}
	for _, ev := range models.Events() {
		if ev.ID == r.eventID {
			notify.SimulatePush(m.ctx, m.deps.Notifier, notify.PushDelay, notify.PushEvent, ev.Title, ev.Time)
		}
	}
	return m.showToast("RAPPEL PROGRAMMÉ AVEC SUCCÈS")
}

func (m *Model) handleAnchor(gen uint64) {
	anchor, ok := m.router.TakeAnchor()
	if !ok || gen != m.router.Generation() || m.router.Active() != router.Home || anchor != router.MediaAnchor {
		return
	}
	m.home.sync(m)
	m.home.vp.SetYOffset(m.home.anchorLine)
	m.home.highlight = true
}

// renderHome builds the page and returns the line at which the player area starts.
func (m *Model) renderHome() (string, int) {
	s := m.styles()
	h := &m.home
	width := max(h.vp.Width-4, 20)
	var sections []string

	if n := len(m.state.Hero); n > 0 {
		slide := m.state.Hero[h.slide%n]
		hero := lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render(shared.PlainText(slide.Title)),
			s.text.Width(width).Render(shared.PlainText(slide.Subtitle)),
			s.muted.Render(fmt.Sprintf("%d / %d  ←/→", h.slide%n+1, n)),
		)
		sections = append(sections, s.panel.Width(width).Render(hero))
	}

	verse := []string{
		s.gold.Bold(true).Render("VERSET DU JOUR"),
		s.text.Width(width).Italic(true).Render("« " + models.DailyVerseText + " »"),
		s.muted.Render("— " + models.DailyVerseLabel),
		"",
	}
	if h.meditating {
		verse = append(verse, m.spin("Méditation en préparation..."))
	} else if h.meditation != "" {
		verse = append(verse, s.text.Width(width).Render(h.meditation))
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, verse...))

	anchor := len(strings.Split(strings.Join(sections, "\n\n"), "\n")) + 1
	sections = append(sections, m.renderPlayerArea(width))
	sections = append(sections, m.renderEvents(width))
	sections = append(sections, m.renderTransparency())

	return strings.Join(sections, "\n\n"), anchor
}

func (m *Model) renderPlayerArea(width int) string {
	s := m.styles()
	media := m.router.Media()
	if media.ID == "" {
		live := m.state.Live
		media = router.Media{ID: live.ID, Title: live.Title, Live: live.IsLive}
	}

	label := "LECTURE"
	if media.Live {
		label = "● EN DIRECT"
	}
	lines := []string{
		s.err.Render(label) + "  " + s.title.UnsetMarginBottom().Render(shared.PlainText(media.Title)),
		s.muted.Render("https://www.youtube.com/watch?v=" + media.ID),
		s.help.Render("p : regarder le direct"),
	}
	box := s.panel
	if m.home.highlight {
		box = s.anchor
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEvents(width int) string {
	s := m.styles()
	h := &m.home
	var b strings.Builder
	b.WriteString(s.gold.Bold(true).Render("ÉVÉNEMENTS") + "  " + s.muted.Render("filtre : "+h.filterName()+" (f)") + "\n")
	for i, ev := range h.events() {
		bell := "  "
		if h.reminded[ev.ID] {
			bell = "🔔"
		}
		line := fmt.Sprintf("%s %-12s %5s  %-24s %s", bell, ev.Date, ev.Time, ev.Title, s.muted.Render("["+ev.Type+"]"))
		if i == h.cursor {
			line = s.gold.Render("▸") + line
		} else {
			line = " " + line
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(line) + "\n")
	}
	b.WriteString(s.help.Render("r : rappel"))
	return b.String()
}

func (m *Model) renderTransparency() string {
	s := m.styles()
	totals := models.TransparencyTotals()
	peak := 1
	for _, t := range totals {
		peak = max(peak, t.Amount)
	}

	var b strings.Builder
	b.WriteString(s.gold.Bold(true).Render("TRANSPARENCE DES DONS") + "\n")
	for _, t := range totals {
		n := t.Amount * chartWidth / peak
		bar := s.gold.Render(strings.Repeat("█", n)) + s.muted.Render(strings.Repeat("░", chartWidth-n))
		fmt.Fprintf(&b, "%-4s %s %s\n", t.Month, bar, donation.FormatFCFA(t.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewHome() string {
	helpView := m.help.ShortHelpView([]key.Binding{
		binding("←/→", "diapositive"), binding("↑/↓", "événement"), binding("f", "filtrer"),
		binding("r", "rappel"), binding("p", "direct"), binding("m", "méditation"), binding("pgup/pgdown", "défiler"),
	})
	return m.home.vp.View() + "\n" + helpView
}
