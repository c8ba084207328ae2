package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/notify"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
)

const (
	repairCleanDelay  = 1500 * time.Millisecond
	repairReloadDelay = time.Second
)

const (
	repairCleaning = iota
	repairOptimized
	repairDone
)

// settingsView holds the status probe and repair progress.
type settingsView struct {
	probing       bool
	probed        bool
	latency       time.Duration
	probeErr      error
	storage       int64
	notifications bool
	repairing     bool
	repairStep    int
}

func newSettingsView() settingsView { return settingsView{} }

type permissionReader interface {
	Permission() notify.Permission
}

type permissionWriter interface {
	SetPermission(notify.Permission)
}

// probeStatus measures assistant latency and the size of the database file.
func (m *Model) probeStatus() tea.Cmd {
	v := &m.settings
	if r, ok := m.deps.Notifier.(permissionReader); ok {
		v.notifications = r.Permission() == notify.PermissionGranted
	}
	v.probing = true
	t := m.begin(router.Settings)
	ai := m.ai
	path := m.deps.DBPath
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		var latency time.Duration
		var err error
		if p, ok := ai.(services.Prober); ok {
			latency, err = p.Ping(t.Context())
		}
		return statusMsg(t.Gen, latency, err, storageUsed(path))
	})
}

func storageUsed(path string) int64 {
	if path == "" {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

func (m *Model) handleStatus(msg Msg) {
	if !m.current(router.Settings, msg.gen) {
		return
	}
	st := msg.data.(systemStatus)
	v := &m.settings
	v.probing = false
	v.probed = true
	v.latency = st.latency
	v.probeErr = st.err
	v.storage = st.storage
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	v := &m.settings
	switch msg.String() {
	case "t":
		if err := m.state.SetTheme(m.ctx, m.state.Theme.Toggle()); err != nil {
			m.logger.Error("failed to save theme", "error", err)
		}
	case "n":
		return m.toggleNotifications()
	case "r":
		if !v.repairing {
			return m.repair()
		}
	case "p":
		if !v.probing {
			return m.probeStatus()
		}
	}
	return nil
}

// toggleNotifications revokes a granted permission, or asks for one.
func (m *Model) toggleNotifications() tea.Cmd {
	v := &m.settings
	if v.notifications {
		if w, ok := m.deps.Notifier.(permissionWriter); ok {
			w.SetPermission(notify.PermissionDenied)
		}
		v.notifications = false
		return nil
	}
	t := m.begin(router.Settings)
	n := m.deps.Notifier
	return func() tea.Msg {
		granted, err := n.RequestPermission(t.Context())
		return permissionMsg(t.Gen, granted, err)
	}
}

func (m *Model) handlePermission(msg Msg) {
	if !m.current(router.Settings, msg.gen) {
		return
	}
	p := msg.data.(permission)
	if p.err != nil {
		m.logger.Warn("notification permission", "error", p.err)
	}
	m.settings.notifications = p.granted && p.err == nil
}

// repair drops session caches, then reloads every collection from storage.
func (m *Model) repair() tea.Cmd {
	v := &m.settings
	v.repairing = true
	v.repairStep = repairCleaning
	n := m.state.ClearCaptions()
	m.logger.Debug("cleared captions", "count", n)
	gen := m.trackers[router.Settings].Generation()
	return tea.Tick(repairCleanDelay, func(time.Time) tea.Msg { return repairStepMsg(gen, repairOptimized) })
}

func (m *Model) handleRepairStep(msg Msg) tea.Cmd {
	if !m.current(router.Settings, msg.gen) {
		return nil
	}
	v := &m.settings
	v.repairStep = msg.data.(int)
	if v.repairStep == repairOptimized {
		gen := msg.gen
		return tea.Tick(repairReloadDelay, func(time.Time) tea.Msg { return repairStepMsg(gen, repairDone) })
	}

	m.state.Reload(m.ctx)
	m.sermons.reload(m.state.Podcasts)
	m.gallery.reload(m.state.Photos)
	m.quiz.reload(m.state.Quiz)
	m.admin.cursor, m.admin.field = 0, 0
	v.repairing = false
	return tea.Batch(m.showToast("SYSTÈME OPTIMISÉ"), m.probeStatus())
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func (m *Model) viewSettings() string {
	s := m.styles()
	v := &m.settings
	var b strings.Builder

	b.WriteString(s.title.Render("Paramètres") + "\n\n")

	theme := "Sombre"
	if m.state.Theme == models.ThemeLight {
		theme = "Clair"
	}
	fmt.Fprintf(&b, "Thème           %s\n", s.gold.Render(theme))
	fmt.Fprintf(&b, "Notifications   %s\n\n", s.gold.Render(onOff(v.notifications)))

	b.WriteString(s.gold.Bold(true).Render("État du Système Tabernacle") + "\n")
	ai := s.err.Render("non configurée")
	if m.deps.Configured {
		ai = s.ok.Render("connectée")
	}
	fmt.Fprintf(&b, "IA              %s\n", ai)
	switch {
	case v.probing:
		b.WriteString("Latence         " + m.spin("mesure...") + "\n")
	case v.probeErr != nil:
		fmt.Fprintf(&b, "Latence         %s\n", s.err.Render("injoignable"))
	case v.probed && v.latency > 0:
		fmt.Fprintf(&b, "Latence         %s\n", s.ok.Render(fmt.Sprintf("%d ms", v.latency.Milliseconds())))
	default:
		fmt.Fprintf(&b, "Latence         %s\n", s.muted.Render("n/a"))
	}
	fmt.Fprintf(&b, "Stockage        %s\n\n", s.text.Render(formatBytes(v.storage)))

	if v.repairing {
		label := "Nettoyage du cache..."
		if v.repairStep != repairCleaning {
			label = "Optimisation terminée !"
		}
		b.WriteString(m.spin(strings.ToUpper(label)) + "\n")
	} else {
		b.WriteString(s.active.Render("LANCER LA RÉPARATION") + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		binding("t", "thème"), binding("n", "notifications"), binding("p", "tester"), binding("r", "réparer"),
	}))
	return b.String()
}
