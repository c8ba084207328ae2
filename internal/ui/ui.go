package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/tabernacle/internal/admin"
	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/notify"
	"github.com/desertthunder/tabernacle/internal/quiz"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/store"
	"github.com/desertthunder/tabernacle/internal/tasks"
)

const (
	// anchorDelay lets the home view render once before scrolling to the player area.
	anchorDelay = 100 * time.Millisecond
	toastTTL    = 3 * time.Second
	churchName  = "Le Tabernacle de la Foi"
)

// Deps are the collaborators the TUI drives.
type Deps struct {
	State      *store.State
	Gate       *auth.Gate
	Assistant  services.Assistant
	Notifier   notify.Notifier
	Notes      <-chan notify.Notification // notifications displayed by Notifier
	Player     *audio.Player
	Donations  *donation.Service
	Panel      *admin.Panel
	Configured bool // assistant credentials present
	DBPath     string
	Logger     *log.Logger
	Clock      func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	deps     Deps
	state    *store.State
	gate     *auth.Gate
	ai       services.Assistant
	router   *router.Router
	trackers map[router.Tab]*tasks.Tracker
	chatJobs *tasks.Tracker
	authJobs *tasks.Tracker
	logger   *log.Logger
	now      func() time.Time

	width    int
	height   int
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	showHelp bool
	toast    string
	toastID  int
	err      error

	authForm  authForm
	chat      chatOverlay
	home      homeView
	donate    donateView
	bible     bibleView
	quiz      quizView
	sermons   sermonsView
	gallery   galleryView
	community communityView
	members   membersView
	settings  settingsView
	admin     adminView
	player    playerBar
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, d Deps) *Model {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Player == nil {
		d.Player = audio.NewPlayer(audio.SilentSink{}, d.Logger)
	}
	if d.Notifier == nil {
		d.Notifier = notify.NewLogNotifier(d.Logger)
	}

	trackers := make(map[router.Tab]*tasks.Tracker, len(router.Tabs))
	for _, t := range router.Tabs {
		trackers[t] = tasks.NewTracker(ctx)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:      ctx,
		deps:     d,
		state:    d.State,
		gate:     d.Gate,
		ai:       d.Assistant,
		router:   router.New(),
		trackers: trackers,
		chatJobs: tasks.NewTracker(ctx),
		authJobs: tasks.NewTracker(ctx),
		logger:   d.Logger,
		now:      d.Clock,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  sp,
	}

	m.authForm = newAuthForm()
	m.chat = newChatOverlay(greeting(m.now()))
	m.home = newHomeView()
	m.donate = newDonateView()
	m.bible = newBibleView()
	m.quiz = newQuizView(m.state.Quiz)
	m.sermons = newSermonsView(m.state.Podcasts)
	m.gallery = newGalleryView(m.state.Photos)
	m.community = newCommunityView()
	m.members = newMembersView()
	m.settings = newSettingsView()
	m.admin = newAdminView()
	return m
}

// Init starts the spinner, listens for notifications and, when signed in, loads the home view.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitForNotification()}
	if m.gate.Status() == auth.LoggedIn {
		cmds = append(cmds, m.enter(router.Home))
	} else {
		cmds = append(cmds, m.authForm.focus())
	}
	return tea.Batch(cmds...)
}

func (m *Model) styles() *Palette { return PaletteFor(m.state.Theme) }

// Router exposes the navigation state.
func (m *Model) Router() *router.Router { return m.router }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
	case Msg:
		cmd = m.handleMsg(msg)
	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			m.shutdown()
			return m, tea.Quit
		}
	default:
		cmd = m.forward(msg)
	}
	m.sync()
	return m, cmd
}

func (m *Model) bodyHeight() int {
	// navbar, blank line, player bar, help line and toast line
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) bodyWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resize() {
	w, h := m.bodyWidth(), m.bodyHeight()
	m.home.resize(w, h)
	m.bible.resize(w, h)
	m.sermons.resize(w, h)
	m.gallery.resize(w, h)
	m.chat.resize(w, h)
	m.help.Width = m.width
}

// sync refreshes the scrollable content of the visible views after each update.
func (m *Model) sync() {
	switch m.router.Active() {
	case router.Home:
		m.home.sync(m)
	case router.Bible:
		m.bible.sync(m)
	}
	if m.chat.open {
		m.chat.sync(m)
	}
}

func (m *Model) shutdown() {
	for _, t := range m.trackers {
		t.Stop()
	}
	m.chatJobs.Stop()
	m.authJobs.Stop()
	m.deps.Player.Stop()
}

// typing reports whether a text input currently owns the keyboard.
func (m *Model) typing() bool {
	if m.chat.open {
		return true
	}
	switch m.router.Active() {
	case router.Donations:
		return m.donate.custom.Focused()
	case router.Sermons:
		return m.sermons.uploading
	case router.Members:
		return m.members.editing
	case router.Admin:
		return m.admin.editing || m.admin.uploading
	case router.Community:
		return m.community.composing
	}
	return false
}

// claimsDigits reports whether the active view reads number keys itself.
func (m *Model) claimsDigits() bool {
	if m.router.Active() != router.Quiz {
		return false
	}
	s := m.quiz.session
	return s.Status() == quiz.Playing && !s.Answered()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.forceQuit) {
		return nil, true
	}

	if m.gate.Status() != auth.LoggedIn {
		return m.updateAuth(msg), false
	}

	if key.Matches(msg, m.keys.chat) {
		return m.chat.toggle(), false
	}
	if m.chat.open {
		return m.updateChat(msg), false
	}
	if key.Matches(msg, m.keys.stop) {
		m.stopPlayback()
		return nil, false
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, m.keys.quit):
			return nil, true
		case key.Matches(msg, m.keys.help):
			m.showHelp = !m.showHelp
			return nil, false
		case key.Matches(msg, m.keys.nextTab):
			return m.switchTab(m.offsetTab(1)), false
		case key.Matches(msg, m.keys.prevTab):
			return m.switchTab(m.offsetTab(-1)), false
		}
		if t, ok := digitTab(msg.String()); ok && !m.claimsDigits() {
			return m.switchTab(t), false
		}
	}

	switch m.router.Active() {
	case router.Home:
		return m.updateHome(msg), false
	case router.Donations:
		return m.updateDonate(msg), false
	case router.Bible:
		return m.updateBible(msg), false
	case router.Quiz:
		return m.updateQuiz(msg), false
	case router.Sermons:
		return m.updateSermons(msg), false
	case router.Gallery:
		return m.updateGallery(msg), false
	case router.Community:
		return m.updateCommunity(msg), false
	case router.Members:
		return m.updateMembers(msg), false
	case router.Settings:
		return m.updateSettings(msg), false
	case router.Admin:
		return m.updateAdmin(msg), false
	}
	return nil, false
}

// forward passes non-key messages (cursor blink and the like) to focused inputs.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.gate.Status() != auth.LoggedIn {
		return m.authForm.update(msg)
	}
	var cmd tea.Cmd
	switch {
	case m.chat.open:
		m.chat.input, cmd = m.chat.input.Update(msg)
	case m.router.Active() == router.Donations && m.donate.custom.Focused():
		m.donate.custom, cmd = m.donate.custom.Update(msg)
	case m.router.Active() == router.Sermons && m.sermons.uploading:
		c := m.sermons.cursor
		m.sermons.inputs[c], cmd = m.sermons.inputs[c].Update(msg)
	case m.router.Active() == router.Members && m.members.editing:
		c := m.members.cursor
		m.members.inputs[c], cmd = m.members.inputs[c].Update(msg)
	case m.router.Active() == router.Community && m.community.composing:
		m.community.input, cmd = m.community.input.Update(msg)
	case m.router.Active() == router.Admin && (m.admin.editing || m.admin.uploading):
		m.admin.input, cmd = m.admin.input.Update(msg)
	}
	return cmd
}

func digitTab(s string) (router.Tab, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return "", false
	}
	i := int(s[0] - '1')
	if s == "0" {
		i = 9
	}
	if i >= len(router.Tabs) {
		return "", false
	}
	return router.Tabs[i], true
}

func (m *Model) offsetTab(delta int) router.Tab {
	cur := 0
	for i, t := range router.Tabs {
		if t == m.router.Active() {
			cur = i
		}
	}
	n := len(router.Tabs)
	return router.Tabs[((cur+delta)%n+n)%n]
}

// switchTab activates t. The previous tab's in-flight requests are cancelled and their results dropped.
func (m *Model) switchTab(t router.Tab) tea.Cmd {
	old := m.router.Active()
	if !m.router.SwitchTo(t) {
		return nil
	}
	m.leave(old)
	return m.enter(m.router.Active())
}

// begin issues a ticket for a request made by tab.
func (m *Model) begin(t router.Tab) tasks.Ticket {
	return m.trackers[t].Begin()
}

// current reports whether a result issued by tab under gen should be applied.
func (m *Model) current(t router.Tab, gen uint64) bool {
	return m.trackers[t].Current(gen)
}

func (m *Model) leave(t router.Tab) {
	m.trackers[t].Advance()
	switch t {
	case router.Home:
		m.home.meditating = false
	case router.Donations:
		m.donate.processing = false
	case router.Bible:
		m.bible.loading = false
		m.bible.explaining = false
		m.bible.fetchingAudio = false
	case router.Quiz:
		m.quiz.session.FetchFailed()
	case router.Gallery:
		clear(m.gallery.captioning)
	case router.Settings:
		m.settings.probing = false
		m.settings.repairing = false
	}
}

func (m *Model) enter(t router.Tab) tea.Cmd {
	switch t {
	case router.Home:
		if m.home.meditation == "" {
			return m.fetchMeditation()
		}
	case router.Sermons:
		m.sermons.reload(m.state.Podcasts)
	case router.Gallery:
		m.gallery.reload(m.state.Photos)
	case router.Quiz:
		m.quiz.reload(m.state.Quiz)
	case router.Admin:
		m.admin.cursor, m.admin.field = 0, 0
	case router.Settings:
		return m.probeStatus()
	}
	return nil
}

// jumpToMedia shows a video in the home player area and scrolls to it once the view has rendered.
func (m *Model) jumpToMedia(id, title string, live bool) tea.Cmd {
	old := m.router.Active()
	m.router.JumpToMedia(id, title, live)
	var cmds []tea.Cmd
	if old != router.Home {
		m.leave(old)
		cmds = append(cmds, m.enter(router.Home))
	}
	gen := m.router.Generation()
	cmds = append(cmds, tea.Tick(anchorDelay, func(time.Time) tea.Msg { return anchorMsg(gen) }))
	return tea.Batch(cmds...)
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	id := m.toastID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg(id) })
}

// waitForNotification blocks on the notification channel and re-arms itself from the handler.
func (m *Model) waitForNotification() tea.Cmd {
	if m.deps.Notes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case n, ok := <-m.deps.Notes:
			if !ok {
				return nil
			}
			return notificationMsg(n)
		}
	}
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgAuthResult:
		return m.handleAuthResult(msg)
	case MsgChatReply:
		return m.handleChatReply(msg)
	case MsgMeditation:
		if m.current(router.Home, msg.gen) {
			m.home.meditating = false
			m.home.meditation = msg.data.(string)
		}
	case MsgReminder:
		return m.handleReminder(msg)
	case MsgAnchor:
		m.handleAnchor(msg.gen)
	case MsgDonation:
		m.handleDonation(msg)
	case MsgChapterLoaded:
		m.handleChapter(msg)
	case MsgExplanation:
		if m.current(router.Bible, msg.gen) {
			m.bible.explaining = false
			m.bible.explanation = msg.data.(string)
		}
	case MsgNarrationReady:
		return m.handleNarration(msg)
	case MsgPlaybackDone:
		m.handlePlaybackDone(msg)
	case MsgQuizQuestion:
		m.handleQuizQuestion(msg)
	case MsgCaption:
		m.handleCaption(msg)
	case MsgNotification:
		n := msg.data.(notify.Notification)
		return tea.Batch(m.showToast(n.Title+" : "+n.Body), m.waitForNotification())
	case MsgPermission:
		m.handlePermission(msg)
	case MsgStatus:
		m.handleStatus(msg)
	case MsgRepairStep:
		return m.handleRepairStep(msg)
	case MsgToastExpired:
		if msg.data.(int) == m.toastID {
			m.toast = ""
		}
	}
	return nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	s := m.styles()
	if m.gate.Status() != auth.LoggedIn {
		return m.viewAuth()
	}

	var body string
	if m.chat.open {
		body = m.viewChat()
	} else {
		switch m.router.Active() {
		case router.Home:
			body = m.viewHome()
		case router.Donations:
			body = m.viewDonate()
		case router.Bible:
			body = m.viewBible()
		case router.Quiz:
			body = m.viewQuiz()
		case router.Sermons:
			body = m.viewSermons()
		case router.Gallery:
			body = m.viewGallery()
		case router.Community:
			body = m.viewCommunity()
		case router.Members:
			body = m.viewMembers()
		case router.Settings:
			body = m.viewSettings()
		case router.Admin:
			body = m.viewAdmin()
		}
	}

	parts := []string{m.viewNavbar(), body}
	if bar := m.viewPlayer(); bar != "" {
		parts = append(parts, bar)
	}
	if m.toast != "" {
		parts = append(parts, s.toast.Render(m.toast))
	}
	if m.err != nil {
		parts = append(parts, s.err.Render(fmt.Sprintf("Erreur : %v", m.err)))
	}
	if m.showHelp {
		parts = append(parts, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) viewNavbar() string {
	s := m.styles()
	tabs := make([]string, 0, len(router.Tabs)+1)
	tabs = append(tabs, s.gold.Bold(true).Render("✝ "+strings.ToUpper(churchName)))
	for i, t := range router.Tabs {
		label := fmt.Sprintf("%d %s", (i+1)%10, t.Label())
		if t == m.router.Active() {
			tabs = append(tabs, s.active.Render(label))
		} else {
			tabs = append(tabs, s.tab.Render(label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)) + "\n"
}

func (m *Model) spin(label string) string {
	return m.spinner.View() + " " + m.styles().muted.Render(label)
}
