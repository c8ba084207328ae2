// package router maps the active tab to a view and carries the jump-to-media signal.
package router

import "strings"

// Tab identifies one top-level view.
type Tab string

const (
	Home      Tab = "home"
	Donations Tab = "donations"
	Bible     Tab = "bible"
	Quiz      Tab = "quiz"
	Sermons   Tab = "sermons"
	Gallery   Tab = "gallery"
	Community Tab = "community"
	Members   Tab = "members"
	Settings  Tab = "settings"
	Admin     Tab = "admin"
)

// Tabs lists every tab in navigation order.
var Tabs = []Tab{Home, Donations, Bible, Quiz, Sermons, Gallery, Community, Members, Settings, Admin}

// MediaAnchor names the home view region that shows the selected media.
const MediaAnchor = "live-player-area"

// Label is the French navigation label.
func (t Tab) Label() string {
	switch t {
	case Home:
		return "Accueil"
	case Donations:
		return "Dons"
	case Bible:
		return "Bible"
	case Quiz:
		return "Quiz"
	case Sermons:
		return "Podcasts"
	case Gallery:
		return "Galerie"
	case Community:
		return "Communauté"
	case Members:
		return "Espace Membre"
	case Settings:
		return "Paramètres"
	case Admin:
		return "Admin"
	}
	return ""
}

// ParseTab resolves an identifier, falling back to [Home] for anything unknown.
func ParseTab(id string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(id)))
	for _, known := range Tabs {
		if t == known {
			return t
		}
	}
	return Home
}

// Media is the globally selected video or audio item.
type Media struct {
	ID    string
	Title string
	Live  bool
}

// Router holds the active tab. Each switch bumps a generation so callers can drop late results.
type Router struct {
	active        Tab
	gen           uint64
	media         Media
	pendingAnchor string
}

// New creates a Router on [Home].
func New() *Router {
	return &Router{active: Home}
}

// Active returns the current tab.
func (r *Router) Active() Tab { return r.active }

// Generation returns the number of switches performed so far.
func (r *Router) Generation() uint64 { return r.gen }

// Media returns the selected media item.
func (r *Router) Media() Media { return r.media }

// Switch activates the tab named by id, falling back to [Home], and reports whether the tab changed.
func (r *Router) Switch(id string) bool {
	return r.SwitchTo(ParseTab(id))
}

// SwitchTo activates t. Unknown values fall back to [Home].
func (r *Router) SwitchTo(t Tab) bool {
	t = ParseTab(string(t))
	if t == r.active {
		return false
	}
	r.active = t
	r.gen++
	return true
}

// Reset returns to the default tab and forgets any pending scroll.
func (r *Router) Reset() {
	r.SwitchTo(Home)
	r.pendingAnchor = ""
}

// JumpToMedia selects a media item, forces the home tab and schedules a scroll to [MediaAnchor]
// after the next render.
func (r *Router) JumpToMedia(id, title string, live bool) {
	r.media = Media{ID: id, Title: title, Live: live}
	r.SwitchTo(Home)
	r.pendingAnchor = MediaAnchor
}

// TakeAnchor returns the pending scroll anchor once and clears it.
// Callers invoke it after the view has rendered.
func (r *Router) TakeAnchor() (string, bool) {
	a := r.pendingAnchor
	r.pendingAnchor = ""
	return a, a != ""
}
