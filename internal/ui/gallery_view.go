package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/shared"
)

const allCategories = "All"

// galleryView lists photos by event and shows one with its generated caption.
type galleryView struct {
	list       list.Model
	categories []string
	category   int
	detail     string          // id of the opened photo
	captioning map[string]bool // photo ids with a caption request in flight
	width      int
}

func newGalleryView(photos []models.PhotoItem) galleryView {
	g := galleryView{list: newList("Galerie", photoItems(photos), 60, 20), captioning: make(map[string]bool), width: 60}
	g.categories = photoCategories(photos)
	return g
}

// photoCategories returns "All" followed by each distinct event name in first-seen order.
func photoCategories(photos []models.PhotoItem) []string {
	out := []string{allCategories}
	seen := make(map[string]bool)
	for _, p := range photos {
		if !seen[p.Event] {
			seen[p.Event] = true
			out = append(out, p.Event)
		}
	}
	return out
}

func filterPhotos(photos []models.PhotoItem, category string) []models.PhotoItem {
	if category == allCategories {
		return photos
	}
	var out []models.PhotoItem
	for _, p := range photos {
		if p.Event == category {
			out = append(out, p)
		}
	}
	return out
}

func (g *galleryView) resize(w, h int) {
	g.width = w
	g.list.SetSize(w, h-2)
}

func (g *galleryView) reload(photos []models.PhotoItem) {
	cur := g.categories[g.category]
	g.categories = photoCategories(photos)
	g.category = 0
	for i, c := range g.categories {
		if c == cur {
			g.category = i
		}
	}
	g.list.SetItems(photoItems(filterPhotos(photos, g.categories[g.category])))
}

func (m *Model) openedPhoto() (models.PhotoItem, bool) {
	for _, p := range m.state.Photos {
		if p.ID == m.gallery.detail {
			return p, true
		}
	}
	return models.PhotoItem{}, false
}

func (m *Model) updateGallery(msg tea.KeyMsg) tea.Cmd {
	g := &m.gallery
	if g.detail != "" {
		if key.Matches(msg, m.keys.back) || key.Matches(msg, m.keys.enter) {
			g.detail = ""
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.left):
		g.category = (g.category - 1 + len(g.categories)) % len(g.categories)
		g.reload(m.state.Photos)
		return nil
	case key.Matches(msg, m.keys.right):
		g.category = (g.category + 1) % len(g.categories)
		g.reload(m.state.Photos)
		return nil
	case key.Matches(msg, m.keys.enter):
		it, ok := g.list.SelectedItem().(photoItem)
		if !ok {
			return nil
		}
		return m.openPhoto(it.photo.ID)
	}

	var cmd tea.Cmd
	g.list, cmd = g.list.Update(msg)
	return cmd
}

// openPhoto shows the photo and asks for a caption the first time it is opened this session.
func (m *Model) openPhoto(id string) tea.Cmd {
	g := &m.gallery
	g.detail = id
	p, ok := m.openedPhoto()
	if !ok || p.AICaption != "" || g.captioning[id] {
		return nil
	}
	g.captioning[id] = true
	t := m.begin(router.Gallery)
	ai := m.ai
	desc := shared.PlainText(p.Description)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		text, err := ai.PhotoCaption(t.Context(), desc)
		if err != nil || text == "" {
			text = services.FallbackCaptionError
		}
		return captionMsg(t.Gen, id, text)
	})
}

func (m *Model) handleCaption(msg Msg) {
	if !m.current(router.Gallery, msg.gen) {
		return
	}
	c := msg.data.(caption)
	delete(m.gallery.captioning, c.photoID)
	m.state.SetCaption(c.photoID, c.text)
}

func (m *Model) viewGallery() string {
	s := m.styles()
	g := &m.gallery

	if p, ok := m.openedPhoto(); ok && g.detail != "" {
		width := max(g.width-4, 20)
		var b strings.Builder
		b.WriteString(s.title.Render(p.Event) + "\n")
		b.WriteString(s.muted.Render(p.URL) + "\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(shared.PlainText(p.Description)) + "\n\n")
		switch {
		case p.AICaption != "":
			b.WriteString(s.panel.Width(width).Render(s.gold.Render("✦ ") + s.text.Italic(true).Render(p.AICaption)) + "\n")
		case g.captioning[p.ID]:
			b.WriteString(m.spin("L'IA contemple l'image...") + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.back}))
		return b.String()
	}

	chips := make([]string, len(g.categories))
	for i, c := range g.categories {
		if i == g.category {
			chips[i] = s.active.Render(c)
		} else {
			chips[i] = s.tab.Render(c)
		}
	}
	header := lipgloss.NewStyle().MaxWidth(g.width).Render(strings.Join(chips, " "))
	footer := m.help.ShortHelpView([]key.Binding{binding("←/→", "catégorie"), binding("entrée", "ouvrir")})
	return header + "\n" + g.list.View() + "\n" + footer
}
