package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/notify"
)

// communityView shows testimonies or the forum. Published testimonies live for the session only.
type communityView struct {
	forum       bool
	testimonies []models.Testimony
	liked       map[string]bool
	cursor      int
	composing   bool
	input       textinput.Model
	published   int
}

func newCommunityView() communityView {
	in := textinput.New()
	in.Placeholder = "Aujourd'hui, j'ai vu la main de Dieu..."
	in.CharLimit = 500
	in.Width = 60
	return communityView{
		testimonies: models.Testimonies(),
		liked:       make(map[string]bool),
		input:       in,
	}
}

func (c *communityView) likes(t models.Testimony) int {
	if c.liked[t.ID] {
		return t.Likes + 1
	}
	return t.Likes
}

func (m *Model) updateCommunity(msg tea.KeyMsg) tea.Cmd {
	c := &m.community
	if c.composing {
		switch {
		case key.Matches(msg, m.keys.back):
			c.composing = false
			c.input.Blur()
			return nil
		case key.Matches(msg, m.keys.enter):
			return m.publishTestimony()
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}

	switch {
	case msg.String() == "v":
		c.forum = !c.forum
	case c.forum:
	case key.Matches(msg, m.keys.up):
		c.cursor = max(c.cursor-1, 0)
	case key.Matches(msg, m.keys.down):
		c.cursor = min(c.cursor+1, len(c.testimonies)-1)
	case msg.String() == "l" || key.Matches(msg, m.keys.enter):
		if c.cursor < len(c.testimonies) {
			id := c.testimonies[c.cursor].ID
			c.liked[id] = !c.liked[id]
		}
	case msg.String() == "p":
		c.composing = true
		c.input.SetValue("")
		return c.input.Focus()
	}
	return nil
}

// publishTestimony adds the draft to the top of the feed and announces it to other members.
func (m *Model) publishTestimony() tea.Cmd {
	c := &m.community
	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return nil
	}
	name := "Un membre"
	if m.state.Profile != nil && m.state.Profile.Name != "" {
		name = m.state.Profile.Name
	}
	c.published++
	t := models.Testimony{
		ID:      fmt.Sprintf("local-%d", c.published),
		User:    name,
		Content: text,
		Date:    "À l'instant",
	}
	c.testimonies = append([]models.Testimony{t}, c.testimonies...)
	c.cursor = 0
	c.composing = false
	c.input.Blur()

	notify.SimulatePush(m.ctx, m.deps.Notifier, notify.PushDelay, notify.PushCommunity, name, "")
	return m.showToast("TÉMOIGNAGE PUBLIÉ")
}

func (m *Model) viewCommunity() string {
	s := m.styles()
	c := &m.community
	var b strings.Builder

	tabs := []string{"TÉMOIGNAGES", "FORUM DE DISCUSSION"}
	for i, label := range tabs {
		if (i == 1) == c.forum {
			tabs[i] = s.active.Render(label)
		} else {
			tabs[i] = s.tab.Render(label)
		}
	}
	b.WriteString(s.title.Render("Espace Communautaire") + "\n" + strings.Join(tabs, " ") + "\n\n")

	var main strings.Builder
	switch {
	case c.composing:
		main.WriteString(s.gold.Render("Partagez votre témoignage") + "\n\n" + c.input.View() + "\n\n")
		main.WriteString(m.help.ShortHelpView([]key.Binding{binding("entrée", "publier la lumière"), m.keys.back}))
	case c.forum:
		for _, t := range models.ForumTopics() {
			main.WriteString(s.text.Render(t.Topic) + "\n")
			main.WriteString(s.muted.Render(fmt.Sprintf("%s • %s • %d réponses", t.User, t.Time, t.Replies)) + "\n\n")
		}
	default:
		for i, t := range c.testimonies {
			marker := "  "
			if i == c.cursor {
				marker = s.gold.Render("▸ ")
			}
			heart := "♡"
			if c.liked[t.ID] {
				heart = s.err.Render("♥")
			}
			main.WriteString(marker + s.text.Bold(true).Render(t.User) + " " + s.muted.Render(t.Date) + "\n")
			main.WriteString("  " + s.text.Italic(true).Render(fmt.Sprintf("« %s »", t.Content)) + "\n")
			main.WriteString(fmt.Sprintf("  %s %d", heart, c.likes(t)) + "\n\n")
		}
	}

	groups := []string{s.gold.Render("Groupes actifs")}
	for _, g := range models.CommunityGroups {
		groups = append(groups, s.text.Render(g[0])+" "+s.muted.Render(g[1]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main.String(), "   ", lipgloss.JoinVertical(lipgloss.Left, groups...)))

	if !c.composing {
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
			binding("v", "témoignages / forum"), binding("l", "aimer"), binding("p", "publier"),
		}))
	}
	return b.String()
}
