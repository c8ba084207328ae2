package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/services"
)

// greeting picks the assistant's first message from the hour of day.
func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Bonjour et bienvenue au " + churchName + ". Comment puis-je vous accompagner spirituellement aujourd'hui ?"
	case h < 18:
		return "Bon après-midi. Que la grâce du " + churchName + " soit avec vous. En quoi puis-je vous aider ?"
	}
	return "Bonsoir. Que la paix du Seigneur repose sur vous au sein du " + churchName + ". Avez-vous besoin d'une prière ?"
}

// chatOverlay is the assistant conversation panel.
type chatOverlay struct {
	open     bool
	waiting  bool
	messages []models.ChatMessage
	input    textinput.Model
	vp       viewport.Model
}

func newChatOverlay(first string) chatOverlay {
	in := textinput.New()
	in.Placeholder = "Posez votre question..."
	in.CharLimit = 500
	return chatOverlay{
		messages: []models.ChatMessage{{Role: models.RoleModel, Content: first}},
		input:    in,
		vp:       viewport.New(60, 10),
	}
}

func (c *chatOverlay) resize(w, h int) {
	c.vp.Width = w - 4
	c.vp.Height = max(h-6, 3)
	c.input.Width = w - 8
}

func (c *chatOverlay) toggle() tea.Cmd {
	c.open = !c.open
	if c.open {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// sync renders the transcript into the viewport and keeps the newest message in view.
func (c *chatOverlay) sync(m *Model) {
	s := m.styles()
	width := max(c.vp.Width-2, 10)
	bubble := lipgloss.NewStyle().Width(width * 85 / 100)

	var b strings.Builder
	for _, msg := range c.messages {
		if msg.Role == models.RoleUser {
			line := bubble.Render(s.gold.Render(msg.Content))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, line))
		} else {
			b.WriteString(bubble.Render(s.text.Render(msg.Content)))
		}
		b.WriteString("\n\n")
	}
	if c.waiting {
		b.WriteString(m.spin("L'assistant prie et réfléchit..."))
	}
	c.vp.SetContent(b.String())
	c.vp.GotoBottom()
}

func (m *Model) updateChat(msg tea.KeyMsg) tea.Cmd {
	c := &m.chat
	switch {
	case key.Matches(msg, m.keys.back):
		return c.toggle()
	case key.Matches(msg, m.keys.enter):
		return m.sendChat()
	case msg.String() == "pgup" || msg.String() == "pgdown":
		var cmd tea.Cmd
		c.vp, cmd = c.vp.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// sendChat appends the member's message and asks the assistant with the prior transcript as history.
func (m *Model) sendChat() tea.Cmd {
	c := &m.chat
	text := strings.TrimSpace(c.input.Value())
	if text == "" || c.waiting {
		return nil
	}
	c.input.SetValue("")

	history := append([]models.ChatMessage(nil), c.messages...)
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	c.waiting = true

	t := m.chatJobs.Begin()
	ai := m.ai
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := ai.Chat(t.Context(), text, history)
		if err != nil || reply == "" {
			reply = services.FallbackChatError
		}
		return chatReplyMsg(t.Gen, reply)
	})
}

func (m *Model) handleChatReply(msg Msg) tea.Cmd {
	if !m.chatJobs.Current(msg.gen) {
		return nil
	}
	m.chat.waiting = false
	m.chat.messages = append(m.chat.messages, models.ChatMessage{Role: models.RoleModel, Content: msg.data.(string)})
	return nil
}

func (m *Model) viewChat() string {
	s := m.styles()
	header := s.active.Render("ASSISTANT DU TABERNACLE")
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.chat.vp.View(), m.chat.input.View())
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, binding("pgup/pgdown", "défiler"), m.keys.back})
	return s.chat.Render(body) + "\n" + helpView
}
