package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/services"
)

// MaxChapter bounds the chapter selector; the longest book has 150 chapters.
const MaxChapter = 150

// bibleView covers book selection and chapter reading.
type bibleView struct {
	newTestament  bool
	books         list.Model
	chapter       int
	reading       bool
	book          string
	verses        []models.Verse
	loading       bool
	explanation   string
	explaining    bool
	fetchingAudio bool
	narrating     bool
	playGen       uint64
	err           string
	vp            viewport.Model
}

func newBibleView() bibleView {
	return bibleView{
		books:   newList("Ancien Testament", bookItems(models.OldTestament), 30, 20),
		chapter: 1,
		vp:      viewport.New(80, 20),
	}
}

func (b *bibleView) resize(w, h int) {
	b.books.SetSize(min(w/3, 36), h-2)
	b.vp.Width = w
	b.vp.Height = max(h-4, 3)
}

func (b *bibleView) selectedBook() string {
	if it, ok := b.books.SelectedItem().(bookItem); ok {
		return it.name
	}
	return models.OldTestament[0]
}

func (b *bibleView) setTestament(nt bool) tea.Cmd {
	b.newTestament = nt
	b.chapter = 1
	if nt {
		b.books.Title = "Nouveau Testament"
		return b.books.SetItems(bookItems(models.NewTestament))
	}
	b.books.Title = "Ancien Testament"
	return b.books.SetItems(bookItems(models.OldTestament))
}

func (b *bibleView) sync(m *Model) {
	if !b.reading {
		return
	}
	s := m.styles()
	width := max(b.vp.Width-4, 20)
	var sb strings.Builder
	if len(b.verses) == 0 {
		sb.WriteString(s.muted.Render("Aucun verset n'a pu être récupéré pour ce chapitre.") + "\n")
	}
	for _, v := range b.verses {
		sb.WriteString(s.gold.Render(fmt.Sprintf("%3d ", v.Number)))
		sb.WriteString(lipgloss.NewStyle().Width(width).Render(v.Text) + "\n")
	}
	if b.explaining {
		sb.WriteString("\n" + m.spin("Explication en cours...") + "\n")
	} else if b.explanation != "" {
		sb.WriteString("\n" + s.panel.Width(width).Render(s.gold.Bold(true).Render("ÉCLAIRAGE SPIRITUEL")+"\n"+b.explanation) + "\n")
	}
	b.vp.SetContent(sb.String())
}

func (m *Model) updateBible(msg tea.KeyMsg) tea.Cmd {
	b := &m.bible
	if b.reading {
		return m.updateReading(msg)
	}
	if b.loading {
		return nil
	}

	switch {
	case msg.String() == "t":
		return b.setTestament(!b.newTestament)
	case key.Matches(msg, m.keys.left) || msg.String() == "-":
		if b.chapter > 1 {
			b.chapter--
		}
		return nil
	case key.Matches(msg, m.keys.right) || msg.String() == "+":
		if b.chapter < MaxChapter {
			b.chapter++
		}
		return nil
	case key.Matches(msg, m.keys.enter):
		return m.loadChapter(b.selectedBook(), b.chapter)
	}

	prev := b.selectedBook()
	var cmd tea.Cmd
	b.books, cmd = b.books.Update(msg)
	if b.selectedBook() != prev {
		b.chapter = 1
	}
	return cmd
}

func (m *Model) updateReading(msg tea.KeyMsg) tea.Cmd {
	b := &m.bible
	switch {
	case key.Matches(msg, m.keys.back):
		if b.narrating {
			m.stopPlayback()
		}
		m.trackers[router.Bible].Advance()
		b.reading = false
		b.explanation = ""
		b.explaining = false
		b.fetchingAudio = false
		return nil
	case msg.String() == "e":
		if b.explanation != "" {
			b.explanation = ""
			return nil
		}
		if !b.explaining {
			return m.explainChapter()
		}
		return nil
	case msg.String() == "n":
		return m.toggleNarration()
	}
	var cmd tea.Cmd
	b.vp, cmd = b.vp.Update(msg)
	return cmd
}

func (m *Model) loadChapter(book string, chapter int) tea.Cmd {
	b := &m.bible
	b.loading = true
	b.err = ""
	t := m.begin(router.Bible)
	ai := m.ai
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		verses, err := ai.ChapterText(t.Context(), book, chapter)
		return chapterLoadedMsg(t.Gen, book, chapter, verses, err)
	})
}

func (m *Model) handleChapter(msg Msg) {
	if !m.current(router.Bible, msg.gen) {
		return
	}
	b := &m.bible
	b.loading = false
	res := msg.data.(chapterResult)
	if res.err != nil {
		b.err = "Impossible de charger le chapitre. Vérifiez votre connexion."
		return
	}
	b.book = res.book
	b.chapter = res.chapter
	b.verses = res.verses
	b.reading = true
	b.explanation = ""
	b.vp.GotoTop()
}

func (m *Model) explainChapter() tea.Cmd {
	b := &m.bible
	b.explaining = true
	t := m.begin(router.Bible)
	ai := m.ai
	book, chapter := b.book, b.chapter
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		text, err := ai.ChapterExplanation(t.Context(), book, chapter)
		if err != nil || text == "" {
			text = services.FallbackExplanation
		}
		return explanationMsg(t.Gen, text)
	})
}

// toggleNarration stops the chapter narration when it is playing, otherwise requests it.
func (m *Model) toggleNarration() tea.Cmd {
	b := &m.bible
	if b.narrating {
		m.stopPlayback()
		return nil
	}
	if b.fetchingAudio || len(b.verses) == 0 {
		return nil
	}

	texts := make([]string, len(b.verses))
	for i, v := range b.verses {
		texts[i] = v.Text
	}
	full := strings.Join(texts, " ")

	b.fetchingAudio = true
	t := m.begin(router.Bible)
	ai := m.ai
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		pcm, err := ai.Narrate(t.Context(), full)
		return narrationReadyMsg(t.Gen, pcm, err)
	})
}

func (m *Model) handleNarration(msg Msg) tea.Cmd {
	if !m.current(router.Bible, msg.gen) {
		return nil
	}
	b := &m.bible
	b.fetchingAudio = false
	res := msg.data.(narration)
	if res.err != nil {
		return m.showToast("La lecture audio est indisponible.")
	}

	clip := audio.Clip{
		ID:    fmt.Sprintf("bible:%s:%d", b.book, b.chapter),
		Title: fmt.Sprintf("%s %d", b.book, b.chapter),
		WAV:   audio.EncodeWAV(res.pcm, audio.Speech),
	}
	pb := m.deps.Player.Play(clip)
	b.narrating = true
	b.playGen = pb.Gen
	m.player = playerBar{}
	return waitForPlayback(pb)
}

func (m *Model) viewBible() string {
	s := m.styles()
	b := &m.bible

	if b.reading {
		status := ""
		switch {
		case b.fetchingAudio:
			status = m.spin("Préparation de la lecture...")
		case b.narrating:
			status = s.gold.Render("♪ Lecture en cours")
		}
		header := s.title.Render(fmt.Sprintf("%s %d", b.book, b.chapter)) + "  " + status
		helpView := m.help.ShortHelpView([]key.Binding{
			binding("e", "explication"), binding("n", "écouter / arrêter"), binding("↑/↓", "défiler"), m.keys.back,
		})
		return header + "\n" + b.vp.View() + "\n" + helpView
	}

	side := []string{
		s.title.Render("La Sainte Bible"),
		fmt.Sprintf("Livre     %s", s.gold.Render(b.selectedBook())),
		fmt.Sprintf("Chapitre  %s", s.gold.Render(fmt.Sprintf("◂ %d ▸", b.chapter))),
		"",
	}
	if b.loading {
		side = append(side, m.spin("Chargement du chapitre..."))
	} else {
		side = append(side, s.active.Render("LIRE LE CHAPITRE"))
	}
	if b.err != "" {
		side = append(side, "", s.err.Render(b.err))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, b.books.View(), "  ", lipgloss.JoinVertical(lipgloss.Left, side...))
	helpView := m.help.ShortHelpView([]key.Binding{
		binding("t", "testament"), binding("↑/↓", "livre"), binding("←/→", "chapitre"), binding("entrée", "lire"),
	})
	return body + "\n" + helpView
}
