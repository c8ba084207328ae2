package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/admin"
	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

type adminSection int

const (
	adminStats adminSection = iota
	adminQuiz
	adminVideos
	adminGallery
	adminContent
)

var adminSections = []string{"STATISTIQUES", "QUIZ", "VIDÉOS", "GALERIE", "CONTENU"}

// adminField is one editable column of the current section.
type adminField struct {
	label string
	get   func(i int) string
	edit  func(i int, value string) (admin.Command, error)
}

type adminView struct {
	section        adminSection
	cursor         int
	field          int
	statsCollapsed bool
	editing        bool
	uploading      bool
	confirm        bool
	input          textinput.Model
	err            string
}

func newAdminView() adminView {
	in := textinput.New()
	in.CharLimit = 500
	in.Width = 60
	return adminView{input: in}
}

// rows returns the number of items in the current section. The content section lists
// the hero slides followed by the live stream pointer.
func (m *Model) adminRows() int {
	switch m.admin.section {
	case adminQuiz:
		return len(m.state.Quiz)
	case adminVideos:
		return len(m.state.Videos)
	case adminGallery:
		return len(m.state.Photos)
	case adminContent:
		return len(m.state.Hero) + 1
	}
	return 0
}

func (m *Model) onLiveRow() bool {
	return m.admin.section == adminContent && m.admin.cursor == len(m.state.Hero)
}

func (m *Model) adminFields() []adminField {
	st := m.state
	switch m.admin.section {
	case adminQuiz:
		fields := []adminField{{
			label: "question",
			get:   func(i int) string { return st.Quiz[i].Question },
			edit: func(i int, v string) (admin.Command, error) {
				return admin.UpdateQuiz{Index: i, Field: admin.QuizText, Value: v}, nil
			},
		}}
		for o := range models.QuizOptionCount {
			fields = append(fields, adminField{
				label: fmt.Sprintf("option %d", o+1),
				get: func(i int) string {
					if o < len(st.Quiz[i].Options) {
						return st.Quiz[i].Options[o]
					}
					return ""
				},
				edit: func(i int, v string) (admin.Command, error) {
					return admin.SetQuizOption{Index: i, Option: o, Value: v}, nil
				},
			})
		}
		return append(fields,
			adminField{
				label: "réponse",
				get:   func(i int) string { return strconv.Itoa(st.Quiz[i].CorrectAnswer + 1) },
				edit: func(i int, v string) (admin.Command, error) {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil {
						return nil, fmt.Errorf("%w: answer %q", shared.ErrInvalidInput, v)
					}
					return admin.SetQuizAnswer{Index: i, Answer: n - 1}, nil
				},
			},
			adminField{
				label: "explication",
				get:   func(i int) string { return st.Quiz[i].Explanation },
				edit: func(i int, v string) (admin.Command, error) {
					return admin.UpdateQuiz{Index: i, Field: admin.QuizExplanation, Value: v}, nil
				},
			},
		)
	case adminVideos:
		fields := make([]adminField, 0, 5)
		for _, f := range []admin.VideoField{admin.VideoID, admin.VideoTitle, admin.VideoDate, admin.VideoViews, admin.VideoImg} {
			fields = append(fields, adminField{
				label: string(f),
				get:   func(i int) string { return videoValue(st.Videos[i], f) },
				edit: func(i int, v string) (admin.Command, error) {
					return admin.UpdateVideo{Index: i, Field: f, Value: v}, nil
				},
			})
		}
		return fields
	case adminGallery:
		fields := make([]adminField, 0, 3)
		for _, f := range []admin.PhotoField{admin.PhotoURL, admin.PhotoEvent, admin.PhotoDescription} {
			fields = append(fields, adminField{
				label: string(f),
				get: func(i int) string {
					p := st.Photos[i]
					switch f {
					case admin.PhotoURL:
						return p.URL
					case admin.PhotoEvent:
						return p.Event
					}
					return p.Description
				},
				edit: func(i int, v string) (admin.Command, error) {
					return admin.UpdatePhoto{Index: i, Field: f, Value: v}, nil
				},
			})
		}
		return fields
	case adminContent:
		if m.onLiveRow() {
			fields := make([]adminField, 0, 2)
			for _, f := range []admin.VideoField{admin.VideoID, admin.VideoTitle} {
				fields = append(fields, adminField{
					label: "direct " + string(f),
					get:   func(int) string { return videoValue(st.Live, f) },
					edit: func(_ int, v string) (admin.Command, error) {
						return admin.UpdateLive{Field: f, Value: v}, nil
					},
				})
			}
			return fields
		}
		fields := make([]adminField, 0, 3)
		for _, f := range []admin.HeroField{admin.HeroImage, admin.HeroTitle, admin.HeroSubtitle} {
			fields = append(fields, adminField{
				label: string(f),
				get: func(i int) string {
					h := st.Hero[i]
					switch f {
					case admin.HeroImage:
						return h.Image
					case admin.HeroTitle:
						return h.Title
					}
					return h.Subtitle
				},
				edit: func(i int, v string) (admin.Command, error) {
					return admin.UpdateHero{Index: i, Field: f, Value: v}, nil
				},
			})
		}
		return fields
	}
	return nil
}

func videoValue(v models.Video, f admin.VideoField) string {
	switch f {
	case admin.VideoID:
		return v.ID
	case admin.VideoTitle:
		return v.Title
	case admin.VideoDate:
		return v.Date
	case admin.VideoViews:
		return v.Views
	}
	return v.Img
}

func (m *Model) adminAdd() admin.Command {
	switch m.admin.section {
	case adminQuiz:
		return admin.AddQuiz{}
	case adminVideos:
		return admin.AddVideo{}
	case adminGallery:
		return admin.AddPhoto{}
	case adminContent:
		return admin.AddHero{}
	}
	return nil
}

func (m *Model) adminDelete() admin.Command {
	i := m.admin.cursor
	switch m.admin.section {
	case adminQuiz:
		return admin.DeleteQuiz{Index: i}
	case adminVideos:
		return admin.DeleteVideo{Index: i}
	case adminGallery:
		return admin.DeletePhoto{Index: i}
	case adminContent:
		if !m.onLiveRow() {
			return admin.DeleteHero{Index: i}
		}
	}
	return nil
}

// applyAdmin runs cmd and keeps the cursors inside the edited collection.
func (m *Model) applyAdmin(cmd admin.Command) tea.Cmd {
	v := &m.admin
	if cmd == nil {
		return nil
	}
	if err := m.deps.Panel.Apply(m.ctx, cmd); err != nil {
		v.err = adminError(err)
		return nil
	}
	v.err = ""
	v.cursor = max(min(v.cursor, m.adminRows()-1), 0)
	v.field = max(min(v.field, len(m.adminFields())-1), 0)
	return m.showToast(strings.ToUpper(cmd.Describe()))
}

func adminError(err error) string {
	switch {
	case errors.Is(err, shared.ErrOutOfRange):
		return "Élément introuvable."
	case errors.Is(err, shared.ErrMissingArgument):
		return "Veuillez indiquer un chemin d'image."
	case errors.Is(err, shared.ErrInvalidInput):
		return "Valeur invalide : " + err.Error()
	}
	return err.Error()
}

func (m *Model) updateAdmin(msg tea.KeyMsg) tea.Cmd {
	v := &m.admin
	if v.editing || v.uploading {
		return m.updateAdminInput(msg)
	}
	if v.confirm {
		v.confirm = false
		if key.Matches(msg, m.keys.yes) {
			return m.applyAdmin(m.adminDelete())
		}
		return nil
	}

	n := len(adminSections)
	switch {
	case key.Matches(msg, m.keys.left):
		v.section = adminSection((int(v.section) - 1 + n) % n)
		v.cursor, v.field, v.err = 0, 0, ""
	case key.Matches(msg, m.keys.right):
		v.section = adminSection((int(v.section) + 1) % n)
		v.cursor, v.field, v.err = 0, 0, ""
	case v.section == adminStats:
		if msg.String() == "s" {
			v.statsCollapsed = !v.statsCollapsed
		}
	case key.Matches(msg, m.keys.up):
		v.cursor = max(v.cursor-1, 0)
		v.field = min(v.field, max(len(m.adminFields())-1, 0))
	case key.Matches(msg, m.keys.down):
		v.cursor = max(min(v.cursor+1, m.adminRows()-1), 0)
		v.field = min(v.field, max(len(m.adminFields())-1, 0))
	case msg.String() == "f":
		if fs := m.adminFields(); len(fs) > 0 {
			v.field = (v.field + 1) % len(fs)
		}
	case msg.String() == "a":
		cmd := m.applyAdmin(m.adminAdd())
		if v.section != adminContent {
			v.cursor = 0
		} else {
			v.cursor = len(m.state.Hero) - 1
		}
		return cmd
	case msg.String() == "d":
		if m.adminRows() > 0 && m.adminDelete() != nil {
			v.confirm = true
		}
	case msg.String() == "e" || key.Matches(msg, m.keys.enter):
		fs := m.adminFields()
		if m.adminRows() == 0 || len(fs) == 0 {
			return nil
		}
		v.editing = true
		v.input.SetValue(fs[v.field].get(v.cursor))
		v.input.Placeholder = fs[v.field].label
		return v.input.Focus()
	case msg.String() == "i":
		if (v.section == adminGallery || v.section == adminContent) && m.adminRows() > 0 && !m.onLiveRow() {
			v.uploading = true
			v.input.SetValue("")
			v.input.Placeholder = "/chemin/vers/image.jpg"
			return v.input.Focus()
		}
	}
	return nil
}

func (m *Model) updateAdminInput(msg tea.KeyMsg) tea.Cmd {
	v := &m.admin
	switch {
	case key.Matches(msg, m.keys.back):
		v.editing, v.uploading = false, false
		v.input.Blur()
		return nil
	case key.Matches(msg, m.keys.enter):
		value := v.input.Value()
		var cmd admin.Command
		if v.uploading {
			target := admin.EntityPhoto
			if v.section == adminContent {
				target = admin.EntityHero
			}
			cmd = admin.UploadImage{Target: target, Index: v.cursor, Path: strings.TrimSpace(value)}
		} else {
			fs := m.adminFields()
			c, err := fs[v.field].edit(v.cursor, value)
			if err != nil {
				v.err = adminError(err)
				return nil
			}
			cmd = c
		}
		v.editing, v.uploading = false, false
		v.input.Blur()
		return m.applyAdmin(cmd)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (m *Model) adminRowLabel(i int) string {
	st := m.state
	switch m.admin.section {
	case adminQuiz:
		return st.Quiz[i].Question
	case adminVideos:
		return st.Videos[i].Title
	case adminGallery:
		return st.Photos[i].Event
	case adminContent:
		if i == len(st.Hero) {
			return "● DIRECT : " + st.Live.Title
		}
		return shared.PlainText(st.Hero[i].Title)
	}
	return ""
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m *Model) viewAdmin() string {
	s := m.styles()
	v := &m.admin
	var b strings.Builder

	b.WriteString(s.title.Render("Administration") + "\n")
	tabs := make([]string, len(adminSections))
	for i, label := range adminSections {
		if adminSection(i) == v.section {
			tabs[i] = s.active.Render(label)
		} else {
			tabs[i] = s.tab.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	if v.section == adminStats {
		st := m.deps.Panel.Stats()
		if !v.statsCollapsed {
			fmt.Fprintf(&b, "Visites      %s\n", s.gold.Render(strconv.Itoa(st.Visits)))
			fmt.Fprintf(&b, "Membres      %s\n", s.gold.Render(strconv.Itoa(st.Members)))
			fmt.Fprintf(&b, "Dons         %s\n\n", s.gold.Render(donation.FormatFCFA(st.DonationsXOF)))
		}
		fmt.Fprintf(&b, "Diapositives %d   Vidéos %d   Photos %d   Questions %d   Épisodes %d\n",
			st.HeroSlides, st.Videos, st.Photos, st.Questions, st.Episodes)
		fmt.Fprintf(&b, "Direct       %s\n", s.text.Render(st.Live))
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("←/→", "section"), binding("s", "masquer stats")}))
		return b.String()
	}

	width := max(m.bodyWidth()-6, 20)
	rows := m.adminRows()
	if rows == 0 {
		b.WriteString(s.muted.Render("Aucun élément.") + "\n")
	}
	for i := range rows {
		label := truncateLabel(m.adminRowLabel(i), width)
		if i == v.cursor {
			b.WriteString(s.gold.Render("▸ "+label) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}

	if fs := m.adminFields(); rows > 0 && len(fs) > 0 {
		b.WriteString("\n")
		for i, f := range fs {
			val := truncateLabel(shared.PlainText(f.get(v.cursor)), width-16)
			line := fmt.Sprintf("%-14s %s", f.label, val)
			if i == v.field {
				line = s.active.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	switch {
	case v.editing || v.uploading:
		b.WriteString("\n" + v.input.View() + "\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{binding("entrée", "enregistrer"), m.keys.back}))
	case v.confirm:
		b.WriteString("\n" + s.warn.Render("Supprimer cet élément ? (o/n)"))
	default:
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
			binding("↑/↓", "élément"), binding("f", "champ"), binding("e", "éditer"),
			binding("a", "ajouter"), binding("d", "supprimer"), binding("i", "image"),
		}))
	}
	if v.err != "" {
		b.WriteString("\n" + s.err.Render(v.err))
	}
	return b.String()
}
