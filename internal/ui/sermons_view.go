package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/admin"
	"github.com/desertthunder/tabernacle/internal/models"
)

const (
	uploadCover    = "https://images.unsplash.com/photo-1478737270239-2f02b77fc618?auto=format&fit=crop&q=80&w=400"
	uploadAudio    = "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-8.mp3"
	uploadDuration = "42:00"
	// sermonVideoID is the stream shown when a video episode is opened.
	sermonVideoID = "dQw4w9WgXcQ"
)

var episodeFilters = []string{"All", string(models.EpisodeAudio), string(models.EpisodeVideo), string(models.EpisodeText)}

// sermonsView is the podcast library.
type sermonsView struct {
	list      list.Model
	filter    int
	uploading bool
	inputs    [3]textinput.Model // title, author, description
	cursor    int
	confirm   string // id of the episode pending deletion
	reading   *models.PodcastEpisode
	err       string
}

func newSermonsView(eps []models.PodcastEpisode) sermonsView {
	v := sermonsView{list: newList("Bibliothèque Sacrée", episodeItems(eps), 60, 20)}
	for i, ph := range []string{"Titre de l'épisode", "Auteur", "Description"} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 200
		in.Width = 50
		v.inputs[i] = in
	}
	return v
}

func (v *sermonsView) resize(w, h int) {
	v.list.SetSize(w, h-2)
}

func (v *sermonsView) filtered(eps []models.PodcastEpisode) []models.PodcastEpisode {
	if v.filter == 0 {
		return eps
	}
	want := models.EpisodeType(episodeFilters[v.filter])
	var out []models.PodcastEpisode
	for _, e := range eps {
		if e.Type == want {
			out = append(out, e)
		}
	}
	return out
}

func (v *sermonsView) reload(eps []models.PodcastEpisode) {
	v.list.SetItems(episodeItems(v.filtered(eps)))
}

func (v *sermonsView) selected() (models.PodcastEpisode, bool) {
	it, ok := v.list.SelectedItem().(episodeItem)
	return it.episode, ok
}

func (v *sermonsView) openUpload() tea.Cmd {
	v.uploading = true
	v.cursor = 0
	v.err = ""
	for i := range v.inputs {
		v.inputs[i].SetValue("")
		v.inputs[i].Blur()
	}
	return v.inputs[0].Focus()
}

func (v *sermonsView) closeUpload() {
	v.uploading = false
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
}

func (m *Model) updateSermons(msg tea.KeyMsg) tea.Cmd {
	v := &m.sermons
	if v.uploading {
		return m.updateUpload(msg)
	}
	if v.reading != nil {
		if key.Matches(msg, m.keys.back) || key.Matches(msg, m.keys.enter) {
			v.reading = nil
		}
		return nil
	}
	if v.confirm != "" {
		switch {
		case key.Matches(msg, m.keys.yes):
			id := v.confirm
			v.confirm = ""
			if err := m.deps.Panel.Apply(m.ctx, admin.DeletePodcast{ID: id}); err != nil {
				v.err = err.Error()
			}
			v.reload(m.state.Podcasts)
		case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
			v.confirm = ""
		}
		return nil
	}

	switch {
	case msg.String() == "f":
		v.filter = (v.filter + 1) % len(episodeFilters)
		v.reload(m.state.Podcasts)
		return nil
	case msg.String() == "u":
		return v.openUpload()
	case msg.String() == "d":
		if ep, ok := v.selected(); ok {
			v.confirm = ep.ID
		}
		return nil
	case key.Matches(msg, m.keys.enter):
		ep, ok := v.selected()
		if !ok {
			return nil
		}
		switch ep.Type {
		case models.EpisodeVideo:
			return m.jumpToMedia(sermonVideoID, ep.Title, false)
		case models.EpisodeAudio:
			return m.playEpisode(ep)
		default:
			v.reading = &ep
		}
		return nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (m *Model) updateUpload(msg tea.KeyMsg) tea.Cmd {
	v := &m.sermons
	switch {
	case key.Matches(msg, m.keys.back):
		v.closeUpload()
		return nil
	case msg.String() == "down" || msg.String() == "tab":
		v.inputs[v.cursor].Blur()
		v.cursor = (v.cursor + 1) % len(v.inputs)
		return v.inputs[v.cursor].Focus()
	case msg.String() == "up" || msg.String() == "shift+tab":
		v.inputs[v.cursor].Blur()
		v.cursor = (v.cursor - 1 + len(v.inputs)) % len(v.inputs)
		return v.inputs[v.cursor].Focus()
	case key.Matches(msg, m.keys.enter):
		if v.cursor < len(v.inputs)-1 {
			v.inputs[v.cursor].Blur()
			v.cursor++
			return v.inputs[v.cursor].Focus()
		}
		return m.publishEpisode()
	}
	var cmd tea.Cmd
	v.inputs[v.cursor], cmd = v.inputs[v.cursor].Update(msg)
	return cmd
}

func (m *Model) publishEpisode() tea.Cmd {
	v := &m.sermons
	ep := models.PodcastEpisode{
		Title:       strings.TrimSpace(v.inputs[0].Value()),
		Author:      strings.TrimSpace(v.inputs[1].Value()),
		Description: strings.TrimSpace(v.inputs[2].Value()),
		Img:         uploadCover,
		Date:        m.now().Format("02/01/2006"),
		Type:        models.EpisodeAudio,
		AudioURL:    uploadAudio,
		Duration:    uploadDuration,
	}
	if err := m.deps.Panel.Apply(m.ctx, admin.AddPodcast{Episode: ep}); err != nil {
		v.err = "Le titre de l'épisode est requis."
		return nil
	}
	v.closeUpload()
	v.filter = 0
	v.reload(m.state.Podcasts)
	v.list.Select(0)
	return m.showToast("ÉPISODE PUBLIÉ")
}

func (m *Model) viewSermons() string {
	s := m.styles()
	v := &m.sermons

	if v.uploading {
		var b strings.Builder
		b.WriteString(s.title.Render("Publier un épisode") + "\n")
		for i, in := range v.inputs {
			b.WriteString(in.View() + "\n")
			if i < len(v.inputs)-1 {
				b.WriteString("\n")
			}
		}
		if v.err != "" {
			b.WriteString("\n" + s.err.Render(v.err) + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("tab", "champ"), binding("entrée", "publier"), m.keys.back}))
		return b.String()
	}

	if ep := v.reading; ep != nil {
		return s.title.Render(ep.Title) + "\n" + s.muted.Render(ep.Author+" • "+ep.Date) + "\n\n" +
			s.text.Render(ep.Description) + "\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.back})
	}

	header := s.muted.Render("filtre : " + episodeFilters[v.filter] + " (f)")
	footer := m.help.ShortHelpView([]key.Binding{
		binding("entrée", "écouter / regarder"), binding("f", "filtrer"), binding("u", "publier"), binding("d", "supprimer"),
	})
	if v.confirm != "" {
		footer = s.warn.Render("Supprimer cet épisode ? (o/n)")
	}
	if v.err != "" {
		footer += "\n" + s.err.Render(v.err)
	}
	return header + "\n" + v.list.View() + "\n" + footer
}
