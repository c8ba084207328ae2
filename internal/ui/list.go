package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

var (
	_ list.Item = bookItem{}
	_ list.Item = episodeItem{}
	_ list.Item = photoItem{}
)

// bookItem wraps a bible book name to implement [list.Item].
type bookItem struct {
	name string
}

func (i bookItem) FilterValue() string { return i.name }
func (i bookItem) Title() string       { return i.name }
func (i bookItem) Description() string { return "" }

// episodeItem wraps [models.PodcastEpisode] to implement [list.Item].
type episodeItem struct {
	episode models.PodcastEpisode
}

func (i episodeItem) FilterValue() string { return i.episode.Title }
func (i episodeItem) Title() string {
	return fmt.Sprintf("%s %s", episodeIcon(i.episode.Type), i.episode.Title)
}
func (i episodeItem) Description() string {
	desc := i.episode.Author
	if i.episode.Duration != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.episode.Duration)
	}
	if i.episode.Date != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.episode.Date)
	}
	return desc
}

func episodeIcon(t models.EpisodeType) string {
	switch t {
	case models.EpisodeVideo:
		return "▶"
	case models.EpisodeText:
		return "¶"
	}
	return "♪"
}

// photoItem wraps [models.PhotoItem] to implement [list.Item].
type photoItem struct {
	photo models.PhotoItem
}

func (i photoItem) FilterValue() string { return i.photo.Event }
func (i photoItem) Title() string       { return i.photo.Event }
func (i photoItem) Description() string { return shared.PlainText(i.photo.Description) }

func bookItems(names []string) []list.Item {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = bookItem{name: n}
	}
	return items
}

func episodeItems(eps []models.PodcastEpisode) []list.Item {
	items := make([]list.Item, len(eps))
	for i, e := range eps {
		items[i] = episodeItem{episode: e}
	}
	return items
}

func photoItems(photos []models.PhotoItem) []list.Item {
	items := make([]list.Item, len(photos))
	for i, p := range photos {
		items[i] = photoItem{photo: p}
	}
	return items
}

// newList builds a list with the app's defaults: no built-in quit or help keys.
func newList(title string, items []list.Item, w, h int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
