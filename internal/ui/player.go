package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/models"
)

// playerBar tracks the podcast episode started from the sermon library.
type playerBar struct {
	episode *models.PodcastEpisode
	gen     uint64
}

// waitForPlayback reports the end of pb as a message.
func waitForPlayback(pb audio.Playback) tea.Cmd {
	return func() tea.Msg {
		err := <-pb.Done
		return playbackDoneMsg(pb.Gen, err)
	}
}

// playEpisode replaces whatever is playing with the episode's audio.
func (m *Model) playEpisode(ep models.PodcastEpisode) tea.Cmd {
	pb := m.deps.Player.Play(audio.Clip{ID: ep.ID, Title: ep.Title, URL: ep.AudioURL})
	m.player = playerBar{episode: &ep, gen: pb.Gen}
	m.bible.narrating = false
	return waitForPlayback(pb)
}

func (m *Model) stopPlayback() {
	m.deps.Player.Stop()
	m.player = playerBar{}
	m.bible.narrating = false
}

func (m *Model) handlePlaybackDone(msg Msg) {
	if msg.gen == m.bible.playGen {
		m.bible.narrating = false
	}
	if msg.gen == m.player.gen {
		m.player = playerBar{}
	}
	if err, _ := msg.data.(error); err != nil {
		m.logger.Warn("playback failed", "error", err)
	}
}

func (m *Model) viewPlayer() string {
	clip, ok := m.deps.Player.Current()
	if !ok {
		return ""
	}
	s := m.styles()
	title := clip.Title
	if m.player.episode != nil {
		title = m.player.episode.Title + " • " + m.player.episode.Author
	}
	return s.panel.Render(s.gold.Render("♪ ") + s.text.Render(title) + "   " + s.help.Render("ctrl+x : arrêter"))
}
