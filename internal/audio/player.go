package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Clip is one playable item: either an in-memory WAV or a remote URL.
type Clip struct {
	ID    string
	Title string
	WAV   []byte
	URL   string
}

// Sink renders a clip and returns when playback ends or ctx is cancelled.
type Sink interface {
	Play(ctx context.Context, c Clip) error
}

// Player plays at most one clip at a time. Starting a clip stops the previous one.
type Player struct {
	sink   Sink
	logger *log.Logger

	mu      sync.Mutex
	gen     uint64
	current *Clip
	cancel  context.CancelFunc
}

// NewPlayer creates a Player rendering to sink.
func NewPlayer(sink Sink, logger *log.Logger) *Player {
	return &Player{sink: sink, logger: logger}
}

// Playback is a started clip. Done yields once when it finishes, fails or is replaced.
type Playback struct {
	Gen  uint64
	Clip Clip
	Done <-chan error
}

// Play stops any current clip and starts c.
func (p *Player) Play(c Clip) Playback {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	clip := c
	p.current = &clip
	p.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := p.sink.Play(ctx, c)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil && p.logger != nil {
			p.logger.Debug("playback stopped", "clip", c.ID, "error", err)
		}
		p.finish(gen)
		done <- err
	}()

	return Playback{Gen: gen, Clip: c, Done: done}
}

func (p *Player) finish(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen {
		p.current = nil
		p.cancel = nil
	}
}

// Stop ends the current clip, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.current = nil
	p.gen++
}

// Current returns the clip being played.
func (p *Player) Current() (Clip, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Clip{}, false
	}
	return *p.current, true
}

// IsCurrent reports whether gen is still the active playback.
func (p *Player) IsCurrent(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen == gen && p.current != nil
}

// SilentSink waits for the clip's duration without producing sound.
type SilentSink struct {
	Format Format
}

func (s SilentSink) Play(ctx context.Context, c Clip) error {
	d := time.Duration(0)
	if len(c.WAV) > 44 {
		f := s.Format
		if f.SampleRate == 0 {
			f = Speech
		}
		d = f.Duration(len(c.WAV) - 44)
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CommandSink hands clips to an external player program.
type CommandSink struct {
	Program string   // e.g. ffplay, afplay, aplay, mpv
	Args    []string // inserted before the file or URL
	TempDir string
}

// DetectSink picks an installed player, falling back to [SilentSink].
func DetectSink() Sink {
	candidates := []CommandSink{
		{Program: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{Program: "mpv", Args: []string{"--no-video", "--really-quiet"}},
	}
	switch runtime.GOOS {
	case "darwin":
		candidates = append(candidates, CommandSink{Program: "afplay"})
	case "linux":
		candidates = append(candidates, CommandSink{Program: "aplay", Args: []string{"-q"}})
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c.Program); err == nil {
			return c
		}
	}
	return SilentSink{Format: Speech}
}

func (s CommandSink) Play(ctx context.Context, c Clip) error {
	target := c.URL
	if len(c.WAV) > 0 {
		f, err := os.CreateTemp(s.TempDir, "tabernacle-*.wav")
		if err != nil {
			return fmt.Errorf("failed to create audio file: %w", err)
		}
		defer os.Remove(f.Name())

		if _, err := f.Write(c.WAV); err != nil {
			f.Close()
			return fmt.Errorf("failed to write audio file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close audio file: %w", err)
		}
		target = filepath.Clean(f.Name())
	}
	if target == "" {
		return fmt.Errorf("clip %s has no audio", c.ID)
	}

	args := append(append([]string{}, s.Args...), target)
	cmd := exec.CommandContext(ctx, s.Program, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", s.Program, err)
	}
	return nil
}
