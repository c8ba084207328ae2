package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/admin"
	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/notify"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/ui"
)

// notesBuffer bounds notifications waiting for the UI. Extra ones are still logged.
const notesBuffer = 8

// buildDeps opens the store and wires every collaborator the TUI drives.
func (r *Runner) buildDeps(ctx context.Context) (ui.Deps, error) {
	state, err := r.openState(ctx)
	if err != nil {
		return ui.Deps{}, err
	}

	verifier, err := auth.NewVerifier(r.config.Auth, r.credentials)
	if err != nil {
		return ui.Deps{}, err
	}

	notes := make(chan notify.Notification, notesBuffer)
	notifier := notify.NewLogNotifier(shared.WithLogger(r.logger, "component", "notify"))
	notifier.Sink = func(n notify.Notification) {
		select {
		case notes <- n:
		default:
		}
	}

	assistant := r.ai()

	return ui.Deps{
		State:      state,
		Gate:       auth.NewGate(state, verifier),
		Assistant:  assistant,
		Notifier:   notifier,
		Notes:      notes,
		Player:     audio.NewPlayer(audio.DetectSink(), shared.WithLogger(r.logger, "component", "audio")),
		Donations:  r.donations(),
		Panel:      admin.NewPanel(state, r.logger),
		Configured: r.configured,
		DBPath:     r.config.Database.Path,
		Logger:     r.logger,
	}, nil
}

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	deps, err := r.buildDeps(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, deps)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
