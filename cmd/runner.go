package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/repositories"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database is opened on first use, so commands that never touch collections run without one.
type Runner struct {
	config      *shared.Config
	configPath  string
	assistant   services.Assistant
	configured  bool
	backend     store.Backend
	credentials auth.CredentialStore
	gateway     donation.Gateway
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
	input       *bufio.Reader
	terminal    bool // input is the process stdin
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Assistant   services.Assistant // defaults to the fail-soft Gemini client
	Backend     store.Backend      // defaults to the SQLite collections table
	Credentials auth.CredentialStore
	Gateway     donation.Gateway // defaults to the simulated gateway from the [donation] section
	Logger      *log.Logger
	Output      io.Writer
	Input       io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	terminal := opts.Input == nil
	if terminal {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		assistant:   opts.Assistant,
		configured:  opts.Assistant != nil,
		backend:     opts.Backend,
		credentials: opts.Credentials,
		gateway:     opts.Gateway,
		logger:      opts.Logger,
		output:      opts.Output,
		input:       bufio.NewReader(opts.Input),
		terminal:    terminal,
	}
	return r
}

// ai returns the assistant, building the fail-soft Gemini client with the current logger on first use.
func (r *Runner) ai() services.Assistant {
	if r.assistant == nil {
		gemini := services.NewGeminiClient(r.config.Assistant, r.logger)
		r.configured = gemini.Configured()
		r.assistant = services.NewSoftAssistant(gemini, r.logger)
	}
	return r.assistant
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// donations returns the donation service over the configured gateway.
func (r *Runner) donations() *donation.Service {
	if r.gateway == nil {
		r.gateway = donation.NewSimulatedGateway(r.config.Donation, r.logger)
	}
	return donation.NewService(r.gateway, r.logger)
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// openState loads every collection, opening and migrating the database on first use.
func (r *Runner) openState(ctx context.Context) (*store.State, error) {
	if r.backend == nil {
		db, err := shared.OpenStore(r.config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		r.db = db
		r.backend = repositories.NewCollectionRepository(db)
		if r.credentials == nil {
			r.credentials = repositories.NewCredentialRepository(db)
		}
	}
	return store.LoadState(ctx, r.backend, r.logger), nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, tuiCommand, loginCommand, logoutCommand, collectionsCommand,
		askCommand, quizCommand, bibleCommand, meditateCommand, captionCommand, donateCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// prompt writes label and reads one trimmed line of input.
func (r *Runner) prompt(label string) (string, error) {
	r.writePlain("%s", label)
	line, err := r.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %v", shared.ErrMissingArgument, err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword hides typed characters on a terminal and reads a plain line otherwise.
func (r *Runner) readPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !r.terminal || !term.IsTerminal(fd) {
		return r.prompt(label)
	}
	r.writePlain("%s", label)
	b, err := term.ReadPassword(fd)
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
