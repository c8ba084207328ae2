package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
	tu "github.com/desertthunder/tabernacle/internal/testing"
)

// instantGateway approves every gift immediately.
type instantGateway struct {
	calls int
}

func (g *instantGateway) Process(ctx context.Context, amount int, method models.PaymentMethod) (donation.Receipt, error) {
	g.calls++
	r := donation.Receipt{Method: method, Amount: amount}
	if method == models.PaymentWave {
		r.TransactionID = "TAB-TEST00001"
		r.Phone = donation.WavePhone
	}
	return r, nil
}

type fixture struct {
	runner  *Runner
	output  *bytes.Buffer
	backend *store.MemoryBackend
	ai      *tu.MockAssistant
	gateway *instantGateway
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()
	config := shared.DefaultConfig()
	config.Auth.Delay = shared.Duration{Duration: time.Millisecond}

	f := &fixture{
		output:  &bytes.Buffer{},
		backend: store.NewMemoryBackend(),
		ai:      &tu.MockAssistant{},
		gateway: &instantGateway{},
	}
	f.runner = NewRunner(RunnerOpts{
		Config:    config,
		Assistant: f.ai,
		Backend:   f.backend,
		Gateway:   f.gateway,
		Logger:    shared.NewLogger(&bytes.Buffer{}),
		Output:    f.output,
		Input:     strings.NewReader(input),
	})
	return f
}

// run executes args against the registered command tree.
func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "tabernacle",
		Commands: f.runner.register(),
		Writer:   &bytes.Buffer{},
	}
	return app.Run(context.Background(), append([]string{"tabernacle"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			ai := &tu.MockAssistant{}
			backend := store.NewMemoryBackend()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Assistant:  ai,
				Backend:    backend,
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.ai() != ai {
				t.Error("expected assistant to be set")
			}
			if runner.backend != backend {
				t.Error("expected backend to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if !runner.terminal {
				t.Error("expected stdin input to be marked as terminal")
			}
		})

		t.Run("builds the assistant from config on first use", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Assistant.APIKey = ""
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(&bytes.Buffer{})})

			if runner.assistant != nil {
				t.Fatal("expected assistant to be built lazily")
			}
			if runner.ai() == nil {
				t.Fatal("expected assistant to be built")
			}
			if runner.configured {
				t.Error("expected assistant without api key to be unconfigured")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		seen := make(map[string]bool)
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if seen[cmd.Name] {
				t.Errorf("command %q registered twice", cmd.Name)
			}
			seen[cmd.Name] = true
		}

		for _, name := range []string{
			"setup", "tui", "login", "logout", "collections", "ask", "quiz", "bible", "meditate", "caption", "donate", "export",
		} {
			if !seen[name] {
				t.Errorf("expected %q to be registered", name)
			}
		}
	})

	t.Run("prompt", func(t *testing.T) {
		t.Run("reads one trimmed line", func(t *testing.T) {
			f := newFixture(t, "  hello  \nworld\n")
			got, err := f.runner.prompt("> ")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != "hello" {
				t.Errorf("expected 'hello', got %q", got)
			}
		})

		t.Run("accepts a last line without newline", func(t *testing.T) {
			f := newFixture(t, "secret")
			got, err := f.runner.readPassword("Mot de passe : ")
			if err != nil || got != "secret" {
				t.Errorf("expected 'secret', got %q (%v)", got, err)
			}
		})

		t.Run("empty input is a missing argument", func(t *testing.T) {
			f := newFixture(t, "")
			if _, err := f.runner.prompt("> "); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})
}

func TestCollectionsCommands(t *testing.T) {
	t.Run("get prints the default when nothing is stored", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "collections", "get", store.KeyTheme); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(f.output.String()) != `"dark"` {
			t.Errorf("expected default theme, got %q", f.output.String())
		}
	})

	t.Run("set writes through and get reads it back", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "collections", "set", store.KeyTheme, `"light"`); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		raw, err := f.backend.Get(context.Background(), store.KeyTheme)
		if err != nil || raw != `"light"` {
			t.Fatalf("expected stored light theme, got %q (%v)", raw, err)
		}

		f.output.Reset()
		if err := f.run(t, "collections", "get", store.KeyTheme); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.output.String(), `"light"`) {
			t.Errorf("expected light theme, got %q", f.output.String())
		}
	})

	t.Run("set reads a file", func(t *testing.T) {
		f := newFixture(t, "")
		path := filepath.Join(t.TempDir(), "quiz.json")
		doc := `[{"question":"Q?","options":["a","b","c","d"],"correctAnswer":3,"explanation":""}]`
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := f.run(t, "collections", "set", store.KeyQuiz, "--file", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := f.backend.Get(context.Background(), store.KeyQuiz); err != nil {
			t.Errorf("expected quiz to be stored, got %v", err)
		}
	})

	t.Run("set rejects invalid documents without storing", func(t *testing.T) {
		f := newFixture(t, "")
		err := f.run(t, "collections", "set", store.KeyQuiz, `[{"question":"Q?","options":["a"],"correctAnswer":0}]`)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := f.backend.Get(context.Background(), store.KeyQuiz); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected nothing stored, got %v", err)
		}
	})

	t.Run("set without a value", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "collections", "set", store.KeyTheme); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "collections", "get", "nope"); !errors.Is(err, shared.ErrUnknownCollection) {
			t.Errorf("expected ErrUnknownCollection, got %v", err)
		}
	})

	t.Run("reset deletes the stored document", func(t *testing.T) {
		f := newFixture(t, "")
		ctx := context.Background()
		if err := f.backend.Put(ctx, store.KeyTheme, `"light"`); err != nil {
			t.Fatal(err)
		}

		if err := f.run(t, "collections", "reset", store.KeyTheme); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := f.backend.Get(ctx, store.KeyTheme); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected theme to be deleted, got %v", err)
		}
	})

	t.Run("list marks stored collections", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.backend.Put(context.Background(), store.KeyTheme, `"light"`); err != nil {
			t.Fatal(err)
		}

		if err := f.run(t, "collections", "list", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := f.output.String()
		if !strings.Contains(out, `{"key":"tabernacle_theme","stored":true,"bytes":7}`) {
			t.Errorf("expected stored theme entry, got %s", out)
		}
		if !strings.Contains(out, `{"key":"tabernacle_podcasts","stored":false,"bytes":0}`) {
			t.Errorf("expected default podcasts entry, got %s", out)
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login persists the profile and auth flag", func(t *testing.T) {
		f := newFixture(t, "secret\n")
		if err := f.run(t, "login", "--email", "marie@example.com", "--name", "Marie", "--signup"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		state := store.LoadState(context.Background(), f.backend, nil)
		if !state.Authenticated {
			t.Error("expected auth flag to be stored")
		}
		if state.Profile == nil || state.Profile.Name != "Marie" {
			t.Errorf("expected profile for Marie, got %+v", state.Profile)
		}
		if !strings.Contains(f.output.String(), "Bienvenue, Marie.") {
			t.Errorf("expected welcome message, got %q", f.output.String())
		}
	})

	t.Run("login prompts for the email", func(t *testing.T) {
		f := newFixture(t, "jean@example.com\nsecret\n")
		if err := f.run(t, "login"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		state := store.LoadState(context.Background(), f.backend, nil)
		if state.Profile == nil || state.Profile.Email != "jean@example.com" {
			t.Errorf("expected profile for prompted email, got %+v", state.Profile)
		}
	})

	t.Run("login without a password fails", func(t *testing.T) {
		f := newFixture(t, "\n")
		err := f.run(t, "login", "--email", "jean@example.com")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
		if _, err := f.backend.Get(context.Background(), store.KeyAuth); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected auth flag untouched, got %v", err)
		}
	})

	t.Run("logout clears the flag and keeps the profile", func(t *testing.T) {
		f := newFixture(t, "secret\n")
		if err := f.run(t, "login", "--email", "marie@example.com"); err != nil {
			t.Fatal(err)
		}
		if err := f.run(t, "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		state := store.LoadState(context.Background(), f.backend, nil)
		if state.Authenticated {
			t.Error("expected auth flag to be cleared")
		}
		if state.Profile == nil {
			t.Error("expected profile to be kept")
		}
	})
}

func TestAssistantCommands(t *testing.T) {
	t.Run("ask joins the arguments", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Reply = "Que Dieu vous bénisse."
		if err := f.run(t, "ask", "Qui", "est", "Jésus ?"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.output.String(), "Que Dieu vous bénisse.") {
			t.Errorf("expected reply, got %q", f.output.String())
		}
		if f.ai.Calls("chat") != 1 {
			t.Errorf("expected one chat call, got %d", f.ai.Calls("chat"))
		}
	})

	t.Run("ask without a message", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "ask"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("bible read prints text", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Verses = []models.Verse{{Number: 1, Text: "Au commencement était la Parole."}}
		if err := f.run(t, "bible", "read", "Jean", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.output.String(), "1. Au commencement était la Parole.") {
			t.Errorf("expected verse, got %q", f.output.String())
		}
	})

	t.Run("bible read validates arguments", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want error
		}{
			{"missing book", []string{"bible", "read"}, shared.ErrMissingArgument},
			{"unknown book", []string{"bible", "read", "Hezekiah", "1"}, shared.ErrInvalidArgument},
			{"bad chapter", []string{"bible", "read", "Jean", "zero"}, shared.ErrInvalidArgument},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, "")
				if err := f.run(t, tt.args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				if f.ai.Calls("chapter") != 0 {
					t.Error("expected no request for invalid arguments")
				}
			})
		}
	})

	t.Run("bible narrate writes a wav file", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Verses = []models.Verse{{Number: 1, Text: "Au commencement."}}
		f.ai.PCM = make([]byte, 4800)
		out := filepath.Join(t.TempDir(), "jean1.wav")

		if err := f.run(t, "bible", "narrate", "Jean", "1", "--output", out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		data := tu.MustReadFile(t, out)
		if !strings.HasPrefix(data, "RIFF") || len(data) != 44+4800 {
			t.Errorf("expected a 44-byte header plus PCM, got %d bytes", len(data))
		}
	})

	t.Run("meditate defaults to the daily verse", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Meditate = "Marchez dans la lumière."
		if err := f.run(t, "meditate"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := f.output.String()
		if !strings.Contains(out, models.DailyVerseLabel) || !strings.Contains(out, "Marchez dans la lumière.") {
			t.Errorf("expected daily verse and meditation, got %q", out)
		}
	})

	t.Run("caption a stored photo", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Caption = "La lumière du matin."
		if err := f.run(t, "caption", "--photo", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.output.String(), "La lumière du matin.") {
			t.Errorf("expected caption, got %q", f.output.String())
		}
	})

	t.Run("caption an unknown photo", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "caption", "--photo", "missing"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestQuizCommand(t *testing.T) {
	t.Run("church mode scores the curated pool", func(t *testing.T) {
		f := newFixture(t, "9\n2\n")
		if err := f.run(t, "quiz", "--mode", "church"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := f.output.String()
		if !strings.Contains(out, "Réponse invalide.") {
			t.Error("expected out-of-range answer to be rejected")
		}
		if !strings.Contains(out, "Score : 10 / 10 (100%)") {
			t.Errorf("expected perfect score, got %q", out)
		}
	})

	t.Run("ai mode stops on q", func(t *testing.T) {
		f := newFixture(t, "1\nq\n")
		f.ai.Question = models.QuizQuestion{
			Question:      "Qui a construit l'arche ?",
			Options:       []string{"Noé", "Moïse", "David", "Paul"},
			CorrectAnswer: 0,
		}
		if err := f.run(t, "quiz"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.ai.Calls("quiz") != 2 {
			t.Errorf("expected two generated questions, got %d", f.ai.Calls("quiz"))
		}
		if !strings.Contains(f.output.String(), "Score : 10 / 100") {
			t.Errorf("expected one correct answer, got %q", f.output.String())
		}
	})

	t.Run("rejects an unknown difficulty", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "quiz", "--difficulty", "Expert"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Err = shared.ErrServiceUnavailable
		if err := f.run(t, "quiz"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestDonateCommand(t *testing.T) {
	t.Run("wave prints transfer instructions", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "donate", "--amount", "10 000"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := f.output.String()
		for _, want := range []string{"10 000 FCFA", "TAB-TEST00001", donation.WavePhone} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %q", want, out)
			}
		}
	})

	t.Run("uses the configured default amount", func(t *testing.T) {
		f := newFixture(t, "")
		f.runner.config.Donation.DefaultAmount = 2000
		if err := f.run(t, "donate", "--method", "orange"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.output.String(), "2 000 FCFA") {
			t.Errorf("expected default amount, got %q", f.output.String())
		}
	})

	t.Run("invalid amounts never reach the gateway", func(t *testing.T) {
		for _, amount := range []string{"abc", "-5", "0"} {
			f := newFixture(t, "")
			if err := f.run(t, "donate", "--amount="+amount); !errors.Is(err, shared.ErrInvalidAmount) {
				t.Errorf("%q: expected ErrInvalidAmount, got %v", amount, err)
			}
			if f.gateway.calls != 0 {
				t.Errorf("%q: expected no gateway call", amount)
			}
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "donate", "--method", "bitcoin"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestExportCommands(t *testing.T) {
	t.Run("quiz as csv", func(t *testing.T) {
		f := newFixture(t, "")
		out := filepath.Join(t.TempDir(), "quiz.csv")
		if err := f.run(t, "export", "quiz", "--format", "csv", "--output", out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, out), "Tabernacle de la Foi") {
			t.Error("expected default question in export")
		}
	})

	t.Run("podcasts as json", func(t *testing.T) {
		f := newFixture(t, "")
		out := filepath.Join(t.TempDir(), "podcasts.json")
		if err := f.run(t, "export", "podcasts", "-o", out); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, out)
	})

	t.Run("bible range writes chapters and a manifest", func(t *testing.T) {
		f := newFixture(t, "")
		f.ai.Verses = []models.Verse{{Number: 1, Text: "Au commencement."}}
		dir := t.TempDir()

		err := f.run(t, "export", "bible", "Jean", "--from", "1", "--to", "3", "--rate", "100", "--output", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, name := range []string{"jean_001.md", "jean_002.md", "jean_003.md", "export_manifest.json"} {
			tu.AssertFileExists(t, filepath.Join(dir, name))
		}
		if !strings.Contains(f.output.String(), "Chapitres : 3/3") {
			t.Errorf("expected summary, got %q", f.output.String())
		}
	})

	t.Run("bible range rejects a reversed range", func(t *testing.T) {
		f := newFixture(t, "")
		if err := f.run(t, "export", "bible", "Jean", "--from", "3", "--to", "1"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSetupDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "tabernacle.db")

	doc := "[database]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
	if err := os.WriteFile(configPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	f := newFixture(t, "")
	if err := f.run(t, "setup", "--config", configPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	tu.AssertFileExists(t, dbPath)
	if !strings.Contains(f.output.String(), "Migrations appliquées : [0 1]") {
		t.Errorf("expected applied versions, got %q", f.output.String())
	}
}
