// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/formatter"
	"github.com/desertthunder/tabernacle/internal/quiz"
	"github.com/desertthunder/tabernacle/internal/services"
)

// setupCommand handles config and database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and database, then run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the latest migration instead",
			},
		},
		Action: r.SetupDatabase,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI (default)",
		Action:  r.TUI,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in, or create an account with --signup",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Member email (prompted when empty)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Full name, required with --signup",
			},
			&cli.BoolFlag{
				Name:  "signup",
				Usage: "Create the account instead of signing in",
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out; the TUI shows the login form on next start",
		Action: r.Logout,
	}
}

// collectionsCommand handles direct access to the persisted collections
func collectionsCommand(r *Runner) *cli.Command {
	keyArg := func() []cli.Argument {
		return []cli.Argument{&cli.StringArg{Name: "key"}}
	}
	return &cli.Command{
		Name:    "collections",
		Aliases: []string{"col"},
		Usage:   "Inspect and edit persisted collections",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List collections and whether they are stored",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CollectionsList,
			},
			{
				Name:      "get",
				Usage:     "Print a collection as JSON",
				Arguments: keyArg(),
				Action:    r.CollectionsGet,
			},
			{
				Name:  "set",
				Usage: "Replace a collection with a JSON document",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
					&cli.StringArg{Name: "value"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read the document from a file",
					},
				},
				Action: r.CollectionsSet,
			},
			{
				Name:      "reset",
				Usage:     "Restore a collection to its default",
				Arguments: keyArg(),
				Action:    r.CollectionsReset,
			},
		},
	}
}

func askCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask the Tabernacle assistant a question",
		ArgsUsage: "<message>",
		Action:    r.Ask,
	}
}

// bibleCommand handles chapter reading through the assistant
func bibleCommand(r *Runner) *cli.Command {
	args := func() []cli.Argument {
		return []cli.Argument{
			&cli.StringArg{Name: "book"},
			&cli.StringArg{Name: "chapter"},
		}
	}
	return &cli.Command{
		Name:  "bible",
		Usage: "Read, explain or narrate a chapter (Louis Segond)",
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "Print the verses of a chapter",
				Arguments: args(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: txt, markdown, csv or json",
						Value:   string(formatter.FormatText),
					},
				},
				Action: r.BibleRead,
			},
			{
				Name:      "explain",
				Usage:     "Theological and practical commentary on a chapter",
				Arguments: args(),
				Action:    r.BibleExplain,
			},
			{
				Name:      "narrate",
				Usage:     "Read a chapter aloud",
				Arguments: args(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write a WAV file instead of playing",
					},
				},
				Action: r.BibleNarrate,
			},
		},
	}
}

func meditateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "meditate",
		Usage:     "Short meditation on a verse (default: the daily verse)",
		ArgsUsage: "[verse]",
		Action:    r.Meditate,
	}
}

func captionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "caption",
		Usage:     "Write a caption for a gallery photo",
		ArgsUsage: "[description]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "photo",
				Usage: "ID of a stored photo to caption",
			},
		},
		Action: r.Caption,
	}
}

func quizCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "quiz",
		Usage: "Play a ten-question quiz",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Question source: ia (generated) or church (curated)",
				Value:   string(quiz.ModeAI),
			},
			&cli.StringFlag{
				Name:    "difficulty",
				Aliases: []string{"d"},
				Usage:   "Level for generated questions: Débutant, Intermédiaire or Avancé",
				Value:   services.DifficultyBeginner,
			},
		},
		Action: r.Quiz,
	}
}

// donateCommand processes a gift through the configured gateway
func donateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "donate",
		Usage: "Give to the Tabernacle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "amount",
				Aliases: []string{"a"},
				Usage:   "Amount in FCFA (default from config)",
			},
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"m"},
				Usage:   "Wave, Orange Money, MTN Money, Moov Money, Stripe or PayPal",
				Value:   "wave",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the receipt as JSON",
			},
		},
		Action: r.Donate,
	}
}

// exportCommand handles file exports of collections and chapter ranges
func exportCommand(r *Runner) *cli.Command {
	formatFlag := func(def formatter.Format) *cli.StringFlag {
		return &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: json, csv, markdown or txt",
			Value:   string(def),
		}
	}
	outputFlag := func(usage string) *cli.StringFlag {
		return &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   usage,
		}
	}
	return &cli.Command{
		Name:  "export",
		Usage: "Export collections and chapters to files",
		Commands: []*cli.Command{
			{
				Name:   "quiz",
				Usage:  "Export the curated quiz questions",
				Flags:  []cli.Flag{formatFlag(formatter.FormatJSON), outputFlag("Output file path")},
				Action: r.ExportQuiz,
			},
			{
				Name:   "podcasts",
				Usage:  "Export the podcast library",
				Flags:  []cli.Flag{formatFlag(formatter.FormatJSON), outputFlag("Output file path")},
				Action: r.ExportPodcasts,
			},
			{
				Name:      "bible",
				Usage:     "Export a range of chapters, one file each",
				Arguments: []cli.Argument{&cli.StringArg{Name: "book"}},
				Flags: []cli.Flag{
					formatFlag(formatter.FormatMarkdown),
					outputFlag("Output directory (default: bible_export_{epoch})"),
					&cli.IntFlag{
						Name:  "from",
						Usage: "First chapter",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "to",
						Usage: "Last chapter (default: same as --from)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent requests",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 2,
					},
				},
				Action: r.ExportBible,
			},
		},
	}
}
