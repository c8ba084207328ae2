package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/quiz"
	"github.com/desertthunder/tabernacle/internal/services"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Quiz runs a session on the terminal, reading answers 1-4 from input. "q" ends it early.
func (r *Runner) Quiz(ctx context.Context, cmd *cli.Command) error {
	mode, err := quiz.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}
	difficulty := cmd.String("difficulty")
	if !validDifficulty(difficulty) {
		return fmt.Errorf("%w: difficulty must be one of %v", shared.ErrInvalidArgument, services.Difficulties)
	}

	var session *quiz.Session
	if mode == quiz.ModeChurch {
		state, err := r.openState(ctx)
		if err != nil {
			return err
		}
		if len(state.Quiz) == 0 {
			return fmt.Errorf("%w: no curated questions", shared.ErrInvalidInput)
		}
		session = quiz.New(state.Quiz)
	} else {
		session = quiz.New(nil)
	}
	session.SetDifficulty(difficulty)

	r.writePlainHeader("Quiz " + mode.Label())
	step := session.Start(mode)
	for session.Status() != quiz.Finished {
		if step == quiz.StepFetch {
			q, err := r.ai().QuizQuestion(ctx, session.Difficulty())
			if err == nil {
				err = session.Deliver(q)
			} else {
				session.FetchFailed()
			}
			if err != nil {
				return fmt.Errorf("failed to load question: %w", err)
			}
		}

		q, _ := session.Question()
		r.writePlain("\nQuestion %d/%d\n%s\n", session.Count(), session.Total(), q.Question)
		for i, opt := range q.Options {
			r.writePlain("  %d. %s\n", i+1, opt)
		}

		idx, quit, err := r.readOption(len(q.Options))
		if err != nil {
			return err
		}
		if quit {
			break
		}
		correct, err := session.Answer(idx)
		if err != nil {
			return err
		}
		if correct {
			r.writePlain("✓ Bonne réponse ! (+%d)\n", quiz.PointsPerAnswer)
		} else {
			r.writePlain("✗ La bonne réponse était : %s\n", q.Options[q.CorrectAnswer])
		}
		if q.Explanation != "" {
			r.writePlain("%s\n", q.Explanation)
		}
		step = session.Next()
	}

	r.writePlainln("Score : %d / %d (%.0f%%)", session.Score(), session.Total()*quiz.PointsPerAnswer, session.Percentage())
	return r.writePlain("%s\n", session.Encouragement())
}

// readOption prompts until a valid option number or "q" is entered.
func (r *Runner) readOption(n int) (int, bool, error) {
	for {
		line, err := r.prompt(fmt.Sprintf("Votre réponse (1-%d, q pour quitter) : ", n))
		if errors.Is(err, shared.ErrMissingArgument) {
			return 0, true, nil
		}
		if err != nil {
			return 0, false, err
		}
		if line == "q" {
			return 0, true, nil
		}
		if i, err := strconv.Atoi(line); err == nil && i >= 1 && i <= n {
			return i - 1, false, nil
		}
		r.writePlain("Réponse invalide.\n")
	}
}

func validDifficulty(d string) bool {
	for _, v := range services.Difficulties {
		if v == d {
			return true
		}
	}
	return false
}
