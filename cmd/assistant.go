package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/audio"
	"github.com/desertthunder/tabernacle/internal/formatter"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Ask sends one message to the assistant with no prior history.
func (r *Runner) Ask(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if message == "" {
		return fmt.Errorf("%w: message", shared.ErrMissingArgument)
	}
	reply, err := r.ai().Chat(ctx, message, nil)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", shared.PlainText(reply))
}

// chapterArgs reads and validates the book and chapter arguments.
func chapterArgs(cmd *cli.Command) (string, int, error) {
	book := cmd.StringArg("book")
	if book == "" {
		return "", 0, fmt.Errorf("%w: book", shared.ErrMissingArgument)
	}
	if !models.IsBook(book) {
		return "", 0, fmt.Errorf("%w: unknown book %q", shared.ErrInvalidArgument, book)
	}
	chapter, err := strconv.Atoi(cmd.StringArg("chapter"))
	if err != nil || chapter < 1 {
		return "", 0, fmt.Errorf("%w: chapter must be a positive number", shared.ErrInvalidArgument)
	}
	return book, chapter, nil
}

// BibleRead prints a chapter in the requested format.
func (r *Runner) BibleRead(ctx context.Context, cmd *cli.Command) error {
	book, chapter, err := chapterArgs(cmd)
	if err != nil {
		return err
	}
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	verses, err := r.ai().ChapterText(ctx, book, chapter)
	if err != nil {
		return err
	}
	data, err := formatter.Chapter(f, book, chapter, verses)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// BibleExplain prints the assistant's commentary on a chapter.
func (r *Runner) BibleExplain(ctx context.Context, cmd *cli.Command) error {
	book, chapter, err := chapterArgs(cmd)
	if err != nil {
		return err
	}
	text, err := r.ai().ChapterExplanation(ctx, book, chapter)
	if err != nil {
		return err
	}
	r.writePlainHeader(fmt.Sprintf("%s %d", book, chapter))
	return r.writePlain("%s\n", shared.PlainText(text))
}

// BibleNarrate reads a chapter aloud, or saves the narration as a WAV file with --output.
func (r *Runner) BibleNarrate(ctx context.Context, cmd *cli.Command) error {
	book, chapter, err := chapterArgs(cmd)
	if err != nil {
		return err
	}
	ai := r.ai()
	verses, err := ai.ChapterText(ctx, book, chapter)
	if err != nil {
		return err
	}
	if len(verses) == 0 {
		return fmt.Errorf("%w: %s %d has no verses", shared.ErrMalformedResponse, book, chapter)
	}

	var text strings.Builder
	for _, v := range verses {
		text.WriteString(v.Text + " ")
	}

	r.logger.Info("requesting narration", "book", book, "chapter", chapter)
	pcm, err := ai.Narrate(ctx, strings.TrimSpace(text.String()))
	if err != nil {
		return err
	}
	wav := audio.EncodeWAV(pcm, audio.Speech)

	if out := cmd.String("output"); out != "" {
		if err := formatter.WriteFile(out, wav); err != nil {
			return err
		}
		return r.writePlain("✓ Narration enregistrée : %s (%s)\n", out, audio.Speech.Duration(len(pcm)).Round(100 * time.Millisecond))
	}

	title := fmt.Sprintf("%s %d", book, chapter)
	player := audio.NewPlayer(audio.DetectSink(), r.logger)
	playback := player.Play(audio.Clip{ID: title, Title: title, WAV: wav})
	r.writePlain("▶ %s (%s)\n", title, audio.Speech.Duration(len(pcm)).Round(100 * time.Millisecond))

	select {
	case <-ctx.Done():
		player.Stop()
		return ctx.Err()
	case err := <-playback.Done:
		return err
	}
}

// Meditate prints a short meditation on a verse, the daily verse by default.
func (r *Runner) Meditate(ctx context.Context, cmd *cli.Command) error {
	verse := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if verse == "" {
		verse = models.DailyVerseLabel
		r.writePlain("%s : « %s »\n\n", models.DailyVerseLabel, models.DailyVerseText)
	}
	text, err := r.ai().Meditation(ctx, verse)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", shared.PlainText(text))
}

// Caption writes a caption for a description, or for a stored photo given with --photo.
func (r *Runner) Caption(ctx context.Context, cmd *cli.Command) error {
	description := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))

	if id := cmd.String("photo"); id != "" {
		state, err := r.openState(ctx)
		if err != nil {
			return err
		}
		found := false
		for _, p := range state.Photos {
			if p.ID == id {
				description = p.Description
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: photo %s", shared.ErrInvalidArgument, id)
		}
	}
	if description == "" {
		return fmt.Errorf("%w: description or --photo", shared.ErrMissingArgument)
	}

	text, err := r.ai().PhotoCaption(ctx, description)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", shared.PlainText(text))
}
