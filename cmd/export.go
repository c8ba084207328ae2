package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/formatter"
	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/tasks"
)

// exportCollection writes data to --output, or to name.ext in the working directory.
func (r *Runner) exportCollection(cmd *cli.Command, name string, f formatter.Format, data []byte) error {
	out := cmd.String("output")
	if out == "" {
		out = fmt.Sprintf("%s.%s", name, f.Ext())
	}
	if err := formatter.WriteFile(out, data); err != nil {
		return err
	}
	r.logger.Info("exported", "collection", name, "path", out)
	return r.writePlain("✓ %s exporté : %s\n", name, out)
}

// ExportQuiz writes the curated quiz questions.
func (r *Runner) ExportQuiz(ctx context.Context, cmd *cli.Command) error {
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	data, err := formatter.Quiz(f, state.Quiz)
	if err != nil {
		return err
	}
	return r.exportCollection(cmd, "quiz", f, data)
}

// ExportPodcasts writes the podcast library.
func (r *Runner) ExportPodcasts(ctx context.Context, cmd *cli.Command) error {
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	data, err := formatter.Podcasts(f, state.Podcasts)
	if err != nil {
		return err
	}
	return r.exportCollection(cmd, "podcasts", f, data)
}

// ExportBible fetches a range of chapters concurrently and writes one file per chapter plus a manifest.
func (r *Runner) ExportBible(ctx context.Context, cmd *cli.Command) error {
	book := cmd.StringArg("book")
	if book == "" {
		return fmt.Errorf("%w: book", shared.ErrMissingArgument)
	}
	from, to := int(cmd.Int("from")), int(cmd.Int("to"))
	if to == 0 {
		to = from
	}
	if from < 1 || to < from {
		return fmt.Errorf("%w: chapter range %d-%d", shared.ErrInvalidArgument, from, to)
	}
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	chapters := make([]int, 0, to-from+1)
	for ch := from; ch <= to; ch++ {
		chapters = append(chapters, ch)
	}

	r.logger.Info("starting export", "book", book, "from", from, "to", to, "format", f)
	r.writePlain("Export de %s %d-%d...\n\n", book, from, to)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			if update.Phase == tasks.FetchChapter {
				continue
			}
			r.writePlain("%s\n", update.Message)
		}
	}()

	exporter := tasks.NewChapterExporter(r.ai())
	result, err := exporter.Export(ctx, progressCh, book, chapters, tasks.ChapterExportOpts{
		Format:     f,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Export terminé")
	r.writePlain("Chapitres : %d/%d\n", result.Successful, result.TotalChapters)
	r.writePlain("Dossier :   %s\n", filepath.Clean(result.OutputDirectory))
	if result.ManifestPath != "" {
		r.writePlain("Manifest :  %s\n", result.ManifestPath)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d chapters failed", shared.ErrServiceUnavailable, result.Failed)
	}
	return nil
}
