package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/tabernacle/internal/formatter"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// ChapterSource fetches the verses of one chapter.
type ChapterSource interface {
	ChapterText(ctx context.Context, book string, chapter int) ([]models.Verse, error)
}

// ChapterExportOpts contains configuration for chapter exports.
type ChapterExportOpts struct {
	Format     formatter.Format // Export format: json, csv, markdown, txt
	OutputDir  string           // Base output directory (default: bible_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 3)
	RateLimit  float64          // Requests per second (default: 2)
}

// ChapterExportResult summarizes an export run and is written as the manifest.
type ChapterExportResult struct {
	Book            string          `json:"book"`
	TotalChapters   int             `json:"total_chapters"`
	Successful      int             `json:"successful"`
	Failed          int             `json:"failed"`
	OutputDirectory string          `json:"output_directory"`
	ManifestPath    string          `json:"-"`
	Chapters        []ChapterResult `json:"chapters"`
}

// ChapterResult is the outcome for a single chapter.
type ChapterResult struct {
	Chapter int    `json:"chapter"`
	Verses  int    `json:"verses"`
	File    string `json:"file,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChapterExporter writes chapters fetched from a [ChapterSource] to disk.
type ChapterExporter struct {
	source ChapterSource
}

// NewChapterExporter creates a ChapterExporter.
func NewChapterExporter(source ChapterSource) *ChapterExporter {
	return &ChapterExporter{source: source}
}

type chapterJob struct {
	index   int
	chapter int
}

// Export fetches each chapter of book with a worker pool and writes one file per chapter.
//
// Individual chapter failures are recorded in the result; the returned error is reserved for
// problems that stop the whole run. Chapters are listed in ascending order in the manifest.
func (e *ChapterExporter) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	book string,
	chapters []int,
	opts ChapterExportOpts,
) (*ChapterExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: chapter source not initialized", shared.ErrServiceUnavailable)
	}
	if !models.IsBook(book) {
		return nil, fmt.Errorf("%w: unknown book %q", shared.ErrInvalidArgument, book)
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters requested", shared.ErrMissingArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("bible_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	result := &ChapterExportResult{
		Book:            book,
		TotalChapters:   len(chapters),
		OutputDirectory: opts.OutputDir,
		Chapters:        make([]ChapterResult, 0, len(chapters)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan chapterJob, len(chapters))
	results := make(chan ChapterResult, len(chapters))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.worker(ctx, &wg, limiter, prog, jobs, results, book, len(chapters), opts)
	}

	go func() {
		defer close(jobs)
		for i, ch := range chapters {
			select {
			case <-ctx.Done():
				return
			case jobs <- chapterJob{index: i + 1, chapter: ch}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Chapters = append(result.Chapters, res)
		if res.Error == "" {
			result.Successful++
			sendProgress(prog, chapterWrittenUpdate(completed, len(chapters), book, res.Chapter, res.Verses))
		} else {
			result.Failed++
			sendProgress(prog, chapterFailedUpdate(completed, len(chapters), book, res.Chapter, fmt.Errorf("%s", res.Error)))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	sort.Slice(result.Chapters, func(i, j int) bool { return result.Chapters[i].Chapter < result.Chapters[j].Chapter })

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

func (e *ChapterExporter) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	prog chan<- ProgressUpdate,
	jobs <-chan chapterJob,
	results chan<- ChapterResult,
	book string,
	total int,
	opts ChapterExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		sendProgress(prog, fetchingChapterUpdate(job.index, total, book, job.chapter))
		results <- e.exportChapter(ctx, book, job.chapter, opts)
	}
}

func (e *ChapterExporter) exportChapter(ctx context.Context, book string, chapter int, opts ChapterExportOpts) ChapterResult {
	res := ChapterResult{Chapter: chapter}

	verses, err := e.source.ChapterText(ctx, book, chapter)
	if err != nil {
		res.Error = fmt.Sprintf("fetch failed: %v", err)
		return res
	}
	if len(verses) == 0 {
		res.Error = "no verses returned"
		return res
	}

	data, err := formatter.Chapter(opts.Format, book, chapter, verses)
	if err != nil {
		res.Error = fmt.Sprintf("format failed: %v", err)
		return res
	}

	name := fmt.Sprintf("%s_%03d.%s", fileSlug(book), chapter, opts.Format.Ext())
	path := filepath.Join(opts.OutputDir, name)
	if err := formatter.WriteFile(path, data); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Verses = len(verses)
	res.File = path
	return res
}

// sendProgress sends an update without blocking when the receiver is slow or absent.
func sendProgress(prog chan<- ProgressUpdate, u ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- u:
	default:
	}
}

func fileSlug(book string) string {
	return strings.ToLower(strings.ReplaceAll(book, " ", "_"))
}
