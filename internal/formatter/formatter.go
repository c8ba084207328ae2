// package formatter exports platform content (quiz pool, podcast library, bible chapters) to CSV, Markdown, JSON and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
)

// ParseFormat accepts a format name or its common file extension. Empty defaults to JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// QuizToCSV converts the quiz pool to CSV with columns: Question, A, B, C, D, Answer, Explanation
func QuizToCSV(questions []models.QuizQuestion) ([]byte, error) {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		opts := make([]string, models.QuizOptionCount)
		copy(opts, q.Options)
		rows = append(rows, []string{
			q.Question, opts[0], opts[1], opts[2], opts[3],
			optionLetter(q.CorrectAnswer), q.Explanation,
		})
	}
	return writeCSV([]string{"Question", "A", "B", "C", "D", "Answer", "Explanation"}, rows)
}

// QuizToMarkdown renders the quiz pool as a numbered list with the correct option in bold.
func QuizToMarkdown(questions []models.QuizQuestion) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Quiz du Tabernacle\n\n")
	buf.WriteString(fmt.Sprintf("**Questions**: %d\n\n", len(questions)))

	for i, q := range questions {
		buf.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, q.Question))
		for j, opt := range q.Options {
			if j == q.CorrectAnswer {
				buf.WriteString(fmt.Sprintf("- %s. **%s**\n", optionLetter(j), opt))
			} else {
				buf.WriteString(fmt.Sprintf("- %s. %s\n", optionLetter(j), opt))
			}
		}
		if q.Explanation != "" {
			buf.WriteString(fmt.Sprintf("\n> %s\n", q.Explanation))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// PodcastsToCSV converts the podcast library to CSV with columns: ID, Title, Author, Date, Type, Duration, AudioURL
func PodcastsToCSV(episodes []models.PodcastEpisode) ([]byte, error) {
	rows := make([][]string, 0, len(episodes))
	for _, e := range episodes {
		rows = append(rows, []string{e.ID, e.Title, e.Author, e.Date, string(e.Type), e.Duration, e.AudioURL})
	}
	return writeCSV([]string{"ID", "Title", "Author", "Date", "Type", "Duration", "AudioURL"}, rows)
}

// PodcastsToMarkdown renders the podcast library grouped in one list.
func PodcastsToMarkdown(episodes []models.PodcastEpisode) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Podcasts & Enseignements\n\n")
	buf.WriteString(fmt.Sprintf("**Episodes**: %d\n\n", len(episodes)))

	for i, e := range episodes {
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s (%s, %s) [%s]\n", i+1, e.Title, e.Author, e.Date, e.Duration, e.Type))
		if e.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", e.Description))
		}
	}
	return buf.Bytes(), nil
}

// ChapterToCSV converts a chapter to CSV with columns: Book, Chapter, Verse, Text
func ChapterToCSV(book string, chapter int, verses []models.Verse) ([]byte, error) {
	rows := make([][]string, 0, len(verses))
	for _, v := range verses {
		rows = append(rows, []string{book, strconv.Itoa(chapter), strconv.Itoa(v.Number), v.Text})
	}
	return writeCSV([]string{"Book", "Chapter", "Verse", "Text"}, rows)
}

// ChapterToMarkdown renders a chapter with superscript-style verse numbers.
func ChapterToMarkdown(book string, chapter int, verses []models.Verse) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s %d\n\n", book, chapter))
	buf.WriteString("*Louis Segond*\n\n")
	for _, v := range verses {
		buf.WriteString(fmt.Sprintf("**%d** %s\n\n", v.Number, v.Text))
	}
	return buf.Bytes(), nil
}

// ChapterToText renders a chapter as plain text, one verse per line.
func ChapterToText(book string, chapter int, verses []models.Verse) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s %d\n\n", book, chapter))
	for _, v := range verses {
		buf.WriteString(fmt.Sprintf("%d. %s\n", v.Number, v.Text))
	}
	return buf.Bytes(), nil
}

// Chapter renders a chapter in format f.
func Chapter(f Format, book string, chapter int, verses []models.Verse) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ChapterToCSV(book, chapter, verses)
	case FormatMarkdown:
		return ChapterToMarkdown(book, chapter, verses)
	case FormatText:
		return ChapterToText(book, chapter, verses)
	default:
		return shared.MarshalJSON(map[string]any{"book": book, "chapter": chapter, "verses": verses}, true)
	}
}

// Quiz renders the quiz pool in format f. Plain text falls back to Markdown.
func Quiz(f Format, questions []models.QuizQuestion) ([]byte, error) {
	switch f {
	case FormatCSV:
		return QuizToCSV(questions)
	case FormatMarkdown, FormatText:
		return QuizToMarkdown(questions)
	default:
		return shared.MarshalJSON(questions, true)
	}
}

// Podcasts renders the podcast library in format f. Plain text falls back to Markdown.
func Podcasts(f Format, episodes []models.PodcastEpisode) ([]byte, error) {
	switch f {
	case FormatCSV:
		return PodcastsToCSV(episodes)
	case FormatMarkdown, FormatText:
		return PodcastsToMarkdown(episodes)
	default:
		return shared.MarshalJSON(episodes, true)
	}
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return WriteFile(path, data)
}

func optionLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
