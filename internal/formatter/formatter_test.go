package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tabernacle/internal/models"
)

func testVerses() []models.Verse {
	return []models.Verse{
		{Number: 1, Text: "Au commencement était la Parole,"},
		{Number: 2, Text: "Elle était au commencement avec Dieu."},
	}
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "CSV", want: FormatCSV},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	if FormatMarkdown.Ext() != "md" || FormatCSV.Ext() != "csv" {
		t.Error("unexpected extensions")
	}
}

func TestExporters(t *testing.T) {
	t.Run("QuizToCSV", func(t *testing.T) {
		data, err := QuizToCSV(models.DefaultQuizQuestions())
		if err != nil {
			t.Fatalf("QuizToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Question,A,B,C,D,Answer,Explanation") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1995,2000,2010,2015,B,") {
			t.Errorf("CSV missing options or answer letter, got: %s", output)
		}
	})

	t.Run("QuizToCSV short options", func(t *testing.T) {
		q := models.QuizQuestion{Question: "q", Options: []string{"a"}}
		if _, err := QuizToCSV([]models.QuizQuestion{q}); err != nil {
			t.Fatalf("short option list should be padded, got %v", err)
		}
	})

	t.Run("QuizToMarkdown", func(t *testing.T) {
		data, _ := QuizToMarkdown(models.DefaultQuizQuestions())
		output := string(data)

		if !strings.Contains(output, "# Quiz du Tabernacle") {
			t.Error("Markdown missing title")
		}
		if !strings.Contains(output, "- B. **2000**") {
			t.Errorf("correct option should be bold, got: %s", output)
		}
		if !strings.Contains(output, "> Le Tabernacle") {
			t.Error("Markdown missing explanation quote")
		}
	})

	t.Run("PodcastsToCSV", func(t *testing.T) {
		data, err := PodcastsToCSV(models.DefaultPodcasts())
		if err != nil {
			t.Fatalf("PodcastsToCSV failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 5 {
			t.Errorf("expected header plus 4 rows, got %d", len(lines))
		}
	})

	t.Run("PodcastsToMarkdown", func(t *testing.T) {
		data, _ := PodcastsToMarkdown(models.DefaultPodcasts())
		if !strings.Contains(string(data), "**Episodes**: 4") {
			t.Error("Markdown missing episode count")
		}
	})

	t.Run("Chapter formats", func(t *testing.T) {
		for _, f := range []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON} {
			data, err := Chapter(f, "Jean", 1, testVerses())
			if err != nil {
				t.Fatalf("Chapter(%s) failed: %v", f, err)
			}
			if !strings.Contains(string(data), "Au commencement") {
				t.Errorf("Chapter(%s) missing verse text", f)
			}
		}

		data, _ := Chapter(FormatJSON, "Jean", 1, testVerses())
		var decoded struct {
			Book   string         `json:"book"`
			Verses []models.Verse `json:"verses"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Book != "Jean" || len(decoded.Verses) != 2 {
			t.Errorf("unexpected JSON payload %+v", decoded)
		}
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "quiz.md")

	if err := WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}

	manifest := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(map[string]int{"chapters": 2}, manifest); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	data, _ := os.ReadFile(manifest)
	if !strings.Contains(string(data), `"chapters": 2`) {
		t.Errorf("unexpected manifest %s", data)
	}
}
