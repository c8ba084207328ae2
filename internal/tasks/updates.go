package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchChapter Phase = iota
	WriteChapter
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchChapter:
		return "fetch_chapter"
	case WriteChapter:
		return "write_chapter"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingChapterUpdate(step, total int, book string, chapter int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChapter,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Lecture de %s %d...", step, total, book, chapter),
	}
}

func chapterWrittenUpdate(step, total int, book string, chapter, verses int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteChapter,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s %d (%d versets)", step, total, book, chapter, verses),
	}
}

func chapterFailedUpdate(step, total int, book string, chapter int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteChapter,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s %d: %v", step, total, book, chapter, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest: %s", path),
		Data:    path,
	}
}
