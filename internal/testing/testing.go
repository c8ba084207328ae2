// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tabernacle/internal/models"
)

// MockAssistant is a test double for services.Assistant.
//
// Each operation returns the matching field, or Err when set. Calls are counted per operation.
type MockAssistant struct {
	Reply       string
	Question    models.QuizQuestion
	Verses      []models.Verse
	Explanation string
	Meditate    string
	PCM         []byte
	Caption     string
	Err         error

	mu    sync.Mutex
	calls map[string]int
	// LastHistory is the history passed to the last Chat call.
	LastHistory []models.ChatMessage
}

func (m *MockAssistant) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
}

// Calls returns how many times op was invoked.
func (m *MockAssistant) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockAssistant) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	m.record("chat")
	m.mu.Lock()
	m.LastHistory = append([]models.ChatMessage(nil), history...)
	m.mu.Unlock()
	return m.Reply, m.Err
}

func (m *MockAssistant) QuizQuestion(ctx context.Context, difficulty string) (models.QuizQuestion, error) {
	m.record("quiz")
	if m.Err != nil {
		return models.QuizQuestion{}, m.Err
	}
	return m.Question.Clone(), nil
}

func (m *MockAssistant) ChapterText(ctx context.Context, book string, chapter int) ([]models.Verse, error) {
	m.record("chapter")
	return m.Verses, m.Err
}

func (m *MockAssistant) ChapterExplanation(ctx context.Context, book string, chapter int) (string, error) {
	m.record("explanation")
	return m.Explanation, m.Err
}

func (m *MockAssistant) Meditation(ctx context.Context, verse string) (string, error) {
	m.record("meditation")
	return m.Meditate, m.Err
}

func (m *MockAssistant) Narrate(ctx context.Context, text string) ([]byte, error) {
	m.record("narrate")
	return m.PCM, m.Err
}

func (m *MockAssistant) PhotoCaption(ctx context.Context, description string) (string, error) {
	m.record("caption")
	return m.Caption, m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// MockNotifier records displayed notifications and grants or denies permission.
type MockNotifier struct {
	Grant bool

	mu    sync.Mutex
	Shown []string
}

func (m *MockNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return m.Grant, nil
}

func (m *MockNotifier) Show(title, body string, meta map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Shown = append(m.Shown, title+": "+body)
}

// Count returns how many notifications were shown.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Shown)
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
