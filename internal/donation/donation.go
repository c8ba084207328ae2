// package donation validates the donation form and hands accepted gifts to a payment gateway.
package donation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// Presets are the one-tap amounts in FCFA.
var Presets = []int{500, 2000, 5000, 10000, 25000}

const (
	DefaultAmount = 5000
	WavePhone     = "+225 01 03 80 72 07"
	WaveURL       = "wave://"
	WaveDelay     = 1200 * time.Millisecond
	OtherDelay    = 2 * time.Second
	txPrefix      = "TAB-"
	txLength      = 9
)

// Form is the state of the donation form. A non-empty Custom amount wins over the preset.
type Form struct {
	Preset int
	Custom string
	Method models.PaymentMethod
}

// NewForm returns the form with the default preset and Wave selected.
func NewForm() Form {
	return Form{Preset: DefaultAmount, Method: models.PaymentWave}
}

// Amount resolves the amount to give.
func (f Form) Amount() (int, error) {
	if strings.TrimSpace(f.Custom) != "" {
		return ParseAmount(f.Custom)
	}
	if f.Preset <= 0 {
		return 0, fmt.Errorf("%w: %d", shared.ErrInvalidAmount, f.Preset)
	}
	return f.Preset, nil
}

// ParseAmount accepts a positive whole number of FCFA. Spaces used as thousands separators are ignored.
func ParseAmount(s string) (int, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	n, err := strconv.Atoi(clean)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", shared.ErrInvalidAmount, s)
	}
	return n, nil
}

// FormatFCFA renders an amount with thin grouping, e.g. "25 000 FCFA".
func FormatFCFA(n int) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + " FCFA"
}

// Receipt is the outcome of a processed gift.
type Receipt struct {
	Method        models.PaymentMethod
	Amount        int
	TransactionID string // set for Wave
	Phone         string // Wave number to send to
}

// NeedsTransfer reports whether the member must finish the transfer in the Wave app.
func (r Receipt) NeedsTransfer() bool {
	return r.Method == models.PaymentWave
}

// Gateway processes a validated gift.
type Gateway interface {
	Process(ctx context.Context, amount int, method models.PaymentMethod) (Receipt, error)
}

// SimulatedGateway waits like a payment provider would and issues Wave transfer instructions.
type SimulatedGateway struct {
	WaveDelay    time.Duration
	DefaultDelay time.Duration
	Phone        string
	OpenWaveApp  bool
	Open         func(url string) error
	Logger       *log.Logger
}

// NewSimulatedGateway builds a gateway from the [donation] config section.
func NewSimulatedGateway(cfg shared.DonationConfig, logger *log.Logger) *SimulatedGateway {
	g := &SimulatedGateway{
		WaveDelay:    cfg.WaveDelay.Duration,
		DefaultDelay: cfg.DefaultDelay.Duration,
		Phone:        cfg.WavePhone,
		OpenWaveApp:  cfg.OpenWaveApp,
		Open:         shared.OpenURL,
		Logger:       logger,
	}
	if g.WaveDelay <= 0 {
		g.WaveDelay = WaveDelay
	}
	if g.DefaultDelay <= 0 {
		g.DefaultDelay = OtherDelay
	}
	if g.Phone == "" {
		g.Phone = WavePhone
	}
	return g
}

// Process waits for the method's delay. Wave returns a transaction id and may launch the app.
func (g *SimulatedGateway) Process(ctx context.Context, amount int, method models.PaymentMethod) (Receipt, error) {
	delay := g.DefaultDelay
	if method == models.PaymentWave {
		delay = g.WaveDelay
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	case <-t.C:
	}

	r := Receipt{Method: method, Amount: amount}
	if method != models.PaymentWave {
		return r, nil
	}

	r.TransactionID = TransactionID()
	r.Phone = g.Phone
	if g.OpenWaveApp && g.Open != nil {
		if err := g.Open(WaveURL); err != nil && g.Logger != nil {
			g.Logger.Warn("could not open wave app", "error", err)
		}
	}
	return r, nil
}

// TransactionID returns "TAB-" followed by nine uppercase alphanumerics.
func TransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return txPrefix + strings.ToUpper(raw[:txLength])
}

// Service validates forms before touching the gateway.
type Service struct {
	gateway Gateway
	logger  *log.Logger
}

func NewService(g Gateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{gateway: g, logger: logger}
}

// Donate validates the form and processes the gift. Invalid forms never reach the gateway.
func (s *Service) Donate(ctx context.Context, f Form) (Receipt, error) {
	amount, err := f.Amount()
	if err != nil {
		return Receipt{}, err
	}
	if !validMethod(f.Method) {
		return Receipt{}, fmt.Errorf("%w: payment method %q", shared.ErrInvalidInput, f.Method)
	}

	s.logger.Info("processing donation", "amount", amount, "method", f.Method)
	r, err := s.gateway.Process(ctx, amount, f.Method)
	if err != nil {
		return Receipt{}, fmt.Errorf("donation failed: %w", err)
	}
	return r, nil
}

func validMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentWave, models.PaymentOrangeMoney, models.PaymentMTNMoney,
		models.PaymentMoov, models.PaymentStripe, models.PaymentPayPal:
		return true
	}
	return false
}

// ParseMethod matches a payment method by name, ignoring case and spaces.
func ParseMethod(s string) (models.PaymentMethod, error) {
	norm := func(v string) string { return strings.ToLower(strings.ReplaceAll(v, " ", "")) }
	for _, m := range []models.PaymentMethod{
		models.PaymentWave, models.PaymentOrangeMoney, models.PaymentMTNMoney,
		models.PaymentMoov, models.PaymentStripe, models.PaymentPayPal,
	} {
		if norm(string(m)) == norm(s) {
			return m, nil
		}
	}
	switch norm(s) {
	case "orange":
		return models.PaymentOrangeMoney, nil
	case "mtn":
		return models.PaymentMTNMoney, nil
	case "moov":
		return models.PaymentMoov, nil
	case "card", "stripe":
		return models.PaymentStripe, nil
	}
	return "", fmt.Errorf("%w: payment method %q", shared.ErrInvalidArgument, s)
}
