package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/router"
	"github.com/desertthunder/tabernacle/internal/shared"
)

// donateView is the donation form and its outcome screens.
type donateView struct {
	preset     int // index into donation.Presets
	method     int // index into models.MobileMoneyMethods
	custom     textinput.Model
	processing bool
	receipt    *donation.Receipt
	err        string
}

func newDonateView() donateView {
	in := textinput.New()
	in.Placeholder = "Autre montant (FCFA)"
	in.CharLimit = 12
	in.Width = 24
	v := donateView{custom: in}
	for i, p := range donation.Presets {
		if p == donation.DefaultAmount {
			v.preset = i
		}
	}
	return v
}

func (d *donateView) form() donation.Form {
	return donation.Form{
		Preset: donation.Presets[d.preset],
		Custom: d.custom.Value(),
		Method: models.MobileMoneyMethods[d.method],
	}
}

func (m *Model) updateDonate(msg tea.KeyMsg) tea.Cmd {
	d := &m.donate
	if d.processing {
		return nil
	}
	if d.receipt != nil {
		if key.Matches(msg, m.keys.enter) || key.Matches(msg, m.keys.back) {
			d.receipt = nil
		}
		return nil
	}

	if d.custom.Focused() {
		switch {
		case key.Matches(msg, m.keys.back):
			d.custom.Blur()
			return nil
		case key.Matches(msg, m.keys.enter):
			d.custom.Blur()
			return m.submitDonation()
		}
		var cmd tea.Cmd
		d.custom, cmd = d.custom.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.left):
		d.preset = (d.preset - 1 + len(donation.Presets)) % len(donation.Presets)
		d.custom.SetValue("")
	case key.Matches(msg, m.keys.right):
		d.preset = (d.preset + 1) % len(donation.Presets)
		d.custom.SetValue("")
	case key.Matches(msg, m.keys.up):
		d.method = (d.method - 1 + len(models.MobileMoneyMethods)) % len(models.MobileMoneyMethods)
	case key.Matches(msg, m.keys.down):
		d.method = (d.method + 1) % len(models.MobileMoneyMethods)
	case msg.String() == "i":
		d.err = ""
		return d.custom.Focus()
	case key.Matches(msg, m.keys.enter):
		return m.submitDonation()
	}
	return nil
}

// submitDonation validates the form here so an invalid amount never reaches the gateway.
func (m *Model) submitDonation() tea.Cmd {
	d := &m.donate
	form := d.form()
	if _, err := form.Amount(); err != nil {
		d.err = "Veuillez entrer un montant valide."
		return nil
	}
	if m.deps.Donations == nil {
		d.err = "Les dons sont indisponibles."
		return nil
	}

	d.err = ""
	d.processing = true
	t := m.begin(router.Donations)
	svc := m.deps.Donations
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		r, err := svc.Donate(t.Context(), form)
		return donationMsg(t.Gen, r, err)
	})
}

func (m *Model) handleDonation(msg Msg) {
	if !m.current(router.Donations, msg.gen) {
		return
	}
	d := &m.donate
	d.processing = false
	res := msg.data.(donationResult)
	if res.err != nil {
		if errors.Is(res.err, shared.ErrInvalidAmount) {
			d.err = "Veuillez entrer un montant valide."
		} else {
			d.err = res.err.Error()
		}
		return
	}
	d.receipt = &res.receipt
	d.custom.SetValue("")
}

func (m *Model) viewDonate() string {
	s := m.styles()
	d := &m.donate
	var b strings.Builder

	b.WriteString(s.title.Render("Soutenir Le Tabernacle") + "\n")
	b.WriteString(s.help.Render("Votre contribution est un acte de foi pour notre communauté.") + "\n\n")

	if r := d.receipt; r != nil {
		if r.NeedsTransfer() {
			b.WriteString(s.gold.Bold(true).Render("FINALISEZ VOTRE DON AVEC WAVE") + "\n\n")
			fmt.Fprintf(&b, "Montant      %s\n", s.text.Render(donation.FormatFCFA(r.Amount)))
			fmt.Fprintf(&b, "Numéro Wave  %s\n", s.gold.Render(r.Phone))
			fmt.Fprintf(&b, "Référence    %s\n\n", s.text.Render(r.TransactionID))
			b.WriteString(s.muted.Render("Envoyez le montant au numéro ci-dessus en indiquant la référence.") + "\n")
		} else {
			b.WriteString(s.ok.Render("✓ Merci pour votre don !") + "\n")
			b.WriteString(s.muted.Render("Votre générosité soutient les missions du Tabernacle de la Foi.") + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{binding("entrée", "fermer")}))
		return b.String()
	}

	presets := make([]string, len(donation.Presets))
	for i, p := range donation.Presets {
		label := donation.FormatFCFA(p)
		if i == d.preset && strings.TrimSpace(d.custom.Value()) == "" {
			presets[i] = s.active.Render(label)
		} else {
			presets[i] = s.tab.Render(label)
		}
	}
	b.WriteString(strings.Join(presets, " ") + "\n\n")
	b.WriteString(d.custom.View() + "\n\n")

	for i, method := range models.MobileMoneyMethods {
		marker := "○"
		if i == d.method {
			marker = s.gold.Render("●")
		}
		fmt.Fprintf(&b, "%s %s\n", marker, method)
	}
	b.WriteString("\n")

	if d.processing {
		b.WriteString(m.spin("INITIALISATION...") + "\n")
	} else {
		b.WriteString(s.active.Render("VALIDER MON DON") + "\n")
	}
	if d.err != "" {
		b.WriteString("\n" + s.err.Render(d.err) + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		binding("←/→", "montant"), binding("↑/↓", "moyen"), binding("i", "autre montant"), binding("entrée", "donner"),
	}))
	return b.String()
}
