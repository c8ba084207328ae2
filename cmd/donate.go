package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/donation"
)

// Donate validates and processes a gift. Wave gifts print the transfer instructions.
func (r *Runner) Donate(ctx context.Context, cmd *cli.Command) error {
	method, err := donation.ParseMethod(cmd.String("method"))
	if err != nil {
		return err
	}

	form := donation.NewForm()
	form.Method = method
	form.Custom = cmd.String("amount")
	if r.config.Donation.DefaultAmount > 0 {
		form.Preset = r.config.Donation.DefaultAmount
	}

	amount, err := form.Amount()
	if err != nil {
		return err
	}
	r.writePlain("Traitement de votre don de %s via %s...\n", donation.FormatFCFA(amount), method)

	receipt, err := r.donations().Donate(ctx, form)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(receipt, true)
	}

	r.writePlainHeader("Merci pour votre générosité")
	r.writePlain("Montant   %s\n", donation.FormatFCFA(receipt.Amount))
	r.writePlain("Moyen     %s\n", receipt.Method)
	if receipt.NeedsTransfer() {
		r.writePlain("Référence %s\n", receipt.TransactionID)
		r.writePlainln("Finalisez le transfert Wave au %s en indiquant la référence.", receipt.Phone)
	}
	return nil
}
