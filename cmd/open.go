package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
)

type openFlags struct {
	User string
}

type openRunner struct {
	app   *app.App
	flags *openFlags
}

func NewOpenCmd(application *app.App) *cobra.Command {
	flags := &openFlags{}

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open an account and get a card number",
		Long: `Open an account for a user. Opening is idempotent: running it again
for the same user returns the existing card number instead of failing.

Example: xfbank open -u alice`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &openRunner{app: application, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *openRunner) Run() error {
	card, existing, err := r.app.Ledger.Open(r.flags.User)
	if err != nil {
		return fmt.Errorf("failed to open account: %w", err)
	}

	if existing {
		pterm.Info.Printfln("Account already open. Card number: %s", card)
		return nil
	}

	tableData := pterm.TableData{
		{pterm.Blue("User"), r.flags.User},
		{pterm.Blue("Card Number"), card},
		{pterm.Blue("Balance"), "0.00"},
	}
	pterm.DefaultTable.WithData(tableData).Render()
	pterm.Success.Println("Account opened successfully!")
	return nil
}
