package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/utils"
)

type transferFlags struct {
	User string
}

type transferRunner struct {
	app   *app.App
	flags *transferFlags
}

func NewTransferCmd(application *app.App) *cobra.Command {
	flags := &transferFlags{}

	cmd := &cobra.Command{
		Use:   "transfer <target> <account> <amount>",
		Short: "Transfer money to another card or to an external bank",
		Long: `Transfer money out of a user's account.

Use "local" as the target for a card at this bank:
  xfbank transfer local XF1234567 50.00 -u alice

Any other target is treated as an external bank name:
  xfbank transfer CMB 6222021234 50.00 -u alice`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &transferRunner{app: application, flags: flags}
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *transferRunner) Run(cmd *cobra.Command, args []string) error {
	amount, err := utils.ParseAmount(args[2])
	if err != nil {
		return err
	}

	if args[0] == "local" {
		balance, err := r.app.Ledger.Transfer(r.flags.User, args[1], amount)
		if err != nil {
			return fmt.Errorf("transfer failed: %w", err)
		}
		pterm.Success.Printfln("Transferred %s to card %s", utils.FormatAmount(amount), args[1])
		pterm.Info.Printfln("Balance: %s", utils.FormatAmount(balance))
		return nil
	}

	bank, account := args[0], args[1]
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Settling with %s...", bank))
	balance, err := r.app.Ledger.TransferExternal(cmd.Context(), r.flags.User, bank, account, amount)
	if err != nil {
		spinner.Fail("Inter-bank transfer failed")
		return fmt.Errorf("transfer failed: %w", err)
	}
	spinner.Success(fmt.Sprintf("Transferred %s to account %s at %s", utils.FormatAmount(amount), account, bank))
	pterm.Info.Printfln("Balance: %s", utils.FormatAmount(balance))
	return nil
}
