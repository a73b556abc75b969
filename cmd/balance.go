package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/constants"
	"github.com/larch-c/xfbank/internal/utils"
)

type balanceFlags struct {
	User string
}

type balanceRunner struct {
	app   *app.App
	flags *balanceFlags
}

func NewBalanceCmd(application *app.App) *cobra.Command {
	flags := &balanceFlags{}

	cmd := &cobra.Command{
		Use:          "balance",
		Short:        "Show a user's card number and balance",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &balanceRunner{app: application, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *balanceRunner) Run() error {
	info, err := r.app.Ledger.Balance(r.flags.User)
	if err != nil {
		return fmt.Errorf("failed to query balance: %w", err)
	}

	tableData := pterm.TableData{
		{pterm.Blue("Card Number"), info.Card},
		{pterm.Blue("Balance"), utils.FormatAmount(info.Balance)},
		{pterm.Blue("Queried At"), info.Time.Format(constants.TimeFormat)},
	}
	pterm.DefaultTable.WithData(tableData).Render()
	return nil
}
