package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/utils"
)

type checkinFlags struct {
	User string
}

type checkinRunner struct {
	app   *app.App
	flags *checkinFlags
}

func NewCheckinCmd(application *app.App) *cobra.Command {
	flags := &checkinFlags{}

	cmd := &cobra.Command{
		Use:          "checkin",
		Short:        "Collect the daily check-in bonus",
		Long:         `Credit the once-per-day check-in bonus, a random amount drawn from the configured range.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &checkinRunner{app: application, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *checkinRunner) Run() error {
	amount, err := r.app.Ledger.CheckIn(r.flags.User)
	if err != nil {
		return fmt.Errorf("check-in failed: %w", err)
	}

	pterm.Success.Printfln("Check-in bonus credited: %s", utils.FormatAmount(amount))
	return nil
}
