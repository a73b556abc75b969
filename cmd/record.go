package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/constants"
	"github.com/larch-c/xfbank/internal/ui/views"
	"github.com/larch-c/xfbank/internal/utils"
)

type recordFlags struct {
	User  string
	Count int
}

type recordRunner struct {
	app   *app.App
	flags *recordFlags
}

func NewRecordCmd(application *app.App) *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:          "record",
		Short:        "Show a user's recent transactions",
		Long:         `Show the most recent transactions for a user, newest first (default 10, max 20).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &recordRunner{app: application, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.Flags().IntVarP(&flags.Count, "count", "n", 0, "Number of transactions to show (default 10, max 20)")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *recordRunner) Run() error {
	records, err := r.app.Ledger.History(r.flags.User, r.flags.Count)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	items := make([]views.RecordListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, views.RecordListItem{
			Time:    rec.Time.Format(constants.TimeFormat),
			Type:    string(rec.Type),
			Amount:  utils.FormatAmount(rec.Amount),
			Target:  rec.Target,
			Balance: utils.FormatAmount(rec.Balance),
		})
	}

	return views.NewRecordListView().Render(items)
}
