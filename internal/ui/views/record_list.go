package views

import (
	"github.com/pterm/pterm"
)

type RecordListItem struct {
	Time    string
	Type    string
	Amount  string
	Target  string
	Balance string
}

type RecordListView struct{}

func NewRecordListView() *RecordListView {
	return &RecordListView{}
}

func (v *RecordListView) Render(items []RecordListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Recent transactions")

	tableData := pterm.TableData{
		{"Time", "Type", "Amount", "Target", "Balance"},
	}

	for _, item := range items {
		var coloredType, coloredAmount string

		switch item.Type {
		case "transfer-out", "external-transfer":
			coloredType = pterm.Red(item.Type)
			coloredAmount = pterm.Red(item.Amount)
		case "transfer-in", "check-in":
			coloredType = pterm.Green(item.Type)
			coloredAmount = pterm.Green(item.Amount)
		default: // open-account
			coloredType = pterm.Gray(item.Type)
			coloredAmount = item.Amount
		}

		target := item.Target
		if target == "" {
			target = "-"
		}

		tableData = append(tableData, []string{
			item.Time,
			coloredType,
			coloredAmount,
			target,
			item.Balance,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
