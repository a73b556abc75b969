package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

// PrintTitle renders a banner line for interactive sessions and the server.
func PrintTitle(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	style.Println(fmt.Sprintf(" %s   ", text))
}

func Separator() {
	pterm.Println(pterm.Gray("────────────────────────────────────"))
}
