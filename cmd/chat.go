package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/errhandler"
	"github.com/larch-c/xfbank/internal/ui"
	"github.com/larch-c/xfbank/internal/ui/prompts"
)

type chatFlags struct {
	User string
}

type chatRunner struct {
	app   *app.App
	flags *chatFlags
}

func NewChatCmd(application *app.App) *cobra.Command {
	flags := &chatFlags{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive bank session for one user",
		Long: `Start an interactive session that reads bank commands line by line,
exactly as the chat bot would receive them.

Example: xfbank chat -u alice`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &chatRunner{app: application, flags: flags}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "User identifier")
	cmd.MarkFlagRequired("user")

	return cmd
}

func (r *chatRunner) Run(cmd *cobra.Command) error {
	ui.PrintTitle("xfbank chat — %s", r.flags.User)
	pterm.Info.Println("Type a command ('help' shows the list), or 'exit' to leave")

	for {
		line, err := prompts.PromptChatLine(r.flags.User)
		if err != nil {
			errhandler.HandleError(err)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			break
		}

		reply := r.app.Handler.Handle(cmd.Context(), r.flags.User, line)
		pterm.Println(reply)
		ui.Separator()
	}

	pterm.Info.Println("Session ended")
	return nil
}
