package prompts

import (
	"github.com/AlecAivazis/survey/v2"
)

// PromptChatLine reads one chat message from the terminal. An empty line is
// returned as-is; the caller decides whether to show help.
func PromptChatLine(userID string) (string, error) {
	var line string

	prompt := &survey.Input{
		Message: userID + ">",
		Help:    "Type a bank command, or 'exit' to leave the session",
	}

	err := survey.AskOne(prompt, &line, survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	}))
	return line, err
}
