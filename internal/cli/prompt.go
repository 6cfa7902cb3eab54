package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/tacogips/rmmkit/internal/script/diff"
)

// confirm asks a yes/no question. Replaced in tests.
var confirm = promptConfirm

// isInteractive reports whether stdin is a terminal. Replaced in tests.
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptConfirm asks for confirmation with a survey prompt.
func promptConfirm(message, help string) (bool, error) {
	var result bool

	prompt := &survey.Confirm{
		Message: message,
		Default: false,
		Help:    help,
	}

	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}

	return result, nil
}

// confirmPlan asks before applying plans. Non-interactive sessions must pass
// --yes; they are never prompted.
func confirmPlan(plans []diff.Plan, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !isInteractive() {
		return false, fmt.Errorf("refusing to sync without confirmation: stdin is not a terminal (use --%s)", FlagYes)
	}

	s := diff.Summarize(plans)
	message := fmt.Sprintf("Apply %d create and %d update actions to the remote library?", s.New, s.Changed)
	help := "Scripts are written with the local description, parameters and tags. Nothing is deleted."
	return confirm(message, help)
}
