package cli

import (
	"errors"
	"log/slog"

	"github.com/alexanderramin/lumina/internal/service"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned by the bare command when stdin/stdout is
// not a terminal.
var ErrNotInteractive = errors.New("lumina needs an interactive terminal; try 'lumina status'")

// App holds everything the CLI commands need.
type App struct {
	Machine       *service.SessionMachine
	Prompter      Prompter
	Logger        *slog.Logger
	IsInteractive bool
}

// NewRootCmd creates the top-level "lumina" command. Run bare, it starts the
// interactive learning session.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lumina",
		Short:         "Adaptive daily AI lessons in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive || app.Prompter == nil {
				return ErrNotInteractive
			}
			return newSession(app, cmd.OutOrStdout()).run(cmd.Context())
		},
	}

	root.AddCommand(
		newStatusCmd(app),
		newCurriculumCmd(app),
		newResetCmd(app),
	)

	return root
}
