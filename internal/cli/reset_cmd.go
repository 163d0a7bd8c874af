package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lumina/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase your profile and curriculum (cached lessons are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !yes {
				if !app.IsInteractive || app.Prompter == nil {
					return errors.New("refusing to reset without --yes")
				}
				ok, err := app.Prompter.Confirm(ctx, "Erase your profile and curriculum?")
				if errors.Is(err, ErrQuit) || (err == nil && !ok) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing changed."))
					return nil
				}
				if err != nil {
					return err
				}
			}

			if err := app.Machine.Load(ctx); err != nil {
				return err
			}
			if err := app.Machine.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Profile reset."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
