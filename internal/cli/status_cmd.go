package cli

import (
	"fmt"

	"github.com/alexanderramin/lumina/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your profile, expertise and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Machine.Load(cmd.Context()); err != nil {
				return err
			}
			view := app.Machine.ProfileView()
			if view.Profile.Name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No learner yet. Run lumina to sign in."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(view)+"\n")
			return nil
		},
	}
}

func newCurriculumCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "curriculum",
		Aliases: []string{"plan"},
		Short:   "Show your learning track and schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Machine.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCurriculum(app.Machine.Curriculum(), app.Machine.Profile().CurrentDay)+"\n")
			return nil
		},
	}
}
