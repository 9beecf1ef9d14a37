package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/services"
)

// ViewCmd creates the view command
func ViewCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "view [period_id]",
		Short: "View a stored schedule (defaults to latest period)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodID := periodArg(args)
			app.Logger.Debug("view command", zap.String("period_id", periodID))

			view, err := services.ViewSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, periodID)
			if err != nil {
				return fmt.Errorf("failed to view schedule: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n📅 Period %s\n\n", view.Period.ID)
			fmt.Fprintf(out, "Dates:   %s to %s\n", view.Period.Start, view.Period.End)
			fmt.Fprintf(out, "Source:  %s\n", view.Period.Source)
			fmt.Fprintf(out, "Created: %s\n", view.Period.CreatedAt)
			if view.Previous != nil {
				fmt.Fprintf(out, "Follows: %s (%s to %s)\n", view.Previous.ID, view.Previous.Start, view.Previous.End)
			}
			fmt.Fprintln(out)

			printSchedule(out, view.Entries)

			fmt.Fprintf(out, "👥 Duties per caretaker:\n\n")
			printBreakdown(out, view.Loads)

			fmt.Fprintf(out, "⚖️  Fairness:\n")
			printFairness(out, view.Fairness)

			if len(view.Pairs) > 0 {
				fmt.Fprintf(out, "🤝 Preference pairs:\n")
				printPairs(out, view.Pairs)
			}

			return nil
		},
	}
}
