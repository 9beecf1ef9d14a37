package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/services"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a duty schedule from survey responses",
		Long: `Read the availability survey, assign two caretakers to every date and save the new period.
Responses are read from the configured spreadsheet unless --csv is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, _ := cmd.Flags().GetString("csv")
			continuePrior, _ := cmd.Flags().GetBool("continue")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("generate command",
				zap.String("csv", csvPath),
				zap.Bool("continue", continuePrior),
				zap.Bool("dry_run", dryRun))

			opts := services.GenerateScheduleOptions{
				Continue: continuePrior,
				DryRun:   dryRun,
			}
			if csvPath != "" {
				f, err := os.Open(csvPath)
				if err != nil {
					return fmt.Errorf("failed to open responses file: %w", err)
				}
				defer f.Close()
				opts.CSV = f
			}

			result, err := services.GenerateSchedule(
				app.Ctx,
				app.Database,
				app.SheetsClient,
				app.Cfg,
				app.Logger,
				opts,
			)
			if err != nil {
				return fmt.Errorf("failed to generate schedule: %w", err)
			}

			outcome := result.Outcome
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "\n🎯 Duty Schedule\n\n")
			fmt.Fprintf(out, "Caretakers:  %d\n", len(result.Roster))
			fmt.Fprintf(out, "Dates:       %d\n", len(outcome.Schedule.NewEntries()))
			if result.PriorPeriodID != "" {
				fmt.Fprintf(out, "Continues:   %s\n", result.PriorPeriodID)
			}
			switch {
			case dryRun:
				fmt.Fprintf(out, "Mode:        🧪 DRY RUN (not saved)\n")
			case outcome.Complete():
				fmt.Fprintf(out, "Status:      ✅ SAVED as period %s\n", result.PeriodID)
			default:
				fmt.Fprintf(out, "Status:      ⚠️  SAVED as period %s with %d short dates\n", result.PeriodID, len(outcome.Unfilled))
			}
			fmt.Fprintln(out)

			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "⚠️  Skipped survey columns (%d):\n", len(result.Skipped))
				for _, s := range result.Skipped {
					fmt.Fprintf(out, "  • %s: %s\n", s.Header, s.Reason)
				}
				fmt.Fprintln(out)
			}

			if len(result.Overrides) > 0 {
				fmt.Fprintf(out, "📌 Day overrides:\n")
				for _, o := range result.Overrides {
					if o.Closed {
						fmt.Fprintf(out, "  • %s closed\n", o.Date)
					} else {
						fmt.Fprintf(out, "  • %s %s → %s\n", o.Date, o.From, o.To)
					}
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "📊 Quotas:\n")
			for _, g := range outcome.Groups {
				fmt.Fprintf(out, "  %-10s %3d dates, at most %d each\n", g.Type, g.Dates, g.Quota)
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "📅 Schedule:\n\n")
			printSchedule(out, outcome.Schedule.Entries())

			if len(outcome.ValidationErrors) > 0 {
				fmt.Fprintf(out, "⚠️  Validation Errors (%d):\n", len(outcome.ValidationErrors))
				for _, verr := range outcome.ValidationErrors {
					fmt.Fprintf(out, "  • %s (%s) %s: %s\n", verr.Date, verr.Rule, verr.User, verr.Description)
				}
				fmt.Fprintln(out)
			}

			entries := outcome.Schedule.NewEntries()
			loads := report.Breakdown(entries, result.Roster)
			fmt.Fprintf(out, "👥 Duties per caretaker:\n\n")
			printBreakdown(out, loads)
			fmt.Fprintf(out, "⚖️  Fairness:\n")
			printFairness(out, report.Fairness(loads))

			if len(result.Comments) > 0 {
				fmt.Fprintf(out, "💬 Comments:\n")
				for _, user := range result.Roster {
					if comment, ok := result.Comments[user]; ok {
						fmt.Fprintf(out, "  %s: %s\n", user, comment)
					}
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().String("csv", "", "Read survey responses from an exported CSV file")
	cmd.Flags().Bool("continue", false, "Carry the latest stored period forward for quotas and recency")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}
