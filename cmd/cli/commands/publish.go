package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [period_id]",
		Short: "Publish a schedule to Google Sheets",
		Long:  "Write the CF Schedule, Day Schedule and Day Breakdown tabs. If no period_id is provided, publishes the latest period.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodID := periodArg(args)
			app.Logger.Debug("publish command", zap.String("period_id", periodID))

			result, err := services.PublishSchedule(
				app.Ctx,
				app.Database,
				app.SheetsClient,
				app.Cfg,
				app.Logger,
				periodID,
			)
			if err != nil {
				return fmt.Errorf("failed to publish schedule: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Schedule Published Successfully\n\n")
			fmt.Fprintf(out, "Period ID: %s\n", result.PeriodID)
			fmt.Fprintf(out, "Dates:     %d\n", result.Dates)
			fmt.Fprintf(out, "Sheet ID:  %s\n", app.Cfg.ScheduleSheetID)
			fmt.Fprintf(out, "Tabs:      %v\n\n", result.Tabs)

			return nil
		},
	}
}
