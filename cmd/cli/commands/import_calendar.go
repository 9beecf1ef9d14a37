package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/core/services"
)

// ImportCalendarCmd creates the importCalendar command
func ImportCalendarCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importCalendar <from_date>",
		Short: "Store duty events from Google Calendar as a period",
		Long:  `Read events titled "Name & Name" from the configured calendar, starting at from_date (YYYY-MM-DD).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(scheduler.DateLayout, args[0])
			if err != nil {
				return fmt.Errorf("from_date must be YYYY-MM-DD: %w", err)
			}

			app.Logger.Debug("importCalendar command", zap.String("from", args[0]))

			result, err := services.ImportCalendar(
				app.Ctx,
				app.CalendarClient,
				app.Database,
				app.Cfg,
				app.Logger,
				from,
			)
			if err != nil {
				return fmt.Errorf("failed to import calendar: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Calendar Imported\n\n")
			fmt.Fprintf(out, "Period ID: %s\n", result.PeriodID)
			fmt.Fprintf(out, "Dates:     %d\n", len(result.Entries))
			fmt.Fprintf(out, "Ignored:   %d events\n\n", len(result.Ignored))

			printSchedule(out, result.Entries)

			return nil
		},
	}
}
