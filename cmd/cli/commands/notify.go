package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/services"
)

// NotifyCmd creates the notify command
func NotifyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify [period_id]",
		Short: "Email each caretaker their duty dates",
		Long:  "Email each caretaker on duty their dates. If no period_id is provided, uses the latest period.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodID := periodArg(args)
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("notify command",
				zap.String("period_id", periodID),
				zap.Bool("dry_run", dryRun))

			sent, failed, err := services.NotifyCaretakers(
				app.Ctx,
				app.Database,
				app.GmailClient,
				app.Cfg,
				app.Logger,
				periodID,
				dryRun,
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "\n🧪 DRY RUN - no emails sent\n\n")
			} else {
				fmt.Fprintf(out, "\n✓ Notifications completed!\n\n")
			}

			if len(sent) > 0 {
				fmt.Fprintf(out, "Emailed %d caretakers:\n", len(sent))
				for _, s := range sent {
					fmt.Fprintf(out, "  ✓ %s (%d dates)\n", s.Email, len(s.Dates))
				}
				fmt.Fprintln(out)
			}

			if len(failed) > 0 {
				fmt.Fprintf(out, "⚠️  Failed to send %d emails:\n", len(failed))
				for _, f := range failed {
					fmt.Fprintf(out, "  ✗ %s: %s\n", f.Email, f.Error)
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "List recipients without sending")

	return cmd
}
