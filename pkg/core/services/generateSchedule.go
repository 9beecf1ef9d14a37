package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
	"github.com/jakechorley/duty-rota/pkg/preferences"
)

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	PeriodReader
	PeriodWriter
}

// GenerateScheduleOptions controls where responses come from and whether results are saved
type GenerateScheduleOptions struct {
	// CSV, when set, is read instead of the responses spreadsheet
	CSV io.Reader

	// Continue carries the latest stored period into the run as the prior schedule
	Continue bool

	// DryRun skips saving the schedule
	DryRun bool
}

// GenerateScheduleResult contains the run outcome and what was saved
type GenerateScheduleResult struct {
	// PeriodID is empty when nothing was saved
	PeriodID      string
	PriorPeriodID string
	Roster        []scheduler.UserID
	Outcome       *scheduler.Outcome
	Overrides     []preferences.OverrideChange
	Skipped       []preferences.SkippedColumn
	Comments      map[scheduler.UserID]string
}

// GenerateSchedule reads survey responses, runs the scheduler and stores the new period.
// If opts.DryRun is true the schedule is not saved.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	source ResponseSource,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateScheduleOptions,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.Bool("csv", opts.CSV != nil),
		zap.Bool("continue", opts.Continue),
		zap.Bool("dry_run", opts.DryRun))

	// Step 1: Read the survey
	table, err := readResponses(source, cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed survey responses",
		zap.Int("caretakers", len(table.Roster)),
		zap.Int("dates", len(table.Days)))

	for _, skipped := range table.Skipped {
		logger.Warn("Skipped survey column",
			zap.String("header", skipped.Header),
			zap.String("reason", skipped.Reason))
	}

	// Step 2: Apply day overrides
	changes, err := preferences.ApplyOverrides(table, cfg.DayOverrides)
	if err != nil {
		return nil, fmt.Errorf("failed to apply day overrides: %w", err)
	}
	for _, change := range changes {
		if change.Closed {
			logger.Info("Date closed by override", zap.String("date", change.Date))
			continue
		}
		logger.Info("Date reclassified by override",
			zap.String("date", change.Date),
			zap.String("from", change.From.String()),
			zap.String("to", change.To.String()))
	}

	result := &GenerateScheduleResult{
		Roster:    table.Roster,
		Overrides: changes,
		Skipped:   table.Skipped,
		Comments:  table.Comments,
	}

	// Step 3: Carry the previous period forward
	var prior []scheduler.Entry
	if opts.Continue {
		prior, result.PriorPeriodID, err = priorEntries(ctx, database, table.Days, logger)
		if err != nil {
			return nil, err
		}
	}

	// Step 4: Run the scheduler
	recency := cfg.RecencyOrDefault()
	input := scheduler.Input{
		Roster: table.Roster,
		Days:   table.Days,
		Prior:  prior,
	}
	schedulerOpts := scheduler.Options{
		Recency:              scheduler.RecencyRule{Radius: recency.Radius, Limit: recency.Limit},
		AllowMissingDayTypes: cfg.AllowMissingDayTypes,
	}

	logger.Info("Running scheduler",
		zap.Int("caretakers", len(input.Roster)),
		zap.Int("dates", len(input.Days)),
		zap.Int("prior_dates", len(input.Prior)))

	outcome, err := scheduler.Run(input, schedulerOpts)
	if err != nil {
		return nil, fmt.Errorf("scheduling failed: %w", err)
	}
	result.Outcome = outcome

	logOutcome(logger, outcome)

	// Step 5: Save
	if opts.DryRun {
		logger.Info("Dry run mode - schedule not saved")
		return result, nil
	}

	period, err := savePeriod(ctx, database, db.SourceSurvey, outcome.Schedule.NewEntries())
	if err != nil {
		return nil, err
	}
	result.PeriodID = period.ID

	logger.Info("Schedule saved",
		zap.String("period_id", period.ID),
		zap.String("start", period.Start),
		zap.String("end", period.End))

	return result, nil
}

func readResponses(source ResponseSource, cfg *config.Config, opts GenerateScheduleOptions, logger *zap.Logger) (*preferences.Table, error) {
	parseOpts := preferences.ParseOptions{
		PeriodStart: cfg.StartDate(),
		EmailDomain: cfg.EmailDomain,
	}

	if opts.CSV != nil {
		logger.Debug("Reading survey responses from CSV")
		table, err := preferences.ReadCSV(opts.CSV, parseOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to read survey responses: %w", err)
		}
		return table, nil
	}

	if source == nil {
		return nil, fmt.Errorf("no response source configured")
	}

	logger.Debug("Fetching survey responses", zap.String("sheet_id", cfg.ResponsesSheetID))
	rows, err := source.ReadResponses(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch survey responses: %w", err)
	}

	table, err := preferences.Parse(rows, parseOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse survey responses: %w", err)
	}
	return table, nil
}

// priorEntries loads the latest stored period, keeping only entries dated
// before the first date being scheduled
func priorEntries(ctx context.Context, database PeriodReader, days []scheduler.DayRecord, logger *zap.Logger) ([]scheduler.Entry, string, error) {
	logger.Debug("Fetching periods")
	periods, err := database.GetPeriods(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch periods: %w", err)
	}

	latest := db.LatestPeriod(periods)
	if latest == nil {
		return nil, "", fmt.Errorf("no stored periods to continue from")
	}

	entries, err := loadEntries(ctx, database, latest.ID)
	if err != nil {
		return nil, "", err
	}

	first := ""
	for _, day := range days {
		if first == "" || day.Date < first {
			first = day.Date
		}
	}

	prior := make([]scheduler.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Date < first {
			prior = append(prior, e)
		}
	}

	logger.Info("Continuing from period",
		zap.String("period_id", latest.ID),
		zap.Int("carried_dates", len(prior)),
		zap.Int("dropped_dates", len(entries)-len(prior)))

	return prior, latest.ID, nil
}

func logOutcome(logger *zap.Logger, outcome *scheduler.Outcome) {
	for _, group := range outcome.Groups {
		logger.Info("Scheduled day type",
			zap.String("type", group.Type.String()),
			zap.Int("dates", group.Dates),
			zap.Int("quota", group.Quota),
			zap.Int("quota_removals", len(group.Removals)))
	}

	for _, day := range outcome.Days {
		order := make([]string, len(day.Order))
		for i, user := range day.Order {
			order[i] = string(user)
		}
		logger.Debug("Date searched",
			zap.String("date", day.Date),
			zap.String("type", day.Type.String()),
			zap.Int("score", day.Score),
			zap.Int("anchor", day.Anchor),
			zap.Strings("order", order),
			zap.String("level", day.Level.String()),
			zap.String("state", day.State.String()),
			zap.String("primary", string(day.Assignment.Primary)),
			zap.String("secondary", string(day.Assignment.Secondary)))
	}

	for _, entry := range outcome.Unfilled {
		logger.Warn("Date left short",
			zap.String("date", entry.Date),
			zap.String("type", entry.Type.String()),
			zap.Int("filled_slots", entry.FilledSlots()))
	}

	for _, verr := range outcome.ValidationErrors {
		logger.Warn("Validation error",
			zap.String("rule", verr.Rule),
			zap.Int("position", verr.Position),
			zap.String("date", verr.Date),
			zap.String("user", string(verr.User)),
			zap.String("description", verr.Description))
	}

	logger.Info("Scheduling completed",
		zap.Bool("complete", outcome.Complete()),
		zap.Int("unfilled", len(outcome.Unfilled)),
		zap.Int("validation_errors", len(outcome.ValidationErrors)))
}
