package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// ImportCalendarResult contains the imported period
type ImportCalendarResult struct {
	PeriodID string
	Entries  []scheduler.Entry

	// Ignored lists the summaries of events that are not duty pairs
	Ignored []string
}

// ImportCalendar stores the duty events of a calendar as a period, so a
// schedule kept by hand can be continued by the scheduler.
// Events titled "A & B" become one date each; other events are ignored.
func ImportCalendar(
	ctx context.Context,
	events EventSource,
	database PeriodWriter,
	cfg *config.Config,
	logger *zap.Logger,
	from time.Time,
) (*ImportCalendarResult, error) {
	logger.Debug("Starting importCalendar", zap.String("from", from.Format(scheduler.DateLayout)))

	if cfg.CalendarID == "" {
		return nil, fmt.Errorf("calendarID is not configured")
	}

	logger.Debug("Fetching calendar events", zap.String("calendar_id", cfg.CalendarID))
	items, err := events.ListEvents(cfg.CalendarID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	logger.Debug("Found calendar events", zap.Int("count", len(items)))

	names := caretakerNames(cfg)
	result := &ImportCalendarResult{}
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		assignment, ok := report.ParseEventSummary(item.Summary, names)
		if !ok {
			result.Ignored = append(result.Ignored, item.Summary)
			logger.Debug("Ignoring event", zap.String("date", item.Date), zap.String("summary", item.Summary))
			continue
		}

		date, err := time.Parse(scheduler.DateLayout, item.Date)
		if err != nil {
			return nil, fmt.Errorf("event %q has invalid date %q: %w", item.Summary, item.Date, err)
		}

		if seen[item.Date] {
			logger.Warn("Duplicate duty event, keeping the first",
				zap.String("date", item.Date),
				zap.String("summary", item.Summary))
			continue
		}
		seen[item.Date] = true

		result.Entries = append(result.Entries, scheduler.Entry{
			Date:       item.Date,
			Type:       scheduler.DayTypeForWeekday(date.Weekday()),
			Assignment: assignment,
		})
	}

	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("no duty events found in calendar %s since %s", cfg.CalendarID, from.Format(scheduler.DateLayout))
	}

	period, err := savePeriod(ctx, database, db.SourceCalendar, result.Entries)
	if err != nil {
		return nil, err
	}
	result.PeriodID = period.ID

	logger.Info("Calendar imported",
		zap.String("period_id", period.ID),
		zap.Int("dates", len(result.Entries)),
		zap.Int("ignored", len(result.Ignored)))

	return result, nil
}
