package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// ScheduleView is a stored period with its reports
type ScheduleView struct {
	Period db.Period
	// Previous is the period before this one, nil for the first period
	Previous *db.Period
	Entries  []scheduler.Entry
	Loads    []report.UserLoad
	Pairs    []report.PairCount
	Fairness report.FairnessStats
}

// ViewSchedule loads a stored period and computes its reports.
// If periodID is empty, it defaults to the latest period.
func ViewSchedule(
	ctx context.Context,
	database PeriodReader,
	cfg *config.Config,
	logger *zap.Logger,
	periodID string,
) (*ScheduleView, error) {
	logger.Debug("Starting viewSchedule", zap.String("period_id", periodID))

	periods, err := database.GetPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch periods: %w", err)
	}

	period, err := db.FindPeriod(periods, periodID)
	if err != nil {
		return nil, err
	}

	entries, err := loadEntries(ctx, database, period.ID)
	if err != nil {
		return nil, err
	}

	loads := report.Breakdown(entries, rosterFromConfig(cfg))

	logger.Debug("Loaded period",
		zap.String("id", period.ID),
		zap.String("source", period.Source),
		zap.Int("dates", len(entries)),
		zap.Int("caretakers", len(loads)))

	return &ScheduleView{
		Period:   *period,
		Previous: db.PreviousPeriod(periods, period),
		Entries:  entries,
		Loads:    loads,
		Pairs:    report.Pairs(entries),
		Fairness: report.Fairness(loads),
	}, nil
}
