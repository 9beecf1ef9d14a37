package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// PublishScheduleResult describes what was published
type PublishScheduleResult struct {
	PeriodID string
	Dates    int
	Tabs     []string
}

// PublishSchedule renders a stored period as a workbook and writes it to the schedule spreadsheet.
// If periodID is empty, it defaults to the latest period.
func PublishSchedule(
	ctx context.Context,
	database PeriodReader,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	periodID string,
) (*PublishScheduleResult, error) {
	logger.Debug("Starting publishSchedule", zap.String("period_id", periodID))

	if cfg.ScheduleSheetID == "" {
		return nil, fmt.Errorf("scheduleSheetID is not configured")
	}

	period, entries, err := loadPeriod(ctx, database, periodID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found target period",
		zap.String("id", period.ID),
		zap.String("start", period.Start),
		zap.String("end", period.End),
		zap.Int("dates", len(entries)))

	if len(entries) == 0 {
		return nil, fmt.Errorf("period %s has no scheduled days", period.ID)
	}

	workbook := report.BuildWorkbook(entries, rosterFromConfig(cfg))

	logger.Info("Publishing schedule",
		zap.String("period_id", period.ID),
		zap.String("sheet_id", cfg.ScheduleSheetID))
	if err := publisher.PublishSchedule(cfg.ScheduleSheetID, workbook); err != nil {
		return nil, err
	}

	tabs := make([]string, len(workbook.Tabs))
	for i, tab := range workbook.Tabs {
		tabs[i] = tab.Title
	}

	logger.Info("Schedule published", zap.Strings("tabs", tabs))

	return &PublishScheduleResult{
		PeriodID: period.ID,
		Dates:    len(entries),
		Tabs:     tabs,
	}, nil
}
