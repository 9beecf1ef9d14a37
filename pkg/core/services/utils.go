package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
	"github.com/jakechorley/duty-rota/pkg/preferences"
)

// PeriodReader defines the database operations needed to read stored schedules
type PeriodReader interface {
	GetPeriods(ctx context.Context) ([]db.Period, error)
	GetScheduledDays(ctx context.Context, periodID string) ([]db.ScheduledDay, error)
}

// PeriodWriter defines the database operations needed to store a schedule
type PeriodWriter interface {
	InsertPeriod(ctx context.Context, period *db.Period) error
	InsertScheduledDays(ctx context.Context, days []db.ScheduledDay) error
}

// loadPeriod fetches a stored period and its entries.
// An empty periodID selects the latest period.
func loadPeriod(ctx context.Context, store PeriodReader, periodID string) (*db.Period, []scheduler.Entry, error) {
	periods, err := store.GetPeriods(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch periods: %w", err)
	}

	period, err := db.FindPeriod(periods, periodID)
	if err != nil {
		return nil, nil, err
	}

	entries, err := loadEntries(ctx, store, period.ID)
	if err != nil {
		return nil, nil, err
	}

	return period, entries, nil
}

func loadEntries(ctx context.Context, store PeriodReader, periodID string) ([]scheduler.Entry, error) {
	days, err := store.GetScheduledDays(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled days for period %s: %w", periodID, err)
	}

	entries, err := db.ToEntries(days)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheduled days for period %s: %w", periodID, err)
	}
	return entries, nil
}

// savePeriod stores a new period covering the entries
func savePeriod(ctx context.Context, store PeriodWriter, source string, entries []scheduler.Entry) (*db.Period, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries to save")
	}

	start, end := dateBounds(entries)
	period := &db.Period{
		ID:     uuid.New().String(),
		Start:  start,
		End:    end,
		Source: source,
	}

	if err := store.InsertPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	if err := store.InsertScheduledDays(ctx, db.NewScheduledDays(period.ID, entries)); err != nil {
		return nil, fmt.Errorf("failed to save scheduled days: %w", err)
	}

	return period, nil
}

// dateBounds returns the earliest and latest entry dates
func dateBounds(entries []scheduler.Entry) (string, string) {
	start, end := entries[0].Date, entries[0].Date
	for _, e := range entries[1:] {
		start = min(start, e.Date)
		end = max(end, e.Date)
	}
	return start, end
}

// rosterFromConfig returns the configured caretakers as normalized users, in config order
func rosterFromConfig(cfg *config.Config) []scheduler.UserID {
	seen := make(map[scheduler.UserID]bool, len(cfg.Caretakers))
	roster := make([]scheduler.UserID, 0, len(cfg.Caretakers))
	for _, ct := range cfg.Caretakers {
		user := preferences.NormalizeUser(ct.Username, cfg.EmailDomain)
		if !seen[user] {
			seen[user] = true
			roster = append(roster, user)
		}
	}
	return roster
}

// caretakerNames maps calendar display names to normalized users
func caretakerNames(cfg *config.Config) map[string]string {
	names := cfg.CaretakerUsernames()
	for name, username := range names {
		names[name] = string(preferences.NormalizeUser(username, cfg.EmailDomain))
	}
	return names
}
