package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-rota/pkg/db"
)

// GetScheduledDays retrieves the scheduled days of a period ordered by date
func (d *DB) GetScheduledDays(ctx context.Context, periodID string) ([]db.ScheduledDay, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, period_id, duty_date, day_type, primary_user, secondary_user, primary_level, secondary_level
		FROM scheduled_day
		WHERE period_id = $1
		ORDER BY duty_date
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled days: %w", err)
	}
	defer rows.Close()

	var days []db.ScheduledDay
	for rows.Next() {
		var sd db.ScheduledDay
		var date time.Time
		var primary, secondary *string
		var primaryLevel, secondaryLevel *int16
		if err := rows.Scan(&sd.ID, &sd.PeriodID, &date, &sd.DayType, &primary, &secondary, &primaryLevel, &secondaryLevel); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled day: %w", err)
		}
		sd.Date = date.Format("2006-01-02")
		sd.Primary = fromNullText(primary)
		sd.Secondary = fromNullText(secondary)
		sd.PrimaryLevel = fromNullLevel(primaryLevel)
		sd.SecondaryLevel = fromNullLevel(secondaryLevel)
		days = append(days, sd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduled days: %w", err)
	}

	return days, nil
}

// InsertScheduledDays inserts scheduled days in a single batch transaction
func (d *DB) InsertScheduledDays(ctx context.Context, days []db.ScheduledDay) error {
	if len(days) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, sd := range days {
		batch.Queue(`
			INSERT INTO scheduled_day (id, period_id, duty_date, day_type, primary_user, secondary_user, primary_level, secondary_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, sd.ID, sd.PeriodID, sd.Date, sd.DayType,
			toNullText(sd.Primary), toNullText(sd.Secondary),
			toNullLevel(sd.PrimaryLevel), toNullLevel(sd.SecondaryLevel))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert scheduled days: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func toNullText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Levels below zero are unknown and stored as NULL
func toNullLevel(level int) *int16 {
	if level < 0 {
		return nil
	}
	l := int16(level)
	return &l
}

func fromNullLevel(level *int16) int {
	if level == nil {
		return -1
	}
	return int(*level)
}
