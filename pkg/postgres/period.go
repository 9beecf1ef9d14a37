package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/duty-rota/pkg/db"
)

// GetPeriods retrieves all period records ordered by start date
func (d *DB) GetPeriods(ctx context.Context) ([]db.Period, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start_date, end_date, source, created_at
		FROM period
		ORDER BY start_date, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	var periods []db.Period
	for rows.Next() {
		var p db.Period
		var start, end, createdAt time.Time
		if err := rows.Scan(&p.ID, &start, &end, &p.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		p.Start = start.Format("2006-01-02")
		p.End = end.Format("2006-01-02")
		p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating periods: %w", err)
	}

	return periods, nil
}

// InsertPeriod inserts a new period record. CreatedAt is filled in by the database.
func (d *DB) InsertPeriod(ctx context.Context, period *db.Period) error {
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, `
		INSERT INTO period (id, start_date, end_date, source)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, period.ID, period.Start, period.End, period.Source).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert period: %w", err)
	}
	period.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return nil
}
