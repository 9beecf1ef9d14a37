package db

import "context"

// PeriodStore defines the interface for period database operations
type PeriodStore interface {
	GetPeriods(ctx context.Context) ([]Period, error)
	InsertPeriod(ctx context.Context, period *Period) error
}

// ScheduleStore defines the interface for scheduled day database operations
type ScheduleStore interface {
	GetScheduledDays(ctx context.Context, periodID string) ([]ScheduledDay, error)
	InsertScheduledDays(ctx context.Context, days []ScheduledDay) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	PeriodStore
	ScheduleStore
}
