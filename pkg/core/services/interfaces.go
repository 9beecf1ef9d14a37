package services

import (
	"time"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/clients/calendarclient"
	"github.com/jakechorley/duty-rota/pkg/report"
)

// ResponseSource provides the raw survey response table
type ResponseSource interface {
	ReadResponses(cfg *config.Config) ([][]string, error)
}

// SchedulePublisher writes a rendered schedule to a spreadsheet
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, workbook *report.Workbook) error
}

// EventSource lists calendar events
type EventSource interface {
	ListEvents(calendarID string, from time.Time) ([]calendarclient.Event, error)
}

// GmailClient defines the operations needed to send emails
type GmailClient interface {
	SendEmail(to, subject, body string) error
}
