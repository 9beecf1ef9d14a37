package db

// Period sources
const (
	SourceSurvey   = "survey"
	SourceCalendar = "calendar"
)

// Period is one scheduling period (usually an academic quarter)
type Period struct {
	ID        string
	Start     string // 2006-01-02, first scheduled date
	End       string // 2006-01-02, last scheduled date
	Source    string
	CreatedAt string // RFC3339
}

// ScheduledDay is one date of a stored schedule. Levels are preference
// ordinals, or -1 when unknown (imported calendars).
type ScheduledDay struct {
	ID             string
	PeriodID       string
	Date           string
	DayType        string
	Primary        string
	Secondary      string
	PrimaryLevel   int
	SecondaryLevel int
}
