// Package preferences turns survey responses into scheduler input.
//
// A response table has one row per caretaker and one column per date. Date
// columns are titled like "Which nights can you work? [Friday 9/18]"; the
// day name picks the day type and the month/day is resolved against the
// period start.
package preferences

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// Well known survey columns
const (
	ColumnTimestamp = "Timestamp"
	ColumnUsername  = "Username"
	ColumnName      = "Name"
	ColumnComments  = "Additional comments"
)

var (
	ErrNoUsernameColumn = errors.New("username column missing")
	ErrNoResponses      = errors.New("no responses")
	ErrDuplicateDate    = errors.New("date appears in more than one column")
)

var dateHeader = regexp.MustCompile(`\[([A-Za-z]+) (\d{1,2})/(\d{1,2})`)

// ParseOptions controls how a response table is interpreted
type ParseOptions struct {
	// PeriodStart resolves month/day headers. Dates before it roll into the next year.
	PeriodStart time.Time

	// EmailDomain is appended to usernames without one
	EmailDomain string
}

// Table is a parsed response table
type Table struct {
	Roster   []scheduler.UserID
	Days     []scheduler.DayRecord
	Comments map[scheduler.UserID]string

	// Skipped lists headers that were not used, with the reason
	Skipped []SkippedColumn
}

// SkippedColumn is a column Parse ignored
type SkippedColumn struct {
	Header string
	Reason string
}

// NormalizeUser trims a username and appends @domain when it has no domain
func NormalizeUser(name, domain string) scheduler.UserID {
	name = strings.TrimSpace(name)
	if name == "" || domain == "" || strings.Contains(name, "@") {
		return scheduler.UserID(name)
	}
	return scheduler.UserID(name + "@" + domain)
}

// ReadCSV reads an exported response CSV and parses it
func ReadCSV(r io.Reader, opts ParseOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read responses csv: %w", err)
	}

	return Parse(rows, opts)
}

type dateColumn struct {
	index int
	date  string
	typ   scheduler.DayType
}

// Parse converts a header row plus response rows into a Table.
// Roster order follows row order and day order follows column order.
// A date column with any blank cell is skipped, as are unrecognised headers.
func Parse(rows [][]string, opts ParseOptions) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrNoResponses)
	}

	header := rows[0]
	responses := rows[1:]
	if len(responses) == 0 {
		return nil, ErrNoResponses
	}

	table := &Table{Comments: make(map[scheduler.UserID]string)}

	usernameCol, commentsCol := -1, -1
	var columns []dateColumn
	seenDates := make(map[string]string)

	for i, raw := range header {
		title := strings.TrimSpace(raw)
		switch {
		case strings.EqualFold(title, ColumnUsername):
			usernameCol = i
			continue
		case strings.EqualFold(title, ColumnComments):
			commentsCol = i
			continue
		case strings.EqualFold(title, ColumnTimestamp), strings.EqualFold(title, ColumnName):
			continue
		}

		col, ok, err := parseDateHeader(i, title, opts.PeriodStart)
		if err != nil {
			return nil, err
		}
		if !ok {
			table.Skipped = append(table.Skipped, SkippedColumn{Header: title, Reason: "not a date column"})
			continue
		}
		if prev, dup := seenDates[col.date]; dup {
			return nil, fmt.Errorf("%w: %s in %q and %q", ErrDuplicateDate, col.date, prev, title)
		}
		seenDates[col.date] = title

		if blank := blankCells(responses, i); blank > 0 {
			table.Skipped = append(table.Skipped, SkippedColumn{
				Header: title,
				Reason: fmt.Sprintf("%d blank responses", blank),
			})
			continue
		}
		columns = append(columns, col)
	}

	if usernameCol < 0 {
		return nil, ErrNoUsernameColumn
	}

	for r, row := range responses {
		user := NormalizeUser(cell(row, usernameCol), opts.EmailDomain)
		if user == "" {
			return nil, fmt.Errorf("row %d: blank username", r+2)
		}
		table.Roster = append(table.Roster, user)
		if comment := cell(row, commentsCol); comment != "" {
			table.Comments[user] = comment
		}
	}

	for _, col := range columns {
		day := scheduler.DayRecord{
			Date:        col.date,
			Type:        col.typ,
			Preferences: make(map[scheduler.UserID]scheduler.PreferenceLevel, len(responses)),
		}
		for r, row := range responses {
			level, err := scheduler.ParsePreferenceLevel(cell(row, col.index))
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", r+2, col.date, err)
			}
			day.Preferences[table.Roster[r]] = level
		}
		table.Days = append(table.Days, day)
	}

	return table, nil
}

// parseDateHeader extracts the date and day type of a "[Friday 9/18]" header.
// ok is false when the header is not a date header.
func parseDateHeader(index int, title string, periodStart time.Time) (dateColumn, bool, error) {
	m := dateHeader.FindStringSubmatch(title)
	if m == nil {
		return dateColumn{}, false, nil
	}

	dayType, err := scheduler.DayTypeForName(m[1])
	if err != nil {
		return dateColumn{}, false, fmt.Errorf("header %q: %w", title, err)
	}

	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	date, err := ResolveDate(month, day, periodStart)
	if err != nil {
		return dateColumn{}, false, fmt.Errorf("header %q: %w", title, err)
	}

	return dateColumn{index: index, date: date.Format(scheduler.DateLayout), typ: dayType}, true, nil
}

// ResolveDate places month/day in the year of periodStart, or the following
// year when that would fall before periodStart
func ResolveDate(month, day int, periodStart time.Time) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid month/day %d/%d", month, day)
	}

	start := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, time.UTC)
	date := time.Date(start.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		return time.Time{}, fmt.Errorf("invalid month/day %d/%d", month, day)
	}
	if date.Before(start) {
		date = date.AddDate(1, 0, 0)
	}
	return date, nil
}

func blankCells(rows [][]string, col int) int {
	blank := 0
	for _, row := range rows {
		if cell(row, col) == "" {
			blank++
		}
	}
	return blank
}

// cell returns the trimmed value at col, or "" when the row is short
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
