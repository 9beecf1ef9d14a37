package report

import (
	"strconv"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// Tab titles of an exported schedule
const (
	TabCaretakerSchedule = "CF Schedule"
	TabDaySchedule       = "Day Schedule"
	TabDayBreakdown      = "Day Breakdown"
)

// Tab is one sheet of string cells, header row first
type Tab struct {
	Title string
	Rows  [][]string
}

// Workbook is the export of one schedule
type Workbook struct {
	Tabs []Tab
}

// Tab returns the tab with the given title
func (w *Workbook) Tab(title string) (Tab, bool) {
	for _, t := range w.Tabs {
		if t.Title == title {
			return t, true
		}
	}
	return Tab{}, false
}

// BuildWorkbook renders a schedule as the three export tabs:
//
//	CF Schedule    one column per caretaker listing their duty dates
//	Day Schedule   one row per date with both caretakers, their levels and the day type
//	Day Breakdown  one row per day type plus TotalDays, one column per caretaker
func BuildWorkbook(entries []scheduler.Entry, roster []scheduler.UserID) *Workbook {
	loads := Breakdown(entries, roster)

	users := make([]scheduler.UserID, len(loads))
	for i, load := range loads {
		users[i] = load.User
	}

	return &Workbook{Tabs: []Tab{
		caretakerScheduleTab(entries, users),
		dayScheduleTab(entries),
		dayBreakdownTab(loads),
	}}
}

func caretakerScheduleTab(entries []scheduler.Entry, users []scheduler.UserID) Tab {
	dates := DutyDates(entries)

	header := make([]string, len(users))
	longest := 0
	for i, user := range users {
		header[i] = string(user)
		longest = max(longest, len(dates[user]))
	}

	rows := [][]string{header}
	for r := 0; r < longest; r++ {
		row := make([]string, len(users))
		for i, user := range users {
			if r < len(dates[user]) {
				row[i] = dates[user][r]
			}
		}
		rows = append(rows, row)
	}

	return Tab{Title: TabCaretakerSchedule, Rows: rows}
}

func dayScheduleTab(entries []scheduler.Entry) Tab {
	rows := [][]string{{"Date", "CF1", "CF2", "CF1 Pref", "CF2 Pref", "Type"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date,
			string(e.Primary),
			string(e.Secondary),
			e.PrimaryLevel.String(),
			e.SecondaryLevel.String(),
			e.Type.String(),
		})
	}
	return Tab{Title: TabDaySchedule, Rows: rows}
}

func dayBreakdownTab(loads []UserLoad) Tab {
	header := []string{""}
	for _, load := range loads {
		header = append(header, string(load.User))
	}

	rows := [][]string{header}
	for _, dayType := range scheduler.DayTypeOrder {
		row := []string{dayType.String()}
		for _, load := range loads {
			row = append(row, strconv.Itoa(load.Counts[dayType]))
		}
		rows = append(rows, row)
	}

	total := []string{"TotalDays"}
	for _, load := range loads {
		total = append(total, strconv.Itoa(load.Total))
	}
	rows = append(rows, total)

	return Tab{Title: TabDayBreakdown, Rows: rows}
}
