package report

import (
	"slices"
	"strings"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// UserLoad is one caretaker's duty count per day type
type UserLoad struct {
	User   scheduler.UserID
	Counts map[scheduler.DayType]int
	Total  int
}

// Breakdown counts duties per caretaker per day type. Users appear in roster
// order, followed by anyone on duty who is not on the roster, sorted.
func Breakdown(entries []scheduler.Entry, roster []scheduler.UserID) []UserLoad {
	byType := scheduler.NewSchedule(entries, nil).TypeBreakdown()

	users := slices.Clone(roster)
	var extra []scheduler.UserID
	for user := range byType {
		if !slices.Contains(roster, user) {
			extra = append(extra, user)
		}
	}
	slices.Sort(extra)
	users = append(users, extra...)

	loads := make([]UserLoad, 0, len(users))
	for _, user := range users {
		load := UserLoad{User: user, Counts: make(map[scheduler.DayType]int, len(scheduler.DayTypeOrder))}
		for _, dayType := range scheduler.DayTypeOrder {
			n := byType[user][dayType]
			load.Counts[dayType] = n
			load.Total += n
		}
		loads = append(loads, load)
	}
	return loads
}

// PairCount is how often a primary/secondary level combination occurred
type PairCount struct {
	Pair  scheduler.LevelPair
	Count int
}

// Pairs counts entries per (primary level, secondary level), best pairs first.
// Entries with an unknown level are not counted.
func Pairs(entries []scheduler.Entry) []PairCount {
	counts := scheduler.NewSchedule(entries, nil).PairCounts()

	pairs := make([]PairCount, 0, len(counts))
	for pair, n := range counts {
		pairs = append(pairs, PairCount{Pair: pair, Count: n})
	}
	slices.SortFunc(pairs, func(a, b PairCount) int {
		if a.Pair.Primary != b.Pair.Primary {
			return int(a.Pair.Primary) - int(b.Pair.Primary)
		}
		return int(a.Pair.Secondary) - int(b.Pair.Secondary)
	})
	return pairs
}

// DutyDates returns the dates each user is on duty, in date order
func DutyDates(entries []scheduler.Entry) map[scheduler.UserID][]string {
	dates := make(map[scheduler.UserID][]string)
	for _, e := range entries {
		for _, user := range []scheduler.UserID{e.Primary, e.Secondary} {
			if user != "" {
				dates[user] = append(dates[user], e.Date)
			}
		}
	}
	for user := range dates {
		slices.Sort(dates[user])
	}
	return dates
}

// ParseEventSummary reads a calendar event title like "Adam & Logan" as a
// primary and secondary. names maps display names to usernames; unknown
// names are kept as written. ok is false unless there are exactly two names.
func ParseEventSummary(summary string, names map[string]string) (scheduler.Assignment, bool) {
	parts := strings.Split(summary, " & ")
	if len(parts) != 2 {
		return scheduler.Assignment{}, false
	}

	var users [2]scheduler.UserID
	for i, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return scheduler.Assignment{}, false
		}
		if username, ok := names[name]; ok {
			name = username
		}
		users[i] = scheduler.UserID(name)
	}

	return scheduler.Assignment{
		Primary:        users[0],
		Secondary:      users[1],
		PrimaryLevel:   scheduler.LevelUnset,
		SecondaryLevel: scheduler.LevelUnset,
	}, true
}
