package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// uniformDay builds a day where every user has the same level
func uniformDay(date string, dayType DayType, users []UserID, level PreferenceLevel) DayRecord {
	prefs := make(map[UserID]PreferenceLevel, len(users))
	for _, u := range users {
		prefs[u] = level
	}
	return DayRecord{Date: date, Type: dayType, Preferences: prefs}
}

// weeklyDays builds n days of one type a week apart starting at start
func weeklyDays(t *testing.T, start string, n int, dayType DayType, users []UserID, level PreferenceLevel) []DayRecord {
	t.Helper()
	first, err := time.Parse(DateLayout, start)
	require.NoError(t, err)

	days := make([]DayRecord, n)
	for i := range days {
		date := first.AddDate(0, 0, 7*i).Format(DateLayout)
		days[i] = uniformDay(date, dayType, users, level)
	}
	return days
}

func users(ids ...string) []UserID {
	out := make([]UserID, len(ids))
	for i, id := range ids {
		out[i] = UserID(id)
	}
	return out
}

// someDayTypes are the default options with missing day types allowed, for
// runs that only exercise one or two groups
func someDayTypes() Options {
	opts := DefaultOptions()
	opts.AllowMissingDayTypes = true
	return opts
}
