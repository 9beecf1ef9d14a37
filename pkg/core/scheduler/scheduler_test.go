package scheduler

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignmentsByDate(outcome *Outcome) map[string][2]UserID {
	out := make(map[string][2]UserID)
	for _, e := range outcome.Schedule.NewEntries() {
		out[e.Date] = [2]UserID{e.Primary, e.Secondary}
	}
	return out
}

func TestRun_BalancesEvenlyWhenEveryoneIsKeen(t *testing.T) {
	roster := users("a", "b", "c", "d", "e")
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-11"}
	days := make([]DayRecord, len(dates))
	for i, d := range dates {
		days[i] = uniformDay(d, Weekday, roster, MostPreferred)
	}

	outcome, err := Run(Input{Roster: roster, Days: days}, someDayTypes())
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Quotas()[Weekday])
	assert.True(t, outcome.Complete())

	expected := map[string][2]UserID{
		"2024-01-01": {"a", "b"},
		"2024-01-02": {"c", "d"},
		"2024-01-04": {"e", "d"},
		"2024-01-07": {"c", "b"},
		"2024-01-08": {"a", "b"},
		"2024-01-09": {"c", "d"},
		"2024-01-11": {"e", "a"},
	}
	assert.Equal(t, expected, assignmentsByDate(outcome))

	totals := outcome.Schedule.UserTotals()
	var counts []int
	for _, u := range roster {
		counts = append(counts, totals[u])
	}
	assert.LessOrEqual(t, slices.Max(counts)-slices.Min(counts), 1, "totals %v", counts)

	for _, verr := range outcome.ValidationErrors {
		assert.Equal(t, RuleRecency, verr.Rule, "only positional recency windows may grow after assignment")
	}
}

func TestRun_WraparoundReversesTraversal(t *testing.T) {
	roster := users("a", "b", "c")
	days := []DayRecord{
		uniformDay("2024-01-01", Weekday, roster, MostPreferred),
		uniformDay("2024-01-02", Weekday, roster, MostPreferred),
		uniformDay("2024-01-04", Weekday, roster, MostPreferred),
	}

	outcome, err := Run(Input{Roster: roster, Days: days}, someDayTypes())
	require.NoError(t, err)
	require.Len(t, outcome.Days, 3)

	// The cursor runs off the end while filling the second date
	assert.Equal(t, users("a", "b", "c"), outcome.Days[1].Order)
	assert.Equal(t, users("c", "b", "a"), outcome.Days[2].Order)
	assert.Equal(t, 2, outcome.Days[2].Anchor)

	expected := map[string][2]UserID{
		"2024-01-01": {"a", "b"},
		"2024-01-02": {"c", "b"},
		"2024-01-04": {"a", "c"},
	}
	assert.Equal(t, expected, assignmentsByDate(outcome))

	assert.Equal(t, users("c", "b", "a"), outcome.Rotation.Order)
	assert.Equal(t, Reversed, outcome.Rotation.Direction)
	assert.Equal(t, 0, outcome.Rotation.Cursor)

	require.Len(t, outcome.Groups, 1)
	removals := outcome.Groups[0].Removals
	require.Len(t, removals, 2)
	assert.Equal(t, UserID("a"), removals[0].User)
	assert.Equal(t, UserID("b"), removals[1].User)
}

func TestRun_CursorPersistsAcrossDayTypes(t *testing.T) {
	roster := users("a", "b", "c")
	days := []DayRecord{
		uniformDay("2024-01-05", Weekend, roster, MostPreferred),
		uniformDay("2024-01-08", Weekday, roster, MostPreferred),
	}

	outcome, err := Run(Input{Roster: roster, Days: days}, someDayTypes())
	require.NoError(t, err)
	require.Len(t, outcome.Days, 2)

	assert.Equal(t, Weekend, outcome.Days[0].Type, "weekends are scheduled first")
	assert.Equal(t, 0, outcome.Days[0].Anchor)
	assert.Equal(t, Weekday, outcome.Days[1].Type)
	assert.Equal(t, 2, outcome.Days[1].Anchor)

	expected := map[string][2]UserID{
		"2024-01-05": {"a", "b"},
		"2024-01-08": {"c", "b"},
	}
	assert.Equal(t, expected, assignmentsByDate(outcome))
}

func TestRun_ProcessesGroupsInFixedOrder(t *testing.T) {
	roster := users("a", "b", "c", "d")
	days := []DayRecord{
		uniformDay("2024-01-01", Weekday, roster, MostPreferred),
		uniformDay("2024-01-03", Wednesday, roster, MostPreferred),
		uniformDay("2024-01-05", Weekend, roster, MostPreferred),
	}

	outcome, err := Run(Input{Roster: roster, Days: days}, DefaultOptions())
	require.NoError(t, err)

	var types []DayType
	for _, g := range outcome.Groups {
		types = append(types, g.Type)
	}
	assert.Equal(t, []DayType{Weekend, Wednesday, Weekday}, types)
}

func TestRun_HardestDateScheduledFirst(t *testing.T) {
	roster := users("a", "b", "c", "d", "e")
	easy := uniformDay("2024-01-05", Weekend, roster, MostPreferred)
	hard := uniformDay("2024-01-06", Weekend, roster, NotAvailable)
	hard.Preferences["c"] = MostPreferred

	outcome, err := Run(Input{Roster: roster, Days: []DayRecord{easy, hard}}, someDayTypes())
	require.NoError(t, err)

	require.Len(t, outcome.Days, 2)
	assert.Equal(t, "2024-01-06", outcome.Days[0].Date)

	entry, ok := outcome.Schedule.Entry("2024-01-06")
	require.True(t, ok)
	assert.Equal(t, UserID("c"), entry.Primary, "the only keen caretaker is used on the hard date")
}

func TestRun_CarriesPriorQuota(t *testing.T) {
	roster := users("a", "b", "c", "d", "e")

	var prior []Entry
	for i, d := range weeklyDays(t, "2023-10-06", 6, Weekend, roster, MostPreferred) {
		prior = append(prior, Entry{
			Date: d.Date,
			Type: Weekend,
			Assignment: Assignment{
				Primary:        roster[i%len(roster)],
				Secondary:      roster[(i+1)%len(roster)],
				PrimaryLevel:   MostPreferred,
				SecondaryLevel: MostPreferred,
			},
		})
	}
	days := weeklyDays(t, "2024-01-05", 10, Weekend, roster, MostPreferred)

	outcome, err := Run(Input{Roster: roster, Days: days, Prior: prior}, someDayTypes())
	require.NoError(t, err)

	assert.Equal(t, 7, outcome.Quotas()[Weekend])
	assert.Len(t, outcome.Schedule.NewEntries(), 10)
	assert.Equal(t, 16, outcome.Schedule.Len())

	for _, e := range outcome.Schedule.Entries()[:6] {
		assert.True(t, e.Carried)
	}
}

func TestRun_Invariants(t *testing.T) {
	roster := users("a", "b", "c", "d", "e", "f")
	levels := []PreferenceLevel{MostPreferred, Acceptable, NotPreferred, NotAvailable}

	var days []DayRecord
	for i, d := range weeklyDays(t, "2024-01-01", 12, Weekday, roster, MostPreferred) {
		for j, u := range roster {
			d.Preferences[u] = levels[(i+j)%len(levels)]
		}
		days = append(days, d)
	}
	for i, d := range weeklyDays(t, "2024-01-05", 6, Weekend, roster, MostPreferred) {
		for j, u := range roster {
			d.Preferences[u] = levels[(i*j)%len(levels)]
		}
		days = append(days, d)
	}

	outcome, err := Run(Input{Roster: roster, Days: days}, someDayTypes())
	require.NoError(t, err)

	quotas := outcome.Quotas()
	breakdown := outcome.Schedule.TypeBreakdown()
	for _, u := range roster {
		for dayType, quota := range quotas {
			assert.LessOrEqual(t, breakdown[u][dayType], quota, "%s over quota for %s", u, dayType)
		}
	}

	for _, e := range outcome.Schedule.NewEntries() {
		if e.Secondary != "" {
			assert.NotEqual(t, e.Primary, e.Secondary, e.Date)
			assert.NotEmpty(t, e.Primary, "secondary never filled before primary")
		}
	}

	for _, verr := range outcome.ValidationErrors {
		assert.NotEqual(t, RuleSlots, verr.Rule)
		assert.NotEqual(t, RuleQuota, verr.Rule)
	}

	// replay placements in processing order: each one must have passed the
	// recency window as it stood at the time
	recency := DefaultRecencyRule()
	replay := NewSchedule(nil, days)
	for _, day := range outcome.Days {
		for _, user := range []UserID{day.Assignment.Primary, day.Assignment.Secondary} {
			if user == "" {
				continue
			}
			assert.True(t, recency.Allows(replay, day.Date, user), "%s placed on %s past the recency limit", user, day.Date)
			_, ok := replay.assign(day.Date, user, MostPreferred)
			require.True(t, ok)
		}
	}
	assert.Equal(t, outcome.Schedule.UserTotals(), replay.UserTotals())
}

func TestRun_ReportsUnfilledDays(t *testing.T) {
	roster := users("solo")
	days := []DayRecord{uniformDay("2024-01-01", Weekday, roster, MostPreferred)}

	outcome, err := Run(Input{Roster: roster, Days: days}, someDayTypes())
	require.NoError(t, err, "an unstaffable day is not an error")

	assert.False(t, outcome.Complete())
	require.Len(t, outcome.Unfilled, 1)
	assert.Equal(t, UserID("solo"), outcome.Unfilled[0].Primary)
	assert.Equal(t, Exhausted, outcome.Days[0].State)
	assert.Equal(t, NotAvailable, outcome.Days[0].Level)
}

func TestValidate_RejectsMalformedInput(t *testing.T) {
	roster := users("a", "b")
	goodDay := uniformDay("2024-01-01", Weekday, roster, MostPreferred)

	missing := uniformDay("2024-01-02", Weekday, roster, MostPreferred)
	delete(missing.Preferences, "b")

	outOfRange := uniformDay("2024-01-02", Weekday, roster, MostPreferred)
	outOfRange.Preferences["a"] = PreferenceLevel(7)

	badType := uniformDay("2024-01-02", DayType(9), roster, MostPreferred)

	stranger := uniformDay("2024-01-02", Weekday, roster, MostPreferred)
	stranger.Preferences["ghost"] = PreferenceLevel(99)

	tests := []struct {
		name  string
		input Input
		opts  Options
		want  error
	}{
		{"empty roster", Input{Days: []DayRecord{goodDay}}, DefaultOptions(), ErrEmptyRoster},
		{"blank user", Input{Roster: users("a", ""), Days: []DayRecord{goodDay}}, DefaultOptions(), ErrEmptyRoster},
		{"duplicate user", Input{Roster: users("a", "a"), Days: []DayRecord{goodDay}}, DefaultOptions(), ErrDuplicateUser},
		{"no dates", Input{Roster: roster}, DefaultOptions(), ErrNoDates},
		{"missing preference", Input{Roster: roster, Days: []DayRecord{goodDay, missing}}, DefaultOptions(), ErrMissingPreference},
		{"level out of range", Input{Roster: roster, Days: []DayRecord{outOfRange}}, DefaultOptions(), ErrInvalidPreference},
		{"bad date", Input{Roster: roster, Days: []DayRecord{uniformDay("9/18", Weekday, roster, MostPreferred)}}, DefaultOptions(), ErrInvalidDate},
		{"unknown day type", Input{Roster: roster, Days: []DayRecord{badType}}, DefaultOptions(), ErrUnknownDayType},
		{"duplicate date", Input{Roster: roster, Days: []DayRecord{goodDay, goodDay}}, DefaultOptions(), ErrDuplicateDate},
		{
			"date already in prior schedule",
			Input{Roster: roster, Days: []DayRecord{goodDay}, Prior: []Entry{{Date: "2024-01-01", Type: Weekday}}},
			DefaultOptions(),
			ErrDuplicateDate,
		},
		{"preference for user off roster", Input{Roster: roster, Days: []DayRecord{stranger}}, someDayTypes(), ErrUnknownUser},
		{"missing day type", Input{Roster: roster, Days: []DayRecord{goodDay}}, DefaultOptions(), ErrEmptyDayType},
		{"unusable recency rule", Input{Roster: roster, Days: []DayRecord{goodDay}}, Options{}, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.input, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "should wrap ErrInvalidInput: %v", err)
			assert.True(t, errors.Is(err, tt.want), "should wrap %v: %v", tt.want, err)
		})
	}
}

func TestValidate_MissingDayTypes(t *testing.T) {
	roster := users("a", "b")
	input := Input{Roster: roster, Days: []DayRecord{uniformDay("2024-01-01", Weekday, roster, MostPreferred)}}

	err := Validate(input, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyDayType)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, Validate(input, someDayTypes()))
}

func TestRun_OffRosterPreferenceDoesNotReachRanking(t *testing.T) {
	roster := users("a", "b")
	keen := uniformDay("2024-01-05", Weekend, roster, MostPreferred)
	keen.Preferences["ghost"] = PreferenceLevel(99)
	unavailable := uniformDay("2024-01-06", Weekend, roster, NotAvailable)

	_, err := Run(Input{Roster: roster, Days: []DayRecord{keen, unavailable}}, someDayTypes())
	require.ErrorIs(t, err, ErrUnknownUser)

	delete(keen.Preferences, "ghost")
	outcome, err := Run(Input{Roster: roster, Days: []DayRecord{keen, unavailable}}, someDayTypes())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-06", outcome.Days[0].Date, "the unavailable date is hardest")
}
