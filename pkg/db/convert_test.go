package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

func TestNewScheduledDays_RoundTrip(t *testing.T) {
	entries := []scheduler.Entry{
		{
			Date: "2015-09-19",
			Type: scheduler.Weekend,
			Assignment: scheduler.Assignment{
				Primary:        "aspencley",
				Secondary:      "zkazi",
				PrimaryLevel:   scheduler.MostPreferred,
				SecondaryLevel: scheduler.NotPreferred,
			},
		},
		{
			Date:       "2015-09-18",
			Type:       scheduler.Weekend,
			Assignment: scheduler.EmptyAssignment(),
		},
	}

	days := NewScheduledDays("period-1", entries)
	require.Len(t, days, 2)

	assert.Equal(t, "period-1", days[0].PeriodID)
	assert.Equal(t, "Weekend", days[0].DayType)
	assert.Equal(t, 2, days[0].SecondaryLevel)
	assert.Equal(t, -1, days[1].PrimaryLevel)
	_, err := uuid.Parse(days[0].ID)
	assert.NoError(t, err)
	assert.NotEqual(t, days[0].ID, days[1].ID)

	back, err := ToEntries(days)
	require.NoError(t, err)
	require.Len(t, back, 2)

	assert.Equal(t, "2015-09-18", back[0].Date, "entries are ordered by date")
	assert.Equal(t, scheduler.LevelUnset, back[0].PrimaryLevel)
	assert.Equal(t, scheduler.UserID("zkazi"), back[1].Secondary)
	assert.Equal(t, scheduler.NotPreferred, back[1].SecondaryLevel)
}

func TestToEntries_UnknownDayType(t *testing.T) {
	_, err := ToEntries([]ScheduledDay{{Date: "2015-09-18", DayType: "Holiday"}})
	assert.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrUnknownDayType)
}

func TestFindPeriod(t *testing.T) {
	periods := []Period{
		{ID: "fall", Start: "2015-09-18"},
		{ID: "spring", Start: "2016-03-28"},
		{ID: "winter", Start: "2016-01-04"},
	}

	latest, err := FindPeriod(periods, "")
	require.NoError(t, err)
	assert.Equal(t, "spring", latest.ID)

	winter, err := FindPeriod(periods, "winter")
	require.NoError(t, err)
	assert.Equal(t, "2016-01-04", winter.Start)

	_, err = FindPeriod(periods, "summer")
	assert.Error(t, err)

	_, err = FindPeriod(nil, "")
	assert.Error(t, err)
}

func TestPreviousPeriod(t *testing.T) {
	periods := []Period{
		{ID: "fall", Start: "2015-09-18"},
		{ID: "spring", Start: "2016-03-28"},
		{ID: "winter", Start: "2016-01-04"},
	}

	prev := PreviousPeriod(periods, &periods[1])
	require.NotNil(t, prev)
	assert.Equal(t, "winter", prev.ID)

	assert.Nil(t, PreviousPeriod(periods, &periods[0]))
}
