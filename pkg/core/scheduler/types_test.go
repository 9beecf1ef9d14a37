package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreferenceLevel_AllLabels(t *testing.T) {
	expected := map[string]PreferenceLevel{
		"Most Preferred": MostPreferred,
		"Acceptable":     Acceptable,
		"Not Preferred":  NotPreferred,
		"Not Available":  NotAvailable,
	}

	for label, want := range expected {
		got, err := ParsePreferenceLevel(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
		assert.Equal(t, label, got.String())
	}
}

func TestParsePreferenceLevel_IgnoresCaseAndSpace(t *testing.T) {
	got, err := ParsePreferenceLevel("  not preferred ")
	require.NoError(t, err)
	assert.Equal(t, NotPreferred, got)
}

func TestParsePreferenceLevel_UnknownLabel(t *testing.T) {
	_, err := ParsePreferenceLevel("Maybe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, ErrUnknownPreference))
}

func TestPreferenceLevel_Ordering(t *testing.T) {
	assert.Less(t, MostPreferred, Acceptable)
	assert.Less(t, Acceptable, NotPreferred)
	assert.Less(t, NotPreferred, NotAvailable)
	assert.False(t, LevelUnset.Valid())
	assert.Empty(t, LevelUnset.String())
}

func TestDayTypeForWeekday(t *testing.T) {
	assert.Equal(t, Weekend, DayTypeForWeekday(time.Friday))
	assert.Equal(t, Weekend, DayTypeForWeekday(time.Saturday))
	assert.Equal(t, Wednesday, DayTypeForWeekday(time.Wednesday))
	assert.Equal(t, Weekday, DayTypeForWeekday(time.Sunday))
	assert.Equal(t, Weekday, DayTypeForWeekday(time.Monday))
	assert.Equal(t, Weekday, DayTypeForWeekday(time.Thursday))
}

func TestDayTypeForName(t *testing.T) {
	got, err := DayTypeForName("saturday")
	require.NoError(t, err)
	assert.Equal(t, Weekend, got)

	_, err = DayTypeForName("Funday")
	assert.True(t, errors.Is(err, ErrUnknownDayType))
}

func TestParseDayType(t *testing.T) {
	for _, d := range DayTypeOrder {
		got, err := ParseDayType(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDayType("Holiday")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAssignment_Slots(t *testing.T) {
	a := EmptyAssignment()
	assert.Equal(t, 0, a.FilledSlots())
	assert.False(t, a.Has(""), "blank user never holds a slot")

	a.Primary = "alice"
	assert.True(t, a.Has("alice"))
	assert.False(t, a.IsFull())

	a.Secondary = "bob"
	assert.True(t, a.IsFull())
}
