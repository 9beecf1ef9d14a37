package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/clients/calendarclient"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
)

var importFrom = time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)

func TestImportCalendar_StoresDutyEvents(t *testing.T) {
	store := &mockStore{}
	events := &mockEventSource{events: []calendarclient.Event{
		{Date: "2015-04-03", Summary: "Adam & Logan"},
		{Date: "2015-04-05", Summary: "Staff meeting"},
		{Date: "2015-04-08", Summary: "Ella & Visitor"},
		{Date: "2015-04-08", Summary: "Kelly & Adam"},
	}}

	result, err := ImportCalendar(context.Background(), events, store, testConfig(), zap.NewNop(), importFrom)
	require.NoError(t, err)

	assert.Equal(t, importFrom, events.from)
	assert.Equal(t, []string{"Staff meeting"}, result.Ignored)

	require.Len(t, result.Entries, 2, "duplicate dates keep the first event")
	assert.Equal(t, scheduler.Weekend, result.Entries[0].Type, "Friday")
	assert.Equal(t, scheduler.UserID("aspencley@scu.edu"), result.Entries[0].Primary)
	assert.Equal(t, scheduler.UserID("lokawachi@scu.edu"), result.Entries[0].Secondary)
	assert.Equal(t, scheduler.Wednesday, result.Entries[1].Type)
	assert.Equal(t, scheduler.UserID("Visitor"), result.Entries[1].Secondary)

	require.Len(t, store.insertedPeriods, 1)
	assert.Equal(t, db.Period{
		ID:        result.PeriodID,
		Start:     "2015-04-03",
		End:       "2015-04-08",
		Source:    db.SourceCalendar,
		CreatedAt: "2015-09-01T00:00:00Z",
	}, store.insertedPeriods[0])

	require.Len(t, store.insertedDays, 2)
	assert.Equal(t, -1, store.insertedDays[0].PrimaryLevel, "imported levels are unknown")
}

func TestImportCalendar_Errors(t *testing.T) {
	t.Run("no calendar configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.CalendarID = ""
		_, err := ImportCalendar(context.Background(), &mockEventSource{}, &mockStore{}, cfg, zap.NewNop(), importFrom)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calendarID")
	})

	t.Run("calendar failure", func(t *testing.T) {
		_, err := ImportCalendar(context.Background(), &mockEventSource{err: fmt.Errorf("not found")}, &mockStore{}, testConfig(), zap.NewNop(), importFrom)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch calendar events")
	})

	t.Run("no duty events", func(t *testing.T) {
		events := &mockEventSource{events: []calendarclient.Event{{Date: "2015-04-05", Summary: "Staff meeting"}}}
		store := &mockStore{}
		_, err := ImportCalendar(context.Background(), events, store, testConfig(), zap.NewNop(), importFrom)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no duty events found")
		assert.Empty(t, store.insertedPeriods)
	})

	t.Run("bad event date", func(t *testing.T) {
		events := &mockEventSource{events: []calendarclient.Event{{Date: "April 3", Summary: "Adam & Logan"}}}
		_, err := ImportCalendar(context.Background(), events, &mockStore{}, testConfig(), zap.NewNop(), importFrom)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})
}
