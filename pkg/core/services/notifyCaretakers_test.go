package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
	"github.com/jakechorley/duty-rota/pkg/db"
)

func TestNotifyCaretakers_EmailsEveryoneOnDuty(t *testing.T) {
	gmail := &mockGmailClient{}

	sent, failed, err := NotifyCaretakers(context.Background(), fallStore(), gmail, testConfig(), zap.NewNop(), "", false)
	require.NoError(t, err)

	assert.Empty(t, failed)
	require.Len(t, sent, 5)
	assert.Equal(t, scheduler.UserID("aspencley@scu.edu"), sent[0].User, "sorted by user")
	assert.Equal(t, []string{"2015-09-18", "2015-09-21"}, sent[4].Dates, "lokawachi")

	body := gmail.sentEmails["lokawachi@scu.edu"]
	assert.Contains(t, body, "Fri Sep 18 2015 with aspencley@scu.edu")
	assert.Contains(t, body, "Mon Sep 21 2015 with guest@scu.edu")
}

func TestNotifyCaretakers_DryRunSendsNothing(t *testing.T) {
	gmail := &mockGmailClient{}

	sent, failed, err := NotifyCaretakers(context.Background(), fallStore(), gmail, testConfig(), zap.NewNop(), "spring", true)
	require.NoError(t, err)

	assert.Len(t, sent, 2)
	assert.Empty(t, failed)
	assert.Empty(t, gmail.sentEmails)
}

func TestNotifyCaretakers_PartialFailures(t *testing.T) {
	gmail := &mockGmailClient{failFor: []string{"kmoss@scu.edu"}}

	sent, failed, err := NotifyCaretakers(context.Background(), fallStore(), gmail, testConfig(), zap.NewNop(), "", false)
	require.NoError(t, err)

	assert.Len(t, sent, 4)
	require.Len(t, failed, 1)
	assert.Equal(t, "kmoss@scu.edu", failed[0].Email)
}

func TestNotifyCaretakers_UsersWithoutAddress(t *testing.T) {
	store := &mockStore{
		periods: []db.Period{{ID: "fall", Start: "2015-09-18"}},
		days: map[string][]db.ScheduledDay{
			"fall": {storedDay("fall", "2015-09-18", "Weekend", "aspencley", "lokawachi@scu.edu")},
		},
	}
	gmail := &mockGmailClient{}

	sent, failed, err := NotifyCaretakers(context.Background(), store, gmail, testConfig(), zap.NewNop(), "", false)
	require.NoError(t, err)

	require.Len(t, sent, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, scheduler.UserID("aspencley"), failed[0].User)
	assert.Contains(t, failed[0].Error, "no email address")
}

func TestNotifyCaretakers_AllEmailsFail(t *testing.T) {
	gmail := &mockGmailClient{err: fmt.Errorf("gmail service unavailable")}

	sent, failed, err := NotifyCaretakers(context.Background(), fallStore(), gmail, testConfig(), zap.NewNop(), "", false)
	require.Error(t, err)
	assert.Nil(t, sent)
	assert.Nil(t, failed)
	assert.Contains(t, err.Error(), "all 5 notification email send attempts failed")
}

func TestNotificationBody(t *testing.T) {
	body := notificationBody([]duty{
		{date: "2015-09-18", partner: "lokawachi@scu.edu"},
		{date: "2015-09-23"},
	})

	assert.Equal(t, "You are on duty on the following nights:\r\n\r\n"+
		"  Fri Sep 18 2015 with lokawachi@scu.edu\r\n"+
		"  Wed Sep 23 2015\r\n", body)
}
