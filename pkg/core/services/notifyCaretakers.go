package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

const notificationSubject = "Your duty dates"

// NotificationSent represents a caretaker who was emailed their dates
type NotificationSent struct {
	User  scheduler.UserID
	Email string
	Dates []string
}

// FailedEmail represents a caretaker whose email could not be sent
type FailedEmail struct {
	User  scheduler.UserID
	Email string
	Error string
}

// NotifyCaretakers emails each caretaker on duty in a period the dates they hold.
// If periodID is empty, it defaults to the latest period. If dryRun is true
// nothing is sent and the would-be recipients are returned.
func NotifyCaretakers(
	ctx context.Context,
	database PeriodReader,
	gmailClient GmailClient,
	cfg *config.Config,
	logger *zap.Logger,
	periodID string,
	dryRun bool,
) ([]NotificationSent, []FailedEmail, error) {
	logger.Debug("Starting notifyCaretakers",
		zap.String("period_id", periodID),
		zap.Bool("dry_run", dryRun))

	period, entries, err := loadPeriod(ctx, database, periodID)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Found target period", zap.String("id", period.ID), zap.Int("dates", len(entries)))

	duties := dutiesByUser(entries)
	users := make([]scheduler.UserID, 0, len(duties))
	for user := range duties {
		users = append(users, user)
	}
	slices.Sort(users)

	sent := []NotificationSent{}
	failed := []FailedEmail{}

	for _, user := range users {
		email := string(user)
		if !strings.Contains(email, "@") {
			failed = append(failed, FailedEmail{User: user, Email: email, Error: "no email address (set emailDomain)"})
			logger.Warn("Caretaker has no email address", zap.String("user", email))
			continue
		}

		dates := make([]string, len(duties[user]))
		for i, d := range duties[user] {
			dates[i] = d.date
		}

		if dryRun {
			logger.Info("Dry run mode - would email caretaker",
				zap.String("email", email),
				zap.Int("dates", len(dates)))
			sent = append(sent, NotificationSent{User: user, Email: email, Dates: dates})
			continue
		}

		body := notificationBody(duties[user])
		if err := gmailClient.SendEmail(email, notificationSubject, body); err != nil {
			logger.Error("Failed to send email", zap.String("email", email), zap.Error(err))
			failed = append(failed, FailedEmail{User: user, Email: email, Error: err.Error()})
			continue
		}

		logger.Debug("Email sent", zap.String("email", email))
		sent = append(sent, NotificationSent{User: user, Email: email, Dates: dates})
	}

	if len(sent) == 0 && len(failed) > 0 {
		return nil, nil, fmt.Errorf("all %d notification email send attempts failed", len(failed))
	}

	logger.Info("Caretakers notified",
		zap.String("period_id", period.ID),
		zap.Int("sent", len(sent)),
		zap.Int("failed", len(failed)))

	return sent, failed, nil
}

type duty struct {
	date    string
	partner scheduler.UserID
}

// dutiesByUser lists each user's dates with whoever shares the shift, in date order
func dutiesByUser(entries []scheduler.Entry) map[scheduler.UserID][]duty {
	duties := make(map[scheduler.UserID][]duty)
	for _, e := range entries {
		if e.Primary != "" {
			duties[e.Primary] = append(duties[e.Primary], duty{date: e.Date, partner: e.Secondary})
		}
		if e.Secondary != "" {
			duties[e.Secondary] = append(duties[e.Secondary], duty{date: e.Date, partner: e.Primary})
		}
	}
	for user := range duties {
		slices.SortFunc(duties[user], func(a, b duty) int {
			return strings.Compare(a.date, b.date)
		})
	}
	return duties
}

func notificationBody(duties []duty) string {
	var b strings.Builder
	b.WriteString("You are on duty on the following nights:\r\n\r\n")
	for _, d := range duties {
		label := d.date
		if t, err := time.Parse(scheduler.DateLayout, d.date); err == nil {
			label = t.Format("Mon Jan 02 2006")
		}
		if d.partner != "" {
			fmt.Fprintf(&b, "  %s with %s\r\n", label, d.partner)
		} else {
			fmt.Fprintf(&b, "  %s\r\n", label)
		}
	}
	return b.String()
}
