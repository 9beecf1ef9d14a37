package calendarclient

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/utils"
)

// Client wraps the Google Calendar API client
type Client struct {
	service *calendar.Service
	ctx     context.Context
}

// Event is a calendar entry reduced to its start date and title
type Event struct {
	Date    string // 2006-01-02
	Summary string
}

// NewClient creates a new Calendar client using an existing OAuth token
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	httpClient, err := utils.AuthorizedClient(ctx, oauthCfg, token)
	if err != nil {
		return nil, err
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// ListEvents returns every event starting on or after from, in start order.
// Recurring events are expanded into single instances.
func (c *Client) ListEvents(calendarID string, from time.Time) ([]Event, error) {
	var events []Event

	call := c.service.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	err := call.Pages(c.ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			event, ok, err := toEvent(item)
			if err != nil {
				return err
			}
			if ok {
				events = append(events, event)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// toEvent reads the start date of an event. All-day events carry a date,
// timed events a date-time. ok is false for events without a start.
func toEvent(item *calendar.Event) (Event, bool, error) {
	if item.Start == nil {
		return Event{}, false, nil
	}

	switch {
	case item.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return Event{}, false, fmt.Errorf("event %s: invalid start %q: %w", item.Id, item.Start.DateTime, err)
		}
		return Event{Date: start.Format("2006-01-02"), Summary: item.Summary}, true, nil
	case item.Start.Date != "":
		return Event{Date: item.Start.Date, Summary: item.Summary}, true, nil
	default:
		return Event{}, false, nil
	}
}
