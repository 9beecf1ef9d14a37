package scheduler

import (
	"fmt"
	"slices"
)

// Rule names used in ScheduleValidationError
const (
	RuleSlots   = "slots"
	RuleQuota   = "quota"
	RuleRecency = "recency"
)

// ScheduleValidationError describes an invariant violation found in a
// finished schedule
type ScheduleValidationError struct {
	Position    int
	Date        string
	User        UserID
	Rule        string
	Description string
}

// ValidateSchedule checks the new entries of a finished schedule.
// An empty slice means the schedule satisfies every rule.
//
// Quota violations are only reported for day types present in quotas.
// Recency is checked on the window centred on each new assignment, so it
// can report windows that grew after the assignment was made.
func ValidateSchedule(s *Schedule, quotas map[DayType]int, recency RecencyRule) []ScheduleValidationError {
	var errors []ScheduleValidationError

	errors = append(errors, validateSlots(s)...)
	errors = append(errors, validateQuotas(s, quotas)...)
	errors = append(errors, validateRecency(s, recency)...)

	return errors
}

func validateSlots(s *Schedule) []ScheduleValidationError {
	var errors []ScheduleValidationError
	for pos, e := range s.entries {
		if e.Carried {
			continue
		}
		if e.Primary != "" && e.Primary == e.Secondary {
			errors = append(errors, ScheduleValidationError{
				Position:    pos,
				Date:        e.Date,
				User:        e.Primary,
				Rule:        RuleSlots,
				Description: "primary and secondary are the same caretaker",
			})
		}
		if e.Primary == "" && e.Secondary != "" {
			errors = append(errors, ScheduleValidationError{
				Position:    pos,
				Date:        e.Date,
				User:        e.Secondary,
				Rule:        RuleSlots,
				Description: "secondary filled without a primary",
			})
		}
	}
	return errors
}

func validateQuotas(s *Schedule, quotas map[DayType]int) []ScheduleValidationError {
	var errors []ScheduleValidationError
	breakdown := s.TypeBreakdown()
	users := make([]UserID, 0, len(breakdown))
	for user := range breakdown {
		users = append(users, user)
	}
	slices.Sort(users)

	for _, dayType := range DayTypeOrder {
		quota, ok := quotas[dayType]
		if !ok {
			continue
		}
		for _, user := range users {
			counts := breakdown[user]
			if counts[dayType] > quota {
				errors = append(errors, ScheduleValidationError{
					Position:    -1,
					User:        user,
					Rule:        RuleQuota,
					Description: fmt.Sprintf("%d %s duties exceeds quota of %d", counts[dayType], dayType, quota),
				})
			}
		}
	}
	return errors
}

func validateRecency(s *Schedule, recency RecencyRule) []ScheduleValidationError {
	var errors []ScheduleValidationError
	for pos, e := range s.entries {
		if e.Carried {
			continue
		}
		for _, user := range []UserID{e.Primary, e.Secondary} {
			if user == "" {
				continue
			}
			count, _ := recency.Occurrences(s, e.Date, user)
			if count >= recency.Limit {
				errors = append(errors, ScheduleValidationError{
					Position:    pos,
					Date:        e.Date,
					User:        user,
					Rule:        RuleRecency,
					Description: fmt.Sprintf("%d duties within %d positions", count, recency.Radius),
				})
			}
		}
	}
	return errors
}
