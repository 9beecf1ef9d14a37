package scheduler

import "fmt"

const (
	// DefaultRecencyRadius is how many positions either side of a date are inspected
	DefaultRecencyRadius = 3

	// DefaultRecencyLimit is the occurrence count within the window that is not allowed
	DefaultRecencyLimit = 3
)

// RecencyRule stops a user being on duty too often in a short span.
//
// The window is positional: it covers schedule entries, not calendar days,
// so a schedule with date gaps only approximates a fixed number of days.
type RecencyRule struct {
	Radius int
	Limit  int
}

// DefaultRecencyRule returns the 3-before / 3-after, limit 3 rule
func DefaultRecencyRule() RecencyRule {
	return RecencyRule{Radius: DefaultRecencyRadius, Limit: DefaultRecencyLimit}
}

func (r RecencyRule) validate() error {
	if r.Radius < 0 {
		return fmt.Errorf("%w: %w: recency radius %d is negative", ErrInvalidInput, ErrInvalidOptions, r.Radius)
	}
	if r.Limit < 1 {
		return fmt.Errorf("%w: %w: recency limit %d must be at least 1", ErrInvalidInput, ErrInvalidOptions, r.Limit)
	}
	return nil
}

// Occurrences counts the entries in the window around date where the user
// already holds a slot. It returns false if the date is not in the schedule.
func (r RecencyRule) Occurrences(s *Schedule, date string, user UserID) (int, bool) {
	pos, ok := s.Position(date)
	if !ok {
		return 0, false
	}

	count := 0
	for _, e := range s.Window(pos, r.Radius) {
		if e.Has(user) {
			count++
		}
	}
	return count, true
}

// Allows reports whether assigning user to date keeps them under the limit
func (r RecencyRule) Allows(s *Schedule, date string, user UserID) bool {
	count, ok := r.Occurrences(s, date, user)
	if !ok {
		return false
	}
	return count+1 < r.Limit
}
