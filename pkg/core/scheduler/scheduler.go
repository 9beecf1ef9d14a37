package scheduler

import (
	"fmt"
	"time"
)

// slotsPerDay is the number of caretakers on duty each date
const slotsPerDay = 2

// Input is everything a run needs
type Input struct {
	// Roster is the ordered list of caretakers. Order drives rotation fairness.
	Roster []UserID

	// Days are the dates to schedule, in positional (usually calendar) order
	Days []DayRecord

	// Prior is an optional carried-over schedule from the previous period.
	// It is used for recency windows and quota carry-forward only.
	Prior []Entry
}

// Options tune a run
type Options struct {
	Recency RecencyRule

	// AllowMissingDayTypes accepts input where some day type has no dates.
	// By default such input is rejected.
	AllowMissingDayTypes bool
}

// DefaultOptions returns the standard recency rule with every day type required
func DefaultOptions() Options {
	return Options{Recency: DefaultRecencyRule()}
}

// DayReport traces how one date was searched
type DayReport struct {
	Date string
	Type DayType

	// Score is the difficulty score the date was ranked by
	Score int

	// Anchor is the cursor position when the search for this date began
	Anchor int

	// Order is the roster view when the search for this date began
	Order []UserID

	// Level is the widest preference level admitted before the search ended
	Level PreferenceLevel

	// State is Filled or Exhausted
	State SearchState

	Assignment Assignment
}

// GroupReport summarises one day type group
type GroupReport struct {
	Type     DayType
	Dates    int
	Quota    int
	Removals []QuotaRemoval
}

// Outcome is the result of a run
type Outcome struct {
	// Schedule holds carried and new entries. Ownership passes to the caller.
	Schedule *Schedule

	// Groups are reported in processing order
	Groups []GroupReport

	// Days are reported in processing order
	Days []DayReport

	// Unfilled lists new dates left with fewer than two caretakers
	Unfilled []Entry

	// ValidationErrors lists invariant violations found after the run
	ValidationErrors []ScheduleValidationError

	// Rotation is the final rotation state
	Rotation RotationSnapshot
}

// Quotas returns the quota computed for each scheduled day type
func (o *Outcome) Quotas() map[DayType]int {
	quotas := make(map[DayType]int, len(o.Groups))
	for _, g := range o.Groups {
		quotas[g.Type] = g.Quota
	}
	return quotas
}

// Complete reports whether every new date received two caretakers
func (o *Outcome) Complete() bool {
	return len(o.Unfilled) == 0
}

// Run validates the input and schedules every day type group in order
func Run(input Input, opts Options) (*Outcome, error) {
	if err := Validate(input, opts); err != nil {
		return nil, err
	}

	schedule := NewSchedule(input.Prior, input.Days)
	rotation := NewRotation(input.Roster)
	groups := groupDays(input.Days)

	outcome := &Outcome{Schedule: schedule}

	for _, dayType := range DayTypeOrder {
		days := groups[dayType]
		if len(days) == 0 {
			continue
		}

		quota := groupQuota(schedule, dayType, len(input.Roster))
		group := newGroupState(dayType, quota, input.Roster)

		for _, day := range RankDays(days) {
			report := DayReport{
				Date:   day.Date,
				Type:   day.Type,
				Score:  DifficultyScore(day),
				Anchor: rotation.Cursor(),
				Order:  rotation.Order(),
			}

			search := newDateSearch(day, schedule, rotation, group, opts.Recency)
			report.State = search.run()
			report.Level = min(search.level, NotAvailable)

			entry, _ := schedule.Entry(day.Date)
			report.Assignment = entry.Assignment
			outcome.Days = append(outcome.Days, report)
		}

		outcome.Groups = append(outcome.Groups, GroupReport{
			Type:     dayType,
			Dates:    len(days),
			Quota:    quota,
			Removals: group.removals,
		})
	}

	outcome.Unfilled = schedule.Unfilled()
	outcome.ValidationErrors = ValidateSchedule(schedule, outcome.Quotas(), opts.Recency)
	outcome.Rotation = rotation.Snapshot()

	return outcome, nil
}

// Validate rejects malformed input before any scheduling happens
func Validate(input Input, opts Options) error {
	if err := opts.Recency.validate(); err != nil {
		return err
	}

	if len(input.Roster) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyRoster)
	}

	roster := make(map[UserID]bool, len(input.Roster))
	for _, user := range input.Roster {
		if user == "" {
			return fmt.Errorf("%w: %w: blank user id", ErrInvalidInput, ErrEmptyRoster)
		}
		if roster[user] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrDuplicateUser, user)
		}
		roster[user] = true
	}

	if len(input.Days) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrNoDates)
	}

	seen := make(map[string]bool, len(input.Prior)+len(input.Days))

	for _, p := range input.Prior {
		if err := validateDate(p.Date, p.Type); err != nil {
			return fmt.Errorf("prior schedule: %w", err)
		}
		if seen[p.Date] {
			return fmt.Errorf("%w: %w: %s in prior schedule", ErrInvalidInput, ErrDuplicateDate, p.Date)
		}
		seen[p.Date] = true
	}

	typeCounts := make(map[DayType]int)
	for _, day := range input.Days {
		if err := validateDate(day.Date, day.Type); err != nil {
			return err
		}
		if seen[day.Date] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrDuplicateDate, day.Date)
		}
		seen[day.Date] = true
		typeCounts[day.Type]++

		for user := range day.Preferences {
			if !roster[user] {
				return fmt.Errorf("%w: %w: %s has a preference for %s", ErrInvalidInput, ErrUnknownUser, user, day.Date)
			}
		}
		for _, user := range input.Roster {
			level, ok := day.Preferences[user]
			if !ok {
				return fmt.Errorf("%w: %w: %s has no preference for %s", ErrInvalidInput, ErrMissingPreference, user, day.Date)
			}
			if !level.Valid() {
				return fmt.Errorf("%w: %w: %s has level %d for %s", ErrInvalidInput, ErrInvalidPreference, user, int(level), day.Date)
			}
		}
	}

	if !opts.AllowMissingDayTypes {
		for _, dayType := range DayTypeOrder {
			if typeCounts[dayType] == 0 {
				return fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrEmptyDayType, dayType)
			}
		}
	}

	return nil
}

func validateDate(date string, dayType DayType) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrInvalidDate, date)
	}
	if !dayType.Valid() {
		return fmt.Errorf("%w: %w: %s has type %d", ErrInvalidInput, ErrUnknownDayType, date, int(dayType))
	}
	return nil
}
