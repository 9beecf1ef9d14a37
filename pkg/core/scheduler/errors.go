package scheduler

import "errors"

// ErrInvalidInput is wrapped by every input validation error so callers can
// tell malformed input apart from other failures
var ErrInvalidInput = errors.New("invalid scheduling input")

// Sentinel errors describing the specific validation failure.
var (
	// ErrEmptyRoster is returned when there are no caretakers to schedule.
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrDuplicateUser is returned when a caretaker appears twice in the roster.
	ErrDuplicateUser = errors.New("duplicate roster member")

	// ErrNoDates is returned when there are no dates to schedule.
	ErrNoDates = errors.New("no dates to schedule")

	// ErrEmptyDayType is returned when a day type has no dates and missing day types are not allowed.
	ErrEmptyDayType = errors.New("day type has no dates")

	// ErrInvalidDate is returned when a date key is not in 2006-01-02 form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDuplicateDate is returned when a date appears more than once across prior and new days.
	ErrDuplicateDate = errors.New("duplicate date")

	// ErrUnknownUser is returned when a date holds a preference for someone not on the roster.
	ErrUnknownUser = errors.New("user not on roster")

	// ErrMissingPreference is returned when a roster member has no preference for a date.
	ErrMissingPreference = errors.New("missing preference")

	// ErrInvalidPreference is returned when a preference level is out of range.
	ErrInvalidPreference = errors.New("invalid preference level")

	// ErrUnknownPreference is returned when a preference label is not recognised.
	ErrUnknownPreference = errors.New("unknown preference label")

	// ErrUnknownDayType is returned when a day type is not recognised.
	ErrUnknownDayType = errors.New("unknown day type")

	// ErrInvalidOptions is returned when the recency rule is not usable.
	ErrInvalidOptions = errors.New("invalid options")
)
