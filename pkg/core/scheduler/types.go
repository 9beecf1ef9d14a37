package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// PreferenceLevel is a caretaker's stated availability for a date.
// Lower values mean more available.
type PreferenceLevel int

const (
	MostPreferred PreferenceLevel = iota
	Acceptable
	NotPreferred
	NotAvailable
)

// LevelUnset marks a slot whose level is unknown (e.g. imported from a calendar)
const LevelUnset PreferenceLevel = -1

// levelCount is the number of real preference levels
const levelCount = 4

var levelLabels = [levelCount]string{
	"Most Preferred",
	"Acceptable",
	"Not Preferred",
	"Not Available",
}

// String returns the survey label for the level
func (l PreferenceLevel) String() string {
	if !l.Valid() {
		return ""
	}
	return levelLabels[l]
}

// Valid reports whether l is one of the four real levels
func (l PreferenceLevel) Valid() bool {
	return l >= MostPreferred && l <= NotAvailable
}

// ParsePreferenceLevel converts a survey label into a PreferenceLevel.
// Matching ignores case and surrounding whitespace.
func ParsePreferenceLevel(label string) (PreferenceLevel, error) {
	trimmed := strings.TrimSpace(label)
	for i, l := range levelLabels {
		if strings.EqualFold(trimmed, l) {
			return PreferenceLevel(i), nil
		}
	}
	return LevelUnset, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownPreference, label)
}

// DayType is the fairness pool a date belongs to
type DayType int

const (
	Weekend DayType = iota
	Wednesday
	Weekday
)

// DayTypeOrder is the order in which day type groups are scheduled
var DayTypeOrder = []DayType{Weekend, Wednesday, Weekday}

var dayTypeNames = map[DayType]string{
	Weekend:   "Weekend",
	Wednesday: "Wednesday",
	Weekday:   "Weekday",
}

func (d DayType) String() string {
	if name, ok := dayTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DayType(%d)", int(d))
}

// Valid reports whether d is a known day type
func (d DayType) Valid() bool {
	_, ok := dayTypeNames[d]
	return ok
}

// ParseDayType converts "Weekend", "Wednesday" or "Weekday" into a DayType
func ParseDayType(name string) (DayType, error) {
	trimmed := strings.TrimSpace(name)
	for d, n := range dayTypeNames {
		if strings.EqualFold(trimmed, n) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownDayType, name)
}

// DayTypeForWeekday classifies a weekday.
// Friday and Saturday nights are weekend duty.
func DayTypeForWeekday(w time.Weekday) DayType {
	switch w {
	case time.Wednesday:
		return Wednesday
	case time.Friday, time.Saturday:
		return Weekend
	default:
		return Weekday
	}
}

// DayTypeForName classifies an English day name such as "Friday"
func DayTypeForName(name string) (DayType, error) {
	trimmed := strings.TrimSpace(name)
	for w := time.Sunday; w <= time.Saturday; w++ {
		if strings.EqualFold(trimmed, w.String()) {
			return DayTypeForWeekday(w), nil
		}
	}
	return 0, fmt.Errorf("%w: %w: day name %q", ErrInvalidInput, ErrUnknownDayType, name)
}

// UserID identifies a caretaker. Roster order is significant.
type UserID string

// DateLayout is the layout of every date key
const DateLayout = "2006-01-02"

// DayRecord is one date to staff with every roster member's preference
type DayRecord struct {
	Date        string
	Type        DayType
	Preferences map[UserID]PreferenceLevel
}

// Assignment holds the two duty slots of a date
type Assignment struct {
	Primary        UserID
	Secondary      UserID
	PrimaryLevel   PreferenceLevel
	SecondaryLevel PreferenceLevel
}

// EmptyAssignment returns an assignment with no slots filled
func EmptyAssignment() Assignment {
	return Assignment{PrimaryLevel: LevelUnset, SecondaryLevel: LevelUnset}
}

// Has reports whether the user holds either slot
func (a Assignment) Has(user UserID) bool {
	return user != "" && (a.Primary == user || a.Secondary == user)
}

// FilledSlots returns how many of the two slots are filled
func (a Assignment) FilledSlots() int {
	n := 0
	if a.Primary != "" {
		n++
	}
	if a.Secondary != "" {
		n++
	}
	return n
}

// IsFull reports whether both slots are filled
func (a Assignment) IsFull() bool {
	return a.FilledSlots() == 2
}

// Entry is one row of a schedule
type Entry struct {
	Date string
	Type DayType
	Assignment

	// Carried marks entries from a prior period. They are used for
	// recency windows and quota carry-forward but never rescheduled.
	Carried bool
}

// LevelPair is the (primary, secondary) level combination of a filled day
type LevelPair struct {
	Primary   PreferenceLevel
	Secondary PreferenceLevel
}
