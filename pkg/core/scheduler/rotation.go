package scheduler

import "slices"

// Direction is the traversal direction of the rotation
type Direction int

const (
	Forward Direction = iota
	Reversed
)

func (d Direction) String() string {
	if d == Reversed {
		return "reversed"
	}
	return "forward"
}

// Rotation is the round-robin cursor over the roster. It lives for a whole
// run so fairness carries across dates and day type groups.
//
// When the cursor runs off the end of the roster it resets to 0, the roster
// view is reversed and the direction flips. The user who was last before
// the wrap is therefore first after it.
type Rotation struct {
	order     []UserID
	cursor    int
	direction Direction
}

// NewRotation starts a forward rotation at the first roster member
func NewRotation(roster []UserID) *Rotation {
	return &Rotation{order: slices.Clone(roster)}
}

// Current returns the user under the cursor
func (r *Rotation) Current() UserID {
	return r.order[r.cursor]
}

// Cursor returns the cursor position in the current roster view
func (r *Rotation) Cursor() int {
	return r.cursor
}

// Direction returns the current traversal direction
func (r *Rotation) Direction() Direction {
	return r.direction
}

// Order returns a copy of the roster view as currently ordered
func (r *Rotation) Order() []UserID {
	return slices.Clone(r.order)
}

// Advance moves the cursor one step and reports whether it wrapped
func (r *Rotation) Advance() bool {
	r.cursor++
	if r.cursor < len(r.order) {
		return false
	}

	r.cursor = 0
	slices.Reverse(r.order)
	if r.direction == Forward {
		r.direction = Reversed
	} else {
		r.direction = Forward
	}
	return true
}

// Snapshot captures the rotation for reporting
func (r *Rotation) Snapshot() RotationSnapshot {
	return RotationSnapshot{
		Order:     r.Order(),
		Cursor:    r.cursor,
		Direction: r.direction,
	}
}

// RotationSnapshot is an immutable copy of a rotation's state
type RotationSnapshot struct {
	Order     []UserID
	Cursor    int
	Direction Direction
}

// SearchState is the state of the per-date candidate search
type SearchState int

const (
	// Scanning walks the rotation looking for a usable candidate
	Scanning SearchState = iota

	// Widening admits the next preference level after the candidates ran out
	Widening

	// Exhausted means every level was tried and the date stays short
	Exhausted

	// Filled means both slots were assigned
	Filled
)

func (s SearchState) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Widening:
		return "widening"
	case Exhausted:
		return "exhausted"
	case Filled:
		return "filled"
	default:
		return "unknown"
	}
}

// dateSearch fills one date by walking the rotation and relaxing the
// accepted preference level whenever a full lap finds nobody
type dateSearch struct {
	day      DayRecord
	schedule *Schedule
	rotation *Rotation
	group    *groupState
	recency  RecencyRule

	state  SearchState
	level  PreferenceLevel
	anchor int
}

func newDateSearch(day DayRecord, schedule *Schedule, rotation *Rotation, group *groupState, recency RecencyRule) *dateSearch {
	return &dateSearch{
		day:      day,
		schedule: schedule,
		rotation: rotation,
		group:    group,
		recency:  recency,
		state:    Scanning,
		level:    Acceptable,
		anchor:   rotation.Cursor(),
	}
}

// run drives the state machine until the date is filled or exhausted
func (ds *dateSearch) run() SearchState {
	for {
		switch ds.state {
		case Scanning:
			ds.scan()
		case Widening:
			ds.widen()
		case Exhausted, Filled:
			return ds.state
		}
	}
}

// widen admits the next level, or gives up when none remain
func (ds *dateSearch) widen() {
	ds.level++
	if int(ds.level) >= levelCount {
		ds.state = Exhausted
		return
	}
	ds.state = Scanning
}

// scan evaluates the user under the cursor and advances the rotation
func (ds *dateSearch) scan() {
	usable := ds.usable()
	if len(usable) == 0 {
		ds.state = Widening
		return
	}

	filled := false
	user := ds.rotation.Current()
	if usable[user] {
		filled = ds.consider(user)
	}

	ds.rotation.Advance()

	switch {
	case filled:
		ds.state = Filled
	case ds.rotation.Cursor() == ds.anchor:
		// A full lap at this level found nobody
		ds.state = Widening
	}
}

// consider tries to assign the user and reports whether the date is now full
func (ds *dateSearch) consider(user UserID) bool {
	if ds.schedule.CountForUser(user, ds.day.Type) >= ds.group.quota {
		ds.group.remove(user, ds.day.Date)
		return false
	}

	if !ds.recency.Allows(ds.schedule, ds.day.Date, user) {
		return false
	}

	filled, _ := ds.schedule.assign(ds.day.Date, user, ds.day.Preferences[user])
	return filled
}

// usable returns the eligible users whose level for the date is within the
// currently accepted range
func (ds *dateSearch) usable() map[UserID]bool {
	usable := make(map[UserID]bool)
	for user := range ds.group.eligible {
		level, ok := ds.day.Preferences[user]
		if ok && level <= ds.level {
			usable[user] = true
		}
	}
	return usable
}

// groupState is the eligibility bookkeeping of one day type group
type groupState struct {
	dayType  DayType
	quota    int
	eligible map[UserID]bool
	removals []QuotaRemoval
}

func newGroupState(dayType DayType, quota int, roster []UserID) *groupState {
	eligible := make(map[UserID]bool, len(roster))
	for _, user := range roster {
		eligible[user] = true
	}
	return &groupState{dayType: dayType, quota: quota, eligible: eligible}
}

// remove drops a user who reached quota from the rest of the group
func (g *groupState) remove(user UserID, date string) {
	if !g.eligible[user] {
		return
	}
	delete(g.eligible, user)
	g.removals = append(g.removals, QuotaRemoval{
		User:    user,
		DayType: g.dayType,
		Date:    date,
		Quota:   g.quota,
	})
}

// QuotaRemoval records a user leaving a group's rotation after reaching quota
type QuotaRemoval struct {
	User    UserID
	DayType DayType
	Date    string
	Quota   int
}
