package scheduler

// Schedule is the working table of a run: carried-over entries from a prior
// period followed by the dates being scheduled, in positional order.
// It is owned by a single run and is not safe for concurrent mutation.
type Schedule struct {
	entries []*Entry
	index   map[string]int
}

// NewSchedule creates a schedule holding the prior entries (marked as
// carried) followed by an empty entry for each new day, in input order
func NewSchedule(prior []Entry, days []DayRecord) *Schedule {
	s := &Schedule{
		entries: make([]*Entry, 0, len(prior)+len(days)),
		index:   make(map[string]int, len(prior)+len(days)),
	}

	for _, p := range prior {
		entry := p
		entry.Carried = true
		s.append(&entry)
	}

	for _, day := range days {
		s.append(&Entry{
			Date:       day.Date,
			Type:       day.Type,
			Assignment: EmptyAssignment(),
		})
	}

	return s
}

func (s *Schedule) append(entry *Entry) {
	s.index[entry.Date] = len(s.entries)
	s.entries = append(s.entries, entry)
}

// Len returns the number of entries including carried ones
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Position returns the positional index of a date
func (s *Schedule) Position(date string) (int, bool) {
	pos, ok := s.index[date]
	return pos, ok
}

// Entry returns a copy of the entry for a date
func (s *Schedule) Entry(date string) (Entry, bool) {
	pos, ok := s.index[date]
	if !ok {
		return Entry{}, false
	}
	return *s.entries[pos], true
}

// Entries returns a copy of every entry in positional order
func (s *Schedule) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

// NewEntries returns copies of the entries scheduled in this run
func (s *Schedule) NewEntries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.Carried {
			out = append(out, *e)
		}
	}
	return out
}

// Unfilled returns the new entries with fewer than two slots filled
func (s *Schedule) Unfilled() []Entry {
	var out []Entry
	for _, e := range s.entries {
		if !e.Carried && !e.IsFull() {
			out = append(out, *e)
		}
	}
	return out
}

// Window returns the entries from pos-radius to pos+radius inclusive,
// clamped to the schedule boundaries
func (s *Schedule) Window(pos, radius int) []Entry {
	if len(s.entries) == 0 {
		return nil
	}
	lo := clamp(pos-radius, 0, len(s.entries)-1)
	hi := clamp(pos+radius, 0, len(s.entries)-1)

	out := make([]Entry, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, *s.entries[i])
	}
	return out
}

// CountForUser returns how many slots the user holds on dates of the given
// type, carried entries included
func (s *Schedule) CountForUser(user UserID, dayType DayType) int {
	count := 0
	for _, e := range s.entries {
		if e.Type == dayType && e.Has(user) {
			count++
		}
	}
	return count
}

// DateCount returns the number of dates of a type, either carried or new
func (s *Schedule) DateCount(dayType DayType, carried bool) int {
	count := 0
	for _, e := range s.entries {
		if e.Type == dayType && e.Carried == carried {
			count++
		}
	}
	return count
}

// UserTotals returns each user's total slot count across all entries
func (s *Schedule) UserTotals() map[UserID]int {
	totals := make(map[UserID]int)
	for _, e := range s.entries {
		if e.Primary != "" {
			totals[e.Primary]++
		}
		if e.Secondary != "" {
			totals[e.Secondary]++
		}
	}
	return totals
}

// TypeBreakdown returns each user's slot count per day type across all entries
func (s *Schedule) TypeBreakdown() map[UserID]map[DayType]int {
	breakdown := make(map[UserID]map[DayType]int)
	add := func(user UserID, dayType DayType) {
		if user == "" {
			return
		}
		if breakdown[user] == nil {
			breakdown[user] = make(map[DayType]int)
		}
		breakdown[user][dayType]++
	}
	for _, e := range s.entries {
		add(e.Primary, e.Type)
		add(e.Secondary, e.Type)
	}
	return breakdown
}

// PairCounts returns how many entries were filled with each
// (primary level, secondary level) combination. Entries missing either
// level are skipped.
func (s *Schedule) PairCounts() map[LevelPair]int {
	pairs := make(map[LevelPair]int)
	for _, e := range s.entries {
		if !e.PrimaryLevel.Valid() || !e.SecondaryLevel.Valid() {
			continue
		}
		pairs[LevelPair{Primary: e.PrimaryLevel, Secondary: e.SecondaryLevel}]++
	}
	return pairs
}

// assign fills the next empty slot of a date. It returns true once both
// slots are filled.
func (s *Schedule) assign(date string, user UserID, level PreferenceLevel) (filled bool, ok bool) {
	pos, found := s.index[date]
	if !found {
		return false, false
	}
	e := s.entries[pos]

	switch {
	case e.Primary == "":
		e.Primary = user
		e.PrimaryLevel = level
		return false, true
	case e.Secondary == "" && e.Primary != user:
		e.Secondary = user
		e.SecondaryLevel = level
		return true, true
	default:
		return e.IsFull(), false
	}
}

func clamp(value, minimum, maximum int) int {
	return max(minimum, min(value, maximum))
}
