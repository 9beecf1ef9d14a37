package scheduler

import (
	"cmp"
	"slices"
)

// DifficultyScore sums every user's level ordinal for the day.
// Higher scores mean fewer willing caretakers.
func DifficultyScore(day DayRecord) int {
	score := 0
	for _, level := range day.Preferences {
		score += int(level)
	}
	return score
}

// RankDays orders the days of one group from hardest to easiest to staff.
// Equal scores are ordered by ascending date, then by input order.
// The input slice is not modified.
func RankDays(days []DayRecord) []DayRecord {
	scores := make(map[string]int, len(days))
	for _, day := range days {
		scores[day.Date] = DifficultyScore(day)
	}

	ranked := slices.Clone(days)
	slices.SortStableFunc(ranked, func(a, b DayRecord) int {
		if c := cmp.Compare(scores[b.Date], scores[a.Date]); c != 0 {
			return c
		}
		return cmp.Compare(a.Date, b.Date)
	})

	return ranked
}

// groupDays splits days by type, keeping input order within each group
func groupDays(days []DayRecord) map[DayType][]DayRecord {
	groups := make(map[DayType][]DayRecord)
	for _, day := range days {
		groups[day.Type] = append(groups[day.Type], day)
	}
	return groups
}
