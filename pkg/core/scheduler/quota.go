package scheduler

// EqualShare is the number of slots each user should take for a day type:
// ceil(2 * dates / users). It returns 0 when there are no users.
func EqualShare(dates, users int) int {
	if users <= 0 || dates <= 0 {
		return 0
	}
	slots := dates * slotsPerDay
	return (slots + users - 1) / users
}

// Quota is the cumulative per-user cap for a day type across the current
// period and a carried-over prior period. Each period's share is rounded up
// on its own before they are added.
func Quota(currentDates, priorDates, users int) int {
	return EqualShare(currentDates, users) + EqualShare(priorDates, users)
}

// groupQuota computes the quota of a day type from the schedule's own counts
func groupQuota(s *Schedule, dayType DayType, users int) int {
	return Quota(s.DateCount(dayType, false), s.DateCount(dayType, true), users)
}
