package worklist

import "time"

type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

const (
	WarningDays  = 7
	CriticalDays = 14
)

// DaysSince counts whole days elapsed since reference. A reference in the
// future counts as zero.
func DaysSince(reference, now time.Time) int {
	elapsed := now.Sub(reference)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

func LevelFor(days int) Level {
	switch {
	case days >= CriticalDays:
		return LevelCritical
	case days >= WarningDays:
		return LevelWarning
	default:
		return LevelOK
	}
}

// ReferenceTime is the moment of last activity: the latest status update,
// or the project's creation when there is none.
func (r Record) ReferenceTime() time.Time {
	if r.LatestUpdate != nil {
		return r.LatestUpdate.CreatedAt
	}
	return r.Project.CreatedAt
}

func (r Record) DaysSinceUpdate(now time.Time) int {
	return DaysSince(r.ReferenceTime(), now)
}

func (r Record) Staleness(now time.Time) Level {
	return LevelFor(r.DaysSinceUpdate(now))
}
