package schedule

import "time"

const (
	// StepMinutes is the granularity of pickup/dropoff time selection.
	StepMinutes = 30
	// MinutesPerDay is one calendar day in minutes.
	MinutesPerDay = 24 * 60
)

// MinutesSinceMidnight converts a clock time into the comparable minute form
// used by the time grid.
func MinutesSinceMidnight(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

// RoundUpToStep rounds minutes up to the next grid step.
func RoundUpToStep(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	rem := minutes % StepMinutes
	if rem == 0 {
		return minutes
	}
	return minutes + StepMinutes - rem
}

// StartTimeOptions lists permissible pickup times (minutes since midnight)
// for the given day. When day is the current date, options start at now
// rounded up to the next step; past times are never offered.
func StartTimeOptions(day, now time.Time) []int {
	floor := 0
	if DayOf(day).Equal(DayOf(now)) {
		floor = RoundUpToStep(MinutesSinceMidnight(now))
	}
	return gridFrom(floor)
}

// EndTimeOptions lists permissible dropoff times for endDay given a pickup at
// startMinutes on startDay. On a same-day rental the dropoff must come after
// the pickup; when endDay is the current date the options are additionally
// bounded by now.
func EndTimeOptions(startDay, endDay time.Time, startMinutes int, now time.Time) []int {
	floor := 0
	if DayOf(endDay).Equal(DayOf(startDay)) {
		floor = startMinutes + StepMinutes
	}
	if DayOf(endDay).Equal(DayOf(now)) {
		if nowFloor := RoundUpToStep(MinutesSinceMidnight(now)); nowFloor > floor {
			floor = nowFloor
		}
	}
	return gridFrom(floor)
}

func gridFrom(floor int) []int {
	out := make([]int, 0, MinutesPerDay/StepMinutes)
	for m := floor; m < MinutesPerDay; m += StepMinutes {
		out = append(out, m)
	}
	return out
}
