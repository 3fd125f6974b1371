package schedule

import (
	"sort"
	"time"

	"rentfleet/internal/domain/shared/timerange"
)

// adjacencyEpsilon treats ranges separated by at most one second as touching,
// so back-to-back blocks collapse into a single unavailable range.
const adjacencyEpsilon = time.Second

// Cover is an ordered, disjoint sequence of unavailable ranges: the canonical
// picture of when a vehicle cannot be rented. Build it with Merge; never
// mutate it in place.
type Cover []timerange.Range

// Merge expands every active interval by bufferMinutes on both ends and
// coalesces overlapping or touching results. Pure; recompute whenever the
// interval set or buffer changes.
func Merge(intervals []Interval, bufferMinutes int) Cover {
	pad := time.Duration(bufferMinutes) * time.Minute
	expanded := make([]timerange.Range, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Active {
			continue
		}
		expanded = append(expanded, iv.Span.Expand(pad))
	}
	if len(expanded) == 0 {
		return Cover{}
	}
	sort.Slice(expanded, func(i, j int) bool {
		return expanded[i].Start.Before(expanded[j].Start)
	})

	merged := Cover{expanded[0]}
	for _, r := range expanded[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(last.End.Add(adjacencyEpsilon)) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Covers reports whether t falls inside any unavailable range. An instant
// exactly on a range end is not covered (half-open convention).
func (c Cover) Covers(t time.Time) bool {
	t = t.UTC()
	for _, r := range c {
		if r.Contains(t) {
			return true
		}
		if r.Start.After(t) {
			break
		}
	}
	return false
}

// IntersectsDay reports whether any unavailable range touches the calendar
// day containing t.
func (c Cover) IntersectsDay(t time.Time) bool {
	window := dayWindow(t)
	for _, r := range c {
		if r.Overlaps(window) {
			return true
		}
		if r.Start.After(window.End) {
			break
		}
	}
	return false
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

// NextEdge returns the nearest unavailable-range boundary strictly after
// (Forward) or before (Backward) t. The second return is false when no such
// boundary exists, meaning a selection may grow without limit in that
// direction.
func (c Cover) NextEdge(t time.Time, dir Direction) (time.Time, bool) {
	t = t.UTC()
	if dir == Forward {
		for _, r := range c {
			if r.Start.After(t) {
				return r.Start, true
			}
			if r.End.After(t) {
				return r.End, true
			}
		}
		return time.Time{}, false
	}
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].End.Before(t) {
			return c[i].End, true
		}
		if c[i].Start.Before(t) {
			return c[i].Start, true
		}
	}
	return time.Time{}, false
}

// AsIntervals rebuilds the cover as synthetic block intervals so it can be
// fed through Merge again.
func (c Cover) AsIntervals() []Interval {
	out := make([]Interval, 0, len(c))
	for _, r := range c {
		out = append(out, Interval{Kind: KindBlock, Span: r, Active: true})
	}
	return out
}

// IsPartialBoundary reports whether the calendar day of t is a day on which
// the interval starts or ends at a non-midnight clock time, leaving part of
// that day free for a new rental.
func IsPartialBoundary(t time.Time, iv Interval) bool {
	day := DayOf(t)
	if DayOf(iv.Span.Start).Equal(day) && !atMidnight(iv.Span.Start) {
		return true
	}
	if DayOf(iv.Span.End).Equal(day) && !atMidnight(iv.Span.End) {
		return true
	}
	return false
}

// dayWindow is the half-open range spanning the calendar day of t.
func dayWindow(t time.Time) timerange.Range {
	day := DayOf(t)
	return timerange.Range{Start: day, End: day.AddDate(0, 0, 1)}
}

// DayOf truncates t to midnight UTC of its calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atMidnight(t time.Time) bool {
	t = t.UTC()
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
