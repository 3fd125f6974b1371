package schedule

import (
	"time"
)

type SelectionState string

const (
	StateIdle           SelectionState = "IDLE"
	StateStartPicked    SelectionState = "START_PICKED"
	StateRangeConfirmed SelectionState = "RANGE_CONFIRMED"
)

type Outcome string

const (
	// OutcomeStarted means the pick opened a new selection.
	OutcomeStarted Outcome = "STARTED"
	// OutcomeConfirmed means the pick closed a valid range.
	OutcomeConfirmed Outcome = "CONFIRMED"
	// OutcomeRejected means the candidate range crossed unavailable time and
	// the picker returned to idle. A normal result, not an error.
	OutcomeRejected Outcome = "REJECTED"
	// OutcomeInspect means the pick landed on an existing interval; the caller
	// should surface that interval instead of starting a selection.
	OutcomeInspect Outcome = "INSPECT"
)

type PickResult struct {
	Outcome Outcome
	Start   time.Time
	End     time.Time
	Inspect *Interval
}

// Picker drives the two-click date-range selection against a merged cover.
// It guarantees a confirmed range never has a day strictly inside an
// unavailable range; touching at a boundary day is allowed, which models a
// same-day handover between rentals.
type Picker struct {
	state     SelectionState
	start     time.Time
	end       time.Time
	intervals []Interval
	cover     Cover
	editing   *Interval
}

func NewPicker(intervals []Interval, cover Cover) *Picker {
	return &Picker{state: StateIdle, intervals: intervals, cover: cover}
}

// Edit puts the picker into edit mode for an existing interval. The edited
// interval's own endpoint days no longer block a candidate range, so a host
// can reshape a block around its current position.
func (p *Picker) Edit(iv *Interval) {
	p.editing = iv
	p.Reset()
}

func (p *Picker) State() SelectionState { return p.state }

// Selection returns the current range; valid only in StateRangeConfirmed.
func (p *Picker) Selection() (start, end time.Time, ok bool) {
	if p.state != StateRangeConfirmed {
		return time.Time{}, time.Time{}, false
	}
	return p.start, p.end, true
}

func (p *Picker) Reset() {
	p.state = StateIdle
	p.start = time.Time{}
	p.end = time.Time{}
}

// Pick feeds one user day selection through the state machine.
func (p *Picker) Pick(day time.Time) PickResult {
	day = DayOf(day)
	if p.state == StateRangeConfirmed {
		p.Reset()
	}
	if p.state == StateStartPicked {
		return p.pickEnd(day)
	}
	return p.pickStart(day)
}

func (p *Picker) pickStart(day time.Time) PickResult {
	if iv := p.intervalOn(day); iv != nil && !IsPartialBoundary(day, *iv) && p.editing == nil {
		return PickResult{Outcome: OutcomeInspect, Inspect: iv}
	}
	p.state = StateStartPicked
	p.start = day
	return PickResult{Outcome: OutcomeStarted, Start: day}
}

func (p *Picker) pickEnd(day time.Time) PickResult {
	start, end := p.start, day
	if end.Before(start) {
		start, end = end, start
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if p.dayBlocked(d, d.Equal(start) || d.Equal(end)) {
			p.Reset()
			return PickResult{Outcome: OutcomeRejected}
		}
	}
	p.state = StateRangeConfirmed
	p.start, p.end = start, end
	return PickResult{Outcome: OutcomeConfirmed, Start: start, End: end}
}

// dayBlocked decides whether day d forbids the candidate range. Endpoint days
// that are partial boundaries of an interval stay selectable, as do the
// endpoint days of the interval currently under edit.
func (p *Picker) dayBlocked(d time.Time, isEndpoint bool) bool {
	if p.editing != nil {
		if DayOf(p.editing.Span.Start).Equal(d) || DayOf(p.editing.Span.End).Equal(d) {
			return false
		}
	}
	if isEndpoint {
		for _, iv := range p.intervals {
			if iv.Active && IsPartialBoundary(d, iv) {
				return false
			}
		}
	}
	return p.cover.IntersectsDay(d)
}

// intervalOn finds an active interval whose span touches the given day.
func (p *Picker) intervalOn(day time.Time) *Interval {
	window := dayWindow(day)
	for i := range p.intervals {
		if p.intervals[i].Active && p.intervals[i].Span.Overlaps(window) {
			return &p.intervals[i]
		}
	}
	return nil
}
