package timerange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("timerange: end must be after start")
)

// Range represents a half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	r := Range{Start: start.UTC(), End: end.UTC()}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Must builds a Range and panics on an inverted pair; for fixtures and tests.
func Must(start, end time.Time) Range {
	r, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if !r.End.After(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t falls inside the range. The end instant itself
// is excluded per the half-open convention.
func (r Range) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r Range) Adjacent(other Range) bool {
	return r.End.Equal(other.Start) || r.Start.Equal(other.End)
}

// Expand grows the range symmetrically by pad on both ends.
func (r Range) Expand(pad time.Duration) Range {
	if pad <= 0 {
		return r
	}
	return Range{Start: r.Start.Add(-pad), End: r.End.Add(pad)}
}

// Union merges two ranges into one when they overlap or touch.
func (r Range) Union(other Range) (Range, bool) {
	if !(r.Overlaps(other) || r.Adjacent(other)) {
		return Range{}, false
	}
	start := r.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := r.End
	if other.End.After(end) {
		end = other.End
	}
	return Range{Start: start, End: end}, true
}
