package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPickerFor(bufferMinutes int, set ...Interval) *Picker {
	return NewPicker(set, Merge(set, bufferMinutes))
}

func TestPickOnFreeDayStartsSelection(t *testing.T) {
	p := newPickerFor(0)

	res := p.Pick(datetime(5, 0, 0))
	assert.Equal(t, OutcomeStarted, res.Outcome)
	assert.Equal(t, StateStartPicked, p.State())
}

func TestPickOnCoveredDaySurfacesInterval(t *testing.T) {
	iv := interval("iv-1", datetime(3, 0, 0), datetime(6, 0, 0))
	p := newPickerFor(0, iv)

	res := p.Pick(datetime(4, 0, 0))
	require.Equal(t, OutcomeInspect, res.Outcome)
	require.NotNil(t, res.Inspect)
	assert.Equal(t, iv.ID, res.Inspect.ID)
	assert.Equal(t, StateIdle, p.State())
}

func TestPickOnPartialBoundaryDayStartsSelection(t *testing.T) {
	// Reservation ends at 10:00 on day 6; the rest of day 6 is free.
	iv := interval("iv-1", datetime(3, 0, 0), datetime(6, 10, 0))
	p := newPickerFor(0, iv)

	res := p.Pick(datetime(6, 0, 0))
	assert.Equal(t, OutcomeStarted, res.Outcome)
	assert.Equal(t, StateStartPicked, p.State())
}

func TestConfirmFreeRange(t *testing.T) {
	p := newPickerFor(0, interval("iv-1", datetime(10, 0, 0), datetime(12, 0, 0)))

	p.Pick(datetime(2, 0, 0))
	res := p.Pick(datetime(5, 0, 0))

	require.Equal(t, OutcomeConfirmed, res.Outcome)
	assert.Equal(t, datetime(2, 0, 0), res.Start)
	assert.Equal(t, datetime(5, 0, 0), res.End)

	start, end, ok := p.Selection()
	require.True(t, ok)
	assert.Equal(t, datetime(2, 0, 0), start)
	assert.Equal(t, datetime(5, 0, 0), end)
}

func TestConfirmNormalizesReversedPicks(t *testing.T) {
	p := newPickerFor(0)

	p.Pick(datetime(8, 0, 0))
	res := p.Pick(datetime(4, 0, 0))

	require.Equal(t, OutcomeConfirmed, res.Outcome)
	assert.Equal(t, datetime(4, 0, 0), res.Start)
	assert.Equal(t, datetime(8, 0, 0), res.End)
}

func TestRangeCrossingUnavailableTimeIsRejected(t *testing.T) {
	p := newPickerFor(0, interval("iv-1", datetime(5, 0, 0), datetime(7, 0, 0)))

	p.Pick(datetime(3, 0, 0))
	res := p.Pick(datetime(9, 0, 0))

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, StateIdle, p.State())
	_, _, ok := p.Selection()
	assert.False(t, ok)
}

func TestRangeEndingOnPartialBoundaryDayConfirms(t *testing.T) {
	// Next rental starts at 14:00 on day 7; ending a selection that day is a
	// same-day handover.
	iv := interval("iv-1", datetime(7, 14, 0), datetime(9, 0, 0))
	p := newPickerFor(0, iv)

	p.Pick(datetime(4, 0, 0))
	res := p.Pick(datetime(7, 0, 0))

	assert.Equal(t, OutcomeConfirmed, res.Outcome)
}

func TestRangeWithInteriorPartialDayIsRejected(t *testing.T) {
	// Day 7 is only partially blocked, but it sits strictly inside the
	// candidate range, so the range still crosses unavailable time.
	iv := interval("iv-1", datetime(7, 14, 0), datetime(9, 0, 0))
	p := newPickerFor(0, iv)

	p.Pick(datetime(4, 0, 0))
	res := p.Pick(datetime(8, 0, 0))

	assert.Equal(t, OutcomeRejected, res.Outcome)
}

func TestBufferedCoverBlocksAdjacentDays(t *testing.T) {
	iv := interval("iv-1", datetime(5, 0, 0), datetime(6, 0, 0))
	p := newPickerFor(12*60, iv)

	p.Pick(datetime(2, 0, 0))
	res := p.Pick(datetime(4, 0, 0))

	// The 12h buffer spills into day 4.
	assert.Equal(t, OutcomeRejected, res.Outcome)
}

func TestEditModeAllowsOwnEndpointDays(t *testing.T) {
	iv := interval("iv-1", datetime(5, 0, 0), datetime(8, 0, 0))
	p := newPickerFor(0, iv)
	p.Edit(&iv)

	p.Pick(datetime(3, 0, 0))
	res := p.Pick(datetime(5, 0, 0))

	assert.Equal(t, OutcomeConfirmed, res.Outcome)
}

func TestEditModeStillRejectsForeignIntervals(t *testing.T) {
	edited := interval("iv-1", datetime(5, 0, 0), datetime(6, 0, 0))
	other := interval("iv-2", datetime(10, 0, 0), datetime(12, 0, 0))
	p := newPickerFor(0, edited, other)
	p.Edit(&edited)

	p.Pick(datetime(9, 0, 0))
	res := p.Pick(datetime(13, 0, 0))

	assert.Equal(t, OutcomeRejected, res.Outcome)
}

func TestNewPickAfterConfirmationRestarts(t *testing.T) {
	p := newPickerFor(0)

	p.Pick(datetime(2, 0, 0))
	require.Equal(t, OutcomeConfirmed, p.Pick(datetime(4, 0, 0)).Outcome)

	res := p.Pick(datetime(10, 0, 0))
	assert.Equal(t, OutcomeStarted, res.Outcome)
	assert.Equal(t, StateStartPicked, p.State())
}

// Exhaustive sweep of day pairs: whenever the picker confirms, no interior
// day of the confirmed range may touch the merged cover.
func TestSelectionSafetySweep(t *testing.T) {
	set := []Interval{
		interval("iv-1", datetime(4, 14, 0), datetime(6, 10, 0)),
		interval("iv-2", datetime(11, 0, 0), datetime(13, 0, 0)),
		interval("iv-3", datetime(16, 9, 0), datetime(16, 18, 0)),
	}
	cover := Merge(set, 0)

	for a := 1; a <= 20; a++ {
		for b := 1; b <= 20; b++ {
			p := NewPicker(set, cover)
			first := p.Pick(datetime(a, 0, 0))
			if first.Outcome != OutcomeStarted {
				continue
			}
			res := p.Pick(datetime(b, 0, 0))
			if res.Outcome != OutcomeConfirmed {
				continue
			}
			for d := res.Start.AddDate(0, 0, 1); d.Before(res.End); d = d.AddDate(0, 0, 1) {
				assert.False(t, cover.IntersectsDay(d),
					"confirmed range %v..%v has blocked interior day %v", res.Start, res.End, d)
			}
		}
	}
}

func TestResetClearsSelection(t *testing.T) {
	p := newPickerFor(0)
	p.Pick(datetime(2, 0, 0))
	p.Reset()

	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, OutcomeStarted, p.Pick(datetime(3, 0, 0)).Outcome)
}
