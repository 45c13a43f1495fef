package gitfucktime

import (
	"fmt"
	"math/rand"
	"time"
)

// BusinessHours is the half-open range of hours [Start, End) in which
// generated timestamps may fall.
type BusinessHours struct {
	Start int
	End   int
}

// DefaultBusinessHours is a regular 09:00-17:00 office day.
var DefaultBusinessHours = BusinessHours{Start: 9, End: 17}

func (h BusinessHours) Validate() error {
	if h.Start < 0 || h.End > 24 || h.Start >= h.End {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidHours, h.Start, h.End)
	}

	return nil
}

// IsBusinessDay reports if t falls on Monday through Friday. There is no
// holiday calendar.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first business day strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// maxSampleAttempts bounds the rejection sampling loop in
// [RandomBusinessInstant]. The loop terminates in a handful of iterations
// whenever the window contains a business day, so exhausting the cap is
// reported as an empty window.
const maxSampleAttempts = 10000

// RandomBusinessInstant draws a uniformly distributed instant inside w that
// falls on a business day within hours. When maxInstant is non-zero the
// result will not exceed it. Returns [ErrEmptyWindow] when the window
// contains no business day, or when no instant inside the window satisfies
// all the constraints.
func RandomBusinessInstant(rng *rand.Rand, w Window, hours BusinessHours, maxInstant time.Time) (time.Time, error) {
	if err := hours.Validate(); err != nil {
		return time.Time{}, err
	}
	if err := w.Validate(); err != nil {
		return time.Time{}, err
	}

	first := startOfDay(w.Start)
	days := int(startOfDay(w.End).Sub(first).Hours()/24) + 1

	if !hasBusinessDay(first, days) {
		return time.Time{}, fmt.Errorf("%w: %s to %s", ErrEmptyWindow, w.Start.Format(DateFormat), w.End.Format(DateFormat))
	}

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		day := first.AddDate(0, 0, rng.Intn(days))
		if !IsBusinessDay(day) {
			continue
		}

		instant := time.Date(
			day.Year(), day.Month(), day.Day(),
			hours.Start+rng.Intn(hours.End-hours.Start),
			rng.Intn(60), rng.Intn(60), 0,
			w.Start.Location())

		if instant.Before(w.Start) || instant.After(w.End) {
			continue
		}
		if !maxInstant.IsZero() && instant.After(maxInstant) {
			continue
		}

		return instant, nil
	}

	return time.Time{}, fmt.Errorf("%w: no business instant found after %d attempts", ErrEmptyWindow, maxSampleAttempts)
}

func hasBusinessDay(first time.Time, days int) bool {
	// a full week is enough to know
	if days > 7 {
		days = 7
	}

	for i := 0; i < days; i++ {
		if IsBusinessDay(first.AddDate(0, 0, i)) {
			return true
		}
	}

	return false
}
