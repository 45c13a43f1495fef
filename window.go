package gitfucktime

import (
	"fmt"
	"time"
)

// DateFormat is the accepted syntax for start and end dates.
const DateFormat = "2006-01-02"

// Window is the time frame the new timestamps are drawn from.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedWindow, w.Start.Format(DateFormat), w.End.Format(DateFormat))
	}

	return nil
}

// ParseDate parses a date in [DateFormat] in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected %s)", ErrInvalidDate, s, DateFormat)
	}

	return t, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// ResolveWindow turns the user supplied dates into a [Window].
//
// A missing start date is derived from the anchor commit: the first business
// day after anchorTime, starting at midnight. When neither is available,
// [ErrMissingStart] is returned and the caller has to ask for an explicit
// date.
//
// A missing end date is derived from the commit count: one day of spread per
// commit, at least one day, ending at 23:59:59. A derived end past now is
// capped at now; if capping inverts the window the resolution fails with
// [ErrWindowInference]. An explicit end date is kept as given, even in the
// future - the caller is expected to confirm that case separately.
func ResolveWindow(startDate, endDate string, anchorTime time.Time, count int, now time.Time) (Window, error) {
	var w Window

	switch {
	case startDate != "":
		start, err := ParseDate(startDate)
		if err != nil {
			return w, err
		}
		w.Start = start
	case !anchorTime.IsZero():
		w.Start = startOfDay(NextBusinessDay(anchorTime))
		logger.Info("auto-detected start date", "anchor", anchorTime.Format(DateFormat), "start", w.Start.Format(DateFormat))
	default:
		return w, ErrMissingStart
	}

	if endDate != "" {
		end, err := ParseDate(endDate)
		if err != nil {
			return w, err
		}
		w.End = endOfDay(end)

		return w, w.Validate()
	}

	span := count - 1
	if span < 1 {
		span = 1
	}
	w.End = endOfDay(w.Start.AddDate(0, 0, span))
	logger.Info("auto-calculated end date", "end", w.End.Format(DateFormat), "commits", count, "days", span)

	if w.End.After(now) {
		logger.Info("auto-calculated end date is in the future, capping at current time", "now", now)
		w.End = now
		if w.Start.After(w.End) {
			return w, ErrWindowInference
		}
	}

	return w, w.Validate()
}
