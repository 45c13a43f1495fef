// errors

package gitfucktime

import "errors"

var (
	ErrConflictingSelection = errors.New("conflicting selection modes")
	ErrEmptyWindow          = errors.New("window contains no usable business instant")
	ErrInvertedWindow       = errors.New("window start is after window end")
	ErrWindowInference      = errors.New("cannot infer a valid window: start is after current time")
	ErrInvalidDate          = errors.New("invalid date")
	ErrMissingStart         = errors.New("no start date given and none can be derived")
	ErrInvalidHours         = errors.New("invalid business hours")
	ErrNonLinearHistory     = errors.New("non-linear history is not supported")
	ErrNoCommits            = errors.New("no commits to process")
	ErrUnresolvableRef      = errors.New("cannot resolve reference")
	ErrNoStash              = errors.New("no stash to restore")
	ErrHexStringTooShort    = errors.New("hex encoded byte slice is too short for hash")
)
