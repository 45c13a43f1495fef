package gitfucktime

import "log/slog"

var logger = slog.Default()

// SetLogger replaces the logger used by this package. Passing nil restores
// [slog.Default].
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.Default()
		return
	}

	logger = l
}
