package op

import "time"

// RewriteRecord describes one completed rewrite. Appended to the operation
// log when a rewrite commits; consulted and consumed by revert; never
// mutated.
type RewriteRecord struct {
	// Backup is the backup branch created before the rewrite, empty when
	// backups were suppressed or creation failed.
	Backup string `yaml:"backup"`

	// Range is the revision range that was rewritten, for display.
	Range string `yaml:"range"`

	// OldHead is the hex hash HEAD pointed at before the rewrite - the
	// snapshot revert resets to.
	OldHead string `yaml:"old_head"`

	// NewHead is the hex hash HEAD pointed at after the rewrite.
	NewHead string `yaml:"new_head"`

	// Rewritten is the number of commits that got new timestamps.
	Rewritten int `yaml:"rewritten"`

	When time.Time `yaml:"when"`
}

// OperationLog is the durable history of rewrites. The most recent record
// identifies the pre-rewrite snapshot a revert resets to.
type OperationLog interface {
	// Append stores a record. The record must be durable when Append
	// returns.
	Append(r *RewriteRecord) error

	// Last returns the most recent record and its key, or a nil record
	// when the log is empty.
	Last() (*RewriteRecord, uint64, error)

	// Delete removes a consumed record.
	Delete(key uint64) error
}
