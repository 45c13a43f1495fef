package op

import (
	"context"
	"fmt"

	"github.com/G0razd/gitfucktime"
)

// RevertResult reports what a revert did.
type RevertResult struct {
	// Target is the hex hash of the pre-rewrite snapshot the repository
	// was reset to.
	Target string

	// Backup is the branch preserving the reverted (post-rewrite) state,
	// empty when suppressed or creation failed.
	Backup string

	// StashPopFailed is set when uncommitted changes were stashed but
	// could not be reapplied; they stay under the stash ref for manual
	// recovery.
	StashPopFailed bool
}

// Revert undoes the most recent rewrite: it resets the repository to the
// snapshot in the latest operation record, stashing uncommitted changes
// around the reset. The consumed record is dropped from the log. Unless
// suppressed, the current (post-rewrite) state is kept on a fresh backup
// branch first.
func (o *Op) Revert(ctx context.Context, noBackup bool) (*RevertResult, error) {
	record, key, err := o.log.Last()
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNoPriorOperation
	}

	target, err := gitfucktime.DecodeHashHex(record.OldHead)
	if err != nil {
		return nil, fmt.Errorf("operation record holds an invalid snapshot hash %q: %w", record.OldHead, err)
	}

	result := &RevertResult{Target: record.OldHead}

	if !noBackup {
		name := o.backupName()
		if err := o.engine.CreateBranch(name); err != nil {
			o.warn("failed to create backup branch, continuing", "branch", name, "error", err)
		} else {
			result.Backup = name
		}
	}

	stashed, err := o.engine.StashPush(ctx)
	if err != nil {
		o.warn("failed to stash uncommitted changes", "error", err)
		stashed = false
	}

	if err := o.engine.ResetHard(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to reset to %s: %w", record.OldHead, err)
	}

	if stashed {
		if err := o.engine.StashPop(ctx); err != nil {
			// uncommitted changes may need manual recovery from the
			// stash ref; the revert itself succeeded
			o.warn("failed to reapply stashed changes", "error", err)
			result.StashPopFailed = true
		}
	}

	if err := o.log.Delete(key); err != nil {
		o.warn("failed to drop consumed operation record", "error", err)
	}

	return result, nil
}
