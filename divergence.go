package gitfucktime

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Divergence holds how far the local branch and a remote ref have drifted
// apart.
type Divergence struct {
	Ahead  int
	Behind int
}

// Exceeds reports whether either count is above the threshold.
func (d *Divergence) Exceeds(threshold int) bool {
	return d != nil && (d.Ahead > threshold || d.Behind > threshold)
}

// CheckDivergence computes the ahead/behind counts of HEAD against
// remoteRef. It returns nil with no error when the remote ref does not
// resolve - there is nothing to warn about then. The caller decides what
// counts as risky; this only computes.
func CheckDivergence(ctx context.Context, r *Repo, remoteRef string) (*Divergence, error) {
	remote, err := r.ResolveRef(remoteRef)
	if err != nil {
		return nil, nil
	}

	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}

	base, err := r.MergeBase(remote, head)
	if err != nil {
		return nil, err
	}

	var stop []plumbing.Hash
	if base != nil {
		stop = []plumbing.Hash{base.Hash}
	}

	ahead, err := countReachable(ctx, head, stop)
	if err != nil {
		return nil, err
	}

	behind, err := countReachable(ctx, remote, stop)
	if err != nil {
		return nil, err
	}

	return &Divergence{Ahead: ahead, Behind: behind}, nil
}

// countReachable counts the commits reachable from c, not descending past
// the stop hashes. The stop commits themselves are not counted.
func countReachable(ctx context.Context, c *object.Commit, stop []plumbing.Hash) (int, error) {
	count := 0

	iter := object.NewCommitPreorderIter(c, nil, stop)
	defer iter.Close()

	err := iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		count++

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk commits from %s: %w", c.Hash.String(), err)
	}

	return count, nil
}
