package gitfucktime

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RewriteTimestamps rebuilds the commits of hist in s, applying the
// timestamps from plan and remapping parent hashes as it goes.
//
// hist must be in ancestor to descendant order, for example from
// [LinearHistory]. Commits present in the plan get the planned instant as
// both the authored and the committed timestamp; commits not in the plan
// keep their original timestamps but are still rebuilt, since their parent
// hashes change. Parents outside hist keep their original identity, so a
// rewrite bounded by an anchor leaves everything up to the anchor untouched.
// GPG signatures cannot survive a rewrite and are dropped.
func RewriteTimestamps(
	ctx context.Context,
	hist []*object.Commit,
	plan *Plan,
	s storer.EncodedObjectStorer,
) ([]*object.Commit, error) {
	newhist := make([]*object.Commit, 0, len(hist))

	fromorigtonew := make(map[plumbing.Hash]plumbing.Hash)

	n := len(hist)

	for i, c := range hist {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if c == nil {
			continue
		}

		parents := make([]plumbing.Hash, 0, c.NumParents())
		for _, p := range c.ParentHashes {
			if newparent, found := fromorigtonew[p]; found {
				parents = append(parents, newparent)
			} else {
				parents = append(parents, p)
			}
		}

		author := c.Author
		committer := c.Committer
		if when, found := plan.Lookup(c.Hash); found {
			author.When = when
			committer.When = when
		}

		newcommit := &object.Commit{
			Author:       author,
			Committer:    committer,
			Message:      c.Message,
			TreeHash:     c.TreeHash,
			ParentHashes: parents,
		}

		if err := updateHashAndSave(ctx, newcommit, s); err != nil {
			return nil, fmt.Errorf("failed to save new commit for %s: %w", c.Hash.String(), err)
		}

		logger.Debug("retimed commit", "id", i, "total", n, "commit", c.Hash, "newcommit", newcommit.Hash)

		newhist = append(newhist, newcommit)
		fromorigtonew[c.Hash] = newcommit.Hash
	}

	return newhist, nil
}
