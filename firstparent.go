package gitfucktime

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// LinearHistory walks the history from head towards the root and returns the
// commits in ancestor to descendant order, head being the last element.
//
// roots can optionally be set so the walk stops when one of those commits is
// seen; the root commit itself is included in the result.
//
// Only linear histories are supported. A walked commit with more than one
// parent causes [ErrNonLinearHistory] - rewriting timestamps across merge
// topologies is not defined.
func LinearHistory(
	ctx context.Context,
	head *object.Commit,
	roots HashSet,
) ([]*object.Commit, error) {
	if roots == nil {
		roots = make(HashSet)
	}

	result := make([]*object.Commit, 0)

	current := head

walkloop:
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result = append(result, current)

		if _, isroot := roots[current.Hash]; isroot {
			break walkloop
		}

		switch n := current.NumParents(); {
		case n == 0:
			break walkloop
		case n > 1:
			return nil, fmt.Errorf("%w: commit %s has %d parents", ErrNonLinearHistory, current.Hash.String(), n)
		}

		p, err := current.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("cannot get parent for %s: %w", current.Hash.String(), err)
		}

		current = p
	}

	reverseCommits(result)

	return result, nil
}

func reverseCommits(commits []*object.Commit) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}
