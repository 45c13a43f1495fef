package gitfucktime

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// SelectMode picks which part of the history gets new timestamps.
type SelectMode int

const (
	// SelectModeAll retimes the whole history.
	SelectModeAll SelectMode = iota
	// SelectModeLastN retimes the N commits closest to HEAD.
	SelectModeLastN
	// SelectModeFirstN retimes the N oldest commits.
	SelectModeFirstN
	// SelectModeUnpushed retimes commits not reachable from the remote ref.
	SelectModeUnpushed
)

func (m SelectMode) String() string {
	switch m {
	case SelectModeAll:
		return "all"
	case SelectModeLastN:
		return "last-n"
	case SelectModeFirstN:
		return "first-n"
	case SelectModeUnpushed:
		return "unpushed"
	default:
		return "unknown"
	}
}

// NewSelectMode maps the lastN/firstN/unpushed options onto a single mode.
// The three are mutually exclusive; asking for more than one is
// [ErrConflictingSelection], rejected before anything is mutated.
func NewSelectMode(lastN, firstN int, unpushed bool) (SelectMode, error) {
	chosen := 0
	mode := SelectModeAll

	if lastN > 0 {
		chosen++
		mode = SelectModeLastN
	}
	if firstN > 0 {
		chosen++
		mode = SelectModeFirstN
	}
	if unpushed {
		chosen++
		mode = SelectModeUnpushed
	}

	if chosen > 1 {
		return SelectModeAll, fmt.Errorf("%w: choose one of last, first, unpushed", ErrConflictingSelection)
	}

	return mode, nil
}

// Selection is the ordered set of commits to retime, together with the
// anchor commit immediately preceding the set.
type Selection struct {
	Mode SelectMode

	// Commits to assign new timestamps, ancestor to descendant order.
	Commits []*object.Commit

	// Anchor is the commit just before the selected range, nil at the
	// repository root. Its timestamp seeds the auto-detected window start.
	Anchor *object.Commit

	// History is the linear history the selection was carved out of,
	// ancestor to descendant order.
	History []*object.Commit

	// N is the requested count for the last-n mode.
	N int
}

// AnchorTime returns the committer timestamp of the anchor, or the zero time
// when there is no anchor.
func (s *Selection) AnchorTime() time.Time {
	if s.Anchor == nil {
		return time.Time{}
	}

	return s.Anchor.Committer.When
}

// RewriteSpan returns the commits that have to be rebuilt by the rewrite.
// For suffix selections (last-n, unpushed) only the selected commits change;
// for prefix and whole-history selections every descendant of a retimed
// commit gets a new hash, so the full history is rebuilt.
func (s *Selection) RewriteSpan() []*object.Commit {
	switch s.Mode {
	case SelectModeLastN, SelectModeUnpushed:
		return s.Commits
	default:
		return s.History
	}
}

// RevisionRange describes the span of the rewrite the way git would, for
// display and for the operation log.
func (s *Selection) RevisionRange() string {
	switch {
	case s.Mode == SelectModeLastN && s.Anchor != nil:
		return fmt.Sprintf("HEAD~%d..HEAD", s.N)
	case s.Anchor != nil:
		return fmt.Sprintf("%s..HEAD", s.Anchor.Hash.String())
	default:
		return "HEAD"
	}
}

// Select dispatches to the selection mode. n is only consulted for the
// last-n and first-n modes, remoteRef for unpushed.
func Select(ctx context.Context, r *Repo, mode SelectMode, n int, remoteRef string) (*Selection, error) {
	switch mode {
	case SelectModeLastN:
		return SelectLastN(ctx, r, n)
	case SelectModeFirstN:
		return SelectFirstN(ctx, r, n)
	case SelectModeUnpushed:
		return SelectUnpushed(ctx, r, remoteRef)
	default:
		return SelectAll(ctx, r)
	}
}

// SelectAll selects the whole linear history. There is no anchor: the oldest
// commit is the repository root.
func SelectAll(ctx context.Context, r *Repo) (*Selection, error) {
	hist, err := r.LinearHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &Selection{
		Mode:    SelectModeAll,
		Commits: hist,
		History: hist,
	}, nil
}

// SelectLastN selects the n commits closest to HEAD. The anchor is the
// commit n steps before HEAD. When the history holds fewer than n commits
// the whole history is selected with no anchor and a warning.
func SelectLastN(ctx context.Context, r *Repo, n int) (*Selection, error) {
	hist, err := r.LinearHistory(ctx)
	if err != nil {
		return nil, err
	}

	sel := &Selection{
		Mode:    SelectModeLastN,
		History: hist,
		N:       n,
	}

	if len(hist) < n {
		logger.Warn("fewer commits than requested, selecting all", "requested", n, "available", len(hist))
		sel.Commits = hist
		sel.N = len(hist)

		return sel, nil
	}

	sel.Commits = hist[len(hist)-n:]
	if len(hist) > n {
		sel.Anchor = hist[len(hist)-n-1]
	}

	return sel, nil
}

// SelectFirstN selects the n oldest commits. The oldest selected commit is
// the repository root, so there is never an anchor.
func SelectFirstN(ctx context.Context, r *Repo, n int) (*Selection, error) {
	hist, err := r.LinearHistory(ctx)
	if err != nil {
		return nil, err
	}

	if len(hist) < n {
		logger.Warn("fewer commits than requested, selecting all", "requested", n, "available", len(hist))
		n = len(hist)
	}

	return &Selection{
		Mode:    SelectModeFirstN,
		Commits: hist[:n],
		History: hist,
	}, nil
}

// SelectUnpushed selects the commits reachable from HEAD but not from
// remoteRef, anchored at their merge base. An unresolvable remote is not an
// error: the selection degrades to the whole history with a warning.
func SelectUnpushed(ctx context.Context, r *Repo, remoteRef string) (*Selection, error) {
	remote, err := r.ResolveRef(remoteRef)
	if err != nil {
		logger.Warn("could not resolve remote ref, using all commits on HEAD", "ref", remoteRef)
		return SelectAll(ctx, r)
	}

	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}

	base, err := r.MergeBase(remote, head)
	if err != nil {
		return nil, err
	}

	if base == nil {
		logger.Warn("no common history with remote ref, using all commits on HEAD", "ref", remoteRef)
		hist, err := LinearHistory(ctx, head, nil)
		if err != nil {
			return nil, err
		}

		return &Selection{
			Mode:    SelectModeUnpushed,
			Commits: hist,
			History: hist,
		}, nil
	}

	hist, err := LinearHistory(ctx, head, NewHashSet(base.Hash))
	if err != nil {
		return nil, err
	}

	// hist starts at the merge base itself
	return &Selection{
		Mode:    SelectModeUnpushed,
		Commits: hist[1:],
		Anchor:  hist[0],
		History: hist,
	}, nil
}
