package gitfucktime

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// stashRef holds the work-in-progress commit captured by StashPush until
// StashPop restores it.
const stashRef = plumbing.ReferenceName("refs/gitfucktime/stash")

func stashSignature() object.Signature {
	return object.Signature{
		Name:  "gitfucktime",
		Email: "gitfucktime@localhost",
		When:  time.Now(),
	}
}

// StashPush saves uncommitted working tree changes as a commit under an
// internal ref and resets the working tree to HEAD. Returns false when the
// working tree is clean and there is nothing to save.
func (r *Repo) StashPush(ctx context.Context) (bool, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to obtain worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("failed to obtain worktree status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	headref, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	old := headref.Hash()

	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("failed to stage working tree changes: %w", err)
	}

	sig := stashSignature()
	stash, err := w.Commit("gitfucktime auto stash", &git.CommitOptions{
		Author:    &sig,
		Committer: &sig,
	})
	if err != nil {
		return false, fmt.Errorf("failed to capture working tree changes: %w", err)
	}

	// the commit above moved the branch; keep the capture on its own ref
	// and put the branch back
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(stashRef, stash)); err != nil {
		return false, fmt.Errorf("failed to set stash ref: %w", err)
	}
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(headref.Name(), old)); err != nil {
		return false, fmt.Errorf("failed to restore %s: %w", headref.Name().String(), err)
	}

	if err := r.ResetHard(ctx, old); err != nil {
		return false, err
	}

	logger.Debug("stashed working tree changes", "stash", stash, "head", old)

	return true, nil
}

// StashPop reapplies the changes captured by [Repo.StashPush] onto the
// working tree and drops the stash ref. The restore simply rewrites the
// files that the stash touched; it does not merge, so changes made to those
// files in between are overwritten.
func (r *Repo) StashPop(ctx context.Context) error {
	ref, err := r.repo.Reference(stashRef, true)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoStash, stashRef.String())
	}

	stash, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return fmt.Errorf("failed to load stash commit %s: %w", ref.Hash().String(), err)
	}

	parent, err := stash.Parent(0)
	if err != nil {
		return fmt.Errorf("failed to load stash parent: %w", err)
	}

	stashtree, err := stash.Tree()
	if err != nil {
		return fmt.Errorf("failed to obtain stash tree: %w", err)
	}
	parenttree, err := parent.Tree()
	if err != nil {
		return fmt.Errorf("failed to obtain stash parent tree: %w", err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, parenttree, stashtree, object.DefaultDiffTreeOptions)
	if err != nil {
		return fmt.Errorf("failed to diff stash against its parent: %w", err)
	}

	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to obtain worktree: %w", err)
	}

	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return fmt.Errorf("failed to inspect change: %w", err)
		}

		switch action {
		case merkletrie.Delete:
			if err := w.Filesystem.Remove(change.From.Name); err != nil {
				return fmt.Errorf("failed to remove %s: %w", change.From.Name, err)
			}
		default:
			f, err := stashtree.File(change.To.Name)
			if err != nil {
				return fmt.Errorf("failed to load %s from stash: %w", change.To.Name, err)
			}
			contents, err := f.Contents()
			if err != nil {
				return fmt.Errorf("failed to read %s from stash: %w", change.To.Name, err)
			}
			if err := util.WriteFile(w.Filesystem, change.To.Name, []byte(contents), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", change.To.Name, err)
			}
		}
	}

	if err := r.repo.Storer.RemoveReference(stashRef); err != nil {
		return fmt.Errorf("failed to drop stash ref: %w", err)
	}

	logger.Debug("restored stashed changes", "stash", stash.Hash, "files", len(changes))

	return nil
}
