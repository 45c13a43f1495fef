package gitfucktime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Repo wraps a [git.Repository] with the handful of operations this package
// needs from the version control engine.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, searching upwards for the .git
// directory like the git command line does.
func Open(path string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	return NewRepo(r), nil
}

// NewRepo wraps an already opened [git.Repository].
func NewRepo(r *git.Repository) *Repo {
	return &Repo{repo: r}
}

// GitDir returns the path of the .git directory, or empty string for
// repositories without filesystem storage.
func (r *Repo) GitDir() string {
	if s, ok := r.repo.Storer.(*filesystem.Storage); ok {
		return s.Filesystem().Root()
	}

	return ""
}

// HeadCommit returns the commit HEAD points at.
func (r *Repo) HeadCommit() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	c, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit %s: %w", ref.Hash().String(), err)
	}

	return c, nil
}

// HeadHash returns the hash HEAD points at.
func (r *Repo) HeadHash() (plumbing.Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return ref.Hash(), nil
}

// LinearHistory returns the full first-parent history from HEAD in ancestor
// to descendant order.
func (r *Repo) LinearHistory(ctx context.Context) ([]*object.Commit, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}

	return LinearHistory(ctx, head, nil)
}

// CommitTimestamp returns the committer timestamp of the commit, or false if
// the commit cannot be resolved.
func (r *Repo) CommitTimestamp(h plumbing.Hash) (time.Time, bool) {
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return time.Time{}, false
	}

	return c.Committer.When, true
}

// ResolveRef resolves a reference given as "remote/branch", a plain branch
// name, or a full reference name, to its commit.
func (r *Repo) ResolveRef(name string) (*object.Commit, error) {
	candidates := make([]plumbing.ReferenceName, 0, 3)

	if remote, branch, found := strings.Cut(name, "/"); found {
		candidates = append(candidates, plumbing.NewRemoteReferenceName(remote, branch))
	}
	candidates = append(candidates,
		plumbing.NewBranchReferenceName(name),
		plumbing.ReferenceName(name))

	for _, candidate := range candidates {
		ref, err := r.repo.Reference(candidate, true)
		if err != nil || ref.Hash().IsZero() {
			continue
		}

		return r.repo.CommitObject(ref.Hash())
	}

	return nil, fmt.Errorf("%w: %s", ErrUnresolvableRef, name)
}

// MergeBase returns the nearest common ancestor of the two commits, or nil
// when they share no history.
func (r *Repo) MergeBase(a, b *object.Commit) (*object.Commit, error) {
	bases, err := a.MergeBase(b)
	if err != nil {
		return nil, fmt.Errorf("failed to compute merge base of %s and %s: %w", a.Hash.String(), b.Hash.String(), err)
	}
	if len(bases) == 0 {
		return nil, nil
	}

	return bases[0], nil
}

// CreateBranch creates a branch pointing at the current HEAD. The branch
// must not already exist.
func (r *Repo) CreateBranch(name string) error {
	head, err := r.HeadHash()
	if err != nil {
		return err
	}

	refname := plumbing.NewBranchReferenceName(name)
	if existing, err := r.repo.Reference(refname, false); err == nil && existing != nil {
		return fmt.Errorf("branch %s already exists", name)
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(refname, head)); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}

	return nil
}

// MoveHead points the currently checked out branch (or a detached HEAD) at
// target. The working tree is left alone: a timestamp rewrite produces the
// exact same trees, so there is nothing to check out.
func (r *Repo) MoveHead(target plumbing.Hash) error {
	ref, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	name := ref.Name()
	if name == plumbing.HEAD {
		// detached
		return r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, target))
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, target)); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", name.String(), target.String(), err)
	}

	return nil
}

// ResetHard hard-resets the working tree and the current branch to target.
func (r *Repo) ResetHard(ctx context.Context, target plumbing.Hash) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to obtain worktree: %w", err)
	}

	if err := w.Reset(&git.ResetOptions{Commit: target, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", target.String(), err)
	}

	return nil
}

// RewriteHistory rebuilds the selection's rewrite span with the timestamps
// from plan and moves the branch reference to the new head. This is the
// single destructive operation of the package.
func (r *Repo) RewriteHistory(ctx context.Context, sel *Selection, plan *Plan) (plumbing.Hash, error) {
	span := sel.RewriteSpan()
	if len(span) == 0 {
		return plumbing.ZeroHash, ErrNoCommits
	}

	newhist, err := RewriteTimestamps(ctx, span, plan, r.repo.Storer)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	newhead := newhist[len(newhist)-1].Hash
	if err := r.MoveHead(newhead); err != nil {
		return plumbing.ZeroHash, err
	}

	return newhead, nil
}
