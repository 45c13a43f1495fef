package op

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/G0razd/gitfucktime"
)

// fakeEngine records the calls the transactions make instead of touching a
// real repository.
type fakeEngine struct {
	head    plumbing.Hash
	newHead plumbing.Hash
	gitdir  string

	failBranch   bool
	failRewrite  bool
	dirty        bool
	failStashPop bool

	branches []string
	rewrites int
	resets   []plumbing.Hash
	stashed  bool
	popped   bool
}

var _ Engine = (*fakeEngine)(nil)

func (e *fakeEngine) HeadHash() (plumbing.Hash, error) {
	return e.head, nil
}

func (e *fakeEngine) CreateBranch(name string) error {
	if e.failBranch {
		return errors.New("branch creation refused")
	}

	e.branches = append(e.branches, name)

	return nil
}

func (e *fakeEngine) RewriteHistory(ctx context.Context, sel *gitfucktime.Selection, plan *gitfucktime.Plan) (plumbing.Hash, error) {
	if e.failRewrite {
		return plumbing.ZeroHash, errors.New("rewrite refused")
	}

	e.rewrites++
	e.head = e.newHead

	return e.newHead, nil
}

func (e *fakeEngine) ResetHard(ctx context.Context, target plumbing.Hash) error {
	e.resets = append(e.resets, target)
	e.head = target

	return nil
}

func (e *fakeEngine) StashPush(ctx context.Context) (bool, error) {
	if !e.dirty {
		return false, nil
	}

	e.stashed = true

	return true, nil
}

func (e *fakeEngine) StashPop(ctx context.Context) error {
	if e.failStashPop {
		return errors.New("stash pop refused")
	}

	e.popped = true

	return nil
}

func (e *fakeEngine) GitDir() string {
	return e.gitdir
}

var (
	oldHeadHash = gitfucktime.MustDecodeHashHex("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	newHeadHash = gitfucktime.MustDecodeHashHex("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func newFakeEngine() *fakeEngine {
	return &fakeEngine{head: oldHeadHash, newHead: newHeadHash}
}

// newTestOp wires an Op over the fake engine with a bbolt log in a temp
// directory.
func newTestOp(t *testing.T, cfg *Config, engine Engine) *Op {
	t.Helper()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.DbPath = filepath.Join(t.TempDir(), "log.db")

	o, err := New(cfg, engine)
	require.NoError(t, err)
	t.Cleanup(func() { o.Close() })

	return o
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// testSelection fabricates a two commit selection and a matching plan.
func testSelection(t *testing.T) (*gitfucktime.Selection, *gitfucktime.Plan) {
	t.Helper()

	commits := []*object.Commit{
		{Hash: gitfucktime.MustDecodeHashHex("1111111111111111111111111111111111111111")},
		{Hash: gitfucktime.MustDecodeHashHex("2222222222222222222222222222222222222222")},
	}
	sel := &gitfucktime.Selection{
		Mode:    gitfucktime.SelectModeAll,
		Commits: commits,
		History: commits,
	}

	window := gitfucktime.Window{
		Start: time.Date(2020, time.December, 7, 0, 0, 0, 0, time.Local),
		End:   time.Date(2020, time.December, 11, 23, 59, 59, 0, time.Local),
	}

	plan, err := gitfucktime.Allocate(newRand(), sel, window, gitfucktime.DefaultBusinessHours, time.Time{})
	require.NoError(t, err)

	return sel, plan
}
