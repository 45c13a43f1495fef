package gitfucktime

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

func testSignature(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  "Dev Eloper",
		Email: "dev@example.com",
		When:  when,
	}
}

// newTestRepo builds an in-memory repository with one commit per entry of
// times, each touching the same file.
func newTestRepo(t *testing.T, times ...time.Time) (*Repo, []plumbing.Hash) {
	t.Helper()

	fs := memfs.New()
	r, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatal(err)
	}

	w, err := r.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	hashes := make([]plumbing.Hash, 0, len(times))
	for i, when := range times {
		if err := util.WriteFile(fs, "file.txt", []byte(fmt.Sprintf("change %d\n", i)), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := w.Add("file.txt"); err != nil {
			t.Fatal(err)
		}

		h, err := w.Commit(fmt.Sprintf("commit %d", i), &git.CommitOptions{
			Author:    testSignature(when),
			Committer: testSignature(when),
		})
		if err != nil {
			t.Fatal(err)
		}

		hashes = append(hashes, h)
	}

	return NewRepo(r), hashes
}

// weekdayTimes produces n committer timestamps on consecutive business
// days, starting at a fixed Monday.
func weekdayTimes(n int) []time.Time {
	times := make([]time.Time, 0, n)

	// Monday
	day := time.Date(2020, time.November, 2, 10, 0, 0, 0, time.Local)
	for i := 0; i < n; i++ {
		times = append(times, day)
		day = NextBusinessDay(day)
	}

	return times
}

// setRemoteRef points refs/remotes/<remote>/<branch> at h.
func setRemoteRef(t *testing.T, r *Repo, remote, branch string, h plumbing.Hash) {
	t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), h)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		t.Fatal(err)
	}
}

func selectionHashes(sel *Selection) []plumbing.Hash {
	hashes := make([]plumbing.Hash, 0, len(sel.Commits))
	for _, c := range sel.Commits {
		hashes = append(hashes, c.Hash)
	}

	return hashes
}
