package gitfucktime

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Retiming the last two of five commits changes exactly those two: the
// other three keep their hashes and timestamps.
func TestRewriteHistory_LastN(t *testing.T) {
	times := weekdayTimes(5)
	repo, hashes := newTestRepo(t, times...)
	ctx := context.Background()

	sel, err := SelectLastN(ctx, repo, 2)
	if err != nil {
		t.Fatal(err)
	}

	window := testWindow()
	plan, err := Allocate(rand.New(rand.NewSource(7)), sel, window, DefaultBusinessHours, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	newhead, err := repo.RewriteHistory(ctx, sel, plan)
	if err != nil {
		t.Fatal(err)
	}

	head, err := repo.HeadHash()
	if err != nil {
		t.Fatal(err)
	}
	if head != newhead {
		t.Fatalf("HEAD %s does not point at the new head %s", head, newhead)
	}

	hist, err := repo.LinearHistory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 5 {
		t.Fatalf("want 5 commits after rewrite, got %d", len(hist))
	}

	// untouched prefix
	for i := 0; i < 3; i++ {
		if hist[i].Hash != hashes[i] {
			t.Errorf("commit %d: want untouched hash %s, got %s", i, hashes[i], hist[i].Hash)
		}
		if !hist[i].Committer.When.Equal(times[i]) {
			t.Errorf("commit %d: timestamp changed to %s", i, hist[i].Committer.When)
		}
	}

	// retimed suffix
	for i := 3; i < 5; i++ {
		if hist[i].Hash == hashes[i] {
			t.Errorf("commit %d: hash did not change", i)
		}

		want, found := plan.Lookup(hashes[i])
		if !found {
			t.Fatalf("commit %d missing from plan", i)
		}
		if !hist[i].Committer.When.Equal(want) {
			t.Errorf("commit %d: want committed at %s, got %s", i, want, hist[i].Committer.When)
		}
		if !hist[i].Author.When.Equal(hist[i].Committer.When) {
			t.Errorf("commit %d: authored-at %s differs from committed-at %s", i, hist[i].Author.When, hist[i].Committer.When)
		}
		if w := hist[i].Committer.When; w.Before(window.Start) || w.After(window.End) {
			t.Errorf("commit %d: %s is outside the window", i, w)
		}
	}

	// trees are untouched by a timestamp rewrite
	for i := range hist {
		orig, err := repo.repo.CommitObject(hashes[i])
		if err != nil {
			t.Fatal(err)
		}
		if hist[i].TreeHash != orig.TreeHash {
			t.Errorf("commit %d: tree changed from %s to %s", i, orig.TreeHash, hist[i].TreeHash)
		}
	}

	// the stored hashes agree with the content hash
	for i, c := range hist {
		h, err := GetHash(c)
		if err != nil {
			t.Fatal(err)
		}
		if *h != c.Hash {
			t.Errorf("commit %d: stored as %s, content hashes to %s", i, c.Hash, *h)
		}
	}
}

func TestRewriteHistory_All(t *testing.T) {
	repo, hashes := newTestRepo(t, weekdayTimes(4)...)
	ctx := context.Background()

	sel, err := SelectAll(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := Allocate(rand.New(rand.NewSource(3)), sel, testWindow(), DefaultBusinessHours, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.RewriteHistory(ctx, sel, plan); err != nil {
		t.Fatal(err)
	}

	hist, err := repo.LinearHistory(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if hist[0].NumParents() != 0 {
		t.Errorf("rewritten root has %d parents", hist[0].NumParents())
	}

	previous := time.Time{}
	for i, c := range hist {
		if c.Hash == hashes[i] {
			t.Errorf("commit %d: hash did not change", i)
		}
		if c.Committer.When.Before(previous) {
			t.Errorf("commit %d: committed at %s, before its ancestor", i, c.Committer.When)
		}
		previous = c.Committer.When
	}
}

// A rewrite followed by a hard reset to the recorded snapshot restores the
// exact commit graph.
func TestRewriteHistory_RevertRoundTrip(t *testing.T) {
	repo, hashes := newTestRepo(t, weekdayTimes(5)...)
	ctx := context.Background()

	oldHead, err := repo.HeadHash()
	if err != nil {
		t.Fatal(err)
	}

	sel, err := SelectLastN(ctx, repo, 3)
	if err != nil {
		t.Fatal(err)
	}
	plan, err := Allocate(rand.New(rand.NewSource(11)), sel, testWindow(), DefaultBusinessHours, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	newhead, err := repo.RewriteHistory(ctx, sel, plan)
	if err != nil {
		t.Fatal(err)
	}
	if newhead == oldHead {
		t.Fatal("rewrite did not move HEAD")
	}

	if err := repo.ResetHard(ctx, oldHead); err != nil {
		t.Fatal(err)
	}

	head, err := repo.HeadHash()
	if err != nil {
		t.Fatal(err)
	}
	if head != oldHead {
		t.Fatalf("want HEAD back at %s, got %s", oldHead, head)
	}

	hist, err := repo.LinearHistory(ctx)
	if err != nil {
		t.Fatal(err)
	}

	restored := make([]string, 0, len(hist))
	for _, c := range hist {
		restored = append(restored, c.Hash.String())
	}
	original := make([]string, 0, len(hashes))
	for _, h := range hashes {
		original = append(original, h.String())
	}

	if diff := cmp.Diff(original, restored); diff != "" {
		t.Errorf("history mismatch after revert (-want +got):\n%s", diff)
	}
}
