package gitfucktime

import (
	"math/rand"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// PlannedCommit is one entry of a [Plan].
type PlannedCommit struct {
	Hash plumbing.Hash
	When time.Time
}

// Plan assigns a new timestamp to each selected commit. Enumerated ancestor
// to descendant, the assigned instants are non-decreasing.
type Plan struct {
	Commits []PlannedCommit

	byHash map[plumbing.Hash]time.Time
}

// Lookup returns the planned timestamp for the commit, if any.
func (p *Plan) Lookup(h plumbing.Hash) (time.Time, bool) {
	when, ok := p.byHash[h]
	return when, ok
}

// Len returns the number of planned commits.
func (p *Plan) Len() int {
	return len(p.Commits)
}

// Allocate draws one business instant per selected commit and assigns them
// in ancestry order.
//
// The samples are independent draws from [RandomBusinessInstant], sorted
// ascending afterwards; sorted sample i goes to the i-th commit of the
// selection. Sorting after the fact rather than constraining the sampling
// keeps the draws simple and still guarantees that chronological order never
// contradicts ancestry order. Some clustering of nearby timestamps is
// accepted.
//
// When maxInstant is non-zero no assigned instant exceeds it.
func Allocate(rng *rand.Rand, sel *Selection, w Window, hours BusinessHours, maxInstant time.Time) (*Plan, error) {
	if len(sel.Commits) == 0 {
		return nil, ErrNoCommits
	}

	samples := make([]time.Time, 0, len(sel.Commits))
	for range sel.Commits {
		instant, err := RandomBusinessInstant(rng, w, hours, maxInstant)
		if err != nil {
			return nil, err
		}

		samples = append(samples, instant)
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Before(samples[j]) })

	plan := &Plan{
		Commits: make([]PlannedCommit, 0, len(samples)),
		byHash:  make(map[plumbing.Hash]time.Time, len(samples)),
	}

	for i, c := range sel.Commits {
		plan.Commits = append(plan.Commits, PlannedCommit{Hash: c.Hash, When: samples[i]})
		plan.byHash[c.Hash] = samples[i]
	}

	return plan, nil
}
