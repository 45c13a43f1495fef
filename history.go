package gitfucktime

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// HistoryEntry is one line of the commit history view.
type HistoryEntry struct {
	Hash    plumbing.Hash
	When    time.Time
	Author  string
	Message string
}

// History lists the linear history newest first. limit caps the number of
// entries, 0 or negative means no cap. Only the first line of each commit
// message is kept.
func History(ctx context.Context, r *Repo, limit int) ([]HistoryEntry, error) {
	hist, err := r.LinearHistory(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(hist))
	for i := len(hist) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}

		c := hist[i]
		message, _, _ := strings.Cut(c.Message, "\n")

		entries = append(entries, HistoryEntry{
			Hash:    c.Hash,
			When:    c.Committer.When,
			Author:  c.Author.Name,
			Message: strings.TrimSpace(message),
		})
	}

	return entries, nil
}
