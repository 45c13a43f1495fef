// gitfucktime rewrites the timestamps of git commits so that they spread
// plausibly over a chosen time frame: every generated instant falls on a
// business day within business hours, and the chronological order of the new
// timestamps never contradicts the ancestry order of the commits.
//
// The package works on linear first-parent histories only. Commits are
// selected with one of the [SelectMode] modes, timestamps are drawn by
// [Allocate], and [Repo.RewriteHistory] performs the single destructive step
// by rebuilding the affected commits in the repository's object store and
// moving the branch reference.
//
// Histories containing merge commits are refused, see [LinearHistory].
package gitfucktime
