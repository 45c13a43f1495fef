package op

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/G0razd/gitfucktime"
)

// TxState tracks a transaction through its lifecycle.
type TxState int

const (
	TxPlanned TxState = iota
	TxBackedUp
	TxRewriting
	TxCommitted
	TxFailed
)

func (s TxState) String() string {
	switch s {
	case TxPlanned:
		return "planned"
	case TxBackedUp:
		return "backed-up"
	case TxRewriting:
		return "rewriting"
	case TxCommitted:
		return "committed"
	case TxFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transaction applies one timestamp plan to the repository. Lifecycle:
// planned -> backed-up -> rewriting -> committed or failed. The rewrite
// itself is a single engine invocation; the engine either applies it fully
// or not at all, so a failed transaction performs no rollback of its own -
// the backup branch, created before the destructive step, is the recovery
// path.
type Transaction struct {
	op   *Op
	sel  *gitfucktime.Selection
	plan *gitfucktime.Plan

	state  TxState
	backup string
}

// NewTransaction plans a rewrite of the selection with the given plan.
func (o *Op) NewTransaction(sel *gitfucktime.Selection, plan *gitfucktime.Plan) (*Transaction, error) {
	if sel == nil {
		return nil, ErrNilSelection
	}
	if plan == nil {
		return nil, ErrNilPlan
	}
	if plan.Len() != len(sel.Commits) {
		return nil, fmt.Errorf("%w: %d commits selected, %d planned", ErrPlanMismatch, len(sel.Commits), plan.Len())
	}

	return &Transaction{
		op:    o,
		sel:   sel,
		plan:  plan,
		state: TxPlanned,
	}, nil
}

func (t *Transaction) State() TxState {
	return t.state
}

// Backup returns the name of the backup branch, empty when none was
// created.
func (t *Transaction) Backup() string {
	return t.backup
}

// Execute runs the transaction: write the transient plan artifact, create
// the backup branch, invoke the rewrite, append the record. A transaction
// executes at most once.
//
// Backup creation failure is reported and the operation proceeds - losing
// the safety net is preferable to refusing the operation the user asked
// for. Rewrite failure is fatal and leaves the backup (if any) in place.
func (t *Transaction) Execute(ctx context.Context) (*RewriteRecord, error) {
	if t.state != TxPlanned {
		return nil, fmt.Errorf("%w: state %s", ErrTxFinished, t.state)
	}

	oldHead, err := t.op.engine.HeadHash()
	if err != nil {
		t.state = TxFailed
		return nil, err
	}

	artifact, err := t.writePlanArtifact()
	if err != nil {
		t.state = TxFailed
		return nil, err
	}
	if artifact != "" {
		defer os.Remove(artifact)
	}

	if t.op.config.NoBackup {
		t.op.warn("skipping backup creation (as requested)")
	} else {
		name := t.op.backupName()
		if err := t.op.engine.CreateBranch(name); err != nil {
			t.op.warn("failed to create backup branch, continuing", "branch", name, "error", err)
		} else {
			t.backup = name
		}
	}
	t.state = TxBackedUp

	t.state = TxRewriting
	newHead, err := t.op.engine.RewriteHistory(ctx, t.sel, t.plan)
	if err != nil {
		t.state = TxFailed
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	record := &RewriteRecord{
		Backup:    t.backup,
		Range:     t.sel.RevisionRange(),
		OldHead:   oldHead.String(),
		NewHead:   newHead.String(),
		Rewritten: t.plan.Len(),
		When:      time.Now(),
	}

	if err := t.op.log.Append(record); err != nil {
		// the rewrite is already done; a missing record only loses the
		// revert shortcut, the backup branch still exists
		t.op.warn("failed to append operation record", "error", err)
	}

	t.state = TxCommitted

	return record, nil
}

// planArtifact is the transient on-disk form of the plan: one entry per
// commit with the authored and committed dates spelled out separately. It is
// written before the rewrite and removed afterwards, success or failure;
// nothing reads it back.
type planArtifact struct {
	Commits []planArtifactEntry `yaml:"commits"`
}

type planArtifactEntry struct {
	Commit        string    `yaml:"commit"`
	AuthorDate    time.Time `yaml:"author_date"`
	CommitterDate time.Time `yaml:"committer_date"`
}

func (t *Transaction) writePlanArtifact() (string, error) {
	gitdir := t.op.engine.GitDir()
	if gitdir == "" {
		return "", nil
	}

	artifact := planArtifact{Commits: make([]planArtifactEntry, 0, t.plan.Len())}
	for _, pc := range t.plan.Commits {
		artifact.Commits = append(artifact.Commits, planArtifactEntry{
			Commit:        pc.Hash.String(),
			AuthorDate:    pc.When,
			CommitterDate: pc.When,
		})
	}

	data, err := yaml.Marshal(&artifact)
	if err != nil {
		return "", fmt.Errorf("failed to encode plan artifact: %w", err)
	}

	path := filepath.Join(gitdir, "gitfucktime-plan.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write plan artifact: %w", err)
	}

	return path, nil
}
