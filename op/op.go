// Package op is the stateful layer over the gitfucktime core: it owns the
// configuration, the durable operation log, and the rewrite/revert
// transactions. The repository engine is consumed through the [Engine]
// interface so the transactions can be exercised against a fake.
package op

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/G0razd/gitfucktime"
)

// Engine is what the transactions need from the version control engine.
// [gitfucktime.Repo] implements it.
type Engine interface {
	HeadHash() (plumbing.Hash, error)
	CreateBranch(name string) error
	RewriteHistory(ctx context.Context, sel *gitfucktime.Selection, plan *gitfucktime.Plan) (plumbing.Hash, error)
	ResetHard(ctx context.Context, target plumbing.Hash) error
	StashPush(ctx context.Context) (bool, error)
	StashPop(ctx context.Context) error
	GitDir() string
}

var _ Engine = (*gitfucktime.Repo)(nil)

// Op ties the engine, the configuration and the operation log together for
// one repository.
type Op struct {
	config *Config
	engine Engine

	db        *bbolt.DB
	tmpDbPath string
	log       OperationLog
}

// Config returns the configuration the Op was built with.
func (o *Op) Config() *Config {
	return o.config
}

// Log returns the operation log.
func (o *Op) Log() OperationLog {
	return o.log
}

func (o *Op) Close() error {
	return o.closeDb()
}

// warn logs a non-fatal problem unless the configuration squelches
// warnings.
func (o *Op) warn(msg string, args ...any) {
	if o.config.SquelchWarnings {
		slog.Debug(msg, args...)
		return
	}

	slog.Warn(msg, args...)
}

// backupName produces a unique branch name for a backup of the current
// state.
func (o *Op) backupName() string {
	return fmt.Sprintf(
		"%s-%s-%s",
		o.config.BackupPrefix,
		time.Now().Format("2006-01-02-15-04-05"),
		uuid.NewString()[:8])
}
