package op

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newTestLog(t *testing.T) *boltLog {
	t.Helper()

	db, err := bbolt.Open(filepath.Join(t.TempDir(), "log.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &boltLog{db: db}
}

func TestBoltLog_EmptyLast(t *testing.T) {
	l := newTestLog(t)

	record, _, err := l.Last()
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBoltLog_AppendLastDelete(t *testing.T) {
	l := newTestLog(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Append(&RewriteRecord{
			OldHead:   fmt.Sprintf("%040d", i),
			NewHead:   fmt.Sprintf("%040d", i+1),
			Rewritten: i + 1,
			When:      time.Date(2024, time.March, 1+i, 12, 0, 0, 0, time.UTC),
		}))
	}

	// Last sees the newest record
	record, key, err := l.Last()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, fmt.Sprintf("%040d", 2), record.OldHead)
	assert.Equal(t, 3, record.Rewritten)

	// deleting it exposes the one before
	require.NoError(t, l.Delete(key))

	record, _, err = l.Last()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, fmt.Sprintf("%040d", 1), record.OldHead)
	assert.Equal(t, 2, record.Rewritten)
}

func TestBoltLog_NilDB(t *testing.T) {
	l := &boltLog{}

	assert.ErrorIs(t, l.Append(&RewriteRecord{}), ErrNilDB)

	_, _, err := l.Last()
	assert.ErrorIs(t, err, ErrNilDB)

	assert.ErrorIs(t, l.Delete(1), ErrNilDB)
}

func TestOp_TempDbPath(t *testing.T) {
	o, err := New(&Config{BackupPrefix: "b"}, newFakeEngine())
	require.NoError(t, err)
	defer o.Close()

	assert.NotEmpty(t, o.tmpDbPath)
	require.NoError(t, o.Log().Append(&RewriteRecord{OldHead: "x"}))
}
