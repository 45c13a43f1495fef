package op

import (
	"encoding/binary"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"go.etcd.io/bbolt"
)

const REWRITE_BUCKET = "rewrites"

// boltLog is the bbolt backed [OperationLog]. Records are stored under
// big-endian sequence numbers so a reverse cursor scan finds the most recent
// one. bbolt syncs on every update, which is what makes the backup snapshot
// durable before the rewrite starts.
type boltLog struct {
	db *bbolt.DB
}

var _ OperationLog = (*boltLog)(nil)

func (l *boltLog) Append(r *RewriteRecord) error {
	if l.db == nil {
		return ErrNilDB
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(REWRITE_BUCKET))
		if err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}

		return b.Put(itob(seq), data)
	})
}

func (l *boltLog) Last() (*RewriteRecord, uint64, error) {
	if l.db == nil {
		return nil, 0, ErrNilDB
	}

	r := (*RewriteRecord)(nil)
	key := uint64(0)

	err := l.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(REWRITE_BUCKET))
		if b == nil {
			return nil
		}

		k, v := b.Cursor().Last()
		if k == nil {
			return nil
		}

		r = new(RewriteRecord)
		if err := yaml.Unmarshal(v, r); err != nil {
			r = nil
			return err
		}
		key = binary.BigEndian.Uint64(k)

		return nil
	})

	return r, key, err
}

func (l *boltLog) Delete(key uint64) error {
	if l.db == nil {
		return ErrNilDB
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(REWRITE_BUCKET))
		if b == nil {
			return nil
		}

		return b.Delete(itob(key))
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// tempfile provides a temporary file, adopted from the example on [bbolt doc]
//
// [bbolt doc]: https://pkg.go.dev/go.etcd.io/bbolt#example-DB.Begin
func tempfile() (string, error) {
	f, err := os.CreateTemp("", "bolt-")
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Remove(f.Name()); err != nil {
		return "", err
	}
	return f.Name(), nil
}

func (o *Op) setupDb() error {
	dbpath := o.config.DbPath
	var err error
	if dbpath == "" {
		dbpath, err = tempfile()
		if err != nil {
			return err
		}
		o.tmpDbPath = dbpath
		slog.Warn("missing db path, use tmp path", "path", dbpath)
	}

	db, err := bbolt.Open(dbpath, 0o600, nil)
	if err != nil {
		return err
	}

	o.db = db
	o.log = &boltLog{db: db}

	return nil
}

func (o *Op) closeDb() error {
	if o.db == nil {
		return nil
	}

	if o.tmpDbPath != "" {
		slog.Warn("missing db path, used tmp path", "path", o.tmpDbPath)
	}

	return o.db.Close()
}
