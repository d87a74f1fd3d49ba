package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"go.uber.org/zap"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidName      = errors.New("invalid snapshot name")
)

const (
	snapshotPrefix = "snapshot/"
	metaPrefix     = "meta/"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// SnapshotMeta listing entry of a saved graph.
type SnapshotMeta struct {
	Name    string `json:"name"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Size    int    `json:"size_bytes"`
	SavedAt int64  `json:"saved_at"`
}

// KVDB named graph snapshots stored in badger. values are kelindar/binary encoded and zstd compressed.
type KVDB struct {
	db  *badger.DB
	log *zap.Logger
}

func NewKVDB(db *badger.DB, log *zap.Logger) *KVDB {
	return &KVDB{db: db, log: log}
}

// OpenKVDB opens (or creates) the badger database in dir.
func OpenKVDB(dir string, log *zap.Logger) (*KVDB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return NewKVDB(db, log), nil
}

func (k *KVDB) SaveSnapshot(ctx context.Context, name string, snap graph.Snapshot) (SnapshotMeta, error) {
	if !validName.MatchString(name) {
		return SnapshotMeta{}, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	select {
	case <-ctx.Done():
		return SnapshotMeta{}, ctx.Err()
	default:
	}

	val, err := encodeSnapshot(snap)
	if err != nil {
		return SnapshotMeta{}, err
	}
	meta := SnapshotMeta{
		Name:    name,
		Nodes:   len(snap.Nodes),
		Edges:   len(snap.Edges),
		Size:    len(val),
		SavedAt: time.Now().Unix(),
	}
	metaVal, err := encodeMeta(meta)
	if err != nil {
		return SnapshotMeta{}, err
	}

	err = k.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotPrefix+name), val); err != nil {
			return err
		}
		return txn.Set([]byte(metaPrefix+name), metaVal)
	})
	if err != nil {
		return SnapshotMeta{}, err
	}
	k.log.Info("graph snapshot saved", zap.String("name", name), zap.Int("nodes", meta.Nodes),
		zap.Int("edges", meta.Edges), zap.Int("bytes", meta.Size))
	return meta, nil
}

func (k *KVDB) LoadSnapshot(name string) (graph.Snapshot, error) {
	val, err := k.get([]byte(snapshotPrefix + name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return graph.Snapshot{}, fmt.Errorf("%q: %w", name, ErrSnapshotNotFound)
	}
	if err != nil {
		return graph.Snapshot{}, err
	}
	return decodeSnapshot(val)
}

// ListSnapshots saved snapshots ordered by name.
func (k *KVDB) ListSnapshots() ([]SnapshotMeta, error) {
	metas := make([]SnapshotMeta, 0)
	err := k.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(metaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				meta, err := decodeMeta(val)
				if err != nil {
					return err
				}
				metas = append(metas, meta)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return metas, err
}

func (k *KVDB) DeleteSnapshot(name string) error {
	_, err := k.get([]byte(metaPrefix + name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%q: %w", name, ErrSnapshotNotFound)
	}
	if err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(snapshotPrefix + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(metaPrefix + name))
	})
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
