package kmlog

import (
	"bytes"
	"context"

	bolt "go.etcd.io/bbolt"
)

// BoltStore keeps values in a single bucket of a local bbolt file
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

// BoltFileMode is the permission used when the bbolt file is created
const BoltFileMode = 0o600

var _ Store = (*BoltStore)(nil)

// NewBoltStore opens or creates the file at cfg.Path and ensures the bucket
// named by cfg.Prefix exists. cfg.Timeout bounds the wait for the file lock
func NewBoltStore(cfg StoreConfig) (*BoltStore, error) {
	db, err := bolt.Open(cfg.Path, BoltFileMode, &bolt.Options{
		Timeout: cfg.timeout(),
	})
	if err != nil {
		return nil, err
	}

	bucket := []byte(cfg.prefix())
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{
		db:     db,
		bucket: bucket,
	}, nil
}

func (s *BoltStore) Get(_ context.Context, key string) ([]byte, error) {
	var res []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		val := tx.Bucket(s.bucket).Get([]byte(key))
		if val == nil {
			return ErrNotFound
		}
		res = bytes.Clone(val)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *BoltStore) Put(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
