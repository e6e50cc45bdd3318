package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const pageBucketPrefix = "pages-"

// boltStore implements a Store backed by BoltDB. Each run writes into its own bucket,
// which is dropped on Close so nothing outlives the run.
type boltStore struct {
	db     *bolt.DB
	bucket []byte
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}

	bucket := []byte(pageBucketPrefix + opts.RunID)
	if err := db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db, bucket: bucket}, nil
}

// Close drops the run's bucket and closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	dropErr := b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(b.bucket)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	closeErr := b.db.Close()
	b.db = nil
	return errors.Join(dropErr, closeErr)
}

// GetPage returns the cached body for url, if any.
func (b *boltStore) GetPage(url string) ([]byte, bool, error) {
	if b == nil || b.db == nil {
		return nil, false, nil
	}

	var body []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}
		if v := bucket.Get([]byte(url)); v != nil {
			// values are only valid inside the transaction
			body = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return body, body != nil, nil
}

// PutPage stores body under url, replacing any earlier value.
func (b *boltStore) PutPage(url string, body []byte) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}
		if body == nil {
			body = []byte{}
		}
		return bucket.Put([]byte(url), body)
	})
}
