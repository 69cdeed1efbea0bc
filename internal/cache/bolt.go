package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltRootBucket     = "commits"
	defaultBoltTimeout = time.Second
)

// BoltStore keeps commits in a local BoltDB file, one bucket per repository.
type BoltStore struct {
	db   *bolt.DB
	once sync.Once
}

// NewBoltStore opens (or creates) a BoltDB cache at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("cache path is required")
	}

	cleaned := filepath.Clean(path)
	if dir := filepath.Dir(cleaned); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := bolt.Open(cleaned, 0o600, &bolt.Options{Timeout: defaultBoltTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt cache %s: %w", cleaned, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltRootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Get implements Store.
func (s *BoltStore) Get(ctx context.Context, repoKey, hash string) ([]byte, bool, error) {
	var result []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		root := tx.Bucket([]byte(boltRootBucket))
		if root == nil {
			return nil
		}
		repo := root.Bucket([]byte(repoKey))
		if repo == nil {
			return nil
		}
		if data := repo.Get([]byte(hash)); data != nil {
			// Bolt memory is only valid inside the transaction.
			result = append([]byte{}, data...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, result != nil, nil
}

// Put implements Store.
func (s *BoltStore) Put(ctx context.Context, repoKey, hash string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		root := tx.Bucket([]byte(boltRootBucket))
		if root == nil {
			return errors.New("cache root bucket missing")
		}
		repo, err := root.CreateBucketIfNotExists([]byte(repoKey))
		if err != nil {
			return err
		}
		return repo.Put([]byte(hash), data)
	})
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}
