// Package cache persists parsed commits between runs. Commit content is
// immutable for a given hash, so entries never need invalidation.
package cache

import (
	"context"
	"encoding/hex"
	"path/filepath"

	"lukechampine.com/blake3"
)

// Store keeps encoded commit payloads keyed by repository and full hash.
type Store interface {
	// Get returns the payload for hash, with ok false on a miss.
	Get(ctx context.Context, repoKey, hash string) (data []byte, ok bool, err error)
	Put(ctx context.Context, repoKey, hash string, data []byte) error
	Close() error
}

// RepoKey derives a stable cache namespace from a repository root directory.
func RepoKey(root string) string {
	sum := blake3.Sum256([]byte(filepath.Clean(root)))
	return hex.EncodeToString(sum[:16])
}

// NamespaceKey extends RepoKey with a variant, such as a path filter
// signature, for payloads that differ between variants of one repository.
// An empty variant yields RepoKey(root).
func NamespaceKey(root, variant string) string {
	if variant == "" {
		return RepoKey(root)
	}
	sum := blake3.Sum256([]byte(filepath.Clean(root) + "\x00" + variant))
	return hex.EncodeToString(sum[:16])
}

type nopStore struct{}

// NewNopStore returns a Store that never holds anything.
func NewNopStore() Store {
	return nopStore{}
}

func (nopStore) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (nopStore) Put(context.Context, string, string, []byte) error         { return nil }
func (nopStore) Close() error                                              { return nil }
