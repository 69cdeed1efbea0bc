// Package history is the query surface handed to presentation layers. It
// turns repository failures into result values and keeps parsed commits in a
// cache between runs.
package history

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/masmgr/githistory-go/internal/cache"
	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/logging"
)

// Repository is the subset of *git.Repository the service relies on.
type Repository interface {
	RootDirectory(ctx context.Context) (string, error)
	Page(ctx context.Context, q git.PageQuery) (*git.LogEntries, error)
	Commit(ctx context.Context, hash string) (*git.LogEntry, error)
	CommitDate(ctx context.Context, hash string) (*time.Time, error)
	Refs(ctx context.Context, hash string) ([]git.Reference, error)
	Filter() git.PathFilter
}

// PageRequest selects a page of history.
type PageRequest struct {
	PageIndex   int    `json:"pageIndex"`
	PageSize    int    `json:"pageSize"`
	AllBranches bool   `json:"allBranches"`
	SearchText  string `json:"searchText,omitempty"`
}

// PageResult is one page of history. On failure Items is empty and Error
// describes what went wrong.
type PageResult struct {
	git.LogEntries
	PageIndex int    `json:"pageIndex"`
	PageSize  int    `json:"pageSize"`
	Error     string `json:"error,omitempty"`
}

// CommitRequest looks up one commit by hash or any commit-ish.
type CommitRequest struct {
	Hash string `json:"hash"`
}

// CommitResult holds a commit, or nil when the hash resolves to nothing.
type CommitResult struct {
	Commit *git.LogEntry `json:"commit"`
	Cached bool          `json:"cached"`
	Error  string        `json:"error,omitempty"`
}

// DateRequest asks for the commit date of a hash.
type DateRequest struct {
	Hash string `json:"hash"`
}

// DateResult holds the committer date, nil when git reported none.
type DateResult struct {
	Date  *time.Time `json:"date"`
	Error string     `json:"error,omitempty"`
}

// Service answers history queries for one workspace.
type Service struct {
	Repo  Repository
	Cache cache.Store
	Log   logging.Logger
}

// NewService creates a service. A nil store disables caching.
func NewService(repo Repository, store cache.Store, log logging.Logger) *Service {
	if store == nil {
		store = cache.NewNopStore()
	}
	return &Service{Repo: repo, Cache: store, Log: logging.OrDiscard(log)}
}

// Page returns one page of history.
func (s *Service) Page(ctx context.Context, req PageRequest) PageResult {
	result := PageResult{
		LogEntries: git.LogEntries{Items: []*git.LogEntry{}},
		PageIndex:  req.PageIndex,
		PageSize:   req.PageSize,
	}

	entries, err := s.Repo.Page(ctx, git.PageQuery{
		PageIndex:   req.PageIndex,
		PageSize:    req.PageSize,
		AllBranches: req.AllBranches,
		SearchText:  req.SearchText,
	})
	if err != nil {
		s.log().Errorf("history page %d: %v", req.PageIndex, err)
		result.Error = err.Error()
		return result
	}

	result.LogEntries = *entries
	if result.Items == nil {
		result.Items = []*git.LogEntry{}
	}
	s.warm(ctx, entries.Items)
	return result
}

// Commit returns a single commit, served from the cache when the request
// names a full hash that was seen before.
func (s *Service) Commit(ctx context.Context, req CommitRequest) CommitResult {
	hash := strings.TrimSpace(req.Hash)
	if hash == "" {
		return CommitResult{Error: "hash is required"}
	}

	if isFullHash(hash) {
		if entry, ok := s.lookup(ctx, hash); ok {
			refs, err := s.Repo.Refs(ctx, hash)
			if err != nil {
				s.log().Errorf("refresh refs of %s: %v", hash, err)
				return CommitResult{Error: err.Error()}
			}
			entry.Refs = refs
			return CommitResult{Commit: entry, Cached: true}
		}
	}

	entry, err := s.Repo.Commit(ctx, hash)
	if err != nil {
		s.log().Errorf("commit %s: %v", hash, err)
		return CommitResult{Error: err.Error()}
	}
	if entry != nil {
		s.store(ctx, entry)
	}
	return CommitResult{Commit: entry}
}

// Date returns the committer date of a commit.
func (s *Service) Date(ctx context.Context, req DateRequest) DateResult {
	date, err := s.Repo.CommitDate(ctx, strings.TrimSpace(req.Hash))
	if err != nil {
		s.log().Errorf("commit date %s: %v", req.Hash, err)
		return DateResult{Error: err.Error()}
	}
	return DateResult{Date: date}
}

func (s *Service) log() logging.Logger {
	return logging.OrDiscard(s.Log)
}

func (s *Service) store(ctx context.Context, entry *git.LogEntry) {
	if s.Cache == nil {
		return
	}
	key, ok := s.namespace(ctx)
	if !ok {
		return
	}

	// Decorations and tip state change over time; only the commit itself is kept.
	immutable := *entry
	immutable.Refs = nil
	immutable.IsLastCommit = false
	immutable.IsMerged = nil

	data, err := cache.Encode(&immutable)
	if err != nil {
		s.log().Errorf("encode commit %s: %v", entry.Hash.Full, err)
		return
	}
	if err := s.Cache.Put(ctx, key, entry.Hash.Full, data); err != nil {
		s.log().Errorf("cache commit %s: %v", entry.Hash.Full, err)
	}
}

// namespace returns the cache key for the repository. Files are stored after
// path filtering, so each filter gets its own namespace.
func (s *Service) namespace(ctx context.Context) (string, bool) {
	root, err := s.Repo.RootDirectory(ctx)
	if err != nil {
		return "", false
	}
	return cache.NamespaceKey(root, s.Repo.Filter().Signature()), true
}

func (s *Service) warm(ctx context.Context, entries []*git.LogEntry) {
	for _, entry := range entries {
		s.store(ctx, entry)
	}
}

func (s *Service) lookup(ctx context.Context, hash string) (*git.LogEntry, bool) {
	if s.Cache == nil {
		return nil, false
	}
	key, ok := s.namespace(ctx)
	if !ok {
		return nil, false
	}

	data, ok, err := s.Cache.Get(ctx, key, strings.ToLower(hash))
	if err != nil {
		s.log().Errorf("cache lookup %s: %v", hash, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry git.LogEntry
	if err := cache.Decode(data, &entry); err != nil {
		s.log().Errorf("decode cached commit %s: %v", hash, err)
		return nil, false
	}
	s.log().Tracef("commit %s served from cache", hash)
	return &entry, true
}

var fullHashPattern = regexp.MustCompile(`^(?i:[0-9a-f]{40}|[0-9a-f]{64})$`)

func isFullHash(s string) bool {
	return fullHashPattern.MatchString(s)
}
