package history

import (
	"path/filepath"
	"sync"

	"github.com/masmgr/githistory-go/internal/cache"
	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/logging"
)

// Factory hands out one Service per workspace so repeated queries share the
// memoized root directory.
type Factory struct {
	runner git.Runner
	opts   git.RepositoryOptions
	store  cache.Store
	log    logging.Logger

	mu       sync.Mutex
	services map[string]*Service
}

// NewFactory creates a factory whose services run git through runner.
func NewFactory(runner git.Runner, opts git.RepositoryOptions, store cache.Store, log logging.Logger) *Factory {
	log = logging.OrDiscard(log)
	if opts.Log == nil {
		opts.Log = log
	}
	return &Factory{
		runner:   runner,
		opts:     opts,
		store:    store,
		log:      log,
		services: make(map[string]*Service),
	}
}

// ForWorkspace returns the service for workspace, creating it on first use.
func (f *Factory) ForWorkspace(workspace string) *Service {
	if abs, err := filepath.Abs(workspace); err == nil {
		workspace = abs
	}
	id := cache.RepoKey(workspace)

	f.mu.Lock()
	defer f.mu.Unlock()

	if svc, ok := f.services[id]; ok {
		return svc
	}
	repo := git.NewRepository(workspace, f.runner, f.opts)
	svc := NewService(repo, f.store, f.log)
	f.services[id] = svc
	return svc
}
