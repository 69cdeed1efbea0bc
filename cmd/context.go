package cmd

import (
	"fmt"
	"time"

	"github.com/masmgr/githistory-go/config"
	"github.com/masmgr/githistory-go/internal/cache"
	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/history"
	"github.com/masmgr/githistory-go/internal/logging"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
type CommandContext struct {
	Config   *config.Config
	Log      logging.Logger
	RepoPath string
	Repo     *git.Repository
	Service  *history.Service

	store cache.Store
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, locates git, and opens the commit cache.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log := logging.NewConsoleLogger(level)

	gitPath, err := git.ResolveGitPath(cfg.Git.Path, log)
	if err != nil {
		return nil, err
	}
	runner := git.NewCLIRunner(gitPath, time.Duration(cfg.Git.TimeoutSeconds)*time.Second, log)

	filter, err := git.NewPathFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid path filter: %w", err)
	}
	countMode, err := parseCountMode(cfg.History.CountMode)
	if err != nil {
		return nil, err
	}

	store := openStore(cfg.Cache, log)
	factory := history.NewFactory(runner, git.RepositoryOptions{
		Filter:             filter,
		CountMode:          countMode,
		MergeDetectWorkers: cfg.History.MergeDetectWorkers,
		Log:                log,
	}, store, log)

	repoPath := c.String("repo")
	svc := factory.ForWorkspace(repoPath)
	repo, ok := svc.Repo.(*git.Repository)
	if !ok {
		_ = store.Close()
		return nil, fmt.Errorf("unexpected repository type %T", svc.Repo)
	}

	return &CommandContext{
		Config:   cfg,
		Log:      log,
		RepoPath: repoPath,
		Repo:     repo,
		Service:  svc,
		store:    store,
	}, nil
}

// Close releases the commit cache.
func (ctx *CommandContext) Close() error {
	return ctx.store.Close()
}

// openStore opens the configured cache backend. An unusable cache is
// reported and replaced by a no-op store; history queries still work.
func openStore(cfg config.CacheConfig, log logging.Logger) cache.Store {
	log = logging.OrDiscard(log)
	switch cfg.Backend {
	case "bolt":
		store, err := cache.NewBoltStore(cfg.BoltPath)
		if err != nil {
			log.Errorf("commit cache disabled: %v", err)
			return cache.NewNopStore()
		}
		log.Tracef("commit cache: bolt %s", cfg.BoltPath)
		return store
	case "redis":
		store, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			TTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
		})
		if err != nil {
			log.Errorf("commit cache disabled: %v", err)
			return cache.NewNopStore()
		}
		log.Tracef("commit cache: redis %s", cfg.Redis.Addr)
		return store
	default:
		return cache.NewNopStore()
	}
}

// executeWithContext builds the command context, runs fn and releases it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()
	return fn(ctx, c)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		ShowFiles:  c.Bool("files"),
	}
}
