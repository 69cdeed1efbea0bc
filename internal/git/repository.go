package git

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/masmgr/githistory-go/internal/logging"
)

// ErrNotARepository is returned when the workspace is not inside a git work tree.
var ErrNotARepository = errors.New("not a git repository")

// ErrInvalidRevision is returned for a revision git would read as an option.
var ErrInvalidRevision = errors.New("invalid revision")

// CountMode selects how the total commit count of a page query is computed.
type CountMode string

const (
	// CountClient counts the lines of an unpaginated log run in-process.
	CountClient CountMode = "client"
	// CountShell pipes the unpaginated log run through wc -l (find /c on Windows).
	CountShell CountMode = "shell"
)

var (
	quantitativeFlags = []string{"--numstat", "--summary"}
	qualitativeFlags  = []string{"--name-status"}
)

// RepositoryOptions configures a Repository.
type RepositoryOptions struct {
	Format             LogFormat
	Filter             PathFilter
	CountMode          CountMode
	MergeDetectWorkers int
	GOOS               string // defaults to runtime.GOOS; selects the counting utility
	Log                logging.Logger
}

// Repository answers history queries for one workspace by running git.
type Repository struct {
	workspace string
	runner    Runner
	opts      RepositoryOptions
	parser    *LogParser
	log       logging.Logger

	mu   sync.Mutex
	root string
}

// NewRepository creates a repository handle for a workspace directory.
func NewRepository(workspace string, runner Runner, opts RepositoryOptions) *Repository {
	if opts.Format.fields == nil {
		opts.Format = DefaultLogFormat()
	}
	if opts.CountMode == "" {
		opts.CountMode = CountClient
	}
	if opts.MergeDetectWorkers <= 0 {
		opts.MergeDetectWorkers = 4
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	log := logging.OrDiscard(opts.Log)

	return &Repository{
		workspace: workspace,
		runner:    runner,
		opts:      opts,
		parser:    NewLogParser(opts.Format, opts.Filter, log),
		log:       log,
	}
}

// Workspace returns the directory the repository was opened from.
func (r *Repository) Workspace() string {
	return r.workspace
}

// Filter returns the path filter applied to committed files.
func (r *Repository) Filter() PathFilter {
	return r.opts.Filter
}

// RootDirectory returns the top-level directory of the work tree. The first
// successful lookup is cached for the lifetime of the handle.
func (r *Repository) RootDirectory(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.root != "" {
		return r.root, nil
	}

	out, err := r.runner.Run(ctx, []string{"rev-parse", "--show-toplevel"}, r.workspace, false)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotARepository, r.workspace, err)
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, r.workspace)
	}
	r.root = root
	r.log.Tracef("git root: %s", root)
	return root, nil
}

// exec runs git in the repository root.
func (r *Repository) exec(ctx context.Context, args ...string) (string, error) {
	root, err := r.RootDirectory(ctx)
	if err != nil {
		return "", err
	}
	return r.runner.Run(ctx, args, root, false)
}

// filterArgs returns the branch scope and message filter shared by the page
// and count queries.
func filterArgs(q PageQuery, quote func(string) string) []string {
	var args []string
	if q.AllBranches {
		args = append(args, "--all")
	}
	if q.SearchText != "" {
		args = append(args, quote("--grep="+q.SearchText))
	}
	return args
}

func identity(s string) string { return s }

// pageArgs builds a page query. The quantitative and qualitative runs are
// built here with only the diff format flags differing, which keeps their
// records aligned.
func (r *Repository) pageArgs(q PageQuery, diffFlags []string) []string {
	args := []string{
		"log",
		r.opts.Format.Arg(),
		"--date-order",
		"--decorate=full",
		"--no-color",
		"--skip=" + strconv.Itoa(q.Skip()),
		"--max-count=" + strconv.Itoa(q.PageSize),
	}
	args = append(args, filterArgs(q, identity)...)
	args = append(args, diffFlags...)
	return append(args, "--")
}

// Page returns one page of history with merge detection applied and the
// total number of commits matching the same filter.
func (r *Repository) Page(ctx context.Context, q PageQuery) (*LogEntries, error) {
	if q.PageIndex < 0 {
		return nil, fmt.Errorf("invalid page index %d", q.PageIndex)
	}
	if q.PageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d", q.PageSize)
	}

	entries, err := r.parseTwoPass(ctx, func(diffFlags []string) []string {
		return r.pageArgs(q, diffFlags)
	})
	if err != nil {
		return nil, err
	}

	if err := r.detectMerges(ctx, entries); err != nil {
		return nil, fmt.Errorf("merge detection: %w", err)
	}

	count, err := r.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	return &LogEntries{Items: entries, TotalCount: count}, nil
}

// parseTwoPass runs the numstat and name-status variants of a query and
// parses them in lockstep.
func (r *Repository) parseTwoPass(ctx context.Context, build func(diffFlags []string) []string) ([]*LogEntry, error) {
	quantitative, err := r.exec(ctx, build(quantitativeFlags)...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	qualitative, err := r.exec(ctx, build(qualitativeFlags)...)
	if err != nil {
		return nil, fmt.Errorf("read file status: %w", err)
	}
	return r.parser.Parse(quantitative, qualitative)
}

// Count returns the number of commits matching the query's branch scope and
// search text, ignoring pagination.
func (r *Repository) Count(ctx context.Context, q PageQuery) (int, error) {
	if r.opts.CountMode == CountShell {
		return r.countShell(ctx, q)
	}

	args := append([]string{"log", "--format=%H"}, filterArgs(q, identity)...)
	out, err := r.exec(ctx, append(args, "--")...)
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}

	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count, nil
}

// countArgs builds the shell command line for CountShell.
func countArgs(goos string, q PageQuery) []string {
	quote := func(s string) string { return ShellQuote(goos, s) }
	args := append([]string{"log", "--format=%H"}, filterArgs(q, quote)...)
	args = append(args, "--")
	if goos == "windows" {
		return append(args, "|", "find", "/c", "/v", `""`)
	}
	return append(args, "|", "wc", "-l")
}

func (r *Repository) countShell(ctx context.Context, q PageQuery) (int, error) {
	root, err := r.RootDirectory(ctx)
	if err != nil {
		return 0, err
	}
	out, err := r.runner.Run(ctx, countArgs(r.opts.GOOS, q), root, true)
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("parse commit count %q: %w", strings.TrimSpace(out), err)
	}
	return count, nil
}

// Commit returns a single commit, or nil when hash resolves to nothing.
func (r *Repository) Commit(ctx context.Context, hash string) (*LogEntry, error) {
	full, err := r.resolveCommit(ctx, hash)
	if err != nil || full == "" {
		return nil, err
	}

	entries, err := r.parseTwoPass(ctx, func(diffFlags []string) []string {
		args := []string{"show", r.opts.Format.Arg(), "--decorate=full", "--no-color"}
		args = append(args, diffFlags...)
		return append(args, full, "--")
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// resolveCommit returns the full hash of a commit-ish, or "" if git cannot
// resolve it to a commit.
func (r *Repository) resolveCommit(ctx context.Context, hash string) (string, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", nil
	}
	if err := checkRevision(hash); err != nil {
		return "", err
	}
	out, err := r.exec(ctx, "rev-parse", "--verify", "--quiet", hash+"^{commit}")
	if err != nil {
		var execErr *CommandExecutionError
		if errors.As(err, &execErr) && execErr.ExitCode == 1 {
			return "", nil
		}
		return "", fmt.Errorf("resolve %s: %w", hash, err)
	}
	return strings.TrimSpace(out), nil
}

// CommitDate returns the committer timestamp of a commit, or nil when git
// reports nothing usable.
func (r *Repository) CommitDate(ctx context.Context, hash string) (*time.Time, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	out, err := r.exec(ctx, "show", "-s", "--format=%ct", hash)
	if err != nil {
		return nil, fmt.Errorf("commit date of %s: %w", hash, err)
	}
	line := firstLine(out)
	if line == "" {
		return nil, nil
	}
	when, ok := parseUnixTime(line)
	if !ok {
		r.log.Errorf("commit %s: invalid commit timestamp %q", hash, line)
		return nil, nil
	}
	return &when, nil
}

// CurrentBranch returns the abbreviated name of HEAD.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.exec(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ObjectHash returns the full hash a ref points at.
func (r *Repository) ObjectHash(ctx context.Context, ref string) (string, error) {
	if err := checkRevision(ref); err != nil {
		return "", err
	}
	out, err := r.exec(ctx, "show", "-s", "--format=%H", ref)
	if err != nil {
		return "", fmt.Errorf("object hash of %s: %w", ref, err)
	}
	return firstLine(out), nil
}

// Refs returns the current decorations of a commit.
func (r *Repository) Refs(ctx context.Context, hash string) ([]Reference, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	out, err := r.exec(ctx, "show", "-s", "--decorate=full", "--format=%d", hash)
	if err != nil {
		return nil, fmt.Errorf("refs of %s: %w", hash, err)
	}
	return r.parser.refs.Parse(firstLine(out)), nil
}

// checkRevision rejects caller input that git would parse as an option.
func checkRevision(rev string) error {
	if strings.HasPrefix(strings.TrimSpace(rev), "-") {
		return fmt.Errorf("%w: %q", ErrInvalidRevision, rev)
	}
	return nil
}

func firstLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
