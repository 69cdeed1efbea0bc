package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/sync/errgroup"
)

// Heads lists local and remote branch tips via show-ref.
func (r *Repository) Heads(ctx context.Context) ([]HeadRef, error) {
	out, err := r.exec(ctx, "show-ref")
	if err != nil {
		// show-ref exits 1 when the repository has no refs at all.
		var execErr *CommandExecutionError
		if errors.As(err, &execErr) && execErr.ExitCode == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("list heads: %w", err)
	}
	return parseShowRef(out), nil
}

func parseShowRef(out string) []HeadRef {
	var heads []HeadRef
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := plumbing.ReferenceName(fields[1])
		if !name.IsBranch() && !name.IsRemote() {
			continue
		}
		heads = append(heads, HeadRef{Ref: fields[1], Hash: fields[0]})
	}
	return heads
}

// RefsContaining returns the branch names (as printed by `git branch --all`)
// whose history contains hash.
func (r *Repository) RefsContaining(ctx context.Context, hash string) ([]string, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	out, err := r.exec(ctx, "branch", "--all", "--contains", hash)
	if err != nil {
		return nil, fmt.Errorf("branches containing %s: %w", hash, err)
	}
	return parseBranchList(out), nil
}

// parseBranchList strips the current-branch and worktree markers, drops
// detached HEAD lines and keeps the name part of "a -> b" pointers.
func parseBranchList(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "*+"))
		if line == "" || strings.HasPrefix(line, "(") {
			continue
		}
		names = append(names, strings.Fields(line)[0])
	}
	return names
}

// detectMerges marks branch tips on the page and, for each tip, whether any
// other head already contains it. It finishes before returning.
func (r *Repository) detectMerges(ctx context.Context, entries []*LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	heads, err := r.Heads(ctx)
	if err != nil {
		return err
	}

	// Scoped to this call; tips move between pages.
	hashByName := make(map[string]string, len(heads))
	headHashes := make(map[string]bool, len(heads))
	for _, h := range heads {
		hashByName[branchListName(h.Ref)] = h.Hash
		headHashes[h.Hash] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MergeDetectWorkers)

	for _, entry := range entries {
		entry.IsLastCommit = headHashes[entry.Hash.Full]
		if !entry.IsLastCommit {
			continue
		}
		entry := entry
		g.Go(func() error {
			containing, err := r.RefsContaining(gctx, entry.Hash.Full)
			if err != nil {
				return err
			}
			merged := mergedElsewhere(containing, hashByName, entry.Hash.Full)
			entry.IsMerged = &merged
			return nil
		})
	}

	return g.Wait()
}

// mergedElsewhere reports whether any branch containing the commit points at
// a different commit.
func mergedElsewhere(containing []string, hashByName map[string]string, own string) bool {
	for _, name := range containing {
		hash, ok := hashByName[name]
		if ok && hash != own {
			return true
		}
	}
	return false
}
