package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/history"
	"github.com/masmgr/githistory-go/internal/output"
)

// ShowCmd returns the show command definition.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single commit with its changed files",
		ArgsUsage: "<hash>",
		Flags:     outputFlags(),
		Action: func(c *cli.Context) error {
			hash := c.Args().First()
			if hash == "" {
				return errors.New("a commit hash is required")
			}
			return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
				res := ctx.Service.Commit(c.Context, history.CommitRequest{Hash: hash})
				if res.Error != "" {
					return errors.New(res.Error)
				}
				if res.Commit == nil {
					return fmt.Errorf("commit not found: %s", hash)
				}

				root, err := ctx.Repo.RootDirectory(c.Context)
				if err != nil {
					return err
				}
				return writeCommitReport(c, &output.CommitReport{
					RepoPath:    root,
					GeneratedAt: time.Now(),
					Cached:      res.Cached,
					Commit:      res.Commit,
				})
			})
		},
	}
}
