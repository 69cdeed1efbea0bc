package cmd

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/history"
	"github.com/masmgr/githistory-go/internal/output"
)

// LogCmd returns the log command definition.
func LogCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Zero-based page index",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Commits per page (default from config)",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Walk every ref instead of HEAD only (default from config)",
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Only commits whose message matches the text",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"t"},
			Usage:   "Limit rendered commits (0 = whole page)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Include only files matching glob patterns",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Exclude files matching glob patterns",
		},
		&cli.BoolFlag{
			Name:  "files",
			Usage: "List changed files under each commit",
		},
	}

	return &cli.Command{
		Name:   "log",
		Usage:  "Show one page of history with merge state of branch tips",
		Flags:  append(flags, outputFlags()...),
		Action: logAction,
	}
}

func logAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		req := pageRequest(c, ctx)
		if req.PageIndex < 0 {
			return errors.New("page must be zero or greater")
		}

		res := ctx.Service.Page(c.Context, req)
		if res.Error != "" {
			return errors.New(res.Error)
		}

		root, err := ctx.Repo.RootDirectory(c.Context)
		if err != nil {
			return err
		}
		branch, err := ctx.Repo.CurrentBranch(c.Context)
		if err != nil {
			ctx.Log.Infof("current branch unavailable: %v", err)
		}

		return writePageReport(c, &output.PageReport{
			RepoPath:    root,
			Branch:      branch,
			PageIndex:   res.PageIndex,
			PageSize:    res.PageSize,
			TotalCount:  res.TotalCount,
			GeneratedAt: time.Now(),
			Items:       res.Items,
		})
	})
}

// pageRequest merges the page flags with the configured defaults.
func pageRequest(c *cli.Context, ctx *CommandContext) history.PageRequest {
	req := history.PageRequest{
		PageIndex:   c.Int("page"),
		PageSize:    ctx.Config.History.PageSize,
		AllBranches: ctx.Config.History.AllBranches,
		SearchText:  c.String("search"),
	}
	if c.IsSet("page-size") && c.Int("page-size") > 0 {
		req.PageSize = c.Int("page-size")
	}
	if c.IsSet("all") {
		req.AllBranches = c.Bool("all")
	}
	return req
}
