package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

// RootCmd returns the root command definition.
func RootCmd() *cli.Command {
	return &cli.Command{
		Name:  "root",
		Usage: "Print the top-level directory of the work tree",
		Action: func(c *cli.Context) error {
			return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
				root, err := ctx.Repo.RootDirectory(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, root)
				return nil
			})
		},
	}
}

// BranchCmd returns the branch command definition.
func BranchCmd() *cli.Command {
	return &cli.Command{
		Name:  "branch",
		Usage: "Print the current branch and the commit it points at",
		Action: func(c *cli.Context) error {
			return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
				branch, err := ctx.Repo.CurrentBranch(c.Context)
				if err != nil {
					return err
				}
				hash, err := ctx.Repo.ObjectHash(c.Context, "HEAD")
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s %s\n", branch, hash)
				return nil
			})
		},
	}
}

// ContainsCmd returns the contains command definition.
func ContainsCmd() *cli.Command {
	return &cli.Command{
		Name:      "contains",
		Usage:     "List local and remote branches whose history contains a commit",
		ArgsUsage: "<hash>",
		Action: func(c *cli.Context) error {
			hash := c.Args().First()
			if hash == "" {
				return errors.New("a commit hash is required")
			}
			return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
				names, err := ctx.Repo.RefsContaining(c.Context, hash)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(c.App.Writer, name)
				}
				return nil
			})
		},
	}
}
