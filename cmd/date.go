package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/history"
)

// DateCmd returns the date command definition.
func DateCmd() *cli.Command {
	return &cli.Command{
		Name:      "date",
		Usage:     "Print the committer date of a commit",
		ArgsUsage: "<hash>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unix",
				Usage: "Print seconds since the epoch",
			},
		},
		Action: func(c *cli.Context) error {
			hash := c.Args().First()
			if hash == "" {
				return errors.New("a commit hash is required")
			}
			return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
				res := ctx.Service.Date(c.Context, history.DateRequest{Hash: hash})
				if res.Error != "" {
					return errors.New(res.Error)
				}
				if res.Date == nil {
					return fmt.Errorf("no commit date for %s", hash)
				}
				if c.Bool("unix") {
					fmt.Fprintln(c.App.Writer, res.Date.Unix())
					return nil
				}
				fmt.Fprintln(c.App.Writer, res.Date.UTC().Format(time.RFC3339))
				return nil
			})
		},
	}
}
