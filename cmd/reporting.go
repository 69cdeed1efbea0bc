package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/output"
)

func writePageReport(c *cli.Context, report *output.PageReport) error {
	opts := OutputOptions(c)
	writer := output.NewPageWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeCommitReport(c *cli.Context, report *output.CommitReport) error {
	opts := OutputOptions(c)
	writer := output.NewCommitWriter(opts.Format)
	return writer.Write(report, opts)
}
