package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/githistory-go/config"
	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "githistory",
		Usage:   "Browse git history with merge-aware pagination",
		Version: "0.3.0",
		Commands: []*cli.Command{
			LogCmd(),
			ShowCmd(),
			DateCmd(),
			RootCmd(),
			BranchCmd(),
			ContainsCmd(),
			ConfigCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path inside the Git work tree",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic level (none, error, info, trace)",
			},
		},
	}
}

// Output flags shared by commands that render reports
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseCountMode maps the configured count mode onto the repository setting.
func parseCountMode(s string) (git.CountMode, error) {
	switch s {
	case "", "client":
		return git.CountClient, nil
	case "shell":
		return git.CountShell, nil
	default:
		return "", fmt.Errorf("invalid count mode: %s (expected client or shell)", s)
	}
}

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
