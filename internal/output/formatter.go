package output

import (
	"time"

	"github.com/masmgr/githistory-go/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ PageWriter = (*ConsolePageWriter)(nil)
	_ PageWriter = (*JSONPageWriter)(nil)
	_ PageWriter = (*CSVPageWriter)(nil)
	_ PageWriter = (*MarkdownPageWriter)(nil)
	_ PageWriter = (*CIPageWriter)(nil)

	_ CommitWriter = (*ConsoleCommitWriter)(nil)
	_ CommitWriter = (*JSONCommitWriter)(nil)
	_ CommitWriter = (*MarkdownCommitWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	ShowFiles  bool // List changed files under each commit
}

// PageReport holds one page of history for rendering.
type PageReport struct {
	RepoPath    string
	Branch      string
	PageIndex   int
	PageSize    int
	TotalCount  int
	GeneratedAt time.Time
	Items       []*git.LogEntry
}

// CommitReport holds a single commit for rendering.
type CommitReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Cached      bool
	Commit      *git.LogEntry
}

// PageWriter writes history pages.
type PageWriter interface {
	Write(report *PageReport, options OutputOptions) error
}

// CommitWriter writes single commits.
type CommitWriter interface {
	Write(report *CommitReport, options OutputOptions) error
}

// NewPageWriter creates a page writer for the specified format.
func NewPageWriter(format OutputFormat) PageWriter {
	switch format {
	case FormatJSON:
		return &JSONPageWriter{}
	case FormatCSV:
		return &CSVPageWriter{}
	case FormatMarkdown:
		return &MarkdownPageWriter{}
	case FormatCI:
		return &CIPageWriter{}
	default:
		return &ConsolePageWriter{}
	}
}

// NewCommitWriter creates a commit writer for the specified format.
// CSV and CI have no single-commit layout and fall back to JSON.
func NewCommitWriter(format OutputFormat) CommitWriter {
	switch format {
	case FormatJSON, FormatCSV, FormatCI:
		return &JSONCommitWriter{}
	case FormatMarkdown:
		return &MarkdownCommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}
