package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/masmgr/githistory-go/internal/git"
)

// JSONPageWriter writes history pages as JSON.
type JSONPageWriter struct{}

// JSONPageReport is the JSON output structure for a history page.
type JSONPageReport struct {
	RepoPath    string          `json:"repo"`
	Branch      string          `json:"branch,omitempty"`
	GeneratedAt string          `json:"generatedAt"`
	PageIndex   int             `json:"pageIndex"`
	PageSize    int             `json:"pageSize"`
	TotalCount  int             `json:"count"`
	Items       []*git.LogEntry `json:"items"`
}

// Write outputs the page as JSON.
func (w *JSONPageWriter) Write(report *PageReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)
	if items == nil {
		items = []*git.LogEntry{}
	}

	return writeJSON(JSONPageReport{
		RepoPath:    report.RepoPath,
		Branch:      report.Branch,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		PageIndex:   report.PageIndex,
		PageSize:    report.PageSize,
		TotalCount:  report.TotalCount,
		Items:       items,
	}, options.OutputPath)
}

// JSONCommitWriter writes a single commit as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for a single commit.
type JSONCommitReport struct {
	RepoPath    string        `json:"repo"`
	GeneratedAt string        `json:"generatedAt"`
	Cached      bool          `json:"cached"`
	Commit      *git.LogEntry `json:"commit"`
}

// Write outputs the commit as JSON. A missing commit is written as null.
func (w *JSONCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	return writeJSON(JSONCommitReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Cached:      report.Cached,
		Commit:      report.Commit,
	}, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
