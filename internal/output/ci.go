package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIPageWriter writes history pages as NDJSON (one JSON object per line) for CI pipelines.
type CIPageWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	TotalCount   int    `json:"totalCount"`
	PageIndex    int    `json:"pageIndex"`
	Commits      int    `json:"commits"`
	MergeCommits int    `json:"mergeCommits"`
	Authors      int    `json:"authors"`
	Tips         int    `json:"tips"`
	UnmergedTips int    `json:"unmergedTips"`
	LinesAdded   int    `json:"linesAdded"`
	LinesDeleted int    `json:"linesDeleted"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type         string   `json:"type"`
	Hash         string   `json:"hash"`
	Subject      string   `json:"subject"`
	Author       string   `json:"author"`
	Date         string   `json:"date"`
	Refs         []string `json:"refs,omitempty"`
	Files        int      `json:"files"`
	LinesAdded   int      `json:"linesAdded"`
	LinesDeleted int      `json:"linesDeleted"`
	Churn        int      `json:"churn"`
	IsLastCommit bool     `json:"isLastCommit"`
	IsMerged     *bool    `json:"isMerged,omitempty"`
}

// Write outputs the page as NDJSON.
func (w *CIPageWriter) Write(report *PageReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:       "summary",
		TotalCount: report.TotalCount,
		PageIndex:  report.PageIndex,
		Commits:    len(items),
	}
	entries := make([]CICommitEntry, 0, len(items))
	authors := make(map[string]struct{})
	for _, e := range items {
		added, deleted := lineTotals(e)
		if e.AuthoredBy != nil {
			authors[e.AuthoredBy.ContributorKey()] = struct{}{}
		}
		churn := 0
		for _, f := range e.Files {
			churn += f.Churn()
		}
		summary.LinesAdded += added
		summary.LinesDeleted += deleted
		if e.IsMergeCommit() {
			summary.MergeCommits++
		}
		if e.IsLastCommit {
			summary.Tips++
			if e.IsMerged != nil && !*e.IsMerged {
				summary.UnmergedTips++
			}
		}

		var refs []string
		if len(e.Refs) > 0 {
			refs = refLabels(e.Refs)
		}
		entries = append(entries, CICommitEntry{
			Type:         "commit",
			Hash:         e.Hash.Full,
			Subject:      e.Subject,
			Author:       authorName(e),
			Date:         authorDate(e, reportDateTimeLayout),
			Refs:         refs,
			Files:        len(e.Files),
			LinesAdded:   added,
			LinesDeleted: deleted,
			Churn:        churn,
			IsLastCommit: e.IsLastCommit,
			IsMerged:     e.IsMerged,
		})
	}

	summary.Authors = len(authors)

	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
