package output

import (
	"io"
	"os"
	"strconv"

	"github.com/masmgr/githistory-go/internal/git"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
	consoleDateLayout    = "2006-01-02 15:04"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}

// pageRange returns the 1-based positions of the first and last commit shown.
func pageRange(r *PageReport) (int, int) {
	if len(r.Items) == 0 {
		return 0, 0
	}
	first := r.PageIndex*r.PageSize + 1
	return first, first + len(r.Items) - 1
}

func refLabel(ref git.Reference) string {
	if ref.Type == git.RefTypeTag {
		return "tag: " + ref.Name
	}
	return ref.Name
}

func refLabels(refs []git.Reference) []string {
	labels := make([]string, len(refs))
	for i, ref := range refs {
		labels[i] = refLabel(ref)
	}
	return labels
}

func authorName(e *git.LogEntry) string {
	if e.AuthoredBy == nil {
		return ""
	}
	return e.AuthoredBy.Name
}

func authorDate(e *git.LogEntry, layout string) string {
	if e.AuthoredBy == nil {
		return ""
	}
	return e.AuthoredBy.Date.UTC().Format(layout)
}

// lineTotals sums line counts over the text files of a commit.
func lineTotals(e *git.LogEntry) (added, deleted int) {
	for _, f := range e.Files {
		if f.LinesAdded != nil {
			added += *f.LinesAdded
		}
		if f.LinesDeleted != nil {
			deleted += *f.LinesDeleted
		}
	}
	return added, deleted
}

// tipState describes the branch tip facts of a commit.
func tipState(e *git.LogEntry) string {
	if !e.IsLastCommit {
		return ""
	}
	if e.IsMerged == nil {
		return "tip"
	}
	if *e.IsMerged {
		return "merged"
	}
	return "unmerged"
}

func fileLine(f git.CommittedFile) string {
	counts := "-\t-"
	if !f.IsBinary() {
		counts = itoaPtr(f.LinesAdded) + "\t" + itoaPtr(f.LinesDeleted)
	}
	path := f.Path
	if f.OldPath != "" {
		path = f.OldPath + " -> " + f.Path
	}
	return f.Status.Letter() + "\t" + counts + "\t" + path
}

func itoaPtr(n *int) string {
	if n == nil {
		return "0"
	}
	return strconv.Itoa(*n)
}
