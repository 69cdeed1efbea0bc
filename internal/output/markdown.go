package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/masmgr/githistory-go/internal/git"
)

// MarkdownPageWriter writes history pages as Markdown.
type MarkdownPageWriter struct{}

// Write outputs the page as a Markdown table.
func (w *MarkdownPageWriter) Write(report *PageReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	items := limitTop(report.Items, options.Top)
	first, last := pageRange(report)

	fmt.Fprintln(out, "# Commit History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	if report.Branch != "" {
		fmt.Fprintf(out, "**Branch:** %s\n\n", report.Branch)
	}
	fmt.Fprintf(out, "**Commits:** %d-%d of %d (page %d)\n\n", first, last, report.TotalCount, report.PageIndex+1)

	fmt.Fprintln(out, "| Hash | Date | Author | Refs | Files | +/- | Tip | Subject |")
	fmt.Fprintln(out, "|------|------|--------|------|-------|-----|-----|---------|")
	for _, e := range items {
		added, deleted := lineTotals(e)
		fmt.Fprintf(out, "| `%s` | %s | %s | %s | %d | +%d/-%d | %s | %s |\n",
			e.Hash.Short,
			authorDate(e, reportDateLayout),
			escapeMarkdown(authorName(e)),
			escapeMarkdown(strings.Join(refLabels(e.Refs), ", ")),
			len(e.Files),
			added, deleted,
			tipState(e),
			escapeMarkdown(truncateMessage(e.Subject, 72)),
		)
	}

	if options.ShowFiles {
		for _, e := range items {
			if len(e.Files) == 0 {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "### `%s` %s\n\n", e.Hash.Short, escapeMarkdown(e.Subject))
			writeMarkdownFiles(out, e.Files)
		}
	}

	return nil
}

// MarkdownCommitWriter writes a single commit as Markdown.
type MarkdownCommitWriter struct{}

// Write outputs the commit as Markdown.
func (w *MarkdownCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	e := report.Commit
	if e == nil {
		fmt.Fprintln(out, "_Commit not found._")
		return nil
	}

	fmt.Fprintf(out, "# %s\n\n", escapeMarkdown(e.Subject))
	fmt.Fprintf(out, "**Commit:** `%s`\n\n", e.Hash.Full)
	if e.AuthoredBy != nil {
		fmt.Fprintf(out, "**Author:** %s <%s> on %s\n\n", escapeMarkdown(e.AuthoredBy.Name), e.AuthoredBy.Email, authorDate(e, reportDateTimeLayout))
	}
	if len(e.Refs) > 0 {
		fmt.Fprintf(out, "**Refs:** %s\n\n", escapeMarkdown(strings.Join(refLabels(e.Refs), ", ")))
	}
	if e.Body != "" {
		fmt.Fprintf(out, "%s\n\n", e.Body)
	}
	writeMarkdownFiles(out, e.Files)
	return nil
}

func writeMarkdownFiles(out io.Writer, files []git.CommittedFile) {
	fmt.Fprintln(out, "| Status | Path | + | - |")
	fmt.Fprintln(out, "|--------|------|---|---|")
	for _, f := range files {
		added, deleted := "-", "-"
		if !f.IsBinary() {
			added, deleted = itoaPtr(f.LinesAdded), itoaPtr(f.LinesDeleted)
		}
		path := "`" + f.Path + "`"
		if f.OldPath != "" {
			path = "`" + f.OldPath + "` → " + path
		}
		fmt.Fprintf(out, "| %s | %s | %s | %s |\n", f.Status, path, added, deleted)
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
