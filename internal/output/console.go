package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/githistory-go/internal/git"
)

var (
	titleColor  = color.New(color.FgGreen)
	hashColor   = color.New(color.FgYellow)
	headColor   = color.New(color.FgGreen, color.Bold)
	remoteColor = color.New(color.FgRed)
	tagColor    = color.New(color.FgCyan)
)

// ConsolePageWriter writes history pages to the console.
type ConsolePageWriter struct{}

// Write outputs the page as an aligned table.
func (w *ConsolePageWriter) Write(report *PageReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	items := limitTop(report.Items, options.Top)
	first, last := pageRange(report)

	titleColor.Fprintln(out, "Commit History")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	if report.Branch != "" {
		fmt.Fprintf(out, "Branch: %s\n", report.Branch)
	}
	fmt.Fprintf(out, "Page %d: commits %d-%d of %d\n\n", report.PageIndex+1, first, last, report.TotalCount)

	if len(items) == 0 {
		fmt.Fprintln(out, "No commits found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Hash\tDate\tAuthor\tFiles\t+/-\tTip\tSubject")
	for _, e := range items {
		added, deleted := lineTotals(e)
		subject := truncateMessage(e.Subject, 60)
		if len(e.Refs) > 0 {
			subject = colorRefs(e.Refs) + " " + subject
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t+%d/-%d\t%s\t%s\n",
			hashColor.Sprint(e.Hash.Short),
			authorDate(e, consoleDateLayout),
			authorName(e),
			len(e.Files),
			added, deleted,
			tipState(e),
			subject,
		)
		if options.ShowFiles {
			for _, f := range e.Files {
				fmt.Fprintf(tw, "\t\t\t\t\t\t    %s\n", strings.ReplaceAll(fileLine(f), "\t", " "))
			}
		}
	}
	return tw.Flush()
}

// ConsoleCommitWriter writes a single commit to the console.
type ConsoleCommitWriter struct{}

// Write outputs the commit in a layout close to git show.
func (w *ConsoleCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	e := report.Commit
	if e == nil {
		fmt.Fprintln(out, "Commit not found.")
		return nil
	}

	header := "commit " + hashColor.Sprint(e.Hash.Full)
	if len(e.Refs) > 0 {
		header += " " + colorRefs(e.Refs)
	}
	fmt.Fprintln(out, header)
	if e.IsMergeCommit() {
		parents := make([]string, len(e.Parents))
		for i, p := range e.Parents {
			parents[i] = p.Short
		}
		fmt.Fprintf(out, "Merge: %s\n", strings.Join(parents, " "))
	}
	writeActor(out, "Author:", e.AuthoredBy)
	writeActor(out, "Commit:", e.CommittedBy)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    %s\n", e.Subject)
	if e.Body != "" {
		fmt.Fprintln(out)
		for _, line := range strings.Split(e.Body, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	if e.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n    %s\n", e.Notes)
	}

	if len(e.Files) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range e.Files {
		fmt.Fprintln(tw, fileLine(f))
	}
	return tw.Flush()
}

func writeActor(out io.Writer, label string, a *git.ActionedDetails) {
	if a == nil {
		return
	}
	fmt.Fprintf(out, "%-8s%s <%s>  %s\n", label, a.Name, a.Email, a.Date.UTC().Format(reportDateTimeLayout))
}

func colorRefs(refs []git.Reference) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		switch ref.Type {
		case git.RefTypeHead:
			parts[i] = headColor.Sprint(refLabel(ref))
		case git.RefTypeRemoteHead:
			parts[i] = remoteColor.Sprint(refLabel(ref))
		default:
			parts[i] = tagColor.Sprint(refLabel(ref))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
