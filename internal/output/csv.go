package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/masmgr/githistory-go/internal/git"
)

// CSVPageWriter writes history pages as CSV, one row per commit.
type CSVPageWriter struct{}

var csvPageHeaders = []string{
	"Hash", "ShortHash", "Parents", "AuthorName", "AuthorEmail", "AuthorDate",
	"CommitterName", "CommitterDate", "Subject", "Refs", "Files", "LinesAdded",
	"LinesDeleted", "IsLastCommit", "IsMerged",
}

// Write outputs the page as CSV.
func (w *CSVPageWriter) Write(report *PageReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeCSVPage(out, limitTop(report.Items, options.Top))
}

func writeCSVPage(out io.Writer, items []*git.LogEntry) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(csvPageHeaders); err != nil {
		return err
	}

	for _, e := range items {
		parents := make([]string, len(e.Parents))
		for i, p := range e.Parents {
			parents[i] = p.Full
		}
		added, deleted := lineTotals(e)

		var committerName, committerDate, authorEmail string
		if e.CommittedBy != nil {
			committerName = e.CommittedBy.Name
			committerDate = e.CommittedBy.Date.UTC().Format(reportDateTimeLayout)
		}
		if e.AuthoredBy != nil {
			authorEmail = e.AuthoredBy.Email
		}
		merged := ""
		if e.IsMerged != nil {
			merged = strconv.FormatBool(*e.IsMerged)
		}

		row := []string{
			e.Hash.Full,
			e.Hash.Short,
			strings.Join(parents, " "),
			authorName(e),
			authorEmail,
			authorDate(e, reportDateTimeLayout),
			committerName,
			committerDate,
			e.Subject,
			strings.Join(refLabels(e.Refs), ", "),
			strconv.Itoa(len(e.Files)),
			strconv.Itoa(added),
			strconv.Itoa(deleted),
			strconv.FormatBool(e.IsLastCommit),
			merged,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
