package git

import "strings"

// fakeCommit describes one synthetic commit for building git-shaped output.
type fakeCommit struct {
	hash       string
	parents    string
	decoration string
	subject    string
	body       string
	numstat    []string
	nameStatus []string
}

func (c fakeCommit) values() map[LogField]string {
	short := c.hash
	if len(short) > 7 {
		short = short[:7]
	}
	return map[LogField]string{
		FieldRefs:           c.decoration,
		FieldHash:           c.hash,
		FieldShortHash:      short,
		FieldTree:           "tree" + c.hash,
		FieldShortTree:      "tr",
		FieldParents:        c.parents,
		FieldShortParents:   c.parents,
		FieldAuthorName:     "Ada Lovelace",
		FieldAuthorEmail:    "ada@example.com",
		FieldAuthorTime:     "1700000000",
		FieldCommitterName:  "Grace Hopper",
		FieldCommitterEmail: "grace@example.com",
		FieldCommitterTime:  "1700000100",
		FieldSubject:        c.subject,
		FieldBody:           c.body,
		FieldNotes:          "",
	}
}

// renderLog produces output shaped like `git log --format=<DefaultLogFormat>`
// followed by the given per-file lines.
func renderLog(commits []fakeCommit, qualitative bool) string {
	format := DefaultLogFormat()
	var b strings.Builder
	for _, c := range commits {
		values := c.values()
		b.WriteString(recordSeparator)
		for _, f := range format.Fields() {
			b.WriteString(values[f])
			b.WriteString(fieldSeparator)
		}
		b.WriteString(statsSeparator)
		b.WriteString("\n")
		lines := c.numstat
		if qualitative {
			lines = c.nameStatus
		}
		if len(lines) > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Join(lines, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
