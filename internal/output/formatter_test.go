package output

import "testing"

func TestNewPageWriter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		check  func(PageWriter) bool
	}{
		{format: FormatConsole, check: func(w PageWriter) bool { _, ok := w.(*ConsolePageWriter); return ok }},
		{format: FormatJSON, check: func(w PageWriter) bool { _, ok := w.(*JSONPageWriter); return ok }},
		{format: FormatCSV, check: func(w PageWriter) bool { _, ok := w.(*CSVPageWriter); return ok }},
		{format: FormatMarkdown, check: func(w PageWriter) bool { _, ok := w.(*MarkdownPageWriter); return ok }},
		{format: FormatCI, check: func(w PageWriter) bool { _, ok := w.(*CIPageWriter); return ok }},
		{format: "unknown", check: func(w PageWriter) bool { _, ok := w.(*ConsolePageWriter); return ok }},
		{format: "", check: func(w PageWriter) bool { _, ok := w.(*ConsolePageWriter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if w := NewPageWriter(tt.format); !tt.check(w) {
				t.Errorf("NewPageWriter(%q) returned %T", tt.format, w)
			}
		})
	}
}

func TestNewCommitWriter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		check  func(CommitWriter) bool
	}{
		{format: FormatConsole, check: func(w CommitWriter) bool { _, ok := w.(*ConsoleCommitWriter); return ok }},
		{format: FormatJSON, check: func(w CommitWriter) bool { _, ok := w.(*JSONCommitWriter); return ok }},
		{format: FormatCSV, check: func(w CommitWriter) bool { _, ok := w.(*JSONCommitWriter); return ok }},
		{format: FormatCI, check: func(w CommitWriter) bool { _, ok := w.(*JSONCommitWriter); return ok }},
		{format: FormatMarkdown, check: func(w CommitWriter) bool { _, ok := w.(*MarkdownCommitWriter); return ok }},
		{format: "unknown", check: func(w CommitWriter) bool { _, ok := w.(*ConsoleCommitWriter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if w := NewCommitWriter(tt.format); !tt.check(w) {
				t.Errorf("NewCommitWriter(%q) returned %T", tt.format, w)
			}
		})
	}
}
