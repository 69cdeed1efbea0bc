package cmd

import (
	"testing"

	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
)

func TestParseCountMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    git.CountMode
		wantErr bool
	}{
		{name: "DefaultClient", input: "", want: git.CountClient},
		{name: "Client", input: "client", want: git.CountClient},
		{name: "Shell", input: "shell", want: git.CountShell},
		{name: "Invalid", input: "wc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCountMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseCountMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "console", want: output.FormatConsole},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
