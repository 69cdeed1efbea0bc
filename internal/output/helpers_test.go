package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/masmgr/githistory-go/internal/git"
)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

var fixtureTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixtureTip() *git.LogEntry {
	ada := &git.ActionedDetails{Name: "Ada", Email: "ada@example.com", Date: fixtureTime}
	return &git.LogEntry{
		Hash:        git.Hash{Full: "aaaaaaa1111111111111111111111111111111111", Short: "aaaaaaa"},
		Parents:     []git.Hash{{Full: "bbbbbbb2222222222222222222222222222222222", Short: "bbbbbbb"}},
		AuthoredBy:  ada,
		CommittedBy: ada,
		Subject:     "Add things",
		Body:        "Body text",
		Refs: []git.Reference{
			{Name: "main", Type: git.RefTypeHead},
			{Name: "v1", Type: git.RefTypeTag},
		},
		Files: []git.CommittedFile{
			{Path: "a.go", Status: git.StatusModified, LinesAdded: intPtr(3), LinesDeleted: intPtr(1)},
			{Path: "new.go", OldPath: "old.go", Status: git.StatusRenamed, LinesAdded: intPtr(0), LinesDeleted: intPtr(0)},
			{Path: "logo.png", Status: git.StatusAdded},
		},
		IsLastCommit: true,
		IsMerged:     boolPtr(false),
	}
}

func fixtureMerge() *git.LogEntry {
	grace := &git.ActionedDetails{Name: "Grace_H", Email: "grace@example.com", Date: fixtureTime.Add(-48 * time.Hour)}
	return &git.LogEntry{
		Hash: git.Hash{Full: "bbbbbbb2222222222222222222222222222222222", Short: "bbbbbbb"},
		Parents: []git.Hash{
			{Full: "ccccccc", Short: "ccccccc"},
			{Full: "ddddddd", Short: "ddddddd"},
		},
		AuthoredBy:  grace,
		CommittedBy: grace,
		Subject:     "Merge | pipes",
	}
}

func fixturePage() *PageReport {
	return &PageReport{
		RepoPath:    "/repo",
		PageIndex:   0,
		PageSize:    2,
		TotalCount:  10,
		GeneratedAt: fixtureTime,
		Items:       []*git.LogEntry{fixtureTip(), fixtureMerge()},
	}
}

// writeToTemp runs write against a temporary output file and returns its content.
func writeToTemp(t *testing.T, write func(path string) error) string {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	path := filepath.Join(t.TempDir(), "out")
	if err := write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}

func assertTextEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Fatalf("output mismatch:\n%s", diff)
}

func TestTruncateMessage_Output(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Multibyte", msg: "ééééééééééé", maxLen: 5, expected: "éé..."},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Pipe", input: "a|b", expected: "a\\|b"},
		{name: "Asterisk", input: "a*b", expected: "a\\*b"},
		{name: "Underscore", input: "a_b", expected: "a\\_b"},
		{name: "Backtick", input: "a`b", expected: "a\\`b"},
		{name: "No specials", input: "plain text", expected: "plain text"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := escapeMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdown(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTipState(t *testing.T) {
	tests := []struct {
		name  string
		entry *git.LogEntry
		want  string
	}{
		{name: "Not a tip", entry: &git.LogEntry{}, want: ""},
		{name: "Tip without merge info", entry: &git.LogEntry{IsLastCommit: true}, want: "tip"},
		{name: "Merged tip", entry: &git.LogEntry{IsLastCommit: true, IsMerged: boolPtr(true)}, want: "merged"},
		{name: "Unmerged tip", entry: &git.LogEntry{IsLastCommit: true, IsMerged: boolPtr(false)}, want: "unmerged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tipState(tt.entry); got != tt.want {
				t.Errorf("tipState() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageRange(t *testing.T) {
	report := &PageReport{PageIndex: 2, PageSize: 50, Items: make([]*git.LogEntry, 7)}
	if first, last := pageRange(report); first != 101 || last != 107 {
		t.Errorf("pageRange = %d-%d, expected 101-107", first, last)
	}
	if first, last := pageRange(&PageReport{PageIndex: 3, PageSize: 10}); first != 0 || last != 0 {
		t.Errorf("empty pageRange = %d-%d", first, last)
	}
}

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3}
	if got := limitTop(items, 0); len(got) != 3 {
		t.Errorf("limitTop(0) = %v", got)
	}
	if got := limitTop(items, 2); len(got) != 2 {
		t.Errorf("limitTop(2) = %v", got)
	}
	if got := limitTop(items, 5); len(got) != 3 {
		t.Errorf("limitTop(5) = %v", got)
	}
}
