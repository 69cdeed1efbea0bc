package git

import (
	"encoding/json"
	"strings"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestActionedDetails_ContributorKey(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "Lowercase email", email: "user@example.com", expected: "user@example.com"},
		{name: "Uppercase email", email: "USER@EXAMPLE.COM", expected: "user@example.com"},
		{name: "Empty email", email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ActionedDetails{Name: "Test", Email: tt.email}
			if result := a.ContributorKey(); result != tt.expected {
				t.Errorf("ContributorKey() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestCommittedFile_Churn(t *testing.T) {
	tests := []struct {
		name       string
		file       CommittedFile
		expected   int
		wantBinary bool
	}{
		{name: "Both counts", file: CommittedFile{LinesAdded: intPtr(10), LinesDeleted: intPtr(5)}, expected: 15},
		{name: "Only added", file: CommittedFile{LinesAdded: intPtr(10), LinesDeleted: intPtr(0)}, expected: 10},
		{name: "Binary", file: CommittedFile{}, expected: 0, wantBinary: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.file.Churn(); result != tt.expected {
				t.Errorf("Churn() = %d, expected %d", result, tt.expected)
			}
			if got := tt.file.IsBinary(); got != tt.wantBinary {
				t.Errorf("IsBinary() = %v, expected %v", got, tt.wantBinary)
			}
		})
	}
}

func TestRefType_String(t *testing.T) {
	tests := []struct {
		kind     RefType
		expected string
	}{
		{kind: RefTypeHead, expected: "head"},
		{kind: RefTypeRemoteHead, expected: "remote"},
		{kind: RefTypeTag, expected: "tag"},
		{kind: RefType(99), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.kind.String(); result != tt.expected {
				t.Errorf("String() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestLogEntry_JSONUsesNames(t *testing.T) {
	merged := true
	entry := &LogEntry{
		Hash:         Hash{Full: "abc123", Short: "abc"},
		Refs:         []Reference{{Name: "main", Type: RefTypeHead}},
		Files:        []CommittedFile{{Path: "a.go", Status: StatusRenamed, LinesAdded: intPtr(1), LinesDeleted: intPtr(2)}},
		IsLastCommit: true,
		IsMerged:     &merged,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"type":"head"`, `"status":"renamed"`, `"isMerged":true`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}

	var decoded LogEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Files[0].Status != StatusRenamed || decoded.Refs[0].Type != RefTypeHead {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestLogEntry_IsMergeCommit(t *testing.T) {
	e := &LogEntry{Parents: []Hash{{Full: "a"}, {Full: "b"}}}
	if !e.IsMergeCommit() {
		t.Fatal("expected merge commit")
	}
	e.Parents = e.Parents[:1]
	if e.IsMergeCommit() {
		t.Fatal("expected non-merge commit")
	}
}

func TestPageQuery_Skip(t *testing.T) {
	q := PageQuery{PageIndex: 3, PageSize: 25}
	if q.Skip() != 75 {
		t.Fatalf("Skip() = %d, expected 75", q.Skip())
	}
}
