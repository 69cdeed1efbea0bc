package git

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Hash identifies a git object. Short is for display only.
type Hash struct {
	Full  string `json:"full"`
	Short string `json:"short"`
}

// ActionedDetails records who authored or committed a change, and when.
type ActionedDetails struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (a ActionedDetails) ContributorKey() string {
	return strings.ToLower(a.Email)
}

// RefType classifies a decorated reference.
type RefType int

const (
	RefTypeHead RefType = iota
	RefTypeRemoteHead
	RefTypeTag
)

// String returns a string representation of the ref type.
func (t RefType) String() string {
	switch t {
	case RefTypeHead:
		return "head"
	case RefTypeRemoteHead:
		return "remote"
	case RefTypeTag:
		return "tag"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the ref type by name.
func (t RefType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a ref type name.
func (t *RefType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "head":
		*t = RefTypeHead
	case "remote":
		*t = RefTypeRemoteHead
	case "tag":
		*t = RefTypeTag
	default:
		return fmt.Errorf("unknown ref type %q", s)
	}
	return nil
}

// Reference is a branch, remote branch or tag pointing at a commit.
type Reference struct {
	Name string  `json:"name"`
	Type RefType `json:"type"`
}

// CommittedFile is one changed path within a commit.
// Line counts are nil for binary changes.
type CommittedFile struct {
	Path         string     `json:"path"`
	OldPath      string     `json:"oldPath,omitempty"` // For renames and copies
	Status       FileStatus `json:"status"`
	LinesAdded   *int       `json:"linesAdded,omitempty"`
	LinesDeleted *int       `json:"linesDeleted,omitempty"`
}

// IsBinary reports whether git reported no line counts for the file.
func (f CommittedFile) IsBinary() bool {
	return f.LinesAdded == nil && f.LinesDeleted == nil
}

// Churn returns total lines changed (added + deleted). Binary files count as zero.
func (f CommittedFile) Churn() int {
	churn := 0
	if f.LinesAdded != nil {
		churn += *f.LinesAdded
	}
	if f.LinesDeleted != nil {
		churn += *f.LinesDeleted
	}
	return churn
}

// LogEntry is one commit of a history page.
//
// IsLastCommit and IsMerged are derived after parsing: IsLastCommit is set
// when some branch or remote branch points at the commit, and IsMerged is
// only non-nil for such tips.
type LogEntry struct {
	Hash         Hash             `json:"hash"`
	Parents      []Hash           `json:"parents"`
	Tree         Hash             `json:"tree"`
	AuthoredBy   *ActionedDetails `json:"author,omitempty"`
	CommittedBy  *ActionedDetails `json:"committer,omitempty"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body"`
	Notes        string           `json:"notes,omitempty"`
	Refs         []Reference      `json:"refs"`
	Files        []CommittedFile  `json:"files"`
	IsLastCommit bool             `json:"isLastCommit"`
	IsMerged     *bool            `json:"isMerged,omitempty"`
}

// IsMergeCommit reports whether the commit has more than one parent.
func (e *LogEntry) IsMergeCommit() bool {
	return len(e.Parents) > 1
}

// LogEntries is one page of history plus the total under the active filter.
type LogEntries struct {
	Items      []*LogEntry `json:"items"`
	TotalCount int         `json:"count"`
}

// PageQuery selects a page of history.
type PageQuery struct {
	PageIndex   int
	PageSize    int
	AllBranches bool
	SearchText  string
}

// Skip returns the number of commits preceding the page.
func (q PageQuery) Skip() int {
	return q.PageIndex * q.PageSize
}

// HeadRef is a branch or remote branch tip as reported by show-ref.
type HeadRef struct {
	Ref  string // full ref, e.g. refs/heads/main
	Hash string
}
