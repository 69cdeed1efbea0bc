package git

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/masmgr/githistory-go/internal/logging"
)

// FileStatus is the qualitative change reported by --name-status.
type FileStatus int

const (
	StatusAdded FileStatus = iota
	StatusModified
	StatusDeleted
	StatusCopied
	StatusRenamed
	StatusTypeChanged
	StatusUnknown
	StatusUnmerged
	StatusBroken
)

var statusLetters = map[byte]FileStatus{
	'A': StatusAdded,
	'M': StatusModified,
	'D': StatusDeleted,
	'C': StatusCopied,
	'R': StatusRenamed,
	'T': StatusTypeChanged,
	'X': StatusUnknown,
	'U': StatusUnmerged,
	'B': StatusBroken,
}

var statusNames = map[FileStatus]string{
	StatusAdded:       "added",
	StatusModified:    "modified",
	StatusDeleted:     "deleted",
	StatusCopied:      "copied",
	StatusRenamed:     "renamed",
	StatusTypeChanged: "typechanged",
	StatusUnknown:     "unknown",
	StatusUnmerged:    "unmerged",
	StatusBroken:      "broken",
}

// String returns a string representation of the status.
func (s FileStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "invalid"
}

// Letter returns the single-letter git code for the status.
func (s FileStatus) Letter() string {
	for letter, status := range statusLetters {
		if status == s {
			return string(letter)
		}
	}
	return "?"
}

// MarshalJSON encodes the status by name.
func (s FileStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *FileStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for status, n := range statusNames {
		if n == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown file status %q", name)
}

// StatusParser maps name-status tokens such as "M" or "R087" to a FileStatus.
type StatusParser struct {
	Log logging.Logger
}

// Parse looks only at the first character of the trimmed token. Unrecognized
// letters are logged and reported with ok == false.
func (p StatusParser) Parse(raw string) (status FileStatus, ok bool) {
	token := strings.TrimSpace(raw)
	if token != "" {
		status, ok = statusLetters[token[0]]
	}
	if !ok {
		logging.OrDiscard(p.Log).Errorf("unrecognized file stat status %q", raw)
	}
	return status, ok
}
