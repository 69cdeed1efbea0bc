package git

import (
	"fmt"
	"strings"
)

// Sentinels framing git's pretty output. They are GUID-shaped so they
// cannot collide with anything a commit message or ref name carries.
const (
	recordSeparator = "4C1E7B52-9A0D-4E6F-B3A8-61D2F0C9E5A1"
	fieldSeparator  = "4C1E7B52-9A0D-4E6F-B3A8-61D2F0C9E5A2"
	statsSeparator  = "4C1E7B52-9A0D-4E6F-B3A8-61D2F0C9E5A3"
)

// LogField is one placeholder of the pretty format.
type LogField int

const (
	FieldRefs LogField = iota
	FieldHash
	FieldShortHash
	FieldTree
	FieldShortTree
	FieldParents
	FieldShortParents
	FieldAuthorName
	FieldAuthorEmail
	FieldAuthorTime
	FieldCommitterName
	FieldCommitterEmail
	FieldCommitterTime
	FieldSubject
	FieldBody
	FieldNotes
)

var fieldPlaceholders = map[LogField]string{
	FieldRefs:           "%d",
	FieldHash:           "%H",
	FieldShortHash:      "%h",
	FieldTree:           "%T",
	FieldShortTree:      "%t",
	FieldParents:        "%P",
	FieldShortParents:   "%p",
	FieldAuthorName:     "%an",
	FieldAuthorEmail:    "%ae",
	FieldAuthorTime:     "%at",
	FieldCommitterName:  "%cn",
	FieldCommitterEmail: "%ce",
	FieldCommitterTime:  "%ct",
	FieldSubject:        "%s",
	FieldBody:           "%b",
	FieldNotes:          "%N",
}

// DefaultLogFields is the field order used for history queries.
var DefaultLogFields = []LogField{
	FieldRefs,
	FieldHash,
	FieldShortHash,
	FieldTree,
	FieldShortTree,
	FieldParents,
	FieldShortParents,
	FieldAuthorName,
	FieldAuthorEmail,
	FieldAuthorTime,
	FieldCommitterName,
	FieldCommitterEmail,
	FieldCommitterTime,
	FieldSubject,
	FieldBody,
	FieldNotes,
}

// LogFormat ties the --format argument to the positions the parser reads,
// so both are derived from the same field list.
type LogFormat struct {
	fields []LogField
	index  map[LogField]int
}

// NewLogFormat creates a format from an ordered field list.
func NewLogFormat(fields ...LogField) LogFormat {
	index := make(map[LogField]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	return LogFormat{fields: append([]LogField(nil), fields...), index: index}
}

// DefaultLogFormat returns the format built from DefaultLogFields.
func DefaultLogFormat() LogFormat {
	return NewLogFormat(DefaultLogFields...)
}

// Fields returns the ordered field list.
func (f LogFormat) Fields() []LogField {
	return append([]LogField(nil), f.fields...)
}

// Arg returns the --format argument. Each record starts with the record
// separator; the fields are followed by the stats separator, after which git
// appends its per-file output.
func (f LogFormat) Arg() string {
	var b strings.Builder
	b.WriteString("--format=")
	b.WriteString(recordSeparator)
	for _, field := range f.fields {
		b.WriteString(fieldPlaceholders[field])
		b.WriteString(fieldSeparator)
	}
	b.WriteString(statsSeparator)
	return b.String()
}

// recordValues holds the raw field values of one record.
type recordValues struct {
	format LogFormat
	values []string
}

// Get returns the raw value of field, or "" when the format omits it.
func (r recordValues) Get(field LogField) string {
	i, ok := r.format.index[field]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// split separates a record into its field values and the trailing stats text.
func (f LogFormat) split(record string) (recordValues, string, error) {
	header, stats, found := strings.Cut(record, statsSeparator)
	if !found {
		return recordValues{}, "", fmt.Errorf("log record missing stats separator")
	}

	values := strings.Split(header, fieldSeparator)
	// The header ends with a field separator, so there is one trailing empty value.
	if len(values) < len(f.fields) {
		return recordValues{}, "", fmt.Errorf("log record has %d fields, expected %d", len(values), len(f.fields))
	}
	return recordValues{format: f, values: values[:len(f.fields)]}, stats, nil
}

// splitRecords splits raw log output into non-blank records.
func splitRecords(output string) []string {
	parts := strings.Split(output, recordSeparator)
	records := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		records = append(records, p)
	}
	return records
}
