package git

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/masmgr/githistory-go/internal/logging"
)

// ErrIndexMisalignment is returned when the numstat and name-status runs of
// the same query produce a different number of records.
var ErrIndexMisalignment = errors.New("numstat and name-status record counts differ")

type numstatEntry struct {
	added   *int
	deleted *int
	path    string
	oldPath string
}

type nameStatusEntry struct {
	status  FileStatus
	path    string
	oldPath string
}

// LogParser turns the two parallel log outputs into LogEntry values.
type LogParser struct {
	format LogFormat
	refs   *RefsParser
	status StatusParser
	filter PathFilter
	log    logging.Logger
}

// NewLogParser creates a parser for output produced with format.Arg().
func NewLogParser(format LogFormat, filter PathFilter, log logging.Logger) *LogParser {
	log = logging.OrDiscard(log)
	return &LogParser{
		format: format,
		refs:   NewRefsParser(log),
		status: StatusParser{Log: log},
		filter: filter,
		log:    log,
	}
}

// Parse pairs the records of the numstat output with the records of the
// name-status output by position. Both must come from queries that differ
// only in their diff format flags.
func (p *LogParser) Parse(quantitative, qualitative string) ([]*LogEntry, error) {
	quant := splitRecords(quantitative)
	qual := splitRecords(qualitative)
	if len(quant) != len(qual) {
		return nil, fmt.Errorf("%w: %d numstat records, %d name-status records", ErrIndexMisalignment, len(quant), len(qual))
	}

	entries := make([]*LogEntry, 0, len(quant))
	for i := range quant {
		entry, err := p.parseRecord(quant[i], qual[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p *LogParser) parseRecord(quantRecord, qualRecord string) (*LogEntry, error) {
	values, statsText, err := p.format.split(quantRecord)
	if err != nil {
		return nil, err
	}
	qualValues, qualStats, err := p.format.split(qualRecord)
	if err != nil {
		return nil, err
	}

	hash := strings.TrimSpace(values.Get(FieldHash))
	if qualHash := strings.TrimSpace(qualValues.Get(FieldHash)); hash != "" && qualHash != "" && hash != qualHash {
		return nil, fmt.Errorf("%w: commit %s paired with %s", ErrIndexMisalignment, hash, qualHash)
	}

	entry := &LogEntry{
		Hash:        Hash{Full: hash, Short: strings.TrimSpace(values.Get(FieldShortHash))},
		Tree:        Hash{Full: strings.TrimSpace(values.Get(FieldTree)), Short: strings.TrimSpace(values.Get(FieldShortTree))},
		Parents:     parseParents(values.Get(FieldParents), values.Get(FieldShortParents)),
		AuthoredBy:  ParseActionedDetails(values.Get(FieldAuthorName), values.Get(FieldAuthorEmail), values.Get(FieldAuthorTime)),
		CommittedBy: ParseActionedDetails(values.Get(FieldCommitterName), values.Get(FieldCommitterEmail), values.Get(FieldCommitterTime)),
		Subject:     strings.TrimSpace(values.Get(FieldSubject)),
		Body:        strings.TrimSpace(values.Get(FieldBody)),
		Notes:       strings.TrimSpace(values.Get(FieldNotes)),
		Refs:        p.refs.Parse(values.Get(FieldRefs)),
	}
	if entry.AuthoredBy == nil {
		p.log.Errorf("commit %s: invalid author details", entry.Hash.Full)
	}
	if entry.CommittedBy == nil {
		p.log.Errorf("commit %s: invalid committer details", entry.Hash.Full)
	}

	entry.Files = p.mergeFiles(entry.Hash.Full, parseNumstat(statsText), p.parseNameStatus(qualStats))
	return entry, nil
}

func parseParents(full, short string) []Hash {
	fulls := strings.Fields(full)
	shorts := strings.Fields(short)
	parents := make([]Hash, 0, len(fulls))
	for i, f := range fulls {
		h := Hash{Full: f}
		if i < len(shorts) {
			h.Short = shorts[i]
		}
		parents = append(parents, h)
	}
	return parents
}

// mergeFiles joins line counts and statuses by destination path, keeping
// numstat order and appending paths only the name-status run reported.
func (p *LogParser) mergeFiles(hash string, stats []numstatEntry, statuses []nameStatusEntry) []CommittedFile {
	byPath := make(map[string]nameStatusEntry, len(statuses))
	for _, s := range statuses {
		byPath[s.path] = s
	}

	files := make([]CommittedFile, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for _, st := range stats {
		file := CommittedFile{
			Path:         st.path,
			OldPath:      st.oldPath,
			LinesAdded:   st.added,
			LinesDeleted: st.deleted,
			Status:       StatusModified,
		}
		if ns, ok := byPath[st.path]; ok {
			file.Status = ns.status
			if file.OldPath == "" {
				file.OldPath = ns.oldPath
			}
		} else {
			p.log.Errorf("commit %s: no status reported for %q", hash, st.path)
		}
		seen[st.path] = true
		files = append(files, file)
	}

	for _, ns := range statuses {
		if seen[ns.path] {
			continue
		}
		seen[ns.path] = true
		files = append(files, CommittedFile{Path: ns.path, OldPath: ns.oldPath, Status: ns.status})
	}

	if p.filter.IsEmpty() {
		return files
	}
	filtered := files[:0]
	for _, f := range files {
		if p.filter.Match(f.Path) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// parseNumstat reads "added<TAB>deleted<TAB>path" lines. Other lines, such as
// the --summary section, are skipped.
func parseNumstat(text string) []numstatEntry {
	var entries []numstatEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		added, okAdded := parseNumstatCount(parts[0])
		deleted, okDeleted := parseNumstatCount(parts[1])
		if !okAdded || !okDeleted {
			continue
		}
		path, oldPath := parseRenamePath(unquotePath(parts[2]))
		if path == "" {
			continue
		}
		entries = append(entries, numstatEntry{added: added, deleted: deleted, path: path, oldPath: oldPath})
	}
	return entries
}

// parseNumstatCount returns nil for the binary marker "-".
func parseNumstatCount(s string) (*int, bool) {
	if s == "-" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

// parseRenamePath expands numstat rename notation into (destination, source).
// Handles "old => new", "dir/{old => new}/file" and "old -> new".
func parseRenamePath(path string) (string, string) {
	if open := strings.Index(path, "{"); open != -1 {
		if end := strings.Index(path[open:], "}"); end != -1 {
			end += open
			inner := path[open+1 : end]
			if from, to, ok := cutArrow(inner); ok {
				prefix, suffix := path[:open], path[end+1:]
				return joinRenamePart(prefix, to, suffix), joinRenamePart(prefix, from, suffix)
			}
		}
	}
	if from, to, ok := cutArrow(path); ok {
		return to, from
	}
	return path, ""
}

func cutArrow(s string) (string, string, bool) {
	for _, arrow := range []string{" => ", " -> "} {
		if from, to, ok := strings.Cut(s, arrow); ok {
			return strings.TrimSpace(from), strings.TrimSpace(to), true
		}
	}
	return "", "", false
}

func joinRenamePart(prefix, middle, suffix string) string {
	if middle == "" {
		return prefix + strings.TrimPrefix(suffix, "/")
	}
	return prefix + middle + suffix
}

// parseNameStatus reads "S<TAB>path" and "Rnnn<TAB>old<TAB>new" lines.
func (p *LogParser) parseNameStatus(text string) []nameStatusEntry {
	var entries []nameStatusEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || !isStatusLine(line) {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status, ok := p.status.Parse(parts[0])
		if !ok {
			continue
		}
		entry := nameStatusEntry{status: status, path: unquotePath(parts[len(parts)-1])}
		if len(parts) >= 3 {
			entry.oldPath = unquotePath(parts[1])
		}
		entries = append(entries, entry)
	}
	return entries
}

// isStatusLine reports whether a line looks like name-status output: a
// letter, optional similarity score, then a tab.
func isStatusLine(line string) bool {
	tab := strings.IndexByte(line, '\t')
	if tab < 1 {
		return false
	}
	c := line[0]
	if c < 'A' || c > 'Z' {
		return false
	}
	for i := 1; i < tab; i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return true
}

// unquotePath undoes git's C-style quoting of unusual path names.
func unquotePath(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}
