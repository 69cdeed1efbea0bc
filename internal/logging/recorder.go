package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single recorded diagnostic.
type Entry struct {
	Level   Level
	Message string
}

// Recorder is a test double that keeps every message in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an error diagnostic.
func (r *Recorder) Errorf(format string, args ...interface{}) { r.add(LevelError, format, args...) }

// Infof records an informational message.
func (r *Recorder) Infof(format string, args ...interface{}) { r.add(LevelInfo, format, args...) }

// Tracef records a trace message.
func (r *Recorder) Tracef(format string, args ...interface{}) { r.add(LevelTrace, format, args...) }

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Errors returns the messages recorded at error level.
func (r *Recorder) Errors() []string {
	var msgs []string
	for _, e := range r.Entries() {
		if e.Level == LevelError {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Contains reports whether any recorded message contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, e := range r.Entries() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
