package git

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockRunner is a test double for Runner.
// It returns canned output keyed by the space-joined argument list, so tests
// can exercise the repository without a git binary.
type MockRunner struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Calls     []MockCall
}

// MockCall records one invocation.
type MockCall struct {
	Args     []string
	Dir      string
	UseShell bool
}

// NewMockRunner creates a MockRunner with no canned responses.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// On registers output for an argument list.
func (m *MockRunner) On(output string, args ...string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[strings.Join(args, " ")] = output
	return m
}

// Fail registers an error for an argument list.
func (m *MockRunner) Fail(err error, args ...string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[strings.Join(args, " ")] = err
	return m
}

// Run returns the registered output or error. Unregistered commands fail.
func (m *MockRunner) Run(_ context.Context, args []string, dir string, useShell bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Args: append([]string(nil), args...), Dir: dir, UseShell: useShell})

	key := strings.Join(args, " ")
	if err, ok := m.Errors[key]; ok {
		return "", err
	}
	if out, ok := m.Responses[key]; ok {
		return out, nil
	}
	return "", &CommandExecutionError{
		Args:     args,
		Dir:      dir,
		ExitCode: 128,
		Stderr:   "unexpected command",
		Err:      fmt.Errorf("no mock response for %q", key),
	}
}

// CallsWithPrefix returns the recorded calls whose first args match prefix.
func (m *MockRunner) CallsWithPrefix(prefix ...string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []MockCall
	for _, c := range m.Calls {
		if len(c.Args) < len(prefix) {
			continue
		}
		match := true
		for i, p := range prefix {
			if c.Args[i] != p {
				match = false
				break
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out
}

// Compile-time interface conformance checks.
var (
	_ Runner = (*CLIRunner)(nil)
	_ Runner = (*MockRunner)(nil)
)
