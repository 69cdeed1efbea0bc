package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/masmgr/githistory-go/internal/logging"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		goos     string
		input    string
		expected string
	}{
		{goos: "linux", input: "--all", expected: "--all"},
		{goos: "linux", input: "--grep=fix", expected: "--grep=fix"},
		{goos: "linux", input: "--grep=fix bug", expected: "'--grep=fix bug'"},
		{goos: "linux", input: "a;rm -rf /", expected: "'a;rm -rf /'"},
		{goos: "linux", input: "it's", expected: `'it'\''s'`},
		{goos: "linux", input: "", expected: "''"},
		{goos: "windows", input: "--grep=fix bug", expected: `"--grep=fix bug"`},
		{goos: "windows", input: `say "hi"`, expected: `"say ""hi"""`},
		{goos: "windows", input: "", expected: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.input, func(t *testing.T) {
			if got := ShellQuote(tt.goos, tt.input); got != tt.expected {
				t.Errorf("ShellQuote(%q, %q) = %s, expected %s", tt.goos, tt.input, got, tt.expected)
			}
		})
	}
}

func TestShellCommand(t *testing.T) {
	args := []string{"log", "--format=%H", "--", "|", "wc", "-l"}

	name, shellArgs := shellCommand("linux", "/usr/bin/git", args)
	if name != "sh" || !reflect.DeepEqual(shellArgs, []string{"-c", "/usr/bin/git log --format=%H -- | wc -l"}) {
		t.Errorf("linux: %s %v", name, shellArgs)
	}

	name, shellArgs = shellCommand("windows", `C:\Program Files\Git\bin\git.exe`, args)
	if name != "cmd" || shellArgs[0] != "/C" || shellArgs[1] != `"C:\Program Files\Git\bin\git.exe" log --format=%H -- | wc -l` {
		t.Errorf("windows: %s %v", name, shellArgs)
	}
}

func TestCommandExecutionError(t *testing.T) {
	inner := errors.New("exit status 128")
	err := &CommandExecutionError{Args: []string{"log"}, ExitCode: 128, Stderr: "fatal: bad revision\n", Err: inner}

	if err.Error() != "git log failed (exit 128): fatal: bad revision" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the process error")
	}

	noStderr := &CommandExecutionError{Args: []string{"log"}, ExitCode: -1, Err: inner}
	if noStderr.Error() != "git log failed (exit -1): exit status 128" {
		t.Errorf("Error() = %q", noStderr.Error())
	}
}

func requireGit(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not found on PATH")
	}
	return path
}

func TestCLIRunner_FailureCarriesExitCode(t *testing.T) {
	gitPath := requireGit(t)
	runner := NewCLIRunner(gitPath, 0, nil)

	_, err := runner.Run(context.Background(), []string{"rev-parse", "--show-toplevel"}, t.TempDir(), false)
	var execErr *CommandExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected CommandExecutionError, got %v", err)
	}
	if execErr.ExitCode <= 0 || execErr.Stderr == "" {
		t.Fatalf("expected exit code and stderr, got %+v", execErr)
	}
}

func TestCLIRunner_MissingBinary(t *testing.T) {
	runner := NewCLIRunner(filepath.Join(t.TempDir(), "no-such-git"), 0, nil)

	_, err := runner.Run(context.Background(), []string{"--version"}, t.TempDir(), false)
	var execErr *CommandExecutionError
	if !errors.As(err, &execErr) || execErr.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %v", err)
	}
}

func TestCLIRunner_CancelledContext(t *testing.T) {
	gitPath := requireGit(t)
	runner := NewCLIRunner(gitPath, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx, []string{"--version"}, t.TempDir(), false); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestResolveGitPath(t *testing.T) {
	t.Run("configured path exists", func(t *testing.T) {
		configured := filepath.Join(t.TempDir(), "git")
		if err := os.WriteFile(configured, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
		got, err := ResolveGitPath(configured, nil)
		if err != nil || got != configured {
			t.Fatalf("ResolveGitPath = (%q, %v)", got, err)
		}
	})

	t.Run("invalid configured path falls back", func(t *testing.T) {
		onPath := requireGit(t)
		log := logging.NewRecorder()
		got, err := ResolveGitPath(filepath.Join(t.TempDir(), "missing"), log)
		if err != nil || got != onPath {
			t.Fatalf("ResolveGitPath = (%q, %v), expected %q", got, err, onPath)
		}
		if !log.Contains("is invalid") {
			t.Fatalf("expected a diagnostic about the configured path, got %v", log.Entries())
		}
	})
}
