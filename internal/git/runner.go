package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/masmgr/githistory-go/internal/logging"
)

// ErrTimeout is returned when a git invocation exceeds its deadline.
var ErrTimeout = errors.New("git command timed out")

// CommandExecutionError reports a git invocation that could not start or
// exited with a non-zero status. Stdout must not be treated as usable output.
type CommandExecutionError struct {
	Args     []string
	Dir      string
	ExitCode int // -1 when the process never ran
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandExecutionError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s failed (exit %d): %s", strings.Join(e.Args, " "), e.ExitCode, msg)
}

func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// Runner executes the git binary.
type Runner interface {
	// Run invokes git with args in dir and returns stdout. With useShell the
	// args form a shell command line after the git executable, so they may
	// carry pipes; callers quote untrusted values with ShellQuote.
	Run(ctx context.Context, args []string, dir string, useShell bool) (string, error)
}

// CLIRunner runs a git executable found on disk.
type CLIRunner struct {
	GitPath string
	Timeout time.Duration // zero disables the per-invocation deadline
	Log     logging.Logger
}

// NewCLIRunner creates a runner for the given git executable.
func NewCLIRunner(gitPath string, timeout time.Duration, log logging.Logger) *CLIRunner {
	if gitPath == "" {
		gitPath = "git"
	}
	return &CLIRunner{GitPath: gitPath, Timeout: timeout, Log: logging.OrDiscard(log)}
}

// Run implements Runner.
func (r *CLIRunner) Run(ctx context.Context, args []string, dir string, useShell bool) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	if useShell {
		name, shellArgs := shellCommand(runtime.GOOS, r.GitPath, args)
		cmd = exec.CommandContext(ctx, name, shellArgs...)
	} else {
		cmd = exec.CommandContext(ctx, r.GitPath, args...)
	}
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.OrDiscard(r.Log).Tracef("git %s (in %s)", strings.Join(args, " "), dir)
	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s: git %s", ErrTimeout, r.Timeout, strings.Join(args, " "))
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return "", &CommandExecutionError{
		Args:     args,
		Dir:      dir,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}

// shellCommand builds the interpreter invocation for a shell-mode command line.
func shellCommand(goos, gitPath string, args []string) (string, []string) {
	line := ShellQuote(goos, gitPath) + " " + strings.Join(args, " ")
	if goos == "windows" {
		return "cmd", []string{"/C", line}
	}
	return "sh", []string{"-c", line}
}

// ShellQuote quotes s for the shell used on goos when it contains anything
// beyond a conservative set of safe characters.
func ShellQuote(goos, s string) string {
	if s != "" && strings.IndexFunc(s, isUnsafeShellRune) == -1 {
		return s
	}
	if goos == "windows" {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isUnsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:=@%+,", r)
}

// ResolveGitPath returns the configured git executable when it exists,
// falling back to git on PATH.
func ResolveGitPath(configured string, log logging.Logger) (string, error) {
	log = logging.OrDiscard(log)
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			log.Tracef("git path: %s - from configuration", configured)
			return configured, nil
		}
		log.Errorf("git path: %s - from configuration is invalid", configured)
	}

	path, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("git executable not found on PATH: %w", err)
	}
	log.Tracef("git path: %s - from PATH", path)
	return path, nil
}
