// Package exec runs external commands with logging and output capture.
package exec

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Unredacted passes command output through unchanged.
var Unredacted = Redact(nil)

// CmdError reports a failed command together with its captured stderr.
type CmdError struct {
	Args   string
	Stderr string
	Cause  error
}

func (ce *CmdError) Error() string {
	res := fmt.Sprintf("`%v` failed: %v", ce.Args, ce.Cause)
	if ce.Stderr != "" {
		res = fmt.Sprintf("%s: %s", res, ce.Stderr)
	}

	return res
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

// CmdOpts configures a single command invocation.
type CmdOpts struct {
	// Redactor redacts tokens from logged output.
	Redactor func(text string) string
	// Timeout determines how long to wait for the command to exit.
	Timeout time.Duration
	// CaptureStderr defines whether to include stderr in the returned output.
	CaptureStderr bool
}

// Redact returns a redactor replacing each item with a placeholder.
func Redact(items []string) func(text string) string {
	return func(text string) string {
		for _, item := range items {
			text = strings.ReplaceAll(text, item, "******")
		}

		return text
	}
}

// randString returns a pseudo-random alpha-numeric string of a given length,
// used to correlate log lines from one invocation.
func randString(n int) (string, error) {
	b := make([]byte, n/2+1)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(b)[0:n], nil
}

// RunCommand runs name with args in dir and returns its trimmed stdout.
// Failures are returned as a [CmdError] carrying the captured stderr.
func RunCommand(ctx context.Context, dir, name string, opts CmdOpts, args ...string) (string, error) {
	if opts.Timeout != 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	return RunCommandExt(cmd, opts)
}

// RunCommandExt runs a prepared [exec.Cmd], logging the invocation in a form
// that can be copied into a terminal.
func RunCommandExt(cmd *exec.Cmd, opts CmdOpts) (string, error) {
	execID, err := randString(5)
	if err != nil {
		return "", err
	}

	logCtx := slog.With(slog.String("execID", execID))

	redactor := Unredacted
	if opts.Redactor != nil {
		redactor = opts.Redactor
	}

	args := strings.Join(cmd.Args, " ")
	logCtx.Debug(redactor(args), slog.String("dir", cmd.Dir))

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()

	output := stdout.String()
	if opts.CaptureStderr {
		output += stderr.String()
	}

	logCtx.Debug(redactor(output), slog.Duration("duration", time.Since(start)))

	if err != nil {
		cmdErr := &CmdError{
			Args:   redactor(args),
			Stderr: strings.TrimSpace(redactor(stderr.String())),
			Cause:  err,
		}
		logCtx.Error(cmdErr.Error())

		return strings.TrimSuffix(output, "\n"), cmdErr
	}

	return strings.TrimSuffix(output, "\n"), nil
}
