// Package git wraps the git CLI for the small set of operations the release
// tooling needs: working tree status, staging, and committing.
package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ceesaxp/beads/pkg/exec"
)

const defaultTimeout = 30 * time.Second

// Client runs git commands in a fixed repository root.
type Client struct {
	repoRoot string
	timeout  time.Duration
}

// NewClient creates a [Client] for the repository at repoRoot.
func NewClient(repoRoot string, opts ...ClientOpts) *Client {
	c := &Client{
		repoRoot: repoRoot,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type ClientOpts func(*Client)

func WithTimeout(timeout time.Duration) ClientOpts {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	out, err := exec.RunCommand(ctx, c.repoRoot, "git", exec.CmdOpts{Timeout: c.timeout}, args...)
	if err != nil {
		return out, fmt.Errorf("git %s: %w", args[0], err)
	}

	return out, nil
}

// DirtyFiles returns the paths reported by git status --porcelain.
// An empty result means the working tree is clean.
func (c *Client) DirtyFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(out) == "" {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	files := make([]string, 0, len(lines))

	for _, line := range lines {
		// Porcelain v1 lines are `XY <path>`, with a 3-column status prefix.
		if len(line) > 3 {
			files = append(files, strings.TrimSpace(line[3:]))
		}
	}

	return files, nil
}

// IsDirty reports whether the working tree has uncommitted changes.
func (c *Client) IsDirty(ctx context.Context) (bool, error) {
	files, err := c.DirtyFiles(ctx)
	if err != nil {
		return false, err
	}

	return len(files) > 0, nil
}

// Add stages the given paths.
func (c *Client) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)

	_, err := c.run(ctx, args...)

	return err
}

// Commit creates a commit with the given message. The message may span
// multiple lines.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)

	return err
}
