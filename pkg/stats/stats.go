package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ceesaxp/beads/pkg/exec"
)

const (
	// DefaultBin is the bd binary resolved from PATH.
	DefaultBin = "bd"

	defaultTimeout = 30 * time.Second

	// openTriageThreshold is the open-issue count above which a triage pass
	// is suggested.
	openTriageThreshold = 20
)

// Issue is one recently updated issue in a snapshot.
type Issue struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
}

// Snapshot is the decoded output of `bd stats --json`.
type Snapshot struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	ByType     map[string]int `json:"by_type"`
	Recent     []Issue        `json:"recently_updated"`
	Total      int            `json:"total"`
}

// CompletionRate returns the share of closed issues, in [0, 1].
func (s *Snapshot) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.ByStatus["closed"]) / float64(s.Total)
}

// Suggestion returns a follow-up action based on the snapshot's counts, or an
// empty string when none applies. Thresholds are checked in order of urgency:
// blocked work first, then an idle pipeline, then an oversized backlog.
func (s *Snapshot) Suggestion() string {
	if blocked := s.ByStatus["blocked"]; blocked > 0 {
		return fmt.Sprintf("%d issue(s) are blocked; review their blockers with `bd blocked`", blocked)
	}

	if s.ByStatus["in_progress"] == 0 && s.Total > 0 {
		return "nothing is in progress; pick up a ready issue with `bd ready`"
	}

	if open := s.ByStatus["open"]; open > openTriageThreshold {
		return fmt.Sprintf("%d open issue(s); consider a triage pass over the backlog", open)
	}

	return ""
}

// Client invokes the bd CLI.
type Client struct {
	bin     string
	dir     string
	timeout time.Duration
}

// NewClient creates a [Client]. The zero options resolve bd from PATH and run
// it in the current directory.
func NewClient(opts ...ClientOpts) *Client {
	c := &Client{
		bin:     DefaultBin,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type ClientOpts func(*Client)

// WithBin overrides the bd binary path.
func WithBin(bin string) ClientOpts {
	return func(c *Client) {
		c.bin = bin
	}
}

// WithDir sets the working directory for bd invocations.
func WithDir(dir string) ClientOpts {
	return func(c *Client) {
		c.dir = dir
	}
}

func WithTimeout(timeout time.Duration) ClientOpts {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Snapshot runs `bd stats --json` and decodes the result. limit caps the
// recently-updated list; zero keeps bd's default.
func (c *Client) Snapshot(ctx context.Context, limit int) (*Snapshot, error) {
	args := []string{"stats", "--json"}
	if limit > 0 {
		args = append(args, "--limit", fmt.Sprint(limit))
	}

	out, err := exec.RunCommand(ctx, c.dir, c.bin, exec.CmdOpts{Timeout: c.timeout}, args...)
	if err != nil {
		return nil, fmt.Errorf("bd stats: %w", err)
	}

	s := &Snapshot{}
	if err := json.Unmarshal([]byte(out), s); err != nil {
		return nil, fmt.Errorf("decode bd stats output: %w", err)
	}

	return s, nil
}
