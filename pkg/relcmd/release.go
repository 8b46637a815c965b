package relcmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Ceesaxp/beads/pkg/git"
	"github.com/Ceesaxp/beads/pkg/paths"
	"github.com/Ceesaxp/beads/pkg/plan"
)

// ConfirmFunc asks the operator whether to proceed despite a dirty working
// tree. It receives the dirty paths and returns the decision.
type ConfirmFunc func(dirtyFiles []string) (bool, error)

// Release orchestrates version synchronization for one release root.
type Release struct {
	Plan     *plan.Plan
	Git      *git.Client
	confirm  ConfirmFunc
	Root     string
	repoRoot string
	subs     []func(any)
	Timeout  time.Duration
}

// New creates a [Release] rooted at root. The root must be (or be inside) a
// git repository and must contain the plan's canonical source file.
func New(root string, opts ...ReleaseOpts) (*Release, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	r := &Release{
		Root:    absRoot,
		Timeout: 1 * time.Minute,
		subs:    []func(any){},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.Plan == nil {
		p, err := plan.Load(absRoot)
		if err != nil {
			return nil, err
		}

		r.Plan = p
	}

	if err := r.Plan.Validate(); err != nil {
		return nil, err
	}

	if err := paths.EnsureReleaseRoot(absRoot, r.Plan.Canonical().Path); err != nil {
		return nil, err
	}

	slog.Debug("looking for repository root", slog.String("path", absRoot))

	repoRoot, err := paths.FindRepoRoot(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository root: %w", err)
	}

	slog.Debug("found repository root", slog.String("path", repoRoot))

	r.repoRoot = repoRoot

	if r.Git == nil {
		r.Git = git.NewClient(repoRoot, git.WithTimeout(r.Timeout))
	}

	return r, nil
}

type ReleaseOpts func(*Release)

// WithPlan overrides the plan loaded from the release root.
func WithPlan(p *plan.Plan) ReleaseOpts {
	return func(r *Release) {
		r.Plan = p
	}
}

// WithConfirm sets the dirty-tree confirmation callback. Without one, a dirty
// tree always aborts.
func WithConfirm(f ConfirmFunc) ReleaseOpts {
	return func(r *Release) {
		r.confirm = f
	}
}

func WithTimeout(timeout time.Duration) ReleaseOpts {
	return func(r *Release) {
		r.Timeout = timeout
	}
}

// Subscribe registers a callback receiving progress events.
func (r *Release) Subscribe(f func(any)) {
	r.subs = append(r.subs, f)
}

func (r *Release) broadcastEvent(evt any) {
	for _, sub := range r.subs {
		sub(evt)
	}
}
