package relcmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Ceesaxp/beads/pkg/relerrors"
	"github.com/Ceesaxp/beads/pkg/relver"
	"github.com/Ceesaxp/beads/pkg/target"
)

// FileVersion is one entry of the post-write consistency report.
type FileVersion struct {
	Path    string
	Version string
	OK      bool
}

// Report summarizes a completed bump.
type Report struct {
	Transition    relver.Transition
	CommitMessage string
	Files         []FileVersion
	Committed     bool
}

// stagedFile is a fully prepared, not yet written rewrite.
type stagedFile struct {
	tgt     target.Target
	content []byte
	oldVer  string
}

// Bump synchronizes every tracked file to targetVersion. When commit is true
// the tracked files are committed afterwards, provided the working tree was
// clean beforehand.
func (r *Release) Bump(ctx context.Context, targetVersion string, commit bool) (*Report, error) {
	report, err := r.bump(ctx, targetVersion, commit)

	r.broadcastEvent(EventDone{Err: err})

	return report, err
}

func (r *Release) bump(ctx context.Context, targetVersion string, commit bool) (*Report, error) {
	newVer, err := relver.ParseStrict(targetVersion)
	if err != nil {
		return nil, err
	}

	logger := slog.With(
		slog.String("cmd", "bump"),
		slog.String("target_version", newVer.String()),
	)

	current, err := r.currentVersion()
	if err != nil {
		return nil, err
	}

	logger.Info("read current version",
		slog.String("current_version", current),
		slog.String("path", r.Plan.Canonical().Path),
	)

	if err := r.preflight(ctx, commit); err != nil {
		return nil, err
	}

	r.broadcastEvent(EventSetFileTotal(len(r.Plan.Targets)))

	staged, err := r.stage(current, newVer.String())
	if err != nil {
		return nil, err
	}

	if err := r.write(staged); err != nil {
		return nil, err
	}

	report := &Report{
		Transition: relver.Transition{Component: "beads", Old: current, New: newVer.String()},
	}

	if err := r.verify(staged, newVer.String(), report); err != nil {
		return report, err
	}

	if commit {
		if err := r.commit(ctx, staged, newVer.String(), report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// currentVersion extracts the version recorded in the canonical source file.
func (r *Release) currentVersion() (string, error) {
	canonical := r.Plan.Canonical()

	content, err := r.readTarget(canonical)
	if err != nil {
		return "", err
	}

	current, err := canonical.Extract(content)
	if err != nil {
		return "", err
	}

	if _, err := relver.ParseStrict(current); err != nil {
		return "", fmt.Errorf("canonical version in %s: %w", canonical.Path, err)
	}

	return current, nil
}

// preflight inspects the working tree before any mutation. A dirty tree
// aborts when auto-commit was requested, and otherwise defers to the
// confirmation callback.
func (r *Release) preflight(ctx context.Context, commit bool) error {
	dirtyFiles, err := r.Git.DirtyFiles(ctx)
	if err != nil {
		return err
	}

	if len(dirtyFiles) == 0 {
		return nil
	}

	if commit {
		return fmt.Errorf("%w: refusing to mix %d uncommitted change(s) into the version bump commit",
			relerrors.ErrDirtyWorkTree, len(dirtyFiles))
	}

	if r.confirm == nil {
		return fmt.Errorf("%w: %w", relerrors.ErrAborted, relerrors.ErrDirtyWorkTree)
	}

	ok, err := r.confirm(dirtyFiles)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: declined by operator", relerrors.ErrAborted)
	}

	return nil
}

// stage prepares every rewrite in memory and verifies the staged contents.
// Nothing reaches disk until every tracked file has staged cleanly.
func (r *Release) stage(current, newVersion string) ([]stagedFile, error) {
	var merr error

	staged := make([]stagedFile, 0, len(r.Plan.Targets))

	for _, tgt := range r.Plan.Targets {
		r.broadcastEvent(EventRewritingFile(tgt.Path))

		sf, err := r.stageOne(tgt, current, newVersion)
		if err != nil {
			merr = multierror.Append(merr, err)
			r.broadcastEvent(EventRewroteFile{Path: tgt.Path, Err: err})

			continue
		}

		staged = append(staged, sf)
	}

	if merr != nil {
		return nil, fmt.Errorf("staging failed, no files were modified: %w", merr)
	}

	return staged, nil
}

func (r *Release) stageOne(tgt target.Target, current, newVersion string) (stagedFile, error) {
	logger := slog.With(
		slog.String("component", tgt.SnakeName()),
		slog.String("path", tgt.Path),
	)

	content, err := r.readTarget(tgt)
	if err != nil {
		return stagedFile{}, err
	}

	oldVer, err := tgt.Extract(content)
	if err != nil {
		return stagedFile{}, err
	}

	// A file already on the target version is fine (idempotent re-run), but
	// any other drift from the canonical version is surfaced instead of
	// being silently overwritten.
	if oldVer != current && oldVer != newVersion {
		return stagedFile{}, fmt.Errorf("%w: %s records %q, expected %q",
			relerrors.ErrVersionMismatch, tgt.Path, oldVer, current)
	}

	newContent, err := tgt.Apply(content, newVersion)
	if err != nil {
		return stagedFile{}, err
	}

	got, err := tgt.Extract(newContent)
	if err != nil {
		return stagedFile{}, fmt.Errorf("staged content for %s: %w", tgt.Path, err)
	}

	if got != newVersion {
		return stagedFile{}, fmt.Errorf("%w: staged %s records %q, expected %q",
			relerrors.ErrVersionMismatch, tgt.Path, got, newVersion)
	}

	logger.Debug("staged rewrite",
		slog.String("old_version", oldVer),
		slog.String("new_version", newVersion),
	)

	return stagedFile{tgt: tgt, content: newContent, oldVer: oldVer}, nil
}

// write flushes staged contents to disk. Each file is written to a temporary
// sibling and renamed into place.
func (r *Release) write(staged []stagedFile) error {
	for _, sf := range staged {
		if err := r.writeTarget(sf.tgt, sf.content); err != nil {
			r.broadcastEvent(EventRewroteFile{Path: sf.tgt.Path, Err: err})

			return err
		}
	}

	return nil
}

// verify re-reads every tracked file from disk and confirms the recorded
// versions are mutually consistent at the target version.
func (r *Release) verify(staged []stagedFile, newVersion string, report *Report) error {
	var merr error

	for _, sf := range staged {
		fv := FileVersion{Path: sf.tgt.Path}

		content, err := r.readTarget(sf.tgt)
		if err == nil {
			fv.Version, err = sf.tgt.Extract(content)
		}

		switch {
		case err != nil:
			merr = multierror.Append(merr, err)
		case fv.Version != newVersion:
			merr = multierror.Append(merr, fmt.Errorf("%w: %s records %q, expected %q",
				relerrors.ErrVersionMismatch, sf.tgt.Path, fv.Version, newVersion))
		default:
			fv.OK = true
		}

		report.Files = append(report.Files, fv)
		r.broadcastEvent(EventRewroteFile{Path: sf.tgt.Path, Err: errOrNil(merr, fv.OK)})
	}

	if merr != nil {
		return fmt.Errorf("verification failed: %w", merr)
	}

	return nil
}

func errOrNil(merr error, ok bool) error {
	if ok {
		return nil
	}

	if merr == nil {
		return errors.New("verification failed")
	}

	var m *multierror.Error
	if errors.As(merr, &m) && len(m.Errors) > 0 {
		return m.Errors[len(m.Errors)-1]
	}

	return merr
}

// commit stages exactly the tracked files and creates the version bump
// commit.
func (r *Release) commit(ctx context.Context, staged []stagedFile, newVersion string, report *Report) error {
	relPaths := make([]string, 0, len(staged))

	for _, sf := range staged {
		rel, err := filepath.Rel(r.repoRoot, filepath.Join(r.Root, sf.tgt.Path))
		if err != nil {
			return fmt.Errorf("failed to resolve %s against repository root: %w", sf.tgt.Path, err)
		}

		relPaths = append(relPaths, rel)
	}

	if err := r.Git.Add(ctx, relPaths...); err != nil {
		return err
	}

	message := r.commitMessage(staged, newVersion)

	if err := r.Git.Commit(ctx, message); err != nil {
		return err
	}

	report.Committed = true
	report.CommitMessage = message

	r.broadcastEvent(EventCommitted{Message: message})

	return nil
}

// commitMessage renders the multi-line commit message enumerating the
// component-level version transitions.
func (r *Release) commitMessage(staged []stagedFile, newVersion string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "chore(%s): bump version to %s\n", r.Plan.CommitScope, newVersion)

	for _, sf := range staged {
		tr := relver.Transition{Component: sf.tgt.Name, Old: sf.oldVer, New: newVersion}
		fmt.Fprintf(&b, "\n- %s", tr)
	}

	return b.String()
}

func (r *Release) readTarget(tgt target.Target) ([]byte, error) {
	path := filepath.Join(r.Root, tgt.Path)

	content, err := os.ReadFile(path) //nolint:gosec // Paths come from the validated plan.
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", relerrors.ErrReadFile, tgt.Path, err)
	}

	return content, nil
}

// writeTarget writes content to a temporary sibling of the target and renames
// it into place, preserving the original file mode.
func (r *Release) writeTarget(tgt target.Target, content []byte) error {
	path := filepath.Join(r.Root, tgt.Path)

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w %q: %w", relerrors.ErrWriteFile, tgt.Path, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(tmpName, mode)
	}

	if err == nil {
		err = os.Rename(tmpName, path)
	}

	if err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best-effort cleanup.

		return fmt.Errorf("%w %q: %w", relerrors.ErrWriteFile, tgt.Path, err)
	}

	return nil
}
