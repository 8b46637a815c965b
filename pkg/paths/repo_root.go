package paths

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

// ErrNotRepoRoot indicates a path is not inside a git repository.
var ErrNotRepoRoot = errors.New("not inside a git repository")

// FindRepoRoot returns the closest (innermost) git repository root for the
// provided path by searching bottom-up from path toward /. This matches the
// behavior of git rev-parse --show-toplevel, correctly resolving worktrees
// nested inside a parent repository. If no git repository is found, it will
// return an error.
func FindRepoRoot(path string) (string, error) {
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	currentDir := pathAbs
	for {
		ok, err := hasGitHead(currentDir)
		if err == nil && ok {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrNotRepoRoot, pathAbs)
}

// hasGitHead reports whether dir contains a `.git` directory (or worktree
// `.git` file) with a HEAD file.
func hasGitHead(dir string) (bool, error) {
	dotGit := filepath.Join(dir, ".git")

	fi, err := os.Lstat(dotGit)
	if err != nil {
		return false, fmt.Errorf("%s: %w", dotGit, err)
	}

	var headPath string

	switch {
	case fi.IsDir():
		headPath = filepath.Join(dotGit, "HEAD")
	default:
		gitDir, gitFileErr := resolveGitFile(dotGit, dir)
		if gitFileErr != nil {
			return false, nil //nolint:nilerr // Intentionally skip malformed .git files.
		}

		headPath = filepath.Join(gitDir, "HEAD")
	}

	fi, err = os.Lstat(headPath)
	if err != nil {
		return false, fmt.Errorf("%s: %w", headPath, err)
	}

	return !fi.IsDir(), nil
}

// resolveGitFile reads a `.git` file (as used in git worktrees) and resolves
// the gitdir path it points to. The file is expected to contain a single line
// in the format `gitdir: <path>`. Relative paths are resolved against baseDir.
func resolveGitFile(dotGitPath, baseDir string) (string, error) {
	f, err := os.Open(dotGitPath) //nolint:gosec // dotGitPath is constructed from filepath.Join, not user input.
	if err != nil {
		return "", fmt.Errorf("open git file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best-effort close.

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", errors.New("empty git file")
	}

	line := strings.TrimSpace(scanner.Text())

	gitDir, found := strings.CutPrefix(line, "gitdir: ")
	if !found {
		return "", errors.New("missing gitdir prefix")
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(baseDir, gitDir)
	}

	return filepath.Clean(gitDir), nil
}

// EnsureReleaseRoot verifies that root contains the given canonical file,
// i.e. that the synchronizer is pointed at the top of a beads checkout.
func EnsureReleaseRoot(root, canonicalFile string) error {
	checkPath := filepath.Join(root, canonicalFile)

	fi, err := os.Lstat(checkPath)
	if err != nil {
		return fmt.Errorf("%w: %s (is %q a beads checkout?)", relerrors.ErrFileNotFound, checkPath, root)
	}

	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", relerrors.ErrFileNotFound, checkPath)
	}

	return nil
}
