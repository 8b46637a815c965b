package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeBd(t *testing.T, output string) string {
	t.Helper()

	dir := t.TempDir()
	bin := filepath.Join(dir, "bd")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o700)) //nolint:gosec // Test stub must be executable.

	return bin
}

func TestStatsCmd(t *testing.T) {
	bin := writeFakeBd(t, `{
  "total": 12,
  "by_status": {"open": 4, "in_progress": 2, "closed": 6},
  "by_priority": {"1": 12},
  "by_type": {"bug": 12},
  "recently_updated": []
}`)

	stdout, stderr, err := execRoot(t, "stats", "--bin", bin)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "Project statistics")
	assert.Contains(t, stdout.String(), "50%")
}

func TestStatsCmd_BinaryMissing(t *testing.T) {
	_, _, err := execRoot(t, "stats", "--bin", "/nonexistent/bd")
	require.Error(t, err)
}
