package stats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ceesaxp/beads/pkg/stats"
)

const snapshotJSON = `{
  "total": 40,
  "by_status": {"open": 25, "in_progress": 3, "blocked": 2, "closed": 10},
  "by_priority": {"0": 1, "1": 9, "2": 30},
  "by_type": {"bug": 12, "feature": 20, "task": 8},
  "recently_updated": [
    {"id": "bd-42", "title": "Fix sync race", "status": "in_progress", "updated_at": "2026-08-20T10:00:00Z"},
    {"id": "bd-41", "title": "Document plugin install", "status": "closed", "updated_at": "2026-08-19T09:00:00Z"}
  ]
}`

// fakeBd writes an executable stub that prints the given JSON.
func fakeBd(t *testing.T, output string) string {
	t.Helper()

	dir := t.TempDir()
	bin := filepath.Join(dir, "bd")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o700)) //nolint:gosec // Test stub must be executable.

	return bin
}

func TestClient_Snapshot(t *testing.T) {
	t.Parallel()

	c := stats.NewClient(stats.WithBin(fakeBd(t, snapshotJSON)))

	s, err := c.Snapshot(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 40, s.Total)
	require.Equal(t, 25, s.ByStatus["open"])
	require.Len(t, s.Recent, 2)
	require.Equal(t, "bd-42", s.Recent[0].ID)
}

func TestClient_Snapshot_BadOutput(t *testing.T) {
	t.Parallel()

	c := stats.NewClient(stats.WithBin(fakeBd(t, "not json")))

	_, err := c.Snapshot(context.Background(), 0)
	require.ErrorContains(t, err, "decode bd stats output")
}

func TestSnapshot_CompletionRate(t *testing.T) {
	t.Parallel()

	s := &stats.Snapshot{Total: 40, ByStatus: map[string]int{"closed": 10}}
	require.InDelta(t, 0.25, s.CompletionRate(), 1e-9)

	empty := &stats.Snapshot{}
	require.Zero(t, empty.CompletionRate())
}

func TestSnapshot_Suggestion(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		snapshot stats.Snapshot
		want     string
	}{
		"blocked_first": {
			snapshot: stats.Snapshot{Total: 10, ByStatus: map[string]int{"blocked": 2, "open": 30}},
			want:     "2 issue(s) are blocked; review their blockers with `bd blocked`",
		},
		"idle_pipeline": {
			snapshot: stats.Snapshot{Total: 10, ByStatus: map[string]int{"open": 5}},
			want:     "nothing is in progress; pick up a ready issue with `bd ready`",
		},
		"large_backlog": {
			snapshot: stats.Snapshot{Total: 30, ByStatus: map[string]int{"open": 25, "in_progress": 1}},
			want:     "25 open issue(s); consider a triage pass over the backlog",
		},
		"healthy": {
			snapshot: stats.Snapshot{Total: 10, ByStatus: map[string]int{"open": 5, "in_progress": 2, "closed": 3}},
			want:     "",
		},
		"empty_project": {
			snapshot: stats.Snapshot{},
			want:     "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, tc.snapshot.Suggestion())
		})
	}
}
