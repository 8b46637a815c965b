package target_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ceesaxp/beads/pkg/relerrors"
	"github.com/Ceesaxp/beads/pkg/target"
)

const (
	sourceContent = `"""Beads MCP server."""

__version__ = "0.9.2"

from .server import main
`

	pluginContent = `{
  "name": "beads",
  "version": "0.9.2",
  "description": "Issue tracking for coding agents"
}
`

	marketplaceContent = `{
  "name": "beads-marketplace",
  "plugins": [
    {
      "name": "beads",
      "source": "./",
      "version": "0.9.2"
    }
  ]
}
`

	pyprojectContent = `[build-system]
requires = ["hatchling"]

[project]
name = "beads-mcp"
version = "0.9.2"
description = "MCP server for beads"

[tool.hatch.build]
packages = ["beads_mcp"]
`

	readmeContent = `# beads

**Status**: Beta (v0.9.2) - ready for early adopters.

Issue tracking that lives in your repo.
`
)

func sourceTarget() target.Target {
	return target.Target{
		Name:    "beads-mcp",
		Path:    "beads_mcp/__init__.py",
		Kind:    target.KindSource,
		Pattern: `__version__ = "([^"]+)"`,
	}
}

func TestTarget_SnakeName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "beads_mcp", sourceTarget().SnakeName())
}

func TestTarget_Source(t *testing.T) {
	t.Parallel()

	tgt := sourceTarget()

	got, err := tgt.Extract([]byte(sourceContent))
	require.NoError(t, err)
	require.Equal(t, "0.9.2", got)

	out, err := tgt.Apply([]byte(sourceContent), "0.9.3")
	require.NoError(t, err)
	require.Contains(t, string(out), `__version__ = "0.9.3"`)
	require.NotContains(t, string(out), "0.9.2")

	got, err = tgt.Extract(out)
	require.NoError(t, err)
	require.Equal(t, "0.9.3", got)
}

func TestTarget_Source_MissingMarker(t *testing.T) {
	t.Parallel()

	tgt := sourceTarget()

	_, err := tgt.Extract([]byte("# nothing here\n"))
	require.ErrorIs(t, err, relerrors.ErrMarkerNotFound)

	_, err = tgt.Apply([]byte("# nothing here\n"), "0.9.3")
	require.ErrorIs(t, err, relerrors.ErrMarkerNotFound)
}

func TestTarget_JSON(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		key     string
	}{
		"plugin":      {content: pluginContent, key: "version"},
		"marketplace": {content: marketplaceContent, key: "plugins.0.version"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tgt := target.Target{Name: name, Path: name + ".json", Kind: target.KindJSON, Key: tc.key}

			got, err := tgt.Extract([]byte(tc.content))
			require.NoError(t, err)
			require.Equal(t, "0.9.2", got)

			out, err := tgt.Apply([]byte(tc.content), "0.9.3")
			require.NoError(t, err)

			got, err = tgt.Extract(out)
			require.NoError(t, err)
			require.Equal(t, "0.9.3", got)

			// Surgical edit, so the rest of the document is untouched.
			require.Contains(t, string(out), `"name": "beads"`)
		})
	}
}

func TestTarget_JSON_MissingField(t *testing.T) {
	t.Parallel()

	tgt := target.Target{Name: "plugin", Path: "plugin.json", Kind: target.KindJSON, Key: "version"}

	_, err := tgt.Apply([]byte(`{"name": "beads"}`), "0.9.3")
	require.ErrorIs(t, err, relerrors.ErrMarkerNotFound)

	_, err = tgt.Extract([]byte(`not json`))
	require.ErrorIs(t, err, relerrors.ErrMarkerNotFound)
}

func TestTarget_TOML(t *testing.T) {
	t.Parallel()

	tgt := target.Target{Name: "packaging", Path: "pyproject.toml", Kind: target.KindTOML, Key: "project.version"}

	got, err := tgt.Extract([]byte(pyprojectContent))
	require.NoError(t, err)
	require.Equal(t, "0.9.2", got)

	out, err := tgt.Apply([]byte(pyprojectContent), "0.9.3")
	require.NoError(t, err)
	require.Contains(t, string(out), `version = "0.9.3"`)

	// Comments and unrelated tables are preserved byte-for-byte.
	require.Contains(t, string(out), `requires = ["hatchling"]`)
	require.Contains(t, string(out), `packages = ["beads_mcp"]`)

	got, err = tgt.Extract(out)
	require.NoError(t, err)
	require.Equal(t, "0.9.3", got)
}

func TestTarget_TOML_MissingField(t *testing.T) {
	t.Parallel()

	tgt := target.Target{Name: "packaging", Path: "pyproject.toml", Kind: target.KindTOML, Key: "project.missing"}

	_, err := tgt.Extract([]byte(pyprojectContent))
	require.ErrorIs(t, err, relerrors.ErrMarkerNotFound)
}

func TestTarget_Markdown(t *testing.T) {
	t.Parallel()

	tgt := target.Target{
		Name:    "readme",
		Path:    "README.md",
		Kind:    target.KindMarkdown,
		Pattern: `\*\*Status\*\*: Beta \(v([0-9.]+)\)`,
	}

	got, err := tgt.Extract([]byte(readmeContent))
	require.NoError(t, err)
	require.Equal(t, "0.9.2", got)

	out, err := tgt.Apply([]byte(readmeContent), "0.9.3")
	require.NoError(t, err)
	require.Contains(t, string(out), "Beta (v0.9.3)")
}

func TestTarget_Apply_Idempotent(t *testing.T) {
	t.Parallel()

	tgt := sourceTarget()

	out, err := tgt.Apply([]byte(sourceContent), "0.9.2")
	require.NoError(t, err)
	require.Equal(t, sourceContent, string(out))
}

func TestTarget_PatternValidation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pattern string
	}{
		"no_groups":  {pattern: `__version__`},
		"two_groups": {pattern: `(__version__) = "([^"]+)"`},
		"bad_regexp": {pattern: `([`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tgt := target.Target{Name: "x", Path: "x.py", Kind: target.KindSource, Pattern: tc.pattern}

			_, err := tgt.Extract([]byte(sourceContent))
			require.ErrorIs(t, err, relerrors.ErrInvalidPlan)
		})
	}
}

func TestTarget_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tgt     target.Target
		wantErr bool
	}{
		"source_ok":        {tgt: sourceTarget()},
		"json_ok":          {tgt: target.Target{Name: "p", Path: "p.json", Kind: target.KindJSON, Key: "version"}},
		"source_no_marker": {tgt: target.Target{Name: "p", Path: "p.py", Kind: target.KindSource}, wantErr: true},
		"json_no_key":      {tgt: target.Target{Name: "p", Path: "p.json", Kind: target.KindJSON}, wantErr: true},
		"unknown_kind":     {tgt: target.Target{Name: "p", Path: "p", Kind: "ini"}, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.tgt.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, relerrors.ErrInvalidPlan)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTarget_UnknownKind(t *testing.T) {
	t.Parallel()

	tgt := target.Target{Name: "x", Path: "x", Kind: target.Kind("ini")}

	_, err := tgt.Extract(nil)
	require.ErrorIs(t, err, relerrors.ErrInvalidPlan)

	_, err = tgt.Apply(nil, "1.0.0")
	require.ErrorIs(t, err, relerrors.ErrInvalidPlan)
}
