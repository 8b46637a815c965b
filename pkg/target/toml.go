package target

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

func (t Target) extractTOML(content []byte) (string, error) {
	var doc map[string]any

	if err := toml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: %s: invalid TOML: %w", relerrors.ErrMarkerNotFound, t.Path, err)
	}

	var cur any = doc

	for _, part := range strings.Split(t.Key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s: no table at %q", relerrors.ErrMarkerNotFound, t.Path, t.Key)
		}

		cur, ok = m[part]
		if !ok {
			return "", fmt.Errorf("%w: %s: no field at %q", relerrors.ErrMarkerNotFound, t.Path, t.Key)
		}
	}

	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: field %q is not a string", relerrors.ErrMarkerNotFound, t.Path, t.Key)
	}

	return s, nil
}

// applyTOML rewrites the quoted assignment in place rather than re-encoding
// the document, so comments and layout in the rest of the file survive. The
// edit is bounded to the table that owns the key, then re-checked with a
// structural decode by the caller's verification pass.
func (t Target) applyTOML(content []byte, newVersion string) ([]byte, error) {
	if _, err := t.extractTOML(content); err != nil {
		return nil, err
	}

	table, key := splitTOMLKey(t.Key)

	start, end, err := tomlTableBounds(content, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", relerrors.ErrMarkerNotFound, t.Path, err)
	}

	assignRe := regexp.MustCompile(`(?m)^(\s*` + regexp.QuoteMeta(key) + `\s*=\s*")([^"]*)(")`)

	section := content[start:end]

	idx := assignRe.FindSubmatchIndex(section)
	if idx == nil {
		return nil, fmt.Errorf("%w: %s: no assignment for %q in table %q",
			relerrors.ErrMarkerNotFound, t.Path, key, table)
	}

	groupStart, groupEnd := start+idx[4], start+idx[5]

	out := make([]byte, 0, len(content)+len(newVersion))
	out = append(out, content[:groupStart]...)
	out = append(out, newVersion...)
	out = append(out, content[groupEnd:]...)

	return out, nil
}

func splitTOMLKey(key string) (table, last string) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return "", key
	}

	return key[:i], key[i+1:]
}

// tomlTableBounds returns the byte range of the named table in content.
// An empty table name addresses the implicit top-level table, which runs from
// the start of the document to the first table header.
func tomlTableBounds(content []byte, table string) (start, end int, err error) {
	headerRe := regexp.MustCompile(`(?m)^\s*\[[^\[\]]+\]\s*$`)

	if table == "" {
		loc := headerRe.FindIndex(content)
		if loc == nil {
			return 0, len(content), nil
		}

		return 0, loc[0], nil
	}

	wantRe := regexp.MustCompile(`(?m)^\s*\[\s*` + regexp.QuoteMeta(table) + `\s*\]\s*$`)

	loc := wantRe.FindIndex(content)
	if loc == nil {
		return 0, 0, fmt.Errorf("no table header [%s]", table)
	}

	rest := content[loc[1]:]

	next := headerRe.FindIndex(rest)
	if next == nil {
		return loc[1], len(content), nil
	}

	return loc[1], loc[1] + next[0], nil
}
