package target

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

func (t Target) extractJSON(content []byte) (string, error) {
	if !gjson.ValidBytes(content) {
		return "", fmt.Errorf("%w: %s: invalid JSON", relerrors.ErrMarkerNotFound, t.Path)
	}

	res := gjson.GetBytes(content, t.Key)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s: no field at %q", relerrors.ErrMarkerNotFound, t.Path, t.Key)
	}

	if res.Type != gjson.String {
		return "", fmt.Errorf("%w: %s: field %q is not a string", relerrors.ErrMarkerNotFound, t.Path, t.Key)
	}

	return res.String(), nil
}

func (t Target) applyJSON(content []byte, newVersion string) ([]byte, error) {
	// Extract first so a missing field fails loudly instead of sjson creating
	// a new one in a file that has drifted.
	if _, err := t.extractJSON(content); err != nil {
		return nil, err
	}

	out, err := sjson.SetBytes(content, t.Key, newVersion)
	if err != nil {
		return nil, fmt.Errorf("%s: set %q: %w", t.Path, t.Key, err)
	}

	return out, nil
}
