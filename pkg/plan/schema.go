package plan

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

// Schema returns the JSON Schema for release.yaml documents, for use in
// editor validation and completion.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}

	s := r.Reflect(&Plan{})
	s.Title = "beads release plan"
	s.Description = "Synchronization plan for bd-release bump."

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", relerrors.ErrJSONMarshal, err)
	}

	return data, nil
}
