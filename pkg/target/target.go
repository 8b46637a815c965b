package target

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

// Kind selects the format handler for a tracked file.
type Kind string

const (
	// KindSource is a quoted constant following a textual marker in a source
	// file, e.g. `__version__ = "0.9.2"`.
	KindSource Kind = "source"
	// KindJSON is a string field in a JSON document, addressed by path.
	KindJSON Kind = "json"
	// KindTOML is a quoted assignment in a TOML document, addressed by a
	// dotted table key.
	KindTOML Kind = "toml"
	// KindMarkdown is a version embedded in a fixed phrase in a markdown
	// document, addressed by a pattern with one capture group.
	KindMarkdown Kind = "markdown"
)

// Target is one tracked file in the synchronization plan.
type Target struct {
	// Name is the component name used in events and commit messages.
	Name string `json:"name"    jsonschema:"required,description=Component name"    validate:"required" yaml:"name"`
	// Path is the file path relative to the release root.
	Path string `json:"path"    jsonschema:"required,description=Path relative to the release root" validate:"required" yaml:"path"`
	// Kind selects the format handler.
	Kind Kind `json:"kind"    jsonschema:"required,enum=source,enum=json,enum=toml,enum=markdown" validate:"required,oneof=source json toml markdown" yaml:"kind"`
	// Pattern is a regular expression with exactly one capture group matching
	// the version value. Used by source and markdown targets.
	Pattern string `json:"pattern,omitempty" jsonschema:"description=Regexp with one capture group for the version" yaml:"pattern,omitempty"`
	// Key addresses the version field. Used by json (gjson path) and toml
	// (dotted table key) targets.
	Key string `json:"key,omitempty" jsonschema:"description=Field path for json or toml targets" yaml:"key,omitempty"`
}

// Validate checks the kind-specific locator requirements that struct tags
// cannot express.
func (t Target) Validate() error {
	switch t.Kind {
	case KindSource, KindMarkdown:
		if t.Pattern == "" {
			return fmt.Errorf("%w: %s: %s targets require a pattern", relerrors.ErrInvalidPlan, t.Path, t.Kind)
		}

		if _, err := t.compilePattern(); err != nil {
			return err
		}
	case KindJSON, KindTOML:
		if t.Key == "" {
			return fmt.Errorf("%w: %s: %s targets require a key", relerrors.ErrInvalidPlan, t.Path, t.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown target kind %q", relerrors.ErrInvalidPlan, t.Kind)
	}

	return nil
}

// SnakeName returns the snake_case form of the component name, suitable for
// log attributes and event payloads.
func (t Target) SnakeName() string {
	return strcase.ToSnake(t.Name)
}

// Extract returns the version value recorded in content.
func (t Target) Extract(content []byte) (string, error) {
	switch t.Kind {
	case KindSource, KindMarkdown:
		return t.extractPattern(content)
	case KindJSON:
		return t.extractJSON(content)
	case KindTOML:
		return t.extractTOML(content)
	default:
		return "", fmt.Errorf("%w: unknown target kind %q", relerrors.ErrInvalidPlan, t.Kind)
	}
}

// Apply returns a copy of content with the version field set to newVersion.
// The edit is surgical: everything outside the version value is preserved
// byte-for-byte. Applying the version already present returns content
// unchanged.
func (t Target) Apply(content []byte, newVersion string) ([]byte, error) {
	switch t.Kind {
	case KindSource, KindMarkdown:
		return t.applyPattern(content, newVersion)
	case KindJSON:
		return t.applyJSON(content, newVersion)
	case KindTOML:
		return t.applyTOML(content, newVersion)
	default:
		return nil, fmt.Errorf("%w: unknown target kind %q", relerrors.ErrInvalidPlan, t.Kind)
	}
}
