package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Ceesaxp/beads/pkg/relerrors"
	"github.com/Ceesaxp/beads/pkg/target"
)

// DefaultConfigFile is the plan override looked up at the release root.
const DefaultConfigFile = "release.yaml"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Plan is the full synchronization plan. The first entry in Targets is the
// canonical source of truth from which the current version is read.
type Plan struct {
	// CommitScope is the conventional-commit scope used in generated commit
	// messages.
	CommitScope string `json:"commitScope,omitempty" jsonschema:"description=Scope for the generated commit message" yaml:"commitScope,omitempty"`
	// Targets are the tracked files, in rewrite order.
	Targets []target.Target `json:"targets" jsonschema:"required,description=Tracked files in rewrite order" validate:"required,min=1,dive" yaml:"targets"`
}

// Canonical returns the canonical source-of-truth target.
func (p *Plan) Canonical() target.Target {
	return p.Targets[0]
}

// Paths returns the tracked file paths in plan order.
func (p *Plan) Paths() []string {
	paths := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		paths = append(paths, t.Path)
	}

	return paths
}

// Validate checks the plan's shape, including per-target locator rules.
func (p *Plan) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", relerrors.ErrInvalidPlan, err)
	}

	seen := make(map[string]struct{}, len(p.Targets))

	for _, t := range p.Targets {
		if err := t.Validate(); err != nil {
			return err
		}

		if _, dup := seen[t.Path]; dup {
			return fmt.Errorf("%w: duplicate target path %q", relerrors.ErrInvalidPlan, t.Path)
		}

		seen[t.Path] = struct{}{}
	}

	if k := p.Canonical().Kind; k != target.KindSource {
		return fmt.Errorf("%w: canonical target must be a source file, got kind %q", relerrors.ErrInvalidPlan, k)
	}

	return nil
}

// Default returns the built-in plan for the beads repository layout.
func Default() *Plan {
	return &Plan{
		CommitScope: "release",
		Targets: []target.Target{
			{
				Name:    "beads-mcp",
				Path:    "beads_mcp/__init__.py",
				Kind:    target.KindSource,
				Pattern: `__version__ = "([^"]+)"`,
			},
			{
				Name: "plugin",
				Path: ".claude-plugin/plugin.json",
				Kind: target.KindJSON,
				Key:  "version",
			},
			{
				Name: "marketplace",
				Path: ".claude-plugin/marketplace.json",
				Kind: target.KindJSON,
				Key:  "plugins.0.version",
			},
			{
				Name: "packaging",
				Path: "pyproject.toml",
				Kind: target.KindTOML,
				Key:  "project.version",
			},
			{
				Name:    "readme",
				Path:    "README.md",
				Kind:    target.KindMarkdown,
				Pattern: `\*\*Status\*\*: Beta \(v([0-9]+\.[0-9]+\.[0-9]+)\)`,
			},
			{
				Name:    "plugin-docs",
				Path:    "docs/PLUGIN.md",
				Kind:    target.KindMarkdown,
				Pattern: `Compatible with beads v([0-9]+\.[0-9]+\.[0-9]+)`,
			},
		},
	}
}

// Load returns the plan for the given release root. If a release.yaml
// override exists at the root it is parsed and validated, otherwise the
// built-in default plan is returned.
func Load(root string) (*Plan, error) {
	configPath := filepath.Join(root, DefaultConfigFile)

	data, err := os.ReadFile(configPath) //nolint:gosec // Path is rooted at the release root.
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", relerrors.ErrReadFile, configPath, err)
	}

	return Parse(data)
}

// LoadFile parses the plan at path. Unlike [Load], a missing file is an
// error here, since the path was given explicitly.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is operator-provided.
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", relerrors.ErrReadFile, path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a plan document.
func Parse(data []byte) (*Plan, error) {
	p := &Plan{}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", relerrors.ErrInvalidPlan, err)
	}

	if p.CommitScope == "" {
		p.CommitScope = "release"
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
