package relver

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

// strictRe anchors the exact three-integer grammar. [semver.StrictNewVersion]
// alone would admit pre-release and build metadata suffixes.
var strictRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ParseStrict parses a version string in strict MAJOR.MINOR.PATCH form.
// No normalization is performed; the input must match the grammar exactly.
func ParseStrict(s string) (*semver.Version, error) {
	if !strictRe.MatchString(s) {
		return nil, fmt.Errorf("%w: %q must match MAJOR.MINOR.PATCH", relerrors.ErrInvalidVersion, s)
	}

	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", relerrors.ErrInvalidVersion, s, err)
	}

	return v, nil
}

// Transition describes a version change for a single component.
type Transition struct {
	Component string
	Old       string
	New       string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s: %s -> %s", t.Component, t.Old, t.New)
}
