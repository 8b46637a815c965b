package target

import (
	"fmt"
	"regexp"

	"github.com/Ceesaxp/beads/pkg/relerrors"
)

func (t Target) compilePattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(t.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad pattern: %w", relerrors.ErrInvalidPlan, t.Path, err)
	}

	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: %s: pattern must have exactly one capture group, got %d",
			relerrors.ErrInvalidPlan, t.Path, re.NumSubexp())
	}

	return re, nil
}

func (t Target) extractPattern(content []byte) (string, error) {
	re, err := t.compilePattern()
	if err != nil {
		return "", err
	}

	m := re.FindSubmatch(content)
	if m == nil {
		return "", fmt.Errorf("%w: %s: no match for %q", relerrors.ErrMarkerNotFound, t.Path, t.Pattern)
	}

	return string(m[1]), nil
}

func (t Target) applyPattern(content []byte, newVersion string) ([]byte, error) {
	re, err := t.compilePattern()
	if err != nil {
		return nil, err
	}

	// Splice the replacement into the capture group of the first match only;
	// a version mentioned elsewhere in the file is out of scope.
	idx := re.FindSubmatchIndex(content)
	if idx == nil {
		return nil, fmt.Errorf("%w: %s: no match for %q", relerrors.ErrMarkerNotFound, t.Path, t.Pattern)
	}

	groupStart, groupEnd := idx[2], idx[3]

	out := make([]byte, 0, len(content)+len(newVersion))
	out = append(out, content[:groupStart]...)
	out = append(out, newVersion...)
	out = append(out, content[groupEnd:]...)

	return out, nil
}
