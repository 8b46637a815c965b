package relver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ceesaxp/beads/pkg/relerrors"
	"github.com/Ceesaxp/beads/pkg/relver"
)

func TestParseStrict(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr bool
	}{
		"simple":           {input: "0.9.3"},
		"multi_digit":      {input: "10.20.30"},
		"zeros":            {input: "0.0.0"},
		"v_prefix":         {input: "v1.2.3", wantErr: true},
		"two_parts":        {input: "1.2", wantErr: true},
		"four_parts":       {input: "1.2.3.4", wantErr: true},
		"pre_release":      {input: "1.2.3-rc.1", wantErr: true},
		"build_metadata":   {input: "1.2.3+build5", wantErr: true},
		"empty":            {input: "", wantErr: true},
		"words":            {input: "latest", wantErr: true},
		"trailing_space":   {input: "1.2.3 ", wantErr: true},
		"embedded_letters": {input: "1.2.x", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := relver.ParseStrict(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, relerrors.ErrInvalidVersion)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.input, v.String())
		})
	}
}

func TestTransitionString(t *testing.T) {
	t.Parallel()

	tr := relver.Transition{Component: "plugin", Old: "0.9.2", New: "0.9.3"}
	require.Equal(t, "plugin: 0.9.2 -> 0.9.3", tr.String())
}
