package log_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ceesaxp/beads/pkg/log"
)

func TestCreateHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr bool
	}{
		"text":           {level: "info", format: "text"},
		"logfmt":         {level: "debug", format: "logfmt"},
		"json":           {level: "warn", format: "json"},
		"empty_format":   {level: "info", format: ""},
		"unknown_format": {level: "info", format: "xml", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandler(&buf, tc.level, tc.format)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, h)

			logger := slog.New(h)
			logger.Error("boom")
			require.Contains(t, buf.String(), "boom")
		})
	}
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  slog.Level
	}{
		"debug":   {input: "debug", want: slog.LevelDebug},
		"trace":   {input: "trace", want: slog.LevelDebug},
		"info":    {input: "info", want: slog.LevelInfo},
		"warn":    {input: "warn", want: slog.LevelWarn},
		"warning": {input: "WARNING", want: slog.LevelWarn},
		"error":   {input: "error", want: slog.LevelError},
		"fatal":   {input: "fatal", want: slog.LevelError},
		"default": {input: "verbose", want: slog.LevelInfo},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, log.GetLevel(tc.input))
		})
	}
}
