package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/Ceesaxp/beads/pkg/stats"
)

const (
	statsDesc = `This command presents project statistics retrieved from the bd CLI
`
	statsExample = `  bd-release stats

  # Limit the recently-updated list
  bd-release stats --limit 5

  # Use a specific bd binary
  bd-release stats --bin ./bin/bd
`
)

var ErrStatsFailed = errors.New("stats failed")

// NewStatsCmd returns the stats command.
func NewStatsCmd(_ *RootArgs) *cobra.Command {
	bin := new(string)
	limit := new(int)
	path := new(string)
	timeout := new(time.Duration)

	cmd := &cobra.Command{
		Use:          "stats",
		Short:        "Show project statistics from bd",
		Long:         statsDesc,
		Example:      statsExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)
			}

			c := stats.NewClient(
				stats.WithBin(*bin),
				stats.WithDir(*path),
				stats.WithTimeout(*timeout),
			)

			snapshot, err := c.Snapshot(cmd.Context(), *limit)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStatsFailed, err)
			}

			stats.Render(cmd.OutOrStdout(), snapshot)

			return nil
		},
	}

	cmd.Flags().StringVar(bin, "bin", stats.DefaultBin, "Path to the bd binary")
	cmd.Flags().IntVar(limit, "limit", 10, "Maximum number of recently-updated issues to show")
	cmd.Flags().StringVarP(path, "path", "p", ".", "Directory to run bd in")
	cmd.Flags().DurationVar(timeout, "timeout", 30*time.Second, "Timeout for the bd invocation")

	if err := cmd.MarkFlagDirname("path"); err != nil {
		panic(err)
	}

	return cmd
}
