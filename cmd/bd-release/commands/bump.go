package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Ceesaxp/beads/pkg/plan"
	"github.com/Ceesaxp/beads/pkg/relcmd"
	"github.com/Ceesaxp/beads/pkg/reltui"
)

const (
	bumpDesc = `This command synchronizes the project version across all tracked files
`
	bumpExample = `  bd-release bump <version> [flags]

  # Bump the version across all tracked files
  bd-release bump 0.9.3

  # Bump and create the version bump commit
  bd-release bump 0.9.3 --commit

  # Bump a checkout outside the current directory
  bd-release bump 0.9.3 --path ~/src/beads
`
)

var ErrBumpFailed = errors.New("bump failed")

// NewBumpCmd returns the bump command.
func NewBumpCmd(rootArgs *RootArgs) *cobra.Command {
	commit := new(bool)
	yes := new(bool)
	quiet := new(bool)
	path := new(string)
	config := new(string)
	timeout := new(time.Duration)

	cmd := &cobra.Command{
		Use:          "bump <version>",
		Short:        "Synchronize the project version across tracked files",
		Long:         bumpDesc,
		Example:      bumpExample,
		// SilenceUsage suppresses the usage block on runtime errors, so
		// argument mistakes print it here instead.
		Args: func(cmd *cobra.Command, argv []string) error {
			if err := cobra.ExactArgs(1)(cmd, argv); err != nil {
				return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
			}

			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, argv []string) error {
			targetVersion := argv[0]

			opts := []relcmd.ReleaseOpts{
				relcmd.WithTimeout(*timeout),
			}

			if *config != "" {
				p, err := plan.LoadFile(*config)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrBumpFailed, err)
				}

				opts = append(opts, relcmd.WithPlan(p))
			}

			switch {
			case *yes:
				opts = append(opts, relcmd.WithConfirm(func([]string) (bool, error) {
					return true, nil
				}))
			case isatty.IsTerminal(os.Stdin.Fd()):
				opts = append(opts, relcmd.WithConfirm(confirmDirtyTree(cmd)))
			}

			r, err := relcmd.New(*path, opts...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBumpFailed, err)
			}

			if *quiet || !isatty.IsTerminal(os.Stdout.Fd()) {
				report, err := r.Bump(cmd.Context(), targetVersion, *commit)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrBumpFailed, err)
				}

				printReport(cmd, report)

				return nil
			}

			bt, err := reltui.NewBumpTUI(cmd.OutOrStdout(), rootArgs.GetLogLevel(), r)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBumpFailed, err)
			}

			if _, err := bt.Bump(cmd.Context(), targetVersion, *commit); err != nil {
				return fmt.Errorf("%w: %w", ErrBumpFailed, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(commit, "commit", "c", false, "Create the version bump commit")
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Assume yes for the dirty working tree prompt")
	cmd.Flags().BoolVarP(quiet, "quiet", "q", false, "Run in quiet mode")
	cmd.Flags().StringVarP(path, "path", "p", ".", "Release root (defaults to the current directory)")
	cmd.Flags().StringVar(config, "config", "", "Release plan file (defaults to release.yaml at the release root)")
	cmd.Flags().DurationVar(timeout, "timeout", 1*time.Minute, "Timeout for git operations")

	if err := cmd.MarkFlagDirname("path"); err != nil {
		panic(err)
	}

	if err := cmd.MarkFlagFilename("config", "yaml", "yml"); err != nil {
		panic(err)
	}

	return cmd
}

// confirmDirtyTree prompts the operator before proceeding with a dirty
// working tree. Anything but an explicit yes declines.
func confirmDirtyTree(cmd *cobra.Command) relcmd.ConfirmFunc {
	return func(dirtyFiles []string) (bool, error) {
		fmt.Fprintf(cmd.OutOrStdout(),
			"Working tree has %d uncommitted change(s). Continue anyway? [y/N] ", len(dirtyFiles))

		reader := bufio.NewReader(cmd.InOrStdin())

		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

func printReport(cmd *cobra.Command, report *relcmd.Report) {
	out := cmd.OutOrStdout()

	for _, fv := range report.Files {
		fmt.Fprintf(out, "%s %s\n", fv.Path, fv.Version)
	}

	fmt.Fprintf(out, "Synchronized %d file(s): %s -> %s\n",
		len(report.Files), report.Transition.Old, report.Transition.New)

	if report.Committed {
		fmt.Fprintln(out, "Commit created.")
	}
}
