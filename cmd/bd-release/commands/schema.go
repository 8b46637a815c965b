package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ceesaxp/beads/pkg/plan"
)

var ErrSchemaFailed = errors.New("schema generation failed")

// NewSchemaCmd returns the schema command, which prints the JSON Schema for
// release.yaml plan overrides.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Print the JSON Schema for release.yaml",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			data, err := plan.Schema()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSchemaFailed, err)
			}

			cc.Println(string(data))

			return nil
		},
	}
}
