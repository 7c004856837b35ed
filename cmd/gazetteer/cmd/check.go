package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command with app dependencies.
func NewCheckCommand(app Application) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Inspect registry integrity",
		Long: `Check parses the registry and reports its integrity: record and
location counts, trailer placement, whether the parsed tree would
round-trip byte-for-byte, and anything the parser had to discard.

The command exits non-zero when the registry is not healthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := app.Gazetteer()
			if err != nil {
				return err
			}

			report, err := g.Check(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(report.Summary())

			if !report.Healthy() {
				return fmt.Errorf("registry failed integrity checks")
			}
			return nil
		},
	}
}
