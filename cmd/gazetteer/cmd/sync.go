package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeline/gazetteer"
)

// syncFlags holds the sync command's flag values.
type syncFlags struct {
	DryRun bool
	Output string
}

// NewSyncCommand creates the sync command with app dependencies.
func NewSyncCommand(app Application) *cobra.Command {
	var flags *syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the registry with the place sources",
		Long: `Sync reads the location registry and the YAML place sources, merges
every place into its registry record, creates records for places that
have none, and writes the updated registry back to disk.

Records keep any content the place sources do not describe, and
records without a matching place survive byte-for-byte.`,
		Example: `  gazetteer sync                            # Update locations.ged from data/
  gazetteer sync --dry-run                  # Preview changes as a diff
  gazetteer sync --output /tmp/out.ged      # Write the result elsewhere`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), app, flags)
		},
	}

	flags = addSyncFlags(cmd)

	return cmd
}

// addSyncFlags registers the sync command's flags.
func addSyncFlags(cmd *cobra.Command) *syncFlags {
	flags := &syncFlags{}
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "preview changes without writing the registry")
	cmd.Flags().StringVar(&flags.Output, "output", "", "write the updated registry to this path instead of the registry file")
	return flags
}

// runSync performs the synchronization and reports the result.
func runSync(ctx context.Context, app Application, flags *syncFlags) error {
	g, err := app.Gazetteer()
	if err != nil {
		return err
	}

	var opts []gazetteer.SyncOption
	if flags.DryRun {
		opts = append(opts, gazetteer.WithDryRun(true))
	}
	if flags.Output != "" {
		opts = append(opts, gazetteer.WithOutput(flags.Output))
	}

	app.Logger().Debug().
		Bool("dry_run", flags.DryRun).
		Str("output", flags.Output).
		Msg("Starting sync")

	result, err := g.Sync(ctx, opts...)
	if err != nil {
		return err
	}

	if result.DryRun {
		if result.HasChanges() {
			if err := result.Diff.Render(os.Stdout); err != nil {
				return err
			}
		} else {
			fmt.Println("Registry is up to date - no changes detected")
		}
	}
	fmt.Println(result.Summary())

	return nil
}
