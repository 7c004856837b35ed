package gazetteer

import (
	"context"
	"os"

	"github.com/treeline/gazetteer/pkg/differ"
	"github.com/treeline/gazetteer/pkg/errors"
	"github.com/treeline/gazetteer/pkg/gedcom"
	"github.com/treeline/gazetteer/pkg/logging"
	"github.com/treeline/gazetteer/pkg/places"
)

// Sync merges the place sources into the registry.
func (g *gazetteer) Sync(ctx context.Context, opts ...SyncOption) (*Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse options
	options := NewSyncOptions(opts...)

	// Step 2: Parse the existing registry; an absent file is an empty tree
	tree, err := gedcom.ParseFile(g.config.registry)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Str("registry", g.config.registry).
		Int("records", len(tree.Records)).
		Int("locations", len(tree.Index)).
		Msg("Registry loaded")

	// Step 3: Aggregate place records from the sources directory
	set, err := places.Load(g.config.sources)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RecordsFound: len(tree.Records),
		PlacesFound:  set.Len(),
		DryRun:       options.DryRun,
	}

	// Step 4: Merge each place into its matching record, synthesizing
	// records for places the registry has never seen
	var created, updated []string
	for _, id := range set.IDs() {
		place, ok := set.Get(id)
		if !ok {
			continue
		}
		if node, ok := tree.Location(id); ok {
			g.merger.Merge(node, place)
			updated = append(updated, id)
			continue
		}
		tree.AddLocation(g.merger.NewRecord(place))
		created = append(created, id)
	}
	result.Updated = len(updated)
	result.Created = len(created)

	// Step 5: The trailer closes the registry again
	tree.RelocateTrailer()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 6: Resolve the destination
	output := options.Output
	if output == "" {
		output = g.config.registry
	}

	// Step 7: Write, or render what a write would change
	if options.DryRun {
		existing, err := os.ReadFile(output)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.WrapIO("read", output, err)
		}
		result.Diff = differ.New().Lines(string(existing), string(tree.Marshal()))
		logging.Info().Bool("dry_run", true).Msg("Dry run completed - no changes applied")
		return result, nil
	}

	if err := tree.WriteFile(output); err != nil {
		return nil, err
	}
	result.Output = output

	logging.Info().
		Int("updated", result.Updated).
		Int("created", result.Created).
		Str("output", output).
		Msg("Sync completed successfully")

	// Step 8: Hooks observe what the write changed
	g.hooks.triggerSync(created, updated)

	return result, nil
}
