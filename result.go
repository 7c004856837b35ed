package gazetteer

import (
	"fmt"

	"github.com/treeline/gazetteer/pkg/differ"
)

// Result summarizes a synchronization run.
type Result struct {
	RecordsFound int // Top-level records parsed from the registry
	PlacesFound  int // Places aggregated from the sources directory
	Updated      int // Existing location records merged
	Created      int // Location records synthesized

	// Operation metadata
	DryRun bool              // Whether this was a dry run
	Output string            // Path written (empty on dry runs)
	Diff   *differ.Changeset // What a write would change (dry runs only)
}

// HasChanges returns true if the run created records or, on a dry run, if
// the rendered registry text would differ.
func (r *Result) HasChanges() bool {
	if r.DryRun && r.Diff != nil {
		return r.Diff.HasChanges()
	}
	return r.Updated > 0 || r.Created > 0
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	summary := fmt.Sprintf("%d records found, %d places found, %d updated, %d created",
		r.RecordsFound, r.PlacesFound, r.Updated, r.Created)
	if r.DryRun {
		summary += " (dry run)"
	}
	return summary
}
