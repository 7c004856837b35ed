// Package differ compares registry snapshots and renders line diffs.
//
// Dry-run synchronization uses it to show what a write would change
// without touching the registry file.
package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// defaultContext is the number of unchanged lines kept around each change.
const defaultContext = 3

// Differ detects changes between registry snapshots.
type Differ interface {
	// Lines compares two snapshots line by line.
	Lines(existing, updated string) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	context int
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		context: defaultContext,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Lines compares two snapshots line by line.
func (d *differ) Lines(existing, updated string) *Changeset {
	changeset := &Changeset{context: d.context}
	if existing == updated {
		return changeset
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(existing, updated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, diff := range diffs {
		kind := Unchanged
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		case diffmatchpatch.DiffEqual:
		}
		for _, text := range splitLines(diff.Text) {
			changeset.append(Line{Kind: kind, Text: text})
		}
	}

	return changeset
}

// splitLines splits a diff block into lines. A block of "\n" is one empty
// line, not zero lines.
func splitLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(block, "\n"), "\n")
}
