package gazetteer

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/treeline/gazetteer/pkg/errors"
	"github.com/treeline/gazetteer/pkg/gedcom"
)

// Report describes the integrity of a registry file.
type Report struct {
	Records     int  // Top-level records
	Locations   int  // Records carrying a location identifier
	TrailerLast bool // Whether a trailer record closes the registry
	RoundTrip   bool // Whether reserializing reproduces the file byte for byte

	// Parser recovery counters; anything non-zero means the file carries
	// content a rewrite would drop
	SkippedLines int
	Garbage      int
	Orphaned     int
}

// Healthy returns true if the registry parses clean, round-trips, and ends
// with its trailer.
func (r *Report) Healthy() bool {
	return r.TrailerLast && r.RoundTrip &&
		r.SkippedLines == 0 && r.Garbage == 0 && r.Orphaned == 0
}

// Summary returns a human-readable summary of the report.
func (r *Report) Summary() string {
	state := "healthy"
	if !r.Healthy() {
		state = "unhealthy"
	}
	return fmt.Sprintf("%s: %d records, %d locations, trailer last: %t, round-trip: %t, skipped: %d, garbage: %d, orphaned: %d",
		state, r.Records, r.Locations, r.TrailerLast, r.RoundTrip,
		r.SkippedLines, r.Garbage, r.Orphaned)
}

// Check reports registry integrity without modifying it.
func (g *gazetteer) Check(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := os.ReadFile(g.config.registry)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.WrapIO("read", g.config.registry, err)
	}

	tree, err := gedcom.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Records:      len(tree.Records),
		Locations:    len(tree.Index),
		RoundTrip:    bytes.Equal(raw, tree.Marshal()),
		SkippedLines: tree.Stats.Skipped,
		Garbage:      tree.Stats.Garbage,
		Orphaned:     tree.Stats.Orphaned,
	}
	if n := len(tree.Records); n > 0 {
		report.TrailerLast = tree.Records[n-1].Tag == gedcom.TagTrailer
	}

	return report, nil
}
