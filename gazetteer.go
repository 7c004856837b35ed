// Package gazetteer synchronizes a genealogical location registry with
// authoritative place records.
//
// The registry is GEDCOM-style line-oriented hierarchical text
// ("LEVEL [XREF] TAG [VALUE]"); place records live in YAML documents under a
// sources directory. Places are matched against location records by stable
// identifier, merged child by child while preserving foreign content, and
// written back byte-identically wherever no merge touched a subtree.
//
// Example usage:
//
//	g, err := gazetteer.New(
//	    gazetteer.WithRegistry("locations.ged"),
//	    gazetteer.WithSources("data"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := g.Sync(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package gazetteer

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/treeline/gazetteer/pkg/constants"
	"github.com/treeline/gazetteer/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Gazetteer = (*gazetteer)(nil)

// Gazetteer synchronizes a location registry with its place sources.
type Gazetteer interface {
	// Sync merges the place sources into the registry
	Sync(ctx context.Context, opts ...SyncOption) (*Result, error)

	// Check reports registry integrity without modifying it
	Check(ctx context.Context) (*Report, error)

	// OnRecordCreated registers a callback for records synthesized by a sync
	OnRecordCreated(RecordCreatedHook)

	// OnRecordUpdated registers a callback for records merged by a sync
	OnRecordUpdated(RecordUpdatedHook)
}

// gazetteer is the internal implementation of the Gazetteer interface.
type gazetteer struct {
	config *config
	merger *reconcile.Merger
	hooks  *hooks
}

// New creates a Gazetteer instance with the given options.
func New(opts ...Option) (Gazetteer, error) {
	g := &gazetteer{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := g.config.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	g.merger = reconcile.NewMerger(reconcile.WithClock(g.config.clock))

	return g, nil
}

// OnRecordCreated registers a callback for records synthesized by a sync.
func (g *gazetteer) OnRecordCreated(fn RecordCreatedHook) {
	g.hooks.onRecordCreated(fn)
}

// OnRecordUpdated registers a callback for records merged by a sync.
func (g *gazetteer) OnRecordUpdated(fn RecordUpdatedHook) {
	g.hooks.onRecordUpdated(fn)
}

// config holds the settings a Gazetteer is constructed with.
type config struct {
	registry string
	sources  string
	clock    func() utc.Time
}

// defaultConfig returns the default settings.
func defaultConfig() *config {
	return &config{
		registry: constants.DefaultRegistryFile,
		sources:  constants.DefaultSourcesDir,
		clock:    utc.Now,
	}
}

// apply runs each option against the config.
func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}
