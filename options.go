package gazetteer

import (
	"github.com/agentstation/utc"

	"github.com/treeline/gazetteer/pkg/errors"
)

// Option is a function that configures a Gazetteer instance.
type Option func(*config) error

// WithRegistry sets the registry file path.
func WithRegistry(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "registry", Message: "cannot be empty"}
		}
		c.registry = path
		return nil
	}
}

// WithSources sets the directory place documents are loaded from.
func WithSources(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return &errors.ValidationError{Field: "sources", Message: "cannot be empty"}
		}
		c.sources = dir
		return nil
	}
}

// WithClock overrides the clock that stamps change metadata.
func WithClock(now func() utc.Time) Option {
	return func(c *config) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		c.clock = now
		return nil
	}
}

// SyncOptions configures a single synchronization run.
type SyncOptions struct {
	DryRun bool   // Show changes without applying them
	Output string // Write somewhere other than the registry path
}

// SyncOption is a function that configures sync options.
type SyncOption func(*SyncOptions)

// WithDryRun shows changes without applying them.
func WithDryRun(enabled bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.DryRun = enabled
	}
}

// WithOutput writes the synchronized registry to an alternate path.
func WithOutput(path string) SyncOption {
	return func(opts *SyncOptions) {
		opts.Output = path
	}
}

// NewSyncOptions creates SyncOptions with defaults.
func NewSyncOptions(opts ...SyncOption) *SyncOptions {
	options := &SyncOptions{}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
