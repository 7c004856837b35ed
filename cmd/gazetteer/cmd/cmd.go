// Package cmd provides the gazetteer CLI subcommands.
package cmd

import (
	"github.com/rs/zerolog"

	"github.com/treeline/gazetteer"
)

// Application is the app context commands draw their dependencies from.
// The App struct from cmd/gazetteer/app implements it; commands accept
// the interface so tests can substitute lighter implementations.
type Application interface {
	// Gazetteer returns the shared gazetteer instance, creating it
	// lazily on first use.
	Gazetteer() (gazetteer.Gazetteer, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
