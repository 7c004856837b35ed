// Package constants provides shared constants used throughout the gazetteer
// codebase. This includes default paths, file permissions, and format values
// that should be consistent across the application.
package constants

// Default path constants define where the registry and its sources live when
// no configuration overrides them.
const (
	// DefaultRegistryFile is the GEDCOM place registry read and rewritten by a sync.
	DefaultRegistryFile = "locations.ged"

	// DefaultSourcesDir is the root of the YAML place-record directory tree.
	DefaultSourcesDir = "data"

	// DefaultConfigName is the config file cobra/viper searches for (without extension).
	DefaultConfigName = ".gazetteer"
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644
)

// Format constants pin the fixed renderings of the registry text format.
const (
	// UIDHexLength is the length of a generated unique-id value: 128 random
	// bits rendered as uppercase hexadecimal.
	UIDHexLength = 32

	// ChangeDateLayout renders a change-metadata date, e.g. "17 Mar 2024"
	// before uppercasing.
	ChangeDateLayout = "02 Jan 2006"

	// ChangeTimeLayout renders a change-metadata time with exactly one
	// sub-second digit, e.g. "14:03:02.5".
	ChangeTimeLayout = "15:04:05.0"
)
