package errors_test

import (
	"fmt"

	"github.com/treeline/gazetteer/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "place",
		ID:       "L204",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	// Validate input
	registry := ""
	if registry == "" {
		err := &errors.ValidationError{
			Field:   "registry",
			Message: "registry path cannot be empty",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field registry: registry path cannot be empty
}

// Example_parseError demonstrates diagnostic parse errors. A malformed
// place document is reported and skipped rather than aborting a sync.
func Example_parseError() {
	err := &errors.ParseError{
		Format:  "yaml",
		File:    "data/springfield.yaml",
		Message: "mapping values are not allowed in this context",
	}

	fmt.Println(err.Error())

	// Output: parse error in yaml file data/springfield.yaml: mapping values are not allowed in this context
}

// Example_errorWrapping demonstrates error wrapping patterns.
func Example_errorWrapping() {
	// Original error
	originalErr := fmt.Errorf("permission denied")

	// Wrap with IO error
	ioErr := errors.WrapIO("write", "locations.ged", originalErr)

	// Wrap with resource error
	_ = &errors.ResourceError{
		Operation: "sync",
		Resource:  "registry",
		Message:   "failed to persist registry",
		Err:       ioErr,
	}

	fmt.Println("Resource error occurred")

	// Output: Resource error occurred
}

// Example_errorChaining shows chained error handling.
func Example_errorChaining() {
	// Create a chain of errors
	baseErr := &errors.NotFoundError{
		Resource: "file",
		ID:       "locations.ged",
	}

	parseErr := &errors.ParseError{
		Format:  "gedcom",
		File:    "locations.ged",
		Message: "failed to read registry",
		Err:     baseErr,
	}

	// Check through the chain using standard library
	if parseErr.Err != nil {
		if _, ok := parseErr.Err.(*errors.NotFoundError); ok {
			fmt.Println("File not found in parse chain")
		}
	}

	// Output: File not found in parse chain
}
