package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/treeline/gazetteer"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Gazetteer_Singleton verifies that Gazetteer() returns the same instance.
func TestApp_Gazetteer_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	g1, err := app.Gazetteer()
	if err != nil {
		t.Fatalf("Gazetteer() failed: %v", err)
	}

	g2, err := app.Gazetteer()
	if err != nil {
		t.Fatalf("Gazetteer() failed on second call: %v", err)
	}

	if g1 != g2 {
		t.Error("Gazetteer() returned different instances, expected singleton")
	}
}

// TestApp_Gazetteer_ThreadSafe verifies concurrent Gazetteer() calls are safe.
func TestApp_Gazetteer_ThreadSafe(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]gazetteer.Gazetteer, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			g, err := app.Gazetteer()
			results[idx] = g
			errs[idx] = err
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Goroutine %d: Gazetteer() failed: %v", i, err)
		}
	}

	first := results[0]
	for i, g := range results[1:] {
		if g != first {
			t.Errorf("Goroutine %d got a different gazetteer instance", i+1)
		}
	}
}

// TestApp_WithOptions tests the functional options pattern.
func TestApp_WithOptions(t *testing.T) {
	customConfig := &Config{
		Verbose:  true,
		Registry: "custom.ged",
		Sources:  "places",
	}

	customLogger := zerolog.Nop()

	app, err := New("1.0.0", "test", "2024-01-01", "test",
		WithConfig(customConfig),
		WithLogger(&customLogger),
	)
	if err != nil {
		t.Fatalf("New() with options failed: %v", err)
	}

	if app.Config() != customConfig {
		t.Error("WithConfig() option not applied")
	}
	if app.Logger() != &customLogger {
		t.Error("WithLogger() option not applied")
	}
}

// TestApp_WithGazetteer verifies a preset instance bypasses lazy construction.
func TestApp_WithGazetteer(t *testing.T) {
	preset, err := gazetteer.New()
	if err != nil {
		t.Fatalf("gazetteer.New() failed: %v", err)
	}

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithGazetteer(preset))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	got, err := app.Gazetteer()
	if err != nil {
		t.Fatalf("Gazetteer() failed: %v", err)
	}
	if got != preset {
		t.Error("WithGazetteer() instance not returned by Gazetteer()")
	}
}

// TestApp_Execute_UnknownCommand verifies unknown commands error out.
func TestApp_Execute_UnknownCommand(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := app.Execute(context.Background(), []string{"bogus"}); err == nil {
		t.Error("Execute() with unknown command succeeded, want error")
	}
}

// TestApp_Execute_Sync runs the sync command end to end through the CLI,
// exercising the persistent --registry and --sources flags.
func TestApp_Execute_Sync(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "locations.ged")
	sources := filepath.Join(dir, "data")

	if err := os.MkdirAll(sources, 0o755); err != nil {
		t.Fatalf("Failed to create sources dir: %v", err)
	}
	places := "- id: L1\n  names:\n    - name: Springfield\n"
	if err := os.WriteFile(filepath.Join(sources, "places.yaml"), []byte(places), 0o644); err != nil {
		t.Fatalf("Failed to write places: %v", err)
	}

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	args := []string{"sync", "--registry", registry, "--sources", sources, "-q"}
	if err := app.Execute(context.Background(), args); err != nil {
		t.Fatalf("Execute(sync) failed: %v", err)
	}

	data, err := os.ReadFile(registry)
	if err != nil {
		t.Fatalf("Failed to read registry: %v", err)
	}
	if !strings.Contains(string(data), "0 @L1@ _LOC") {
		t.Errorf("Registry missing created record:\n%s", data)
	}
}
