package gazetteer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Run("healthy registry", func(t *testing.T) {
		dir := t.TempDir()
		registry := filepath.Join(dir, "locations.ged")
		writeFixture(t, registry, testRegistry)

		g, err := New(WithRegistry(registry))
		if err != nil {
			t.Fatalf("Failed to create gazetteer: %v", err)
		}

		report, err := g.Check(context.Background())
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}

		if report.Records != 3 {
			t.Errorf("Records = %d, want 3", report.Records)
		}
		if report.Locations != 1 {
			t.Errorf("Locations = %d, want 1", report.Locations)
		}
		if !report.TrailerLast {
			t.Error("Expected trailer last")
		}
		if !report.RoundTrip {
			t.Error("Expected round-trip byte identity")
		}
		if !report.Healthy() {
			t.Errorf("Expected healthy report, got %s", report.Summary())
		}
	})

	t.Run("garbage record", func(t *testing.T) {
		dir := t.TempDir()
		registry := filepath.Join(dir, "locations.ged")
		writeFixture(t, registry, "0 HEAD\n0 _LOC @L9@\n0 TRLR\n")

		g, err := New(WithRegistry(registry))
		if err != nil {
			t.Fatalf("Failed to create gazetteer: %v", err)
		}

		report, err := g.Check(context.Background())
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}

		if report.Garbage != 1 {
			t.Errorf("Garbage = %d, want 1", report.Garbage)
		}
		if report.RoundTrip {
			t.Error("A dropped record cannot round-trip")
		}
		if report.Healthy() {
			t.Error("Expected unhealthy report")
		}
		if !strings.HasPrefix(report.Summary(), "unhealthy") {
			t.Errorf("Summary() = %q, want unhealthy prefix", report.Summary())
		}
	})

	t.Run("missing trailer", func(t *testing.T) {
		dir := t.TempDir()
		registry := filepath.Join(dir, "locations.ged")
		writeFixture(t, registry, "0 @L1@ _LOC\n1 NAME Springfield\n")

		g, err := New(WithRegistry(registry))
		if err != nil {
			t.Fatalf("Failed to create gazetteer: %v", err)
		}

		report, err := g.Check(context.Background())
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}

		if report.TrailerLast {
			t.Error("Expected no trailer")
		}
		if !report.RoundTrip {
			t.Error("A clean file without a trailer still round-trips")
		}
		if report.Healthy() {
			t.Error("Expected unhealthy report")
		}
	})

	t.Run("absent registry", func(t *testing.T) {
		g, err := New(WithRegistry(filepath.Join(t.TempDir(), "locations.ged")))
		if err != nil {
			t.Fatalf("Failed to create gazetteer: %v", err)
		}

		report, err := g.Check(context.Background())
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}

		if report.Records != 0 {
			t.Errorf("Records = %d, want 0", report.Records)
		}
		if report.TrailerLast {
			t.Error("An absent registry has no trailer")
		}
		if report.Healthy() {
			t.Error("Expected unhealthy report")
		}
	})
}
