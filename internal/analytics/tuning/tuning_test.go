package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Tuning{
		DataLocation:         "data",
		MinOccurrences:       7,
		MinMarketingSpend:    15,
		HeatPopularityFactor: 1.0,
		Output:               "worlds_aggregated.csv",
		Format:               FormatCSV,
	}
	if got != want {
		t.Fatalf("defaults mismatch: got %+v want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_YAMLOverridesSubsetOfKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worldpulse.yaml")
	raw := "data_location: snapshots\nmin_occurrences: 3\nheat_popularity_factor: 1.25\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataLocation != "snapshots" || got.MinOccurrences != 3 || got.HeatPopularityFactor != 1.25 {
		t.Fatalf("yaml overrides not applied: %+v", got)
	}
	if got.MinMarketingSpend != 15 || got.Output != "worlds_aggregated.csv" || got.Format != FormatCSV {
		t.Fatalf("unset keys must keep defaults: %+v", got)
	}
}

func TestLoad_MalformedYAMLNamesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("min_occurrences: [oops\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected yaml error")
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("error must name the file: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worldpulse.yaml")
	if err := os.WriteFile(path, []byte("min_occurrences: 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("WP_MIN_OCCURRENCES", "9")
	t.Setenv("WP_FORMAT", "SQLITE")
	t.Setenv("WP_MIN_MARKETING_SPEND", "2.5")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MinOccurrences != 9 {
		t.Fatalf("MinOccurrences=%d want=9", got.MinOccurrences)
	}
	if got.Format != FormatSQLite {
		t.Fatalf("Format=%q want=%q", got.Format, FormatSQLite)
	}
	if got.MinMarketingSpend != 2.5 {
		t.Fatalf("MinMarketingSpend=%g want=2.5", got.MinMarketingSpend)
	}
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("WP_MIN_OCCURRENCES", "lots")
	t.Setenv("WP_HEAT_POPULARITY_FACTOR", "")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MinOccurrences != 7 || got.HeatPopularityFactor != 1.0 {
		t.Fatalf("malformed env must keep defaults: %+v", got)
	}
}

func TestTuning_ValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"empty data_location", func(t *Tuning) { t.DataLocation = "" }},
		{"zero min_occurrences", func(t *Tuning) { t.MinOccurrences = 0 }},
		{"negative min_marketing_spend", func(t *Tuning) { t.MinMarketingSpend = -1 }},
		{"zero heat_popularity_factor", func(t *Tuning) { t.HeatPopularityFactor = 0 }},
		{"empty output", func(t *Tuning) { t.Output = "" }},
		{"unknown format", func(t *Tuning) { t.Format = "parquet" }},
	}
	for _, tc := range cases {
		cfg := Defaults()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error, got nil", tc.name)
		}
	}
}
