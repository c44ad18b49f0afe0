package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThresholds_EmptyPathUsesDefaults(t *testing.T) {
	th, err := LoadThresholds("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th != DefaultThresholds() {
		t.Fatalf("expected defaults, got %+v", th)
	}
}

func TestLoadThresholds_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.yaml")
	body := "stale_stage_days: 15\nhigh_value_amount: 100000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	th, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.StaleStageDays != 15 {
		t.Fatalf("expected stale_stage_days 15, got %d", th.StaleStageDays)
	}
	if th.HighValueAmount != 100000 {
		t.Fatalf("expected high_value_amount 100000, got %v", th.HighValueAmount)
	}
	if th.TouchTarget != DefaultThresholds().TouchTarget {
		t.Fatalf("expected default touch target, got %d", th.TouchTarget)
	}
}

func TestLoadThresholds_RejectsInvalidRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.yaml")
	if err := os.WriteFile(path, []byte("commitment_max_days: 0\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadThresholds(path); err == nil {
		t.Fatal("expected error for commitment_max_days below min")
	}
}

func TestLoadThresholds_MissingFile(t *testing.T) {
	if _, err := LoadThresholds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
