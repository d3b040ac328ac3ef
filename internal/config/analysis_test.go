package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()

	if got := cfg.GetL(); got != 400.0 {
		t.Errorf("GetL: expected 400, got %g", got)
	}
	if got := cfg.GetPosWindowMS(); got != 100.0 {
		t.Errorf("GetPosWindowMS: expected 100, got %g", got)
	}
	if got := cfg.GetStartMarginPx(); got != 20.0 {
		t.Errorf("GetStartMarginPx: expected 20, got %g", got)
	}
	if got := cfg.GetEndMarginPx(); got != 20.0 {
		t.Errorf("GetEndMarginPx: expected 20, got %g", got)
	}
	if got := cfg.GetT(); got != 1.0 {
		t.Errorf("GetT: expected 1, got %g", got)
	}
	if got := cfg.GetVStart(); got != 50.0 {
		t.Errorf("GetVStart: expected 50, got %g", got)
	}
	if got := cfg.GetVStop(); got != 20.0 {
		t.Errorf("GetVStop: expected 20, got %g", got)
	}
	if got := cfg.GetHoldStartMS(); got != 80.0 {
		t.Errorf("GetHoldStartMS: expected 80, got %g", got)
	}
	if got := cfg.GetHoldStopMS(); got != 100.0 {
		t.Errorf("GetHoldStopMS: expected 100, got %g", got)
	}
	if !cfg.GetUseVelocity() {
		t.Error("GetUseVelocity: expected true")
	}
}

func TestParamsMirrorsAccessors(t *testing.T) {
	cfg := EmptyAnalysisConfig()
	p := cfg.Params()

	if p.L != cfg.GetL() || p.PosWindowMS != cfg.GetPosWindowMS() ||
		p.MotionDuration != cfg.GetT() || p.UseVelocity != cfg.GetUseVelocity() {
		t.Errorf("Params does not mirror accessor defaults: %+v", p)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(`{"L": 600, "use_velocity": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.GetL(); got != 600 {
		t.Errorf("GetL: expected 600, got %g", got)
	}
	if cfg.GetUseVelocity() {
		t.Error("GetUseVelocity: expected false")
	}
	// Unset fields keep their defaults.
	if got := cfg.GetVStart(); got != 50.0 {
		t.Errorf("GetVStart: expected default 50, got %g", got)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(jsonPath, []byte(`{"L": `), 0644); err != nil {
		t.Fatal(err)
	}

	txtPath := filepath.Join(dir, "analysis.txt")
	if err := os.WriteFile(txtPath, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	invalidPath := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalidPath, []byte(`{"L": -1}`), 0644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		path string
	}{
		{"malformed_json", jsonPath},
		{"wrong_extension", txtPath},
		{"missing_file", filepath.Join(dir, "nope.json")},
		{"invalid_values", invalidPath},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	neg := -5.0
	zero := 0.0

	testCases := []struct {
		name    string
		cfg     AnalysisConfig
		wantErr bool
	}{
		{"empty_is_valid", AnalysisConfig{}, false},
		{"negative_L", AnalysisConfig{L: &neg}, true},
		{"zero_T", AnalysisConfig{T: &zero}, true},
		{"negative_poswin", AnalysisConfig{PosWindowMS: &neg}, true},
		{"negative_hold_start", AnalysisConfig{HoldStartMS: &neg}, true},
		{"negative_hold_stop", AnalysisConfig{HoldStopMS: &neg}, true},
		{"zero_poswin_ok", AnalysisConfig{PosWindowMS: &zero}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
