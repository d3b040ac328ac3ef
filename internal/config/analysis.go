// Package config holds the analysis parameter file. The JSON schema uses
// the same keys as the CLI flags so a saved parameter file documents a run
// exactly; fields omitted from the file keep their defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motorlab/tracking.report/internal/metrics"
)

// AnalysisConfig is the root analysis configuration. All fields are
// optional; the Get* accessors supply defaults.
type AnalysisConfig struct {
	L             *float64 `json:"L,omitempty"`               // travel distance [px]
	PosWindowMS   *float64 `json:"poswin_ms,omitempty"`       // variance window half width [ms]
	StartMarginPx *float64 `json:"start_margin_px,omitempty"` // onset position margin [px]
	EndMarginPx   *float64 `json:"end_margin_px,omitempty"`   // offset position margin [px]
	T             *float64 `json:"T,omitempty"`               // ideal motion duration [s]
	VStart        *float64 `json:"v_start,omitempty"`         // onset velocity threshold [px/s]
	VStop         *float64 `json:"v_stop,omitempty"`          // offset velocity threshold [px/s]
	HoldStartMS   *float64 `json:"hold_start_ms,omitempty"`   // onset hold duration [ms]
	HoldStopMS    *float64 `json:"hold_stop_ms,omitempty"`    // offset hold duration [ms]
	UseVelocity   *bool    `json:"use_velocity,omitempty"`    // velocity vs. position detection
}

// EmptyAnalysisConfig returns a config with every field unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// Load reads an AnalysisConfig from a JSON file. The path must have a
// .json extension and the file is size-capped; partial configs are safe.
func Load(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *AnalysisConfig) Validate() error {
	if c.L != nil && *c.L <= 0 {
		return fmt.Errorf("L must be positive, got %f", *c.L)
	}
	if c.PosWindowMS != nil && *c.PosWindowMS < 0 {
		return fmt.Errorf("poswin_ms must be non-negative, got %f", *c.PosWindowMS)
	}
	if c.T != nil && *c.T <= 0 {
		return fmt.Errorf("T must be positive, got %f", *c.T)
	}
	if c.HoldStartMS != nil && *c.HoldStartMS < 0 {
		return fmt.Errorf("hold_start_ms must be non-negative, got %f", *c.HoldStartMS)
	}
	if c.HoldStopMS != nil && *c.HoldStopMS < 0 {
		return fmt.Errorf("hold_stop_ms must be non-negative, got %f", *c.HoldStopMS)
	}
	return nil
}

// GetL returns the travel distance or its default.
func (c *AnalysisConfig) GetL() float64 {
	if c.L == nil {
		return 400.0
	}
	return *c.L
}

// GetPosWindowMS returns the variance window half width or its default.
func (c *AnalysisConfig) GetPosWindowMS() float64 {
	if c.PosWindowMS == nil {
		return 100.0
	}
	return *c.PosWindowMS
}

// GetStartMarginPx returns the onset position margin or its default.
func (c *AnalysisConfig) GetStartMarginPx() float64 {
	if c.StartMarginPx == nil {
		return 20.0
	}
	return *c.StartMarginPx
}

// GetEndMarginPx returns the offset position margin or its default.
func (c *AnalysisConfig) GetEndMarginPx() float64 {
	if c.EndMarginPx == nil {
		return 20.0
	}
	return *c.EndMarginPx
}

// GetT returns the ideal motion duration or its default.
func (c *AnalysisConfig) GetT() float64 {
	if c.T == nil {
		return 1.0
	}
	return *c.T
}

// GetVStart returns the onset velocity threshold or its default.
func (c *AnalysisConfig) GetVStart() float64 {
	if c.VStart == nil {
		return 50.0
	}
	return *c.VStart
}

// GetVStop returns the offset velocity threshold or its default.
func (c *AnalysisConfig) GetVStop() float64 {
	if c.VStop == nil {
		return 20.0
	}
	return *c.VStop
}

// GetHoldStartMS returns the onset hold duration or its default.
func (c *AnalysisConfig) GetHoldStartMS() float64 {
	if c.HoldStartMS == nil {
		return 80.0
	}
	return *c.HoldStartMS
}

// GetHoldStopMS returns the offset hold duration or its default.
func (c *AnalysisConfig) GetHoldStopMS() float64 {
	if c.HoldStopMS == nil {
		return 100.0
	}
	return *c.HoldStopMS
}

// GetUseVelocity returns the detection strategy selector or its default.
func (c *AnalysisConfig) GetUseVelocity() bool {
	if c.UseVelocity == nil {
		return true
	}
	return *c.UseVelocity
}

// Params materialises the configuration into the engine parameter bundle.
func (c *AnalysisConfig) Params() metrics.Params {
	return metrics.Params{
		L:              c.GetL(),
		PosWindowMS:    c.GetPosWindowMS(),
		StartMarginPx:  c.GetStartMarginPx(),
		EndMarginPx:    c.GetEndMarginPx(),
		MotionDuration: c.GetT(),
		VStart:         c.GetVStart(),
		VStop:          c.GetVStop(),
		HoldStartMS:    c.GetHoldStartMS(),
		HoldStopMS:     c.GetHoldStopMS(),
		UseVelocity:    c.GetUseVelocity(),
	}
}
