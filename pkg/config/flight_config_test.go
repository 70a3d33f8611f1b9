package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultValues 默认手感参数
func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Round.BaseDuration != 5.0 {
		t.Errorf("BaseDuration: got %v, want 5.0", cfg.Round.BaseDuration)
	}
	if cfg.Round.DecayFactor != 0.9 {
		t.Errorf("DecayFactor: got %v, want 0.9", cfg.Round.DecayFactor)
	}
	if cfg.Round.RestartDelay != 5.0 {
		t.Errorf("RestartDelay: got %v, want 5.0", cfg.Round.RestartDelay)
	}
	if cfg.Round.HighlightDuration != 0.2 {
		t.Errorf("HighlightDuration: got %v, want 0.2", cfg.Round.HighlightDuration)
	}
	if cfg.Round.MinDuration != 0 {
		t.Errorf("MinDuration: got %v, want 0 (no floor)", cfg.Round.MinDuration)
	}
	if cfg.Spawn.RangeX != (IntRange{Min: -25, Max: 25}) || cfg.Spawn.RangeY != (IntRange{Min: -25, Max: 25}) {
		t.Errorf("spawn ranges: got %+v %+v", cfg.Spawn.RangeX, cfg.Spawn.RangeY)
	}
	if cfg.Spawn.Depth != -105 {
		t.Errorf("Depth: got %v, want -105", cfg.Spawn.Depth)
	}
	if cfg.Spawn.LookAtScale != 2 {
		t.Errorf("LookAtScale: got %v, want 2", cfg.Spawn.LookAtScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

// TestParseFlightConfigPartial 缺失字段保留默认值
func TestParseFlightConfigPartial(t *testing.T) {
	data := []byte(`
round:
  baseDuration: 3.0
  minDuration: 0.5
spawn:
  depth: -50
`)
	cfg, err := ParseFlightConfig(data)
	if err != nil {
		t.Fatalf("ParseFlightConfig failed: %v", err)
	}

	if cfg.Round.BaseDuration != 3.0 {
		t.Errorf("BaseDuration: got %v, want 3.0", cfg.Round.BaseDuration)
	}
	if cfg.Round.MinDuration != 0.5 {
		t.Errorf("MinDuration: got %v, want 0.5", cfg.Round.MinDuration)
	}
	if cfg.Round.DecayFactor != 0.9 {
		t.Errorf("DecayFactor should keep default 0.9, got %v", cfg.Round.DecayFactor)
	}
	if cfg.Spawn.Depth != -50 {
		t.Errorf("Depth: got %v, want -50", cfg.Spawn.Depth)
	}
	if cfg.Spawn.RangeX.Max != 25 {
		t.Errorf("RangeX.Max should keep default 25, got %d", cfg.Spawn.RangeX.Max)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *FlightConfig)
		wantErr string
	}{
		{"zero base duration", func(c *FlightConfig) { c.Round.BaseDuration = 0 }, "baseDuration"},
		{"decay above one", func(c *FlightConfig) { c.Round.DecayFactor = 1.5 }, "decayFactor"},
		{"decay zero", func(c *FlightConfig) { c.Round.DecayFactor = 0 }, "decayFactor"},
		{"floor above base", func(c *FlightConfig) { c.Round.MinDuration = 10 }, "minDuration"},
		{"zero restart delay", func(c *FlightConfig) { c.Round.RestartDelay = 0 }, "restartDelay"},
		{"inverted rangeX", func(c *FlightConfig) { c.Spawn.RangeX = IntRange{Min: 5, Max: -5} }, "rangeX"},
		{"inverted rangeY", func(c *FlightConfig) { c.Spawn.RangeY = IntRange{Min: 5, Max: -5} }, "rangeY"},
		{"depth behind camera", func(c *FlightConfig) { c.Spawn.Depth = 10 }, "depth"},
		{"bad fov", func(c *FlightConfig) { c.Camera.FieldOfView = 180 }, "fieldOfView"},
		{"zero near", func(c *FlightConfig) { c.Camera.Near = 0 }, "near"},
		{"zero radius", func(c *FlightConfig) { c.Camera.ShipRadius = 0 }, "shipRadius"},
		{"empty display", func(c *FlightConfig) { c.Display.Width = 0 }, "display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoadFlightConfigFromDisk 未嵌入时从磁盘读取
func TestLoadFlightConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.yaml")
	if err := os.WriteFile(path, []byte("round:\n  restartDelay: 2.5\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFlightConfig(path)
	if err != nil {
		t.Fatalf("LoadFlightConfig failed: %v", err)
	}
	if cfg.Round.RestartDelay != 2.5 {
		t.Errorf("RestartDelay: got %v, want 2.5", cfg.Round.RestartDelay)
	}
}

func TestLoadFlightConfigErrors(t *testing.T) {
	if _, err := LoadFlightConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("round: [not, a, map"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFlightConfig(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(path, []byte("round:\n  decayFactor: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFlightConfig(path); err == nil {
		t.Error("Expected validation error for decayFactor 2")
	}
}

// TestShippedConfigIsValid 仓库自带的配置文件必须能通过验证
func TestShippedConfigIsValid(t *testing.T) {
	cfg, err := LoadFlightConfig(filepath.Join("..", "..", "data", "flight.yaml"))
	if err != nil {
		t.Fatalf("shipped data/flight.yaml failed to load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("shipped config should match defaults:\n got  %+v\n want %+v", *cfg, *Default())
	}
}

// TestDurationCurve 默认配置按 0.9 衰减且不设下限
func TestDurationCurve(t *testing.T) {
	curve := Default().Round.DurationCurve(2)
	want := []float64{5, 4.5, 4.05}
	if len(curve) != len(want) {
		t.Fatalf("curve length: got %d, want %d", len(curve), len(want))
	}
	for i := range want {
		if math.Abs(curve[i]-want[i]) > 1e-9 {
			t.Errorf("curve[%d]: got %v, want %v", i, curve[i], want[i])
		}
	}

	if got := Default().Round.DurationCurve(-1); len(got) != 1 || got[0] != 5 {
		t.Errorf("negative hits should yield only the base duration, got %v", got)
	}
}

func TestNextDurationFloor(t *testing.T) {
	r := RoundConfig{BaseDuration: 5, DecayFactor: 0.5, MinDuration: 2}

	tests := []struct {
		in, want float64
	}{
		{5, 2.5},
		{2.5, 2},
		{2, 2},
	}
	for _, tt := range tests {
		if got := r.NextDuration(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NextDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
