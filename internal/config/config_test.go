package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".flowdoc.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "docs" {
		t.Errorf("OutputDir = %q, want docs", cfg.OutputDir)
	}
	if cfg.ServePort != DefaultServePort {
		t.Errorf("ServePort = %d, want %d", cfg.ServePort, DefaultServePort)
	}
	if !reflect.DeepEqual(cfg.TerminalTypes, DefaultTerminalTypes) {
		t.Errorf("TerminalTypes = %v", cfg.TerminalTypes)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flowdoc.yml")
	data := strings.Join([]string{
		"input_dir: exports",
		"output_dir: site",
		"serve_port: 9000",
		"error_filter:",
		"  - NoMatchingCondition",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.InputDir != "exports" || cfg.OutputDir != "site" || cfg.ServePort != 9000 {
		t.Errorf("loaded config = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ErrorFilter, []string{"NoMatchingCondition"}) {
		t.Errorf("ErrorFilter = %v", cfg.ErrorFilter)
	}
	// Unset keys keep their defaults.
	if !reflect.DeepEqual(cfg.FlowReferencePaths, DefaultFlowReferencePaths) {
		t.Errorf("FlowReferencePaths = %v", cfg.FlowReferencePaths)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flowdoc.yml")
	if err := os.WriteFile(path, []byte("output_dir: site\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("FLOWDOC_OUTPUT_DIR", "env-docs")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "env-docs" {
		t.Errorf("OutputDir = %q, want env-docs", cfg.OutputDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flowdoc.yml")
	cfg := DefaultConfig()
	cfg.InputDir = "exports"
	cfg.ErrorFilter = []string{"NoMatchingError"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing input dir", func(c *Config) { c.InputDir = "" }, true},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"no reference paths", func(c *Config) {
			c.FlowReferencePaths = nil
			c.ModuleReferencePaths = nil
		}, true},
		{"no terminal types", func(c *Config) { c.TerminalTypes = nil }, true},
		{"port out of range", func(c *Config) { c.ServePort = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
