package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.MSAA != 4 {
		t.Errorf("expected msaa 4, got %d", cfg.Graphics.MSAA)
	}

	// Test viewer defaults
	if cfg.Viewer.Shape != "box" {
		t.Errorf("expected shape 'box', got %s", cfg.Viewer.Shape)
	}
	if cfg.Viewer.MeshFile != "" {
		t.Errorf("expected empty mesh file, got %s", cfg.Viewer.MeshFile)
	}
	if cfg.Viewer.RevealSeconds != 1.6 {
		t.Errorf("expected reveal seconds 1.6, got %f", cfg.Viewer.RevealSeconds)
	}
	if cfg.Viewer.ItemSeconds != 0.35 {
		t.Errorf("expected item seconds 0.35, got %f", cfg.Viewer.ItemSeconds)
	}
	if cfg.Viewer.MarkerRadius != 0.025 {
		t.Errorf("expected marker radius 0.025, got %f", cfg.Viewer.MarkerRadius)
	}
	if cfg.Viewer.Easing != "cubic" {
		t.Errorf("expected easing 'cubic', got %s", cfg.Viewer.Easing)
	}
	if !cfg.Viewer.ShowGrid {
		t.Error("expected show_grid to be true by default")
	}
	if !cfg.Viewer.ShowBounds {
		t.Error("expected show_bounds to be true by default")
	}

	// Test color defaults
	if cfg.Colors.Background != "#212429" {
		t.Errorf("expected background #212429, got %s", cfg.Colors.Background)
	}
	if cfg.Colors.Marker != "#4f9edb" {
		t.Errorf("expected marker #4f9edb, got %s", cfg.Colors.Marker)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144
  msaa: 8

viewer:
  shape: "sphere"
  marker_radius: 0.05
  reveal_seconds: 2.5
  item_seconds: 0.5
  easing: "back"
  show_grid: false
  show_bounds: false
  screenshot_dir: "captures"

colors:
  background: "#101010"
  marker: "#ff0000"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.MSAA != 8 {
		t.Errorf("expected msaa 8, got %d", cfg.Graphics.MSAA)
	}

	if cfg.Viewer.Shape != "sphere" {
		t.Errorf("expected shape 'sphere', got %s", cfg.Viewer.Shape)
	}
	if cfg.Viewer.MarkerRadius != 0.05 {
		t.Errorf("expected marker radius 0.05, got %f", cfg.Viewer.MarkerRadius)
	}
	if cfg.Viewer.RevealSeconds != 2.5 {
		t.Errorf("expected reveal seconds 2.5, got %f", cfg.Viewer.RevealSeconds)
	}
	if cfg.Viewer.Easing != "back" {
		t.Errorf("expected easing 'back', got %s", cfg.Viewer.Easing)
	}
	if cfg.Viewer.ShowGrid {
		t.Error("expected show_grid to be false")
	}
	if cfg.Viewer.ScreenshotDir != "captures" {
		t.Errorf("expected screenshot dir 'captures', got %s", cfg.Viewer.ScreenshotDir)
	}

	if cfg.Colors.Background != "#101010" {
		t.Errorf("expected background #101010, got %s", cfg.Colors.Background)
	}
	if cfg.Colors.Marker != "#ff0000" {
		t.Errorf("expected marker #ff0000, got %s", cfg.Colors.Marker)
	}
	// Colors not in the file keep their defaults
	if cfg.Colors.Edge != "#e0e0eb" {
		t.Errorf("expected default edge color, got %s", cfg.Colors.Edge)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid yaml")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/config.yaml"); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "shape flag",
			setup: func() {
				*flagShape = "cone"
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Shape != "cone" {
					t.Errorf("expected shape 'cone', got %s", cfg.Viewer.Shape)
				}
			},
			teardown: func() {
				*flagShape = ""
			},
		},
		{
			name: "shape flag clears configured mesh file",
			setup: func() {
				*flagShape = "sphere"
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.MeshFile != "" {
					t.Errorf("expected mesh file cleared, got %s", cfg.Viewer.MeshFile)
				}
			},
			teardown: func() {
				*flagShape = ""
			},
		},
		{
			name: "mesh flag",
			setup: func() {
				*flagMesh = "model.obj"
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.MeshFile != "model.obj" {
					t.Errorf("expected mesh file 'model.obj', got %s", cfg.Viewer.MeshFile)
				}
			},
			teardown: func() {
				*flagMesh = ""
			},
		},
		{
			name: "reveal flag",
			setup: func() {
				*flagReveal = 0
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.RevealSeconds != 0 {
					t.Errorf("expected reveal seconds 0, got %f", cfg.Viewer.RevealSeconds)
				}
			},
			teardown: func() {
				*flagReveal = -1
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
viewer:
  reveal_seconds: 3.0
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	// Reveal seconds from file since the flag default is off
	if cfg.Viewer.RevealSeconds != 3.0 {
		t.Errorf("expected reveal seconds 3.0 from file, got %f", cfg.Viewer.RevealSeconds)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Viewer.Shape = "cylinder"
	cfg.Colors.Solid = "#123456"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Viewer.Shape != "cylinder" {
		t.Errorf("expected shape 'cylinder' after round trip, got %s", loaded.Viewer.Shape)
	}
	if loaded.Colors.Solid != "#123456" {
		t.Errorf("expected solid #123456 after round trip, got %s", loaded.Colors.Solid)
	}
}
