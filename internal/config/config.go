// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Colors   ColorsConfig   `yaml:"colors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	MSAA       int  `yaml:"msaa"`
}

// ViewerConfig holds the mesh and animation settings.
type ViewerConfig struct {
	// Shape is the built-in shape loaded at startup; MeshFile overrides it
	// with a file path when set.
	Shape    string `yaml:"shape"`
	MeshFile string `yaml:"mesh_file"`

	MarkerRadius  float32 `yaml:"marker_radius"`
	RevealSeconds float64 `yaml:"reveal_seconds"`
	ItemSeconds   float64 `yaml:"item_seconds"`
	Easing        string  `yaml:"easing"`

	ShowGrid   bool `yaml:"show_grid"`
	ShowBounds bool `yaml:"show_bounds"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ColorsConfig holds the display colors as "#rrggbb" strings.
type ColorsConfig struct {
	Background string `yaml:"background"`
	Marker     string `yaml:"marker"`
	Edge       string `yaml:"edge"`
	Face       string `yaml:"face"`
	Solid      string `yaml:"solid"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,
		},
		Viewer: ViewerConfig{
			Shape:         "box",
			MarkerRadius:  0.025,
			RevealSeconds: 1.6,
			ItemSeconds:   0.35,
			Easing:        "cubic",
			ShowGrid:      true,
			ShowBounds:    true,
			ScreenshotDir: "screenshots",
		},
		Colors: ColorsConfig{
			Background: "#212429",
			Marker:     "#4f9edb",
			Edge:       "#e0e0eb",
			Face:       "#7385ad",
			Solid:      "#bfa87a",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
