package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	if cfg.Output.Dir != filepath.Join("public", "icons") {
		t.Errorf("Expected output dir 'public/icons', got '%s'", cfg.Output.Dir)
	}

	want := []int{16, 48, 128}
	if len(cfg.Sizes) != len(want) {
		t.Fatalf("Expected %d sizes, got %d", len(want), len(cfg.Sizes))
	}
	for i, size := range want {
		if cfg.Sizes[i] != size {
			t.Errorf("Expected size %d at index %d, got %d", size, i, cfg.Sizes[i])
		}
	}

	if cfg.Resize.Filter != "lanczos" {
		t.Errorf("Expected filter 'lanczos', got '%s'", cfg.Resize.Filter)
	}

	if cfg.Placeholder.Background != "#3b82f6" {
		t.Errorf("Expected background '#3b82f6', got '%s'", cfg.Placeholder.Background)
	}

	if got := cfg.IconPath(48); got != filepath.Join("public", "icons", "icon48.png") {
		t.Errorf("Unexpected icon path: %s", got)
	}

	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("Expected 500ms debounce, got %v", cfg.Debounce())
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "icons.yaml")

	configContent := `
output:
  dir: "build/icons"
sizes: [32, 64]
resize:
  filter: "catmullrom"
  fit: "contain"
placeholder:
  background: "#ff0000"
favicon:
  enabled: true
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.Dir != "build/icons" {
		t.Errorf("Expected output dir 'build/icons', got '%s'", cfg.Output.Dir)
	}

	// Fields missing from the file keep their defaults
	if cfg.Output.NamePattern != "icon%d.png" {
		t.Errorf("Expected default name pattern, got '%s'", cfg.Output.NamePattern)
	}
	if cfg.Placeholder.Foreground != "#ffffff" {
		t.Errorf("Expected default foreground, got '%s'", cfg.Placeholder.Foreground)
	}
	if cfg.Favicon.Name != "favicon.ico" {
		t.Errorf("Expected default favicon name, got '%s'", cfg.Favicon.Name)
	}

	if len(cfg.Sizes) != 2 || cfg.Sizes[0] != 32 || cfg.Sizes[1] != 64 {
		t.Errorf("Expected sizes [32 64], got %v", cfg.Sizes)
	}

	if cfg.Resize.Fit != FitContain {
		t.Errorf("Expected fit 'contain', got '%s'", cfg.Resize.Fit)
	}

	if !cfg.Favicon.Enabled {
		t.Error("Expected favicon to be enabled")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Sizes) != 3 {
		t.Errorf("Expected default sizes, got %v", cfg.Sizes)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}

	badFile := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badFile, []byte("sizes: [16, -1]\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	if _, err := Load(badFile); err == nil {
		t.Error("Expected validation error for negative size")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Output.Dir = "" },
			wantErr: true,
		},
		{
			name:    "name pattern without size",
			mutate:  func(c *Config) { c.Output.NamePattern = "icon.png" },
			wantErr: true,
		},
		{
			name:    "escaped size verb",
			mutate:  func(c *Config) { c.Output.NamePattern = "icon%%d.png" },
			wantErr: true,
		},
		{
			name:    "extra string verb",
			mutate:  func(c *Config) { c.Output.NamePattern = "icon-%s-%d.png" },
			wantErr: true,
		},
		{
			name:    "pattern with directory",
			mutate:  func(c *Config) { c.Output.NamePattern = "sub/icon%d.png" },
			wantErr: true,
		},
		{
			name:    "padded size verb",
			mutate:  func(c *Config) { c.Output.NamePattern = "icon-%03d.png" },
			wantErr: false,
		},
		{
			name:    "empty sizes",
			mutate:  func(c *Config) { c.Sizes = nil },
			wantErr: true,
		},
		{
			name:    "zero size",
			mutate:  func(c *Config) { c.Sizes = []int{0} },
			wantErr: true,
		},
		{
			name:    "huge size",
			mutate:  func(c *Config) { c.Sizes = []int{16, MaxSize + 1} },
			wantErr: true,
		},
		{
			name:    "largest size",
			mutate:  func(c *Config) { c.Sizes = []int{MaxSize} },
			wantErr: false,
		},
		{
			name:    "duplicate size",
			mutate:  func(c *Config) { c.Sizes = []int{16, 16} },
			wantErr: true,
		},
		{
			name:    "unknown filter",
			mutate:  func(c *Config) { c.Resize.Filter = "bicubic" },
			wantErr: true,
		},
		{
			name:    "unknown fit",
			mutate:  func(c *Config) { c.Resize.Fit = "cover" },
			wantErr: true,
		},
		{
			name:    "short hex color",
			mutate:  func(c *Config) { c.Placeholder.Foreground = "#fff" },
			wantErr: false,
		},
		{
			name:    "bad background color",
			mutate:  func(c *Config) { c.Placeholder.Background = "blue" },
			wantErr: true,
		},
		{
			name:   "favicon without name",
			mutate: func(c *Config) {
				c.Favicon.Enabled = true
				c.Favicon.Name = ""
			},
			wantErr: true,
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.DebounceMS = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"16,48,128", []int{16, 48, 128}, false},
		{" 32 , 64 ", []int{32, 64}, false},
		{"256,", []int{256}, false},
		{"", nil, true},
		{"16,big", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSizes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSizes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvOutputDir, "dist/icons")
	t.Setenv(EnvSizes, "24,96")
	t.Setenv(EnvFilter, "Nearest")
	t.Setenv(EnvFavicon, "true")

	cfg := Default()
	if err := cfg.LoadEnv(""); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	if cfg.Output.Dir != "dist/icons" {
		t.Errorf("Expected output dir 'dist/icons', got '%s'", cfg.Output.Dir)
	}
	if len(cfg.Sizes) != 2 || cfg.Sizes[0] != 24 || cfg.Sizes[1] != 96 {
		t.Errorf("Expected sizes [24 96], got %v", cfg.Sizes)
	}
	if cfg.Resize.Filter != "nearest" {
		t.Errorf("Expected filter 'nearest', got '%s'", cfg.Resize.Filter)
	}
	if !cfg.Favicon.Enabled {
		t.Error("Expected favicon to be enabled")
	}
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(EnvFit+"=contain\n"), 0644); err != nil {
		t.Fatalf("Failed to create env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvFit) })

	cfg := Default()
	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	if cfg.Resize.Fit != FitContain {
		t.Errorf("Expected fit 'contain' from env file, got '%s'", cfg.Resize.Fit)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Missing env file should be ignored, got: %v", err)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv(EnvFavicon, "maybe")

	cfg := Default()
	if err := cfg.LoadEnv(""); err == nil {
		t.Error("Expected error for invalid favicon flag")
	}
}
