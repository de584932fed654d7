package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Resampling filters understood by the icon generator
var Filters = []string{"lanczos", "catmullrom", "mitchell", "linear", "box", "nearest"}

// Fit modes for non-square input
const (
	FitStretch = "stretch"
	FitContain = "contain"
)

// Environment variables read by LoadEnv
const (
	EnvOutputDir = "ICONFORGE_OUTPUT_DIR"
	EnvSizes     = "ICONFORGE_SIZES"
	EnvFilter    = "ICONFORGE_FILTER"
	EnvFit       = "ICONFORGE_FIT"
	EnvFavicon   = "ICONFORGE_FAVICON"
)

// MaxSize is the largest icon edge accepted by Validate
const MaxSize = 4096

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Config represents the icon generator configuration
type Config struct {
	Output      OutputConfig      `yaml:"output"`
	Sizes       []int             `yaml:"sizes"`
	Resize      ResizeConfig      `yaml:"resize"`
	Placeholder PlaceholderConfig `yaml:"placeholder"`
	Favicon     FaviconConfig     `yaml:"favicon"`
	Watch       WatchConfig       `yaml:"watch"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	NamePattern string `yaml:"name_pattern"`
}

type ResizeConfig struct {
	Filter string `yaml:"filter"`
	Fit    string `yaml:"fit"`
}

type PlaceholderConfig struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

type FaviconConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}

type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration: 16, 48 and 128 pixel icons
// written to public/icons with Lanczos resampling.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:         filepath.Join("public", "icons"),
			NamePattern: "icon%d.png",
		},
		Sizes: []int{16, 48, 128},
		Resize: ResizeConfig{
			Filter: "lanczos",
			Fit:    FitStretch,
		},
		Placeholder: PlaceholderConfig{
			Background: "#3b82f6",
			Foreground: "#ffffff",
		},
		Favicon: FaviconConfig{
			Name: "favicon.ico",
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Load reads the configuration file on top of the defaults.
// An empty path skips the file and keeps the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnv loads envFile (if it exists) into the process environment and
// applies ICONFORGE_* overrides. Variables already set in the environment
// win over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv(EnvSizes); v != "" {
		sizes, err := ParseSizes(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSizes, err)
		}
		c.Sizes = sizes
	}
	if v := os.Getenv(EnvFilter); v != "" {
		c.Resize.Filter = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFit); v != "" {
		c.Resize.Fit = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFavicon); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFavicon, err)
		}
		c.Favicon.Enabled = enabled
	}

	return c.Validate()
}

// Validate checks that the configuration can drive a generation run
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if err := validNamePattern(c.Output.NamePattern); err != nil {
		return err
	}
	if len(c.Sizes) == 0 {
		return fmt.Errorf("sizes must not be empty")
	}
	seen := make(map[int]bool, len(c.Sizes))
	for _, size := range c.Sizes {
		if size <= 0 {
			return fmt.Errorf("size %d must be positive", size)
		}
		if size > MaxSize {
			return fmt.Errorf("size %d exceeds the maximum of %d", size, MaxSize)
		}
		if seen[size] {
			return fmt.Errorf("size %d listed twice", size)
		}
		seen[size] = true
	}
	if !validFilter(c.Resize.Filter) {
		return fmt.Errorf("unknown resize.filter %q (want one of %s)", c.Resize.Filter, strings.Join(Filters, ", "))
	}
	if c.Resize.Fit != FitStretch && c.Resize.Fit != FitContain {
		return fmt.Errorf("unknown resize.fit %q (want %s or %s)", c.Resize.Fit, FitStretch, FitContain)
	}
	if !hexColorPattern.MatchString(c.Placeholder.Background) {
		return fmt.Errorf("placeholder.background %q is not a hex color", c.Placeholder.Background)
	}
	if !hexColorPattern.MatchString(c.Placeholder.Foreground) {
		return fmt.Errorf("placeholder.foreground %q is not a hex color", c.Placeholder.Foreground)
	}
	if c.Favicon.Enabled && c.Favicon.Name == "" {
		return fmt.Errorf("favicon.name is required when favicon is enabled")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}

// IconPath returns the output file path for an icon of the given size
func (c *Config) IconPath(size int) string {
	return filepath.Join(c.Output.Dir, fmt.Sprintf(c.Output.NamePattern, size))
}

// FaviconPath returns the output file path of the bundled favicon
func (c *Config) FaviconPath() string {
	return filepath.Join(c.Output.Dir, c.Favicon.Name)
}

// Debounce returns the quiet period used by watch mode
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// ParseSizes parses a comma separated size list such as "16,48,128"
func ParseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", part, err)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes in %q", s)
	}
	return sizes, nil
}

// validNamePattern formats two sample sizes and checks that the pattern
// yields distinct plain file names.
func validNamePattern(pattern string) error {
	one := fmt.Sprintf(pattern, 1)
	two := fmt.Sprintf(pattern, 2)
	switch {
	case strings.Contains(one, "%!"):
		return fmt.Errorf("output.name_pattern %q must take exactly one integer verb such as %%d", pattern)
	case one == two:
		return fmt.Errorf("output.name_pattern %q must include the size", pattern)
	case filepath.Base(one) != one || one == "." || one == "..":
		return fmt.Errorf("output.name_pattern %q must be a file name without directories", pattern)
	}
	return nil
}

func validFilter(name string) bool {
	for _, f := range Filters {
		if f == name {
			return true
		}
	}
	return false
}
