// Package config provides configuration management for mdt.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/document"
	"github.com/open-cli-collective/mdt/pkg/highlight"
	"github.com/open-cli-collective/mdt/pkg/layout"
	"github.com/open-cli-collective/mdt/pkg/render"
)

// Defaults applied to unset fields.
const (
	DefaultLineHeight = 20
	DefaultCharWidth  = 10
)

// Config holds the mdt configuration.
type Config struct {
	// WorkspaceID lets relative file references in inline code become links.
	WorkspaceID    string  `yaml:"workspace_id,omitempty"`
	Linkify        *bool   `yaml:"linkify,omitempty"`
	Theme          string  `yaml:"theme,omitempty"`
	OutputFormat   string  `yaml:"output_format,omitempty"`
	LineHeight     float32 `yaml:"line_height,omitempty"`
	CharWidth      float32 `yaml:"char_width,omitempty"`
	WrapWidth      int     `yaml:"wrap_width,omitempty"`
	InlineCodeFont string  `yaml:"inline_code_font,omitempty"`
}

// Validate checks that all set fields are valid.
func (c *Config) Validate() error {
	if c.Theme != "" && !slices.Contains(highlight.Themes(), c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.LineHeight < 0 {
		return errors.New("line_height must not be negative")
	}
	if c.CharWidth < 0 {
		return errors.New("char_width must not be negative")
	}
	if c.WrapWidth < 0 {
		return errors.New("wrap_width must not be negative")
	}
	return nil
}

// LinkifyEnabled reports whether inline code tokens become links. It
// defaults to true.
func (c *Config) LinkifyEnabled() bool {
	return c.Linkify == nil || *c.Linkify
}

// ThemeName returns the highlight theme, or the default one.
func (c *Config) ThemeName() string {
	if c.Theme == "" {
		return highlight.DefaultTheme
	}
	return c.Theme
}

// DocumentOptions returns the parse options described by the config.
// Warnings are logged to logger when it is not nil.
func (c *Config) DocumentOptions(logger *log.Logger) document.Options {
	opts := document.DefaultOptions()
	opts.CodeTokenLinks = document.CodeTokenLinks{
		Enabled:     c.LinkifyEnabled(),
		WorkspaceID: c.WorkspaceID,
	}
	opts.HighlightTheme = c.ThemeName()
	opts.Logger = logger
	return opts
}

// RenderTheme returns the paint theme with the configured code font.
func (c *Config) RenderTheme() render.Theme {
	theme := render.DefaultTheme()
	if c.InlineCodeFont != "" {
		theme.InlineCode.FontFamily = c.InlineCodeFont
		theme.CodeFont = c.InlineCodeFont
	}
	return theme
}

// LayoutOptions returns the grid used to place text for selections.
func (c *Config) LayoutOptions() layout.Options {
	opts := layout.Options{
		CellWidth:  c.CharWidth,
		LineHeight: c.LineHeight,
		Columns:    c.WrapWidth,
	}
	if opts.CellWidth == 0 {
		opts.CellWidth = DefaultCharWidth
	}
	if opts.LineHeight == 0 {
		opts.LineHeight = DefaultLineHeight
	}
	return opts
}

const sampleDocument = "# Sample\n\nOpen `/tmp/sample.go:1` or https://example.com.\n\n```go\nfunc main() {}\n```\n"

// Check parses a sample document with the settings and verifies that the
// theme highlights code and that inline code linkification behaves as
// configured.
func (c *Config) Check() error {
	doc, err := document.Parse(sampleDocument, c.DocumentOptions(nil))
	if err != nil {
		return err
	}
	if len(doc.Warnings) > 0 {
		return fmt.Errorf("sample degraded: %s", doc.Warnings[0])
	}

	highlighted := false
	for _, b := range doc.Blocks {
		if cb, ok := b.(*document.CodeBlock); ok && len(cb.Highlights) > 0 {
			highlighted = true
		}
	}
	if !highlighted {
		return fmt.Errorf("theme %q produced no highlights", c.ThemeName())
	}

	linked := false
	for _, l := range doc.Links() {
		if l.Target.RequiresModifiers {
			linked = true
		}
	}
	if linked != c.LinkifyEnabled() {
		return fmt.Errorf("inline code linkification is %t, want %t", linked, c.LinkifyEnabled())
	}
	return nil
}

// EnvVars lists the environment variables read by LoadFromEnv.
var EnvVars = []string{"MDT_WORKSPACE_ID", "MDT_LINKIFY", "MDT_THEME"}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and valid.
func (c *Config) LoadFromEnv() {
	if id := os.Getenv("MDT_WORKSPACE_ID"); id != "" {
		c.WorkspaceID = id
	}
	if v := os.Getenv("MDT_LINKIFY"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Linkify = &enabled
		}
	}
	if theme := os.Getenv("MDT_THEME"); theme != "" {
		c.Theme = theme
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdt", "config.yml")
	}

	// Fall back to ~/.config/mdt/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdt", "config.yml")
	}

	return filepath.Join(home, ".config", "mdt", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
