package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name: "full config",
			config: Config{
				WorkspaceID:  "ws-1",
				Linkify:      boolPtr(false),
				Theme:        "monokai",
				OutputFormat: "json",
				LineHeight:   18,
				CharWidth:    8,
				WrapWidth:    100,
			},
		},
		{
			name:    "unknown theme",
			config:  Config{Theme: "no-such-theme"},
			wantErr: true,
			errMsg:  "unknown theme",
		},
		{
			name:    "invalid output format",
			config:  Config{OutputFormat: "xml"},
			wantErr: true,
			errMsg:  "invalid output format",
		},
		{
			name:    "negative line height",
			config:  Config{LineHeight: -1},
			wantErr: true,
			errMsg:  "line_height",
		},
		{
			name:    "negative char width",
			config:  Config{CharWidth: -1},
			wantErr: true,
			errMsg:  "char_width",
		},
		{
			name:    "negative wrap width",
			config:  Config{WrapWidth: -1},
			wantErr: true,
			errMsg:  "wrap_width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.LinkifyEnabled())
	assert.Equal(t, "github", cfg.ThemeName())

	opts := cfg.LayoutOptions()
	assert.Equal(t, float32(DefaultCharWidth), opts.CellWidth)
	assert.Equal(t, float32(DefaultLineHeight), opts.LineHeight)
	assert.Zero(t, opts.Columns)

	theme := cfg.RenderTheme()
	assert.Equal(t, "monospace", theme.InlineCode.FontFamily)
}

func TestConfig_DocumentOptions(t *testing.T) {
	logger := log.New(os.Stderr, "", 0)
	cfg := &Config{WorkspaceID: "ws", Linkify: boolPtr(false), Theme: "dracula"}

	opts := cfg.DocumentOptions(logger)
	assert.False(t, opts.CodeTokenLinks.Enabled)
	assert.Equal(t, "ws", opts.CodeTokenLinks.WorkspaceID)
	assert.Equal(t, "dracula", opts.HighlightTheme)
	assert.Same(t, logger, opts.Logger)
	assert.True(t, opts.Math)
	assert.True(t, opts.FrontMatter)
}

func TestConfig_RenderTheme_CodeFont(t *testing.T) {
	cfg := &Config{InlineCodeFont: "Iosevka"}
	theme := cfg.RenderTheme()
	assert.Equal(t, "Iosevka", theme.InlineCode.FontFamily)
	assert.Equal(t, "Iosevka", theme.CodeFont)
}

func TestConfig_Check(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"defaults", Config{}},
		{"other theme", Config{Theme: "monokai"}},
		{"linkify disabled", Config{Linkify: boolPtr(false)}},
		{"workspace", Config{WorkspaceID: "ws-1", Theme: "dracula"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.config.Check())
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range EnvVars {
		t.Setenv(v, "")
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MDT_WORKSPACE_ID", "env-ws")
		t.Setenv("MDT_LINKIFY", "false")
		t.Setenv("MDT_THEME", "monokai")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "env-ws", cfg.WorkspaceID)
		require.NotNil(t, cfg.Linkify)
		assert.False(t, *cfg.Linkify)
		assert.Equal(t, "monokai", cfg.Theme)
	})

	t.Run("empty env vars keep existing values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MDT_THEME", "nord")

		cfg := &Config{WorkspaceID: "file-ws", Theme: "github"}
		cfg.LoadFromEnv()

		assert.Equal(t, "file-ws", cfg.WorkspaceID)
		assert.Equal(t, "nord", cfg.Theme)
		assert.Nil(t, cfg.Linkify)
	})

	t.Run("invalid bool ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MDT_LINKIFY", "maybe")

		cfg := &Config{Linkify: boolPtr(true)}
		cfg.LoadFromEnv()
		assert.True(t, *cfg.Linkify)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "mdt", "config.yml"), DefaultConfigPath())
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		path := DefaultConfigPath()

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "mdt")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		WorkspaceID:    "ws-42",
		Linkify:        boolPtr(false),
		Theme:          "monokai",
		OutputFormat:   "json",
		LineHeight:     22,
		CharWidth:      9,
		WrapWidth:      72,
		InlineCodeFont: "Fira Code",
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MDT_WORKSPACE_ID", "from-env")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.WorkspaceID)
}
