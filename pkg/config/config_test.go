package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	return home
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-file", "", "")
	flags.String("log-level", "", "")
	flags.String("search-url", "", "")
	flags.Bool("no-covers", false, "")
	return flags
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"), nil)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def, cfg)
	assert.Equal(t, "https://openlibrary.org/search.json", cfg.SearchURL)
	assert.True(t, cfg.RenderCovers)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, strings.HasPrefix(cfg.LogFile, home), "log file %q should live under HOME", cfg.LogFile)
}

func TestLoad_DefaultPath(t *testing.T) {
	home := isolate(t)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "bookfinder", "config.toml"), path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "debug"`), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, `
search_url = "  http://localhost:9999/search.json  "
covers_url = "http://covers.local"
render_covers = false
timeout = "3s"
cover_rate = 0.5
log_file = "~/logs/bf.log"
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/search.json", cfg.SearchURL)
	assert.Equal(t, "http://covers.local", cfg.CoversURL)
	assert.False(t, cfg.RenderCovers)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 0.5, cfg.CoverRate)
	assert.Equal(t, filepath.Join(home, "logs", "bf.log"), cfg.LogFile)
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
search_url = "   "
covers_url = ""
timeout = "0s"
cover_rate = -1.0
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.SearchURL, cfg.SearchURL)
	assert.Equal(t, def.CoversURL, cfg.CoversURL)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, 0.0, cfg.CoverRate)
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `search_url = [`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `log_level = "warn"`)
	t.Setenv("BOOKFINDER_LOG_LEVEL", "debug")
	t.Setenv("BOOKFINDER_TIMEOUT", "45s")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
log_level = "warn"
render_covers = true
`)
	t.Setenv("BOOKFINDER_LOG_LEVEL", "error")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "trace", "--no-covers", "--search-url", "http://x/search.json"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.False(t, cfg.RenderCovers)
	assert.Equal(t, "http://x/search.json", cfg.SearchURL)
}

func TestLoad_UnsetFlagsKeepFileValues(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `log_level = "warn"`)

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.RenderCovers)
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Timeout = 90 * time.Second
	cfg.RenderCovers = false

	out, err := cfg.TOML()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &raw))
	assert.Equal(t, "1m30s", raw["timeout"])
	assert.Equal(t, false, raw["render_covers"])

	path := writeConfig(t, out)
	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	got, err := expandPath("~/a/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a/b"), got)

	_, err = expandPath("   ")
	assert.Error(t, err)
}
