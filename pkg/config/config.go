// Package config loads bookfinder settings from an optional TOML file,
// BOOKFINDER_* environment variables and command-line flags, in increasing
// order of precedence. A missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/sources"
)

type Config struct {
	SearchURL         string        `mapstructure:"search_url"`
	CoversURL         string        `mapstructure:"covers_url"`
	GridPlaceholder   string        `mapstructure:"grid_placeholder"`
	DetailPlaceholder string        `mapstructure:"detail_placeholder"`
	RenderCovers      bool          `mapstructure:"render_covers"`
	Timeout           time.Duration `mapstructure:"timeout"`
	CoverRate         float64       `mapstructure:"cover_rate"`
	LogFile           string        `mapstructure:"log_file"`
	LogLevel          string        `mapstructure:"log_level"`
}

const (
	appName          = "bookfinder"
	envPrefix        = "BOOKFINDER"
	defaultTimeout   = 15 * time.Second
	defaultCoverRate = 4.0
	defaultLogLevel  = "info"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		SearchURL:         sources.DefaultSearchURL,
		CoversURL:         covers.DefaultBaseURL,
		GridPlaceholder:   covers.DefaultGridPlaceholder,
		DetailPlaceholder: covers.DefaultDetailPlaceholder,
		RenderCovers:      true,
		Timeout:           defaultTimeout,
		CoverRate:         defaultCoverRate,
		LogFile:           defaultLogFile(),
		LogLevel:          defaultLogLevel,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the config file at path (DefaultPath when empty) and overlays
// environment variables and any of flags that were set.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		var err error
		if resolved, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}
	resolved, err := expandPath(resolved)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	def := Default()
	v.SetDefault("search_url", def.SearchURL)
	v.SetDefault("covers_url", def.CoversURL)
	v.SetDefault("grid_placeholder", def.GridPlaceholder)
	v.SetDefault("detail_placeholder", def.DetailPlaceholder)
	v.SetDefault("render_covers", def.RenderCovers)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("cover_rate", def.CoverRate)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(resolved)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case errors.As(err, &parseErr):
			return Config{}, fmt.Errorf("parse config: %w", err)
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.normalize(def), nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for key, name := range map[string]string{
		"log_file":   "log-file",
		"log_level":  "log-level",
		"search_url": "search-url",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	if f := flags.Lookup("no-covers"); f != nil && f.Changed {
		off, err := flags.GetBool("no-covers")
		if err != nil {
			return fmt.Errorf("read flag no-covers: %w", err)
		}
		if off {
			v.Set("render_covers", false)
		}
	}
	return nil
}

func (c Config) normalize(def Config) Config {
	c.SearchURL = orDefault(c.SearchURL, def.SearchURL)
	c.CoversURL = orDefault(c.CoversURL, def.CoversURL)
	c.GridPlaceholder = orDefault(c.GridPlaceholder, def.GridPlaceholder)
	c.DetailPlaceholder = orDefault(c.DetailPlaceholder, def.DetailPlaceholder)
	c.LogLevel = orDefault(c.LogLevel, def.LogLevel)
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.CoverRate < 0 {
		c.CoverRate = 0
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile != "" {
		if expanded, err := expandPath(c.LogFile); err == nil {
			c.LogFile = expanded
		}
	}
	return c
}

// TOML renders the configuration in the format Load reads.
func (c Config) TOML() (string, error) {
	out, err := toml.Marshal(struct {
		SearchURL         string  `toml:"search_url"`
		CoversURL         string  `toml:"covers_url"`
		GridPlaceholder   string  `toml:"grid_placeholder"`
		DetailPlaceholder string  `toml:"detail_placeholder"`
		RenderCovers      bool    `toml:"render_covers"`
		Timeout           string  `toml:"timeout"`
		CoverRate         float64 `toml:"cover_rate"`
		LogFile           string  `toml:"log_file"`
		LogLevel          string  `toml:"log_level"`
	}{
		SearchURL:         c.SearchURL,
		CoversURL:         c.CoversURL,
		GridPlaceholder:   c.GridPlaceholder,
		DetailPlaceholder: c.DetailPlaceholder,
		RenderCovers:      c.RenderCovers,
		Timeout:           c.Timeout.String(),
		CoverRate:         c.CoverRate,
		LogFile:           c.LogFile,
		LogLevel:          c.LogLevel,
	})
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, appName+".log")
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
