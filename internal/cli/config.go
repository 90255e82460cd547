package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dotforge/dotforge/pkg/backend"
	"github.com/dotforge/dotforge/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "dotforge"

// Config holds user preferences loaded from the TOML config file.
// Flags override config values, which override built-in defaults.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Backend BackendConfig `toml:"backend"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// RenderConfig holds default render parameters.
type RenderConfig struct {
	Engine string `toml:"engine"`
	Format string `toml:"format"`
}

// BackendConfig holds paths to the Graphviz executables.
type BackendConfig struct {
	Dot       string `toml:"dot"`
	Unflatten string `toml:"unflatten"`
}

// CacheConfig holds render cache settings.
type CacheConfig struct {
	Enabled   *bool  `toml:"enabled"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	enabled := true
	return Config{
		Render: RenderConfig{
			Engine: pipeline.DefaultEngine,
			Format: pipeline.DefaultFormat,
		},
		Backend: BackendConfig{
			Dot:       backend.DefaultDotBinary,
			Unflatten: backend.DefaultUnflattenBinary,
		},
		Cache: CacheConfig{Enabled: &enabled},
	}
}

// configPath returns the config file location, honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; defaults are returned.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	// An empty value in the file falls back to the default.
	def := defaultConfig()
	if cfg.Render.Engine == "" {
		cfg.Render.Engine = def.Render.Engine
	}
	if cfg.Render.Format == "" {
		cfg.Render.Format = def.Render.Format
	}
	if cfg.Backend.Dot == "" {
		cfg.Backend.Dot = def.Backend.Dot
	}
	if cfg.Backend.Unflatten == "" {
		cfg.Backend.Unflatten = def.Backend.Unflatten
	}
	if cfg.Cache.Enabled == nil {
		cfg.Cache.Enabled = def.Cache.Enabled
	}
	return cfg, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dotforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
