package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pageview/pkg/cache"
	"github.com/matzehuels/pageview/pkg/errors"
	"github.com/matzehuels/pageview/pkg/store"
)

// config holds the user settings loaded from config.toml.
type config struct {
	Server struct {
		// Addr is the default listen address for the serve command.
		Addr string `toml:"addr"`
	} `toml:"server"`

	Cache struct {
		// Backend selects the render cache: "file" (default), "memory",
		// "redis" or "none".
		Backend string `toml:"backend"`
		// Dir overrides the file cache directory.
		Dir string `toml:"dir"`
		// RedisAddr is the Redis address for the redis backend.
		RedisAddr string `toml:"redis_addr"`
	} `toml:"cache"`

	Snapshots struct {
		// Backend selects the snapshot store: "file" (default) or "mongo".
		Backend string `toml:"backend"`
		// Dir overrides the file store directory.
		Dir string `toml:"dir"`
		// MongoURI is the MongoDB connection string for the mongo backend.
		MongoURI string `toml:"mongo_uri"`
		// MongoDatabase is the database name, default "pageview".
		MongoDatabase string `toml:"mongo_database"`
	} `toml:"snapshots"`
}

func defaultConfig() *config {
	cfg := &config{}
	cfg.Server.Addr = ":8080"
	cfg.Cache.Backend = "file"
	cfg.Snapshots.Backend = "file"
	cfg.Snapshots.MongoDatabase = appName
	return cfg
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields the defaults.
func loadConfig(path string) (*config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// newCache builds the render cache selected by the config. noCache
// forces the null cache regardless of configuration.
func (c *config) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Cache.Backend {
	case "", "file":
		dir := c.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
}

// newStore builds the snapshot store selected by the config.
func (c *config) newStore(ctx context.Context) (store.Store, error) {
	switch c.Snapshots.Backend {
	case "", "file":
		dir := c.Snapshots.Dir
		if dir == "" {
			base, err := dataDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "snapshots")
		}
		return store.NewFileStore(dir)
	case "mongo":
		return store.NewMongoStore(ctx, c.Snapshots.MongoURI, c.Snapshots.MongoDatabase)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown snapshot backend %q", c.Snapshots.Backend)
	}
}

// configDir returns the config directory using XDG standard (~/.config/pageview/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pageview/).
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

// dataDir returns the data directory using XDG standard (~/.local/share/pageview/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
