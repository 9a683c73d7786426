// Package config persists the non-secret client configuration to a JSON
// file in the user's OS config directory. The API token never lives here;
// it belongs to the vault.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/snipstash/snipstash/internal/apperrors"
)

// DefaultPageSize is used for listings when the config file sets none.
const DefaultPageSize = 20

const fileName = "config.json"

// Config holds the persisted client settings.
type Config struct {
	// ServerURL is the base URL of the snippet server, without a trailing slash.
	ServerURL string `mapstructure:"server_url"`
	// DefaultPageSize is the page size used when a listing does not specify one.
	DefaultPageSize int `mapstructure:"default_page_size"`
}

// Store reads and writes the config file. A Store is handed to whoever
// needs configuration; nothing reads the file through package globals.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir selects the
// per-user OS convention location (os.UserConfigDir()/snipstash).
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfig, "could not resolve user config directory", err)
		}
		dir = filepath.Join(base, "snipstash")
	}
	return &Store{dir: dir}, nil
}

// Path returns the location of the config file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load reads the config file. A missing file is not an error: defaults
// are returned so the caller can proceed to login. Read or parse
// failures surface as KindConfig.
func (s *Store) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(s.Path())
	v.SetConfigType("json")
	v.SetDefault("default_page_size", DefaultPageSize)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{DefaultPageSize: DefaultPageSize}, nil
		}
		return nil, apperrors.Wrap(apperrors.KindConfig, "could not read config file "+s.Path(), err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfig, "could not parse config file "+s.Path(), err)
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = DefaultPageSize
	}
	return &c, nil
}

// Save writes the config file, creating the directory as needed. The file
// is chmodded 0600 since the directory may be shared. Concurrent
// invocations are not coordinated; the last writer wins.
func (s *Store) Save(c *Config) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return apperrors.Wrap(apperrors.KindConfig, "could not create config directory "+s.dir, err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("server_url", c.ServerURL)
	v.Set("default_page_size", c.DefaultPageSize)

	if err := v.WriteConfigAs(s.Path()); err != nil {
		return apperrors.Wrap(apperrors.KindConfig, "could not write config file "+s.Path(), err)
	}
	if err := os.Chmod(s.Path(), 0o600); err != nil {
		return apperrors.Wrap(apperrors.KindConfig, "could not restrict config file permissions", err)
	}
	return nil
}
