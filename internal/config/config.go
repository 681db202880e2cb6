// Package config loads the runtime settings of the hito commands from
// defaults, an optional hito.yaml, .env files and HITO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/iomz/hito/hito/store"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "HITO"

// Settings is the resolved runtime configuration
type Settings struct {
	// Store is the config document path; empty selects the user config directory
	Store string `mapstructure:"store" json:"store" yaml:"store"`

	// DataFile overrides the sidecar file name inside image directories
	DataFile string `mapstructure:"data_file" json:"data_file" yaml:"data_file"`

	Scan   ScanSettings   `mapstructure:"scan" json:"scan" yaml:"scan"`
	Server ServerSettings `mapstructure:"server" json:"server" yaml:"server"`
	Log    LogSettings    `mapstructure:"log" json:"log" yaml:"log"`
}

type ScanSettings struct {
	MinSize uint64 `mapstructure:"min_size" json:"min_size" yaml:"min_size"`
}

type ServerSettings struct {
	Addr            string `mapstructure:"addr" json:"addr" yaml:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type LogSettings struct {
	Level    string              `mapstructure:"level" json:"level" yaml:"level"`
	File     string              `mapstructure:"file" json:"file" yaml:"file"`
	JSON     bool                `mapstructure:"json" json:"json" yaml:"json"`
	Verbose  bool                `mapstructure:"verbose" json:"verbose" yaml:"verbose"`
	Rotation LogRotationSettings `mapstructure:"rotation" json:"rotation" yaml:"rotation"`
}

type LogRotationSettings struct {
	MaxSize    int  `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress   bool `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// searchPaths are tried in order when no config file is given
var searchPaths = []string{".", "$HOME/.hito", "/etc/hito"}

var envFiles = []string{".env", ".env.local"}

// NewViper returns a viper instance with defaults and environment binding
// applied, ready for flags to be bound to it
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and .env files into v and returns the
// resolved settings. path selects an explicit config file; when empty
// hito.yaml is searched for and may be absent.
func Load(v *viper.Viper, path string) (*Settings, error) {
	// Existing environment variables win over .env entries
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}

	if path != "" {
		v.SetConfigFile(path)
		for _, envFile := range envFiles {
			_ = godotenv.Load(filepath.Join(filepath.Dir(path), envFile))
		}
	} else {
		v.SetConfigName("hito")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Settings{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check
func (s *Settings) Validate() error {
	if _, err := s.ShutdownTimeout(); err != nil {
		return err
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (debug, info, warn, error)", s.Log.Level)
	}
	return nil
}

// ShutdownTimeout parses server.shutdown_timeout
func (s *Settings) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(s.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.shutdown_timeout %q: %w", s.Server.ShutdownTimeout, err)
	}
	return d, nil
}

// StorePath returns the config document path, falling back to the user config directory
func (s *Settings) StorePath() (string, error) {
	if s.Store != "" {
		return s.Store, nil
	}
	return store.DefaultConfigPath()
}
