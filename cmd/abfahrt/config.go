package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mobil-koeln/abfahrt/internal/api"
)

const (
	defaultTimeout             = 5 * time.Second
	defaultStationCacheTTL     = 24 * time.Hour
	defaultAutoRefreshInterval = 30 * time.Second
)

// appConfig holds the settings shared by all commands.
type appConfig struct {
	BaseURL             string        `mapstructure:"base-url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	StationCacheTTL     time.Duration `mapstructure:"station-cache-ttl"`
	DepartureLimit      int           `mapstructure:"departure-limit"`
	AutoRefresh         bool          `mapstructure:"auto-refresh"`
	AutoRefreshInterval time.Duration `mapstructure:"auto-refresh-interval"`
	Color               string        `mapstructure:"color"`
	LogFile             string        `mapstructure:"log-file"`
	NoCache             bool          `mapstructure:"no-cache"`
}

// loadConfig merges defaults, the config file, ABFAHRT_* environment
// variables and explicitly set flags, in increasing precedence. A missing
// config file is not an error.
func loadConfig(configPath string, flags *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix("ABFAHRT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("base-url", api.BaseURL)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("station-cache-ttl", defaultStationCacheTTL)
	v.SetDefault("departure-limit", api.DefaultDepartureLimit)
	v.SetDefault("auto-refresh", false)
	v.SetDefault("auto-refresh-interval", defaultAutoRefreshInterval)
	v.SetDefault("color", "auto")
	v.SetDefault("log-file", "")
	v.SetDefault("no-cache", false)

	if flags != nil {
		for _, name := range []string{"color", "no-cache"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return cfg, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "abfahrt", "config.yml"))
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.AutoRefreshInterval < 5*time.Second {
		cfg.AutoRefreshInterval = defaultAutoRefreshInterval
	}
	if cfg.DepartureLimit <= 0 {
		cfg.DepartureLimit = api.DefaultDepartureLimit
	}

	return cfg, nil
}
