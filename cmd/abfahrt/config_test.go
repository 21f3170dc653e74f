package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/mobil-koeln/abfahrt/internal/api"
	"github.com/mobil-koeln/abfahrt/internal/testutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"), nil)
	testutil.AssertNil(t, err)

	testutil.AssertEqual(t, cfg.BaseURL, api.BaseURL)
	testutil.AssertEqual(t, cfg.Timeout, defaultTimeout)
	testutil.AssertEqual(t, cfg.StationCacheTTL, defaultStationCacheTTL)
	testutil.AssertEqual(t, cfg.DepartureLimit, api.DefaultDepartureLimit)
	testutil.AssertEqual(t, cfg.AutoRefreshInterval, defaultAutoRefreshInterval)
	testutil.AssertEqual(t, cfg.Color, "auto")
	testutil.AssertFalse(t, cfg.AutoRefresh)
	testutil.AssertFalse(t, cfg.NoCache)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
base-url: http://localhost:8080
timeout: 2s
departure-limit: 8
auto-refresh: true
auto-refresh-interval: 1m
color: never
`)

	cfg, err := loadConfig(path, nil)
	testutil.AssertNil(t, err)

	testutil.AssertEqual(t, cfg.BaseURL, "http://localhost:8080")
	testutil.AssertEqual(t, cfg.Timeout, 2*time.Second)
	testutil.AssertEqual(t, cfg.DepartureLimit, 8)
	testutil.AssertTrue(t, cfg.AutoRefresh)
	testutil.AssertEqual(t, cfg.AutoRefreshInterval, time.Minute)
	testutil.AssertEqual(t, cfg.Color, "never")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "departure-limit: 8\n")
	t.Setenv("ABFAHRT_DEPARTURE_LIMIT", "12")
	t.Setenv("ABFAHRT_STATION_CACHE_TTL", "6h")

	cfg, err := loadConfig(path, nil)
	testutil.AssertNil(t, err)

	testutil.AssertEqual(t, cfg.DepartureLimit, 12)
	testutil.AssertEqual(t, cfg.StationCacheTTL, 6*time.Hour)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	path := writeConfig(t, "color: always\nno-cache: false\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("color", "auto", "")
	flags.Bool("no-cache", false, "")
	testutil.AssertNil(t, flags.Parse([]string{"--color=never", "--no-cache"}))

	cfg, err := loadConfig(path, flags)
	testutil.AssertNil(t, err)

	testutil.AssertEqual(t, cfg.Color, "never")
	testutil.AssertTrue(t, cfg.NoCache)
}

func TestLoadConfig_UnsetFlagKeepsFile(t *testing.T) {
	path := writeConfig(t, "color: always\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("color", "auto", "")

	cfg, err := loadConfig(path, flags)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, cfg.Color, "always")
}

func TestLoadConfig_ClampsInvalidValues(t *testing.T) {
	path := writeConfig(t, "timeout: 0s\nauto-refresh-interval: 1s\ndeparture-limit: -3\n")

	cfg, err := loadConfig(path, nil)
	testutil.AssertNil(t, err)

	testutil.AssertEqual(t, cfg.Timeout, defaultTimeout)
	testutil.AssertEqual(t, cfg.AutoRefreshInterval, defaultAutoRefreshInterval)
	testutil.AssertEqual(t, cfg.DepartureLimit, api.DefaultDepartureLimit)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "timeout: [\n")
	_, err := loadConfig(path, nil)
	testutil.AssertError(t, err)
}
