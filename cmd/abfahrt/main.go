package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mobil-koeln/abfahrt/internal/api"
	"github.com/mobil-koeln/abfahrt/internal/cache"
	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/output"
	"github.com/mobil-koeln/abfahrt/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "abfahrt",
	Short: "Live departures for Munich public transport in your terminal",
	Long: `abfahrt shows live departure boards of MVG stations
(U-Bahn, S-Bahn, tram and bus) from the mvg.de API.

Quick Start:
  1. Launch the dashboard:     abfahrt (or abfahrt tui)
  2. Find a station:           abfahrt stations marienplatz
  3. Show its departures:      abfahrt departures de:09162:2
  4. Keep them on screen:      abfahrt departures de:09162:2 --watch`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig  string
	flagJSON    bool
	flagRawJSON bool
	flagColor   string
	flagNoCache bool
)

// Departures flags
var (
	flagLine     string
	flagLimit    int
	flagWatch    bool
	flagOperator bool
)

// cfg is resolved before any command runs
var cfg appConfig

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePruneCmd)

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.config/abfahrt/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Do not cache the station list")

	departuresCmd.Flags().StringVarP(&flagLine, "line", "l", "", "Only show this line (e.g. U3, 132)")
	departuresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Number of departures to request")
	departuresCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh on the auto-refresh interval")
	departuresCmd.Flags().BoolVar(&flagOperator, "operator", false, "Show the operator of each departure")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(flagConfig, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// createClient creates an API client from the resolved configuration
func createClient() (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithDepartureLimit(cfg.DepartureLimit),
	}
	if flagLimit > 0 {
		opts = append(opts, api.WithDepartureLimit(flagLimit))
	}

	// Only the station directory is cached
	if !cfg.NoCache {
		opts = append(opts, api.WithDefaultCache(cfg.StationCacheTTL))
	}

	return api.NewClient(opts...)
}

func colors() *output.Colors {
	return output.NewColors(output.ParseColorMode(cfg.Color))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive departure dashboard.

Keys:
  Tab          Switch between Home and Stations
  j/k, ↓/↑     Move through the station list (wraps around)
  Enter        Show departures of the highlighted station
  /            Filter stations, Esc clears the filter
  r            Refresh departures (Home) or the station list (Stations)
  a            Toggle auto-refresh
  1-4          Show/hide U-Bahn, S-Bahn, tram, bus departures
  ?            Full help
  q            Quit

Diagnostics are written to ~/.local/state/abfahrt/abfahrt.log.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cleanup := configureRuntimeLogger(cfg.LogFile)
	defer cleanup()

	client, err := createClient()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	log.Printf("starting abfahrt %s (base url %s)", version, cfg.BaseURL)

	model := tui.New(client, tui.Options{
		AutoRefresh:         cfg.AutoRefresh,
		AutoRefreshInterval: cfg.AutoRefreshInterval,
		Timeout:             cfg.Timeout,
		Logger:              log.Default(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

var stationsCmd = &cobra.Command{
	Use:   "stations [query]",
	Short: "List or search stations",
	Long: `List MVG stations, optionally filtered by a case-insensitive
match on the station name or place.

Examples:
  abfahrt stations                 # All stations
  abfahrt stations tor             # Sendlinger Tor, Isartor, ...
  abfahrt stations freising --json # JSON for scripting`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStations,
}

func runStations(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.TrimSpace(strings.Join(args, " "))

	client, err := createClient()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	if flagRawJSON {
		raw, err := client.GetStationsRaw(ctx)
		if err != nil {
			return err
		}
		return printPrettyJSON(os.Stdout, raw)
	}

	var stations []models.Station
	if query == "" {
		stations, err = client.GetStations(ctx)
	} else {
		stations, err = client.SearchStations(ctx, query)
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(os.Stdout, stations)
	}

	output.RenderStations(os.Stdout, stations, output.TableOptions{Colors: colors()})
	return nil
}

var departuresCmd = &cobra.Command{
	Use:   "departures <station-id>",
	Short: "Show live departures at a station",
	Long: `Show the live departure board of a station.

The station is given by its MVG global id, e.g. de:09162:2 for Marienplatz.
Use 'abfahrt stations <name>' to find station ids.

Examples:
  abfahrt departures de:09162:2
  abfahrt departures de:09162:2 --line U3
  abfahrt departures de:09162:2 --watch
  abfahrt departures de:09162:2 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDepartures,
}

func runDepartures(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	stationID := strings.TrimSpace(args[0])

	client, err := createClient()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	render := func(w io.Writer) error {
		deps, err := client.GetDepartures(ctx, stationID)
		if err != nil {
			return err
		}
		output.RenderDepartures(w, output.FilterByLine(deps, flagLine), output.TableOptions{
			Colors:       colors(),
			Header:       true,
			ShowOperator: flagOperator,
		})
		return nil
	}

	if flagWatch {
		watchCtx, cancel := output.WithSignals(ctx)
		defer cancel()
		return output.Watch(watchCtx, os.Stdout, cfg.AutoRefreshInterval, render)
	}

	if flagRawJSON {
		raw, err := client.GetDeparturesRaw(ctx, stationID)
		if err != nil {
			return err
		}
		return printPrettyJSON(os.Stdout, raw)
	}

	if flagJSON {
		deps, err := client.GetDepartures(ctx, stationID)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, output.FilterByLine(deps, flagLine))
	}

	return render(os.Stdout)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the station list cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), cfg.StationCacheTTL)
		if err != nil {
			return err
		}
		n, err := fc.Clear()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries from %s\n", n, fc.Dir())
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cached responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), cfg.StationCacheTTL)
		if err != nil {
			return err
		}
		n, err := fc.Cleanup()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
		return nil
	},
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPrettyJSON(w io.Writer, data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		_, _ = fmt.Fprintln(w, string(data))
		return err
	}
	return printJSON(w, prettyJSON)
}
