package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"covidtrack/internal/config"
	"covidtrack/internal/database"
	"covidtrack/internal/pipeline"
	"covidtrack/internal/query"
	"covidtrack/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "covidtrack",
	Short:   "COVID-19 snapshot ingestion and aggregation",
	Long:    "covidtrack ingests daily case-count snapshots, derives a place hierarchy, and answers aggregation queries over both.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("covidtrack", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/covidtrack/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your daily report directory.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		latest, err := db.LatestDate()
		if err != nil {
			return fmt.Errorf("getting latest date: %w", err)
		}

		fmt.Println("Canonical store:")
		fmt.Printf("  Data points: %d\n", stats.DataPoints)
		fmt.Printf("  Days: %d\n", stats.Days)
		if latest != "" {
			fmt.Printf("  Latest date: %s\n", latest)
		}
		fmt.Println("\nPlace hierarchy:")
		fmt.Printf("  Continents: %d\n", stats.Continents)
		fmt.Printf("  Countries: %d\n", stats.Countries)
		fmt.Printf("  States: %d\n", stats.States)
		fmt.Printf("  Counties: %d\n", stats.Counties)
		return nil
	},
}

// --- ingest command ---

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest daily snapshots and rebuild the place hierarchy",
	Long:  "Ingest reads every daily report in the configured span into the store, then derives the place hierarchy. Both passes are idempotent; re-running skips days already present.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		// Ctrl+C between days stops cleanly; committed batches survive.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result := pipeline.New(cfg, db).Run(ctx)
		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/2: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}
		for _, step := range result.Steps {
			if step.Err != nil {
				return fmt.Errorf("%s step failed", strings.ToLower(step.Name))
			}
		}
		return nil
	},
}

// --- query command ---

var queryFlags struct {
	date      string
	start     string
	end       string
	continent string
	country   string
	state     string
	county    string
	breakdown bool
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query aggregated totals",
	Long:  "Query computes cumulative totals for a date (or the latest ingested day), or the delta over a date range, optionally narrowed to a place and expanded into a hierarchical breakdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		f := query.Filter{
			Date:      queryFlags.date,
			Start:     queryFlags.start,
			End:       queryFlags.end,
			Continent: queryFlags.continent,
			Country:   queryFlags.country,
			State:     queryFlags.state,
			County:    queryFlags.county,
		}
		engine := query.New(db)

		if queryFlags.breakdown {
			tree, err := engine.Breakdown(f)
			if err != nil {
				return err
			}
			printScope(tree.Scalar)
			printNodes(tree.Children, 1)
			return nil
		}

		scalar, err := engine.Totals(f)
		if err != nil {
			return err
		}
		printScope(*scalar)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryFlags.date, "date", "", "Exact date (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryFlags.start, "start", "", "Range start (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryFlags.end, "end", "", "Range end (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryFlags.continent, "continent", "", "Continent filter")
	queryCmd.Flags().StringVar(&queryFlags.country, "country", "", "Country filter")
	queryCmd.Flags().StringVar(&queryFlags.state, "state", "", "State/province filter")
	queryCmd.Flags().StringVar(&queryFlags.county, "county", "", "US county filter")
	queryCmd.Flags().BoolVar(&queryFlags.breakdown, "breakdown", false, "Show the hierarchical breakdown")
}

func printScope(s query.Scalar) {
	when := s.Date
	if s.DateRange != "" {
		when = s.DateRange
	}
	fmt.Printf("%s (%s): confirmed %d, deaths %d, recovered %d\n",
		s.Place, when, s.Confirmed, s.Deaths, s.Recovered)
}

func printNodes(nodes []*query.Node, depth int) {
	for _, n := range nodes {
		fmt.Printf("%s%s: confirmed %d, deaths %d, recovered %d\n",
			strings.Repeat("  ", depth), n.Name, n.Confirmed, n.Deaths, n.Recovered)
		printNodes(n.Children, depth+1)
	}
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "covidtrack.db")
	return database.Open(dbPath)
}
