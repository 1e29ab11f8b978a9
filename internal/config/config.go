package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Snapshots Snapshots `yaml:"snapshots"`
	Output    Output    `yaml:"output"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
}

type Snapshots struct {
	// Dir holds the daily report CSVs, one MM-DD-YYYY.csv per day.
	Dir       string `yaml:"dir"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	BatchDays int    `yaml:"batch_days"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for covidtrack.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "covidtrack")
}

// DataDir returns the XDG data directory for covidtrack.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "covidtrack")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/covidtrack/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'covidtrack init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults and
// validating the ingestion date span.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Snapshots: Snapshots{
			StartDate: "2021-01-01",
			EndDate:   "2023-03-09",
			BatchDays: 30,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Snapshots.BatchDays < 1 {
		cfg.Snapshots.BatchDays = 30
	}

	for _, d := range []string{cfg.Snapshots.StartDate, cfg.Snapshots.EndDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid snapshot date %q: %w", d, err)
		}
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// GetSnapshotDir returns the effective snapshot directory. When unset it
// defaults to a "daily_reports" folder inside the data directory.
func (c *Config) GetSnapshotDir() string {
	if c.Snapshots.Dir != "" {
		return c.Snapshots.Dir
	}
	return filepath.Join(c.GetDataDir(), "daily_reports")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
