// Package config loads fplreport settings from YAML, .env and the
// environment, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/fetch"
	"github.com/aatrey56/fpl-season-report/internal/model"
)

const DefaultPath = "fplreport.yaml"

type Config struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Paths     PathsConfig     `yaml:"paths"`
	Report    ReportConfig    `yaml:"report"`
	Awards    awards.Catalog  `yaml:"awards"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Publish   PublishConfig   `yaml:"publish"`
	DB        DBConfig        `yaml:"db"`
}

type FetchConfig struct {
	BaseURL   string `yaml:"base_url"`
	Cookie    string `yaml:"cookie"`
	LeagueID  int    `yaml:"league_id"`
	Gameweeks int    `yaml:"gameweeks"`
	SleepMS   int    `yaml:"sleep_ms"`
	Workers   int    `yaml:"workers"`
	RawRoot   string `yaml:"raw_root"`
	UseCache  bool   `yaml:"use_cache"`
}

type PathsConfig struct {
	SeasonCSV    string `yaml:"season_csv"`
	PlayerMapRaw string `yaml:"player_map_raw"`
	PlayerMap    string `yaml:"player_map"`
	OutputDir    string `yaml:"output_dir"`
}

type ReportConfig struct {
	League      string  `yaml:"league"`
	Season      string  `yaml:"season"`
	TopCaptains int     `yaml:"top_captains"`
	ChartWidth  float64 `yaml:"chart_width"`
	ChartHeight float64 `yaml:"chart_height"`
	PDF         bool    `yaml:"pdf"`
	ChromeBin   string  `yaml:"chrome_bin"`
}

type DashboardConfig struct {
	Addr           string   `yaml:"addr"`
	RateLimit      int      `yaml:"rate_limit"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type PublishConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			BaseURL:   fetch.DefaultBaseURL,
			Gameweeks: model.NumGameweeks,
			SleepMS:   300,
			Workers:   1,
			RawRoot:   "data/raw",
			UseCache:  true,
		},
		Paths: PathsConfig{
			SeasonCSV:    "csv/fpl_season_data.csv",
			PlayerMapRaw: "json/player_id_map.json",
			PlayerMap:    "json/player_id_mapped.json",
			OutputDir:    "fpl_output",
		},
		Report: ReportConfig{
			TopCaptains: 30,
			ChartWidth:  10,
			ChartHeight: 6,
		},
		Dashboard: DashboardConfig{Addr: ":8090", RateLimit: 120},
		DB:        DBConfig{Path: "data/seasons.db"},
	}
}

// Load reads path (a missing file yields defaults), then .env, then the
// process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("FPL_COOKIE")); v != "" {
		c.Fetch.Cookie = v
	}
	if v := strings.TrimSpace(os.Getenv("FPL_LEAGUE_ID")); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FPL_LEAGUE_ID: %w", err)
		}
		c.Fetch.LeagueID = id
	}
	if v := strings.TrimSpace(os.Getenv("FPL_SEASON")); v != "" {
		c.Report.Season = v
	}
	if v := strings.TrimSpace(os.Getenv("FPL_S3_BUCKET")); v != "" {
		c.Publish.Bucket = v
	}
	return nil
}

// Validate checks the settings that every command relies on.
func (c *Config) Validate() error {
	if c.Fetch.Gameweeks < 1 || c.Fetch.Gameweeks > model.NumGameweeks {
		return fmt.Errorf("fetch.gameweeks must be between 1 and %d, got %d", model.NumGameweeks, c.Fetch.Gameweeks)
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be positive, got %d", c.Fetch.Workers)
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir is required")
	}
	return nil
}

// RequireFetch checks what fetching from the FPL API needs.
func (c *Config) RequireFetch() error {
	if c.Fetch.LeagueID <= 0 {
		return errors.New("league id not configured (set fetch.league_id or FPL_LEAGUE_ID)")
	}
	return nil
}

func (c *Config) Catalog() awards.Catalog {
	return awards.DefaultCatalog().Merge(c.Awards)
}
