package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tankarena/internal/model"
)

// BattleServer holds all configuration for the battle server process.
type BattleServer struct {
	LogLevel string `yaml:"log_level"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Static data
	Data DataConfig `yaml:"data"`

	Metrics MetricsConfig `yaml:"metrics"`

	// Reaper interval for emptied battles
	ReapInterval time.Duration `yaml:"reap_interval"`

	Battle Battle `yaml:"battle"`

	// Battles created at startup. They survive the empty-battle reaper.
	Battles []BattlePreset `yaml:"battles"`
}

// BattlePreset describes a battle opened when the server starts.
type BattlePreset struct {
	Title      string        `yaml:"title"`
	Map        string        `yaml:"map"`
	Mode       model.Mode    `yaml:"mode"`
	ScoreLimit int           `yaml:"score_limit"`
	TimeLimit  time.Duration `yaml:"time_limit"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DataConfig points at the static item and map configuration.
type DataConfig struct {
	Items string `yaml:"items"`
	Maps  string `yaml:"maps"`
}

// MetricsConfig toggles OpenTelemetry instruments. They register on the
// global MeterProvider; the process embedding the server installs the exporter.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultBattleServer returns BattleServer config with sensible defaults.
func DefaultBattleServer() BattleServer {
	return BattleServer{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tankarena",
			Password: "tankarena",
			DBName:   "tankarena",
			SSLMode:  "disable",
		},
		Data: DataConfig{
			Items: "data/items.yaml",
			Maps:  "data/maps.yaml",
		},
		Metrics:      MetricsConfig{Enabled: true},
		ReapInterval: 30 * time.Second,
		Battle:       DefaultBattle(),
	}
}

// LoadBattleServer loads battle server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattleServer(path string) (BattleServer, error) {
	cfg := DefaultBattleServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
