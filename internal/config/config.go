// Package config loads runtime settings for the viewer and the headless
// report: defaults, then an optional YAML file, then SQUID_* environment
// variables, then validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// Store backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvConfigPath names the variable the binaries read the YAML path from.
const EnvConfigPath = "SQUID_CONFIG"

var validate = validator.New()

// Config is the full set of tunables.
type Config struct {
	Population  int           `yaml:"population" env:"SQUID_POPULATION" validate:"gte=0"`
	Seed        int64         `yaml:"seed" env:"SQUID_SEED"` // 0 picks a random seed
	FieldWidth  float64       `yaml:"field_width" env:"SQUID_FIELD_WIDTH" validate:"gt=0"`
	FieldHeight float64       `yaml:"field_height" env:"SQUID_FIELD_HEIGHT" validate:"gt=0"`
	RoundDelay  time.Duration `yaml:"round_delay" env:"SQUID_ROUND_DELAY" validate:"min=0s"`
	AutoAdvance bool          `yaml:"auto_advance" env:"SQUID_AUTO_ADVANCE"`
	MetricsAddr string        `yaml:"metrics_addr" env:"SQUID_METRICS_ADDR" validate:"omitempty,hostname_port"`

	Store StoreConfig `yaml:"store" envPrefix:"SQUID_STORE_"`
	Log   LogConfig   `yaml:"log" envPrefix:"SQUID_LOG_"`
}

// StoreConfig selects where the save slot lives.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"BACKEND" validate:"oneof=badger sqlite memory"`
	Path    string `yaml:"path" env:"PATH" validate:"required_unless=Backend memory"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Population:  tournament.DefaultPopulation,
		FieldWidth:  tournament.DefaultFieldWidth,
		FieldHeight: tournament.DefaultFieldHeight,
		RoundDelay:  3 * time.Second,
		AutoAdvance: true,
		Store: StoreConfig{
			Backend: BackendBadger,
			Path:    "squid-save",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, in that order, and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TournamentOptions translates the config into tournament options. A zero
// seed is left to the tournament, which draws one from crypto/rand.
func (c Config) TournamentOptions() []tournament.Option {
	opts := []tournament.Option{
		tournament.WithPopulation(c.Population),
		tournament.WithField(c.FieldWidth, c.FieldHeight),
	}
	if c.Seed != 0 {
		opts = append(opts, tournament.WithSeed(c.Seed))
	}
	return opts
}
