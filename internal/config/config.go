package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dungeonrun/internal/game/combat"
)

// EnvPrefix prefixes every environment override, e.g. DUNGEONRUN_DB_HOST.
const EnvPrefix = "DUNGEONRUN_"

// Store backends.
const (
	StorePostgres = "postgres"
	StoreCatalog  = "catalog"
)

// CombatSim holds all configuration for the combatsim command.
type CombatSim struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Data source
	Store    string         `yaml:"store" env:"STORE"` // "postgres" | "catalog"
	DataPath string         `yaml:"data_path" env:"DATA_PATH"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	Combat CombatConfig `yaml:"combat" envPrefix:"COMBAT_"`

	Tracing TracingConfig `yaml:"tracing" envPrefix:"OTEL_"`
}

// TracingConfig controls OTLP span export. Empty endpoint disables tracing.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"` // e.g. http://localhost:4318
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// CombatConfig holds simulator parameters.
type CombatConfig struct {
	MaxRounds      int     `yaml:"max_rounds" env:"MAX_ROUNDS"`
	DamageStrategy string  `yaml:"damage_strategy" env:"DAMAGE_STRATEGY"` // "flat" | "derived"
	BleedChance    float64 `yaml:"bleed_chance" env:"BLEED_CHANCE"`
	BleedDuration  int     `yaml:"bleed_duration" env:"BLEED_DURATION"` // rounds
	BurnDuration   int     `yaml:"burn_duration" env:"BURN_DURATION"`
	PoisonDuration int     `yaml:"poison_duration" env:"POISON_DURATION"`
	StunDuration   int     `yaml:"stun_duration" env:"STUN_DURATION"`
}

// DefaultCombatSim returns CombatSim config with sensible defaults.
func DefaultCombatSim() CombatSim {
	return CombatSim{
		LogLevel: "info",
		Store:    StoreCatalog,
		DataPath: "data/catalog.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "dungeonrun",
			Password: "dungeonrun",
			DBName:   "dungeonrun",
			SSLMode:  "disable",
		},
		Combat: CombatConfig{
			MaxRounds:      combat.DefaultMaxRounds,
			DamageStrategy: combat.StrategyFlat,
			BleedChance:    combat.DefaultBleedChance,
			BleedDuration:  combat.DefaultBleedDuration,
			BurnDuration:   combat.DefaultBurnDuration,
			PoisonDuration: combat.DefaultPoisonDuration,
			StunDuration:   combat.DefaultStunDuration,
		},
		Tracing: TracingConfig{Enabled: true},
	}
}

// LoadCombatSim loads config from a YAML file, then applies DUNGEONRUN_* environment overrides.
// If the file doesn't exist, defaults are used.
func LoadCombatSim(path string) (CombatSim, error) {
	cfg := DefaultCombatSim()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreCatalog {
		return cfg, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return cfg, nil
}

// Strategy builds the configured damage strategy.
func (c CombatConfig) Strategy() (combat.DamageStrategy, error) {
	s, err := combat.StrategyByName(c.DamageStrategy)
	if err != nil {
		return nil, err
	}
	switch s := s.(type) {
	case *combat.FlatStrategy:
		s.BleedChance = c.BleedChance
		s.BleedDuration = c.BleedDuration
	case *combat.DerivedStrategy:
		s.Durations = combat.StatusDurations{
			Burn:   c.BurnDuration,
			Poison: c.PoisonDuration,
			Stun:   c.StunDuration,
		}
	}
	return s, nil
}
