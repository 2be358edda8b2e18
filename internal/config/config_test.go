package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrun/internal/game/combat"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "combatsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCombatSim_MissingFile(t *testing.T) {
	cfg, err := LoadCombatSim(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCombatSim(), cfg)
}

func TestLoadCombatSim_YAMLOverlay(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
store: postgres
database:
  host: db.local
combat:
  max_rounds: 20
  damage_strategy: derived
`)

	cfg, err := LoadCombatSim(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "unset keys keep defaults")
	assert.Equal(t, 20, cfg.Combat.MaxRounds)
	assert.Equal(t, combat.StrategyDerived, cfg.Combat.DamageStrategy)
	assert.Equal(t, combat.DefaultBleedChance, cfg.Combat.BleedChance)
}

func TestLoadCombatSim_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
combat:
  max_rounds: 20
database:
  port: 6543
`)
	t.Setenv("DUNGEONRUN_COMBAT_MAX_ROUNDS", "7")
	t.Setenv("DUNGEONRUN_DB_HOST", "pg")
	t.Setenv("DUNGEONRUN_LOG_LEVEL", "warn")

	cfg, err := LoadCombatSim(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Combat.MaxRounds)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "postgres://dungeonrun:dungeonrun@pg:6543/dungeonrun?sslmode=disable", cfg.Database.DSN())
}

func TestLoadCombatSim_TracingFromEnv(t *testing.T) {
	path := writeConfig(t, `
tracing:
  endpoint: http://collector:4318
`)
	t.Setenv("DUNGEONRUN_OTEL_ENABLED", "false")

	cfg, err := LoadCombatSim(path)
	require.NoError(t, err)
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)
	assert.False(t, cfg.Tracing.Enabled)

	def := DefaultCombatSim()
	assert.True(t, def.Tracing.Enabled)
	assert.Empty(t, def.Tracing.Endpoint, "tracing stays off until an endpoint is set")
}

func TestLoadCombatSim_Errors(t *testing.T) {
	_, err := LoadCombatSim(writeConfig(t, "combat: [1, 2"))
	require.Error(t, err)

	_, err = LoadCombatSim(writeConfig(t, "store: redis"))
	require.ErrorContains(t, err, "unknown store")

	t.Setenv("DUNGEONRUN_COMBAT_MAX_ROUNDS", "many")
	_, err = LoadCombatSim(writeConfig(t, ""))
	require.Error(t, err)
}

func TestCombatConfig_Strategy(t *testing.T) {
	t.Parallel()

	cc := DefaultCombatSim().Combat
	cc.BleedChance = 0.5
	cc.BleedDuration = 4

	s, err := cc.Strategy()
	require.NoError(t, err)
	flat, ok := s.(*combat.FlatStrategy)
	require.True(t, ok)
	assert.Equal(t, 0.5, flat.BleedChance)
	assert.Equal(t, 4, flat.BleedDuration)

	cc.DamageStrategy = combat.StrategyDerived
	cc.StunDuration = 2
	s, err = cc.Strategy()
	require.NoError(t, err)
	derived, ok := s.(*combat.DerivedStrategy)
	require.True(t, ok)
	assert.Equal(t, combat.StatusDurations{Burn: 3, Poison: 3, Stun: 2}, derived.Durations)

	cc.DamageStrategy = "magic"
	_, err = cc.Strategy()
	require.Error(t, err)
}
