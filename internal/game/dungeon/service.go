package dungeon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/dungeonrun/internal/game/combat"
	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/stats"
)

const tracerName = "github.com/udisondev/dungeonrun/internal/game/dungeon"

// Config holds combat parameters shared by every run of a Service.
type Config struct {
	MaxRounds int
	Strategy  combat.DamageStrategy
}

// Service prepares combats from stored data and records their outcome.
// It is safe for concurrent use if the stores are.
type Service struct {
	chars    CharacterStore
	dungeons DungeonStore
	cfg      Config
	tracer   trace.Tracer
}

// NewService creates a Service. Zero Config values fall back to combat defaults.
func NewService(chars CharacterStore, dungeons DungeonStore, cfg Config) *Service {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = combat.DefaultMaxRounds
	}
	if cfg.Strategy == nil {
		cfg.Strategy = combat.NewFlatStrategy()
	}
	return &Service{
		chars:    chars,
		dungeons: dungeons,
		cfg:      cfg,
		tracer:   otel.Tracer(tracerName),
	}
}

// setup is everything a combat needs, resolved before the first draw.
type setup struct {
	highest int
	player  combat.Seed
	enemies []combat.Seed
	rewards combat.RewardRange
}

// RunCombat fights the first wave of a dungeon at the given level.
// An empty replayKey gets a random one; the same key replays the same log.
// On victory the character's highest cleared level is raised to level.
func (s *Service) RunCombat(ctx context.Context, characterID, dungeonID string, level int, replayKey string) (*combat.Result, error) {
	ctx, span := s.tracer.Start(ctx, "dungeon.RunCombat", trace.WithAttributes(
		attribute.String("character.id", characterID),
		attribute.String("dungeon.id", dungeonID),
		attribute.Int("dungeon.level", level),
	))
	defer span.End()

	res, err := s.runCombat(ctx, characterID, dungeonID, level, replayKey)
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetAttributes(
		attribute.String("combat.outcome", string(res.Outcome)),
		attribute.Int("combat.rounds", res.TotalRounds),
	)
	return res, nil
}

func (s *Service) runCombat(ctx context.Context, characterID, dungeonID string, level int, replayKey string) (*combat.Result, error) {
	st, err := s.prepare(ctx, characterID, dungeonID, level)
	if err != nil {
		return nil, err
	}

	if replayKey == "" {
		replayKey = uuid.NewString()
	}
	logID := combat.LogID(replayKey)

	res, err := combat.RunCombat(st.player, st.enemies, combat.NewSource(replayKey), combat.Options{
		MaxRounds: s.cfg.MaxRounds,
		Strategy:  s.cfg.Strategy,
		LogID:     logID,
		Rewards:   &st.rewards,
	})
	if err != nil {
		return nil, fmt.Errorf("running combat in %s: %w", dungeonID, err)
	}

	slog.Info("combat finished",
		"character", characterID,
		"dungeon", dungeonID,
		"level", level,
		"outcome", res.Outcome,
		"rounds", res.TotalRounds,
		"logId", logID)

	if res.Victory() && level > st.highest {
		err := s.dungeons.SaveProgress(ctx, model.Progress{
			CharacterID:         characterID,
			DungeonID:           dungeonID,
			HighestLevelCleared: level,
		})
		if err != nil {
			return nil, fmt.Errorf("saving progress for %s in %s: %w", characterID, dungeonID, err)
		}
	}
	return res, nil
}

// prepare resolves references and checks access. Missing data is an error, never defaulted.
func (s *Service) prepare(ctx context.Context, characterID, dungeonID string, level int) (*setup, error) {
	char, err := s.chars.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("loading character %s: %w", characterID, err)
	}
	if char == nil {
		return nil, fmt.Errorf("character %s: %w", characterID, ErrNotFound)
	}

	d, highest, err := s.accessibleDungeon(ctx, characterID, dungeonID, level)
	if err != nil {
		return nil, err
	}
	if len(d.Waves) == 0 || len(d.Waves[0].Enemies) == 0 {
		return nil, fmt.Errorf("dungeon %s: %w", dungeonID, ErrNoWaves)
	}

	byID, err := s.enemyTemplates(ctx, d)
	if err != nil {
		return nil, err
	}

	items, err := s.chars.LoadEquipped(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("loading equipment of %s: %w", characterID, err)
	}
	derived := stats.DeriveStats(items, char.Level, stats.AttackTypeOf(items))

	enemies, err := combat.EnemySeeds(d, byID, level)
	if err != nil {
		return nil, fmt.Errorf("dungeon %s: %w: %w", dungeonID, ErrNotFound, err)
	}

	return &setup{
		highest: highest,
		player:  s.playerSeed(char, stats.FlatStats(items), derived),
		enemies: enemies,
		rewards: combat.ScaleRewards(d.Rewards, d.Scaling, level),
	}, nil
}

// accessibleDungeon loads a dungeon and the character's progress in it.
// Level must be in [1, highestCleared+1].
func (s *Service) accessibleDungeon(ctx context.Context, characterID, dungeonID string, level int) (*model.Dungeon, int, error) {
	d, err := s.dungeons.GetDungeon(ctx, dungeonID)
	if err != nil {
		return nil, 0, fmt.Errorf("loading dungeon %s: %w", dungeonID, err)
	}
	if d == nil {
		return nil, 0, fmt.Errorf("dungeon %s: %w", dungeonID, ErrNotFound)
	}

	highest, err := s.highestCleared(ctx, characterID, dungeonID)
	if err != nil {
		return nil, 0, err
	}
	if level < 1 || level > highest+1 {
		return nil, 0, fmt.Errorf("level %d of %s (highest cleared %d): %w", level, dungeonID, highest, ErrAccessDenied)
	}
	return d, highest, nil
}

func (s *Service) highestCleared(ctx context.Context, characterID, dungeonID string) (int, error) {
	p, err := s.dungeons.GetProgress(ctx, characterID, dungeonID)
	if err != nil {
		return 0, fmt.Errorf("loading progress of %s in %s: %w", characterID, dungeonID, err)
	}
	if p == nil {
		return 0, nil
	}
	return p.HighestLevelCleared, nil
}

// enemyTemplates loads every template referenced by any wave.
func (s *Service) enemyTemplates(ctx context.Context, d *model.Dungeon) (map[string]model.EnemyTemplate, error) {
	ids := d.EnemyIDs()
	list, err := s.dungeons.GetEnemies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading enemies of %s: %w", d.ID, err)
	}

	byID := make(map[string]model.EnemyTemplate, len(list))
	for _, e := range list {
		byID[e.ID] = e
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("enemy %s in %s: %w", id, d.ID, ErrNotFound)
		}
	}
	return byID, nil
}

// playerSeed builds the player entity seed. The flat model fights with the
// flat hp/damage block; the derived model takes hp from derived health.
func (s *Service) playerSeed(c *model.Character, flat stats.Flat, d stats.Derived) combat.Seed {
	hp := flat.HP
	if s.cfg.Strategy.Name() == combat.StrategyDerived {
		hp = d.Health
	}
	return combat.Seed{
		ID:     c.ID,
		Name:   c.Name,
		Level:  c.Level,
		HP:     hp,
		Damage: flat.Damage,
		Stats:  &d,
	}
}
