package dungeon

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/dungeonrun/internal/game/combat"
	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/stats"
)

// ItemPowerPerLevel is the recommended item power per dungeon level.
const ItemPowerPerLevel = 10

// Summary is one row of the dungeon list for a character.
type Summary struct {
	ID                  string `json:"id"`
	Code                string `json:"code"`
	Name                string `json:"name"`
	HighestLevelCleared int    `json:"highestLevelCleared"`
	AvailableLevels     int    `json:"availableLevels"`
}

// ScaledEnemy is an enemy template scaled to a dungeon level.
// Templates carry no base defense, so ScaledDef is zero at every level.
type ScaledEnemy struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	BaseHP    int    `json:"baseHp"`
	BaseAtk   int    `json:"baseAtk"`
	ScaledHP  int    `json:"scaledHp"`
	ScaledAtk int    `json:"scaledAtk"`
	ScaledDef int    `json:"scaledDef"`
}

// ScaledRef is a scaled enemy and how many of it a wave holds.
type ScaledRef struct {
	Enemy ScaledEnemy `json:"enemy"`
	Count int         `json:"count"`
}

// ScaledWave lists a wave's scaled enemies.
type ScaledWave struct {
	Enemies []ScaledRef `json:"enemies"`
}

// RewardPreview is the reward range at a dungeon level plus the unscaled drop table.
type RewardPreview struct {
	GoldMin int              `json:"goldMin"`
	GoldMax int              `json:"goldMax"`
	XPMin   int              `json:"xpMin"`
	XPMax   int              `json:"xpMax"`
	Drops   *model.DropTable `json:"dropsJson,omitempty"`
}

// Details previews a dungeon level without fighting it.
type Details struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Level             int           `json:"level"`
	Waves             []ScaledWave  `json:"waves"`
	Rewards           RewardPreview `json:"rewards"`
	RequiredItemPower int           `json:"requiredItemPower"`
}

// ListDungeons returns every dungeon with the character's progress in it.
func (s *Service) ListDungeons(ctx context.Context, characterID string) ([]Summary, error) {
	ctx, span := s.tracer.Start(ctx, "dungeon.ListDungeons",
		trace.WithAttributes(attribute.String("character.id", characterID)))
	defer span.End()

	list, err := s.dungeons.ListDungeons(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("listing dungeons: %w", err))
	}

	out := make([]Summary, 0, len(list))
	for _, d := range list {
		highest, err := s.highestCleared(ctx, characterID, d.ID)
		if err != nil {
			return nil, spanError(span, err)
		}
		out = append(out, Summary{
			ID:                  d.ID,
			Code:                d.Code,
			Name:                d.Name,
			HighestLevelCleared: highest,
			AvailableLevels:     highest + 1,
		})
	}
	return out, nil
}

// DungeonDetails previews every wave of a dungeon scaled to level.
// The same access policy as RunCombat applies.
func (s *Service) DungeonDetails(ctx context.Context, dungeonID string, level int, characterID string) (*Details, error) {
	ctx, span := s.tracer.Start(ctx, "dungeon.DungeonDetails", trace.WithAttributes(
		attribute.String("character.id", characterID),
		attribute.String("dungeon.id", dungeonID),
		attribute.Int("dungeon.level", level),
	))
	defer span.End()

	d, _, err := s.accessibleDungeon(ctx, characterID, dungeonID, level)
	if err != nil {
		return nil, spanError(span, err)
	}
	byID, err := s.enemyTemplates(ctx, d)
	if err != nil {
		return nil, spanError(span, err)
	}

	waves := make([]ScaledWave, 0, len(d.Waves))
	for _, w := range d.Waves {
		sw := ScaledWave{Enemies: make([]ScaledRef, 0, len(w.Enemies))}
		for _, ref := range w.Enemies {
			t := byID[ref.ID]
			hp, atk := combat.ScaleEnemy(t, d.Scaling, level)
			sw.Enemies = append(sw.Enemies, ScaledRef{
				Enemy: ScaledEnemy{
					ID:        t.ID,
					Code:      t.Code,
					Name:      t.Name,
					BaseHP:    t.HP,
					BaseAtk:   t.Atk,
					ScaledHP:  hp,
					ScaledAtk: atk,
				},
				Count: ref.Count,
			})
		}
		waves = append(waves, sw)
	}

	r := combat.ScaleRewards(d.Rewards, d.Scaling, level)
	preview := RewardPreview{GoldMin: r.GoldMin, GoldMax: r.GoldMax, XPMin: r.XPMin, XPMax: r.XPMax}
	if d.Rewards != nil {
		preview.Drops = d.Rewards.Drops
	}
	return &Details{
		ID:                d.ID,
		Name:              d.Name,
		Level:             level,
		Waves:             waves,
		Rewards:           preview,
		RequiredItemPower: level * ItemPowerPerLevel,
	}, nil
}

// CharacterStats derives a character's stats from its current equipment.
func (s *Service) CharacterStats(ctx context.Context, characterID string) (*stats.Derived, error) {
	ctx, span := s.tracer.Start(ctx, "dungeon.CharacterStats",
		trace.WithAttributes(attribute.String("character.id", characterID)))
	defer span.End()

	char, err := s.chars.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("loading character %s: %w", characterID, err))
	}
	if char == nil {
		return nil, spanError(span, fmt.Errorf("character %s: %w", characterID, ErrNotFound))
	}
	items, err := s.chars.LoadEquipped(ctx, characterID)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("loading equipment of %s: %w", characterID, err))
	}

	d := stats.DeriveStats(items, char.Level, stats.AttackTypeOf(items))
	return &d, nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
