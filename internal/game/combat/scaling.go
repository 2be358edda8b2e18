package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/stats"
)

// ScaleEnemy scales an enemy template to a dungeon level:
//
//	hp  = floor(baseHp  × (1 + hpGrowth  × level))
//	atk = floor(baseAtk × (1 + atkGrowth × level))
//
// Nil scaling returns the base values.
func ScaleEnemy(t model.EnemyTemplate, sc *model.DungeonScaling, level int) (hp, atk int) {
	if sc == nil {
		return t.HP, t.Atk
	}
	hp = int(math.Floor(float64(t.HP) * (1 + sc.HPGrowth*float64(level))))
	atk = int(math.Floor(float64(t.Atk) * (1 + sc.AtkGrowth*float64(level))))
	return hp, atk
}

// ErrUnknownEnemy is returned when a wave references a template missing from the lookup.
var ErrUnknownEnemy = errors.New("unknown enemy template")

// EnemySeeds builds one seed per enemy ref of the first wave, scaled to level.
// Ref counts are not expanded. Seed ids are "enemy_<templateId>_<refIndex>".
func EnemySeeds(d *model.Dungeon, byID map[string]model.EnemyTemplate, level int) ([]Seed, error) {
	if d == nil || len(d.Waves) == 0 {
		return nil, nil
	}

	refs := d.Waves[0].Enemies
	seeds := make([]Seed, 0, len(refs))
	for i, ref := range refs {
		t, ok := byID[ref.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEnemy, ref.ID)
		}
		hp, atk := ScaleEnemy(t, d.Scaling, level)
		st := stats.EnemyStats(hp, atk, level)
		seeds = append(seeds, Seed{
			ID:     fmt.Sprintf("enemy_%s_%d", t.ID, i),
			Name:   t.Name,
			Code:   t.Code,
			Level:  level,
			HP:     hp,
			Damage: atk,
			Stats:  &st,
		})
	}
	return seeds, nil
}
