package combat

import (
	"math"

	"github.com/udisondev/dungeonrun/internal/model"
)

// RewardRange is an inclusive gold and xp range, already scaled to a dungeon level.
type RewardRange struct {
	GoldMin int
	GoldMax int
	XPMin   int
	XPMax   int
}

// ScaleRewards scales base reward ranges to a dungeon level:
//
//	value = floor(base × (1 + lootGrowth × level))
//
// Nil rewards yield the zero range. Nil scaling leaves bases unscaled.
func ScaleRewards(r *model.DungeonRewards, sc *model.DungeonScaling, level int) RewardRange {
	if r == nil {
		return RewardRange{}
	}
	growth := 0.0
	if sc != nil {
		growth = sc.LootGrowth
	}
	mult := 1 + growth*float64(level)
	scale := func(v int) int {
		return int(math.Floor(float64(v) * mult))
	}
	return RewardRange{
		GoldMin: scale(r.BaseGoldMin),
		GoldMax: scale(r.BaseGoldMax),
		XPMin:   scale(r.BaseXPMin),
		XPMax:   scale(r.BaseXPMax),
	}
}

// Roll draws gold then xp, one draw each.
func (r RewardRange) Roll(rng Source) Rewards {
	return Rewards{
		Gold: rollInt(rng, r.GoldMin, r.GoldMax),
		XP:   rollInt(rng, r.XPMin, r.XPMax),
	}
}
