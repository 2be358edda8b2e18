package stats

import (
	"math"

	"github.com/udisondev/dungeonrun/internal/model"
)

// Formula constants.
const (
	BaseHealth = 20

	StrengthDamageScaling = 0.02 // physical damage per STR
	IntElementalScaling   = 0.02 // elemental damage per INT

	BaseCritMultiplier = 1.5

	critBase     = 0.05
	critMax      = 0.35
	dodgeBase    = 0.02
	dodgeMax     = 0.25
	blockBase    = 0.01  // half of dodge base
	blockMax     = 0.125 // half of dodge max
	softCapScale = 5
	softCapShift = 10

	armorShift      = 50
	armorLevelScale = 5

	burnBase     = 0.10
	burnPerInt   = 0.001
	poisonBase   = 0.10
	poisonPerInt = 0.0015
	stunBase     = 0.05
	stunPerInt   = 0.0008
)

// SoftCap returns base + max × stat / (stat + 5×level + 10).
// The stat's contribution approaches max asymptotically.
func SoftCap(base, max float64, stat, level int) float64 {
	denom := float64(stat + softCapScale*level + softCapShift)
	if denom == 0 {
		return base
	}
	return base + max*float64(stat)/denom
}

// PhysicalReduction returns the fraction of physical damage absorbed by armor
// against an attacker of the given level: armor / (armor + 50 + 5×attackerLevel).
func PhysicalReduction(armor, attackerLevel int) float64 {
	denom := float64(armor + armorShift + armorLevelScale*attackerLevel)
	if denom <= 0 {
		return 0
	}
	return float64(armor) / denom
}

// Derive applies scaling, soft caps and mitigation to raw totals.
// level drives the soft caps and the self-referenced physicalReduction preview.
func Derive(raw Raw, level int, attackType string) Derived {
	if attackType == "" {
		attackType = model.DefaultAttackType
	}

	strScaling := 1 + float64(raw.Strength)*StrengthDamageScaling
	physMin := float64(raw.BaseWeaponMin) * strScaling
	physMax := float64(raw.BaseWeaponMax) * strScaling

	elemScaling := 1 + float64(raw.Intelligence)*IntElementalScaling
	fire := float64(raw.FireFlat) * elemScaling
	lightning := float64(raw.LightningFlat) * elemScaling
	poison := float64(raw.PoisonFlat) * elemScaling
	elemental := roundHalfUp(fire + lightning + poison)

	roundedMin := roundHalfUp(physMin)
	roundedMax := roundHalfUp(physMax)

	d := Derived{
		Health:       BaseHealth + raw.Health,
		Armor:        raw.Armor,
		Strength:     raw.Strength,
		Dexterity:    raw.Dexterity,
		Intelligence: raw.Intelligence,

		PhysicalDamageMin: roundedMin,
		PhysicalDamageMax: roundedMax,
		ElementalDamage:   elemental,
		FireDamage:        roundHalfUp(fire),
		LightningDamage:   roundHalfUp(lightning),
		PoisonDamage:      roundHalfUp(poison),
		TotalDamageMin:    roundedMin + elemental,
		TotalDamageMax:    roundedMax + elemental,

		CritChance:        math.Min(1.0, SoftCap(critBase, critMax, raw.Dexterity, level)+raw.CritChanceBonus),
		SpellCritChance:   math.Min(1.0, SoftCap(critBase, critMax, raw.Intelligence, level)+raw.CritChanceBonus),
		CritMultiplier:    BaseCritMultiplier + raw.CritDamageBonus,
		DodgeChance:       math.Min(1.0, SoftCap(dodgeBase, dodgeMax, raw.Dexterity, level)+raw.DodgeChanceBonus),
		BlockChance:       math.Min(1.0, SoftCap(blockBase, blockMax, raw.Strength, level)+raw.BlockChanceBonus),
		PhysicalReduction: PhysicalReduction(raw.Armor, level),

		Spells: deriveSpells(raw),

		BurnChance:        procChance(raw.FireFlat, burnBase, burnPerInt, raw.Intelligence, raw.BurnChanceBonus),
		PoisonChance:      procChance(raw.PoisonFlat, poisonBase, poisonPerInt, raw.Intelligence, raw.PoisonChanceBonus),
		StunChance:        procChance(raw.LightningFlat, stunBase, stunPerInt, raw.Intelligence, raw.StunChanceBonus),
		BurnDamageBonus:   raw.BurnDamageBonus,
		PoisonDamageBonus: raw.PoisonDamageBonus,

		AttackType: attackType,
	}
	return d
}

// deriveSpells scales every spell by INT and adds the matching elemental power.
// Returns nil when there are no spells.
func deriveSpells(raw Raw) []SpellStats {
	if len(raw.Spells) == 0 {
		return nil
	}

	elemScaling := 1 + float64(raw.Intelligence)*IntElementalScaling
	out := make([]SpellStats, 0, len(raw.Spells))
	for _, sp := range raw.Spells {
		sc := ScalingFor(sp.Name)
		scaledBase := sp.Damage * (1 + float64(raw.Intelligence)*sc.IntScaling)
		elemBonus := float64(raw.ElementFlat(sp.Element)) * elemScaling * sc.ElementScaling
		out = append(out, SpellStats{
			Name:    sp.Name,
			Chance:  sp.Chance,
			Damage:  scaledBase + elemBonus,
			Element: sp.Element,
		})
	}
	return out
}

// procChance: (flat > 0 ? base : 0) + INT × perInt + bonus, clamped to [0, 1].
func procChance(flat int, base, perInt float64, intelligence int, bonus float64) float64 {
	c := float64(intelligence)*perInt + bonus
	if flat > 0 {
		c += base
	}
	return clamp01(c)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// roundHalfUp rounds to the nearest integer, halves toward +∞.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// DeriveStats runs the whole pipeline: equipped items → Raw → Derived.
func DeriveStats(items []model.EquippedItem, level int, attackType string) Derived {
	return Derive(Aggregate(items), level, attackType)
}

// AttackTypeOf returns the attack verb of the main-hand weapon, or the default.
func AttackTypeOf(items []model.EquippedItem) string {
	lo := ResolveLoadout(items)
	if lo.Main != nil {
		if at := lo.Main.AttackType(); at != "" {
			return at
		}
	}
	return model.DefaultAttackType
}

// EnemyStats builds combat stats for a scaled enemy template:
// fixed physical damage equal to atk, health equal to hp, no armor, no procs.
func EnemyStats(hp, atk, level int) Derived {
	return Derived{
		Health:            hp,
		PhysicalDamageMin: atk,
		PhysicalDamageMax: atk,
		TotalDamageMin:    atk,
		TotalDamageMax:    atk,
		CritMultiplier:    BaseCritMultiplier,
		PhysicalReduction: PhysicalReduction(0, level),
		AttackType:        "claws",
	}
}
