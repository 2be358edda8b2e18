package combat

import (
	"math"

	"github.com/udisondev/dungeonrun/internal/stats"
)

// StatusProcs reports which statuses an exchange applied.
type StatusProcs struct {
	Burn   bool `json:"burn"`
	Poison bool `json:"poison"`
	Stun   bool `json:"stun"`
}

// Any reports whether at least one status procced.
func (p StatusProcs) Any() bool {
	return p.Burn || p.Poison || p.Stun
}

// AttackResult is the outcome of one attacker-vs-defender exchange.
// Damage components are rounded individually; TotalDamage is their sum.
type AttackResult struct {
	Hit       bool `json:"hit"`
	Crit      bool `json:"crit"`
	SpellCrit bool `json:"spellCrit,omitempty"`

	PhysicalDamage  int `json:"physicalDamage"`
	ElementalDamage int `json:"elementalDamage"`
	SpellDamage     int `json:"spellDamage"`
	TotalDamage     int `json:"totalDamage"`

	Statuses StatusProcs `json:"statuses"`

	SpellProc bool   `json:"spellProc"`
	SpellName string `json:"spellName,omitempty"`
}

// ResolveAttack resolves one exchange. Draw order is fixed:
//
//  1. dodge (a dodge returns immediately, nothing else is drawn);
//  2. physical roll over [min, max];
//  3. crit, multiplying physical and elemental;
//  4. armor mitigation of the physical part only, against attackerLevel;
//  5. spells in order, first success wins, then its own spell-crit draw;
//  6. burn, poison, stun, one draw each.
func ResolveAttack(rng Source, attacker, defender *stats.Derived, attackerLevel int) AttackResult {
	if roll(rng, defender.DodgeChance) {
		return AttackResult{}
	}

	physical := float64(rollInt(rng, attacker.PhysicalDamageMin, attacker.PhysicalDamageMax))
	elemental := float64(attacker.ElementalDamage)

	res := AttackResult{Hit: true}
	if roll(rng, attacker.CritChance) {
		res.Crit = true
		physical *= attacker.CritMultiplier
		elemental *= attacker.CritMultiplier
	}

	physical *= 1 - stats.PhysicalReduction(defender.Armor, attackerLevel)

	var spell float64
	for _, sp := range attacker.Spells {
		if !roll(rng, sp.Chance) {
			continue
		}
		res.SpellProc = true
		res.SpellName = sp.Name
		spell = sp.Damage
		if roll(rng, attacker.SpellCritChance) {
			res.SpellCrit = true
			spell *= attacker.CritMultiplier
		}
		break
	}

	res.Statuses = StatusProcs{
		Burn:   roll(rng, attacker.BurnChance),
		Poison: roll(rng, attacker.PoisonChance),
		Stun:   roll(rng, attacker.StunChance),
	}

	res.PhysicalDamage = roundHalfUp(physical)
	res.ElementalDamage = roundHalfUp(elemental)
	res.SpellDamage = roundHalfUp(spell)
	res.TotalDamage = res.PhysicalDamage + res.ElementalDamage + res.SpellDamage
	return res
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
