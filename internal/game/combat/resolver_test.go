package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrun/internal/stats"
)

func procAttacker() *stats.Derived {
	return &stats.Derived{
		PhysicalDamageMin: 10,
		PhysicalDamageMax: 20,
		ElementalDamage:   5,
		CritChance:        0.5,
		CritMultiplier:    2,
		SpellCritChance:   0.5,
		Spells: []stats.SpellStats{
			{Name: "fireball", Chance: 0.2, Damage: 10, Element: stats.ElementFire},
			{Name: "arcBolt", Chance: 0.9, Damage: 7, Element: stats.ElementLightning},
		},
		BurnChance:   0.5,
		PoisonChance: 0.5,
		StunChance:   0.5,
	}
}

func TestResolveAttack_DodgeConsumesOneDraw(t *testing.T) {
	rng := newScripted(0.99, 0.05)
	defender := &stats.Derived{DodgeChance: 0.1}

	res := ResolveAttack(rng, procAttacker(), defender, 1)

	assert.False(t, res.Hit)
	assert.Zero(t, res.TotalDamage)
	assert.False(t, res.Statuses.Any())
	assert.False(t, res.SpellProc)
	assert.Equal(t, 1, rng.used)
}

func TestResolveAttack_DrawOrder(t *testing.T) {
	rng := newScripted(0.99,
		0.5, // dodge: miss the 0.1 chance → hit
		0.5, // physical: 10 + floor(0.5 × 11) = 15
		0.1, // crit
		0.5, // fireball fails
		0.3, // arcBolt succeeds
		0.9, // no spell crit
		0.1, // burn
		0.9, // no poison
		0.2, // stun
	)
	defender := &stats.Derived{DodgeChance: 0.1}

	res := ResolveAttack(rng, procAttacker(), defender, 1)

	require.True(t, res.Hit)
	assert.True(t, res.Crit)
	assert.Equal(t, 30, res.PhysicalDamage)
	assert.Equal(t, 10, res.ElementalDamage)
	assert.True(t, res.SpellProc)
	assert.Equal(t, "arcBolt", res.SpellName)
	assert.False(t, res.SpellCrit)
	assert.Equal(t, 7, res.SpellDamage)
	assert.Equal(t, 47, res.TotalDamage)
	assert.Equal(t, StatusProcs{Burn: true, Stun: true}, res.Statuses)
	assert.Equal(t, 9, rng.used)
}

func TestResolveAttack_ArmorMitigatesPhysicalOnly(t *testing.T) {
	attacker := &stats.Derived{
		PhysicalDamageMin: 100,
		PhysicalDamageMax: 100,
		ElementalDamage:   10,
		CritMultiplier:    1.5,
	}
	// armor 50 vs level 0: 50 / (50 + 50) = 0.5
	defender := &stats.Derived{Armor: 50}

	res := ResolveAttack(constSource(0.99), attacker, defender, 0)

	require.True(t, res.Hit)
	assert.False(t, res.Crit)
	assert.Equal(t, 50, res.PhysicalDamage)
	assert.Equal(t, 10, res.ElementalDamage)
	assert.Equal(t, 60, res.TotalDamage)
}

func TestResolveAttack_SpellCritUsesCritMultiplier(t *testing.T) {
	attacker := &stats.Derived{
		PhysicalDamageMin: 1,
		PhysicalDamageMax: 1,
		CritMultiplier:    1.5,
		SpellCritChance:   1,
		Spells:            []stats.SpellStats{{Name: "toxicBolt", Chance: 1, Damage: 9, Element: stats.ElementPoison}},
	}

	res := ResolveAttack(constSource(0.5), attacker, &stats.Derived{}, 1)

	require.True(t, res.SpellProc)
	assert.True(t, res.SpellCrit)
	// 9 × 1.5 = 13.5 rounds half up
	assert.Equal(t, 14, res.SpellDamage)
}

func TestResolveAttack_NeverHitsAtFullDodge(t *testing.T) {
	defender := &stats.Derived{DodgeChance: 1}
	for _, u := range []float64{0, 0.25, 0.5, 0.999} {
		res := ResolveAttack(constSource(u), procAttacker(), defender, 10)
		assert.False(t, res.Hit, "draw %v", u)
	}
}
