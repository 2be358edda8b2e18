package stats

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrun/internal/model"
)

func TestDerive_Formulas(t *testing.T) {
	raw := Raw{
		Health:        30,
		Armor:         40,
		Strength:      10,
		Dexterity:     10,
		Intelligence:  10,
		BaseWeaponMin: 4,
		BaseWeaponMax: 8,
		FireFlat:      5,
		LightningFlat: 2,
		PoisonFlat:    0,

		CritChanceBonus:  0.01,
		CritDamageBonus:  0.5,
		DodgeChanceBonus: 0.03,
		BlockChanceBonus: 0.04,
	}

	d := Derive(raw, 1, "slashes")

	assert.Equal(t, 50, d.Health)
	assert.Equal(t, 40, d.Armor)
	assert.Equal(t, 5, d.PhysicalDamageMin)  // 4 × 1.2 = 4.8
	assert.Equal(t, 10, d.PhysicalDamageMax) // 8 × 1.2 = 9.6
	assert.Equal(t, 6, d.FireDamage)         // 5 × 1.2
	assert.Equal(t, 2, d.LightningDamage)    // 2 × 1.2 = 2.4
	assert.Equal(t, 8, d.ElementalDamage)    // round(8.4)
	assert.Equal(t, 13, d.TotalDamageMin)
	assert.Equal(t, 18, d.TotalDamageMax)

	// soft cap at level 1: stat / (stat + 15)
	assert.InDelta(t, 0.05+0.35*10.0/25.0+0.01, d.CritChance, 1e-12)
	assert.InDelta(t, 0.05+0.35*10.0/25.0+0.01, d.SpellCritChance, 1e-12)
	assert.InDelta(t, 0.02+0.25*10.0/25.0+0.03, d.DodgeChance, 1e-12)
	assert.InDelta(t, 0.01+0.125*10.0/25.0+0.04, d.BlockChance, 1e-12)
	assert.InDelta(t, 2.0, d.CritMultiplier, 1e-12)
	assert.InDelta(t, 40.0/95.0, d.PhysicalReduction, 1e-12)

	assert.InDelta(t, 0.10+10*0.001, d.BurnChance, 1e-12)
	assert.InDelta(t, 10*0.0015, d.PoisonChance, 1e-12)
	assert.InDelta(t, 0.05+10*0.0008, d.StunChance, 1e-12)
	assert.Nil(t, d.Spells)
	assert.Equal(t, "slashes", d.AttackType)
}

func TestDerive_DefaultAttackType(t *testing.T) {
	d := Derive(Raw{}, 1, "")
	assert.Equal(t, model.DefaultAttackType, d.AttackType)
}

func TestDerive_BurnChanceFromFireOnly(t *testing.T) {
	d := Derive(Raw{FireFlat: 10}, 5, "")
	assert.Equal(t, 0.10, d.BurnChance)
	assert.Zero(t, d.PoisonChance)
	assert.Zero(t, d.StunChance)
}

func TestDerive_ChancesClamp(t *testing.T) {
	raw := Raw{
		Dexterity:         1000,
		CritChanceBonus:   0.9,
		DodgeChanceBonus:  2,
		BurnChanceBonus:   5,
		PoisonChanceBonus: -3,
	}

	d := Derive(raw, 1, "")

	assert.Equal(t, 1.0, d.CritChance)
	assert.Equal(t, 1.0, d.DodgeChance)
	assert.Equal(t, 1.0, d.BurnChance)
	assert.Equal(t, 0.0, d.PoisonChance)
}

func TestDerive_Spells(t *testing.T) {
	raw := Raw{
		Intelligence:  10,
		FireFlat:      5,
		LightningFlat: 10,
		Spells: []RawSpell{
			{Name: "fireball", Chance: 0.2, Damage: 10, Element: ElementFire},
			{Name: "arcBolt", Chance: 0.1, Damage: 4, Element: ElementLightning},
			{Name: "hex", Chance: 0.05, Damage: 2, Element: ElementPoison},
		},
	}

	d := Derive(raw, 3, "")

	require.Len(t, d.Spells, 3)

	// fireball: 10 × (1 + 10×0.7) + 5 × 1.2 × 1.0
	assert.Equal(t, "fireball", d.Spells[0].Name)
	assert.InDelta(t, 86.0, d.Spells[0].Damage, 1e-9)
	assert.InDelta(t, 0.2, d.Spells[0].Chance, 1e-12)

	// arcBolt: 4 × (1 + 10×0.5) + 10 × 1.2 × 0.8
	assert.InDelta(t, 33.6, d.Spells[1].Damage, 1e-9)

	// unknown spell: default 0.5 / 1.0 scaling, no poison power
	assert.InDelta(t, 12.0, d.Spells[2].Damage, 1e-9)
	assert.Equal(t, ElementPoison, d.Spells[2].Element)
}

func TestSoftCap_MonotonicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for range 1000 {
		level := rng.IntN(100)
		stat := rng.IntN(500)
		base := rng.Float64() * 0.1
		max := rng.Float64() * 0.5

		lo := SoftCap(base, max, stat, level)
		hi := SoftCap(base, max, stat+1+rng.IntN(50), level)

		assert.GreaterOrEqual(t, hi, lo, "stat=%d level=%d", stat, level)
		assert.LessOrEqual(t, hi, base+max)
		assert.GreaterOrEqual(t, lo, base)
	}
}

func TestPhysicalReduction_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for range 1000 {
		armor := rng.IntN(10_000)
		level := rng.IntN(200)

		r := PhysicalReduction(armor, level)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.Less(t, r, 1.0)

		assert.Greater(t, PhysicalReduction(armor+1, level), r, "increasing in armor")
		if armor > 0 {
			assert.Less(t, PhysicalReduction(armor, level+1), r, "decreasing in attacker level")
		}
	}
}

func TestDeriveStats_Pipeline(t *testing.T) {
	sword := weapon("sword", model.HandRight, 3, 5)
	sword.Template = &model.ItemTemplate{AttackType: "slashes"}
	items := []model.EquippedItem{sword}

	d := DeriveStats(items, 1, AttackTypeOf(items))

	assert.Equal(t, 3, d.PhysicalDamageMin)
	assert.Equal(t, 5, d.PhysicalDamageMax)
	assert.Equal(t, BaseHealth, d.Health)
	assert.Equal(t, "slashes", d.AttackType)
}

func TestEnemyStats(t *testing.T) {
	d := EnemyStats(57, 13, 2)

	assert.Equal(t, 57, d.Health)
	assert.Equal(t, 13, d.PhysicalDamageMin)
	assert.Equal(t, 13, d.PhysicalDamageMax)
	assert.Zero(t, d.CritChance)
	assert.Zero(t, d.DodgeChance)
	assert.Nil(t, d.Spells)
}
