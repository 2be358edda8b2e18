package stats

import "github.com/udisondev/dungeonrun/internal/model"

// Base values of the flat combat model.
const (
	FlatBaseHP     = 20
	FlatBaseDamage = 5
)

// Flat is the two-number stat block used by the flat damage model.
type Flat struct {
	HP     int `json:"hp"`
	Damage int `json:"damage"`
}

// FlatStats sums FlatBaseHP/FlatBaseDamage with every equipped item's numeric
// template baseStats.hp/damage and top-level bonuses.hp/damage.
// Hands play no role here; non-numeric values are skipped.
func FlatStats(items []model.EquippedItem) Flat {
	f := Flat{HP: FlatBaseHP, Damage: FlatBaseDamage}

	add := func(m map[string]any) {
		if v, ok := number(m, "hp"); ok {
			f.HP += floorInt(v)
		}
		if v, ok := number(m, "damage"); ok {
			f.Damage += floorInt(v)
		}
	}

	for i := range items {
		it := &items[i]
		if !it.Equipped {
			continue
		}
		if it.Template != nil {
			add(it.Template.BaseStats)
		}
		add(it.Bonuses)
	}
	return f
}
