package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/dungeonrun/internal/model"
)

func TestFlatStats_NoItemsUsesBase(t *testing.T) {
	assert.Equal(t, Flat{HP: FlatBaseHP, Damage: FlatBaseDamage}, FlatStats(nil))
}

func TestFlatStats_SumsTemplateAndBonuses(t *testing.T) {
	sword := weapon("sword", model.HandRight, 40, 60)
	sword.Template = &model.ItemTemplate{BaseStats: map[string]any{"damage": 6, "attack": 99}}
	sword.Bonuses["damage"] = 4
	sword.Bonuses["hp"] = "lots"

	chest := gear("chest", model.SlotChest, map[string]any{"hp": 15.7})
	chest.Template = &model.ItemTemplate{BaseStats: map[string]any{"hp": 10}}

	stored := gear("ring", model.SlotRing, map[string]any{"damage": 100})
	stored.Equipped = false

	got := FlatStats([]model.EquippedItem{sword, chest, stored})

	// 20 + 10 + floor(15.7); 5 + 6 + 4
	assert.Equal(t, Flat{HP: 45, Damage: 15}, got)
}
