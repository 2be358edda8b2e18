package testutil

import (
	"github.com/udisondev/dungeonrun/internal/data"
	"github.com/udisondev/dungeonrun/internal/model"
)

// Fixture ids.
const (
	HeroID    = "hero"
	RookieID  = "rookie"
	CaveID    = "cave"
	EmptyID   = "empty"
	BrokenID  = "broken"
	RatID     = "rat"
	RatKingID = "rat_king"
	SwordID   = "sword"
	HelmetID  = "helmet"
	GhostID   = "ghost"
)

// Catalog returns a fresh catalog shared by store and service tests.
//
//	hero  : level 10, strong sword (flat 220 hp / 50 damage), cleared cave level 1
//	rookie: level 1, no items (flat 20 hp / 5 damage), no progress
//	cave  : rats, two waves, scaling and rewards
//	empty : no waves
//	broken: references an enemy that is not in the catalog
//
// The broken dungeon fails Validate, so the catalog is meant for stores
// that accept unvalidated data (NewMemoryStore, ImportCatalog).
func Catalog() *data.Catalog {
	return &data.Catalog{
		Enemies: []model.EnemyTemplate{
			{ID: RatID, Code: RatID, Name: "Rat", HP: 10, Atk: 2},
			{ID: RatKingID, Code: RatKingID, Name: "Rat King", HP: 40, Atk: 6},
		},
		Dungeons: []model.Dungeon{
			{
				ID:   CaveID,
				Code: CaveID,
				Name: "Cave",
				Waves: []model.Wave{
					{Enemies: []model.EnemyRef{{ID: RatID, Count: 2}}},
					{Enemies: []model.EnemyRef{{ID: RatKingID, Count: 1}}},
				},
				Scaling: &model.DungeonScaling{HPGrowth: 0.1, AtkGrowth: 0.1, DefGrowth: 0.05, LootGrowth: 0.5},
				Rewards: &model.DungeonRewards{
					BaseGoldMin: 10,
					BaseGoldMax: 20,
					BaseXPMin:   5,
					BaseXPMax:   10,
					Drops: &model.DropTable{Items: []model.DropEntry{
						{ItemID: SwordID, Weight: 0.3},
						{ItemID: HelmetID, Weight: 0.2},
					}},
				},
			},
			{ID: EmptyID, Code: EmptyID, Name: "Empty"},
			{
				ID:    BrokenID,
				Code:  BrokenID,
				Name:  "Broken",
				Waves: []model.Wave{{Enemies: []model.EnemyRef{{ID: GhostID, Count: 1}}}},
			},
		},
		ItemTemplates: []model.ItemTemplate{
			{ID: SwordID, Name: "Sword", Slot: model.SlotWeapon, AttackType: "slashes", BaseStats: map[string]any{"attack": 5}},
			{ID: HelmetID, Name: "Helmet", Slot: model.SlotHead},
		},
		Characters: []data.CharacterEntry{
			{
				Character: model.Character{ID: HeroID, Name: "Hero", Level: 10},
				Items: []data.ItemEntry{
					{
						ID:       "hero_sword",
						Template: SwordID,
						Equipped: true,
						Hand:     model.HandRight,
						Bonuses: map[string]any{
							"primary":    map[string]any{"minAttack": 40, "maxAttack": 60, "health": 200},
							"attributes": map[string]any{"strength": 20},
							"hp":         200,
							"damage":     45,
						},
					},
					{
						ID:       "hero_helmet",
						Template: HelmetID,
						Equipped: true,
						Bonuses:  map[string]any{"primary": map[string]any{"armor": 10}},
					},
				},
			},
			{Character: model.Character{ID: RookieID, Name: "Rookie", Level: 1}},
		},
		Progress: []model.Progress{
			{CharacterID: HeroID, DungeonID: CaveID, HighestLevelCleared: 1},
		},
	}
}
