package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/stats"
	"github.com/udisondev/dungeonrun/internal/testutil"
)

func TestRepositories(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, ImportCatalog(ctx, pool, testutil.Catalog()))
	chars := NewCharacterRepository(pool)
	dungeons := NewDungeonRepository(pool)

	t.Run("GetCharacter", func(t *testing.T) {
		c, err := chars.GetCharacter(ctx, testutil.HeroID)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Hero", c.Name)
		assert.Equal(t, 10, c.Level)

		// Несуществующий персонаж: не ошибка
		c, err = chars.GetCharacter(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("LoadEquipped", func(t *testing.T) {
		items, err := chars.LoadEquipped(ctx, testutil.HeroID)
		require.NoError(t, err)
		require.Len(t, items, 2)

		sword := items[0]
		assert.Equal(t, "hero_sword", sword.ID)
		assert.Equal(t, model.SlotWeapon, sword.Slot)
		assert.Equal(t, model.HandRight, sword.EquippedHand)
		require.NotNil(t, sword.Template)
		assert.Equal(t, "slashes", sword.AttackType())

		// JSONB numbers come back as float64; the aggregator accepts them
		d := stats.DeriveStats(items, 10, stats.AttackTypeOf(items))
		assert.Equal(t, "slashes", d.AttackType)
		assert.Equal(t, 10, d.Armor)
		assert.Greater(t, d.PhysicalDamageMin, 40)

		items, err = chars.LoadEquipped(ctx, testutil.RookieID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("SaveItem", func(t *testing.T) {
		it := model.EquippedItem{ID: "rookie_helmet", Equipped: true, Bonuses: map[string]any{"primary": map[string]any{"armor": 3}}}
		require.NoError(t, chars.SaveItem(ctx, testutil.RookieID, testutil.HelmetID, 0, it))

		items, err := chars.LoadEquipped(ctx, testutil.RookieID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.SlotHead, items[0].Slot)
	})

	t.Run("GetDungeon", func(t *testing.T) {
		d, err := dungeons.GetDungeon(ctx, testutil.CaveID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, []string{testutil.RatID, testutil.RatKingID}, d.EnemyIDs())
		assert.Equal(t, 2, d.Waves[0].Enemies[0].Count)
		require.NotNil(t, d.Scaling)
		assert.InDelta(t, 0.5, d.Scaling.LootGrowth, 1e-9)
		require.NotNil(t, d.Rewards)
		assert.Equal(t, 20, d.Rewards.BaseGoldMax)
		require.NotNil(t, d.Rewards.Drops)
		assert.Equal(t, []model.DropEntry{
			{ItemID: testutil.SwordID, Weight: 0.3},
			{ItemID: testutil.HelmetID, Weight: 0.2},
		}, d.Rewards.Drops.Items)

		empty, err := dungeons.GetDungeon(ctx, testutil.EmptyID)
		require.NoError(t, err)
		require.NotNil(t, empty)
		assert.Empty(t, empty.Waves)
		assert.Nil(t, empty.Scaling)
		assert.Nil(t, empty.Rewards)

		missing, err := dungeons.GetDungeon(ctx, "nowhere")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ListDungeons", func(t *testing.T) {
		list, err := dungeons.ListDungeons(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, testutil.CaveID, list[0].ID, "catalog order is kept")
	})

	t.Run("GetEnemies", func(t *testing.T) {
		enemies, err := dungeons.GetEnemies(ctx, []string{testutil.RatKingID, testutil.GhostID, testutil.RatID})
		require.NoError(t, err)
		require.Len(t, enemies, 2)
		assert.Equal(t, testutil.RatID, enemies[0].ID)
		assert.Equal(t, 40, enemies[1].HP)
	})

	t.Run("Progress", func(t *testing.T) {
		p, err := dungeons.GetProgress(ctx, testutil.HeroID, testutil.CaveID)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 1, p.HighestLevelCleared)

		require.NoError(t, dungeons.SaveProgress(ctx, model.Progress{CharacterID: testutil.HeroID, DungeonID: testutil.CaveID, HighestLevelCleared: 4}))
		require.NoError(t, dungeons.SaveProgress(ctx, model.Progress{CharacterID: testutil.HeroID, DungeonID: testutil.CaveID, HighestLevelCleared: 2}))

		p, err = dungeons.GetProgress(ctx, testutil.HeroID, testutil.CaveID)
		require.NoError(t, err)
		assert.Equal(t, 4, p.HighestLevelCleared, "progress never decreases")

		p, err = dungeons.GetProgress(ctx, testutil.RookieID, testutil.CaveID)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("ImportIsIdempotent", func(t *testing.T) {
		require.NoError(t, ImportCatalog(ctx, pool, testutil.Catalog()))

		list, err := dungeons.ListDungeons(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)

		// re-import keeps the higher recorded progress
		p, err := dungeons.GetProgress(ctx, testutil.HeroID, testutil.CaveID)
		require.NoError(t, err)
		assert.Equal(t, 4, p.HighestLevelCleared)
	})

	t.Run("RewardsWithoutDrops", func(t *testing.T) {
		d := model.Dungeon{
			ID:      "plain",
			Code:    "plain",
			Name:    "Plain",
			Rewards: &model.DungeonRewards{BaseGoldMin: 1, BaseGoldMax: 2},
		}
		require.NoError(t, dungeons.SaveDungeon(ctx, d, 99))

		got, err := dungeons.GetDungeon(ctx, "plain")
		require.NoError(t, err)
		require.NotNil(t, got.Rewards)
		assert.Equal(t, 2, got.Rewards.BaseGoldMax)
		assert.Nil(t, got.Rewards.Drops)
	})
}
