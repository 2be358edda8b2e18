package data

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/stats"
)

func loadTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	c, err := LoadCatalog("testdata/catalog.yaml")
	require.NoError(t, err)
	return NewMemoryStore(c)
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("testdata/catalog.yaml")
	require.NoError(t, err)

	require.Len(t, c.Enemies, 2)
	require.Len(t, c.Dungeons, 1)
	d := c.Dungeons[0]
	assert.Equal(t, []string{"rat", "bat"}, d.EnemyIDs())
	require.NotNil(t, d.Scaling)
	assert.InDelta(t, 0.5, d.Scaling.LootGrowth, 1e-9)
	require.NotNil(t, d.Rewards)
	assert.Equal(t, 20, d.Rewards.BaseGoldMax)
	require.NotNil(t, d.Rewards.Drops)
	assert.Equal(t, []model.DropEntry{{ItemID: "stick", Weight: 0.5}}, d.Rewards.Drops.Items)

	require.Len(t, c.Characters, 1)
	assert.Equal(t, "Kid", c.Characters[0].Name)
	assert.Equal(t, model.HandRight, c.Characters[0].Items[0].Hand)
}

func TestLoadCatalog_SampleDataIsValid(t *testing.T) {
	c, err := LoadCatalog("../../data/catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, c.Dungeons, 3)
	assert.Len(t, c.Enemies, 5)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog("testdata/nope.yaml")
	require.Error(t, err)
}

func TestParseCatalog_DanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown enemy in wave",
			yaml: `
dungeons:
  - {id: d, waves: [{enemies: [{id: ghost, count: 1}]}]}
`,
			want: `unknown enemy "ghost"`,
		},
		{
			name: "unknown item template",
			yaml: `
characters:
  - {id: c, items: [{id: i, template: nope}]}
`,
			want: `unknown template "nope"`,
		},
		{
			name: "drop of unknown item template",
			yaml: `
dungeons:
  - id: d
    rewards: {drops: {items: [{item_id: relic, weight: 1}]}}
`,
			want: `unknown item template "relic"`,
		},
		{
			name: "negative drop weight",
			yaml: `
item_templates:
  - {id: relic, slot: ring}
dungeons:
  - id: d
    rewards: {drops: {items: [{item_id: relic, weight: -1}]}}
`,
			want: `invalid weight -1`,
		},
		{
			name: "duplicate enemy",
			yaml: `
enemies:
  - {id: e}
  - {id: e}
`,
			want: `enemy "e": empty or duplicate id`,
		},
		{
			name: "progress for unknown dungeon",
			yaml: `
characters:
  - {id: c}
progress:
  - {character_id: c, dungeon_id: d, highest_level_cleared: 1}
`,
			want: `unknown dungeon "d"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMemoryStore_Characters(t *testing.T) {
	s := loadTestStore(t)
	ctx := context.Background()

	c, err := s.GetCharacter(ctx, "kid")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Level)

	// Несуществующий персонаж
	c, err = s.GetCharacter(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, c)

	items, err := s.LoadEquipped(ctx, "kid")
	require.NoError(t, err)
	require.Len(t, items, 1, "unequipped cap must be filtered")
	assert.Equal(t, model.SlotWeapon, items[0].Slot)
	require.NotNil(t, items[0].Template)
	assert.Equal(t, "whacks", items[0].AttackType())
}

func TestMemoryStore_EquippedItemsDeriveStats(t *testing.T) {
	s := loadTestStore(t)

	items, err := s.LoadEquipped(context.Background(), "kid")
	require.NoError(t, err)

	d := stats.DeriveStats(items, 2, stats.AttackTypeOf(items))
	assert.Equal(t, "whacks", d.AttackType)
	assert.Equal(t, 3, d.PhysicalDamageMin)
	assert.Equal(t, 5, d.PhysicalDamageMax)
	require.Len(t, d.Spells, 1)
	assert.Equal(t, "arcBolt", d.Spells[0].Name)
}

func TestMemoryStore_Dungeons(t *testing.T) {
	s := loadTestStore(t)
	ctx := context.Background()

	d, err := s.GetDungeon(ctx, "cellar")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Cellar", d.Name)

	d, err = s.GetDungeon(ctx, "attic")
	require.NoError(t, err)
	assert.Nil(t, d)

	list, err := s.ListDungeons(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	enemies, err := s.GetEnemies(ctx, []string{"bat", "ghost", "rat"})
	require.NoError(t, err)
	require.Len(t, enemies, 2)
	assert.Equal(t, "bat", enemies[0].ID)
	assert.Equal(t, "rat", enemies[1].ID)
}

func TestMemoryStore_ProgressNeverDecreases(t *testing.T) {
	s := loadTestStore(t)
	ctx := context.Background()

	p, err := s.GetProgress(ctx, "kid", "cellar")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.HighestLevelCleared)

	require.NoError(t, s.SaveProgress(ctx, model.Progress{CharacterID: "kid", DungeonID: "cellar", HighestLevelCleared: 3}))
	require.NoError(t, s.SaveProgress(ctx, model.Progress{CharacterID: "kid", DungeonID: "cellar", HighestLevelCleared: 2}))

	p, err = s.GetProgress(ctx, "kid", "cellar")
	require.NoError(t, err)
	assert.Equal(t, 3, p.HighestLevelCleared)

	p, err = s.GetProgress(ctx, "kid", "attic")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMemoryStore_ConcurrentProgress(t *testing.T) {
	s := loadTestStore(t)
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func(level int) {
			defer wg.Done()
			_ = s.SaveProgress(ctx, model.Progress{CharacterID: "kid", DungeonID: "cellar", HighestLevelCleared: level})
			_, _ = s.GetProgress(ctx, "kid", "cellar")
		}(i + 1)
	}
	wg.Wait()

	p, err := s.GetProgress(ctx, "kid", "cellar")
	require.NoError(t, err)
	assert.Equal(t, goroutines, p.HighestLevelCleared)
}
