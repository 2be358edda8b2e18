package db

import (
	"context"
	"testing"

	"github.com/udisondev/dungeonrun/internal/model"
	"github.com/udisondev/dungeonrun/internal/testutil"
)

// Benchmark LoadEquipped: HOT PATH (каждый запуск боя)
func BenchmarkCharacterRepository_LoadEquipped(b *testing.B) {
	pool := testutil.SetupTestDB(b)
	if err := ImportCatalog(context.Background(), pool, testutil.Catalog()); err != nil {
		b.Fatalf("importing catalog: %v", err)
	}
	repo := NewCharacterRepository(pool)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := repo.LoadEquipped(ctx, testutil.HeroID); err != nil {
				b.Errorf("LoadEquipped failed: %v", err)
			}
		}
	})
}

// Benchmark GetDungeon: WARM PATH
func BenchmarkDungeonRepository_GetDungeon(b *testing.B) {
	pool := testutil.SetupTestDB(b)
	if err := ImportCatalog(context.Background(), pool, testutil.Catalog()); err != nil {
		b.Fatalf("importing catalog: %v", err)
	}
	repo := NewDungeonRepository(pool)
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if _, err := repo.GetDungeon(ctx, testutil.CaveID); err != nil {
			b.Fatalf("GetDungeon failed: %v", err)
		}
	}
}

// Benchmark SaveProgress: выполняется после каждой победы
func BenchmarkDungeonRepository_SaveProgress(b *testing.B) {
	pool := testutil.SetupTestDB(b)
	if err := ImportCatalog(context.Background(), pool, testutil.Catalog()); err != nil {
		b.Fatalf("importing catalog: %v", err)
	}
	repo := NewDungeonRepository(pool)
	ctx := context.Background()

	level := 0
	b.ResetTimer()
	for b.Loop() {
		level++
		p := model.Progress{CharacterID: testutil.HeroID, DungeonID: testutil.CaveID, HighestLevelCleared: level}
		if err := repo.SaveProgress(ctx, p); err != nil {
			b.Fatalf("SaveProgress failed: %v", err)
		}
	}
}
