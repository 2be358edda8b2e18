package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dungeonrun/internal/data"
)

// ImportCatalog upserts a whole catalog in a single transaction.
// Existing progress is raised, never lowered.
func ImportCatalog(ctx context.Context, pool *pgxpool.Pool, c *data.Catalog) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, e := range c.Enemies {
		batch.Queue(upsertEnemy, e.ID, e.Code, e.Name, e.HP, e.Atk)
	}
	for _, t := range c.ItemTemplates {
		batch.Queue(upsertItemTemplate, t.ID, t.Name, string(t.Slot), t.TwoHanded, t.AttackType, jsonObject(t.BaseStats))
	}
	for _, ch := range c.Characters {
		batch.Queue(
			`INSERT INTO characters (id, user_id, name, level, experience, gold)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET
			  user_id = $2, name = $3, level = $4, experience = $5, gold = $6`,
			ch.ID, ch.UserID, ch.Name, max(1, ch.Level), ch.Experience, ch.Gold,
		)
		for i, it := range ch.Items {
			batch.Queue(upsertCharacterItem,
				it.ID, ch.ID, it.Template, i, it.Equipped, string(it.Hand), it.TwoHanded, jsonObject(it.Bonuses))
		}
	}
	if err := execBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("import reference data: %w", err)
	}

	for i, d := range c.Dungeons {
		if err := saveDungeonTx(ctx, tx, d, i); err != nil {
			return err
		}
	}

	progress := &pgx.Batch{}
	for _, p := range c.Progress {
		progress.Queue(
			`INSERT INTO dungeon_progress (character_id, dungeon_id, highest_level_cleared)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (character_id, dungeon_id) DO UPDATE SET
			  highest_level_cleared = GREATEST(dungeon_progress.highest_level_cleared, EXCLUDED.highest_level_cleared)`,
			p.CharacterID, p.DungeonID, p.HighestLevelCleared,
		)
	}
	if err := execBatch(ctx, tx, progress); err != nil {
		return fmt.Errorf("import progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit catalog import: %w", err)
	}

	slog.Info("catalog imported",
		"enemies", len(c.Enemies),
		"dungeons", len(c.Dungeons),
		"itemTemplates", len(c.ItemTemplates),
		"characters", len(c.Characters))
	return nil
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return err
		}
	}
	return br.Close()
}
