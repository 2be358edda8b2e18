package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dungeonrun/internal/model"
)

// DungeonRepository управляет подземельями, противниками и прогрессом.
type DungeonRepository struct {
	db *pgxpool.Pool
}

// NewDungeonRepository создаёт новый DungeonRepository.
func NewDungeonRepository(db *pgxpool.Pool) *DungeonRepository {
	return &DungeonRepository{db: db}
}

const selectDungeon = `
	SELECT d.id, d.code, d.name, d.wave_comp,
	       s.hp_growth, s.atk_growth, s.def_growth, s.loot_growth,
	       r.base_gold_min, r.base_gold_max, r.base_xp_min, r.base_xp_max, r.drops
	FROM dungeons d
	LEFT JOIN dungeon_scaling s ON s.dungeon_id = d.id
	LEFT JOIN dungeon_rewards r ON r.dungeon_id = d.id`

// GetDungeon загружает подземелье со scaling и rewards.
// Возвращает nil, nil если подземелье не найдено.
func (r *DungeonRepository) GetDungeon(ctx context.Context, id string) (*model.Dungeon, error) {
	d, err := scanDungeon(r.db.QueryRow(ctx, selectDungeon+` WHERE d.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying dungeon %s: %w", id, err)
	}
	return d, nil
}

// ListDungeons загружает все подземелья в порядке position.
func (r *DungeonRepository) ListDungeons(ctx context.Context) ([]model.Dungeon, error) {
	rows, err := r.db.Query(ctx, selectDungeon+` ORDER BY d.position, d.id`)
	if err != nil {
		return nil, fmt.Errorf("querying dungeons: %w", err)
	}
	defer rows.Close()

	var out []model.Dungeon
	for rows.Next() {
		d, err := scanDungeon(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning dungeon: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dungeons: %w", err)
	}
	return out, nil
}

func scanDungeon(row pgx.Row) (*model.Dungeon, error) {
	var (
		d                              model.Dungeon
		hpG, atkG, defG, lootG         *float64
		goldMin, goldMax, xpMin, xpMax *int
		drops                          *model.DropTable
	)
	if err := row.Scan(
		&d.ID, &d.Code, &d.Name, &d.Waves,
		&hpG, &atkG, &defG, &lootG,
		&goldMin, &goldMax, &xpMin, &xpMax, &drops,
	); err != nil {
		return nil, err
	}

	if hpG != nil {
		d.Scaling = &model.DungeonScaling{HPGrowth: *hpG, AtkGrowth: *atkG, DefGrowth: *defG, LootGrowth: *lootG}
	}
	if goldMin != nil {
		d.Rewards = &model.DungeonRewards{
			BaseGoldMin: *goldMin,
			BaseGoldMax: *goldMax,
			BaseXPMin:   *xpMin,
			BaseXPMax:   *xpMax,
			Drops:       drops,
		}
	}
	return &d, nil
}

// GetEnemies загружает шаблоны противников по списку ID.
// Неизвестные ID пропускаются; вызывающий сам решает, ошибка ли это.
func (r *DungeonRepository) GetEnemies(ctx context.Context, ids []string) ([]model.EnemyTemplate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, name, hp, atk FROM enemies WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying enemies: %w", err)
	}
	defer rows.Close()

	var out []model.EnemyTemplate
	for rows.Next() {
		var e model.EnemyTemplate
		if err := rows.Scan(&e.ID, &e.Code, &e.Name, &e.HP, &e.Atk); err != nil {
			return nil, fmt.Errorf("scanning enemy: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enemies: %w", err)
	}
	return out, nil
}

// GetProgress возвращает прогресс персонажа в подземелье.
// Возвращает nil, nil если персонаж ещё ничего не прошёл.
func (r *DungeonRepository) GetProgress(ctx context.Context, characterID, dungeonID string) (*model.Progress, error) {
	p := model.Progress{CharacterID: characterID, DungeonID: dungeonID}
	err := r.db.QueryRow(ctx,
		`SELECT highest_level_cleared FROM dungeon_progress
		 WHERE character_id = $1 AND dungeon_id = $2`, characterID, dungeonID,
	).Scan(&p.HighestLevelCleared)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying progress of %s in %s: %w", characterID, dungeonID, err)
	}
	return &p, nil
}

// SaveProgress поднимает highest_level_cleared; никогда его не понижает.
func (r *DungeonRepository) SaveProgress(ctx context.Context, p model.Progress) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO dungeon_progress (character_id, dungeon_id, highest_level_cleared, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (character_id, dungeon_id) DO UPDATE SET
		  highest_level_cleared = GREATEST(dungeon_progress.highest_level_cleared, EXCLUDED.highest_level_cleared),
		  updated_at = now()`,
		p.CharacterID, p.DungeonID, p.HighestLevelCleared,
	)
	if err != nil {
		return fmt.Errorf("saving progress of %s in %s: %w", p.CharacterID, p.DungeonID, err)
	}
	return nil
}

// SaveEnemy создаёт или обновляет шаблон противника.
func (r *DungeonRepository) SaveEnemy(ctx context.Context, e model.EnemyTemplate) error {
	_, err := r.db.Exec(ctx, upsertEnemy, e.ID, e.Code, e.Name, e.HP, e.Atk)
	if err != nil {
		return fmt.Errorf("saving enemy %s: %w", e.ID, err)
	}
	return nil
}

// SaveDungeon сохраняет подземелье, его scaling и rewards в одной транзакции.
func (r *DungeonRepository) SaveDungeon(ctx context.Context, d model.Dungeon, position int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := saveDungeonTx(ctx, tx, d, position); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const upsertEnemy = `
	INSERT INTO enemies (id, code, name, hp, atk) VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET code = $2, name = $3, hp = $4, atk = $5`

func saveDungeonTx(ctx context.Context, tx pgx.Tx, d model.Dungeon, position int) error {
	waves := d.Waves
	if waves == nil {
		waves = []model.Wave{}
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO dungeons (id, code, name, position, wave_comp) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET code = $2, name = $3, position = $4, wave_comp = $5`,
		d.ID, d.Code, d.Name, position, waves,
	); err != nil {
		return fmt.Errorf("save dungeon %s: %w", d.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dungeon_scaling WHERE dungeon_id = $1`, d.ID); err != nil {
		return fmt.Errorf("clear scaling of %s: %w", d.ID, err)
	}
	if sc := d.Scaling; sc != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO dungeon_scaling (dungeon_id, hp_growth, atk_growth, def_growth, loot_growth)
			 VALUES ($1, $2, $3, $4, $5)`,
			d.ID, sc.HPGrowth, sc.AtkGrowth, sc.DefGrowth, sc.LootGrowth,
		); err != nil {
			return fmt.Errorf("save scaling of %s: %w", d.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dungeon_rewards WHERE dungeon_id = $1`, d.ID); err != nil {
		return fmt.Errorf("clear rewards of %s: %w", d.ID, err)
	}
	if rw := d.Rewards; rw != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO dungeon_rewards (dungeon_id, base_gold_min, base_gold_max, base_xp_min, base_xp_max, drops)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, rw.BaseGoldMin, rw.BaseGoldMax, rw.BaseXPMin, rw.BaseXPMax, rw.Drops,
		); err != nil {
			return fmt.Errorf("save rewards of %s: %w", d.ID, err)
		}
	}
	return nil
}
