package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dungeonrun/internal/model"
)

// CharacterRepository управляет персонажами и их предметами в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// GetCharacter загружает персонажа по ID.
// Возвращает nil, nil если персонаж не найден.
func (r *CharacterRepository) GetCharacter(ctx context.Context, id string) (*model.Character, error) {
	var c model.Character
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, level, experience, gold
		 FROM characters WHERE id = $1`, id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Level, &c.Experience, &c.Gold)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %s: %w", id, err)
	}
	return &c, nil
}

// SaveCharacter создаёт или обновляет персонажа.
func (r *CharacterRepository) SaveCharacter(ctx context.Context, c model.Character) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO characters (id, user_id, name, level, experience, gold)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		  user_id = $2, name = $3, level = $4, experience = $5, gold = $6`,
		c.ID, c.UserID, c.Name, max(1, c.Level), c.Experience, c.Gold,
	)
	if err != nil {
		return fmt.Errorf("saving character %s: %w", c.ID, err)
	}
	return nil
}

// LoadEquipped загружает экипированные предметы персонажа вместе с шаблонами,
// в порядке position.
func (r *CharacterRepository) LoadEquipped(ctx context.Context, characterID string) ([]model.EquippedItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ci.id, ci.equipped, ci.equipped_hand, ci.two_handed, ci.bonuses,
		        t.id, t.name, t.slot, t.two_handed, t.attack_type, t.base_stats
		 FROM character_items ci
		 JOIN item_templates t ON t.id = ci.template_id
		 WHERE ci.character_id = $1 AND ci.equipped
		 ORDER BY ci.position, ci.id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying equipped items of %s: %w", characterID, err)
	}
	defer rows.Close()

	var items []model.EquippedItem
	for rows.Next() {
		var (
			it   model.EquippedItem
			t    model.ItemTemplate
			hand string
			slot string
		)
		if err := rows.Scan(
			&it.ID, &it.Equipped, &hand, &it.TwoHanded, &it.Bonuses,
			&t.ID, &t.Name, &slot, &t.TwoHanded, &t.AttackType, &t.BaseStats,
		); err != nil {
			return nil, fmt.Errorf("scanning item of %s: %w", characterID, err)
		}
		it.EquippedHand = model.Hand(hand)
		t.Slot = model.Slot(slot)
		it.Slot = t.Slot
		it.Template = &t
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items of %s: %w", characterID, err)
	}
	return items, nil
}

// SaveItemTemplate создаёт или обновляет шаблон предмета.
func (r *CharacterRepository) SaveItemTemplate(ctx context.Context, t model.ItemTemplate) error {
	_, err := r.db.Exec(ctx, upsertItemTemplate,
		t.ID, t.Name, string(t.Slot), t.TwoHanded, t.AttackType, jsonObject(t.BaseStats))
	if err != nil {
		return fmt.Errorf("saving item template %s: %w", t.ID, err)
	}
	return nil
}

// SaveItem создаёт или обновляет предмет персонажа. Шаблон должен существовать.
func (r *CharacterRepository) SaveItem(ctx context.Context, characterID, templateID string, position int, it model.EquippedItem) error {
	_, err := r.db.Exec(ctx, upsertCharacterItem,
		it.ID, characterID, templateID, position, it.Equipped, string(it.EquippedHand), it.TwoHanded, jsonObject(it.Bonuses))
	if err != nil {
		return fmt.Errorf("saving item %s of %s: %w", it.ID, characterID, err)
	}
	return nil
}

const upsertItemTemplate = `
	INSERT INTO item_templates (id, name, slot, two_handed, attack_type, base_stats)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
	 name = $2, slot = $3, two_handed = $4, attack_type = $5, base_stats = $6`

const upsertCharacterItem = `
	INSERT INTO character_items (id, character_id, template_id, position, equipped, equipped_hand, two_handed, bonuses)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
	 character_id = $2, template_id = $3, position = $4, equipped = $5,
	 equipped_hand = $6, two_handed = $7, bonuses = $8`

// jsonObject keeps NOT NULL JSONB columns at '{}' for nil maps.
func jsonObject(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
