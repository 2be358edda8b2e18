package dungeon

import (
	"context"
	"errors"

	"github.com/udisondev/dungeonrun/internal/model"
)

var (
	// ErrNotFound: персонаж, подземелье или шаблон противника не найден.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied: уровень подземелья ещё не открыт для персонажа.
	ErrAccessDenied = errors.New("dungeon level not available")
	// ErrNoWaves: у подземелья нет ни одной волны.
	ErrNoWaves = errors.New("dungeon has no waves")
)

// CharacterStore loads characters and their equipment.
// Methods return nil, nil when the record does not exist.
type CharacterStore interface {
	GetCharacter(ctx context.Context, id string) (*model.Character, error)
	LoadEquipped(ctx context.Context, characterID string) ([]model.EquippedItem, error)
}

// DungeonStore loads dungeons and enemy templates and records progress.
// GetDungeon and GetProgress return nil, nil when the record does not exist.
type DungeonStore interface {
	GetDungeon(ctx context.Context, id string) (*model.Dungeon, error)
	ListDungeons(ctx context.Context) ([]model.Dungeon, error)
	GetEnemies(ctx context.Context, ids []string) ([]model.EnemyTemplate, error)
	GetProgress(ctx context.Context, characterID, dungeonID string) (*model.Progress, error)
	SaveProgress(ctx context.Context, p model.Progress) error
}
