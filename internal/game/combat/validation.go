package combat

import (
	"errors"
	"fmt"
)

var (
	ErrNoPlayer  = errors.New("combat has no player")
	ErrNoEnemies = errors.New("combat has no enemies")
)

// ValidateSetup checks seeds before a run.
//
// Checks:
//   - player has an id and positive HP
//   - at least one enemy
//   - every enemy has an id and positive HP
//   - ids are unique, since frames reference entities by id
func ValidateSetup(player Seed, enemies []Seed) error {
	if player.ID == "" || player.HP <= 0 {
		return ErrNoPlayer
	}
	if len(enemies) == 0 {
		return ErrNoEnemies
	}

	seen := map[string]struct{}{player.ID: {}}
	for i, e := range enemies {
		if e.ID == "" {
			return fmt.Errorf("enemy %d: empty id", i)
		}
		if e.HP <= 0 {
			return fmt.Errorf("enemy %s: hp must be positive, got %d", e.ID, e.HP)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("duplicate entity id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
