package data

import (
	"context"
	"maps"
	"sync"

	"github.com/udisondev/dungeonrun/internal/model"
)

// MemoryStore serves a Catalog from memory. Reference data is read-only after
// construction; progress is guarded by mu.
type MemoryStore struct {
	characters map[string]model.Character
	items      map[string][]model.EquippedItem
	dungeons   []model.Dungeon
	dungeonIdx map[string]int
	enemies    map[string]model.EnemyTemplate

	mu       sync.RWMutex
	progress map[progressKey]int
}

type progressKey struct {
	characterID string
	dungeonID   string
}

// NewMemoryStore indexes a validated catalog.
func NewMemoryStore(c *Catalog) *MemoryStore {
	s := &MemoryStore{
		characters: make(map[string]model.Character, len(c.Characters)),
		items:      make(map[string][]model.EquippedItem, len(c.Characters)),
		dungeons:   c.Dungeons,
		dungeonIdx: make(map[string]int, len(c.Dungeons)),
		enemies:    make(map[string]model.EnemyTemplate, len(c.Enemies)),
		progress:   make(map[progressKey]int, len(c.Progress)),
	}

	templates := make(map[string]*model.ItemTemplate, len(c.ItemTemplates))
	for i := range c.ItemTemplates {
		templates[c.ItemTemplates[i].ID] = &c.ItemTemplates[i]
	}

	for _, ch := range c.Characters {
		s.characters[ch.ID] = ch.Character
		items := make([]model.EquippedItem, 0, len(ch.Items))
		for _, it := range ch.Items {
			tmpl := templates[it.Template]
			item := model.EquippedItem{
				ID:           it.ID,
				Equipped:     it.Equipped,
				EquippedHand: it.Hand,
				TwoHanded:    it.TwoHanded,
				Template:     tmpl,
				Bonuses:      it.Bonuses,
			}
			if tmpl != nil {
				item.Slot = tmpl.Slot
			}
			items = append(items, item)
		}
		s.items[ch.ID] = items
	}

	for i, d := range c.Dungeons {
		s.dungeonIdx[d.ID] = i
	}
	for _, e := range c.Enemies {
		s.enemies[e.ID] = e
	}
	for _, p := range c.Progress {
		s.progress[progressKey{p.CharacterID, p.DungeonID}] = p.HighestLevelCleared
	}
	return s
}

// GetCharacter returns nil, nil if the character does not exist.
func (s *MemoryStore) GetCharacter(_ context.Context, id string) (*model.Character, error) {
	c, ok := s.characters[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// LoadEquipped returns the equipped items of a character.
func (s *MemoryStore) LoadEquipped(_ context.Context, characterID string) ([]model.EquippedItem, error) {
	var out []model.EquippedItem
	for _, it := range s.items[characterID] {
		if !it.Equipped {
			continue
		}
		it.Bonuses = maps.Clone(it.Bonuses)
		out = append(out, it)
	}
	return out, nil
}

// GetDungeon returns nil, nil if the dungeon does not exist.
func (s *MemoryStore) GetDungeon(_ context.Context, id string) (*model.Dungeon, error) {
	i, ok := s.dungeonIdx[id]
	if !ok {
		return nil, nil
	}
	d := s.dungeons[i]
	return &d, nil
}

// ListDungeons returns dungeons in catalog order.
func (s *MemoryStore) ListDungeons(context.Context) ([]model.Dungeon, error) {
	out := make([]model.Dungeon, len(s.dungeons))
	copy(out, s.dungeons)
	return out, nil
}

// GetEnemies returns the known templates among ids. Unknown ids are skipped.
func (s *MemoryStore) GetEnemies(_ context.Context, ids []string) ([]model.EnemyTemplate, error) {
	out := make([]model.EnemyTemplate, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.enemies[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetProgress returns nil, nil if the character never cleared the dungeon.
func (s *MemoryStore) GetProgress(_ context.Context, characterID, dungeonID string) (*model.Progress, error) {
	s.mu.RLock()
	highest, ok := s.progress[progressKey{characterID, dungeonID}]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &model.Progress{CharacterID: characterID, DungeonID: dungeonID, HighestLevelCleared: highest}, nil
}

// SaveProgress raises the highest cleared level; it never lowers it.
func (s *MemoryStore) SaveProgress(_ context.Context, p model.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey{p.CharacterID, p.DungeonID}
	if p.HighestLevelCleared > s.progress[key] {
		s.progress[key] = p.HighestLevelCleared
	}
	return nil
}
