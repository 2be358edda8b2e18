package model

// EnemyTemplate: базовый шаблон противника (до масштабирования по уровню подземелья).
type EnemyTemplate struct {
	ID   string `yaml:"id" json:"id"`
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	HP   int    `yaml:"hp" json:"hp"`
	Atk  int    `yaml:"atk" json:"atk"`
}

// EnemyRef references an enemy template inside a wave.
type EnemyRef struct {
	ID    string `yaml:"id" json:"id"`
	Count int    `yaml:"count" json:"count"`
}

// Wave is one group of enemies fought together.
type Wave struct {
	Enemies []EnemyRef `yaml:"enemies" json:"enemies"`
}

// DungeonScaling holds per-level growth factors.
// A stat at level L is floor(base × (1 + growth × L)).
type DungeonScaling struct {
	HPGrowth   float64 `yaml:"hp_growth" json:"hpGrowth"`
	AtkGrowth  float64 `yaml:"atk_growth" json:"atkGrowth"`
	DefGrowth  float64 `yaml:"def_growth" json:"defGrowth"`
	LootGrowth float64 `yaml:"loot_growth" json:"lootGrowth"`
}

// DungeonRewards holds the unscaled reward ranges and the optional drop table.
type DungeonRewards struct {
	BaseGoldMin int        `yaml:"base_gold_min" json:"baseGoldMin"`
	BaseGoldMax int        `yaml:"base_gold_max" json:"baseGoldMax"`
	BaseXPMin   int        `yaml:"base_xp_min" json:"baseXpMin"`
	BaseXPMax   int        `yaml:"base_xp_max" json:"baseXpMax"`
	Drops       *DropTable `yaml:"drops" json:"dropsJson,omitempty"`
}

// DropTable: возможный лут подземелья. Веса не масштабируются по уровню.
type DropTable struct {
	Items []DropEntry `yaml:"items" json:"items"`
}

// DropEntry is one item template that may drop, with its weight.
type DropEntry struct {
	ItemID string  `yaml:"item_id" json:"itemId"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Dungeon: подземелье: состав волн, масштабирование и награды.
// Scaling и Rewards могут отсутствовать (nil).
type Dungeon struct {
	ID      string          `yaml:"id" json:"id"`
	Code    string          `yaml:"code" json:"code"`
	Name    string          `yaml:"name" json:"name"`
	Waves   []Wave          `yaml:"waves" json:"waveComp"`
	Scaling *DungeonScaling `yaml:"scaling" json:"scaling,omitempty"`
	Rewards *DungeonRewards `yaml:"rewards" json:"rewards,omitempty"`
}

// EnemyIDs returns the distinct enemy template IDs referenced by all waves, in first-seen order.
func (d *Dungeon) EnemyIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, w := range d.Waves {
		for _, ref := range w.Enemies {
			if _, ok := seen[ref.ID]; ok {
				continue
			}
			seen[ref.ID] = struct{}{}
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// Progress tracks the highest dungeon level a character has cleared.
type Progress struct {
	CharacterID         string `yaml:"character_id" json:"characterId"`
	DungeonID           string `yaml:"dungeon_id" json:"dungeonId"`
	HighestLevelCleared int    `yaml:"highest_level_cleared" json:"highestLevelCleared"`
}
