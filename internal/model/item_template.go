package model

// ItemTemplate: шаблон предмета из каталога.
// BaseStats хранит сырые значения шаблона (JSON-shaped), например {"attack": 6}.
type ItemTemplate struct {
	ID         string         `yaml:"id" json:"id"`
	Name       string         `yaml:"name" json:"name"`
	Slot       Slot           `yaml:"slot" json:"slot"`
	TwoHanded  bool           `yaml:"two_handed" json:"isTwoHanded"`
	AttackType string         `yaml:"attack_type" json:"attackType,omitempty"` // "slashes", "smashes", ...
	BaseStats  map[string]any `yaml:"base_stats" json:"baseStats,omitempty"`
}

// Slot is the equipment slot an item occupies.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotShield Slot = "shield"
	SlotHead   Slot = "head"
	SlotChest  Slot = "chest"
	SlotGloves Slot = "gloves"
	SlotFeet   Slot = "feet"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
)

// Hand identifies which hand holds a weapon or shield.
type Hand string

const (
	HandNone  Hand = ""
	HandRight Hand = "right"
	HandLeft  Hand = "left"
)
