package model

// EquippedItem is a read-only snapshot of a character item as the stat pipeline sees it.
//
// Bonuses is the item-specific payload decoded from storage as-is:
//
//	{
//	  "primary":      {"health": 10, "armor": 4, "minAttack": 3, "maxAttack": 7},
//	  "attributes":   {"strength": 2, "dexterity": 1, "intelligence": 0},
//	  "elementPower": {"fire": 5, "lightning": 0, "poison": 0},
//	  "special":      {"critChance": 0.02, "critDamage": 0.1, "dodgeChance": 0, "blockChance": 0},
//	  "spells":       {"fireball": {"chance": 0.1, "damage": 12}},
//	  "burnChance": 0.05, "burnDamage": 0.1, "poisonChance": 0, "poisonDamage": 0, "stunChance": 0
//	}
//
// Any field may be missing or carry the wrong type.
type EquippedItem struct {
	ID           string         `yaml:"id" json:"id"`
	Slot         Slot           `yaml:"slot" json:"slot"`
	Equipped     bool           `yaml:"equipped" json:"equipped"`
	EquippedHand Hand           `yaml:"equipped_hand" json:"equippedHand,omitempty"`
	TwoHanded    bool           `yaml:"two_handed" json:"isTwoHanded"`
	Template     *ItemTemplate  `yaml:"-" json:"template,omitempty"`
	Bonuses      map[string]any `yaml:"bonuses" json:"bonuses,omitempty"`
}

// IsWeapon reports whether the item is an equipped weapon.
func (it *EquippedItem) IsWeapon() bool {
	return it.Slot == SlotWeapon && it.Equipped
}

// IsShield reports whether the item is an equipped shield.
func (it *EquippedItem) IsShield() bool {
	return it.Slot == SlotShield && it.Equipped
}

// IsTwoHanded returns true if either the item or its template is flagged two-handed.
func (it *EquippedItem) IsTwoHanded() bool {
	if it.TwoHanded {
		return true
	}
	return it.Template != nil && it.Template.TwoHanded
}

// AttackType returns the template's attack verb, or "" if none.
func (it *EquippedItem) AttackType() string {
	if it.Template == nil {
		return ""
	}
	return it.Template.AttackType
}
