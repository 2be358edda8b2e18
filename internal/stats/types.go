package stats

import "fmt"

// Element is the damage element of elemental power, spells and DoTs.
type Element uint8

const (
	ElementFire Element = iota
	ElementLightning
	ElementPoison
)

// String returns the element name used in payloads and logs.
func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementLightning:
		return "lightning"
	case ElementPoison:
		return "poison"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(b []byte) error {
	el, ok := ParseElement(string(b))
	if !ok {
		return fmt.Errorf("unknown element %q", b)
	}
	*e = el
	return nil
}

// ParseElement parses an element name.
func ParseElement(s string) (Element, bool) {
	switch s {
	case "fire":
		return ElementFire, true
	case "lightning":
		return ElementLightning, true
	case "poison":
		return ElementPoison, true
	}
	return 0, false
}

// RawSpell is a spell entry merged from equipment, before INT scaling.
type RawSpell struct {
	Name    string  `json:"name"`
	Chance  float64 `json:"chance"`
	Damage  float64 `json:"damage"`
	Element Element `json:"element"`
}

// Raw holds unscaled totals aggregated from equipment.
// Flat stats are whole numbers: every contribution is floored when added.
type Raw struct {
	Health       int `json:"health"`
	Armor        int `json:"armor"`
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`

	BaseWeaponMin int `json:"baseWeaponMin"`
	BaseWeaponMax int `json:"baseWeaponMax"`

	FireFlat      int `json:"fireFlat"`
	LightningFlat int `json:"lightningFlat"`
	PoisonFlat    int `json:"poisonFlat"`

	CritChanceBonus  float64 `json:"critChanceBonus"`
	CritDamageBonus  float64 `json:"critDamageBonus"`
	DodgeChanceBonus float64 `json:"dodgeChanceBonus"`
	BlockChanceBonus float64 `json:"blockChanceBonus"`

	// Spells keeps first-seen order; the resolver rolls them in this order.
	Spells []RawSpell `json:"spells,omitempty"`

	BurnChanceBonus   float64 `json:"burnChanceBonus,omitempty"`
	BurnDamageBonus   float64 `json:"burnDamageBonus,omitempty"`
	PoisonChanceBonus float64 `json:"poisonChanceBonus,omitempty"`
	PoisonDamageBonus float64 `json:"poisonDamageBonus,omitempty"`
	StunChanceBonus   float64 `json:"stunChanceBonus,omitempty"`
}

// Spell returns the merged spell with the given name.
func (r *Raw) Spell(name string) (RawSpell, bool) {
	for _, s := range r.Spells {
		if s.Name == name {
			return s, true
		}
	}
	return RawSpell{}, false
}

// ElementFlat returns the flat elemental power for an element.
func (r *Raw) ElementFlat(e Element) int {
	switch e {
	case ElementFire:
		return r.FireFlat
	case ElementLightning:
		return r.LightningFlat
	case ElementPoison:
		return r.PoisonFlat
	}
	return 0
}

// SpellStats is a fully scaled spell ready for the resolver.
type SpellStats struct {
	Name    string  `json:"name"`
	Chance  float64 `json:"chance"`
	Damage  float64 `json:"damage"`
	Element Element `json:"element"`
}

// Derived holds combat-ready stats. A Derived value is never mutated after Derive returns it.
type Derived struct {
	Health       int `json:"health"`
	Armor        int `json:"armor"`
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`

	PhysicalDamageMin int `json:"physicalDamageMin"`
	PhysicalDamageMax int `json:"physicalDamageMax"`
	ElementalDamage   int `json:"elementalDamage"`
	FireDamage        int `json:"fireDamage"`
	LightningDamage   int `json:"lightningDamage"`
	PoisonDamage      int `json:"poisonDamage"`
	TotalDamageMin    int `json:"totalDamageMin"`
	TotalDamageMax    int `json:"totalDamageMax"`

	CritChance        float64 `json:"critChance"`
	CritMultiplier    float64 `json:"critMultiplier"`
	SpellCritChance   float64 `json:"spellCritChance"`
	DodgeChance       float64 `json:"dodgeChance"`
	BlockChance       float64 `json:"blockChance"`
	PhysicalReduction float64 `json:"physicalReduction"`

	// Spells is nil when the character has no spells.
	Spells []SpellStats `json:"spells,omitempty"`

	BurnChance        float64 `json:"burnChance"`
	PoisonChance      float64 `json:"poisonChance"`
	StunChance        float64 `json:"stunChance"`
	BurnDamageBonus   float64 `json:"burnDamageBonus,omitempty"`
	PoisonDamageBonus float64 `json:"poisonDamageBonus,omitempty"`

	AttackType string `json:"attackType"`
}
