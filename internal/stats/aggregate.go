package stats

import (
	"log/slog"
	"math"
	"sort"

	"github.com/udisondev/dungeonrun/internal/model"
)

// FistDamage is the weapon damage used when no weapon is equipped.
const FistDamage = 2

// Aggregate folds equipped items into raw totals.
//
// Main-hand and two-handed weapons contribute fully, including spells.
// An off-hand weapon contributes OffHandMultiplier of its weapon damage and
// bonuses and never contributes spells. Gear, every shield included, contributes fully.
//
// Malformed bonus fields are skipped one by one; Aggregate never fails.
func Aggregate(items []model.EquippedItem) Raw {
	var raw Raw

	lo := ResolveLoadout(items)
	for _, it := range lo.Excluded {
		slog.Debug("item excluded by hand resolution",
			"item", it.ID,
			"slot", it.Slot,
			"hand", it.EquippedHand,
			"twoHanded", lo.TwoHanded)
	}

	if lo.Main == nil {
		raw.BaseWeaponMin = FistDamage
		raw.BaseWeaponMax = FistDamage
	} else {
		addWeapon(&raw, lo.Main, 1.0, false)
		if lo.Off != nil {
			addWeapon(&raw, lo.Off, OffHandMultiplier, true)
		}
	}

	for _, it := range lo.Gear {
		addBonuses(&raw, it.Bonuses, 1.0, false)
	}

	return raw
}

// addWeapon adds weapon damage and the weapon's bonuses.
func addWeapon(raw *Raw, w *model.EquippedItem, mult float64, offHand bool) {
	minAtk, maxAtk := weaponDamage(w)
	raw.BaseWeaponMin += floorInt(minAtk * mult)
	raw.BaseWeaponMax += floorInt(maxAtk * mult)

	addBonuses(raw, w.Bonuses, mult, offHand)
}

// weaponDamage reads bonuses.primary.minAttack/maxAttack. A missing bound mirrors
// the other; when both are missing the template's baseStats.attack is used.
func weaponDamage(w *model.EquippedItem) (float64, float64) {
	primary := group(w.Bonuses, "primary")
	minAtk, hasMin := number(primary, "minAttack")
	maxAtk, hasMax := number(primary, "maxAttack")

	switch {
	case !hasMin && !hasMax:
		attack := float64(FistDamage)
		if w.Template != nil {
			if v, ok := number(w.Template.BaseStats, "attack"); ok && v != 0 {
				attack = v
			}
		}
		return attack, attack
	case !hasMin:
		return maxAtk, maxAtk
	case !hasMax:
		return minAtk, minAtk
	}
	return minAtk, maxAtk
}

// addBonuses adds one item's bonus payload scaled by mult.
func addBonuses(raw *Raw, bonuses map[string]any, mult float64, skipSpells bool) {
	if bonuses == nil {
		return
	}

	addFlat := func(dst *int, m map[string]any, key string) {
		if v, ok := number(m, key); ok {
			*dst += floorInt(v * mult)
		}
	}

	primary := group(bonuses, "primary")
	addFlat(&raw.Health, primary, "health")
	addFlat(&raw.Armor, primary, "armor")

	attrs := group(bonuses, "attributes")
	addFlat(&raw.Strength, attrs, "strength")
	addFlat(&raw.Dexterity, attrs, "dexterity")
	addFlat(&raw.Intelligence, attrs, "intelligence")

	power := group(bonuses, "elementPower")
	addFlat(&raw.FireFlat, power, "fire")
	addFlat(&raw.LightningFlat, power, "lightning")
	addFlat(&raw.PoisonFlat, power, "poison")

	// Chance bonuses are not scaled by hand.
	special := group(bonuses, "special")
	addReal(&raw.CritChanceBonus, special, "critChance", 1.0)
	addReal(&raw.CritDamageBonus, special, "critDamage", 1.0)
	addReal(&raw.DodgeChanceBonus, special, "dodgeChance", 1.0)
	addReal(&raw.BlockChanceBonus, special, "blockChance", 1.0)

	if !skipSpells {
		for _, sp := range spellEntries(bonuses) {
			mergeSpell(raw, sp, mult)
		}
	}

	addReal(&raw.BurnChanceBonus, bonuses, "burnChance", mult)
	addReal(&raw.BurnDamageBonus, bonuses, "burnDamage", mult)
	addReal(&raw.PoisonChanceBonus, bonuses, "poisonChance", mult)
	addReal(&raw.PoisonDamageBonus, bonuses, "poisonDamage", mult)
	addReal(&raw.StunChanceBonus, bonuses, "stunChance", mult)
}

func addReal(dst *float64, m map[string]any, key string, mult float64) {
	if v, ok := number(m, key); ok {
		*dst += v * mult
	}
}

// spellEntries reads bonuses.spells. Two shapes are accepted:
// an object keyed by spell name (entries taken in name order) or
// a list of {"name", "chance", "damage"} objects (list order kept).
func spellEntries(bonuses map[string]any) []RawSpell {
	var out []RawSpell

	switch spells := bonuses["spells"].(type) {
	case []any:
		for _, e := range spells {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			name, _ := m["name"].(string)
			if name == "" {
				continue
			}
			if sp, ok := spellEntry(name, m); ok {
				out = append(out, sp)
			}
		}
	default:
		m := group(bonuses, "spells")
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			data, ok := m[name].(map[string]any)
			if !ok {
				continue
			}
			if sp, ok := spellEntry(name, data); ok {
				out = append(out, sp)
			}
		}
	}
	return out
}

// spellEntry validates a spell payload: both chance and damage must be numbers.
func spellEntry(name string, m map[string]any) (RawSpell, bool) {
	chance, ok := number(m, "chance")
	if !ok {
		return RawSpell{}, false
	}
	damage, ok := number(m, "damage")
	if !ok {
		return RawSpell{}, false
	}
	return RawSpell{Name: name, Chance: chance, Damage: damage, Element: SpellElement(name)}, true
}

// mergeSpell merges by name: max chance, summed damage, first element wins.
func mergeSpell(raw *Raw, sp RawSpell, mult float64) {
	for i := range raw.Spells {
		existing := &raw.Spells[i]
		if existing.Name != sp.Name {
			continue
		}
		existing.Chance = math.Max(existing.Chance, sp.Chance)
		existing.Damage += sp.Damage * mult
		return
	}
	sp.Damage *= mult
	raw.Spells = append(raw.Spells, sp)
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
