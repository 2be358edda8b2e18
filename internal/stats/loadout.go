package stats

import "github.com/udisondev/dungeonrun/internal/model"

// OffHandMultiplier scales every numeric contribution of an off-hand weapon.
const OffHandMultiplier = 0.5

// Loadout is the outcome of hand resolution over a set of equipped items.
//
// Rules:
//   - a two-handed weapon holds both hands: every other weapon is excluded;
//   - main hand is the weapon equipped in the right hand, else the first weapon;
//   - off hand is a distinct weapon equipped in the left hand;
//   - weapons left over after main/off are excluded;
//   - shields are gear: hands never exclude them.
type Loadout struct {
	Main      *model.EquippedItem
	Off       *model.EquippedItem
	Shield    *model.EquippedItem // first equipped shield, informational
	TwoHanded bool

	// Excluded weapons contribute nothing to aggregation.
	Excluded []*model.EquippedItem

	// Gear is every equipped non-weapon item, shields included.
	Gear []*model.EquippedItem
}

// ResolveLoadout partitions items into hands and gear.
// Unequipped items are ignored entirely.
func ResolveLoadout(items []model.EquippedItem) Loadout {
	var (
		lo      Loadout
		weapons []*model.EquippedItem
	)

	for i := range items {
		it := &items[i]
		switch {
		case it.IsWeapon():
			weapons = append(weapons, it)
		case it.Equipped && it.Slot != model.SlotWeapon:
			if it.IsShield() && lo.Shield == nil {
				lo.Shield = it
			}
			lo.Gear = append(lo.Gear, it)
		}
	}

	for _, w := range weapons {
		if w.IsTwoHanded() {
			lo.Main = w
			lo.TwoHanded = true
			break
		}
	}

	if lo.TwoHanded {
		for _, w := range weapons {
			if w != lo.Main {
				lo.Excluded = append(lo.Excluded, w)
			}
		}
		return lo
	}

	if len(weapons) == 0 {
		return lo
	}

	lo.Main = weapons[0]
	for _, w := range weapons {
		if w.EquippedHand == model.HandRight {
			lo.Main = w
			break
		}
	}
	for _, w := range weapons {
		if w != lo.Main && w.EquippedHand == model.HandLeft {
			lo.Off = w
			break
		}
	}

	for _, w := range weapons {
		if w != lo.Main && w != lo.Off {
			lo.Excluded = append(lo.Excluded, w)
		}
	}
	return lo
}
