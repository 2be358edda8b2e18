package combat

import (
	"fmt"
	"math"
)

// StatusKind is the closed set of status effects.
type StatusKind uint8

const (
	StatusBleed StatusKind = iota + 1
	StatusBurn
	StatusPoison
	StatusStun
)

// String returns the status id used in the combat log.
func (k StatusKind) String() string {
	switch k {
	case StatusBleed:
		return "bleed"
	case StatusBurn:
		return "burn"
	case StatusPoison:
		return "poison"
	case StatusStun:
		return "stun"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k StatusKind) MarshalText() ([]byte, error) {
	if k < StatusBleed || k > StatusStun {
		return nil, fmt.Errorf("invalid status kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StatusKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bleed":
		*k = StatusBleed
	case "burn":
		*k = StatusBurn
	case "poison":
		*k = StatusPoison
	case "stun":
		*k = StatusStun
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// DotSource is a snapshot of the attacker taken when a DoT is applied.
// Ticks read the snapshot, never the attacker's live stats.
type DotSource struct {
	FireDamage        int     `json:"sourceFireDamage,omitempty"`
	PoisonDamage      int     `json:"sourcePoisonDamage,omitempty"`
	Intelligence      int     `json:"sourceIntelligence,omitempty"`
	BurnDamageBonus   float64 `json:"burnDamageBonus,omitempty"`
	PoisonDamageBonus float64 `json:"poisonDamageBonus,omitempty"`
}

// StatusEffect is one active status on an entity.
type StatusEffect struct {
	Kind     StatusKind `json:"id"`
	Stacks   int        `json:"stacks"`
	Duration int        `json:"duration"` // rounds left
	Source   *DotSource `json:"source,omitempty"`
}

// Tick coefficients.
const (
	bleedMaxHPFraction = 0.1
	burnFireFraction   = 0.25
	poisonFraction     = 0.2
	dotIntScaling      = 0.01
)

// TickDamage returns the damage one end-of-round tick deals to an entity with maxHP.
//
//	bleed:  max(1, floor(maxHP × 0.1))
//	burn:   max(1, floor(fire × 0.25 × (1 + burnBonus) × (1 + INT × 0.01)))
//	poison: max(1, floor(poison × 0.2 × (1 + poisonBonus) × (1 + INT × 0.01)))
//	stun:   0
//
// Damage is multiplied by stacks.
func (s StatusEffect) TickDamage(maxHP int) int {
	var dmg int
	src := s.Source
	if src == nil {
		src = &DotSource{}
	}
	intScaling := 1 + float64(src.Intelligence)*dotIntScaling

	switch s.Kind {
	case StatusBleed:
		dmg = atLeastOne(float64(maxHP) * bleedMaxHPFraction)
	case StatusBurn:
		dmg = atLeastOne(float64(src.FireDamage) * burnFireFraction * (1 + src.BurnDamageBonus) * intScaling)
	case StatusPoison:
		dmg = atLeastOne(float64(src.PoisonDamage) * poisonFraction * (1 + src.PoisonDamageBonus) * intScaling)
	default:
		return 0
	}

	stacks := s.Stacks
	if stacks < 1 {
		stacks = 1
	}
	return dmg * stacks
}

// PreventsAction reports whether the status skips the bearer's action.
func (s StatusEffect) PreventsAction() bool {
	return s.Kind == StatusStun
}

func atLeastOne(v float64) int {
	n := int(math.Floor(v))
	if n < 1 {
		return 1
	}
	return n
}
