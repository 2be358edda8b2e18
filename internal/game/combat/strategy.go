package combat

import (
	"errors"
	"fmt"
)

// ErrMissingStats is returned when DerivedStrategy meets an entity without stats.
var ErrMissingStats = errors.New("entity has no derived stats")

// Strategy names accepted by StrategyByName.
const (
	StrategyFlat    = "flat"
	StrategyDerived = "derived"
)

// Exchange is what a strategy computed for one attacker → target hit.
// The simulator applies it to the entities and turns it into frames.
type Exchange struct {
	Hit    bool
	Amount int
	Crit   bool

	Physical  int
	Elemental int
	Spell     int
	SpellName string
	SpellCrit bool
	Element   string

	Applied []StatusEffect
}

// DamageStrategy turns an attacker/target pair into an Exchange.
// The flat and derived formulas are separate strategies and are never mixed in one run.
type DamageStrategy interface {
	Name() string
	Validate(entities []*Entity) error
	Exchange(rng Source, attacker, target *Entity) Exchange
}

// Default status parameters.
const (
	DefaultBleedChance    = 0.3
	DefaultBleedDuration  = 2
	DefaultBurnDuration   = 3
	DefaultPoisonDuration = 3
	DefaultStunDuration   = 1
)

// FlatStrategy deals max(1, attacker.Damage) on every hit. Player hits may cause bleed.
type FlatStrategy struct {
	BleedChance   float64
	BleedDuration int
}

// NewFlatStrategy returns a FlatStrategy with default bleed parameters.
func NewFlatStrategy() *FlatStrategy {
	return &FlatStrategy{BleedChance: DefaultBleedChance, BleedDuration: DefaultBleedDuration}
}

func (s *FlatStrategy) Name() string { return StrategyFlat }

func (s *FlatStrategy) Validate([]*Entity) error { return nil }

// Exchange never misses. One draw is consumed for the bleed roll on player attacks.
func (s *FlatStrategy) Exchange(rng Source, attacker, _ *Entity) Exchange {
	ex := Exchange{Hit: true, Amount: max(1, attacker.Damage), Element: "physical"}
	if attacker.IsPlayer && roll(rng, s.BleedChance) {
		ex.Applied = append(ex.Applied, StatusEffect{
			Kind:     StatusBleed,
			Stacks:   1,
			Duration: max(1, s.BleedDuration),
		})
	}
	return ex
}

// StatusDurations holds the duration in rounds of each proc status.
type StatusDurations struct {
	Burn   int
	Poison int
	Stun   int
}

// DerivedStrategy resolves every hit through ResolveAttack using both sides' derived stats.
type DerivedStrategy struct {
	Durations StatusDurations
}

// NewDerivedStrategy returns a DerivedStrategy with default status durations.
func NewDerivedStrategy() *DerivedStrategy {
	return &DerivedStrategy{Durations: StatusDurations{
		Burn:   DefaultBurnDuration,
		Poison: DefaultPoisonDuration,
		Stun:   DefaultStunDuration,
	}}
}

func (s *DerivedStrategy) Name() string { return StrategyDerived }

// Validate requires every entity to carry stats.
func (s *DerivedStrategy) Validate(entities []*Entity) error {
	for _, e := range entities {
		if e.Stats == nil {
			return fmt.Errorf("%w: %s", ErrMissingStats, e.ID)
		}
	}
	return nil
}

func (s *DerivedStrategy) Exchange(rng Source, attacker, target *Entity) Exchange {
	res := ResolveAttack(rng, attacker.Stats, target.Stats, attacker.Level)
	if !res.Hit {
		return Exchange{Element: "physical"}
	}

	ex := Exchange{
		Hit:       true,
		Amount:    res.TotalDamage,
		Crit:      res.Crit,
		Physical:  res.PhysicalDamage,
		Elemental: res.ElementalDamage,
		Spell:     res.SpellDamage,
		SpellName: res.SpellName,
		SpellCrit: res.SpellCrit,
		Element:   "physical",
	}
	if res.SpellProc {
		for _, sp := range attacker.Stats.Spells {
			if sp.Name == res.SpellName {
				ex.Element = sp.Element.String()
				break
			}
		}
	}

	src := s.snapshot(attacker)
	if res.Statuses.Burn {
		ex.Applied = append(ex.Applied, StatusEffect{Kind: StatusBurn, Stacks: 1, Duration: max(1, s.Durations.Burn), Source: src})
	}
	if res.Statuses.Poison {
		ex.Applied = append(ex.Applied, StatusEffect{Kind: StatusPoison, Stacks: 1, Duration: max(1, s.Durations.Poison), Source: src})
	}
	if res.Statuses.Stun {
		ex.Applied = append(ex.Applied, StatusEffect{Kind: StatusStun, Stacks: 1, Duration: max(1, s.Durations.Stun)})
	}
	return ex
}

// snapshot copies the attacker's DoT-relevant stats at application time.
func (s *DerivedStrategy) snapshot(attacker *Entity) *DotSource {
	st := attacker.Stats
	return &DotSource{
		FireDamage:        st.FireDamage,
		PoisonDamage:      st.PoisonDamage,
		Intelligence:      st.Intelligence,
		BurnDamageBonus:   st.BurnDamageBonus,
		PoisonDamageBonus: st.PoisonDamageBonus,
	}
}

// StrategyByName builds a strategy from its config name.
func StrategyByName(name string) (DamageStrategy, error) {
	switch name {
	case "", StrategyFlat:
		return NewFlatStrategy(), nil
	case StrategyDerived:
		return NewDerivedStrategy(), nil
	}
	return nil, fmt.Errorf("unknown damage strategy %q", name)
}
