package combat

import "github.com/udisondev/dungeonrun/internal/stats"

// Seed describes a combatant before a run. Seeds are copied into entities,
// so a caller may reuse them across concurrent runs.
type Seed struct {
	ID     string
	Name   string
	Code   string
	Level  int
	HP     int
	Damage int

	// Stats is required by DerivedStrategy and ignored by FlatStrategy.
	Stats *stats.Derived
}

// Entity is a combatant owned by exactly one run.
type Entity struct {
	ID        string
	Name      string
	Code      string
	Level     int
	CurrentHP int
	MaxHP     int
	Damage    int
	IsPlayer  bool
	Alive     bool
	Stats     *stats.Derived

	// statuses keeps application order.
	statuses []StatusEffect
}

func newEntity(s Seed, isPlayer bool) *Entity {
	e := &Entity{
		ID:        s.ID,
		Name:      s.Name,
		Code:      s.Code,
		Level:     s.Level,
		CurrentHP: s.HP,
		MaxHP:     s.HP,
		Damage:    s.Damage,
		IsPlayer:  isPlayer,
		Alive:     s.HP > 0,
	}
	if s.Stats != nil {
		cp := *s.Stats
		e.Stats = &cp
	}
	return e
}

// ApplyStatus adds a status. Reapplying an active kind refreshes it in place,
// keeping its original position.
func (e *Entity) ApplyStatus(s StatusEffect) {
	for i := range e.statuses {
		if e.statuses[i].Kind == s.Kind {
			e.statuses[i] = s
			return
		}
	}
	e.statuses = append(e.statuses, s)
}

// Statuses returns a copy of the active statuses in application order.
func (e *Entity) Statuses() []StatusEffect {
	out := make([]StatusEffect, len(e.statuses))
	copy(out, e.statuses)
	return out
}

// HasStatus reports whether a status of the given kind is active.
func (e *Entity) HasStatus(kind StatusKind) bool {
	for _, s := range e.statuses {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// CanAct reports whether the entity is alive and not prevented from acting.
func (e *Entity) CanAct() bool {
	if !e.Alive {
		return false
	}
	for _, s := range e.statuses {
		if s.PreventsAction() {
			return false
		}
	}
	return true
}

// takeDamage lowers HP, clamped at zero, and returns (before, after).
func (e *Entity) takeDamage(amount int) (int, int) {
	before := e.CurrentHP
	after := before - amount
	if after < 0 {
		after = 0
	}
	e.CurrentHP = after
	if after <= 0 {
		e.Alive = false
	}
	return before, after
}

func (e *Entity) clearStatuses() {
	e.statuses = nil
}
