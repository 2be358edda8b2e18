package stats

// SpellScaling holds per-spell INT and elemental scaling coefficients.
type SpellScaling struct {
	IntScaling     float64
	ElementScaling float64
}

// DefaultSpellScaling applies to spells missing from the catalog.
var DefaultSpellScaling = SpellScaling{IntScaling: 0.5, ElementScaling: 1.0}

// spellElements maps known spell names to their element. Unknown spells are fire.
var spellElements = map[string]Element{
	"fireball":  ElementFire,
	"arcBolt":   ElementLightning,
	"toxicBolt": ElementPoison,
}

var spellScaling = map[string]SpellScaling{
	"fireball":  {IntScaling: 0.7, ElementScaling: 1.0},
	"arcBolt":   {IntScaling: 0.5, ElementScaling: 0.8},
	"toxicBolt": {IntScaling: 0.6, ElementScaling: 1.2},
}

// SpellElement returns the element of a spell by name.
func SpellElement(name string) Element {
	if el, ok := spellElements[name]; ok {
		return el
	}
	return ElementFire
}

// ScalingFor returns the scaling coefficients of a spell by name.
func ScalingFor(name string) SpellScaling {
	if sc, ok := spellScaling[name]; ok {
		return sc
	}
	return DefaultSpellScaling
}
