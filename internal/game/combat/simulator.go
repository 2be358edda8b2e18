package combat

import (
	"fmt"
	"log/slog"
)

// Options configure a Simulator.
type Options struct {
	// MaxRounds caps the battle; reaching it is a defeat. Zero means DefaultMaxRounds.
	MaxRounds int
	// Strategy computes every exchange. Nil means NewFlatStrategy().
	Strategy DamageStrategy
	// LogID is embedded into the log and action ids.
	LogID string
	// Rewards is rolled on victory. Nil yields zero rewards.
	Rewards *RewardRange
}

// Simulator runs combats with fixed options.
// It holds no per-run state and is safe for concurrent use as long as
// every run gets its own Source.
type Simulator struct {
	opts Options
}

// NewSimulator creates a Simulator, filling option defaults.
func NewSimulator(opts Options) *Simulator {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Strategy == nil {
		opts.Strategy = NewFlatStrategy()
	}
	return &Simulator{opts: opts}
}

// RunCombat runs a single combat with a one-off Simulator.
func RunCombat(player Seed, enemies []Seed, rng Source, opts Options) (*Result, error) {
	return NewSimulator(opts).Run(player, enemies, rng)
}

// battle is the mutable state of one run.
type battle struct {
	opts    Options
	rng     Source
	player  *Entity
	enemies []*Entity
	all     []*Entity // player first, then enemies in seed order
}

// Run simulates a full combat. The result depends only on the seeds,
// the options and the draws taken from rng.
//
// Each round the player attacks the first living enemy, then, if the player
// survived, the first living enemy counterattacks. End-of-round status ticks
// follow. The battle ends on a dead side or at MaxRounds.
func (s *Simulator) Run(player Seed, enemies []Seed, rng Source) (*Result, error) {
	if err := ValidateSetup(player, enemies); err != nil {
		return nil, fmt.Errorf("validating combat setup: %w", err)
	}

	b := &battle{opts: s.opts, rng: rng}
	b.player = newEntity(player, true)
	b.all = append(b.all, b.player)
	for _, seed := range enemies {
		e := newEntity(seed, false)
		b.enemies = append(b.enemies, e)
		b.all = append(b.all, e)
	}

	if err := s.opts.Strategy.Validate(b.all); err != nil {
		return nil, fmt.Errorf("strategy %s: %w", s.opts.Strategy.Name(), err)
	}

	res := &Result{
		Version:    LogVersion,
		LogID:      s.opts.LogID,
		TickPolicy: TickPolicyRound,
		Actors:     b.actors(),
	}

	outcome := OutcomeDefeat
	total := s.opts.MaxRounds
	for n := 1; n <= s.opts.MaxRounds; n++ {
		res.Rounds = append(res.Rounds, b.playRound(n))

		slog.Debug("combat round",
			"logId", s.opts.LogID,
			"round", n,
			"playerHp", b.player.CurrentHP,
			"enemiesAlive", b.enemiesAlive())

		if !b.player.Alive {
			total = n
			break
		}
		if b.enemiesAlive() == 0 {
			outcome = OutcomeVictory
			total = n
			break
		}
	}

	res.Outcome = outcome
	res.TotalRounds = total

	end := EndBattleFrame{Outcome: outcome}
	if outcome == OutcomeVictory {
		var rw Rewards
		if s.opts.Rewards != nil {
			rw = s.opts.Rewards.Roll(rng)
		}
		res.Rewards = &rw
		end.Rewards = &rw
	}
	last := &res.Rounds[len(res.Rounds)-1]
	last.EndFrames = append(last.EndFrames, end)

	slog.Debug("combat finished",
		"logId", s.opts.LogID,
		"outcome", outcome,
		"rounds", total,
		"strategy", s.opts.Strategy.Name())

	return res, nil
}

func (b *battle) actors() []Actor {
	out := make([]Actor, 0, len(b.all))
	for _, e := range b.all {
		out = append(out, Actor{
			ID:       e.ID,
			Name:     e.Name,
			Code:     e.Code,
			IsPlayer: e.IsPlayer,
			MaxHP:    e.MaxHP,
			HP:       e.CurrentHP,
		})
	}
	return out
}

func (b *battle) firstAliveEnemy() *Entity {
	for _, e := range b.enemies {
		if e.Alive {
			return e
		}
	}
	return nil
}

func (b *battle) enemiesAlive() int {
	var n int
	for _, e := range b.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

func (b *battle) playRound(n int) Round {
	r := Round{RoundNumber: n, Actions: []Action{}}

	if target := b.firstAliveEnemy(); target != nil && b.player.CanAct() {
		r.Actions = append(r.Actions, b.act(b.player, target, n))
	}

	if b.player.Alive {
		if enemy := b.firstAliveEnemy(); enemy != nil && enemy.CanAct() {
			r.Actions = append(r.Actions, b.act(enemy, b.player, n))
		}
	}

	r.EndFrames = b.endOfRound(n)
	return r
}

// act performs one exchange and records it as an action.
func (b *battle) act(attacker, target *Entity, n int) Action {
	side, ability := "enemy", "basic_claw"
	if attacker.IsPlayer {
		side, ability = "player", "basic_slash"
	}

	ex := b.opts.Strategy.Exchange(b.rng, attacker, target)

	a := Action{
		ActionID: fmt.Sprintf("%s_attack_%d_%s", side, n, b.opts.LogID),
		ActorID:  attacker.ID,
		Ability:  ability,
		Element:  ex.Element,
		Targets:  []string{target.ID},
		Tags:     []string{"melee", "physical", side},
		Frames:   Frames{AttackFrame{}},
	}
	if a.Element == "" {
		a.Element = "physical"
	}

	if !ex.Hit {
		a.Frames = append(a.Frames, MissFrame{TargetID: target.ID})
		return a
	}

	before, after := target.takeDamage(ex.Amount)
	a.Frames = append(a.Frames, DamageFrame{
		TargetID:  target.ID,
		Amount:    ex.Amount,
		Crit:      ex.Crit,
		HPBefore:  before,
		HPAfter:   after,
		Kill:      after <= 0,
		Physical:  ex.Physical,
		Elemental: ex.Elemental,
		Spell:     ex.Spell,
		SpellName: ex.SpellName,
		SpellCrit: ex.SpellCrit,
	})

	for _, st := range ex.Applied {
		target.ApplyStatus(st)
		a.Frames = append(a.Frames, StatusApplyFrame{TargetID: target.ID, Status: st})
	}

	if after <= 0 {
		a.Frames = append(a.Frames, DeathFrame{Targets: []string{target.ID}, Cause: ability})
	}
	return a
}

// endOfRound ticks statuses of living entities in application order,
// clears statuses of dead ones and closes the round.
func (b *battle) endOfRound(n int) Frames {
	var frames Frames
	var cleaned []string

	for _, e := range b.all {
		if len(e.statuses) == 0 {
			continue
		}
		if !e.Alive {
			e.clearStatuses()
			cleaned = append(cleaned, e.ID)
			continue
		}

		kept := e.statuses[:0:0]
		for i, st := range e.statuses {
			dmg := st.TickDamage(e.MaxHP)
			before, after := e.CurrentHP, e.CurrentHP
			if dmg > 0 {
				before, after = e.takeDamage(dmg)
			}
			frames = append(frames, StatusTickFrame{
				Source:   st.Kind,
				TargetID: e.ID,
				Amount:   dmg,
				HPBefore: before,
				HPAfter:  after,
			})

			st.Duration--
			if st.Duration < 0 {
				st.Duration = 0
			}
			frames = append(frames, StatusUpdateFrame{TargetID: e.ID, Status: st})
			if st.Duration > 0 {
				kept = append(kept, st)
			}

			if !e.Alive {
				frames = append(frames, DeathFrame{Targets: []string{e.ID}, Cause: st.Kind.String()})
				if len(kept) > 0 || i < len(e.statuses)-1 {
					cleaned = append(cleaned, e.ID)
				}
				kept = nil
				break
			}
		}
		e.statuses = kept
	}

	if len(cleaned) > 0 {
		frames = append(frames, StatusCleanupFrame{Targets: cleaned})
	}
	frames = append(frames, EndRoundFrame{RoundNumber: n})
	return frames
}
