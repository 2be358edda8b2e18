package combat

// Outcome is the terminal state of a combat run.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// Log format constants.
const (
	LogVersion       = "v2-frames"
	TickPolicyRound  = "end_of_round"
	DefaultMaxRounds = 50
)

// Rewards granted on victory.
type Rewards struct {
	Gold int `json:"gold"`
	XP   int `json:"xp"`
}

// Actor is the initial snapshot of a combatant, shown before round one.
type Actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	IsPlayer bool   `json:"isPlayer"`
	MaxHP    int    `json:"maxHp"`
	HP       int    `json:"hp"`
}

// Action is one attacker → target(s) exchange.
type Action struct {
	ActionID string   `json:"actionId"`
	ActorID  string   `json:"actorId"`
	Ability  string   `json:"ability"`
	Element  string   `json:"element"`
	Targets  []string `json:"targets"`
	Tags     []string `json:"tags"`
	Frames   Frames   `json:"frames"`
}

// Round bundles the action phase and the end-of-round phase.
type Round struct {
	RoundNumber int      `json:"roundNumber"`
	Actions     []Action `json:"actions"`
	EndFrames   Frames   `json:"endFrames"`
}

// Result is the full, replayable combat log.
type Result struct {
	Version     string   `json:"version"`
	LogID       string   `json:"logId"`
	TickPolicy  string   `json:"tickPolicy"`
	Outcome     Outcome  `json:"outcome"`
	TotalRounds int      `json:"totalRounds"`
	Actors      []Actor  `json:"actors"`
	Rounds      []Round  `json:"rounds"`
	Rewards     *Rewards `json:"rewards,omitempty"`
}

// Victory reports whether the player won.
func (r *Result) Victory() bool {
	return r.Outcome == OutcomeVictory
}
