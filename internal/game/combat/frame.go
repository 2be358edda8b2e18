package combat

import (
	"encoding/json"
	"fmt"
)

// FrameType discriminates frames in the serialized log.
type FrameType string

const (
	FrameAttack        FrameType = "attack"
	FrameMiss          FrameType = "miss"
	FrameDamage        FrameType = "damage"
	FrameStatusApply   FrameType = "status_apply"
	FrameDeath         FrameType = "death"
	FrameStatusTick    FrameType = "status_tick"
	FrameStatusUpdate  FrameType = "status_update"
	FrameStatusCleanup FrameType = "status_cleanup"
	FrameEndRound      FrameType = "end_round"
	FrameEndBattle     FrameType = "end_battle"
)

// Frame is one step of the combat log. The set of implementations is closed.
type Frame interface {
	Type() FrameType
	isFrame()
}

// AttackFrame marks the start of an attack animation.
type AttackFrame struct{}

// MissFrame records a dodged attack.
type MissFrame struct {
	TargetID string `json:"targetId"`
}

// DamageFrame records damage dealt to one target by an action.
type DamageFrame struct {
	TargetID string `json:"targetId"`
	Amount   int    `json:"amount"`
	Crit     bool   `json:"crit"`
	HPBefore int    `json:"hpBefore"`
	HPAfter  int    `json:"hpAfter"`
	Kill     bool   `json:"kill"`

	// Breakdown, set by the derived strategy only.
	Physical  int    `json:"physical,omitempty"`
	Elemental int    `json:"elemental,omitempty"`
	Spell     int    `json:"spell,omitempty"`
	SpellName string `json:"spellName,omitempty"`
	SpellCrit bool   `json:"spellCrit,omitempty"`
}

// StatusApplyFrame records a status newly applied to a target.
type StatusApplyFrame struct {
	TargetID string       `json:"targetId"`
	Status   StatusEffect `json:"status"`
}

// DeathFrame records deaths and what caused them (an ability or a status id).
type DeathFrame struct {
	Targets []string `json:"targets"`
	Cause   string   `json:"cause"`
}

// StatusTickFrame records one end-of-round status tick.
type StatusTickFrame struct {
	Source   StatusKind `json:"source"`
	TargetID string     `json:"targetId"`
	Amount   int        `json:"amount"`
	HPBefore int        `json:"hpBefore"`
	HPAfter  int        `json:"hpAfter"`
}

// StatusUpdateFrame records a status after its duration was decremented.
// Duration zero means the status was removed.
type StatusUpdateFrame struct {
	TargetID string       `json:"targetId"`
	Status   StatusEffect `json:"status"`
}

// StatusCleanupFrame records statuses silently removed from dead targets.
type StatusCleanupFrame struct {
	Targets []string `json:"targets"`
}

// EndRoundFrame closes a round.
type EndRoundFrame struct {
	RoundNumber int `json:"roundNumber"`
}

// EndBattleFrame closes the battle; Rewards is set on victory only.
type EndBattleFrame struct {
	Outcome Outcome  `json:"outcome"`
	Rewards *Rewards `json:"rewards,omitempty"`
}

func (AttackFrame) Type() FrameType        { return FrameAttack }
func (MissFrame) Type() FrameType          { return FrameMiss }
func (DamageFrame) Type() FrameType        { return FrameDamage }
func (StatusApplyFrame) Type() FrameType   { return FrameStatusApply }
func (DeathFrame) Type() FrameType         { return FrameDeath }
func (StatusTickFrame) Type() FrameType    { return FrameStatusTick }
func (StatusUpdateFrame) Type() FrameType  { return FrameStatusUpdate }
func (StatusCleanupFrame) Type() FrameType { return FrameStatusCleanup }
func (EndRoundFrame) Type() FrameType      { return FrameEndRound }
func (EndBattleFrame) Type() FrameType     { return FrameEndBattle }

func (AttackFrame) isFrame()        {}
func (MissFrame) isFrame()          {}
func (DamageFrame) isFrame()        {}
func (StatusApplyFrame) isFrame()   {}
func (DeathFrame) isFrame()         {}
func (StatusTickFrame) isFrame()    {}
func (StatusUpdateFrame) isFrame()  {}
func (StatusCleanupFrame) isFrame() {}
func (EndRoundFrame) isFrame()      {}
func (EndBattleFrame) isFrame()     {}

// The MarshalJSON methods add the "type" discriminator.

func (f AttackFrame) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type FrameType `json:"type"`
	}{FrameAttack})
}

func (f MissFrame) MarshalJSON() ([]byte, error) {
	type plain MissFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameMiss, plain(f)})
}

func (f DamageFrame) MarshalJSON() ([]byte, error) {
	type plain DamageFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameDamage, plain(f)})
}

func (f StatusApplyFrame) MarshalJSON() ([]byte, error) {
	type plain StatusApplyFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameStatusApply, plain(f)})
}

func (f DeathFrame) MarshalJSON() ([]byte, error) {
	type plain DeathFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameDeath, plain(f)})
}

func (f StatusTickFrame) MarshalJSON() ([]byte, error) {
	type plain StatusTickFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameStatusTick, plain(f)})
}

func (f StatusUpdateFrame) MarshalJSON() ([]byte, error) {
	type plain StatusUpdateFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameStatusUpdate, plain(f)})
}

func (f StatusCleanupFrame) MarshalJSON() ([]byte, error) {
	type plain StatusCleanupFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameStatusCleanup, plain(f)})
}

func (f EndRoundFrame) MarshalJSON() ([]byte, error) {
	type plain EndRoundFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameEndRound, plain(f)})
}

func (f EndBattleFrame) MarshalJSON() ([]byte, error) {
	type plain EndBattleFrame
	return json.Marshal(struct {
		Type FrameType `json:"type"`
		plain
	}{FrameEndBattle, plain(f)})
}

// Frames is an ordered frame list that decodes back into concrete frame types.
type Frames []Frame

// UnmarshalJSON implements json.Unmarshaler.
func (fs *Frames) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return fmt.Errorf("decoding frame list: %w", err)
	}
	if raws == nil {
		*fs = nil
		return nil
	}

	out := make(Frames, 0, len(raws))
	for i, raw := range raws {
		f, err := decodeFrame(raw)
		if err != nil {
			return fmt.Errorf("decoding frame %d: %w", i, err)
		}
		out = append(out, f)
	}
	*fs = out
	return nil
}

func decodeFrame(raw json.RawMessage) (Frame, error) {
	var head struct {
		Type FrameType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case FrameAttack:
		return AttackFrame{}, nil
	case FrameMiss:
		return decodeAs[MissFrame](raw)
	case FrameDamage:
		return decodeAs[DamageFrame](raw)
	case FrameStatusApply:
		return decodeAs[StatusApplyFrame](raw)
	case FrameDeath:
		return decodeAs[DeathFrame](raw)
	case FrameStatusTick:
		return decodeAs[StatusTickFrame](raw)
	case FrameStatusUpdate:
		return decodeAs[StatusUpdateFrame](raw)
	case FrameStatusCleanup:
		return decodeAs[StatusCleanupFrame](raw)
	case FrameEndRound:
		return decodeAs[EndRoundFrame](raw)
	case FrameEndBattle:
		return decodeAs[EndBattleFrame](raw)
	}
	return nil, fmt.Errorf("unknown frame type %q", head.Type)
}

func decodeAs[T Frame](raw json.RawMessage) (Frame, error) {
	var f T
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f, nil
}
