package game

import (
	"fmt"
	"time"
)

// DuelPhase is a state of the duel lifecycle. Phases advance linearly:
// challenge -> setup -> battle -> resolution -> completed. Declined and
// expired challenges are removed without ever leaving the challenge phase.
type DuelPhase string

const (
	PhaseChallenge  DuelPhase = "challenge"
	PhaseSetup      DuelPhase = "setup"
	PhaseBattle     DuelPhase = "battle"
	PhaseResolution DuelPhase = "resolution"
	PhaseCompleted  DuelPhase = "completed"
)

// Duel result kinds as persisted to the archive.
const (
	ResultVictory = "victory"
	ResultDraw    = "draw"
	ResultForfeit = "forfeit"
	ResultTimeout = "timeout"
)

// ActionAttack is the only action kind the battle log currently records.
const ActionAttack = "attack"

// DuelHero is a combat snapshot of one participant's hero. It is owned by a
// DuelState for the duel's lifetime and never persisted.
type DuelHero struct {
	UserID       int64   `json:"user_id"`
	Element      Element `json:"element"`
	Attack       int     `json:"atk"`
	Defense      int     `json:"def"`
	MaxHP        int     `json:"max_hp"`
	CurrentHP    int     `json:"current_hp"`
	SkillBonuses Bonuses `json:"skill_bonuses"`
	Rarity       Rarity  `json:"rarity"`
	Stars        int     `json:"stars"`
}

// HPPercent returns remaining health as a fraction of maximum (0..1).
func (h *DuelHero) HPPercent() float64 {
	if h.MaxHP <= 0 {
		return 0
	}
	return float64(h.CurrentHP) / float64(h.MaxHP)
}

// BattleAction is one resolved attack. Entries are append-only; they are
// created once per attack and never mutated afterwards.
type BattleAction struct {
	AttackerID int64    `json:"attacker_id"`
	DefenderID int64    `json:"defender_id"`
	ActionType string   `json:"action_type"`
	Damage     int      `json:"damage"`
	IsCritical bool     `json:"is_critical"`
	IsMiss     bool     `json:"is_miss"`
	Effects    []string `json:"effects"`
}

// DuelState is the aggregate root for one duel. It is exclusively owned by
// the duel manager; no other component mutates it directly.
type DuelState struct {
	ChallengerID      int64     `json:"challenger_id"`
	ChallengedID      int64     `json:"challenged_id"`
	ChallengerElement Element   `json:"challenger_element"`
	ChallengedElement Element   `json:"challenged_element"`
	ChallengerHero    *DuelHero `json:"challenger_hero"`
	ChallengedHero    *DuelHero `json:"challenged_hero"`
	Phase             DuelPhase `json:"phase"`
	// CurrentTurn counts full turn pairs; it increments only when control
	// returns to the challenger.
	CurrentTurn  int            `json:"current_turn"`
	TurnPlayerID int64          `json:"turn_player_id"`
	BattleLog    []BattleAction `json:"battle_log"`
	CreatedAt    time.Time      `json:"created_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
	ChannelID    int64          `json:"channel_id"`

	// TurnSerial increments every time the turn holder changes. Turn timers
	// capture the serial they were armed for and must re-check it before
	// acting, so a stale timer never resolves a turn a player already took.
	TurnSerial int `json:"-"`
	// StatsRecorded guards the resolution side effects (rating update,
	// archive row, rewards) so they run exactly once per duel.
	StatsRecorded bool `json:"-"`
}

// ID returns the composite duel key: challenger, challenged and creation
// timestamp. The same pair can duel again later without key collisions.
func (d *DuelState) ID() string {
	return fmt.Sprintf("%d_%d_%d", d.ChallengerID, d.ChallengedID, d.CreatedAt.Unix())
}

func (d *DuelState) IsParticipant(userID int64) bool {
	return userID == d.ChallengerID || userID == d.ChallengedID
}

// HeroOf returns the hero snapshot belonging to userID, or nil.
func (d *DuelState) HeroOf(userID int64) *DuelHero {
	switch userID {
	case d.ChallengerID:
		return d.ChallengerHero
	case d.ChallengedID:
		return d.ChallengedHero
	}
	return nil
}

// OpponentOf returns the other participant's id.
func (d *DuelState) OpponentOf(userID int64) int64 {
	if userID == d.ChallengerID {
		return d.ChallengedID
	}
	return d.ChallengerID
}

// BattleResult is the discriminated outcome of a completed duel. Exactly two
// implementations exist: Victory and Draw. Callers switch on the concrete
// type so both cases are handled explicitly.
type BattleResult interface {
	// Turns returns how many full turns the duel lasted.
	Turns() int
	battleResult()
}

// Victory is a decided duel: one winner, one loser.
type Victory struct {
	WinnerID   int64
	LoserID    int64
	TurnsTaken int
	WinnerHP   int
	LoserHP    int
	// Forfeit marks wins by concession or turn timeout rather than combat.
	Forfeit bool
}

func (v Victory) Turns() int  { return v.TurnsTaken }
func (Victory) battleResult() {}

// Draw is a duel that reached the turn limit with equal health percentages.
type Draw struct {
	TurnsTaken int
}

func (d Draw) Turns() int  { return d.TurnsTaken }
func (Draw) battleResult() {}
