// Package duel orchestrates the duel lifecycle: challenge creation and
// acceptance, turn-by-turn battle execution, forfeits, turn timeouts and the
// exactly-once resolution handoff. The manager owns all in-flight duel state;
// combat math lives in the engine package and durable effects in the service.
package duel

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/M1tsumi/arc-duels/internal/engine"
	"github.com/M1tsumi/arc-duels/internal/game"
)

var (
	ErrSelfChallenge      = errors.New("you cannot challenge yourself")
	ErrInvalidElement     = errors.New("invalid element")
	ErrChallengePending   = errors.New("player already has a pending challenge")
	ErrSelfInDuel         = errors.New("you are already in an active duel")
	ErrOpponentInDuel     = errors.New("player is already in an active duel")
	ErrNoPendingChallenge = errors.New("no pending challenge found")
	ErrChallengeExpired   = errors.New("challenge has expired")
	ErrDuelNotFound       = errors.New("duel not found")
	ErrNotBattlePhase     = errors.New("duel is not in the battle phase")
	ErrNotYourTurn        = errors.New("it is not your turn")
	ErrNotParticipant     = errors.New("you are not part of this duel")
	ErrAlreadyResolved    = errors.New("duel is already resolved")
	ErrMissingHero        = errors.New("duel heroes are not set up")
)

const (
	// ChallengeTTL is how long a pending challenge stays acceptable.
	ChallengeTTL = 5 * time.Minute
	// StaleDuelAge is the age past which an unfinished active duel is
	// swept away.
	StaleDuelAge = 24 * time.Hour
)

// Manager holds every in-flight duel. Pending challenges are keyed by the
// challenged player so each player can face at most one open challenge;
// active duels are keyed by the composite duel id. All state transitions
// happen under one lock.
type Manager struct {
	mu      sync.Mutex
	rng     *rand.Rand
	cfg     engine.Config
	pending map[int64]*game.DuelState
	active  map[string]*game.DuelState
}

func NewManager(cfg engine.Config, rng *rand.Rand) *Manager {
	return &Manager{
		rng:     rng,
		cfg:     cfg,
		pending: make(map[int64]*game.DuelState),
		active:  make(map[string]*game.DuelState),
	}
}

func (m *Manager) inActiveDuel(userID int64) bool {
	for _, d := range m.active {
		if d.IsParticipant(userID) {
			return true
		}
	}
	return false
}

// evictIfExpired drops the challenged player's pending challenge when its
// deadline passed. Expiry is lazy: nothing fires at the deadline, the next
// touch observes it.
func (m *Manager) evictIfExpired(challengedID int64, now time.Time) bool {
	d, ok := m.pending[challengedID]
	if !ok {
		return false
	}
	if now.After(d.ExpiresAt) {
		delete(m.pending, challengedID)
		return true
	}
	return false
}

// CreateChallenge opens a challenge from challenger to challenged with the
// challenger's chosen element.
func (m *Manager) CreateChallenge(challengerID, challengedID, channelID int64, element game.Element) (*game.DuelState, error) {
	if challengerID == challengedID {
		return nil, ErrSelfChallenge
	}
	if !element.Valid() {
		return nil, ErrInvalidElement
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	m.evictIfExpired(challengedID, now)
	if _, ok := m.pending[challengedID]; ok {
		return nil, ErrChallengePending
	}
	if m.inActiveDuel(challengerID) {
		return nil, ErrSelfInDuel
	}
	if m.inActiveDuel(challengedID) {
		return nil, ErrOpponentInDuel
	}

	d := &game.DuelState{
		ChallengerID:      challengerID,
		ChallengedID:      challengedID,
		ChallengerElement: element,
		Phase:             game.PhaseChallenge,
		BattleLog:         []game.BattleAction{},
		CreatedAt:         now,
		ExpiresAt:         now.Add(ChallengeTTL),
		ChannelID:         channelID,
	}
	m.pending[challengedID] = d
	return d, nil
}

// AcceptChallenge moves the challenged player's pending challenge into the
// setup phase with their chosen element. The duel becomes active; heroes
// must be attached via SetupHeroes before battle starts.
func (m *Manager) AcceptChallenge(challengedID int64, element game.Element) (*game.DuelState, error) {
	if !element.Valid() {
		return nil, ErrInvalidElement
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if m.evictIfExpired(challengedID, now) {
		return nil, ErrChallengeExpired
	}
	d, ok := m.pending[challengedID]
	if !ok {
		return nil, ErrNoPendingChallenge
	}
	// Either party may have entered another duel since the challenge was
	// created; the challenge stays pending until it expires.
	if m.inActiveDuel(challengedID) {
		return nil, ErrSelfInDuel
	}
	if m.inActiveDuel(d.ChallengerID) {
		return nil, ErrOpponentInDuel
	}

	d.ChallengedElement = element
	d.Phase = game.PhaseSetup
	delete(m.pending, challengedID)
	m.active[d.ID()] = d
	return d, nil
}

// DeclineChallenge removes the challenged player's pending challenge.
func (m *Manager) DeclineChallenge(challengedID int64) (*game.DuelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.evictIfExpired(challengedID, time.Now().UTC()) {
		return nil, ErrChallengeExpired
	}
	d, ok := m.pending[challengedID]
	if !ok {
		return nil, ErrNoPendingChallenge
	}
	delete(m.pending, challengedID)
	return d, nil
}

// SetupHeroes attaches both combat snapshots, rolls initiative and starts
// the battle. The faster hero acts first; the challenger wins speed ties.
func (m *Manager) SetupHeroes(duelID string, challengerHero, challengedHero *game.DuelHero) (*game.DuelState, error) {
	if challengerHero == nil || challengedHero == nil {
		return nil, ErrMissingHero
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.active[duelID]
	if !ok {
		return nil, ErrDuelNotFound
	}
	if d.Phase != game.PhaseSetup {
		return nil, ErrNotBattlePhase
	}

	d.ChallengerHero = challengerHero
	d.ChallengedHero = challengedHero

	challengerSpeed := engine.Speed(m.rng, challengerHero)
	challengedSpeed := engine.Speed(m.rng, challengedHero)
	if challengedSpeed > challengerSpeed {
		d.TurnPlayerID = d.ChallengedID
	} else {
		d.TurnPlayerID = d.ChallengerID
	}

	d.Phase = game.PhaseBattle
	d.CurrentTurn = 1
	d.TurnSerial = 1
	return d, nil
}

// ExecuteAttack resolves one attack by userID. When the attack ends the duel
// the returned result is non-nil and the duel enters the resolution phase;
// durable effects are the caller's responsibility.
func (m *Manager) ExecuteAttack(duelID string, userID int64) (game.BattleAction, game.BattleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.active[duelID]
	if !ok {
		return game.BattleAction{}, nil, ErrDuelNotFound
	}
	if !d.IsParticipant(userID) {
		return game.BattleAction{}, nil, ErrNotParticipant
	}
	if d.Phase == game.PhaseResolution || d.Phase == game.PhaseCompleted {
		return game.BattleAction{}, nil, ErrAlreadyResolved
	}
	if d.Phase != game.PhaseBattle {
		return game.BattleAction{}, nil, ErrNotBattlePhase
	}
	if d.TurnPlayerID != userID {
		return game.BattleAction{}, nil, ErrNotYourTurn
	}

	attacker := d.HeroOf(userID)
	defender := d.HeroOf(d.OpponentOf(userID))
	if attacker == nil || defender == nil {
		return game.BattleAction{}, nil, ErrMissingHero
	}

	action := engine.ResolveAttack(m.rng, m.cfg, attacker, defender)
	d.BattleLog = append(d.BattleLog, action)

	result := m.checkEnd(d, attacker, defender)

	// Regeneration happens after the end checks so a finishing blow cannot
	// be undone. The defender regenerates only when the battle continues.
	engine.ApplyRegen(attacker)
	if result == nil {
		engine.ApplyRegen(defender)
		m.advanceTurn(d)
	}
	return action, result, nil
}

// checkEnd applies the end conditions in order: knockout first, then the
// turn limit. On the turn limit the higher health percentage wins; equal
// percentages draw.
func (m *Manager) checkEnd(d *game.DuelState, attacker, defender *game.DuelHero) game.BattleResult {
	if defender.CurrentHP <= 0 {
		d.Phase = game.PhaseResolution
		d.TurnSerial++
		return game.Victory{
			WinnerID:   attacker.UserID,
			LoserID:    defender.UserID,
			TurnsTaken: d.CurrentTurn,
			WinnerHP:   attacker.CurrentHP,
			LoserHP:    defender.CurrentHP,
		}
	}
	if d.CurrentTurn >= m.cfg.MaxTurns {
		d.Phase = game.PhaseResolution
		d.TurnSerial++
		ap, dp := attacker.HPPercent(), defender.HPPercent()
		switch {
		case ap > dp:
			return game.Victory{
				WinnerID: attacker.UserID, LoserID: defender.UserID,
				TurnsTaken: d.CurrentTurn, WinnerHP: attacker.CurrentHP, LoserHP: defender.CurrentHP,
			}
		case dp > ap:
			return game.Victory{
				WinnerID: defender.UserID, LoserID: attacker.UserID,
				TurnsTaken: d.CurrentTurn, WinnerHP: defender.CurrentHP, LoserHP: attacker.CurrentHP,
			}
		default:
			return game.Draw{TurnsTaken: d.CurrentTurn}
		}
	}
	return nil
}

func (m *Manager) advanceTurn(d *game.DuelState) {
	d.TurnPlayerID = d.OpponentOf(d.TurnPlayerID)
	d.TurnSerial++
	if d.TurnPlayerID == d.ChallengerID {
		d.CurrentTurn++
	}
}

// Forfeit concedes an active battle; the opponent wins immediately.
func (m *Manager) Forfeit(duelID string, userID int64) (game.BattleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.active[duelID]
	if !ok {
		return nil, ErrDuelNotFound
	}
	if !d.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	if d.Phase == game.PhaseResolution || d.Phase == game.PhaseCompleted {
		return nil, ErrAlreadyResolved
	}
	if d.Phase != game.PhaseBattle {
		return nil, ErrNotBattlePhase
	}

	winnerID := d.OpponentOf(userID)
	winner, loser := d.HeroOf(winnerID), d.HeroOf(userID)
	d.Phase = game.PhaseResolution
	d.TurnSerial++
	res := game.Victory{
		WinnerID:   winnerID,
		LoserID:    userID,
		TurnsTaken: d.CurrentTurn,
		Forfeit:    true,
	}
	if winner != nil {
		res.WinnerHP = winner.CurrentHP
	}
	if loser != nil {
		res.LoserHP = loser.CurrentHP
	}
	return res, nil
}

// TimeoutTurn resolves the duel against the current turn holder, but only if
// the turn serial still matches the one the timer was armed for. A stale
// serial means the player already acted and the timer must do nothing.
func (m *Manager) TimeoutTurn(duelID string, serial int) (game.BattleResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.active[duelID]
	if !ok || d.Phase != game.PhaseBattle || d.TurnSerial != serial {
		return nil, false
	}

	idleID := d.TurnPlayerID
	winnerID := d.OpponentOf(idleID)
	winner, loser := d.HeroOf(winnerID), d.HeroOf(idleID)
	d.Phase = game.PhaseResolution
	d.TurnSerial++
	res := game.Victory{
		WinnerID:   winnerID,
		LoserID:    idleID,
		TurnsTaken: d.CurrentTurn,
		Forfeit:    true,
	}
	if winner != nil {
		res.WinnerHP = winner.CurrentHP
	}
	if loser != nil {
		res.LoserHP = loser.CurrentHP
	}
	return res, true
}

// MarkResolved flips the exactly-once resolution guard. The first caller
// gets true and owns the durable side effects; later callers get false.
func (m *Manager) MarkResolved(duelID string) (*game.DuelState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.active[duelID]
	if !ok || d.StatsRecorded {
		return nil, false
	}
	d.StatsRecorded = true
	d.Phase = game.PhaseCompleted
	return d, true
}

// Get returns an active duel by id.
func (m *Manager) Get(duelID string) (*game.DuelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.active[duelID]
	if !ok {
		return nil, ErrDuelNotFound
	}
	return d, nil
}

// PendingFor returns the open challenge against the given player, if any.
func (m *Manager) PendingFor(challengedID int64) (*game.DuelState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.evictIfExpired(challengedID, time.Now().UTC()) {
		return nil, false
	}
	d, ok := m.pending[challengedID]
	return d, ok
}

// Remove drops a duel from the active set.
func (m *Manager) Remove(duelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, duelID)
}

// CleanupExpired evicts expired pending challenges and unfinished duels
// older than StaleDuelAge. Returns how many entries were removed.
func (m *Manager) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	removed := 0
	for id, d := range m.pending {
		if now.After(d.ExpiresAt) {
			delete(m.pending, id)
			removed++
		}
	}
	for id, d := range m.active {
		if now.Sub(d.CreatedAt) > StaleDuelAge {
			delete(m.active, id)
			removed++
		}
	}
	return removed
}
