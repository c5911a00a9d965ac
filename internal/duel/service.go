package duel

import (
	"sync"
	"time"

	"github.com/M1tsumi/arc-duels/internal/game"
	"github.com/M1tsumi/arc-duels/internal/hero"
	"github.com/M1tsumi/arc-duels/internal/logging"
	"github.com/M1tsumi/arc-duels/internal/profile"
	"github.com/M1tsumi/arc-duels/internal/rating"
	"github.com/M1tsumi/arc-duels/internal/storage"
)

// DefaultTurnTimeout is how long a player may hold the turn before the duel
// resolves against them.
const DefaultTurnTimeout = 30 * time.Second

// Rewards granted when a duel resolves.
const (
	WinnerShardReward = 2
	WinnerSkillPoints = 1
	LoserShardReward  = 1
	DrawShardReward   = 1
)

// Resolution carries everything produced by a finished duel: the battle
// outcome plus both participants' rating outcomes.
type Resolution struct {
	Result     game.BattleResult
	Kind       string
	Challenger rating.Outcome
	Challenged rating.Outcome
}

// Service wires the in-memory duel manager to durable state: profiles,
// ratings, the duel archive and the leaderboard. It also owns the per-duel
// turn timers.
type Service struct {
	manager  *Manager
	profiles profile.Store
	repo     storage.Repository

	turnTimeout time.Duration

	tmu    sync.Mutex
	timers map[string]*time.Timer
}

// Option configures a Service.
type Option func(*Service)

// WithTurnTimeout overrides the per-turn deadline. Zero disables turn
// timers entirely.
func WithTurnTimeout(d time.Duration) Option {
	return func(s *Service) { s.turnTimeout = d }
}

func NewService(manager *Manager, profiles profile.Store, repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		manager:     manager,
		profiles:    profiles,
		repo:        repo,
		turnTimeout: DefaultTurnTimeout,
		timers:      make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Challenge opens a duel challenge. Both profiles are touched first so new
// players get a default profile before their first duel.
func (s *Service) Challenge(challengerID, challengedID, channelID int64, element game.Element) (*game.DuelState, error) {
	if _, err := s.profiles.Load(challengerID); err != nil {
		return nil, err
	}
	if _, err := s.profiles.Load(challengedID); err != nil {
		return nil, err
	}
	d, err := s.manager.CreateChallenge(challengerID, challengedID, channelID, element)
	if err != nil {
		return nil, err
	}
	logging.Info("challenge created", logging.Fields{
		"duel_id": d.ID(), "challenger": challengerID, "challenged": challengedID, "element": element,
	})
	return d, nil
}

// Accept accepts a pending challenge: both combat snapshots are built from
// the players' profiles, initiative is rolled and the battle starts.
func (s *Service) Accept(challengedID int64, element game.Element) (*game.DuelState, error) {
	d, err := s.manager.AcceptChallenge(challengedID, element)
	if err != nil {
		return nil, err
	}

	challengerHero, err := s.buildHero(d.ChallengerID, d.ChallengerElement)
	if err != nil {
		s.discard(d.ID(), err)
		return nil, err
	}
	challengedHero, err := s.buildHero(d.ChallengedID, d.ChallengedElement)
	if err != nil {
		s.discard(d.ID(), err)
		return nil, err
	}

	d, err = s.manager.SetupHeroes(d.ID(), challengerHero, challengedHero)
	if err != nil {
		s.discard(d.ID(), err)
		return nil, err
	}
	s.armTimer(d.ID(), d.TurnSerial)
	logging.Info("duel started", logging.Fields{
		"duel_id": d.ID(), "first_turn": d.TurnPlayerID,
	})
	return d, nil
}

// buildHero snapshots a player's hero for combat: the stored hero record for
// the chosen element scaled by that element's unlocked skill bonuses.
func (s *Service) buildHero(userID int64, element game.Element) (*game.DuelHero, error) {
	p, err := s.profiles.Load(userID)
	if err != nil {
		return nil, err
	}
	rec := profile.HeroFor(p, element)
	bonuses := hero.AggregateBonuses(game.Skills{element: p.Skills[element]})
	stats := hero.CalculateStats(rec, bonuses)
	return &game.DuelHero{
		UserID:       userID,
		Element:      element,
		Attack:       stats.CurrentAtk,
		Defense:      stats.CurrentDef,
		MaxHP:        stats.CurrentHP,
		CurrentHP:    stats.CurrentHP,
		SkillBonuses: bonuses,
		Rarity:       rec.Rarity,
		Stars:        rec.Stars,
	}, nil
}

// Decline rejects a pending challenge.
func (s *Service) Decline(challengedID int64) (*game.DuelState, error) {
	return s.manager.DeclineChallenge(challengedID)
}

// Attack resolves one attack. When the attack finishes the duel the returned
// Resolution is non-nil and all durable effects have been applied.
func (s *Service) Attack(duelID string, userID int64) (game.BattleAction, *Resolution, error) {
	action, result, err := s.manager.ExecuteAttack(duelID, userID)
	if err != nil {
		return game.BattleAction{}, nil, err
	}
	if result == nil {
		if d, getErr := s.manager.Get(duelID); getErr == nil {
			s.armTimer(duelID, d.TurnSerial)
		}
		return action, nil, nil
	}

	kind := game.ResultVictory
	if _, isDraw := result.(game.Draw); isDraw {
		kind = game.ResultDraw
	}
	res, err := s.finalize(duelID, result, kind)
	if err != nil {
		return action, nil, err
	}
	return action, res, nil
}

// Forfeit concedes the duel; the opponent wins and durable effects are
// applied immediately.
func (s *Service) Forfeit(duelID string, userID int64) (*Resolution, error) {
	result, err := s.manager.Forfeit(duelID, userID)
	if err != nil {
		return nil, err
	}
	return s.finalize(duelID, result, game.ResultForfeit)
}

// Get returns an active duel by id.
func (s *Service) Get(duelID string) (*game.DuelState, error) {
	return s.manager.Get(duelID)
}

// PendingFor returns the open challenge against a player, if any.
func (s *Service) PendingFor(userID int64) (*game.DuelState, bool) {
	return s.manager.PendingFor(userID)
}

// Profile returns a player's full profile, creating a default for unknown
// players.
func (s *Service) Profile(userID int64) (*game.Profile, error) {
	return s.profiles.Load(userID)
}

// Leaderboard returns the top leaderboard rows by rating.
func (s *Service) Leaderboard(limit int) ([]game.Ranking, error) {
	return s.repo.GetTopPlayers(limit)
}

// Sweep evicts expired challenges and stale duels. Meant to run on a
// schedule.
func (s *Service) Sweep() {
	if n := s.manager.CleanupExpired(); n > 0 {
		logging.Info("swept expired duel state", logging.Fields{"removed": n})
	}
}

// finalize applies the durable effects of a finished duel exactly once:
// rating updates, rewards, the archive row and leaderboard refresh.
func (s *Service) finalize(duelID string, result game.BattleResult, kind string) (*Resolution, error) {
	d, ok := s.manager.MarkResolved(duelID)
	if !ok {
		return nil, ErrAlreadyResolved
	}
	s.stopTimer(duelID)

	challengerProfile, err := s.profiles.Load(d.ChallengerID)
	if err != nil {
		s.discard(duelID, err)
		return nil, err
	}
	challengedProfile, err := s.profiles.Load(d.ChallengedID)
	if err != nil {
		s.discard(duelID, err)
		return nil, err
	}
	// Pristine copy for rollback: the two profile writes below must land
	// together or not at all.
	challengerBefore, err := profile.Clone(challengerProfile)
	if err != nil {
		s.discard(duelID, err)
		return nil, err
	}

	chOut, opOut := rating.RecordResult(result, d.BattleLog,
		rating.PlayerResult{
			UserID:          d.ChallengerID,
			Stats:           challengerProfile.DuelStats,
			Element:         d.ChallengerElement,
			OpponentID:      d.ChallengedID,
			OpponentElement: d.ChallengedElement,
		},
		rating.PlayerResult{
			UserID:          d.ChallengedID,
			Stats:           challengedProfile.DuelStats,
			Element:         d.ChallengedElement,
			OpponentID:      d.ChallengerID,
			OpponentElement: d.ChallengerElement,
		},
	)
	s.grantRewards(result, challengerProfile, challengedProfile)

	if err := s.profiles.Save(d.ChallengerID, challengerProfile); err != nil {
		s.discard(duelID, err)
		return nil, err
	}
	if err := s.profiles.Save(d.ChallengedID, challengedProfile); err != nil {
		if rbErr := s.profiles.Save(d.ChallengerID, challengerBefore); rbErr != nil {
			logging.Error("failed to roll back challenger profile", rbErr, logging.Fields{
				"duel_id": duelID, "user_id": d.ChallengerID,
			})
		}
		s.discard(duelID, err)
		return nil, err
	}

	s.archive(d, result, kind, chOut, opOut)
	s.refreshRanking(d.ChallengerID, challengerProfile.DuelStats)
	s.refreshRanking(d.ChallengedID, challengedProfile.DuelStats)

	s.manager.Remove(duelID)
	logging.Info("duel resolved", logging.Fields{
		"duel_id": duelID, "kind": kind,
		"challenger_delta": chOut.Rating.Delta, "challenged_delta": opOut.Rating.Delta,
	})
	return &Resolution{Result: result, Kind: kind, Challenger: chOut, Challenged: opOut}, nil
}

// discard drops a duel whose setup or resolution failed partway. Leaving it
// in the active table would lock both players out until the stale sweep.
func (s *Service) discard(duelID string, err error) {
	s.stopTimer(duelID)
	s.manager.Remove(duelID)
	logging.Error("duel discarded", err, logging.Fields{"duel_id": duelID})
}

func (s *Service) grantRewards(result game.BattleResult, challengerProfile, challengedProfile *game.Profile) {
	switch r := result.(type) {
	case game.Victory:
		winner, loser := challengerProfile, challengedProfile
		if r.WinnerID == challengedProfile.UserID {
			winner, loser = challengedProfile, challengerProfile
		}
		winner.Resources.BasicHeroShards += WinnerShardReward
		winner.Resources.SkillPoints += WinnerSkillPoints
		loser.Resources.BasicHeroShards += LoserShardReward
	case game.Draw:
		challengerProfile.Resources.BasicHeroShards += DrawShardReward
		challengedProfile.Resources.BasicHeroShards += DrawShardReward
	}
}

func (s *Service) archive(d *game.DuelState, result game.BattleResult, kind string, chOut, opOut rating.Outcome) {
	rec := &game.DuelRecord{
		DuelKey:           d.ID(),
		ChallengerID:      d.ChallengerID,
		ChallengedID:      d.ChallengedID,
		Result:            kind,
		Turns:             result.Turns(),
		ChallengerElement: string(d.ChallengerElement),
		ChallengedElement: string(d.ChallengedElement),
		ChannelID:         d.ChannelID,
	}
	if v, ok := result.(game.Victory); ok {
		rec.WinnerID = v.WinnerID
		rec.LoserID = v.LoserID
		winOut, loseOut := chOut, opOut
		if v.WinnerID == opOut.UserID {
			winOut, loseOut = opOut, chOut
		}
		rec.WinnerRatingDelta = winOut.Rating.Delta
		rec.LoserRatingDelta = loseOut.Rating.Delta
	} else {
		rec.WinnerRatingDelta = chOut.Rating.Delta
		rec.LoserRatingDelta = opOut.Rating.Delta
	}
	if err := s.repo.ArchiveDuel(rec); err != nil {
		logging.Error("failed to archive duel", err, logging.Fields{"duel_id": d.ID()})
	}
}

func (s *Service) refreshRanking(userID int64, stats *game.DuelStats) {
	row := &game.Ranking{
		UserID:          userID,
		Rating:          stats.DuelRating,
		Tier:            string(rating.TierFromRating(stats.DuelRating)),
		TotalDuels:      stats.TotalDuels,
		Wins:            stats.DuelWins,
		Losses:          stats.DuelLosses,
		Draws:           stats.DuelDraws,
		BestStreak:      stats.BestStreak,
		FavoriteElement: string(stats.FavoriteElement),
	}
	if err := s.repo.UpsertRanking(row); err != nil {
		logging.Error("failed to refresh ranking", err, logging.Fields{"user_id": userID})
	}
}

// armTimer schedules the current turn's deadline. The captured serial makes
// a late firing harmless: by then the serial has moved on and TimeoutTurn
// refuses to act.
func (s *Service) armTimer(duelID string, serial int) {
	if s.turnTimeout <= 0 {
		return
	}
	s.tmu.Lock()
	defer s.tmu.Unlock()
	if t, ok := s.timers[duelID]; ok {
		t.Stop()
	}
	s.timers[duelID] = time.AfterFunc(s.turnTimeout, func() {
		s.handleTimeout(duelID, serial)
	})
}

func (s *Service) stopTimer(duelID string) {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	if t, ok := s.timers[duelID]; ok {
		t.Stop()
		delete(s.timers, duelID)
	}
}

func (s *Service) handleTimeout(duelID string, serial int) {
	result, ok := s.manager.TimeoutTurn(duelID, serial)
	if !ok {
		return
	}
	logging.Info("turn timed out", logging.Fields{"duel_id": duelID})
	if _, err := s.finalize(duelID, result, game.ResultTimeout); err != nil {
		logging.Error("failed to finalize timed-out duel", err, logging.Fields{"duel_id": duelID})
	}
}
