package rating

import (
	"time"

	"github.com/M1tsumi/arc-duels/internal/game"
)

// Result strings stored in the recent-duel history.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// PlayerResult is one participant's side of a finished duel. Stats points
// into the caller's loaded profile and is mutated in place.
type PlayerResult struct {
	UserID          int64
	Stats           *game.DuelStats
	Element         game.Element
	OpponentID      int64
	OpponentElement game.Element
}

// Outcome reports what RecordResult did to one participant.
type Outcome struct {
	UserID          int64
	Result          string
	Rating          Change
	NewAchievements []string
}

// RecordResult folds a finished duel into both participants' stats: totals,
// streaks, per-element counters, rating, damage totals, recent-duel history
// and achievements. Rating deltas use the game counts from before this duel,
// so both deltas are computed before either side is mutated. Returns the
// challenger's outcome first.
func RecordResult(res game.BattleResult, battleLog []game.BattleAction, challenger, challenged PlayerResult) (Outcome, Outcome) {
	now := time.Now().UTC()

	chGames := challenger.Stats.TotalDuels
	opGames := challenged.Stats.TotalDuels

	var chDelta, opDelta int
	var chResult, opResult string
	switch r := res.(type) {
	case game.Victory:
		if r.WinnerID == challenger.UserID {
			chDelta, opDelta = CalculateChange(challenger.Stats.DuelRating, challenged.Stats.DuelRating, chGames, opGames, false)
			chResult, opResult = ResultWin, ResultLoss
		} else {
			opDelta, chDelta = CalculateChange(challenged.Stats.DuelRating, challenger.Stats.DuelRating, opGames, chGames, false)
			chResult, opResult = ResultLoss, ResultWin
		}
	case game.Draw:
		chDelta, opDelta = CalculateChange(challenger.Stats.DuelRating, challenged.Stats.DuelRating, chGames, opGames, true)
		chResult, opResult = ResultDraw, ResultDraw
	}

	chOut := applyResult(challenger, chResult, chDelta, battleLog, now)
	opOut := applyResult(challenged, opResult, opDelta, battleLog, now)
	return chOut, opOut
}

func applyResult(p PlayerResult, result string, delta int, battleLog []game.BattleAction, now time.Time) Outcome {
	s := p.Stats
	s.TotalDuels++
	switch result {
	case ResultWin:
		s.DuelWins++
		if s.CurrentStreak < 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	case ResultLoss:
		s.DuelLosses++
		s.CurrentStreak = 0
	case ResultDraw:
		s.DuelDraws++
		s.CurrentStreak = 0
	}
	s.WinRate = float64(s.DuelWins) / float64(s.TotalDuels) * 100

	rec := s.ElementRecordFor(p.Element)
	switch result {
	case ResultWin:
		rec.Wins++
	case ResultLoss:
		rec.Losses++
	case ResultDraw:
		rec.Draws++
	}
	s.FavoriteElement = FavoriteElement(s.ElementStats)

	change := ApplyChange(s.DuelRating, delta)
	s.DuelRating = change.NewRating

	for _, a := range battleLog {
		if a.AttackerID == p.UserID {
			s.TotalDamageDealt += a.Damage
		}
		if a.DefenderID == p.UserID {
			s.TotalDamageTaken += a.Damage
		}
	}

	s.RecentDuels = append(s.RecentDuels, game.DuelSummary{
		OpponentID:      p.OpponentID,
		Result:          result,
		ElementUsed:     p.Element,
		OpponentElement: p.OpponentElement,
		RatingChange:    change.Delta,
		Date:            now,
	})
	if n := len(s.RecentDuels); n > game.RecentDuelsLimit {
		s.RecentDuels = s.RecentDuels[n-game.RecentDuelsLimit:]
	}

	t := now
	s.LastDuelAt = &t

	return Outcome{
		UserID:          p.UserID,
		Result:          result,
		Rating:          change,
		NewAchievements: CheckAchievements(s),
	}
}
