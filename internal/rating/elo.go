// Package rating implements the ELO-style duel rating: expected scores,
// K-factor selection, tier classification, achievements, and the apply step
// that folds one completed duel into both participants' durable stats.
package rating

import (
	"math"

	"github.com/M1tsumi/arc-duels/internal/game"
)

const (
	// KFactorBase is the standard rating sensitivity.
	KFactorBase = 32
	// ProvisionalGames is the duel count under which the boosted K-factor
	// applies.
	ProvisionalGames = 10
	// ExperiencedGames is the duel count past which the reduced K-factor
	// applies.
	ExperiencedGames = 50
	// RatingDivisor is the logistic spread of the expectation formula.
	RatingDivisor = 400
)

// KFactor returns the rating sensitivity for a player with the given number
// of completed duels: 1.5x base while provisional, base until experienced,
// 0.75x base afterwards.
func KFactor(gamesPlayed int) float64 {
	switch {
	case gamesPlayed < ProvisionalGames:
		return KFactorBase * 1.5
	case gamesPlayed < ExperiencedGames:
		return KFactorBase
	default:
		return KFactorBase * 0.75
	}
}

// ExpectedScore returns the logistic win expectation of a player rated own
// against an opponent rated opp.
func ExpectedScore(own, opp int) float64 {
	return 1 / (1 + math.Pow(10, float64(opp-own)/RatingDivisor))
}

// CalculateChange computes both participants' rating deltas for one duel.
// gamesPlayed counts are the values prior to this duel so a player's first
// result still uses the provisional K-factor.
func CalculateChange(winnerRating, loserRating, winnerGames, loserGames int, draw bool) (winnerChange, loserChange int) {
	winnerK := KFactor(winnerGames)
	loserK := KFactor(loserGames)

	winnerExpected := ExpectedScore(winnerRating, loserRating)
	loserExpected := 1 - winnerExpected

	winnerScore, loserScore := 1.0, 0.0
	if draw {
		winnerScore, loserScore = 0.5, 0.5
	}

	winnerChange = int(math.Round(winnerK * (winnerScore - winnerExpected)))
	loserChange = int(math.Round(loserK * (loserScore - loserExpected)))
	return winnerChange, loserChange
}

// Change describes the application of one rating delta.
type Change struct {
	OldRating   int
	NewRating   int
	Delta       int
	TierChanged bool
	NewTier     Tier
}

// ApplyChange adds a delta to a rating, clamping at the floor of 0, and
// reports any tier boundary crossed.
func ApplyChange(current, delta int) Change {
	next := current + delta
	if next < 0 {
		next = 0
	}
	oldTier := TierFromRating(current)
	newTier := TierFromRating(next)
	return Change{
		OldRating:   current,
		NewRating:   next,
		Delta:       delta,
		TierChanged: oldTier != newTier,
		NewTier:     newTier,
	}
}

// FavoriteElement returns the element with the most recorded duels, or ""
// when no element has been played.
func FavoriteElement(stats map[game.Element]*game.ElementRecord) game.Element {
	var best game.Element
	bestTotal := 0
	for _, e := range game.Elements {
		rec, ok := stats[e]
		if !ok {
			continue
		}
		if total := rec.Total(); total > bestTotal {
			best = e
			bestTotal = total
		}
	}
	return best
}
