package hero

import (
	"errors"
	"fmt"

	"github.com/M1tsumi/arc-duels/internal/game"
)

// ErrMaxLevel is returned when a hero is already at legendary 6 stars.
var ErrMaxLevel = errors.New("hero is already at maximum level")

// UpgradeCost is the shard price of the next progression step.
type UpgradeCost struct {
	BasicHeroShards int
	EpicHeroShards  int
}

type tierKey struct {
	rarity game.Rarity
	stars  int
}

var upgradeCosts = map[tierKey]UpgradeCost{
	{game.RarityRare, 1}:      {BasicHeroShards: 10},
	{game.RarityRare, 2}:      {BasicHeroShards: 15, EpicHeroShards: 5},
	{game.RarityEpic, 1}:      {BasicHeroShards: 20, EpicHeroShards: 8},
	{game.RarityEpic, 2}:      {BasicHeroShards: 25, EpicHeroShards: 12},
	{game.RarityEpic, 3}:      {BasicHeroShards: 30, EpicHeroShards: 20},
	{game.RarityLegendary, 1}: {EpicHeroShards: 15},
	{game.RarityLegendary, 2}: {EpicHeroShards: 20},
	{game.RarityLegendary, 3}: {EpicHeroShards: 25},
	{game.RarityLegendary, 4}: {EpicHeroShards: 30},
	{game.RarityLegendary, 5}: {EpicHeroShards: 40},
}

// CostFor returns the cost of the hero's next upgrade step, or ErrMaxLevel.
func CostFor(rec *game.HeroRecord) (UpgradeCost, error) {
	if rec.Rarity == game.RarityLegendary && rec.Stars >= 6 {
		return UpgradeCost{}, ErrMaxLevel
	}
	cost, ok := upgradeCosts[tierKey{rec.Rarity, rec.Stars}]
	if !ok {
		return UpgradeCost{}, fmt.Errorf("no upgrade path from %s %d★", rec.Rarity, rec.Stars)
	}
	return cost, nil
}

// NextTier returns the (rarity, stars) pair reached by the next upgrade.
// Rare 2★ promotes to epic 1★ and epic 3★ to legendary 1★.
func NextTier(rec *game.HeroRecord) (game.Rarity, int, bool) {
	switch rec.Rarity {
	case game.RarityRare:
		if rec.Stars == 1 {
			return game.RarityRare, 2, true
		}
		if rec.Stars == 2 {
			return game.RarityEpic, 1, true
		}
	case game.RarityEpic:
		if rec.Stars < 3 {
			return game.RarityEpic, rec.Stars + 1, true
		}
		if rec.Stars == 3 {
			return game.RarityLegendary, 1, true
		}
	case game.RarityLegendary:
		if rec.Stars < 6 {
			return game.RarityLegendary, rec.Stars + 1, true
		}
	}
	return "", 0, false
}

// CanUpgrade checks whether the hero has an upgrade step and the resources
// cover its cost. The returned message is user-facing.
func CanUpgrade(rec *game.HeroRecord, res game.Resources) (bool, string) {
	cost, err := CostFor(rec)
	if err != nil {
		return false, "Hero is already at maximum level (Legendary 6★)"
	}
	if res.BasicHeroShards < cost.BasicHeroShards {
		return false, fmt.Sprintf("Need %d more Basic Hero Shards", cost.BasicHeroShards-res.BasicHeroShards)
	}
	if res.EpicHeroShards < cost.EpicHeroShards {
		return false, fmt.Sprintf("Need %d more Epic Hero Shards", cost.EpicHeroShards-res.EpicHeroShards)
	}
	return true, "Ready to upgrade!"
}

// Upgrade advances the hero one progression step, deducting the cost from
// res and recalculating the stored current stats. rec and res are mutated
// only on success.
func Upgrade(rec *game.HeroRecord, res *game.Resources) error {
	ok, msg := CanUpgrade(rec, *res)
	if !ok {
		return errors.New(msg)
	}
	cost, err := CostFor(rec)
	if err != nil {
		return err
	}
	rarity, stars, ok := NextTier(rec)
	if !ok {
		return ErrMaxLevel
	}

	res.BasicHeroShards -= cost.BasicHeroShards
	res.EpicHeroShards -= cost.EpicHeroShards
	rec.Rarity = rarity
	rec.Stars = stars

	stats := CalculateStats(rec, nil)
	rec.Stats.CurrentAtk = stats.CurrentAtk
	rec.Stats.CurrentDef = stats.CurrentDef
	rec.Stats.CurrentHP = stats.CurrentHP
	return nil
}
