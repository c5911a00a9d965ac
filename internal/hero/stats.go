// Package hero implements hero progression: stat calculation from rarity and
// star level, the upgrade path between tiers, and the per-element skill
// trees whose bonuses feed the stat calculator.
package hero

import "github.com/M1tsumi/arc-duels/internal/game"

// BaseStats is the per-element base stat triple before any progression.
type BaseStats struct {
	Attack  int `json:"base_atk"`
	Defense int `json:"base_def"`
	Health  int `json:"base_hp"`
}

// DefaultBaseStats holds the shipped element balance. The server config may
// override these values.
var DefaultBaseStats = map[game.Element]BaseStats{
	game.ElementFire:  {Attack: 100, Defense: 80, Health: 120},
	game.ElementWater: {Attack: 85, Defense: 95, Health: 140},
	game.ElementEarth: {Attack: 90, Defense: 110, Health: 130},
	game.ElementAir:   {Attack: 110, Defense: 75, Health: 115},
}

// Stats is the computed stat block for a hero at its current progression.
type Stats struct {
	BaseAtk    int
	BaseDef    int
	BaseHP     int
	CurrentAtk int
	CurrentDef int
	CurrentHP  int
}

// starMultiplierStep is the linear stat growth applied per star level past
// the first.
const starMultiplierStep = 0.15

// StarLevel maps (rarity, stars) onto the single progression index used for
// stat scaling: rare 1-2, epic 3-5, legendary 6-11. Out-of-range star counts
// are the caller's data-model concern and are not validated here.
func StarLevel(rarity game.Rarity, stars int) int {
	switch rarity {
	case game.RarityRare:
		return stars
	case game.RarityEpic:
		return 2 + stars
	case game.RarityLegendary:
		return 5 + stars
	}
	return 1
}

// EffectiveLevel is the level used by combat speed rolls: a rarity offset
// plus the star count within the tier.
func EffectiveLevel(rarity game.Rarity, stars int) int {
	offset := 0
	switch rarity {
	case game.RarityEpic:
		offset = 2
	case game.RarityLegendary:
		offset = 5
	}
	return offset + stars
}

// CalculateStats computes a hero's current stats from its star progression
// and the aggregated skill bonuses. The star multiplier is applied first,
// then each stat is scaled once by (1 + specific bonus + all-stats bonus);
// bonus sources stack additively before the single multiplication, and
// results truncate to integers.
func CalculateStats(rec *game.HeroRecord, bonuses game.Bonuses) Stats {
	base := rec.Stats
	if base.BaseAtk == 0 && base.BaseDef == 0 && base.BaseHP == 0 {
		if bs, ok := DefaultBaseStats[rec.Element]; ok {
			base = game.HeroStats{BaseAtk: bs.Attack, BaseDef: bs.Defense, BaseHP: bs.Health}
		}
	}

	level := StarLevel(rec.Rarity, rec.Stars)
	mult := 1 + float64(level-1)*starMultiplierStep

	atk := int(float64(base.BaseAtk) * mult)
	def := int(float64(base.BaseDef) * mult)
	hp := int(float64(base.BaseHP) * mult)

	all := bonuses.Get(game.BonusAllStats)
	atk = int(float64(atk) * (1 + bonuses.Get(game.BonusAttack) + all))
	def = int(float64(def) * (1 + bonuses.Get(game.BonusDefense) + all))
	hp = int(float64(hp) * (1 + bonuses.Get(game.BonusHP) + all))

	return Stats{
		BaseAtk:    base.BaseAtk,
		BaseDef:    base.BaseDef,
		BaseHP:     base.BaseHP,
		CurrentAtk: atk,
		CurrentDef: def,
		CurrentHP:  hp,
	}
}

// DefaultHero returns a fresh rare 1-star hero record for an element.
func DefaultHero(element game.Element) *game.HeroRecord {
	bs, ok := DefaultBaseStats[element]
	if !ok {
		bs = DefaultBaseStats[game.ElementFire]
	}
	return &game.HeroRecord{
		Rarity:  game.RarityRare,
		Stars:   1,
		Level:   1,
		Element: element,
		Stats: game.HeroStats{
			BaseAtk:    bs.Attack,
			BaseDef:    bs.Defense,
			BaseHP:     bs.Health,
			CurrentAtk: bs.Attack,
			CurrentDef: bs.Defense,
			CurrentHP:  bs.Health,
		},
	}
}
