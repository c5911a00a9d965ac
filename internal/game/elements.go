package game

// Element is one of the four hero elements. Using a dedicated type instead
// of plain string makes code safer and self-documenting.
type Element string

const (
	ElementFire  Element = "fire"
	ElementWater Element = "water"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
)

// Elements lists every playable element in display order.
var Elements = []Element{ElementFire, ElementWater, ElementEarth, ElementAir}

func (e Element) Valid() bool {
	switch e {
	case ElementFire, ElementWater, ElementEarth, ElementAir:
		return true
	}
	return false
}

// Rarity is a hero rarity tier.
type Rarity string

const (
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// MaxStars returns the star cap within a rarity tier (rare 1-2, epic 1-3,
// legendary 1-6).
func (r Rarity) MaxStars() int {
	switch r {
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 6
	}
	return 1
}

// Skill bonus keys. Bonuses are additive percentage floats keyed by stat;
// the keys match the skill sub-record of the persisted profile.
const (
	BonusAttack          = "atk_bonus"
	BonusDefense         = "def_bonus"
	BonusHP              = "hp_bonus"
	BonusAllStats        = "all_stats_bonus"
	BonusCrit            = "crit_bonus"
	BonusSpeed           = "speed_bonus"
	BonusEvasion         = "evasion_bonus"
	BonusHPRegen         = "hp_regen_bonus"
	BonusDamageReduction = "dmg_reduction_bonus"
)

// Bonuses maps a bonus key to its additive percentage value (0.15 == +15%).
type Bonuses map[string]float64

// Get returns the bonus for key, or 0 when absent. Safe on a nil map.
func (b Bonuses) Get(key string) float64 {
	if b == nil {
		return 0
	}
	return b[key]
}
