package hero

import (
	"fmt"

	"github.com/M1tsumi/arc-duels/internal/game"
)

// Skill is one node of an element's four-tier skill tree.
type Skill struct {
	Name        string
	Tier        int
	Cost        int
	Description string
	Bonuses     game.Bonuses
	Element     game.Element
}

// SkillTrees holds the fixed four-skill tree per element. Tiers unlock in
// order; each grants additive percentage bonuses.
var SkillTrees = map[game.Element][]Skill{
	game.ElementFire: {
		{Name: "Flame Strike", Tier: 1, Cost: 1, Description: "+10% ATK", Bonuses: game.Bonuses{game.BonusAttack: 0.10}, Element: game.ElementFire},
		{Name: "Fire Wall", Tier: 2, Cost: 2, Description: "+15% DEF", Bonuses: game.Bonuses{game.BonusDefense: 0.15}, Element: game.ElementFire},
		{Name: "Blazing Fury", Tier: 3, Cost: 3, Description: "+20% ATK, +10% Crit", Bonuses: game.Bonuses{game.BonusAttack: 0.20, game.BonusCrit: 0.10}, Element: game.ElementFire},
		{Name: "Inferno Mastery", Tier: 4, Cost: 5, Description: "+25% All Stats", Bonuses: game.Bonuses{game.BonusAllStats: 0.25}, Element: game.ElementFire},
	},
	game.ElementWater: {
		{Name: "Water Whip", Tier: 1, Cost: 1, Description: "+15% HP", Bonuses: game.Bonuses{game.BonusHP: 0.15}, Element: game.ElementWater},
		{Name: "Healing Stream", Tier: 2, Cost: 2, Description: "+10% HP Regen", Bonuses: game.Bonuses{game.BonusHPRegen: 0.10}, Element: game.ElementWater},
		{Name: "Tidal Force", Tier: 3, Cost: 3, Description: "+20% DEF, +15% HP", Bonuses: game.Bonuses{game.BonusDefense: 0.20, game.BonusHP: 0.15}, Element: game.ElementWater},
		{Name: "Ocean Mastery", Tier: 4, Cost: 5, Description: "+25% All Stats", Bonuses: game.Bonuses{game.BonusAllStats: 0.25}, Element: game.ElementWater},
	},
	game.ElementEarth: {
		{Name: "Rock Throw", Tier: 1, Cost: 1, Description: "+15% DEF", Bonuses: game.Bonuses{game.BonusDefense: 0.15}, Element: game.ElementEarth},
		{Name: "Stone Armor", Tier: 2, Cost: 2, Description: "+20% DEF, +5% DMG Reduction", Bonuses: game.Bonuses{game.BonusDefense: 0.20, game.BonusDamageReduction: 0.05}, Element: game.ElementEarth},
		{Name: "Earthquake", Tier: 3, Cost: 3, Description: "+15% ATK, +20% DEF", Bonuses: game.Bonuses{game.BonusAttack: 0.15, game.BonusDefense: 0.20}, Element: game.ElementEarth},
		{Name: "Mountain Mastery", Tier: 4, Cost: 5, Description: "+25% All Stats", Bonuses: game.Bonuses{game.BonusAllStats: 0.25}, Element: game.ElementEarth},
	},
	game.ElementAir: {
		{Name: "Wind Blade", Tier: 1, Cost: 1, Description: "+10% ATK, +5% Speed", Bonuses: game.Bonuses{game.BonusAttack: 0.10, game.BonusSpeed: 0.05}, Element: game.ElementAir},
		{Name: "Air Shield", Tier: 2, Cost: 2, Description: "+10% Evasion", Bonuses: game.Bonuses{game.BonusEvasion: 0.10}, Element: game.ElementAir},
		{Name: "Tornado Strike", Tier: 3, Cost: 3, Description: "+25% ATK, +10% Crit", Bonuses: game.Bonuses{game.BonusAttack: 0.25, game.BonusCrit: 0.10}, Element: game.ElementAir},
		{Name: "Storm Mastery", Tier: 4, Cost: 5, Description: "+25% All Stats", Bonuses: game.Bonuses{game.BonusAllStats: 0.25}, Element: game.ElementAir},
	},
}

// SkillAt returns the skill at a tier of an element's tree.
func SkillAt(element game.Element, tier int) (Skill, bool) {
	tree, ok := SkillTrees[element]
	if !ok {
		return Skill{}, false
	}
	for _, s := range tree {
		if s.Tier == tier {
			return s, true
		}
	}
	return Skill{}, false
}

// DefaultSkills returns the unlocked-tier map for a new profile: every tier
// of every element locked.
func DefaultSkills() game.Skills {
	skills := make(game.Skills, len(game.Elements))
	for _, e := range game.Elements {
		tiers := make(map[string]bool, 4)
		for t := 1; t <= 4; t++ {
			tiers[tierName(t)] = false
		}
		skills[e] = tiers
	}
	return skills
}

func tierName(tier int) string { return fmt.Sprintf("tier_%d", tier) }

// AggregateBonuses folds every unlocked skill's bonuses into one additive
// bonus map for the stat calculator.
func AggregateBonuses(skills game.Skills) game.Bonuses {
	total := game.Bonuses{}
	for element, tiers := range skills {
		for t := 1; t <= 4; t++ {
			if !tiers[tierName(t)] {
				continue
			}
			skill, ok := SkillAt(element, t)
			if !ok {
				continue
			}
			for key, value := range skill.Bonuses {
				total[key] += value
			}
		}
	}
	return total
}

// CanUnlockSkill checks tier prerequisites and skill-point cost. The message
// is user-facing.
func CanUnlockSkill(skills game.Skills, element game.Element, tier int, skillPoints int) (bool, string) {
	skill, ok := SkillAt(element, tier)
	if !ok {
		return false, "Skill not found"
	}
	if skills[element][tierName(tier)] {
		return false, "Skill already unlocked"
	}
	if skillPoints < skill.Cost {
		return false, fmt.Sprintf("Need %d more Skill Points", skill.Cost-skillPoints)
	}
	if tier > 1 && !skills[element][tierName(tier-1)] {
		prev, _ := SkillAt(element, tier-1)
		return false, fmt.Sprintf("Must unlock %s first", prev.Name)
	}
	return true, "Ready to unlock!"
}

// UnlockSkill marks a tier as unlocked and deducts its cost from the
// resource pool. skills and res are mutated only on success.
func UnlockSkill(skills game.Skills, element game.Element, tier int, res *game.Resources) error {
	ok, msg := CanUnlockSkill(skills, element, tier, res.SkillPoints)
	if !ok {
		return fmt.Errorf("%s", msg)
	}
	skill, _ := SkillAt(element, tier)
	if skills[element] == nil {
		skills[element] = make(map[string]bool, 4)
	}
	skills[element][tierName(tier)] = true
	res.SkillPoints -= skill.Cost
	return nil
}
