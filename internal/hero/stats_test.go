package hero

import (
	"testing"

	"github.com/M1tsumi/arc-duels/internal/game"
)

func TestStarLevel_Progression(t *testing.T) {
	cases := []struct {
		rarity game.Rarity
		stars  int
		want   int
	}{
		{game.RarityRare, 1, 1},
		{game.RarityRare, 2, 2},
		{game.RarityEpic, 1, 3},
		{game.RarityEpic, 3, 5},
		{game.RarityLegendary, 1, 6},
		{game.RarityLegendary, 6, 11},
	}
	for _, c := range cases {
		if got := StarLevel(c.rarity, c.stars); got != c.want {
			t.Fatalf("StarLevel(%s, %d) = %d, want %d", c.rarity, c.stars, got, c.want)
		}
	}
}

func TestCalculateStats_StarMultiplier(t *testing.T) {
	rec := &game.HeroRecord{
		Rarity:  game.RarityEpic,
		Stars:   1, // star level 3 -> multiplier 1.30
		Element: game.ElementFire,
		Stats:   game.HeroStats{BaseAtk: 100, BaseDef: 80, BaseHP: 120},
	}
	s := CalculateStats(rec, nil)
	if s.CurrentAtk != 130 {
		t.Fatalf("expected ATK 130, got %d", s.CurrentAtk)
	}
	if s.CurrentDef != 104 {
		t.Fatalf("expected DEF 104, got %d", s.CurrentDef)
	}
	if s.CurrentHP != 156 {
		t.Fatalf("expected HP 156, got %d", s.CurrentHP)
	}
}

func TestCalculateStats_BonusesStackAdditively(t *testing.T) {
	rec := &game.HeroRecord{
		Rarity:  game.RarityRare,
		Stars:   1, // multiplier 1.0
		Element: game.ElementFire,
		Stats:   game.HeroStats{BaseAtk: 100, BaseDef: 100, BaseHP: 100},
	}
	bonuses := game.Bonuses{
		game.BonusAttack:   0.10,
		game.BonusAllStats: 0.25,
	}
	s := CalculateStats(rec, bonuses)
	// Specific and all-stats bonuses sum before the single multiplication.
	if s.CurrentAtk != 135 {
		t.Fatalf("expected ATK 135 (1 + 0.10 + 0.25), got %d", s.CurrentAtk)
	}
	if s.CurrentDef != 125 {
		t.Fatalf("expected DEF 125, got %d", s.CurrentDef)
	}
}

func TestCalculateStats_MonotonicInStarLevel(t *testing.T) {
	bonuses := game.Bonuses{game.BonusAllStats: 0.1}
	tiers := []struct {
		rarity game.Rarity
		stars  int
	}{
		{game.RarityRare, 1}, {game.RarityRare, 2},
		{game.RarityEpic, 1}, {game.RarityEpic, 2}, {game.RarityEpic, 3},
		{game.RarityLegendary, 1}, {game.RarityLegendary, 2}, {game.RarityLegendary, 3},
		{game.RarityLegendary, 4}, {game.RarityLegendary, 5}, {game.RarityLegendary, 6},
	}
	prev := Stats{}
	for i, tier := range tiers {
		rec := &game.HeroRecord{Rarity: tier.rarity, Stars: tier.stars, Element: game.ElementWater}
		s := CalculateStats(rec, bonuses)
		if i > 0 && (s.CurrentAtk < prev.CurrentAtk || s.CurrentDef < prev.CurrentDef || s.CurrentHP < prev.CurrentHP) {
			t.Fatalf("stats decreased at %s %d★: %+v -> %+v", tier.rarity, tier.stars, prev, s)
		}
		prev = s
	}
}

func TestUpgrade_PathAndCosts(t *testing.T) {
	rec := DefaultHero(game.ElementEarth)
	res := &game.Resources{BasicHeroShards: 10}

	if err := Upgrade(rec, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Rarity != game.RarityRare || rec.Stars != 2 {
		t.Fatalf("expected rare 2★, got %s %d★", rec.Rarity, rec.Stars)
	}
	if res.BasicHeroShards != 0 {
		t.Fatalf("expected shards spent, got %d", res.BasicHeroShards)
	}

	// Rare 2★ promotes to epic 1★.
	res.BasicHeroShards = 15
	res.EpicHeroShards = 5
	if err := Upgrade(rec, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Rarity != game.RarityEpic || rec.Stars != 1 {
		t.Fatalf("expected epic 1★, got %s %d★", rec.Rarity, rec.Stars)
	}
}

func TestUpgrade_InsufficientResources(t *testing.T) {
	rec := DefaultHero(game.ElementAir)
	res := &game.Resources{BasicHeroShards: 3}
	if err := Upgrade(rec, res); err == nil {
		t.Fatalf("expected upgrade to fail with 3 shards")
	}
	if rec.Stars != 1 || res.BasicHeroShards != 3 {
		t.Fatalf("failed upgrade must not mutate hero or resources")
	}
}

func TestUpgrade_MaxLevel(t *testing.T) {
	rec := &game.HeroRecord{Rarity: game.RarityLegendary, Stars: 6, Element: game.ElementFire}
	res := &game.Resources{BasicHeroShards: 999, EpicHeroShards: 999}
	if err := Upgrade(rec, res); err == nil {
		t.Fatalf("expected max-level error")
	}
}

func TestAggregateBonuses(t *testing.T) {
	skills := DefaultSkills()
	skills[game.ElementFire]["tier_1"] = true // +10% ATK
	skills[game.ElementFire]["tier_2"] = true // +15% DEF
	skills[game.ElementAir]["tier_1"] = true  // +10% ATK, +5% Speed

	b := AggregateBonuses(skills)
	if b[game.BonusAttack] != 0.20 {
		t.Fatalf("expected atk_bonus 0.20, got %v", b[game.BonusAttack])
	}
	if b[game.BonusDefense] != 0.15 {
		t.Fatalf("expected def_bonus 0.15, got %v", b[game.BonusDefense])
	}
	if b[game.BonusSpeed] != 0.05 {
		t.Fatalf("expected speed_bonus 0.05, got %v", b[game.BonusSpeed])
	}
}

func TestUnlockSkill_RequiresPreviousTier(t *testing.T) {
	skills := DefaultSkills()
	res := &game.Resources{SkillPoints: 10}
	if err := UnlockSkill(skills, game.ElementWater, 2, res); err == nil {
		t.Fatalf("expected tier 2 unlock to fail without tier 1")
	}
	if err := UnlockSkill(skills, game.ElementWater, 1, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := UnlockSkill(skills, game.ElementWater, 2, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SkillPoints != 7 {
		t.Fatalf("expected 7 skill points remaining, got %d", res.SkillPoints)
	}
}
