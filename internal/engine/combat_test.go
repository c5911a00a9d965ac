package engine

import (
	"math/rand"
	"testing"

	"github.com/M1tsumi/arc-duels/internal/game"
)

func testHero(id int64, element game.Element, atk, def, hp int, bonuses game.Bonuses) *game.DuelHero {
	return &game.DuelHero{
		UserID:       id,
		Element:      element,
		Attack:       atk,
		Defense:      def,
		MaxHP:        hp,
		CurrentHP:    hp,
		SkillBonuses: bonuses,
		Rarity:       game.RarityRare,
		Stars:        1,
	}
}

func TestResolveAttack_DamageNeverIncreasesDefenderHP(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := DefaultConfig()
	attacker := testHero(1, game.ElementFire, 100, 80, 120, nil)
	defender := testHero(2, game.ElementWater, 85, 95, 140, game.Bonuses{game.BonusEvasion: 0.3})

	for i := 0; i < 200; i++ {
		before := defender.CurrentHP
		action := ResolveAttack(rng, cfg, attacker, defender)
		after := defender.CurrentHP
		if after > before || after < 0 {
			t.Fatalf("hp out of range: before=%d after=%d", before, after)
		}
		if action.IsMiss != (after == before) {
			t.Fatalf("miss flag inconsistent with hp change: miss=%v before=%d after=%d", action.IsMiss, before, after)
		}
		if action.IsMiss && action.Damage != 0 {
			t.Fatalf("missed attack must deal 0 damage, got %d", action.Damage)
		}
		if defender.CurrentHP == 0 {
			defender.CurrentHP = defender.MaxHP
		}
	}
}

func TestResolveAttack_DamageFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := DefaultConfig()
	// Defense massively outweighs attack: damage must floor at 10% of ATK.
	attacker := testHero(1, game.ElementFire, 100, 0, 100, nil)
	defender := testHero(2, game.ElementFire, 0, 10000, 1000, nil)

	for i := 0; i < 50; i++ {
		action := ResolveAttack(rng, cfg, attacker, defender)
		if action.IsMiss {
			continue
		}
		if action.Damage != 10 {
			t.Fatalf("expected floored damage 10 (10%% of 100 ATK), got %d", action.Damage)
		}
		defender.CurrentHP = defender.MaxHP
	}
}

func TestResolveAttack_ElementAdvantage(t *testing.T) {
	// Identical stats, neutral vs advantaged matchup, same turn: the fire
	// vs air hit must deal exactly 1.15x the water vs water baseline.
	cfg := DefaultConfig()

	neutralAtt := testHero(1, game.ElementWater, 100, 50, 200, nil)
	neutralDef := testHero(2, game.ElementWater, 100, 50, 200, nil)
	strongAtt := testHero(3, game.ElementFire, 100, 50, 200, nil)
	strongDef := testHero(4, game.ElementAir, 100, 50, 200, nil)

	var baseline, advantaged int
	for seed := int64(0); seed < 20; seed++ {
		a := ResolveAttack(rand.New(rand.NewSource(seed)), cfg, neutralAtt, neutralDef)
		b := ResolveAttack(rand.New(rand.NewSource(seed)), cfg, strongAtt, strongDef)
		neutralDef.CurrentHP = neutralDef.MaxHP
		strongDef.CurrentHP = strongDef.MaxHP
		if a.IsMiss || b.IsMiss {
			continue
		}
		baseline = a.Damage
		advantaged = b.Damage
		break
	}
	if baseline == 0 {
		t.Fatalf("no hit found in 20 seeds")
	}
	// base damage 100 - 50*0.6 = 70; advantaged 70*1.15 = 80 (truncated).
	if baseline != 70 {
		t.Fatalf("expected neutral damage 70, got %d", baseline)
	}
	wantAdvantaged := float64(70) * 1.15
	if advantaged != int(wantAdvantaged) {
		t.Fatalf("expected advantaged damage %d, got %d", int(wantAdvantaged), advantaged)
	}
}

func TestResolveAttack_CriticalTagged(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := DefaultConfig()
	attacker := testHero(1, game.ElementEarth, 100, 50, 200, game.Bonuses{game.BonusCrit: 1.0})
	defender := testHero(2, game.ElementEarth, 100, 50, 200, nil)

	for i := 0; i < 20; i++ {
		action := ResolveAttack(rng, cfg, attacker, defender)
		defender.CurrentHP = defender.MaxHP
		if action.IsMiss {
			continue
		}
		if !action.IsCritical {
			t.Fatalf("crit bonus 1.0 must always crit on hit")
		}
		found := false
		for _, e := range action.Effects {
			if e == EffectCritical {
				found = true
			}
		}
		if !found {
			t.Fatalf("critical hit missing effect tag: %v", action.Effects)
		}
		// 70 base * 1.5 crit = 105.
		if action.Damage != 105 {
			t.Fatalf("expected crit damage 105, got %d", action.Damage)
		}
		return
	}
	t.Fatalf("no hit in 20 attempts")
}

func TestResolveAttack_GuaranteedMissFloor(t *testing.T) {
	cfg := DefaultConfig()
	attacker := testHero(1, game.ElementAir, 100, 0, 100, nil)
	// Evasion beyond accuracy: hit chance clamps at 0.1, so hits still land.
	defender := testHero(2, game.ElementAir, 0, 0, 10000, game.Bonuses{game.BonusEvasion: 5.0})

	hits := 0
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		action := ResolveAttack(rng, cfg, attacker, defender)
		if !action.IsMiss {
			hits++
		}
	}
	if hits == 0 {
		t.Fatalf("hit chance floor of 0.1 should still produce hits")
	}
	if hits > 400 {
		t.Fatalf("hit rate too high for clamped 0.1 chance: %d/2000", hits)
	}
}

func TestApplyRegen(t *testing.T) {
	h := testHero(1, game.ElementWater, 100, 50, 200, game.Bonuses{game.BonusHPRegen: 0.1})
	h.CurrentHP = 100
	ApplyRegen(h)
	if h.CurrentHP != 120 {
		t.Fatalf("expected 120 hp after regen, got %d", h.CurrentHP)
	}
	h.CurrentHP = 195
	ApplyRegen(h)
	if h.CurrentHP != 200 {
		t.Fatalf("regen must cap at max hp, got %d", h.CurrentHP)
	}
}

func TestSpeed_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	h := testHero(1, game.ElementFire, 100, 80, 120, game.Bonuses{game.BonusSpeed: 0.05})
	h.Rarity = game.RarityLegendary
	h.Stars = 3
	// base 100 + level (5+3)*2 + speed 5 = 121, plus 0-10 jitter.
	for i := 0; i < 100; i++ {
		s := Speed(rng, h)
		if s < 121 || s > 131 {
			t.Fatalf("speed out of range: %d", s)
		}
	}
}
