// Package engine implements combat resolution: the single-attack damage
// pipeline, the element advantage table, health regeneration and the speed
// roll used for turn order. Functions here are pure over hero snapshots and
// the caller-supplied random source; duel orchestration lives elsewhere.
package engine

import (
	"math/rand"

	"github.com/M1tsumi/arc-duels/internal/game"
	"github.com/M1tsumi/arc-duels/internal/hero"
)

// Config holds the tunable combat constants. Zero values are never valid;
// use DefaultConfig and override from the server configuration.
type Config struct {
	BaseAccuracy       float64
	MinDamageRatio     float64
	CriticalMultiplier float64
	DefenseReduction   float64
	MaxTurns           int
}

// DefaultConfig returns the shipped combat balance.
func DefaultConfig() Config {
	return Config{
		BaseAccuracy:       0.95,
		MinDamageRatio:     0.1,
		CriticalMultiplier: 1.5,
		DefenseReduction:   0.6,
		MaxTurns:           15,
	}
}

// minHitChance is the floor below which evasion cannot push the hit roll.
const minHitChance = 0.1

// Effect tags attached to battle actions. The dispatch layer renders them
// verbatim.
const (
	EffectCritical       = "CRITICAL HIT!"
	EffectSuperEffective = "SUPER EFFECTIVE!"
	EffectNotEffective   = "Not very effective..."
)

// elementAdvantages maps attacker element -> defender element -> damage
// multiplier. Each element is strong against one element (1.15x) and weak
// against the reverse matchup (0.9x): fire>air, water>fire, earth>water,
// air>earth.
var elementAdvantages = map[game.Element]map[game.Element]float64{
	game.ElementFire:  {game.ElementAir: 1.15, game.ElementWater: 0.9},
	game.ElementWater: {game.ElementFire: 1.15, game.ElementEarth: 0.9},
	game.ElementEarth: {game.ElementWater: 1.15, game.ElementAir: 0.9},
	game.ElementAir:   {game.ElementEarth: 1.15, game.ElementFire: 0.9},
}

// ElementMultiplier returns the advantage multiplier for an attack of
// element atk against element def (1.0 for neutral matchups).
func ElementMultiplier(atk, def game.Element) float64 {
	if m, ok := elementAdvantages[atk][def]; ok {
		return m
	}
	return 1.0
}

// ResolveAttack computes one attack of attacker against defender and applies
// the damage to the defender's current health (never below 0). The accuracy
// and critical rolls are independent; a miss skips the damage pipeline
// entirely. Damage can approach but never fall below MinDamageRatio of the
// raw attack before multipliers, and the final amount is at least 1.
func ResolveAttack(rng *rand.Rand, cfg Config, attacker, defender *game.DuelHero) game.BattleAction {
	hitChance := cfg.BaseAccuracy - defender.SkillBonuses.Get(game.BonusEvasion)
	if hitChance < minHitChance {
		hitChance = minHitChance
	}

	action := game.BattleAction{
		AttackerID: attacker.UserID,
		DefenderID: defender.UserID,
		ActionType: game.ActionAttack,
		Effects:    []string{},
	}

	if rng.Float64() > hitChance {
		action.IsMiss = true
		return action
	}

	damage := float64(attacker.Attack) - float64(defender.Defense)*cfg.DefenseReduction
	if floor := float64(attacker.Attack) * cfg.MinDamageRatio; damage < floor {
		damage = floor
	}

	mult := ElementMultiplier(attacker.Element, defender.Element)
	damage *= mult

	if rng.Float64() < attacker.SkillBonuses.Get(game.BonusCrit) {
		action.IsCritical = true
		damage *= cfg.CriticalMultiplier
		action.Effects = append(action.Effects, EffectCritical)
	}

	damage *= 1 - defender.SkillBonuses.Get(game.BonusDamageReduction)

	action.Damage = int(damage)
	if action.Damage < 1 {
		action.Damage = 1
	}

	if mult > 1.0 {
		action.Effects = append(action.Effects, EffectSuperEffective)
	} else if mult < 1.0 {
		action.Effects = append(action.Effects, EffectNotEffective)
	}

	defender.CurrentHP -= action.Damage
	if defender.CurrentHP < 0 {
		defender.CurrentHP = 0
	}
	return action
}

// ApplyRegen restores health from the hero's regeneration bonus, capped at
// maximum health.
func ApplyRegen(h *game.DuelHero) {
	regen := h.SkillBonuses.Get(game.BonusHPRegen)
	if regen <= 0 {
		return
	}
	h.CurrentHP += int(float64(h.MaxHP) * regen)
	if h.CurrentHP > h.MaxHP {
		h.CurrentHP = h.MaxHP
	}
}

// Speed rolls a hero's initiative for turn order: a flat base, twice the
// effective level, the speed bonus as whole points and a 0-10 jitter.
func Speed(rng *rand.Rand, h *game.DuelHero) int {
	base := 100
	levelBonus := hero.EffectiveLevel(h.Rarity, h.Stars) * 2
	speedBonus := int(h.SkillBonuses.Get(game.BonusSpeed) * 100)
	return base + levelBonus + speedBonus + rng.Intn(11)
}
