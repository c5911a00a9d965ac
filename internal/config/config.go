// Package config loads the duel server configuration: the JSON balance file
// plus environment overrides for deployment concerns.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/M1tsumi/arc-duels/internal/engine"
	"github.com/M1tsumi/arc-duels/internal/game"
	"github.com/M1tsumi/arc-duels/internal/hero"

	"github.com/caarlos0/env/v11"
)

type elementEntry struct {
	Element string `json:"element"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Health  int    `json:"health"`
}

type rawConfig struct {
	Combat *struct {
		BaseAccuracy       float64 `json:"base_accuracy"`
		MinDamageRatio     float64 `json:"min_damage_ratio"`
		CriticalMultiplier float64 `json:"critical_multiplier"`
		DefenseReduction   float64 `json:"defense_reduction"`
		MaxTurns           int     `json:"max_turns"`
	} `json:"combat"`
	Elements []elementEntry `json:"elements"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// Env holds deployment settings read from the environment. Environment
// values win over the config file.
type Env struct {
	ConfigPath string `env:"ARC_CONFIG" envDefault:"duel_config.json"`
	DataDir    string `env:"ARC_DATA_DIR" envDefault:"data"`
	Database   string `env:"ARC_DB" envDefault:"data/duels.db"`
	ListenAddr string `env:"ARC_ADDR"`
	LogLevel   string `env:"ARC_LOG_LEVEL" envDefault:"info"`
}

// LoadedConfig is the fully resolved server configuration.
type LoadedConfig struct {
	Combat        engine.Config
	BaseStats     map[game.Element]hero.BaseStats
	ServerAddress string
	DataDir       string
	Database      string
	LogLevel      string
}

// LoadEnv parses the environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Load reads the balance file named by the environment and folds in the
// environment overrides. A missing file is not an error: the shipped
// defaults apply.
func Load(e Env) (*LoadedConfig, error) {
	lc := &LoadedConfig{
		Combat:        engine.DefaultConfig(),
		BaseStats:     hero.DefaultBaseStats,
		ServerAddress: ":8080",
		DataDir:       e.DataDir,
		Database:      e.Database,
		LogLevel:      e.LogLevel,
	}

	b, err := os.ReadFile(e.ConfigPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", e.ConfigPath, err)
	default:
		var rc rawConfig
		if err := json.Unmarshal(b, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", e.ConfigPath, err)
		}
		if err := lc.apply(e.ConfigPath, rc); err != nil {
			return nil, err
		}
	}

	if e.ListenAddr != "" {
		lc.ServerAddress = e.ListenAddr
	}
	return lc, nil
}

func (lc *LoadedConfig) apply(path string, rc rawConfig) error {
	if c := rc.Combat; c != nil {
		if c.BaseAccuracy > 0 {
			if c.BaseAccuracy > 1 {
				return fmt.Errorf("config file %s: base_accuracy must be at most 1", path)
			}
			lc.Combat.BaseAccuracy = c.BaseAccuracy
		}
		if c.MinDamageRatio > 0 {
			lc.Combat.MinDamageRatio = c.MinDamageRatio
		}
		if c.CriticalMultiplier > 0 {
			lc.Combat.CriticalMultiplier = c.CriticalMultiplier
		}
		if c.DefenseReduction > 0 {
			lc.Combat.DefenseReduction = c.DefenseReduction
		}
		if c.MaxTurns > 0 {
			lc.Combat.MaxTurns = c.MaxTurns
		}
	}

	if len(rc.Elements) > 0 {
		stats := make(map[game.Element]hero.BaseStats, len(rc.Elements))
		for k, v := range hero.DefaultBaseStats {
			stats[k] = v
		}
		for _, entry := range rc.Elements {
			e := game.Element(entry.Element)
			if !e.Valid() {
				return fmt.Errorf("config file %s: unknown element '%s'", path, entry.Element)
			}
			if entry.Attack <= 0 || entry.Defense <= 0 || entry.Health <= 0 {
				return fmt.Errorf("config file %s: element '%s' stats must be positive", path, entry.Element)
			}
			stats[e] = hero.BaseStats{Attack: entry.Attack, Defense: entry.Defense, Health: entry.Health}
		}
		lc.BaseStats = stats
	}

	if rc.Server != nil && rc.Server.Address != "" {
		lc.ServerAddress = rc.Server.Address
	}
	return nil
}
