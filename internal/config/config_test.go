package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/M1tsumi/arc-duels/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "duel_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	lc, err := Load(Env{ConfigPath: filepath.Join(t.TempDir(), "absent.json"), DataDir: "data", Database: "data/duels.db"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lc.Combat.MaxTurns != 15 || lc.Combat.BaseAccuracy != 0.95 {
		t.Fatalf("defaults not applied: %+v", lc.Combat)
	}
	if lc.ServerAddress != ":8080" {
		t.Fatalf("default address = %s", lc.ServerAddress)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"combat": {"max_turns": 20, "critical_multiplier": 2.0},
		"elements": [{"element": "fire", "attack": 111, "defense": 82, "health": 125}],
		"server": {"address": ":9090"}
	}`)

	lc, err := Load(Env{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lc.Combat.MaxTurns != 20 || lc.Combat.CriticalMultiplier != 2.0 {
		t.Fatalf("combat overrides not applied: %+v", lc.Combat)
	}
	// untouched fields keep their defaults
	if lc.Combat.DefenseReduction != 0.6 {
		t.Fatalf("defense reduction = %v, want default 0.6", lc.Combat.DefenseReduction)
	}
	if lc.BaseStats[game.ElementFire].Attack != 111 {
		t.Fatalf("fire attack = %d, want 111", lc.BaseStats[game.ElementFire].Attack)
	}
	if lc.BaseStats[game.ElementWater].Attack != 85 {
		t.Fatalf("water stats should keep defaults, got %+v", lc.BaseStats[game.ElementWater])
	}
	if lc.ServerAddress != ":9090" {
		t.Fatalf("address = %s, want :9090", lc.ServerAddress)
	}
}

func TestLoad_RejectsInvalidElement(t *testing.T) {
	path := writeConfig(t, `{"elements": [{"element": "plasma", "attack": 1, "defense": 1, "health": 1}]}`)
	if _, err := Load(Env{ConfigPath: path}); err == nil {
		t.Fatalf("expected an error for an unknown element")
	}
}

func TestLoad_RejectsBadAccuracy(t *testing.T) {
	path := writeConfig(t, `{"combat": {"base_accuracy": 1.5}}`)
	if _, err := Load(Env{ConfigPath: path}); err == nil {
		t.Fatalf("expected an error for accuracy above 1")
	}
}

func TestLoad_EnvAddressWins(t *testing.T) {
	path := writeConfig(t, `{"server": {"address": ":9090"}}`)
	lc, err := Load(Env{ConfigPath: path, ListenAddr: ":7070"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lc.ServerAddress != ":7070" {
		t.Fatalf("address = %s, environment should win", lc.ServerAddress)
	}
}
