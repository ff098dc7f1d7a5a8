package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Orloaft/gridder-sub002/internal/items"
)

const validConfig = `{
  "server": {"address": ":9090"},
  "board": {"width": 8, "height": 5},
  "unit_list": [
    {
      "id": "knight", "name": "Knight", "role": "hero",
      "hit_points": 60, "damage": 10, "speed": 5, "defense": 4,
      "crit_chance": 0.1, "crit_damage": 2.0, "range": 1,
      "items": ["vampiric_blade"],
      "abilities": [
        {
          "id": "shield_wall", "name": "Shield Wall", "type": "defensive", "cooldown": 3,
          "effects": [{"kind": "shield", "selector": "self", "amount": 5, "status_duration": 2}]
        }
      ]
    },
    {"id": "goblin", "role": "enemy", "hit_points": 15, "damage": 3, "speed": 4, "range": 1}
  ],
  "waves": [
    {"enemies": ["goblin", "goblin"], "formation": [{"x": 7, "y": 0}, {"x": 7, "y": 1}]}
  ]
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "battlesim_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig), items.DefaultCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected address :9090, got %s", cfg.ServerAddress)
	}
	if cfg.Board.Width != 8 || cfg.Board.Height != 5 {
		t.Fatalf("unexpected board: %+v", cfg.Board)
	}
	if len(cfg.Heroes) != 1 || len(cfg.Enemies) != 1 {
		t.Fatalf("expected 1 hero and 1 enemy template, got %d/%d", len(cfg.Heroes), len(cfg.Enemies))
	}
	if len(cfg.Waves) != 1 || len(cfg.Waves[0].Templates) != 2 {
		t.Fatalf("expected one wave of two goblins, got %+v", cfg.Waves)
	}
	if _, ok := cfg.HeroByID("knight"); !ok {
		t.Fatalf("HeroByID should find the knight")
	}
}

func TestLoadConfigRejectsUnknownItem(t *testing.T) {
	body := strings.Replace(validConfig, `"vampiric_blade"`, `"sword_of_nonsense"`, 1)
	if _, err := LoadConfig(writeConfig(t, body), items.DefaultCatalog()); err == nil || !strings.Contains(err.Error(), "unknown item") {
		t.Fatalf("expected unknown item error, got %v", err)
	}
}

func TestLoadConfigRejectsDuplicateIDs(t *testing.T) {
	body := strings.Replace(validConfig, `"id": "goblin"`, `"id": "knight"`, 1)
	if _, err := LoadConfig(writeConfig(t, body), items.DefaultCatalog()); err == nil || !strings.Contains(err.Error(), "duplicate unit id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadConfigRejectsOffBoardFormation(t *testing.T) {
	body := strings.Replace(validConfig, `{"x": 7, "y": 1}`, `{"x": 12, "y": 1}`, 1)
	if _, err := LoadConfig(writeConfig(t, body), items.DefaultCatalog()); err == nil || !strings.Contains(err.Error(), "off the board") {
		t.Fatalf("expected off-board error, got %v", err)
	}
}

func TestLoadConfigRejectsUnknownWaveEnemy(t *testing.T) {
	body := strings.Replace(validConfig, `"enemies": ["goblin", "goblin"]`, `"enemies": ["goblin", "dragon"]`, 1)
	if _, err := LoadConfig(writeConfig(t, body), items.DefaultCatalog()); err == nil || !strings.Contains(err.Error(), "unknown enemy") {
		t.Fatalf("expected unknown enemy error, got %v", err)
	}
}

func TestLoadConfigRequiresCritDamage(t *testing.T) {
	body := strings.Replace(validConfig, `"crit_damage": 2.0`, `"crit_damage": 0.5`, 1)
	if _, err := LoadConfig(writeConfig(t, body), items.DefaultCatalog()); err == nil || !strings.Contains(err.Error(), "crit_damage") {
		t.Fatalf("expected crit_damage validation error, got %v", err)
	}
}
