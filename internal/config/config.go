// Package config loads gameplay tuning from JSON files. Every field is
// optional: a file overrides only the constants it names and the rest keep
// their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Garsondee/Scrap-Arena/internal/game"
)

// LoadTuning reads path over the default tuning. An empty path or a missing
// file yields the defaults.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("failed to read tuning: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return game.DefaultTuning(), fmt.Errorf("failed to parse tuning %s: %w", path, err)
	}
	if err := Validate(t); err != nil {
		return game.DefaultTuning(), fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("value out of range")

// maxDetailSpan caps the ground detail cells drawn along one camera edge.
const maxDetailSpan = 64

// Validate rejects tunings the simulation cannot run with.
func Validate(t game.Tuning) error {
	s, l := t.Survival, t.Looter
	checks := []struct {
		name string
		ok   bool
	}{
		{"survival.player_radius", s.PlayerRadius > 0},
		{"survival.enemy_radius", s.EnemyRadius > 0},
		{"survival.spawn_interval", s.SpawnInterval > 0},
		{"survival.cull_distance", s.CullDistance > 0},
		{"looter.world_half_size", l.WorldHalfSize > 0},
		{"looter.camera_size", l.CameraSize > 0},
		{"looter.player_radius", l.PlayerRadius > 0},
		{"looter.enemy_radius", l.EnemyRadius > 0},
		{"looter.spawn_interval", l.SpawnInterval > 0},
		{"looter.cell_size", l.CellSize > 0},
		{"looter.cull_distance", l.CullDistance > l.SpawnDistance},
		{"looter.wall_cost", l.WallCost >= 0},
		{"looter.turret_cost", l.TurretCost >= 0},
		{"looter.melee_arc", l.MeleeArc >= 0},
		{"looter.day_length", l.DayLength > 0},
		{"looter.max_spawn_attempts", l.MaxSpawnAttempts >= 0},
		{"looter.detail_cell", l.DetailCell == 0 || l.DetailCell >= l.CameraSize/maxDetailSpan}, // 0 turns detail off
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s: %w", c.name, ErrInvalid)
		}
	}
	return nil
}

// WriteDefaults writes the default tuning as indented JSON, a starting
// point for a tuning file.
func WriteDefaults(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(game.DefaultTuning()); err != nil {
		return fmt.Errorf("failed to encode tuning: %w", err)
	}
	return nil
}
