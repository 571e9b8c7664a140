// Package config provides YAML-based server and gameplay configuration
// for the arena server.
package config

import (
	"time"

	"github.com/vovakirdan/bomb-arena/internal/arena"
	"github.com/vovakirdan/bomb-arena/internal/game"
)

// ArenaConfig is the full server configuration.
type ArenaConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Map     MapConfig     `yaml:"map"`
	Rules   RulesConfig   `yaml:"rules"`
	Timings TimingsConfig `yaml:"timings"`
}

// ServerConfig defines the network and persistence settings.
type ServerConfig struct {
	Addr   string `yaml:"addr"`    // Listen address, e.g. ":8080"
	DBPath string `yaml:"db_path"` // SQLite file; empty disables persistence
}

// MapConfig defines arena dimensions and generation parameters.
type MapConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	DestructibleProb float64 `yaml:"destructible_prob"`
	BorderThickness  int     `yaml:"border_thickness"`
	PatternSpacing   int     `yaml:"pattern_spacing"`
	PatternOffset    int     `yaml:"pattern_offset"`
}

// RulesConfig defines the gameplay constants. Durations are milliseconds.
type RulesConfig struct {
	BombFuseMs         int     `yaml:"bomb_fuse_ms"`
	InvincibilityMs    int     `yaml:"invincibility_ms"`
	VestDurationMs     int     `yaml:"vest_duration_ms"`
	CurseDurationMs    int     `yaml:"curse_duration_ms"`
	AutoBombIntervalMs int     `yaml:"auto_bomb_interval_ms"`
	PowerUpChance      float64 `yaml:"power_up_chance"`
	BlockScore         int     `yaml:"block_score"`
	HitboxSize         float64 `yaml:"hitbox_size"`
}

// TimingsConfig defines room lifecycle cadences.
type TimingsConfig struct {
	WaitingSeconds   int `yaml:"waiting_seconds"`
	CountdownSeconds int `yaml:"countdown_seconds"`
	GameSeconds      int `yaml:"game_seconds"`
	TickRate         int `yaml:"tick_rate"`
	SweepIntervalMs  int `yaml:"sweep_interval_ms"`
}

// RoomConfig converts the loaded configuration into the arena's room
// settings, filling zero values from the defaults.
func (c ArenaConfig) RoomConfig() arena.RoomConfig {
	rc := arena.DefaultRoomConfig()

	if c.Map.Width > 0 {
		rc.MapWidth = c.Map.Width
	}
	if c.Map.Height > 0 {
		rc.MapHeight = c.Map.Height
	}
	if c.Map.DestructibleProb > 0 {
		rc.MapOptions.DestructibleProb = c.Map.DestructibleProb
	}
	if c.Map.BorderThickness > 0 {
		rc.MapOptions.BorderThickness = c.Map.BorderThickness
	}
	if c.Map.PatternSpacing > 0 {
		rc.MapOptions.PatternSpacing = c.Map.PatternSpacing
	}
	if c.Map.PatternOffset > 0 {
		rc.MapOptions.PatternOffset = c.Map.PatternOffset
	}

	rc.Rules = rulesFromConfig(c.Rules)
	rc.Timings = timingsFromConfig(c.Timings)
	return rc
}

func rulesFromConfig(rc RulesConfig) game.Rules {
	r := game.DefaultRules()
	if rc.BombFuseMs > 0 {
		r.BombFuse = time.Duration(rc.BombFuseMs) * time.Millisecond
	}
	if rc.InvincibilityMs > 0 {
		r.InvincibilityWindow = time.Duration(rc.InvincibilityMs) * time.Millisecond
	}
	if rc.VestDurationMs > 0 {
		r.VestDuration = time.Duration(rc.VestDurationMs) * time.Millisecond
	}
	if rc.CurseDurationMs > 0 {
		r.CurseDuration = time.Duration(rc.CurseDurationMs) * time.Millisecond
	}
	if rc.AutoBombIntervalMs > 0 {
		r.AutoBombInterval = time.Duration(rc.AutoBombIntervalMs) * time.Millisecond
	}
	if rc.PowerUpChance > 0 {
		r.PowerUpChance = rc.PowerUpChance
	}
	if rc.BlockScore > 0 {
		r.BlockScore = rc.BlockScore
	}
	if rc.HitboxSize > 0 {
		r.HitboxSize = rc.HitboxSize
	}
	return r
}

func timingsFromConfig(tc TimingsConfig) arena.Timings {
	t := arena.DefaultTimings()
	if tc.WaitingSeconds > 0 {
		t.WaitingSeconds = tc.WaitingSeconds
	}
	if tc.CountdownSeconds > 0 {
		t.CountdownSeconds = tc.CountdownSeconds
	}
	if tc.GameSeconds > 0 {
		t.GameDuration = time.Duration(tc.GameSeconds) * time.Second
	}
	if tc.TickRate > 0 {
		t.TickRate = tc.TickRate
	}
	if tc.SweepIntervalMs > 0 {
		t.SweepInterval = time.Duration(tc.SweepIntervalMs) * time.Millisecond
	}
	return t
}
