package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default server configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Server: ServerConfig{
			Addr:   ":8080",
			DBPath: "bombarena.db",
		},
		Map: MapConfig{
			Width:            15,
			Height:           13,
			DestructibleProb: 0.75,
			BorderThickness:  1,
			PatternSpacing:   2,
			PatternOffset:    1,
		},
		Rules: RulesConfig{
			BombFuseMs:         3000,
			InvincibilityMs:    2000,
			VestDurationMs:     10000,
			CurseDurationMs:    10000,
			AutoBombIntervalMs: 500,
			PowerUpChance:      0.25,
			BlockScore:         100,
			HitboxSize:         0.6,
		},
		Timings: TimingsConfig{
			WaitingSeconds:   20,
			CountdownSeconds: 10,
			GameSeconds:      300,
			TickRate:         60,
			SweepIntervalMs:  100,
		},
	}
}
