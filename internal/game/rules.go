package game

import "time"

// Rules holds the tunable gameplay constants for one game. Loaded from
// config at room creation; defaults match the classic ruleset.
type Rules struct {
	BombFuse            time.Duration // Placement to detonation
	InvincibilityWindow time.Duration // Granted after taking a hit
	VestDuration        time.Duration
	CurseDuration       time.Duration
	AutoBombInterval    time.Duration // Diarrhea forced-placement throttle
	PowerUpChance       float64       // Per destroyed block
	BlockScore          int           // Awarded to the bomb owner per block
	ChainSweepCap       int           // Max chain iterations per sweep
	HitboxSize          float64       // Player hitbox, fraction of a cell
}

// DefaultRules returns the classic ruleset.
func DefaultRules() Rules {
	return Rules{
		BombFuse:            3000 * time.Millisecond,
		InvincibilityWindow: 2000 * time.Millisecond,
		VestDuration:        10 * time.Second,
		CurseDuration:       10 * time.Second,
		AutoBombInterval:    500 * time.Millisecond,
		PowerUpChance:       0.25,
		BlockScore:          100,
		ChainSweepCap:       50,
		HitboxSize:          DefaultHitboxSize,
	}
}
