package game

import (
	"time"

	"github.com/vovakirdan/bomb-arena/internal/core"
)

// PowerUpType is the kind of a dropped power-up.
type PowerUpType int

const (
	PowerUpFlames    PowerUpType = iota // +1 bomb range
	PowerUpBombs                        // +1 max bombs
	PowerUpSpeed                        // +0.5 speed
	PowerUpDetonator                    // Manual detonation
	PowerUpWallpass                     // Walk through blocks
	PowerUpLiveUp                       // +1 life
	PowerUpVest                         // 10s invincibility
	PowerUpSkull                        // Random curse
	powerUpTypeCount
)

// String returns the wire name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpFlames:
		return "flames"
	case PowerUpBombs:
		return "bombs"
	case PowerUpSpeed:
		return "speed"
	case PowerUpDetonator:
		return "detonator"
	case PowerUpWallpass:
		return "wallpass"
	case PowerUpLiveUp:
		return "liveup"
	case PowerUpVest:
		return "vest"
	case PowerUpSkull:
		return "skull"
	default:
		return "unknown"
	}
}

// ScoreBonus is the score awarded for collecting this power-up type.
func (t PowerUpType) ScoreBonus() int {
	switch t {
	case PowerUpFlames, PowerUpBombs, PowerUpSpeed:
		return 50
	case PowerUpDetonator, PowerUpWallpass, PowerUpVest:
		return 75
	case PowerUpLiveUp:
		return 100
	case PowerUpSkull:
		return 25
	default:
		return 0
	}
}

// PowerUp is a collectible lying on a map cell.
type PowerUp struct {
	ID   string
	X, Y int
	Type PowerUpType

	// FromDeath exempts a death drop from the explosion pass that spawned
	// it, for exactly one pass; cleared after that pass.
	FromDeath bool
}

// RollPowerUpType picks a power-up type uniformly at random.
func RollPowerUpType(rng *core.Rand) PowerUpType {
	return PowerUpType(rng.Intn(int(powerUpTypeCount)))
}

// applyPowerUp mutates the player's stats for the collected type.
// Application is idempotent per pickup: each call is a single bounded stat
// bump, not a state machine. Fields currently owned by an active curse are
// bumped in the curse's snapshot instead, so curse expiry does not erase
// the gain.
func applyPowerUp(p *Player, t PowerUpType, now time.Time, rng *core.Rand, rules Rules) {
	switch t {
	case PowerUpBombs:
		if p.Curse != nil && p.Curse.Kind == CurseMinRange {
			if p.Curse.saved.maxBombs < MaxMaxBombs {
				p.Curse.saved.maxBombs++
			}
		} else if p.MaxBombs < MaxMaxBombs {
			p.MaxBombs++
		}
	case PowerUpFlames:
		if p.Curse != nil && p.Curse.Kind == CurseMinRange {
			if p.Curse.saved.bombRange < MaxBombRange {
				p.Curse.saved.bombRange++
			}
		} else if p.BombRange < MaxBombRange {
			p.BombRange++
		}
	case PowerUpSpeed:
		if p.Curse != nil && (p.Curse.Kind == CurseSlow || p.Curse.Kind == CurseFast) {
			p.Curse.saved.speed = core.ClampF(p.Curse.saved.speed+SpeedPickupStep, SpeedFloor, SpeedPickupCap)
		} else {
			p.Speed = core.ClampF(p.Speed+SpeedPickupStep, SpeedFloor, SpeedPickupCap)
		}
	case PowerUpWallpass:
		p.Wallpass = true
	case PowerUpDetonator:
		p.Detonator = true
	case PowerUpLiveUp:
		if p.Lives < MaxLives {
			p.Lives++
		}
	case PowerUpVest:
		p.VestActive = true
		p.VestUntil = now.Add(rules.VestDuration)
		if p.InvincibleUntil.Before(p.VestUntil) {
			p.InvincibleUntil = p.VestUntil
		}
	case PowerUpSkull:
		applyCurse(p, RollCurse(rng), now, rules.CurseDuration)
	}
}
