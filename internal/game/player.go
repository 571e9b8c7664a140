package game

import "time"

// GameMode selects the win-condition ruleset for a room.
type GameMode int

const (
	ModeFFA  GameMode = iota // Every player for themself
	ModeTeam                 // 2v2, Alpha vs Beta
)

// String returns the wire name of the mode.
func (m GameMode) String() string {
	if m == ModeTeam {
		return "team"
	}
	return "ffa"
}

// ParseGameMode maps a wire name to a mode. Unknown names fall back to FFA.
func ParseGameMode(s string) GameMode {
	if s == "team" {
		return ModeTeam
	}
	return ModeFFA
}

// Team is a player's team assignment in team mode.
type Team int

const (
	TeamNone Team = iota
	TeamAlpha
	TeamBeta
)

// String returns the wire name of the team.
func (t Team) String() string {
	switch t {
	case TeamAlpha:
		return "alpha"
	case TeamBeta:
		return "beta"
	default:
		return "none"
	}
}

// Player stat defaults and caps.
const (
	DefaultLives     = 3
	DefaultMaxBombs  = 1
	DefaultBombRange = 2
	DefaultSpeed     = 3.0 // Cells per second

	MaxLives        = 5
	MaxMaxBombs     = 8
	MaxBombRange    = 10
	SpeedPickupCap  = 8.0
	SpeedFloor      = 1.5 // Skull "slow" pins speed here
	SpeedCeiling    = 10.0
	SpeedPickupStep = 0.5

	// NumColors is the size of the color palette players pick from.
	NumColors = 6
)

// Input is a player's currently held directional input.
type Input struct {
	Up, Down, Left, Right bool
}

// Active returns true if any direction is held.
func (in Input) Active() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// Player is the full server-side record for one player in a room.
// Position is in grid coordinates and fractional during movement.
type Player struct {
	ID     string
	Pseudo string
	Color  int
	Team   Team
	Ready  bool

	X, Y float64
	Dead bool

	Lives           int
	InvincibleUntil time.Time

	MaxBombs  int
	BombRange int
	Speed     float64
	Wallpass  bool
	Detonator bool

	VestActive bool
	VestUntil  time.Time

	Curse     *Curse // nil when not cursed
	Invisible bool

	Score int
	Input Input
}

// ResetStats restores every stat field to its game-start default.
// Called at game start and whenever the room returns to lobby; team and
// color assignments survive, everything earned in-game does not.
func (p *Player) ResetStats() {
	p.Dead = false
	p.Lives = DefaultLives
	p.InvincibleUntil = time.Time{}
	p.MaxBombs = DefaultMaxBombs
	p.BombRange = DefaultBombRange
	p.Speed = DefaultSpeed
	p.Wallpass = false
	p.Detonator = false
	p.VestActive = false
	p.VestUntil = time.Time{}
	p.Curse = nil
	p.Invisible = false
	p.Score = 0
	p.Input = Input{}
}

// Alive returns true if the player is in the game and not dead.
func (p *Player) Alive() bool {
	return !p.Dead
}

// Invincible returns true while a hit window or vest protects the player.
func (p *Player) Invincible(now time.Time) bool {
	return now.Before(p.InvincibleUntil)
}

// CanPlaceBombs returns false while a constipation curse is active.
func (p *Player) CanPlaceBombs() bool {
	return p.Curse == nil || p.Curse.Kind != CurseConstipation
}

// Cell returns the player's position rounded to the nearest grid cell.
func (p *Player) Cell() (int, int) {
	return int(p.X + 0.5), int(p.Y + 0.5)
}
