package game

// Event is a state-change event produced by the simulation, in the order
// the changes happened. The room broadcasts events to its sessions; the
// gateway serializes them. Marker-method pattern keeps the set closed.
type Event interface {
	event()
}

// PlayerPositionEvent reports a player's position after a movement tick.
type PlayerPositionEvent struct {
	Player PlayerView `json:"player"`
}

func (PlayerPositionEvent) event() {}

// BombPlacedEvent reports a successful bomb placement.
type BombPlacedEvent struct {
	Bomb BombView `json:"bomb"`
}

func (BombPlacedEvent) event() {}

// BombExplodeEvent reports one bomb's explosion, including every cell the
// blast covered and the consequences resolved in that pass. Chained bombs
// produce their own events in the order the sweep resolved them.
type BombExplodeEvent struct {
	Bomb            BombView `json:"bomb"`
	Cells           [][2]int `json:"cells"`
	DestroyedBlocks [][2]int `json:"destroyedBlocks"`
	HitPlayers      []string `json:"hitPlayers"`
	KilledPlayers   []string `json:"killedPlayers"`
}

func (BombExplodeEvent) event() {}

// MapUpdateEvent carries the full grid after destructible terrain changed.
type MapUpdateEvent struct {
	Map MapView `json:"map"`
}

func (MapUpdateEvent) event() {}

// PowerUpSpawnedEvent reports a new power-up on the map.
type PowerUpSpawnedEvent struct {
	PowerUp PowerUpView `json:"powerUp"`
}

func (PowerUpSpawnedEvent) event() {}

// PowerUpCollectedEvent reports a pickup, with the collector's refreshed
// stat snapshot.
type PowerUpCollectedEvent struct {
	PowerUp PowerUpView `json:"powerUp"`
	Player  PlayerView  `json:"player"`
}

func (PowerUpCollectedEvent) event() {}

// PowerUpDestroyedEvent reports a power-up consumed by an explosion.
type PowerUpDestroyedEvent struct {
	PowerUp PowerUpView `json:"powerUp"`
}

func (PowerUpDestroyedEvent) event() {}

// PlayerHitEvent reports a player losing a life.
type PlayerHitEvent struct {
	PlayerID string `json:"playerId"`
	Lives    int    `json:"lives"`
}

func (PlayerHitEvent) event() {}

// PlayerDeathEvent reports a player running out of lives.
type PlayerDeathEvent struct {
	PlayerID string `json:"playerId"`
}

func (PlayerDeathEvent) event() {}

// VestExpiredEvent reports a protective vest running out.
type VestExpiredEvent struct {
	PlayerID string `json:"playerId"`
}

func (VestExpiredEvent) event() {}

// SkullExpiredEvent reports a curse running out.
type SkullExpiredEvent struct {
	PlayerID string `json:"playerId"`
}

func (SkullExpiredEvent) event() {}

// SkullContagionEvent reports a curse jumping from one player to another.
// The curse is re-rolled for the recipient; the source is cured.
type SkullContagionEvent struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Curse  string `json:"curse"`
}

func (SkullContagionEvent) event() {}

// ScoreUpdateEvent reports a player's new score.
type ScoreUpdateEvent struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

func (ScoreUpdateEvent) event() {}

// GameWinEvent reports the end of the game. Broadcast at most once per
// game. A draw has neither winner nor team.
type GameWinEvent struct {
	WinnerID     string `json:"winnerId,omitempty"`
	WinnerPseudo string `json:"winnerPseudo,omitempty"`
	WinningTeam  string `json:"winningTeam,omitempty"`
	Draw         bool   `json:"draw"`
}

func (GameWinEvent) event() {}
