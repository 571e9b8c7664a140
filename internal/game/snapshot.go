package game

// Wire snapshots of core entities. These are the payload shapes the
// transport layer serializes; the live structs never cross the package
// boundary.

// PlayerView is a player snapshot for broadcast.
type PlayerView struct {
	ID         string  `json:"id"`
	Pseudo     string  `json:"pseudo"`
	Color      int     `json:"color"`
	Team       string  `json:"team"`
	Ready      bool    `json:"ready"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Lives      int     `json:"lives"`
	Dead       bool    `json:"dead"`
	MaxBombs   int     `json:"maxBombs"`
	BombRange  int     `json:"bombRange"`
	Speed      float64 `json:"speed"`
	Wallpass   bool    `json:"wallpass"`
	Detonator  bool    `json:"detonator"`
	VestActive bool    `json:"vestActive"`
	Curse      string  `json:"curse,omitempty"`
	Invisible  bool    `json:"invisible"`
	Score      int     `json:"score"`
}

// View returns the player's wire snapshot.
func (p *Player) View() PlayerView {
	v := PlayerView{
		ID:         p.ID,
		Pseudo:     p.Pseudo,
		Color:      p.Color,
		Team:       p.Team.String(),
		Ready:      p.Ready,
		X:          p.X,
		Y:          p.Y,
		Lives:      p.Lives,
		Dead:       p.Dead,
		MaxBombs:   p.MaxBombs,
		BombRange:  p.BombRange,
		Speed:      p.Speed,
		Wallpass:   p.Wallpass,
		Detonator:  p.Detonator,
		VestActive: p.VestActive,
		Invisible:  p.Invisible,
		Score:      p.Score,
	}
	if p.Curse != nil {
		v.Curse = p.Curse.Kind.String()
	}
	return v
}

// BombView is a bomb snapshot for broadcast.
type BombView struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Range   int    `json:"range"`
	FuseMs  int64  `json:"fuseMs"`
}

// View returns the bomb's wire snapshot.
func (b *Bomb) View() BombView {
	// Chain-triggered bombs have their detonation forced into the past;
	// the wire fuse never goes negative.
	fuse := b.ExplodesAt.Sub(b.PlacedAt).Milliseconds()
	if fuse < 0 {
		fuse = 0
	}
	return BombView{
		ID:      b.ID,
		OwnerID: b.OwnerID,
		X:       b.X,
		Y:       b.Y,
		Range:   b.Range,
		FuseMs:  fuse,
	}
}

// PowerUpView is a power-up snapshot for broadcast.
type PowerUpView struct {
	ID   string `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

// View returns the power-up's wire snapshot.
func (pu *PowerUp) View() PowerUpView {
	return PowerUpView{ID: pu.ID, X: pu.X, Y: pu.Y, Type: pu.Type.String()}
}

// MapView is the grid snapshot for broadcast. Clients normally regenerate
// the grid from the seed and options; the full cell array is included for
// mid-game updates after block destruction.
type MapView struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   string `json:"seed"`
	Cells  []int  `json:"cells"`
}

// View returns the grid's wire snapshot.
func (g *Grid) View() MapView {
	cells := make([]int, len(g.Cells))
	for i, c := range g.Cells {
		cells[i] = int(c)
	}
	return MapView{Width: g.W, Height: g.H, Seed: g.Seed, Cells: cells}
}
