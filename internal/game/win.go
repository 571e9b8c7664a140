package game

// WinResult is the outcome of a win-condition check.
type WinResult struct {
	GameOver     bool
	WinnerID     string
	WinnerPseudo string
	WinningTeam  Team
}

// CheckWin computes game-over/draw/winner from the player roster. Pure
// function, no side effects; returns a zero result while fewer than two
// players are registered.
//
// Team rules apply when at least two players carry a non-neutral team:
// the game ends when everyone is dead (draw), when exactly one team has
// survivors and no team-less player does (that team wins), when no team
// survives but exactly one team-less player does (that player wins), or
// when a single player is left alive overall (that player and their team,
// if any, win). In FFA the game ends when at most one player remains
// alive; no survivor means a draw.
func CheckWin(players []*Player) WinResult {
	if len(players) < 2 {
		return WinResult{}
	}

	teamed := 0
	for _, p := range players {
		if p.Team != TeamNone {
			teamed++
		}
	}

	var alive []*Player
	for _, p := range players {
		if p.Alive() {
			alive = append(alive, p)
		}
	}

	if teamed < 2 {
		// FFA.
		if len(alive) > 1 {
			return WinResult{}
		}
		res := WinResult{GameOver: true}
		if len(alive) == 1 {
			res.WinnerID = alive[0].ID
			res.WinnerPseudo = alive[0].Pseudo
		}
		return res
	}

	aliveTeams := make(map[Team]bool)
	var aliveTeamless []*Player
	for _, p := range alive {
		if p.Team == TeamNone {
			aliveTeamless = append(aliveTeamless, p)
		} else {
			aliveTeams[p.Team] = true
		}
	}

	switch {
	case len(alive) == 0:
		return WinResult{GameOver: true}
	case len(alive) == 1:
		p := alive[0]
		return WinResult{GameOver: true, WinnerID: p.ID, WinnerPseudo: p.Pseudo, WinningTeam: p.Team}
	case len(aliveTeams) == 1 && len(aliveTeamless) == 0:
		var team Team
		for t := range aliveTeams {
			team = t
		}
		return WinResult{GameOver: true, WinningTeam: team}
	case len(aliveTeams) == 0 && len(aliveTeamless) == 1:
		p := aliveTeamless[0]
		return WinResult{GameOver: true, WinnerID: p.ID, WinnerPseudo: p.Pseudo}
	}

	return WinResult{}
}
