package arena

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomb-arena/internal/core"
	"github.com/vovakirdan/bomb-arena/internal/game"
)

// joinRoomMsg is the coordinator's internal join delivery: the resolved
// session handle travels with the request.
type joinRoomMsg struct {
	session SessionHandle
	pseudo  string
}

func (joinRoomMsg) message() {}

type queuedJoiner struct {
	session SessionHandle
	pseudo  string
}

// Room is one isolated game/lobby instance. It is an actor: a single
// goroutine (Run) owns all mutable state, and every external touch —
// player input, roster changes, the fixed-rate simulation ticks — arrives
// through its message channel or its own timers. Nothing else may mutate
// a room.
type Room struct {
	code   string
	cfg    RoomConfig
	logger *log.Logger
	store  ResultStore // Optional

	mode  game.GameMode
	owner SessionID

	players  []*game.Player // Roster, join order
	sessions map[SessionID]SessionHandle
	queue    []queuedJoiner
	chat     []ChatMessage

	inGame      bool
	state       *game.State
	gameStarted time.Time

	lobby LobbyTimer

	msgs     chan Message
	done     chan struct{}
	doneOnce sync.Once

	moveTicker  *time.Ticker
	sweepTicker *time.Ticker
	gameTimer   *time.Timer

	everJoined bool
	onEmpty    func(code string)
}

// NewRoom creates a room. onEmpty is called (from the room goroutine)
// when the last member leaves and the room tears itself down.
func NewRoom(code string, cfg RoomConfig, logger *log.Logger, store ResultStore, onEmpty func(code string)) *Room {
	return &Room{
		code:     code,
		cfg:      cfg,
		logger:   logger.With("room", code),
		store:    store,
		sessions: make(map[SessionID]SessionHandle),
		msgs:     make(chan Message, 256),
		done:     make(chan struct{}),
		onEmpty:  onEmpty,
	}
}

// Code returns the room's join code.
func (r *Room) Code() string {
	return r.code
}

// Deliver hands a message to the room without blocking. A full queue
// drops the message; inputs are frequent and the next one supersedes.
func (r *Room) Deliver(m Message) {
	select {
	case r.msgs <- m:
	case <-r.done:
	default:
		r.logger.Warn("room message queue full, dropping", "type", fmt.Sprintf("%T", m))
	}
}

// Stop shuts the room down. Safe to call multiple times.
func (r *Room) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// Run is the room's actor loop. Timer channels are nil while their timer
// is not armed, so the select simply never fires for them.
func (r *Room) Run() {
	lobbyTick := time.NewTicker(time.Second)
	defer lobbyTick.Stop()
	defer r.stopGameTimers()

	for {
		var moveC, sweepC, gameC <-chan time.Time
		if r.moveTicker != nil {
			moveC = r.moveTicker.C
		}
		if r.sweepTicker != nil {
			sweepC = r.sweepTicker.C
		}
		if r.gameTimer != nil {
			gameC = r.gameTimer.C
		}

		select {
		case msg := <-r.msgs:
			r.handleMessage(msg)
		case <-lobbyTick.C:
			r.tickLobby()
		case <-moveC:
			r.movementTick()
		case <-sweepC:
			r.sweepTick()
		case <-gameC:
			r.gameTimer = nil
			r.gameTimedOut()
		case <-r.done:
			return
		}

		if r.everJoined && len(r.players) == 0 && len(r.queue) == 0 {
			r.logger.Info("room empty, tearing down")
			if r.onEmpty != nil {
				r.onEmpty(r.code)
			}
			return
		}
	}
}

func (r *Room) handleMessage(msg Message) {
	switch m := msg.(type) {
	case joinRoomMsg:
		r.addMember(m.session, m.pseudo)
	case LeaveMsg:
		r.removeMember(m.SessionID)
	case ReadyMsg:
		r.toggleReady(m.SessionID)
	case ColorMsg:
		r.changeColor(m.SessionID, m.Color)
	case TeamMsg:
		r.changeTeam(m.SessionID, m.Team)
	case GameModeMsg:
		r.changeMode(m.SessionID, m.Mode)
	case MoveMsg:
		r.applyMove(m)
	case ActionMsg:
		r.applyAction(m)
	case ChatMsg:
		r.postChat(m)
	}
}

// ----- membership -----

func (r *Room) addMember(session SessionHandle, pseudo string) {
	id := session.ID()
	r.everJoined = true

	if _, exists := r.playerByID(id); exists {
		session.Send(ErrorEvent{Message: "already in this room"})
		return
	}

	// Full rooms and running games queue the joiner FIFO.
	if len(r.players) >= RoomCapacity || r.inGame {
		r.queue = append(r.queue, queuedJoiner{session: session, pseudo: pseudo})
		r.sessions[id] = session
		session.Send(RoomJoinedEvent{Code: r.code, PlayerID: string(id), Queued: true})
		r.broadcastLobby()
		return
	}

	p := &game.Player{
		ID:     string(id),
		Pseudo: pseudo,
		Color:  r.freeColor(),
	}
	p.ResetStats()
	r.players = append(r.players, p)
	r.sessions[id] = session
	if r.owner == "" {
		r.owner = id
	}

	session.Send(RoomJoinedEvent{Code: r.code, PlayerID: string(id)})
	r.systemChat(fmt.Sprintf("%s joined the room", pseudo))
	r.broadcastLobby()
	r.reevaluateLobby()
}

func (r *Room) removeMember(id SessionID) {
	delete(r.sessions, id)

	// Queued joiner leaving.
	for i, q := range r.queue {
		if q.session.ID() == id {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			r.broadcastLobby()
			return
		}
	}

	p, ok := r.playerByID(id)
	if !ok {
		return
	}
	for i, rp := range r.players {
		if rp.ID == string(id) {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	if r.inGame && r.state != nil {
		r.state.RemovePlayer(string(id))
	}

	// Ownership passes to the next roster player.
	if r.owner == id && len(r.players) > 0 {
		r.owner = SessionID(r.players[0].ID)
	}

	r.systemChat(fmt.Sprintf("%s left the room", p.Pseudo))

	if !r.inGame {
		r.promoteQueue()
		r.reevaluateLobby()
	}
	r.broadcastLobby()
}

// promoteQueue moves queued joiners into the roster while space remains.
// Only meaningful in the lobby; mid-game vacancies wait for game end.
func (r *Room) promoteQueue() {
	for len(r.queue) > 0 && len(r.players) < RoomCapacity {
		q := r.queue[0]
		r.queue = r.queue[1:]

		p := &game.Player{
			ID:     string(q.session.ID()),
			Pseudo: q.pseudo,
			Color:  r.freeColor(),
		}
		p.ResetStats()
		r.players = append(r.players, p)
		if r.owner == "" {
			r.owner = q.session.ID()
		}
		q.session.Send(RoomJoinedEvent{Code: r.code, PlayerID: p.ID})
		r.systemChat(fmt.Sprintf("%s joined the room", q.pseudo))
	}
}

func (r *Room) playerByID(id SessionID) (*game.Player, bool) {
	for _, p := range r.players {
		if p.ID == string(id) {
			return p, true
		}
	}
	return nil, false
}

// freeColor returns the lowest color index not taken by a roster player.
func (r *Room) freeColor() int {
	taken := make(map[int]bool, len(r.players))
	for _, p := range r.players {
		taken[p.Color] = true
	}
	for c := 0; c < game.NumColors; c++ {
		if !taken[c] {
			return c
		}
	}
	return 0
}

// ----- lobby operations -----

func (r *Room) toggleReady(id SessionID) {
	if r.inGame {
		return
	}
	p, ok := r.playerByID(id)
	if !ok {
		return
	}
	p.Ready = !p.Ready
	r.broadcastLobby()
	r.reevaluateLobby()
}

func (r *Room) changeColor(id SessionID, color int) {
	if r.inGame {
		return
	}
	p, ok := r.playerByID(id)
	if !ok {
		return
	}
	if color < 0 || color >= game.NumColors {
		r.sendTo(id, ErrorEvent{Message: "unknown color"})
		return
	}
	for _, other := range r.players {
		if other != p && other.Color == color {
			r.sendTo(id, ErrorEvent{Message: "color already taken"})
			return
		}
	}
	p.Color = color
	r.broadcastLobby()
}

func (r *Room) changeTeam(id SessionID, team string) {
	if r.inGame {
		return
	}
	p, ok := r.playerByID(id)
	if !ok {
		return
	}

	var t game.Team
	switch team {
	case "alpha":
		t = game.TeamAlpha
	case "beta":
		t = game.TeamBeta
	case "none":
		t = game.TeamNone
	default:
		r.sendTo(id, ErrorEvent{Message: "unknown team"})
		return
	}

	if t != game.TeamNone {
		count := 0
		for _, other := range r.players {
			if other != p && other.Team == t {
				count++
			}
		}
		if count >= RoomCapacity/2 {
			r.sendTo(id, ErrorEvent{Message: "team is full"})
			return
		}
	}

	p.Team = t
	r.broadcastLobby()
}

func (r *Room) changeMode(id SessionID, mode string) {
	if r.inGame {
		return
	}
	if id != r.owner {
		r.sendTo(id, ErrorEvent{Message: "only the room owner can change the game mode"})
		return
	}
	r.mode = game.ParseGameMode(mode)
	r.broadcastLobby()
}

func (r *Room) postChat(m ChatMsg) {
	p, ok := r.playerByID(m.SessionID)
	if !ok || m.Text == "" {
		return
	}
	r.appendChat(ChatMessage{From: p.Pseudo, Text: m.Text, At: time.Now()})
}

func (r *Room) systemChat(text string) {
	r.appendChat(ChatMessage{Text: text, System: true, At: time.Now()})
}

func (r *Room) appendChat(msg ChatMessage) {
	r.chat = append(r.chat, msg)
	if len(r.chat) > maxChatHistory {
		r.chat = r.chat[len(r.chat)-maxChatHistory:]
	}
	r.broadcast(GameChatEvent{Message: msg})
}

// ----- lobby timers -----

func (r *Room) durations() lobbyDurations {
	return lobbyDurations{
		waiting:   r.cfg.Timings.WaitingSeconds,
		countdown: r.cfg.Timings.CountdownSeconds,
	}
}

func (r *Room) readyCount() int {
	n := 0
	for _, p := range r.players {
		if p.Ready {
			n++
		}
	}
	return n
}

// reevaluateLobby applies the timer rules after any roster change and
// emits start/cancel events for the transition.
func (r *Room) reevaluateLobby() {
	if r.inGame {
		return
	}
	next := EvaluateLobby(len(r.players), r.readyCount(), r.lobby, r.durations())
	if next == r.lobby {
		return
	}
	r.announceTimerChange(r.lobby, next)
	r.lobby = next
}

// announceTimerChange emits the cancel event for the timer being replaced
// and the start event for the new one.
func (r *Room) announceTimerChange(old, next LobbyTimer) {
	if old.Kind == next.Kind {
		return
	}
	switch old.Kind {
	case TimerWaiting:
		r.broadcast(WaitingCancelledEvent{})
	case TimerCountdown:
		r.broadcast(CountdownCancelledEvent{})
	}
	switch next.Kind {
	case TimerWaiting:
		r.broadcast(WaitingStartedEvent{Seconds: next.Remaining})
	case TimerCountdown:
		r.broadcast(CountdownStartEvent{Seconds: next.Remaining})
	}
}

// tickLobby advances the active lobby timer by one second.
func (r *Room) tickLobby() {
	if r.inGame || r.lobby.Kind == TimerNone {
		return
	}

	r.lobby.Remaining--
	if r.lobby.Remaining > 0 {
		switch r.lobby.Kind {
		case TimerWaiting:
			r.broadcast(WaitingTickEvent{Remaining: r.lobby.Remaining})
		case TimerCountdown:
			r.broadcast(CountdownTickEvent{Remaining: r.lobby.Remaining})
		}
		return
	}

	switch r.lobby.Kind {
	case TimerWaiting:
		next := waitingExpired(len(r.players), r.durations())
		r.announceTimerChange(r.lobby, next)
		r.lobby = next
	case TimerCountdown:
		next, start := countdownExpired(r.lobby, len(r.players), r.readyCount(), r.durations())
		if start {
			r.lobby = LobbyTimer{}
			r.startGame()
			return
		}
		r.announceTimerChange(r.lobby, next)
		r.lobby = next
	}
}

// ----- game lifecycle -----

func (r *Room) startGame() {
	if r.mode == game.ModeTeam && len(r.players) != RoomCapacity {
		r.systemChat("team mode needs exactly 4 players, start cancelled")
		r.broadcast(CountdownCancelledEvent{})
		return
	}
	if r.mode == game.ModeTeam {
		r.balanceTeams()
	}

	seed := fmt.Sprintf("%s-%d", r.code, time.Now().UnixNano())
	grid := game.GenerateMap(r.cfg.MapWidth, r.cfg.MapHeight, seed, r.cfg.MapOptions)
	r.state = game.NewState(grid, r.cfg.Rules, r.players, core.NewRandString(seed+"-drops"))
	r.inGame = true
	r.gameStarted = time.Now()

	r.broadcast(GameStartEvent{
		Players:      r.playerViews(),
		MapSeed:      seed,
		MapOptions:   r.cfg.MapOptions,
		Map:          grid.View(),
		GameTimerSec: int(r.cfg.Timings.GameDuration.Seconds()),
		GameMode:     r.mode.String(),
	})

	r.sweepTicker = time.NewTicker(r.cfg.Timings.SweepInterval)
	r.gameTimer = time.NewTimer(r.cfg.Timings.GameDuration)
	r.logger.Info("game started", "mode", r.mode.String(), "players", len(r.players), "seed", seed)
}

// balanceTeams assigns team-less players so each side ends with exactly
// RoomCapacity/2 members.
func (r *Room) balanceTeams() {
	alpha, beta := 0, 0
	for _, p := range r.players {
		switch p.Team {
		case game.TeamAlpha:
			alpha++
		case game.TeamBeta:
			beta++
		}
	}
	for _, p := range r.players {
		if p.Team != game.TeamNone {
			continue
		}
		if alpha <= beta && alpha < RoomCapacity/2 {
			p.Team = game.TeamAlpha
			alpha++
		} else {
			p.Team = game.TeamBeta
			beta++
		}
	}
}

func (r *Room) movementTick() {
	if !r.inGame || r.state == nil {
		return
	}
	dt := 1.0 / float64(r.cfg.Timings.TickRate)
	r.broadcastGameEvents(r.state.MovementTick(time.Now(), dt))

	// The ticker exists only while somebody is holding a direction.
	if !r.state.AnyInputActive() {
		r.stopMovementTicker()
	}
}

func (r *Room) sweepTick() {
	if !r.inGame || r.state == nil {
		r.logger.Warn("sweep tick without game state, skipping")
		return
	}
	events := r.state.Sweep(time.Now())
	r.broadcastGameEvents(events)

	for _, e := range events {
		if win, ok := e.(game.GameWinEvent); ok {
			r.finishGame(win)
			return
		}
	}
}

// gameTimedOut forces a draw when the hard game timer expires first.
func (r *Room) gameTimedOut() {
	if !r.inGame || r.state == nil || r.state.WinDeclared() {
		return
	}
	win := game.GameWinEvent{Draw: true}
	r.broadcast(GameEvent{Event: win})
	r.finishGame(win)
}

func (r *Room) finishGame(win game.GameWinEvent) {
	duration := int(time.Since(r.gameStarted).Seconds())
	r.saveResults(win, duration)

	switch {
	case win.WinningTeam != "":
		r.systemChat(fmt.Sprintf("team %s wins the game", win.WinningTeam))
	case win.WinnerPseudo != "":
		r.systemChat(fmt.Sprintf("%s wins the game", win.WinnerPseudo))
	default:
		r.systemChat("the game ends in a draw")
	}

	r.returnToLobby()
}

// returnToLobby tears down in-game state. Timer shutdown is idempotent:
// a room that ends by win while the game timer is firing cancels cleanly.
func (r *Room) returnToLobby() {
	r.stopGameTimers()
	r.inGame = false
	r.state = nil

	// Stats, curses, and scores are wiped back to defaults; results were
	// already persisted by finishGame.
	for _, p := range r.players {
		p.ResetStats()
		p.Ready = false
		p.X, p.Y = 0, 0
	}

	r.promoteQueue()
	r.broadcastLobby()
	r.logger.Info("room returned to lobby")
}

// stopGameTimers cancels the in-game tickers and the hard game timer.
// Safe to call any number of times.
func (r *Room) stopGameTimers() {
	r.stopMovementTicker()
	if r.sweepTicker != nil {
		r.sweepTicker.Stop()
		r.sweepTicker = nil
	}
	if r.gameTimer != nil {
		r.gameTimer.Stop()
		r.gameTimer = nil
	}
}

func (r *Room) startMovementTicker() {
	if r.moveTicker == nil {
		r.moveTicker = time.NewTicker(time.Second / time.Duration(r.cfg.Timings.TickRate))
	}
}

func (r *Room) stopMovementTicker() {
	if r.moveTicker != nil {
		r.moveTicker.Stop()
		r.moveTicker = nil
	}
}

// ----- in-game input -----

func (r *Room) applyMove(m MoveMsg) {
	if !r.inGame || r.state == nil {
		return
	}
	p, ok := r.playerByID(m.SessionID)
	if !ok || p.Dead {
		return
	}

	in := p.Input
	switch m.Dir {
	case "up":
		in.Up = m.Active
	case "down":
		in.Down = m.Active
	case "left":
		in.Left = m.Active
	case "right":
		in.Right = m.Active
	default:
		r.sendTo(m.SessionID, ErrorEvent{Message: "unknown direction"})
		return
	}
	r.state.SetInput(string(m.SessionID), in)

	if r.state.AnyInputActive() {
		r.startMovementTicker()
	} else {
		r.stopMovementTicker()
	}
}

func (r *Room) applyAction(m ActionMsg) {
	if !r.inGame || r.state == nil {
		return
	}
	now := time.Now()
	switch m.Action {
	case "placeBomb":
		r.broadcastGameEvents(r.state.PlaceBomb(string(m.SessionID), now))
	case "detonate":
		events := r.state.Detonate(string(m.SessionID), now)
		r.broadcastGameEvents(events)
		for _, e := range events {
			if win, ok := e.(game.GameWinEvent); ok {
				r.finishGame(win)
				return
			}
		}
	default:
		r.sendTo(m.SessionID, ErrorEvent{Message: "unknown action"})
	}
}

// ----- broadcast -----

func (r *Room) broadcast(evt SessionEvent) {
	for _, s := range r.sessions {
		s.Send(evt)
	}
}

func (r *Room) sendTo(id SessionID, evt SessionEvent) {
	if s, ok := r.sessions[id]; ok {
		s.Send(evt)
	}
}

func (r *Room) broadcastGameEvents(events []game.Event) {
	for _, e := range events {
		r.broadcast(GameEvent{Event: e})
	}
}

func (r *Room) playerViews() []game.PlayerView {
	views := make([]game.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		views = append(views, p.View())
	}
	return views
}

func (r *Room) broadcastLobby() {
	queue := make([]string, 0, len(r.queue))
	for _, q := range r.queue {
		queue = append(queue, q.pseudo)
	}
	r.broadcast(LobbyStateEvent{
		Code:     r.code,
		GameMode: r.mode.String(),
		Owner:    string(r.owner),
		Players:  r.playerViews(),
		Queue:    queue,
		Chat:     r.chat,
	})
}

// ----- persistence -----

// saveResults persists the outcome and refreshed highscores, best effort.
// Session handles are snapshotted first so the goroutine never touches the
// room's maps.
func (r *Room) saveResults(win game.GameWinEvent, durationSecs int) {
	if r.store == nil {
		return
	}

	res := ResultData{
		RoomCode:     r.code,
		Mode:         r.mode.String(),
		WinnerPseudo: win.WinnerPseudo,
		WinningTeam:  win.WinningTeam,
		Draw:         win.Draw,
		DurationSecs: durationSecs,
		Players:      len(r.players),
	}
	type playerScore struct {
		pseudo string
		score  int
	}
	scores := make([]playerScore, 0, len(r.players))
	for _, p := range r.players {
		scores = append(scores, playerScore{pseudo: p.Pseudo, score: p.Score})
	}
	handles := make([]SessionHandle, 0, len(r.sessions))
	for _, s := range r.sessions {
		handles = append(handles, s)
	}
	logger := r.logger

	go func() {
		if err := r.store.SaveMatchResult(res); err != nil {
			logger.Warn("failed to save match result", "err", err)
		}
		for _, ps := range scores {
			if err := r.store.SavePlayerScore(ps.pseudo, ps.score, res.RoomCode); err != nil {
				logger.Warn("failed to save player score", "pseudo", ps.pseudo, "err", err)
			}
		}
		top, err := r.store.TopScores(10)
		if err != nil {
			logger.Warn("failed to load highscores", "err", err)
			return
		}
		for _, s := range handles {
			s.Send(HighscoreUpdateEvent{Top: top})
		}
	}()
}
