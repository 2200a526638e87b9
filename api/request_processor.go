package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-core/db/sqlc"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
	mc "github.com/saeidalz13/battleship-core/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const updatesBufferSize = 64

var (
	// allowedOrigins     = map[string]bool{
	// 	"https://www.allowed_url.com": true,
	// }
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// RequestProcessor owns the games of this server and streams their boards
// to websocket watchers. Watchers cannot change a game.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	dbm            *sqlc.DbManager
	ipnet          net.IPNet

	boards  map[string]mc.BoardState
	mu      sync.RWMutex
	updates chan mc.SessionMessage
}

// A nil querier disables analytics.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		ipnet:          getServerIpNet(),
		boards:         make(map[string]mc.BoardState),
		updates:        make(chan mc.SessionMessage, updatesBufferSize),
	}
	if q != nil {
		rp.dbm = sqlc.NewDbManager(q)
	}

	return rp
}

// getServerIpNet picks the first non-loopback IPv4 address of the host and
// falls back to loopback.
func getServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println(err)
		return loopback
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return net.IPNet{IP: ipnet.IP, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return loopback
}

// Expose this method to use it in testing
func (rp *RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp *RequestProcessor) inet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

// CreateGame registers a new game and starts publishing its boards.
// The returned game must be driven from a single goroutine.
func (rp *RequestProcessor) CreateGame(ctx context.Context, opts ...mb.GameOption) *mb.Game {
	game := rp.gameManager.CreateGame(opts...)
	rp.track(game)

	if rp.dbm != nil {
		ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
		defer cancel()
		if err := rp.dbm.Analytics.IncrementGamesCreatedCount(ctx, rp.inet()); err != nil {
			// for now not killing the game for it
			log.Println(err)
		}
	}

	return game
}

// track publishes a fresh board state on every change of the game. The
// listener runs on the game's goroutine and only copies the game.
func (rp *RequestProcessor) track(game *mb.Game) {
	game.Subscribe(mb.GameListenerFunc(func(g *mb.Game) {
		rp.publish(mc.NewBoardState(g))
	}))
	rp.publish(mc.NewBoardState(game))
}

func (rp *RequestProcessor) publish(state mc.BoardState) {
	rp.mu.Lock()
	rp.boards[state.GameUuid()] = state
	rp.mu.Unlock()

	rp.updates <- mc.NewSessionMessage(state)
}

func (rp *RequestProcessor) latestBoard(gameUuid string) (mc.BoardState, bool) {
	rp.mu.RLock()
	defer rp.mu.RUnlock()

	state, prs := rp.boards[gameUuid]
	return state, prs
}

// ManageBroadcast forwards published boards to the watchers of each game
// until ctx is done.
func (rp *RequestProcessor) ManageBroadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-rp.updates:
			rp.sessionManager.Broadcast(msg)
		}
	}
}

// RecordMatch stores the result of a finished game. It is a no-op when
// analytics are disabled or the game is still running.
func (rp *RequestProcessor) RecordMatch(ctx context.Context, game *mb.Game) error {
	if rp.dbm == nil || !game.IsFinished() || game.Winner() == nil {
		return nil
	}

	host, join := game.HostPlayer(), game.JoinPlayer()
	arg := sqlc.InsertMatchResultParams{
		GameUuid:   game.Uuid(),
		ServerIp:   rp.inet(),
		WinnerUuid: game.Winner().Uuid(),
		HostShots:  int32(host.Shots()),
		HostHits:   int32(host.Hits()),
		HostScore:  int32(host.Score()),
		JoinShots:  int32(join.Shots()),
		JoinHits:   int32(join.Hits()),
		JoinScore:  int32(join.Score()),
	}

	ctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
	defer cancel()
	return rp.dbm.Analytics.RecordMatchResult(ctx, arg)
}

func (rp *RequestProcessor) TerminateGame(gameUuid string) {
	rp.gameManager.TerminateGame(gameUuid)
	rp.sessionManager.TerminateGameSessions(gameUuid)

	rp.mu.Lock()
	delete(rp.boards, gameUuid)
	rp.mu.Unlock()
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	req := mc.NewReqWatch(r.URL.Query())
	if err := rp.validateWatch(req); err != nil {
		msg := mc.NewMessage[mc.NoPayload](mc.CodeGameNotFound)
		msg.AddError(err.Error(), "no game to watch")
		_ = conn.WriteJSON(msg)
		conn.Close()
		return
	}

	log.Println("a new watcher connected\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn, req))
}

// validateWatch accepts spectators of any live game. A watch token, when
// given, must belong to one of the game's players; player uuids are
// public and never unmask a board.
func (rp *RequestProcessor) validateWatch(req mc.ReqWatch) error {
	game, err := rp.gameManager.GetGame(req.GameUuid)
	if err != nil || req.WatchToken == "" {
		return err
	}

	_, err = game.FindPlayerByWatchToken(req.WatchToken)
	return err
}

func (rp *RequestProcessor) writeLatestBoard(session *mc.Session) error {
	state, prs := rp.latestBoard(session.GameUuid())
	if !prs {
		return nil
	}

	resp := mc.NewMessage[mc.RespBoard](mc.CodeBoardUpdate)
	resp.AddPayload(state.For(session.WatchToken()))
	return rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON)
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	defer func() {
		rp.sessionManager.TerminateSession(sessionId)
		log.Println("watcher disconnected:", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}
	if err := rp.writeLatestBoard(session); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeRequestBoard:
			if err := rp.writeLatestBoard(session); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

type RespAnalytics struct {
	ActiveGames   int   `json:"active_games"`
	GamesCreated  int64 `json:"games_created"`
	GamesFinished int64 `json:"games_finished"`
}

func (rp *RequestProcessor) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	resp := RespAnalytics{ActiveGames: rp.gameManager.CountGames()}

	if rp.dbm != nil {
		ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
		defer cancel()

		var err error
		if resp.GamesCreated, err = rp.dbm.Analytics.GetGamesCreatedCount(ctx, rp.inet()); err != nil {
			log.Println(err)
		}
		if resp.GamesFinished, err = rp.dbm.Analytics.GetGamesFinishedCount(ctx, rp.inet()); err != nil {
			log.Println(err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println(err)
	}
}
