package connection

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/battleship-core/internal/error"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
)

func TestSessionRegistry(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	hostWatcher := bsm.GenerateNewSession(nil, ReqWatch{GameUuid: "g1", WatchToken: "t1"})
	spectator := bsm.GenerateNewSession(nil, ReqWatch{GameUuid: "g1"})
	other := bsm.GenerateNewSession(nil, ReqWatch{GameUuid: "g2"})

	if hostWatcher.Id() == spectator.Id() {
		t.Fatal("expected unique session ids")
	}
	if hostWatcher.WatchToken() != "t1" || spectator.WatchToken() != "" || hostWatcher.Conn() != nil {
		t.Fatalf("unexpected sessions: %+v %+v", hostWatcher, spectator)
	}

	found, err := bsm.FindSession(spectator.Id())
	if err != nil {
		t.Fatal(err)
	}
	if found != spectator {
		t.Fatal("expected the same session back")
	}

	if got := len(bsm.GameSessions("g1")); got != 2 {
		t.Fatalf("expected 2 sessions for g1\tgot: %d", got)
	}

	bsm.TerminateGameSessions("g1")
	if got := len(bsm.GameSessions("g1")); got != 0 {
		t.Fatalf("expected no sessions for g1\tgot: %d", got)
	}
	expectedErr := cerr.ErrSessionNotFound(hostWatcher.Id())
	if _, err := bsm.FindSession(hostWatcher.Id()); err == nil || err.Error() != expectedErr.Error() {
		t.Fatalf("expected err: %v\tgot: %v", expectedErr, err)
	}
	if _, err := bsm.FindSession(other.Id()); err != nil {
		t.Fatal(err)
	}
}

func TestFetchCodeFromMsg(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	tests := []struct {
		name         string
		payload      []byte
		expectedCode uint8
		expectErr    bool
	}{
		{name: "request board", payload: []byte(`{"code":3}`), expectedCode: CodeRequestBoard},
		{name: "missing code", payload: []byte(`{}`), expectedCode: CodeSessionID},
		{name: "not json", payload: []byte(`code`), expectedCode: 255, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := bsm.FetchCodeFromMsg(test.payload)
			if (err != nil) != test.expectErr {
				t.Fatalf("expected err: %v\tgot: %v", test.expectErr, err)
			}
			if code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, code)
			}
		})
	}
}

// newWatchedSession registers a session backed by a real websocket and
// returns the client side of it.
func newWatchedSession(t *testing.T, bsm *BattleshipSessionManager, req ReqWatch) *websocket.Conn {
	t.Helper()
	registered := make(chan struct{})
	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		bsm.GenerateNewSession(conn, req)
		close(registered)
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case <-registered:
	case <-time.After(5 * time.Second):
		t.Fatal("session was never registered")
	}
	return client
}

func TestBroadcast(t *testing.T) {
	game := mb.NewGame(mb.WithSeed(12))
	host := game.HostPlayer()
	bsm := NewBattleshipSessionManager()

	spectators := []*websocket.Conn{
		newWatchedSession(t, bsm, ReqWatch{GameUuid: game.Uuid()}),
		newWatchedSession(t, bsm, ReqWatch{GameUuid: game.Uuid()}),
	}
	hostWatcher := newWatchedSession(t, bsm, ReqWatch{GameUuid: game.Uuid(), WatchToken: host.WatchToken()})

	bsm.Broadcast(NewSessionMessage(NewBoardState(game)))

	tests := []struct {
		name              string
		conn              *websocket.Conn
		expectedHostShips int
	}{
		{name: "first spectator", conn: spectators[0], expectedHostShips: 0},
		{name: "second spectator", conn: spectators[1], expectedHostShips: 0},
		{name: "host watcher", conn: hostWatcher, expectedHostShips: 17},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
				t.Fatal(err)
			}
			var msg Message[RespBoard]
			if err := test.conn.ReadJSON(&msg); err != nil {
				t.Fatal(err)
			}
			if msg.Code != CodeBoardUpdate || msg.Payload.GameUuid != game.Uuid() {
				t.Fatalf("unexpected frame: %+v", msg)
			}
			for _, player := range msg.Payload.Players {
				expected := 0
				if player.PlayerUuid == host.Uuid() {
					expected = test.expectedHostShips
				}
				if got := countViews(player.Grid, mb.TileViewShip); got != expected {
					t.Fatalf("expected %d ship tiles for %s\tgot: %d", expected, player.PlayerUuid, got)
				}
			}
		})
	}
}

func TestWriteBytesRejectsOtherPayloads(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	newWatchedSession(t, bsm, ReqWatch{GameUuid: "g1"})

	session := bsm.GameSessions("g1")[0]
	err := bsm.WriteToSessionConn(session, "not bytes", MessageTypeBytes)
	connErr, ok := err.(ConnErr)
	if !ok || connErr.Code() != ConnInvalidMsgType {
		t.Fatalf("expected invalid msg type error\tgot: %v", err)
	}
}
