package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-core/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn, req ReqWatch) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	GameSessions(gameUuid string) []*Session
	TerminateSession(sessionId string)
	TerminateGameSessions(gameUuid string)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Broadcast(msg SessionMessage)
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn, req ReqWatch) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn, req)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) GameSessions(gameUuid string) []*Session {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	sessions := make([]*Session, 0, 2)
	for _, session := range bsm.sessions {
		if session.gameUuid == gameUuid {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	session, prs := bsm.sessions[sessionId]
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()

	if prs && session.conn != nil {
		_ = session.conn.Close()
	}
}

func (bsm *BattleshipSessionManager) TerminateGameSessions(gameUuid string) {
	for _, session := range bsm.GameSessions(gameUuid) {
		bsm.TerminateSession(session.id)
	}
}

// Broadcast writes the state to every session of the game, each one
// seeing only its own player's grid unmasked. Spectators all get the same
// masked frame, encoded once. Sessions that cannot be written to are
// dropped.
func (bsm *BattleshipSessionManager) Broadcast(msg SessionMessage) {
	var spectatorFrame []byte

	for _, session := range bsm.GameSessions(msg.GameUuid) {
		resp := NewMessage[RespBoard](CodeBoardUpdate)
		resp.AddPayload(msg.State.For(session.watchToken))

		var err error
		if session.watchToken == "" {
			if spectatorFrame == nil {
				if spectatorFrame, err = json.Marshal(resp); err != nil {
					log.Println(err)
					return
				}
			}
			err = bsm.WriteToSessionConn(session, spectatorFrame, MessageTypeBytes)
		} else {
			err = bsm.WriteToSessionConn(session, resp, MessageTypeJSON)
		}

		if err != nil {
			log.Println(err)
			bsm.TerminateSession(session.id)
			continue
		}

		if msg.State.IsFinished() {
			endGame := NewMessage[RespEndGame](CodeEndGame)
			endGame.AddPayload(RespEndGame{WinnerUuid: msg.State.WinnerUuid()})
			_ = bsm.WriteToSessionConn(session, endGame, MessageTypeJSON)
		}
	}
}

// To ensure that there is no dangling connections,
// server session manager marks the connections with a
// lifetime of more than cleanupInterval as stale and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.RLock()
		toDelete := make([]string, 0, len(bsm.sessions))
		for ID, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.cleanupInterval {
				toDelete = append(toDelete, ID)
			}
		}
		bsm.mu.RUnlock()

		log.Println("Clean up sessions:")
		for _, ID := range toDelete {
			bsm.TerminateSession(ID)
			log.Printf("removed: %s", ID)
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		if session.handleReadFromConnErr(err, retries) == ConnLoopContinue {
			retries++
			continue
		}
		return -1, []byte{}, err
	}
}

func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
