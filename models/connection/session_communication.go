package connection

// SessionMessage carries a fresh board state to every session watching
// the game.
type SessionMessage struct {
	GameUuid string
	State    BoardState
}

func NewSessionMessage(state BoardState) SessionMessage {
	return SessionMessage{
		GameUuid: state.GameUuid(),
		State:    state,
	}
}
