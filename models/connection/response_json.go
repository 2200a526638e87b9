package connection

import (
	mb "github.com/saeidalz13/battleship-core/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespPlayer struct {
	PlayerUuid  string          `json:"player_uuid"`
	IsHost      bool            `json:"is_host"`
	IsTurn      bool            `json:"is_turn"`
	Shots       int             `json:"shots"`
	Hits        int             `json:"hits"`
	Missed      int             `json:"missed"`
	Score       int             `json:"score"`
	Accuracy    float64         `json:"accuracy"`
	IsDestroyed bool            `json:"is_destroyed"`
	Grid        mb.GridSnapshot `json:"grid"`
}

type RespBoard struct {
	GameUuid   string       `json:"game_uuid"`
	IsFinished bool         `json:"is_finished"`
	WinnerUuid string       `json:"winner_uuid,omitempty"`
	Players    []RespPlayer `json:"players"`
}

type RespEndGame struct {
	WinnerUuid string `json:"winner_uuid"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

type playerState struct {
	watchToken string
	resp       RespPlayer
	full       mb.GridSnapshot
	masked     mb.GridSnapshot
}

// BoardState is a copy of a whole game taken on the game's goroutine. It
// holds both the full and the masked grid of each player and is safe to
// hand to other goroutines.
type BoardState struct {
	gameUuid   string
	isFinished bool
	winnerUuid string
	players    []playerState
}

func NewBoardState(game *mb.Game) BoardState {
	state := BoardState{
		gameUuid:   game.Uuid(),
		isFinished: game.IsFinished(),
		players:    make([]playerState, 0, 2),
	}
	if winner := game.Winner(); winner != nil {
		state.winnerUuid = winner.Uuid()
	}

	for _, player := range game.GetPlayers() {
		state.players = append(state.players, playerState{
			resp: RespPlayer{
				PlayerUuid:  player.Uuid(),
				IsHost:      player.IsHost(),
				IsTurn:      !game.IsFinished() && game.CurrentPlayer() == player,
				Shots:       player.Shots(),
				Hits:        player.Hits(),
				Missed:      player.Missed(),
				Score:       player.Score(),
				Accuracy:    player.Accuracy(),
				IsDestroyed: player.IsDestroyed(),
			},
			full:       mb.Snapshot(player.Grid()),
			masked:     mb.Snapshot(mb.NewGridAdapter(player.Grid())),
			watchToken: player.WatchToken(),
		})
	}
	return state
}

func (b BoardState) GameUuid() string   { return b.gameUuid }
func (b BoardState) IsFinished() bool   { return b.isFinished }
func (b BoardState) WinnerUuid() string { return b.winnerUuid }

// For projects the state for one watcher: only the grid of the player
// holding watchToken is shown unmasked. An empty or unknown token sees
// every grid masked. Tokens are never copied into the response.
func (b BoardState) For(watchToken string) RespBoard {
	resp := RespBoard{
		GameUuid:   b.gameUuid,
		IsFinished: b.isFinished,
		WinnerUuid: b.winnerUuid,
		Players:    make([]RespPlayer, 0, len(b.players)),
	}

	for _, p := range b.players {
		player := p.resp
		player.Grid = p.masked
		if watchToken != "" && p.watchToken == watchToken {
			player.Grid = p.full
		}
		resp.Players = append(resp.Players, player)
	}
	return resp
}
