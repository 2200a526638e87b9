package battleship

import (
	"log"
	"sync"

	cerr "github.com/saeidalz13/battleship-core/internal/error"
)

// GameManager is the only battleship type shared between goroutines.
// A single Game must still be driven from one goroutine at a time.
type GameManager interface {
	CreateGame(opts ...GameOption) *Game
	GetGame(gameUuid string) (*Game, error)
	FindGameAndPlayer(gameUuid, playerUuid string) (*Game, *Player, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
}

func (bgm *BattleshipGameManager) CreateGame(opts ...GameOption) *Game {
	game := NewGame(opts...)

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	log.Printf("game created: %s\n", game.Uuid())
	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

// Convenient helper func to fetch both the game and player
func (bgm *BattleshipGameManager) FindGameAndPlayer(gameUuid, playerUuid string) (*Game, *Player, error) {
	game, err := bgm.GetGame(gameUuid)
	if err != nil {
		return nil, nil, err
	}

	player, err := game.FindPlayer(playerUuid)
	if err != nil {
		return nil, nil, err
	}

	return game, player, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	if _, prs := bgm.games[gameUuid]; !prs {
		return
	}
	delete(bgm.games, gameUuid)
	log.Printf("game terminated: %s\n", gameUuid)
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
