package battleship

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-core/internal/error"
)

type GameOption func(*Game)

// GameListener is told about every change to a game once the turn and
// winner rules have been applied.
type GameListener interface {
	GameChanged(g *Game)
}

type GameListenerFunc func(g *Game)

func (f GameListenerFunc) GameChanged(g *Game) { f(g) }

// WithSeed makes both players' deployment reproducible.
func WithSeed(seed int64) GameOption {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithGridOptions(opts ...GridOption) GameOption {
	return func(g *Game) {
		g.gridOpts = append(g.gridOpts, opts...)
	}
}

// Game pairs a host and a join player, each firing at the other's
// masked grid. The host shoots first; a miss passes the turn.
type Game struct {
	uuid       string
	isFinished bool
	hostPlayer *Player
	joinPlayer *Player
	players    map[string]*Player
	turn       *Player
	winner     *Player
	rng        *rand.Rand
	gridOpts   []GridOption
	listeners  []GameListener
	shooting   bool
}

func NewGame(opts ...GameOption) *Game {
	game := &Game{
		uuid:    uuid.NewString()[:6],
		players: make(map[string]*Player, 2),
	}
	for _, opt := range opts {
		opt(game)
	}
	if game.rng == nil {
		game.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	game.hostPlayer = NewPlayer(game, true, game.rng, game.gridOpts...)
	game.joinPlayer = NewPlayer(game, false, game.rng, game.gridOpts...)

	game.hostPlayer.SetEnemyGrid(NewGridAdapter(game.joinPlayer.Grid()))
	game.joinPlayer.SetEnemyGrid(NewGridAdapter(game.hostPlayer.Grid()))

	game.players[game.hostPlayer.Uuid()] = game.hostPlayer
	game.players[game.joinPlayer.Uuid()] = game.joinPlayer
	game.turn = game.hostPlayer

	// grid changes outside a shot, such as moving a ship, are
	// forwarded as they happen
	forward := ChangeListenerFunc(func(Grid) {
		if !game.shooting {
			game.notify()
		}
	})
	game.hostPlayer.Grid().Subscribe(forward)
	game.joinPlayer.Grid().Subscribe(forward)

	return game
}

func (g *Game) Uuid() string           { return g.uuid }
func (g *Game) IsFinished() bool       { return g.isFinished }
func (g *Game) HostPlayer() *Player    { return g.hostPlayer }
func (g *Game) JoinPlayer() *Player    { return g.joinPlayer }
func (g *Game) CurrentPlayer() *Player { return g.turn }

// Winner is nil until the game is finished.
func (g *Game) Winner() *Player { return g.winner }

func (g *Game) Subscribe(l GameListener) {
	g.listeners = append(g.listeners, l)
}

func (g *Game) notify() {
	for _, l := range g.listeners {
		l.GameChanged(g)
	}
}

func (g *Game) FinishGame() {
	g.isFinished = true
}

// returns a slice of players in the order of host then join.
func (g *Game) GetPlayers() []*Player {
	return []*Player{g.hostPlayer, g.joinPlayer}
}

func (g *Game) FindPlayer(playerUuid string) (*Player, error) {
	player, prs := g.players[playerUuid]
	if !prs {
		return nil, cerr.ErrPlayerNotExist(playerUuid)
	}

	return player, nil
}

func (g *Game) FindPlayerByWatchToken(watchToken string) (*Player, error) {
	for _, player := range g.GetPlayers() {
		if watchToken != "" && player.watchToken == watchToken {
			return player, nil
		}
	}
	return nil, cerr.ErrInvalidWatchToken(g.uuid)
}

func (g *Game) FetchPlayer(isHost bool) *Player {
	if isHost {
		return g.hostPlayer
	}
	return g.joinPlayer
}

func (g *Game) GetOtherPlayer(player *Player) *Player {
	return g.FetchPlayer(!player.IsHost())
}

// Shoot fires for the player with playerUuid. Coordinates are checked
// here so the grid never sees an off-board shot.
func (g *Game) Shoot(playerUuid string, row, col int) (AttackResult, error) {
	if err := g.checkTurn(playerUuid); err != nil {
		return AttackResult{}, err
	}
	if !InBounds(row, col) {
		return AttackResult{}, cerr.ErrXorYOutOfGridBound(row, col)
	}

	g.shooting = true
	result := g.turn.Shoot(row, col)
	g.afterShot(result)
	return result, nil
}

// Attack lets the current player's targeter choose the shot.
func (g *Game) Attack() (AttackResult, error) {
	if g.isFinished {
		return AttackResult{}, cerr.ErrGameIsFinished(g.uuid)
	}

	g.shooting = true
	result, err := g.turn.Attack()
	if err != nil {
		g.shooting = false
		return AttackResult{}, err
	}

	g.afterShot(result)
	return result, nil
}

func (g *Game) checkTurn(playerUuid string) error {
	if g.isFinished {
		return cerr.ErrGameIsFinished(g.uuid)
	}
	if _, err := g.FindPlayer(playerUuid); err != nil {
		return err
	}
	if g.turn.Uuid() != playerUuid {
		return cerr.ErrPlayerNotInTurn(playerUuid)
	}
	return nil
}

func (g *Game) afterShot(result AttackResult) {
	defer func() {
		g.shooting = false
		g.notify()
	}()

	switch result.Value {
	case ResultDestroyed:
		if g.GetOtherPlayer(g.turn).IsDestroyed() {
			g.winner = g.turn
			g.FinishGame()
		}
	case ResultMiss:
		g.turn = g.GetOtherPlayer(g.turn)
	}
}
