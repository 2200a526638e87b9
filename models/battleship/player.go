package battleship

import (
	"math/rand"

	"github.com/dariubs/percent"
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-core/internal/error"
)

const (
	scorePerHit        = 12
	scorePerLostShip   = 20
	deployOriginBounds = GridWidth + 1
)

// Targeter picks the next cell to fire at. Human input and automated
// opponents plug in here; ok is false when no target is available.
type Targeter interface {
	Target(enemy Grid) (row, col int, ok bool)
}

type TargeterFunc func(enemy Grid) (int, int, bool)

func (f TargeterFunc) Target(enemy Grid) (int, int, bool) { return f(enemy) }

// Player owns its SeaGrid and sees the opponent only through a Grid.
type Player struct {
	uuid        string
	watchToken  string
	isHost      bool
	ships       map[ShipKind]*Ship
	playerGrid  *SeaGrid
	enemyGrid   Grid
	targeter    Targeter
	rng         *rand.Rand
	shots       int
	hits        int
	missed      int
	currentGame *Game
}

// NewPlayer builds the player's board and deploys every ship at random.
func NewPlayer(currentGame *Game, isHost bool, rng *rand.Rand, gridOpts ...GridOption) *Player {
	ships := NewShipsMap()
	p := &Player{
		uuid:        uuid.NewString()[:10],
		watchToken:  uuid.NewString(),
		isHost:      isHost,
		ships:       ships,
		playerGrid:  NewSeaGrid(ships, gridOpts...),
		rng:         rng,
		currentGame: currentGame,
	}

	p.RandomizeDeployment()
	return p
}

func (p *Player) Uuid() string        { return p.uuid }
func (p *Player) IsHost() bool        { return p.isHost }
func (p *Player) Game() *Game         { return p.currentGame }
func (p *Player) Grid() *SeaGrid      { return p.playerGrid }
func (p *Player) EnemyGrid() Grid     { return p.enemyGrid }
func (p *Player) Shots() int          { return p.shots }
func (p *Player) Hits() int           { return p.hits }
func (p *Player) Missed() int         { return p.missed }
func (p *Player) ReadyToDeploy() bool { return p.playerGrid.AllDeployed() }

// WatchToken lets its holder watch this player's own board unmasked. It
// is handed only to the player and never appears in a board frame.
func (p *Player) WatchToken() string {
	return p.watchToken
}

func (p *Player) SetEnemyGrid(enemy Grid) {
	p.enemyGrid = enemy
}

func (p *Player) SetTargeter(t Targeter) {
	p.targeter = t
}

// Ship returns nil for ShipNone.
func (p *Player) Ship(kind ShipKind) *Ship {
	if kind == ShipNone {
		return nil
	}
	return p.ships[kind]
}

func (p *Player) Ships() []*Ship {
	return p.playerGrid.Ships()
}

func (p *Player) IsDestroyed() bool {
	return p.playerGrid.ShipsKilled() == len(ShipKinds)
}

func (p *Player) Score() int {
	if p.IsDestroyed() {
		return 0
	}
	return p.hits*scorePerHit - p.shots - p.playerGrid.ShipsKilled()*scorePerLostShip
}

// Accuracy is the share of shots that landed on a ship, in percent.
func (p *Player) Accuracy() float64 {
	if p.shots == 0 {
		return 0
	}
	return percent.PercentOf(p.hits, p.shots)
}

// Shoot fires at the enemy grid. A repeated shot still counts as a shot.
func (p *Player) Shoot(row, col int) AttackResult {
	p.shots++
	result := p.enemyGrid.HitTile(row, col)

	switch result.Value {
	case ResultHit, ResultDestroyed:
		p.hits++
	case ResultMiss:
		p.missed++
	}

	return result
}

// Attack asks the player's targeter where to fire and shoots there.
func (p *Player) Attack() (AttackResult, error) {
	if p.targeter == nil {
		return AttackResult{}, cerr.ErrNoTargeterSet(p.uuid)
	}

	row, col, ok := p.targeter.Target(p.enemyGrid)
	if !ok {
		return AttackResult{}, cerr.ErrNoTargetChosen(p.uuid)
	}
	if !InBounds(row, col) {
		return AttackResult{}, cerr.ErrXorYOutOfGridBound(row, col)
	}

	return p.Shoot(row, col), nil
}

// RandomizeDeployment keeps drawing a direction and an origin for each
// ship until the grid accepts it. Origins are drawn from [0, 10] so that
// out of bounds draws are possible and simply retried.
func (p *Player) RandomizeDeployment() {
	for _, kind := range ShipKinds {
		for {
			direction := DirectionVertical
			if p.rng.Intn(2) == 1 {
				direction = DirectionHorizontal
			}
			row := p.rng.Intn(deployOriginBounds)
			col := p.rng.Intn(deployOriginBounds)

			if err := p.playerGrid.MoveShip(row, col, kind, direction); err == nil {
				break
			}
		}
	}
}
