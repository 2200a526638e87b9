package battleship

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	cerr "github.com/saeidalz13/battleship-core/internal/error"
)

const (
	GridWidth  = 10
	GridHeight = 10
)

// TileView is what a UI is allowed to draw for a single tile.
type TileView uint8

const (
	TileViewSea TileView = iota
	TileViewShip
	TileViewHit
	TileViewMiss
	TileViewDestroyed
)

func (v TileView) String() string {
	switch v {
	case TileViewShip:
		return "ship"
	case TileViewHit:
		return "hit"
	case TileViewMiss:
		return "miss"
	case TileViewDestroyed:
		return "destroyed"
	default:
		return "sea"
	}
}

// Text encoding keeps []TileView from being marshaled as base64 bytes.
func (v TileView) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *TileView) UnmarshalText(text []byte) error {
	for candidate := TileViewSea; candidate <= TileViewDestroyed; candidate++ {
		if candidate.String() == string(text) {
			*v = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown tile view: %q", text)
}

// Grid is the view of a sea grid a player gets of the opponent's board.
// It allows shooting but never exposes undiscovered ships.
type Grid interface {
	Width() int
	Height() int
	View(row, col int) TileView
	ShipsKilled() int
	HitTile(row, col int) AttackResult
	Subscribe(l ChangeListener)
}

// ChangeListener is called synchronously after every placement or shot.
// Implementations must not call back into mutating grid methods.
type ChangeListener interface {
	GridChanged(g Grid)
}

type ChangeListenerFunc func(g Grid)

func (f ChangeListenerFunc) GridChanged(g Grid) { f(g) }

type GridOption func(*SeaGrid)

func WithChangeListener(l ChangeListener) GridOption {
	return func(g *SeaGrid) {
		g.listeners = append(g.listeners, l)
	}
}

// SeaGrid is the board ships are deployed on. Tiles are indexed
// [row][col]. The ships map is shared with the owning player.
type SeaGrid struct {
	tiles       [GridHeight][GridWidth]Tile
	ships       map[ShipKind]*Ship
	shipsKilled int
	listeners   []ChangeListener
}

var _ Grid = (*SeaGrid)(nil)

func NewSeaGrid(ships map[ShipKind]*Ship, opts ...GridOption) *SeaGrid {
	g := &SeaGrid{ships: ships}
	for row := 0; row < GridHeight; row++ {
		for col := 0; col < GridWidth; col++ {
			g.tiles[row][col] = NewTile(row, col)
		}
	}

	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SeaGrid) Width() int       { return GridWidth }
func (g *SeaGrid) Height() int      { return GridHeight }
func (g *SeaGrid) ShipsKilled() int { return g.shipsKilled }

func (g *SeaGrid) Subscribe(l ChangeListener) {
	g.listeners = append(g.listeners, l)
}

func (g *SeaGrid) notify() {
	for _, l := range g.listeners {
		l.GridChanged(g)
	}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < GridHeight && col >= 0 && col < GridWidth
}

// Tile returns a copy of the tile at (row, col).
func (g *SeaGrid) Tile(row, col int) Tile {
	return g.tiles[row][col]
}

func (g *SeaGrid) View(row, col int) TileView {
	tile := &g.tiles[row][col]

	switch {
	case tile.Shot() && tile.IsOccupied():
		if ship := g.ships[tile.Occupant()]; ship != nil && ship.IsDestroyed() {
			return TileViewDestroyed
		}
		return TileViewHit
	case tile.Shot():
		return TileViewMiss
	case tile.IsOccupied():
		return TileViewShip
	default:
		return TileViewSea
	}
}

func (g *SeaGrid) AllDeployed() bool {
	for _, ship := range g.ships {
		if !ship.IsDeployed() {
			return false
		}
	}
	return true
}

// Ships returns the grid's ships in ShipKinds order.
func (g *SeaGrid) Ships() []*Ship {
	ships := make([]*Ship, 0, len(g.ships))
	for _, kind := range ShipKinds {
		if ship, prs := g.ships[kind]; prs {
			ships = append(ships, ship)
		}
	}
	return ships
}

// MoveShip takes the ship off the board and lays it again from (row, col).
// If the new run leaves the board or crosses another ship, the ship is
// left undeployed and the returned error wraps cerr.ErrShipOutOfBounds or
// cerr.ErrShipOverlap. Listeners are notified once either way.
func (g *SeaGrid) MoveShip(row, col int, kind ShipKind, direction Direction) error {
	defer g.notify()

	ship, prs := g.ships[kind]
	if !prs {
		return cerr.ErrShipKindNotExist(uint8(kind))
	}

	g.release(ship)
	return g.addShip(row, col, direction, ship)
}

// release clears every tile pointing at the ship and resets it.
func (g *SeaGrid) release(ship *Ship) {
	for _, c := range ship.tiles {
		if tile := &g.tiles[c.Row][c.Col]; tile.Occupant() == ship.kind {
			tile.SetOccupant(ShipNone)
		}
	}

	if ship.IsDestroyed() {
		g.shipsKilled--
	}
	ship.Remove()
}

func (g *SeaGrid) addShip(row, col int, direction Direction, ship *Ship) error {
	dRow, dCol := direction.step()

	// the whole run is checked before any tile is written
	currentRow, currentCol := row, col
	for i := 0; i < ship.length; i++ {
		if !InBounds(currentRow, currentCol) {
			return cerr.ErrShipOutOfBoundsAt(ship.Name(), row, col)
		}
		tile := g.tiles[currentRow][currentCol]
		if tile.IsOccupied() {
			return cerr.ErrShipOverlapAt(ship.Name(), tile.Occupant().String(), currentRow, currentCol)
		}
		// a shot tile answers ShotAlready, so a ship on it could never sink
		if tile.Shot() {
			return cerr.ErrShipOnShotTileAt(ship.Name(), currentRow, currentCol)
		}
		currentRow += dRow
		currentCol += dCol
	}

	currentRow, currentCol = row, col
	for i := 0; i < ship.length; i++ {
		g.tiles[currentRow][currentCol].SetOccupant(ship.kind)
		currentRow += dRow
		currentCol += dCol
	}

	ship.Deployed(direction, row, col)
	return nil
}

// HitTile fires at (row, col). The coordinates must be on the board;
// Game.Shoot checks them before getting here.
func (g *SeaGrid) HitTile(row, col int) AttackResult {
	defer g.notify()

	tile := &g.tiles[row][col]
	if tile.Shot() {
		return NewAttackResult(ResultShotAlready, fmt.Sprintf("have already attacked [%d,%d]!", col, row), row, col)
	}

	tile.Shoot()

	if !tile.IsOccupied() {
		return NewAttackResult(ResultMiss, "missed", row, col)
	}

	ship := g.ships[tile.Occupant()]
	ship.Hit()
	if ship.IsDestroyed() {
		g.shipsKilled++
		return NewDestroyedResult(ship, row, col)
	}

	return NewAttackResult(ResultHit, "hit something!", row, col)
}

// Validate walks the whole board and reports every broken occupancy or
// destruction invariant it finds.
func (g *SeaGrid) Validate() error {
	var result *multierror.Error

	pointing := make(map[ShipKind]int, len(g.ships))
	for row := 0; row < GridHeight; row++ {
		for col := 0; col < GridWidth; col++ {
			if occupant := g.tiles[row][col].Occupant(); occupant != ShipNone {
				pointing[occupant]++
			}
		}
	}

	destroyed := 0
	for _, ship := range g.Ships() {
		listed := len(ship.tiles)
		if listed != 0 && listed != ship.length {
			result = multierror.Append(result, cerr.ErrPartialDeployment(ship.Name(), listed, ship.length))
		}

		matched, shot := 0, 0
		for _, c := range ship.tiles {
			if !InBounds(c.Row, c.Col) {
				result = multierror.Append(result, cerr.ErrXorYOutOfGridBound(c.Row, c.Col))
				continue
			}
			tile := &g.tiles[c.Row][c.Col]
			if tile.Occupant() == ship.kind {
				matched++
			}
			if tile.Shot() {
				shot++
			}
		}
		if matched != listed || pointing[ship.kind] != listed {
			result = multierror.Append(result, cerr.ErrOccupancyMismatch(ship.Name(), listed, pointing[ship.kind]))
		}
		if shot != ship.hits {
			result = multierror.Append(result, cerr.ErrHitCountMismatch(ship.Name(), ship.hits, shot))
		}

		if ship.IsDestroyed() {
			destroyed++
		}
	}

	if destroyed != g.shipsKilled {
		result = multierror.Append(result, cerr.ErrShipsKilledMismatch(g.shipsKilled, destroyed))
	}

	return result.ErrorOrNil()
}

// GridAdapter hides undiscovered ships of the wrapped grid.
type GridAdapter struct {
	grid *SeaGrid
}

var _ Grid = (*GridAdapter)(nil)

func NewGridAdapter(grid *SeaGrid) *GridAdapter {
	return &GridAdapter{grid: grid}
}

func (a *GridAdapter) Width() int       { return a.grid.Width() }
func (a *GridAdapter) Height() int      { return a.grid.Height() }
func (a *GridAdapter) ShipsKilled() int { return a.grid.ShipsKilled() }

func (a *GridAdapter) View(row, col int) TileView {
	view := a.grid.View(row, col)
	if view == TileViewShip {
		return TileViewSea
	}
	return view
}

func (a *GridAdapter) HitTile(row, col int) AttackResult {
	return a.grid.HitTile(row, col)
}

// Subscribe hands the adapter, not the underlying grid, to the listener.
func (a *GridAdapter) Subscribe(l ChangeListener) {
	a.grid.Subscribe(ChangeListenerFunc(func(Grid) {
		l.GridChanged(a)
	}))
}

// GridSnapshot is an immutable copy of what a Grid shows at one point in
// time. Tiles are indexed [row][col].
type GridSnapshot struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	ShipsKilled int          `json:"ships_killed"`
	Tiles       [][]TileView `json:"tiles"`
}

func Snapshot(g Grid) GridSnapshot {
	tiles := make([][]TileView, g.Height())
	for row := range tiles {
		tiles[row] = make([]TileView, g.Width())
		for col := range tiles[row] {
			tiles[row][col] = g.View(row, col)
		}
	}

	return GridSnapshot{
		Width:       g.Width(),
		Height:      g.Height(),
		ShipsKilled: g.ShipsKilled(),
		Tiles:       tiles,
	}
}
