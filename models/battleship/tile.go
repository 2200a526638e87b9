package battleship

// Tile is a single cell of a SeaGrid. The occupant is a key into the
// grid's ship map, not the ship itself; SeaGrid keeps it in sync.
type Tile struct {
	row      int
	col      int
	shot     bool
	occupant ShipKind
}

func NewTile(row, col int) Tile {
	return Tile{
		row:      row,
		col:      col,
		occupant: ShipNone,
	}
}

func (t Tile) Row() int   { return t.row }
func (t Tile) Col() int   { return t.col }
func (t Tile) Shot() bool { return t.shot }

// Shoot marks the tile as shot. It never goes back to false.
func (t *Tile) Shoot() {
	t.shot = true
}

func (t Tile) Occupant() ShipKind { return t.occupant }

func (t *Tile) SetOccupant(kind ShipKind) {
	t.occupant = kind
}

func (t Tile) IsOccupied() bool {
	return t.occupant != ShipNone
}
