package battleship

type ShipKind uint8

const (
	ShipNone ShipKind = iota
	ShipTug
	ShipSubmarine
	ShipDestroyer
	ShipBattleship
	ShipAircraftCarrier
)

// ShipKinds lists every deployable kind in deployment order.
// ShipNone is deliberately absent.
var ShipKinds = [...]ShipKind{
	ShipTug,
	ShipSubmarine,
	ShipDestroyer,
	ShipBattleship,
	ShipAircraftCarrier,
}

var shipLengths = map[ShipKind]int{
	ShipTug:             2,
	ShipSubmarine:       3,
	ShipDestroyer:       3,
	ShipBattleship:      4,
	ShipAircraftCarrier: 5,
}

var shipNames = map[ShipKind]string{
	ShipNone:            "None",
	ShipTug:             "Tug",
	ShipSubmarine:       "Submarine",
	ShipDestroyer:       "Destroyer",
	ShipBattleship:      "Battleship",
	ShipAircraftCarrier: "AircraftCarrier",
}

func (k ShipKind) String() string {
	name, prs := shipNames[k]
	if !prs {
		return "Unknown"
	}
	return name
}

// Length is zero for ShipNone and unknown kinds.
func (k ShipKind) Length() int {
	return shipLengths[k]
}

func (k ShipKind) IsValid() bool {
	_, prs := shipLengths[k]
	return prs
}

type Direction uint8

const (
	DirectionHorizontal Direction = iota
	DirectionVertical
)

func (d Direction) String() string {
	if d == DirectionVertical {
		return "vertical"
	}
	return "horizontal"
}

// step returns the (row, col) increment between two consecutive
// tiles of a ship laid in this direction.
func (d Direction) step() (int, int) {
	if d == DirectionVertical {
		return 1, 0
	}
	return 0, 1
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

type Ship struct {
	kind      ShipKind
	length    int
	hits      int
	direction Direction
	tiles     []Coordinates
}

func NewShip(kind ShipKind) *Ship {
	return &Ship{
		kind:   kind,
		length: kind.Length(),
		tiles:  make([]Coordinates, 0, kind.Length()),
	}
}

// NewShipsMap creates one undeployed ship per deployable kind. The same
// map is shared by a Player and its SeaGrid.
func NewShipsMap() map[ShipKind]*Ship {
	ships := make(map[ShipKind]*Ship, len(ShipKinds))
	for _, kind := range ShipKinds {
		ships[kind] = NewShip(kind)
	}
	return ships
}

func (sh *Ship) Kind() ShipKind       { return sh.kind }
func (sh *Ship) Name() string         { return sh.kind.String() }
func (sh *Ship) Length() int          { return sh.length }
func (sh *Ship) Hits() int            { return sh.hits }
func (sh *Ship) Direction() Direction { return sh.direction }

// Tiles returns a copy of the occupied coordinates in laying order.
func (sh *Ship) Tiles() []Coordinates {
	tiles := make([]Coordinates, len(sh.tiles))
	copy(tiles, sh.tiles)
	return tiles
}

func (sh *Ship) IsDeployed() bool {
	return len(sh.tiles) == sh.length
}

func (sh *Ship) IsDestroyed() bool {
	return sh.hits >= sh.length
}

// Hit is a no-op once the ship is destroyed.
func (sh *Ship) Hit() {
	if sh.hits < sh.length {
		sh.hits++
	}
}

// Remove resets the ship to undeployed. Clearing the board tiles it
// occupied is the grid's job.
func (sh *Ship) Remove() {
	sh.tiles = sh.tiles[:0]
	sh.hits = 0
}

// Deployed records the ship's run of tiles starting at (row, col). It does
// not validate the run against any board.
func (sh *Ship) Deployed(direction Direction, row, col int) {
	sh.direction = direction
	sh.tiles = sh.tiles[:0]

	dRow, dCol := direction.step()
	for i := 0; i < sh.length; i++ {
		sh.tiles = append(sh.tiles, NewCoordinates(row+i*dRow, col+i*dCol))
	}
}

func (sh *Ship) Occupies(row, col int) bool {
	for _, c := range sh.tiles {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}
