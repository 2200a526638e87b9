package error

import (
	"errors"
	"fmt"
)

// Placement failures are recoverable. Callers match them with errors.Is.
var (
	ErrShipOutOfBounds = errors.New("ship can't fit on the board")
	ErrShipOverlap     = errors.New("ship overlaps another ship")
	ErrShipOnShotTile  = errors.New("ship can't be laid on a tile that was already shot")
	ErrInvalidShipKind = errors.New("invalid ship kind")
	ErrOutOfGridBound  = errors.New("coordinates out of grid bound")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrNoTarget        = errors.New("no target to attack")
)

func ErrShipOutOfBoundsAt(name string, row, col int) error {
	return fmt.Errorf("%w\tship: %s\trow: %d\tcol: %d", ErrShipOutOfBounds, name, row, col)
}

func ErrShipOverlapAt(name, other string, row, col int) error {
	return fmt.Errorf("%w\tship: %s\tother: %s\trow: %d\tcol: %d", ErrShipOverlap, name, other, row, col)
}

func ErrShipOnShotTileAt(name string, row, col int) error {
	return fmt.Errorf("%w\tship: %s\trow: %d\tcol: %d", ErrShipOnShotTile, name, row, col)
}

func ErrShipKindNotExist(kind uint8) error {
	return fmt.Errorf("%w\tkind: %d", ErrInvalidShipKind, kind)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfGridBound, row, col)
}

func ErrGameIsFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameFinished, gameUuid)
}

func ErrPlayerNotInTurn(playerUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrNotPlayerTurn, playerUuid)
}

func ErrNoTargeterSet(playerUuid string) error {
	return fmt.Errorf("%w, player has no targeter, uuid: %s", ErrNoTarget, playerUuid)
}

func ErrNoTargetChosen(playerUuid string) error {
	return fmt.Errorf("%w, targeter chose nothing, uuid: %s", ErrNoTarget, playerUuid)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("player with this uuid does not exist, uuid: %s", playerUuid)
}

// Invariant violations reported by SeaGrid.Validate.

func ErrOccupancyMismatch(name string, listed, pointing int) error {
	return fmt.Errorf("ship %s lists %d tiles but %d tiles point to it", name, listed, pointing)
}

func ErrPartialDeployment(name string, tiles, length int) error {
	return fmt.Errorf("ship %s occupies %d tiles, want 0 or %d", name, tiles, length)
}

func ErrShipsKilledMismatch(counter, destroyed int) error {
	return fmt.Errorf("ships killed counter is %d but %d ships are destroyed", counter, destroyed)
}

func ErrHitCountMismatch(name string, hits, shotTiles int) error {
	return fmt.Errorf("ship %s has %d hits but %d of its tiles are shot", name, hits, shotTiles)
}

// The token itself is left out so it never ends up in a response or a log.
func ErrInvalidWatchToken(gameUuid string) error {
	return fmt.Errorf("watch token does not belong to any player of the game, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id was not found, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}
