package main

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	gui "github.com/grupawp/warships-gui/v2"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		name        string
		coord       string
		expectedRow int
		expectedCol int
		expectedErr error
	}{
		{name: "top left", coord: "A1", expectedRow: 0, expectedCol: 0},
		{name: "lower case", coord: "b4", expectedRow: 3, expectedCol: 1},
		{name: "bottom right", coord: "J10", expectedRow: 9, expectedCol: 9},
		{name: "column out of grid", coord: "K1", expectedErr: ErrInvalidCoord},
		{name: "row out of grid", coord: "A11", expectedErr: ErrInvalidCoord},
		{name: "row zero", coord: "A0", expectedErr: ErrInvalidCoord},
		{name: "empty", coord: "", expectedErr: ErrInvalidCoord},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row, col, err := parseCoord(test.coord)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
			}
			if err != nil {
				return
			}
			if row != test.expectedRow || col != test.expectedCol {
				t.Fatalf("expected [%d,%d]\tgot: [%d,%d]", test.expectedRow, test.expectedCol, row, col)
			}
			if got := formatCoord(row, col); !strings.EqualFold(got, test.coord) {
				t.Fatalf("expected %s back\tgot: %s", test.coord, got)
			}
		})
	}
}

func TestRandomTargeterExhaustsGrid(t *testing.T) {
	enemy := mb.NewSeaGrid(mb.NewShipsMap())
	targeter := randomTargeter(rand.New(rand.NewSource(1)))

	seen := make(map[[2]int]bool)
	for i := 0; i < mb.GridWidth*mb.GridHeight; i++ {
		row, col, ok := targeter.Target(enemy)
		if !ok {
			t.Fatalf("expected a target on shot %d", i)
		}
		if seen[[2]int{row, col}] {
			t.Fatalf("cell [%d,%d] targeted twice", row, col)
		}
		seen[[2]int{row, col}] = true
		enemy.HitTile(row, col)
	}

	if _, _, ok := targeter.Target(enemy); ok {
		t.Fatal("expected no target on a fully shot grid")
	}
}

func TestToStates(t *testing.T) {
	grid := mb.NewSeaGrid(mb.NewShipsMap())
	if err := grid.MoveShip(2, 4, mb.ShipTug, mb.DirectionHorizontal); err != nil {
		t.Fatal(err)
	}
	grid.HitTile(2, 4)
	grid.HitTile(9, 0)

	states := toStates(grid)
	if states[4][2] != gui.Hit || states[5][2] != gui.Ship || states[0][9] != gui.Miss || states[1][1] != gui.Empty {
		t.Fatalf("unexpected states: %v", states)
	}

	masked := toStates(mb.NewGridAdapter(grid))
	if masked[5][2] != gui.Empty {
		t.Fatal("expected the adapter to hide the unshot ship tile")
	}
}
