package battleship

import "testing"

func TestShipKinds(t *testing.T) {
	expectedLengths := map[ShipKind]int{
		ShipTug:             2,
		ShipSubmarine:       3,
		ShipDestroyer:       3,
		ShipBattleship:      4,
		ShipAircraftCarrier: 5,
	}

	if len(ShipKinds) != len(expectedLengths) {
		t.Fatalf("expected %d ship kinds\tgot: %d", len(expectedLengths), len(ShipKinds))
	}
	for _, kind := range ShipKinds {
		if kind == ShipNone {
			t.Fatal("ShipNone must not be deployable")
		}
		if kind.Length() != expectedLengths[kind] {
			t.Fatalf("%s: expected length %d\tgot: %d", kind, expectedLengths[kind], kind.Length())
		}
	}

	if ShipNone.IsValid() || ShipNone.Length() != 0 {
		t.Fatal("expected ShipNone to have no length")
	}
	if ShipKind(42).String() != "Unknown" {
		t.Fatalf("expected unknown kind name\tgot: %s", ShipKind(42))
	}
}

func TestShipLifecycle(t *testing.T) {
	ship := NewShip(ShipBattleship)
	if ship.IsDeployed() || ship.IsDestroyed() {
		t.Fatal("expected a new ship to be undeployed and intact")
	}

	ship.Deployed(DirectionVertical, 3, 6)
	expected := []Coordinates{{3, 6}, {4, 6}, {5, 6}, {6, 6}}
	tiles := ship.Tiles()
	for i := range expected {
		if tiles[i] != expected[i] {
			t.Fatalf("expected tile %d at %v\tgot: %v", i, expected[i], tiles[i])
		}
	}
	if !ship.IsDeployed() {
		t.Fatal("expected ship to be deployed")
	}

	// Tiles hands out a copy
	tiles[0] = NewCoordinates(9, 9)
	if ship.Occupies(9, 9) {
		t.Fatal("expected ship tiles to be unaffected by caller mutation")
	}

	for i := 0; i < ship.Length()+2; i++ {
		ship.Hit()
	}
	if ship.Hits() != ship.Length() {
		t.Fatalf("expected hits to stop at %d\tgot: %d", ship.Length(), ship.Hits())
	}
	if !ship.IsDestroyed() {
		t.Fatal("expected ship to be destroyed")
	}

	ship.Remove()
	if ship.IsDeployed() || ship.Hits() != 0 || len(ship.Tiles()) != 0 {
		t.Fatal("expected Remove to reset the ship")
	}
}

func TestNewShipsMap(t *testing.T) {
	ships := NewShipsMap()
	if _, prs := ships[ShipNone]; prs {
		t.Fatal("expected no ship for ShipNone")
	}
	for _, kind := range ShipKinds {
		ship, prs := ships[kind]
		if !prs {
			t.Fatalf("expected a ship for %s", kind)
		}
		if ship.Kind() != kind || ship.Name() != kind.String() {
			t.Fatalf("expected ship of kind %s\tgot: %s", kind, ship.Kind())
		}
	}
}
