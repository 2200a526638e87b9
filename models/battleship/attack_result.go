package battleship

import "fmt"

type ResultOfAttack uint8

const (
	ResultNone ResultOfAttack = iota
	ResultHit
	ResultMiss
	ResultDestroyed
	ResultShotAlready
)

func (r ResultOfAttack) String() string {
	switch r {
	case ResultHit:
		return "hit"
	case ResultMiss:
		return "miss"
	case ResultDestroyed:
		return "destroyed"
	case ResultShotAlready:
		return "shot already"
	default:
		return "none"
	}
}

// AttackResult is the outcome of one shot. Ship is set only when the shot
// destroyed it.
type AttackResult struct {
	Value ResultOfAttack
	Ship  *Ship
	Text  string
	Row   int
	Col   int
}

func NewAttackResult(value ResultOfAttack, text string, row, col int) AttackResult {
	return AttackResult{
		Value: value,
		Text:  text,
		Row:   row,
		Col:   col,
	}
}

func NewDestroyedResult(ship *Ship, row, col int) AttackResult {
	return AttackResult{
		Value: ResultDestroyed,
		Ship:  ship,
		Text:  "destroyed the enemy's",
		Row:   row,
		Col:   col,
	}
}

// IsHit reports whether the shot landed on a ship, sinking it or not.
func (r AttackResult) IsHit() bool {
	return r.Value == ResultHit || r.Value == ResultDestroyed
}

func (r AttackResult) String() string {
	if r.Ship != nil {
		return fmt.Sprintf("%s %s", r.Text, r.Ship.Name())
	}
	return r.Text
}
