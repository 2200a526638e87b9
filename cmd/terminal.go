package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	gui "github.com/grupawp/warships-gui/v2"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
)

const (
	yBoards = 6
	xPBoard = 1
	xOBoard = 60
)

var ErrInvalidCoord = errors.New("invalid coordinate")

// parseCoord turns a board label such as "B4" into a grid row and column.
// The letter is the column and the number is the row, starting at 1.
func parseCoord(coord string) (row, col int, err error) {
	if len(coord) < 2 || len(coord) > 3 {
		return 0, 0, ErrInvalidCoord
	}
	coord = strings.ToUpper(coord)
	if coord[0] < 'A' || coord[0] >= 'A'+mb.GridWidth {
		return 0, 0, ErrInvalidCoord
	}
	n, err := strconv.Atoi(coord[1:])
	if err != nil || n < 1 || n > mb.GridHeight {
		return 0, 0, ErrInvalidCoord
	}
	return n - 1, int(coord[0] - 'A'), nil
}

func formatCoord(row, col int) string {
	return string(rune('A'+col)) + strconv.Itoa(row+1)
}

// toStates lays a grid out the way the board widget indexes it,
// column first.
func toStates(g mb.Grid) [10][10]gui.State {
	states := [10][10]gui.State{}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			switch g.View(row, col) {
			case mb.TileViewShip:
				states[col][row] = gui.Ship
			case mb.TileViewHit, mb.TileViewDestroyed:
				states[col][row] = gui.Hit
			case mb.TileViewMiss:
				states[col][row] = gui.Miss
			default:
				states[col][row] = gui.Empty
			}
		}
	}
	return states
}

// randomTargeter fires uniformly at cells the computer has not shot yet.
func randomTargeter(rng *rand.Rand) mb.Targeter {
	return mb.TargeterFunc(func(enemy mb.Grid) (int, int, bool) {
		open := make([]int, 0, enemy.Width()*enemy.Height())
		for row := 0; row < enemy.Height(); row++ {
			for col := 0; col < enemy.Width(); col++ {
				if enemy.View(row, col) == mb.TileViewSea {
					open = append(open, row*enemy.Width()+col)
				}
			}
		}
		if len(open) == 0 {
			return 0, 0, false
		}

		cell := open[rng.Intn(len(open))]
		return cell / enemy.Width(), cell % enemy.Width(), true
	})
}

type terminalBoard struct {
	ui          *gui.GUI
	playerBoard *gui.Board
	enemyBoard  *gui.Board
	status      *gui.Text
	shotResult  *gui.Text
	oppResult   *gui.Text
	accuracy    *gui.Text
}

func newTerminalBoard(gameUuid, playerUuid string) *terminalBoard {
	ui := gui.NewGUI(true)

	infoConfig := gui.TextConfig{BgColor: gui.Grey, FgColor: gui.Blue}
	ui.Draw(gui.NewText(xPBoard, 1, fmt.Sprintf("Game %s  player %s", gameUuid, playerUuid), &infoConfig))
	ui.Draw(gui.NewText(xPBoard, 2, "To exit press CTRL+C", nil))

	tb := &terminalBoard{
		ui:          ui,
		playerBoard: gui.NewBoard(xPBoard, yBoards, nil),
		enemyBoard:  gui.NewBoard(xOBoard, yBoards, nil),
		status:      gui.NewText(xPBoard, 3, "", nil),
		shotResult:  gui.NewText(xOBoard, yBoards-2, "", nil),
		oppResult:   gui.NewText(xPBoard, yBoards-2, "", nil),
		accuracy:    gui.NewText(xOBoard, 3, "", nil),
	}
	tb.status.SetBgColor(gui.Black)
	tb.status.SetFgColor(gui.White)

	ui.Draw(tb.playerBoard)
	ui.Draw(tb.enemyBoard)
	ui.Draw(tb.status)
	ui.Draw(tb.shotResult)
	ui.Draw(tb.oppResult)
	ui.Draw(tb.accuracy)

	return tb
}

func (tb *terminalBoard) render(human *mb.Player) {
	tb.playerBoard.SetStates(toStates(human.Grid()))
	tb.enemyBoard.SetStates(toStates(human.EnemyGrid()))
	tb.accuracy.SetText(fmt.Sprintf("Accuracy: %.1f%%  Score: %d", human.Accuracy(), human.Score()))
}

// humanTargeter waits for a click on the enemy board. Clicking a cell that
// was already fired at is refused on screen and the board listens again.
func (tb *terminalBoard) humanTargeter(ctx context.Context) mb.Targeter {
	return mb.TargeterFunc(func(enemy mb.Grid) (int, int, bool) {
		tb.status.SetText("Fire!")
		tb.status.SetFgColor(gui.Green)

		for {
			coord := tb.enemyBoard.Listen(ctx)
			if ctx.Err() != nil {
				return 0, 0, false
			}

			row, col, err := parseCoord(coord)
			if err != nil {
				continue
			}
			if enemy.View(row, col) != mb.TileViewSea {
				tb.status.SetText("You can't fire there!")
				continue
			}

			tb.status.SetText("Waiting for the computer")
			tb.status.SetFgColor(gui.Red)
			return row, col, true
		}
	})
}

// play drives the game on the calling goroutine until it is finished or
// ctx is done. It returns whether the game reached an end.
func (tb *terminalBoard) play(ctx context.Context, game *mb.Game, human *mb.Player) bool {
	tb.render(human)

	for !game.IsFinished() {
		shooter := game.CurrentPlayer()
		result, err := game.Attack()
		if err != nil {
			return false
		}

		text := fmt.Sprintf("%s on %s", result.String(), formatCoord(result.Row, result.Col))
		if shooter == human {
			tb.shotResult.SetText("You " + text)
		} else {
			tb.oppResult.SetText("Computer " + text)
		}
		tb.render(human)

		if ctx.Err() != nil {
			return false
		}
	}

	winner := "computer"
	if game.Winner() == human {
		winner = "you"
	}
	tb.status.SetText(fmt.Sprintf("Winner: %s", winner))
	return true
}
