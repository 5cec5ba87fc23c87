// Package engine applies the game rules to a single owned game state.
// Invalid moves never error: they leave the state untouched and report
// a typed rejection, since illegal actions are unreachable through a
// well-behaved UI but must be tolerated.
package engine

import "github.com/pixelforge/tictactoe-backend/internal/entity"

// MoveOutcome reports whether ApplyMove changed the state and, if not, why.
type MoveOutcome int

const (
	MoveAccepted MoveOutcome = iota
	MoveRejectedOutOfRange
	MoveRejectedGameOver
	MoveRejectedOccupied
)

func (that MoveOutcome) Accepted() bool {
	return that == MoveAccepted
}

func (that MoveOutcome) String() string {
	switch that {
	case MoveAccepted:
		return "accepted"
	case MoveRejectedOutOfRange:
		return "rejected: cell out of range"
	case MoveRejectedGameOver:
		return "rejected: game is over"
	case MoveRejectedOccupied:
		return "rejected: cell is occupied"
	default:
		return "unknown"
	}
}

// Engine owns one game and is the only writer of its state.
type Engine struct {
	game *entity.Game
}

func New(game *entity.Game) *Engine {
	return &Engine{game: game}
}

// Game returns the owned state.
func (that *Engine) Game() *entity.Game {
	return that.game
}

// ApplyMove writes the current player's mark into the cell, then
// evaluates the result in strict order: winning line first (the turn
// does not alternate on the winning move), then a full-board draw,
// otherwise the turn alternates. A rejected move is a no-op.
func (that *Engine) ApplyMove(cell int) MoveOutcome {
	game := that.game

	if cell < 0 || cell >= len(game.Board) {
		return MoveRejectedOutOfRange
	}

	if game.IsFinished() {
		return MoveRejectedGameOver
	}

	if game.Board[cell] != entity.EmptyCell {
		return MoveRejectedOccupied
	}

	game.Board[cell] = game.Turn

	if winner, line, ok := game.FindWinningLine(); ok {
		game.Winner = winner
		game.WinLine = &line
		game.Status = entity.StatusFinished

		return MoveAccepted
	}

	if game.IsFull() {
		game.Status = entity.StatusFinished

		return MoveAccepted
	}

	game.Turn = entity.OtherMark(game.Turn)

	return MoveAccepted
}

// Reset unconditionally replaces the state with a fresh board, keeping
// the game ID. X always moves first.
func (that *Engine) Reset() {
	*that.game = *entity.NewGame(that.game.ID)
}
