package entity

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

// WinCombos lists every winning line: 3 rows, 3 columns, 2 diagonals.
// FindWinningLine scans them in this order, so the reported line is
// deterministic.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game is the complete state of one board. Cells are indexed 0-8 in
// row-major order. Winner stays empty on a draw; WinLine is set only
// when Winner is.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Turn    string    `json:"player_turn"`
	Winner  string    `json:"winner,omitempty"`
	WinLine *[3]int   `json:"win_line,omitempty"`
	Status  string    `json:"status"`
}

// NewGame returns a fresh board with X to move.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{},
		Turn:   MarkX,
		Status: StatusOngoing,
	}
}

// FindWinningLine scans WinCombos in fixed order and returns the first
// line whose three cells hold the same mark.
func (that *Game) FindWinningLine() (string, [3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, combo, true
		}
	}

	return EmptyCell, [3]int{}, false
}

// IsFull reports whether every cell is occupied. A full board with a
// winning line is a win, not a draw, so callers must check
// FindWinningLine first.
func (that *Game) IsFull() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// OtherMark returns the opposing mark.
func OtherMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}

	return MarkX
}
