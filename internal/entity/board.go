package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"

	SymbolX    = "X"
	SymbolO    = "O"
	WinnerDraw = "draw"

	EmptyCell = ""
)

const (
	ModePVP = "pvp"
	ModePVC = "pvc"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 4
)

// Board is a flat row-major N×N grid. Cells are written once and never
// overwritten; turn order is not the board's concern.
type Board struct {
	Size  int
	Cells []string
}

func NewBoard(size int) Board {
	return Board{
		Size:  size,
		Cells: make([]string, size*size),
	}
}

// Lines returns every winning line for the given size: rows first, then
// columns, then the main diagonal, then the anti-diagonal. Evaluate relies
// on this order for deterministic results.
func Lines(size int) [][]int {
	lines := make([][]int, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]int, 0, size)
		for col := 0; col < size; col++ {
			line = append(line, row*size+col)
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]int, 0, size)
		for row := 0; row < size; row++ {
			line = append(line, row*size+col)
		}
		lines = append(lines, line)
	}

	diagonal := make([]int, 0, size)
	for i := 0; i < size; i++ {
		diagonal = append(diagonal, i*size+i)
	}
	lines = append(lines, diagonal)

	antiDiagonal := make([]int, 0, size)
	for i := 0; i < size; i++ {
		antiDiagonal = append(antiDiagonal, i*size+(size-1-i))
	}
	lines = append(lines, antiDiagonal)

	return lines
}

// Apply - puts the symbol into the cell. The board is left untouched when
// the move is rejected.
func (that *Board) Apply(index int, symbol string) error {
	if index < 0 || index >= len(that.Cells) {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, index)
	}

	if that.Cells[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, index)
	}

	that.Cells[index] = symbol

	return nil
}

// Evaluate - checks the board for a terminal state. It returns the winning
// symbol and its line, WinnerDraw with no line on a full board, or an empty
// winner while the game continues.
func (that *Board) Evaluate() (string, []int) {
	for _, line := range Lines(that.Size) {
		first := that.Cells[line[0]]
		if first == EmptyCell {
			continue
		}

		complete := true
		for _, index := range line[1:] {
			if that.Cells[index] != first {
				complete = false
				break
			}
		}

		if complete {
			return first, line
		}
	}

	for _, cell := range that.Cells {
		if cell == EmptyCell {
			return "", nil
		}
	}

	return WinnerDraw, nil
}

func (that *Board) Clear() {
	for i := range that.Cells {
		that.Cells[i] = EmptyCell
	}
}

func (that *Board) Clone() []string {
	cells := make([]string, len(that.Cells))
	copy(cells, that.Cells)
	return cells
}

func ToggleSymbol(symbol string) string {
	if symbol == SymbolX {
		return SymbolO
	}
	return SymbolX
}
