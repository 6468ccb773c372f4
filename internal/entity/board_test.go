package entity

import (
	"testing"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	t.Run("Generates rows, columns and diagonals for 3x3", func(t *testing.T) {
		// Given: a 3x3 board
		lines := Lines(3)

		// Then: 3 rows + 3 columns + 2 diagonals, in that order
		require.Len(t, lines, 8)
		assert.Equal(t, []int{0, 1, 2}, lines[0])
		assert.Equal(t, []int{3, 4, 5}, lines[1])
		assert.Equal(t, []int{0, 3, 6}, lines[3])
		assert.Equal(t, []int{0, 4, 8}, lines[6])
		assert.Equal(t, []int{2, 4, 6}, lines[7])
	})

	t.Run("Generates rows, columns and diagonals for 4x4", func(t *testing.T) {
		// Given: a 4x4 board
		lines := Lines(4)

		// Then: 4 rows + 4 columns + 2 diagonals
		require.Len(t, lines, 10)
		assert.Equal(t, []int{0, 1, 2, 3}, lines[0])
		assert.Equal(t, []int{0, 4, 8, 12}, lines[4])
		assert.Equal(t, []int{0, 5, 10, 15}, lines[8])
		assert.Equal(t, []int{3, 6, 9, 12}, lines[9])
	})
}

func TestBoard_Apply(t *testing.T) {
	t.Run("Places a symbol into an empty cell", func(t *testing.T) {
		// Given: an empty 3x3 board
		board := NewBoard(3)

		// When: applying X to cell 4
		err := board.Apply(4, SymbolX)

		// Then: the cell holds X
		require.NoError(t, err)
		assert.Equal(t, SymbolX, board.Cells[4])
	})

	t.Run("Rejects an out-of-range index and leaves the board unchanged", func(t *testing.T) {
		// Given: an empty 3x3 board
		board := NewBoard(3)
		before := board.Clone()

		// When: applying to cell 9
		err := board.Apply(9, SymbolX)

		// Then: InvalidMove, board untouched
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, board.Cells)
	})

	t.Run("Rejects a negative index", func(t *testing.T) {
		board := NewBoard(3)

		err := board.Apply(-1, SymbolO)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Never overwrites an occupied cell", func(t *testing.T) {
		// Given: a board with X at cell 0
		board := NewBoard(3)
		require.NoError(t, board.Apply(0, SymbolX))
		before := board.Clone()

		// When: O tries the same cell
		err := board.Apply(0, SymbolO)

		// Then: InvalidMove, cell still X
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, board.Cells)
		assert.Equal(t, SymbolX, board.Cells[0])
	})
}

func TestBoard_Evaluate(t *testing.T) {
	t.Run("Returns X for a completed top row on 3x3", func(t *testing.T) {
		// Given: X on the whole top row
		board := Board{Size: 3, Cells: []string{
			SymbolX, SymbolX, SymbolX,
			SymbolO, SymbolO, "",
			"", "", "",
		}}

		// When: evaluating
		winner, line := board.Evaluate()

		// Then: X wins with the row line
		assert.Equal(t, SymbolX, winner)
		assert.Equal(t, []int{0, 1, 2}, line)
	})

	t.Run("Returns O for a completed column on 3x3", func(t *testing.T) {
		board := Board{Size: 3, Cells: []string{
			SymbolO, SymbolX, "",
			SymbolO, SymbolX, "",
			SymbolO, "", SymbolX,
		}}

		winner, line := board.Evaluate()

		assert.Equal(t, SymbolO, winner)
		assert.Equal(t, []int{0, 3, 6}, line)
	})

	t.Run("Returns the anti-diagonal win on 4x4", func(t *testing.T) {
		// Given: O holds 3, 6, 9, 12 on a 4x4 board
		board := NewBoard(4)
		for _, index := range []int{3, 6, 9, 12} {
			board.Cells[index] = SymbolO
		}
		for _, index := range []int{0, 1, 2} {
			board.Cells[index] = SymbolX
		}

		// When: evaluating
		winner, line := board.Evaluate()

		// Then: O wins along the anti-diagonal
		assert.Equal(t, SymbolO, winner)
		assert.Equal(t, []int{3, 6, 9, 12}, line)
	})

	t.Run("Returns the first line in scan order when two lines complete at once", func(t *testing.T) {
		// Given: X completes both the top row and the left column via cell 0
		board := Board{Size: 3, Cells: []string{
			SymbolX, SymbolX, SymbolX,
			SymbolX, SymbolO, SymbolO,
			SymbolX, SymbolO, "",
		}}

		// When: evaluating
		winner, line := board.Evaluate()

		// Then: the row is reported, rows scan before columns
		assert.Equal(t, SymbolX, winner)
		assert.Equal(t, []int{0, 1, 2}, line)
	})

	t.Run("Returns draw on a full 3x3 board without a line", func(t *testing.T) {
		// Given: a full board where no line is held by one symbol
		board := Board{Size: 3, Cells: []string{
			SymbolX, SymbolX, SymbolO,
			SymbolO, SymbolO, SymbolX,
			SymbolX, SymbolO, SymbolX,
		}}

		// When: evaluating
		winner, line := board.Evaluate()

		// Then: draw, no line
		assert.Equal(t, WinnerDraw, winner)
		assert.Empty(t, line)
	})

	t.Run("Returns no result while empty cells remain", func(t *testing.T) {
		board := NewBoard(4)
		board.Cells[0] = SymbolX

		winner, line := board.Evaluate()

		assert.Empty(t, winner)
		assert.Empty(t, line)
	})
}

func TestToggleSymbol(t *testing.T) {
	assert.Equal(t, SymbolO, ToggleSymbol(SymbolX))
	assert.Equal(t, SymbolX, ToggleSymbol(SymbolO))
}
