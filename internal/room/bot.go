package room

import "github.com/rocketscienceinc/gridroom-backend/internal/entity"

// chooseCell picks the computer's move. The policy is fixed so games replay
// identically: take an immediate win, else block the opponent's immediate
// win, else the center on odd-sized boards, else the empty cell with the
// most lines still open for the computer, lowest index breaking ties.
// Returns -1 only on a full board.
func chooseCell(board *entity.Board, self, opponent string) int {
	if cell := completingCell(board, self); cell >= 0 {
		return cell
	}

	if cell := completingCell(board, opponent); cell >= 0 {
		return cell
	}

	if board.Size%2 == 1 {
		center := len(board.Cells) / 2
		if board.Cells[center] == entity.EmptyCell {
			return center
		}
	}

	return mostOpenCell(board, opponent)
}

// completingCell - finds the lowest-index empty cell that completes a line
// for the symbol, or -1.
func completingCell(board *entity.Board, symbol string) int {
	best := -1

	for _, line := range entity.Lines(board.Size) {
		empty := -1
		count := 0

		for _, index := range line {
			switch board.Cells[index] {
			case symbol:
				count++
			case entity.EmptyCell:
				if empty >= 0 {
					empty = -2 // more than one gap, line can't be completed now
				} else if empty == -1 {
					empty = index
				}
			}
		}

		if count == len(line)-1 && empty >= 0 {
			if best == -1 || empty < best {
				best = empty
			}
		}
	}

	return best
}

// mostOpenCell - scores every empty cell by the number of lines through it
// that the opponent has not touched yet.
func mostOpenCell(board *entity.Board, opponent string) int {
	best := -1
	bestScore := -1

	for index, cell := range board.Cells {
		if cell != entity.EmptyCell {
			continue
		}

		score := 0
		for _, line := range entity.Lines(board.Size) {
			if !contains(line, index) {
				continue
			}

			open := true
			for _, i := range line {
				if board.Cells[i] == opponent {
					open = false
					break
				}
			}
			if open {
				score++
			}
		}

		if score > bestScore {
			best = index
			bestScore = score
		}
	}

	return best
}

func contains(line []int, index int) bool {
	for _, i := range line {
		if i == index {
			return true
		}
	}
	return false
}
