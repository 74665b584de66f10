package flow

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

// IsPathComplete reports whether the path joins its pair's two endpoints, in either order.
func IsPathComplete(board *entity.Board, path *entity.Path) bool {
	if len(path.Cells) < 2 {
		return false
	}

	pair, ok := board.PairByID(path.PairID)
	if !ok {
		return false
	}

	first, last := path.First(), path.Last()
	if !ownedBy(board, first, path.PairID) || !ownedBy(board, last, path.PairID) {
		return false
	}

	return (first == pair.A && last == pair.B) || (first == pair.B && last == pair.A)
}

// ResetPath undoes the board writes of a gesture: every cell the gesture filled is emptied again.
// Endpoints and cells the pair owned before the gesture are left alone.
func ResetPath(board *entity.Board, path *entity.Path) error {
	for _, c := range slices.Backward(path.Filled) {
		if err := board.Clear(c); err != nil {
			return fmt.Errorf("failed to reset path of pair %d: %w", path.PairID, err)
		}
	}

	path.Filled = nil

	return nil
}

// IsGameWon reports whether every cell of the board is occupied.
func IsGameWon(board *entity.Board) bool {
	return board.IsFull()
}

func ownedBy(board *entity.Board, c entity.Coord, pairID int) bool {
	cell := board.CellAt(c)
	return cell != nil && cell.PairID == pairID
}
