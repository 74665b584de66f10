package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidSolution = errors.New("invalid solution")

// Puzzle is a freshly generated board together with the paths it was generated from.
// The solution is one valid answer, not necessarily the only one.
type Puzzle struct {
	Board    *Board
	Solution map[int][]Coord
}

// Verify checks that the solution connects every pair's endpoints with simple paths of adjacent
// cells that together cover every board cell exactly once.
func (that *Puzzle) Verify() error {
	board := that.Board
	seen := make(map[Coord]int, board.Size*board.Size)

	if len(that.Solution) != len(board.Pairs) {
		return fmt.Errorf("%w: %d paths for %d pairs", ErrInvalidSolution, len(that.Solution), len(board.Pairs))
	}

	for _, pair := range board.Pairs {
		path, ok := that.Solution[pair.ID]
		if !ok || len(path) < 2 {
			return fmt.Errorf("%w: pair %d has no path", ErrInvalidSolution, pair.ID)
		}

		first, last := path[0], path[len(path)-1]
		if !(first == pair.A && last == pair.B) && !(first == pair.B && last == pair.A) {
			return fmt.Errorf("%w: path of pair %d does not join its endpoints", ErrInvalidSolution, pair.ID)
		}

		for i, c := range path {
			if !board.Contains(c) {
				return fmt.Errorf("%w: %s is off the board", ErrInvalidSolution, c)
			}

			if owner, taken := seen[c]; taken {
				return fmt.Errorf("%w: %s used by pairs %d and %d", ErrInvalidSolution, c, owner, pair.ID)
			}
			seen[c] = pair.ID

			if i > 0 && !path[i-1].Adjacent(c) {
				return fmt.Errorf("%w: %s and %s are not adjacent", ErrInvalidSolution, path[i-1], c)
			}
		}
	}

	if len(seen) != board.Size*board.Size {
		return fmt.Errorf("%w: %d of %d cells covered", ErrInvalidSolution, len(seen), board.Size*board.Size)
	}

	return nil
}
