package generator

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

const (
	// MinPathLength keeps every pair at least one interior cell apart.
	MinPathLength = 3

	minBoardSize = 2
)

// Palette holds the display colors handed out to pairs in order.
var Palette = []string{
	"red", "blue", "green", "yellow", "orange", "cyan",
	"magenta", "brown", "purple", "pink", "lime", "teal",
}

// Generator builds boards backwards from a solution: it first lays a random Hamiltonian path over
// the grid, cuts it into one segment per pair and keeps only the segment ends as endpoints.
// Every board it returns is solvable by the segments it was cut from.
type Generator struct {
	maxAttempts int
}

func New(maxAttempts int) *Generator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Generator{maxAttempts: maxAttempts}
}

// Generate produces a puzzle of pairCount pairs on a size×size grid. The same seed yields the same puzzle.
func (that *Generator) Generate(seed int64, size, pairCount int) (*entity.Puzzle, error) {
	if err := validate(size, pairCount); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed)) //nolint: gosec // puzzles are not secrets

	walk := newSerpentine(size)
	walk.shuffle(rng, backbiteRounds*size*size)

	for range that.maxAttempts {
		segments := cut(rng, walk.cells, pairCount)
		if hasAdjacentEnds(segments) {
			// reshape the walk a little so the next cut sees a different layout
			walk.shuffle(rng, size*size)
			continue
		}

		puzzle, err := assemble(size, segments)
		if err != nil {
			return nil, err
		}

		return puzzle, nil
	}

	return nil, fmt.Errorf("%w: no partition of a %dx%d grid into %d pairs after %d attempts",
		apperror.ErrGeneration, size, size, pairCount, that.maxAttempts)
}

func validate(size, pairCount int) error {
	if size < minBoardSize {
		return fmt.Errorf("%w: board size %d is too small", apperror.ErrGeneration, size)
	}

	if pairCount < 1 || pairCount > len(Palette) {
		return fmt.Errorf("%w: pair count %d outside 1..%d", apperror.ErrGeneration, pairCount, len(Palette))
	}

	if pairCount*MinPathLength > size*size {
		return fmt.Errorf("%w: %d pairs do not fit on a %dx%d grid", apperror.ErrGeneration, pairCount, size, size)
	}

	return nil
}

// cut splits cells into count consecutive segments, each at least MinPathLength long.
// The spare cells are spread by drawing count-1 random bars over them.
func cut(rng *rand.Rand, cells []entity.Coord, count int) [][]entity.Coord {
	spare := len(cells) - count*MinPathLength

	bars := make([]int, count+1)
	bars[count] = spare
	for i := 1; i < count; i++ {
		bars[i] = rng.Intn(spare + 1)
	}
	slices.Sort(bars[1:count])

	segments := make([][]entity.Coord, 0, count)
	start := 0
	for i := range count {
		length := MinPathLength + bars[i+1] - bars[i]
		segments = append(segments, cells[start:start+length])
		start += length
	}

	return segments
}

// hasAdjacentEnds reports whether some segment's two ends touch: such a pair could be joined
// directly, which makes the generated interior cells pointless.
func hasAdjacentEnds(segments [][]entity.Coord) bool {
	for _, segment := range segments {
		if segment[0].Adjacent(segment[len(segment)-1]) {
			return true
		}
	}

	return false
}

func assemble(size int, segments [][]entity.Coord) (*entity.Puzzle, error) {
	board := entity.NewBoard(size)
	solution := make(map[int][]entity.Coord, len(segments))

	for i, segment := range segments {
		pair := entity.Pair{
			ID:    i + 1,
			Color: Palette[i],
			A:     segment[0],
			B:     segment[len(segment)-1],
		}

		if err := board.AddPair(pair); err != nil {
			return nil, fmt.Errorf("failed to add pair %d: %w", pair.ID, err)
		}

		solution[pair.ID] = append([]entity.Coord(nil), segment...)
	}

	puzzle := &entity.Puzzle{Board: board, Solution: solution}
	if err := puzzle.Verify(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrGeneration, err)
	}

	return puzzle, nil
}
