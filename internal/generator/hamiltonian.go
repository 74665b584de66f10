package generator

import (
	"math/rand"
	"slices"

	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

// backbiteRounds is the number of backbite moves per cell used to shuffle the serpentine start.
const backbiteRounds = 20

// hamiltonianPath walks every cell of the grid once, moving only between adjacent cells.
type hamiltonianPath struct {
	size  int
	cells []entity.Coord
	index []int // position of each cell in cells, addressed by row*size+col
}

// newSerpentine returns the boustrophedon path: left to right on even rows, right to left on odd ones.
func newSerpentine(size int) *hamiltonianPath {
	path := &hamiltonianPath{
		size:  size,
		cells: make([]entity.Coord, 0, size*size),
		index: make([]int, size*size),
	}

	for row := 0; row < size; row++ {
		for i := 0; i < size; i++ {
			col := i
			if row%2 == 1 {
				col = size - 1 - i
			}
			path.cells = append(path.cells, entity.Coord{Row: row, Col: col})
		}
	}
	path.reindex(0, len(path.cells))

	return path
}

// shuffle applies random backbite moves. Each move keeps the walk Hamiltonian.
func (that *hamiltonianPath) shuffle(rng *rand.Rand, moves int) {
	for range moves {
		that.backbite(rng)
	}
}

// backbite picks a random end of the path and a random grid neighbor of it. The neighbor is already
// on the path, so linking the end to it closes a loop; reversing the part of the path past the
// neighbor opens the loop again at a different place.
func (that *hamiltonianPath) backbite(rng *rand.Rand) {
	if len(that.cells) < 3 {
		return
	}

	if rng.Intn(2) == 0 {
		slices.Reverse(that.cells)
		that.reindex(0, len(that.cells))
	}

	last := len(that.cells) - 1
	end := that.cells[last]
	neighbors := end.Neighbors(that.size)
	neighbor := neighbors[rng.Intn(len(neighbors))]

	i := that.index[that.at(neighbor)]
	if i == last-1 {
		return
	}

	slices.Reverse(that.cells[i+1:])
	that.reindex(i+1, len(that.cells))
}

func (that *hamiltonianPath) at(c entity.Coord) int {
	return c.Row*that.size + c.Col
}

func (that *hamiltonianPath) reindex(from, to int) {
	for i := from; i < to; i++ {
		that.index[that.at(that.cells[i])] = i
	}
}
