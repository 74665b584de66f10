package entity

import (
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
)

// Cell is the state of an occupied board cell. A nil *Cell is an empty cell.
type Cell struct {
	PairID int    `json:"pair_id"`
	Color  string `json:"color"`
}

// Pair is a colored pair of endpoints that has to be connected by a path.
type Pair struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	A     Coord  `json:"a"`
	B     Coord  `json:"b"`
}

// HasEndpoint reports whether c is one of the pair's two endpoints.
func (that Pair) HasEndpoint(c Coord) bool {
	return that.A == c || that.B == c
}

// Board is a square grid of cells plus the pairs placed on it.
type Board struct {
	Size  int       `json:"size"`
	Cells [][]*Cell `json:"cells"`
	Pairs []Pair    `json:"pairs"`
}

func NewBoard(size int) *Board {
	cells := make([][]*Cell, size)
	for row := range cells {
		cells[row] = make([]*Cell, size)
	}

	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// AddPair records a pair and writes its two endpoints. Both endpoint cells must be empty.
func (that *Board) AddPair(pair Pair) error {
	if pair.A == pair.B {
		return fmt.Errorf("%w: pair %d endpoints coincide at %s", apperror.ErrInvalidPlacement, pair.ID, pair.A)
	}

	if _, exists := that.PairByID(pair.ID); exists {
		return fmt.Errorf("%w: pair %d already on board", apperror.ErrInvalidPlacement, pair.ID)
	}

	for _, c := range []Coord{pair.A, pair.B} {
		if !that.Contains(c) {
			return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, c)
		}

		if !that.IsEmpty(c) {
			return fmt.Errorf("%w: endpoint %s is occupied", apperror.ErrInvalidPlacement, c)
		}
	}

	that.Pairs = append(that.Pairs, pair)
	that.Cells[pair.A.Row][pair.A.Col] = &Cell{PairID: pair.ID, Color: pair.Color}
	that.Cells[pair.B.Row][pair.B.Col] = &Cell{PairID: pair.ID, Color: pair.Color}

	return nil
}

// Contains reports whether c lies on the board.
func (that *Board) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < that.Size && c.Col >= 0 && c.Col < that.Size
}

// CellAt returns the cell at c, or nil if the cell is empty.
// Out-of-range coordinates panic: the input layer filters them with Contains.
func (that *Board) CellAt(c Coord) *Cell {
	that.mustContain(c)

	return that.Cells[c.Row][c.Col]
}

func (that *Board) IsEmpty(c Coord) bool {
	return that.CellAt(c) == nil
}

// Place writes pairID/color into c. Placing a pair onto a cell it already owns is a no-op.
func (that *Board) Place(c Coord, pairID int, color string) error {
	cell := that.CellAt(c)
	if cell != nil {
		if cell.PairID == pairID && cell.Color == color {
			return nil
		}

		return fmt.Errorf("%w: %s is owned by pair %d", apperror.ErrInvalidPlacement, c, cell.PairID)
	}

	that.Cells[c.Row][c.Col] = &Cell{PairID: pairID, Color: color}

	return nil
}

// Clear empties a non-endpoint cell. Endpoints are permanent.
func (that *Board) Clear(c Coord) error {
	if that.IsEndpoint(c) {
		return fmt.Errorf("%w: %s is an endpoint", apperror.ErrInvalidPlacement, c)
	}

	that.Cells[c.Row][c.Col] = nil

	return nil
}

// IsEndpoint reports whether c is an endpoint of any pair on the board.
func (that *Board) IsEndpoint(c Coord) bool {
	that.mustContain(c)

	for _, pair := range that.Pairs {
		if pair.HasEndpoint(c) {
			return true
		}
	}

	return false
}

func (that *Board) PairByID(id int) (Pair, bool) {
	for _, pair := range that.Pairs {
		if pair.ID == id {
			return pair, true
		}
	}

	return Pair{}, false
}

// IsFull reports whether every cell is occupied.
func (that *Board) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == nil {
				return false
			}
		}
	}

	return true
}

// EmptyCount returns the number of empty cells.
func (that *Board) EmptyCount() int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == nil {
				count++
			}
		}
	}

	return count
}

// Clone returns a deep copy of the board.
func (that *Board) Clone() *Board {
	clone := NewBoard(that.Size)
	clone.Pairs = append([]Pair(nil), that.Pairs...)

	for row := range that.Cells {
		for col, cell := range that.Cells[row] {
			if cell != nil {
				copied := *cell
				clone.Cells[row][col] = &copied
			}
		}
	}

	return clone
}

func (that *Board) mustContain(c Coord) {
	if !that.Contains(c) {
		panic(fmt.Sprintf("coordinate %s is outside a %dx%d board", c, that.Size, that.Size))
	}
}
