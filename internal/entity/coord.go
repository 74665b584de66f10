package entity

import "fmt"

// Coord addresses a board cell by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Adjacent reports whether two coordinates are at Manhattan distance 1.
func (that Coord) Adjacent(other Coord) bool {
	return abs(that.Row-other.Row)+abs(that.Col-other.Col) == 1
}

// Neighbors returns the orthogonal neighbors of the coordinate that lie on a size×size grid.
func (that Coord) Neighbors(size int) []Coord {
	candidates := [4]Coord{
		{Row: that.Row - 1, Col: that.Col},
		{Row: that.Row + 1, Col: that.Col},
		{Row: that.Row, Col: that.Col - 1},
		{Row: that.Row, Col: that.Col + 1},
	}

	neighbors := make([]Coord, 0, len(candidates))
	for _, c := range candidates {
		if c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size {
			neighbors = append(neighbors, c)
		}
	}

	return neighbors
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
