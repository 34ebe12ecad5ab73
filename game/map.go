package game

import (
	"fmt"
	"strings"
)

type Terrain uint8

const (
	Sea Terrain = iota
	Land
)

func (t Terrain) String() string {
	switch t {
	case Sea:
		return "sea"
	case Land:
		return "land"
	default:
		return fmt.Sprintf("terrain(%d)", t)
	}
}

// Glyphs used by the textual terrain layout (snapshots, test fixtures).
const (
	seaGlyph  = '.'
	landGlyph = '#'
)

// Coord addresses one cell of the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// up, down, left, right
var directions = [4]Coord{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Neighbors returns the four orthogonal neighbours of c, some of which may lie
// outside the grid.
func (c Coord) Neighbors() [4]Coord {
	var n [4]Coord
	for i, d := range directions {
		n[i] = Coord{X: c.X + d.X, Y: c.Y + d.Y}
	}
	return n
}

// Distance is the Manhattan distance between two coordinates.
func (c Coord) Distance(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Adjacent reports whether o is one of c's four orthogonal neighbours.
func (c Coord) Adjacent(o Coord) bool {
	return c.Distance(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cell is one grid position. Troops is only meaningful while Owner is set.
type Cell struct {
	Terrain Terrain
	Owner   int
	Troops  int
}

func (c Cell) Claimed() bool {
	return c.Owner != NoOwner
}

// Grid is the square game board, stored row-major.
type Grid struct {
	Size  int
	Cells []Cell
}

// NewGrid creates an all-sea grid of the given side.
func NewGrid(size int) *Grid {
	g := &Grid{
		Size:  size,
		Cells: make([]Cell, size*size),
	}
	for i := range g.Cells {
		g.Cells[i].Owner = NoOwner
	}
	return g
}

// ParseGrid builds a grid from rows of '#' (land) and '.' (sea).
func ParseGrid(rows ...string) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}
	g := NewGrid(size)
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d", y, len(row), size)
		}
		for x := 0; x < size; x++ {
			switch row[x] {
			case landGlyph:
				g.Cells[y*size+x].Terrain = Land
			case seaGlyph:
			default:
				return nil, fmt.Errorf("parse grid: unexpected %q at %v", row[x], Coord{x, y})
			}
		}
	}
	return g, nil
}

// NewLandGrid creates a grid with no sea at all.
func NewLandGrid(size int) *Grid {
	g := NewGrid(size)
	for i := range g.Cells {
		g.Cells[i].Terrain = Land
	}
	return g
}

// Layout renders the terrain as ParseGrid rows joined without separators.
func (g *Grid) Layout() string {
	var b strings.Builder
	b.Grow(len(g.Cells))
	for _, cell := range g.Cells {
		if cell.Terrain == Land {
			b.WriteByte(landGlyph)
		} else {
			b.WriteByte(seaGlyph)
		}
	}
	return b.String()
}

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Size && c.Y < g.Size
}

// At returns the cell at c, or nil when c is off the grid.
func (g *Grid) At(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Cells[c.Y*g.Size+c.X]
}

func (g *Grid) IsLand(c Coord) bool {
	cell := g.At(c)
	return cell != nil && cell.Terrain == Land
}

// Coord converts a row-major cell index back into a coordinate.
func (g *Grid) Coord(i int) Coord {
	return Coord{X: i % g.Size, Y: i / g.Size}
}

// LandCoords lists every land coordinate in row-major order.
func (g *Grid) LandCoords() []Coord {
	var coords []Coord
	for i, cell := range g.Cells {
		if cell.Terrain == Land {
			coords = append(coords, g.Coord(i))
		}
	}
	return coords
}

func (g *Grid) LandCount() int {
	count := 0
	for _, cell := range g.Cells {
		if cell.Terrain == Land {
			count++
		}
	}
	return count
}

func (g *Grid) Copy() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Size: g.Size, Cells: cells}
}
