package core

import (
	"fmt"
	"math/rand"
)

// CellKind classifies a board cell.
type CellKind uint8

const (
	CellEmpty   CellKind = iota // Buildable ground next to the path
	CellPath                    // Part of the enemy route
	CellBlocked                 // Neither path nor buildable
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "Empty"
	case CellPath:
		return "Path"
	case CellBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Cell is one square of the board.
// A Path cell is never occupied.
type Cell struct {
	Coord    Coord
	Kind     CellKind
	Occupied bool // A tower stands here
}

// Buildable reports whether a tower may be placed on the cell.
func (c Cell) Buildable() bool {
	return c.Kind == CellEmpty && !c.Occupied
}

// walkDeltas are the four cardinal moves in candidate order.
var walkDeltas = [4]Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Board is the grid the game is played on.
// Cells are stored in row-major order: index = y*W + x.
type Board struct {
	W int
	H int

	cells []Cell
	index map[Coord]int
	path  []Coord
	start Coord
	goal  Coord
	rng   *rand.Rand
}

// NewBoard creates a board of w*h cells with the route running from start to goal.
// The path is not generated until GeneratePath is called.
func NewBoard(w, h int, start, goal Coord, rng *rand.Rand) (*Board, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, w, h)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	b := &Board{W: w, H: h, start: start, goal: goal, rng: rng}
	if !b.InBounds(start) || !b.InBounds(goal) {
		return nil, fmt.Errorf("%w: route %v -> %v on %dx%d board", ErrOutOfBounds, start, goal, w, h)
	}
	b.allocate()
	return b, nil
}

// allocate rebuilds the cell storage with every cell Empty.
func (b *Board) allocate() {
	b.cells = make([]Cell, b.W*b.H)
	b.index = make(map[Coord]int, b.W*b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			i := y*b.W + x
			c := C(x, y)
			b.cells[i] = Cell{Coord: c, Kind: CellEmpty}
			b.index[c] = i
		}
	}
	b.path = b.path[:0]
}

// InBounds returns true if the coordinate is within the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// GeneratePath walks from start to end, each step picking uniformly among the
// cardinal moves that close the distance to end on one axis. Afterwards every
// non-path cell is Blocked except the ring of cells touching the path, which
// becomes Empty. Any earlier route is discarded first. Towers keep their cells
// only where those cells stay Empty.
//
// The walk cannot get stuck on a well-formed board. If it ever does, the
// partial path is kept, zoning still runs and ErrPathIncomplete is returned.
func (b *Board) GeneratePath(start, end Coord) error {
	if !b.InBounds(start) || !b.InBounds(end) {
		return fmt.Errorf("%w: route %v -> %v", ErrOutOfBounds, start, end)
	}
	b.start, b.goal = start, end
	for _, c := range b.path {
		b.cells[b.index[c]].Kind = CellEmpty
	}
	b.path = b.path[:0]

	cur := start
	b.markPath(cur)

	var err error
	var buf [4]Coord
	for cur != end {
		candidates := buf[:0]
		for _, d := range walkDeltas {
			next := cur.Add(d.X, d.Y)
			if next.Manhattan(end) < cur.Manhattan(end) {
				candidates = append(candidates, next)
			}
		}
		if len(candidates) == 0 {
			err = fmt.Errorf("%w at %v", ErrPathIncomplete, cur)
			break
		}
		cur = candidates[b.rng.Intn(len(candidates))]
		b.markPath(cur)
	}

	b.zone()
	return err
}

func (b *Board) markPath(c Coord) {
	cell := &b.cells[b.index[c]]
	cell.Kind = CellPath
	cell.Occupied = false
	b.path = append(b.path, c)
}

// zone blocks everything off the path, then opens the halo around it.
// Only Empty cells may stay occupied.
func (b *Board) zone() {
	for i := range b.cells {
		if b.cells[i].Kind != CellPath {
			b.cells[i].Kind = CellBlocked
		}
	}
	for _, p := range b.path {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				i, ok := b.index[p.Add(dx, dy)]
				if ok && b.cells[i].Kind != CellPath {
					b.cells[i].Kind = CellEmpty
				}
			}
		}
	}
	for i := range b.cells {
		if b.cells[i].Kind != CellEmpty {
			b.cells[i].Occupied = false
		}
	}
}

// RegeneratePath drops all tower occupancy and walks a fresh route between
// the same endpoints using the next values of the board's random sequence.
func (b *Board) RegeneratePath() error {
	for i := range b.cells {
		b.cells[i].Occupied = false
	}
	return b.GeneratePath(b.start, b.goal)
}

// Reset rebuilds the whole grid and generates a new path.
func (b *Board) Reset() error {
	b.allocate()
	return b.GeneratePath(b.start, b.goal)
}

// CellAt maps a world position to the nearest cell.
// Returns false when the position falls outside the board.
func (b *Board) CellAt(pos Vec) (Coord, bool) {
	c := pos.Round()
	if _, ok := b.index[c]; !ok {
		return Coord{}, false
	}
	return c, true
}

// Cell returns the cell at c, or false when c is out of bounds.
func (b *Board) Cell(c Coord) (Cell, bool) {
	i, ok := b.index[c]
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// Cells returns a copy of all cells in row-major order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Buildable reports whether a tower may be placed at c.
func (b *Board) Buildable(c Coord) bool {
	cell, ok := b.Cell(c)
	return ok && cell.Buildable()
}

// Place marks c as occupied by a tower.
func (b *Board) Place(c Coord) error {
	i, ok := b.index[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	cell := &b.cells[i]
	if cell.Occupied {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	if cell.Kind != CellEmpty {
		return fmt.Errorf("%w: %v is %s", ErrNotBuildable, c, cell.Kind)
	}
	cell.Occupied = true
	return nil
}

// Release frees a cell previously taken by Place.
func (b *Board) Release(c Coord) error {
	i, ok := b.index[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if !b.cells[i].Occupied {
		return fmt.Errorf("%w: %v", ErrNotOccupied, c)
	}
	b.cells[i].Occupied = false
	return nil
}

// Path returns a copy of the route from spawn (index 0) to goal.
func (b *Board) Path() []Coord {
	out := make([]Coord, len(b.path))
	copy(out, b.path)
	return out
}

// PathPositions returns the route as world positions.
func (b *Board) PathPositions() []Vec {
	out := make([]Vec, len(b.path))
	for i, c := range b.path {
		out[i] = c.Center()
	}
	return out
}

// PathLen returns the number of cells on the route.
func (b *Board) PathLen() int {
	return len(b.path)
}

// Start returns the spawn cell.
func (b *Board) Start() Coord {
	return b.start
}

// Goal returns the cell enemies try to reach.
func (b *Board) Goal() Coord {
	return b.goal
}
