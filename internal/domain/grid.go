package domain

import (
    "errors"
    "fmt"
)

// Errors returned by domain operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
    ErrGameOver    = errors.New("game over")
    ErrUnknownMark = errors.New("unknown mark")
)

// OccupiedError reports a move onto a cell that already holds a mark.
type OccupiedError struct {
    At    Coord
    Owner Mark
}

func (e *OccupiedError) Error() string {
    return fmt.Sprintf("cell %v already claimed by %v", e.At, e.Owner)
}

func (e *OccupiedError) Is(target error) bool { return target == ErrOccupied }

// Grid is a fixed 3x3 board stored row-major. It is a value type: copying a
// Grid copies every cell.
type Grid [Size * Size]Mark

// At returns the mark at c, or NoMark when c is out of bounds.
func (g Grid) At(c Coord) Mark {
    if !c.InBounds() {
        return NoMark
    }
    return g[c.Index()]
}

// IsEmpty reports whether c is on the board and unclaimed.
func (g Grid) IsEmpty(c Coord) bool {
    return c.InBounds() && g[c.Index()] == NoMark
}

// Set claims c for m. A claimed cell is never overwritten.
func (g *Grid) Set(c Coord, m Mark) error {
    if !c.InBounds() {
        return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
    }
    if owner := g[c.Index()]; owner != NoMark {
        return &OccupiedError{At: c, Owner: owner}
    }
    g[c.Index()] = m
    return nil
}

// Empty lists the unclaimed cells in row-major order.
func (g Grid) Empty() []Coord {
    out := make([]Coord, 0, len(g))
    for _, c := range AllCoords {
        if g[c.Index()] == NoMark {
            out = append(out, c)
        }
    }
    return out
}

// Filled counts claimed cells.
func (g Grid) Filled() int {
    n := 0
    for _, m := range g {
        if m != NoMark {
            n++
        }
    }
    return n
}

func (g Grid) Full() bool { return g.Filled() == len(g) }

// Winner returns the mark owning a complete line, or NoMark.
func (g Grid) Winner() Mark {
    for _, l := range AllLines {
        cells := l.Cells()
        first := g.At(cells[0])
        if first == NoMark {
            continue
        }
        if g.At(cells[1]) == first && g.At(cells[2]) == first {
            return first
        }
    }
    return NoMark
}

// String renders the grid as three rows of X, O and '-'.
func (g Grid) String() string {
    b := make([]byte, 0, Size*(Size+1))
    for r := 0; r < Size; r++ {
        for c := 0; c < Size; c++ {
            b = append(b, g.At(Coord{Col: c, Row: r}).String()...)
        }
        if r < Size-1 {
            b = append(b, '\n')
        }
    }
    return string(b)
}

// ParseGrid reads a row-major string of 9 cells. 'X'/'x' and 'O'/'o' are
// marks; '-', '.', '_' and ' ' are empty. Newlines are ignored.
func ParseGrid(s string) (Grid, error) {
    var g Grid
    i := 0
    for _, ch := range s {
        if ch == '\n' || ch == '\r' {
            continue
        }
        if i >= len(g) {
            return Grid{}, fmt.Errorf("grid has more than %d cells", len(g))
        }
        switch ch {
        case 'X', 'x':
            g[i] = X
        case 'O', 'o':
            g[i] = O
        case '-', '.', '_', ' ':
            g[i] = NoMark
        default:
            return Grid{}, fmt.Errorf("grid cell %d: unexpected %q", i, ch)
        }
        i++
    }
    if i != len(g) {
        return Grid{}, fmt.Errorf("grid has %d cells, want %d", i, len(g))
    }
    return g, nil
}
