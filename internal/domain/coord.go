package domain

import "fmt"

// Size is the side length of the board.
const Size = 3

// Coord addresses a cell by column and row, both in [0, Size).
type Coord struct {
    Col int
    Row int
}

// C is shorthand for Coord{Col: col, Row: row}.
func C(col, row int) Coord { return Coord{Col: col, Row: row} }

// Center is the middle cell.
var Center = Coord{Col: 1, Row: 1}

// AllCoords lists every cell in row-major order. Every scan over the board
// walks this slice so ties are broken the same way each time.
var AllCoords = func() []Coord {
    out := make([]Coord, 0, Size*Size)
    for r := 0; r < Size; r++ {
        for c := 0; c < Size; c++ {
            out = append(out, Coord{Col: c, Row: r})
        }
    }
    return out
}()

func (c Coord) InBounds() bool {
    return c.Col >= 0 && c.Col < Size && c.Row >= 0 && c.Row < Size
}

// Index is the row-major offset of c. Only valid when InBounds.
func (c Coord) Index() int { return c.Row*Size + c.Col }

// IsCorner reports whether c is one of the four corners.
func (c Coord) IsCorner() bool {
    return (c.Col == 0 || c.Col == Size-1) && (c.Row == 0 || c.Row == Size-1)
}

// IsSide reports whether c is an edge cell between two corners.
func (c Coord) IsSide() bool { return (c.Col+c.Row)%2 == 1 }

// Opposite mirrors c through the center.
func (c Coord) Opposite() Coord {
    return Coord{Col: Size - 1 - c.Col, Row: Size - 1 - c.Row}
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.Col, c.Row) }
