package domain

import "fmt"

// LineKind discriminates the four families of lines.
type LineKind uint8

const (
    RowLine LineKind = iota
    ColumnLine
    MainDiagonal // col == row
    AntiDiagonal // col + row == Size-1
)

// Line identifies one of the 8 winning groupings. Index is only meaningful for
// rows and columns.
type Line struct {
    Kind  LineKind
    Index int
}

func Row(i int) Line    { return Line{Kind: RowLine, Index: i} }
func Column(i int) Line { return Line{Kind: ColumnLine, Index: i} }

// AllLines lists the 8 lines: rows, then columns, then both diagonals.
var AllLines = [8]Line{
    Row(0), Row(1), Row(2),
    Column(0), Column(1), Column(2),
    {Kind: MainDiagonal},
    {Kind: AntiDiagonal},
}

// Slot is the position of l within AllLines.
func (l Line) Slot() int {
    switch l.Kind {
    case RowLine:
        return l.Index
    case ColumnLine:
        return Size + l.Index
    case MainDiagonal:
        return 2 * Size
    default:
        return 2*Size + 1
    }
}

// LinesThrough returns the lines containing c: its row and column, plus one or
// both diagonals. The center lies on four lines.
func LinesThrough(c Coord) []Line {
    out := []Line{Row(c.Row), Column(c.Col)}
    if c.Col == c.Row {
        out = append(out, Line{Kind: MainDiagonal})
    }
    if c.Col+c.Row == Size-1 {
        out = append(out, Line{Kind: AntiDiagonal})
    }
    return out
}

// Cells lists the coordinates of l.
func (l Line) Cells() [Size]Coord {
    var out [Size]Coord
    for i := 0; i < Size; i++ {
        switch l.Kind {
        case RowLine:
            out[i] = Coord{Col: i, Row: l.Index}
        case ColumnLine:
            out[i] = Coord{Col: l.Index, Row: i}
        case MainDiagonal:
            out[i] = Coord{Col: i, Row: i}
        case AntiDiagonal:
            out[i] = Coord{Col: Size - 1 - i, Row: i}
        }
    }
    return out
}

func (l Line) String() string {
    switch l.Kind {
    case RowLine:
        return fmt.Sprintf("row %d", l.Index)
    case ColumnLine:
        return fmt.Sprintf("column %d", l.Index)
    case MainDiagonal:
        return "main diagonal"
    default:
        return "anti diagonal"
    }
}
