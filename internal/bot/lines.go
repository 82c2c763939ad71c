package bot

import "github.com/jaminalder/tictactoe-bot/internal/domain"

// Tally aggregates the occupied cells of one line relative to a target mark.
// ColSum and RowSum add up the coordinates of every occupied cell so the
// single empty cell of a threat can be recovered by subtraction.
type Tally struct {
    Line   domain.Line
    ColSum int
    RowSum int
    Target int
    Other  int
}

// Empty is the number of unclaimed cells on the line.
func (t Tally) Empty() int { return domain.Size - t.Target - t.Other }

// Threat reports whether the line holds exactly two target marks and an empty
// cell.
func (t Tally) Threat() bool { return t.Target == domain.Size-1 && t.Other == 0 }

// Complete reports whether every cell of the line holds the target mark.
func (t Tally) Complete() bool { return t.Target == domain.Size }

// Missing recovers the empty cell of a threat. Each line's coordinates sum to a
// multiple of 3 on both axes, so the missing coordinate is (3 - sum) mod 3.
func (t Tally) Missing() domain.Coord {
    return domain.Coord{Col: mod3(domain.Size - t.ColSum), Row: mod3(domain.Size - t.RowSum)}
}

func mod3(n int) int {
    n %= domain.Size
    if n < 0 {
        n += domain.Size
    }
    return n
}

// Tallies holds one Tally per line in domain.AllLines order.
type Tallies [len(domain.AllLines)]Tally

// Threats returns the lines that are one target mark away from complete.
func (ts Tallies) Threats() []Tally {
    var out []Tally
    for _, t := range ts {
        if t.Threat() {
            out = append(out, t)
        }
    }
    return out
}

// Scan tallies every line of g against target. Rows and columns always
// receive an occupied cell; diagonals only when the cell lies on them, and
// the center counts toward both.
func Scan(g domain.Grid, target domain.Mark) Tallies {
    var ts Tallies
    for i, l := range domain.AllLines {
        ts[i].Line = l
    }
    for _, c := range domain.AllCoords {
        m := g.At(c)
        if m == domain.NoMark {
            continue
        }
        for _, l := range domain.LinesThrough(c) {
            t := &ts[l.Slot()]
            t.ColSum += c.Col
            t.RowSum += c.Row
            if m == target {
                t.Target++
            } else {
                t.Other++
            }
        }
    }
    return ts
}
