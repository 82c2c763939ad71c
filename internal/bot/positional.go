package bot

import "github.com/jaminalder/tictactoe-bot/internal/domain"

// CenterMove returns the center if it is free.
func CenterMove(g domain.Grid) (domain.Coord, bool) {
    if g.IsEmpty(domain.Center) {
        return domain.Center, true
    }
    return domain.Coord{}, false
}

// OppositeCornerMove answers an opponent's corner with the corner mirrored
// through the center. Any other last move yields nothing.
func OppositeCornerMove(g domain.Grid, last domain.Move, opponent domain.Mark) (domain.Coord, bool) {
    if last.Mark != opponent || !last.At.IsCorner() {
        return domain.Coord{}, false
    }
    opp := last.At.Opposite()
    if !g.IsEmpty(opp) {
        return domain.Coord{}, false
    }
    return opp, true
}

// EmptyCornerMove returns the first free corner in row-major order.
func EmptyCornerMove(g domain.Grid) (domain.Coord, bool) {
    return firstEmpty(g, domain.Coord.IsCorner)
}

// EmptySideMove returns the first free side cell in row-major order.
func EmptySideMove(g domain.Grid) (domain.Coord, bool) {
    return firstEmpty(g, domain.Coord.IsSide)
}

func firstEmpty(g domain.Grid, keep func(domain.Coord) bool) (domain.Coord, bool) {
    for _, c := range g.Empty() {
        if keep(c) {
            return c, true
        }
    }
    return domain.Coord{}, false
}
