package bot

import "github.com/jaminalder/tictactoe-bot/internal/domain"

// minForkTurn is the first full turn in which a fork can exist.
const minForkTurn = 2

// FindFork returns the first empty cell (row-major) where placing target
// would open two or more threats at once. filled is the number of claimed
// cells on g.
func FindFork(g domain.Grid, target domain.Mark, filled int) (domain.Coord, bool) {
    if filled/2 < minForkTurn {
        return domain.Coord{}, false
    }
    for _, c := range g.Empty() {
        hypo := g
        if err := hypo.Set(c, target); err != nil {
            continue
        }
        if len(Scan(hypo, target).Threats()) >= 2 {
            return c, true
        }
    }
    return domain.Coord{}, false
}
