package bot

import "github.com/jaminalder/tictactoe-bot/internal/domain"

// FindThreat returns the empty cell completing a line where target already
// holds two cells. Playing it with target's own mark wins; playing it with
// the other mark blocks. Lines are checked in domain.AllLines order.
func FindThreat(g domain.Grid, target domain.Mark) (domain.Coord, bool) {
    threats := Scan(g, target).Threats()
    if len(threats) == 0 {
        return domain.Coord{}, false
    }
    return threats[0].Missing(), true
}
