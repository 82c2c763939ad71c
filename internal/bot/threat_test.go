package bot

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// stateWith applies moves in order; marks need not alternate.
func stateWith(t *testing.T, self domain.Mark, moves ...domain.Move) domain.State {
    t.Helper()
    s := domain.NewState(self)
    for _, m := range moves {
        require.NoError(t, s.Apply(m.At, m.Mark))
    }
    return s
}

func x(col, row int) domain.Move { return domain.Move{At: domain.C(col, row), Mark: domain.X} }
func o(col, row int) domain.Move { return domain.Move{At: domain.C(col, row), Mark: domain.O} }

func TestFindThreat(t *testing.T) {
    tests := []struct {
        name   string
        target domain.Mark
        moves  []domain.Move
        want   domain.Coord
    }{
        {"win on row despite blocked column", domain.X, []domain.Move{x(0, 0), o(0, 2), x(0, 1), o(1, 1), x(2, 0)}, domain.C(1, 0)},
        {"win on row", domain.X, []domain.Move{x(0, 0), x(1, 0)}, domain.C(2, 0)},
        {"win on main diagonal", domain.X, []domain.Move{x(0, 0), x(1, 1)}, domain.C(2, 2)},
        {"win on anti diagonal", domain.X, []domain.Move{x(2, 0), x(1, 1)}, domain.C(0, 2)},
        {"block column", domain.O, []domain.Move{o(0, 0), o(0, 1)}, domain.C(0, 2)},
        {"block row", domain.O, []domain.Move{o(0, 0), o(1, 0)}, domain.C(2, 0)},
        {"block main diagonal", domain.O, []domain.Move{o(0, 0), o(1, 1)}, domain.C(2, 2)},
        {"block anti diagonal", domain.O, []domain.Move{o(2, 0), o(1, 1)}, domain.C(0, 2)},
        {"right column", domain.X, []domain.Move{x(2, 0), x(2, 1)}, domain.C(2, 2)},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            s := stateWith(t, domain.X, tt.moves...)
            got, ok := FindThreat(s.Grid, tt.target)
            require.True(t, ok)
            require.Equal(t, tt.want, got)
        })
    }
}

func TestFindThreatNoMatch(t *testing.T) {
    t.Run("empty board", func(t *testing.T) {
        _, ok := FindThreat(domain.Grid{}, domain.X)
        require.False(t, ok)
    })
    t.Run("pair blocked by opponent", func(t *testing.T) {
        _, ok := FindThreat(mustGrid(t, "XOX------"), domain.X)
        require.False(t, ok)
    })
    t.Run("completed line is not a threat", func(t *testing.T) {
        _, ok := FindThreat(mustGrid(t, "XXX------"), domain.X)
        require.False(t, ok)
    })
}
