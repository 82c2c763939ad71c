package domain

// Move is one claimed cell.
type Move struct {
    At   Coord
    Mark Mark
}

// State holds the current state of a match from the bot's point of view.
// A finished game is never reset; start a new State instead.
type State struct {
    Grid     Grid
    Self     Mark
    Opponent Mark
    // Last is the most recent move by either side; HasLast is false before
    // the first move.
    Last    Move
    HasLast bool
    Filled  int
}

// NewState returns an empty game where the bot plays self. An invalid self
// falls back to X.
func NewState(self Mark) State {
    if !self.Valid() {
        self = X
    }
    return State{Self: self, Opponent: self.Opponent()}
}

// StateFromGrid builds a State around an existing position, for callers that
// only hold a board snapshot. last may be nil.
func StateFromGrid(g Grid, self Mark, last *Move) State {
    s := NewState(self)
    s.Grid = g
    s.Filled = g.Filled()
    if last != nil {
        s.Last = *last
        s.HasLast = true
    }
    return s
}

// Winner returns the mark that completed a line, or NoMark.
func (s State) Winner() Mark { return s.Grid.Winner() }

// Over reports whether the game has a winner or no empty cell left.
func (s State) Over() bool {
    return s.Filled >= len(s.Grid) || s.Winner() != NoMark
}

// Turn is the number of full rounds played.
func (s State) Turn() int { return s.Filled / 2 }

// Apply places m at c. On error the state is left untouched.
func (s *State) Apply(c Coord, m Mark) error {
    if s.Over() {
        return ErrGameOver
    }
    if m != s.Self && m != s.Opponent {
        return ErrUnknownMark
    }
    if err := s.Grid.Set(c, m); err != nil {
        return err
    }
    s.Last = Move{At: c, Mark: m}
    s.HasLast = true
    s.Filled++
    return nil
}

// Next is the mark due to move. X always opens.
func (s State) Next() Mark {
    if s.Filled%2 == 0 {
        return X
    }
    return O
}
