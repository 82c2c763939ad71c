package domain

// Mark is the content of a board cell.
type Mark uint8

const (
    NoMark Mark = iota
    X
    O
)

// Opponent returns the other player's mark. NoMark has no opponent.
func (m Mark) Opponent() Mark {
    switch m {
    case X:
        return O
    case O:
        return X
    default:
        return NoMark
    }
}

// Valid reports whether m is one of the two player marks.
func (m Mark) Valid() bool { return m == X || m == O }

func (m Mark) String() string {
    switch m {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return "-"
    }
}

// ParseMark accepts "X" or "O" in either case.
func ParseMark(s string) (Mark, bool) {
    switch s {
    case "X", "x":
        return X, true
    case "O", "o":
        return O, true
    }
    return NoMark, false
}
