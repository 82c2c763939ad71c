// Package bot picks moves for the automated player using a fixed priority of
// classical tic-tac-toe heuristics: win, block, fork, block a fork, center,
// opposite corner, empty corner, empty side.
package bot

import (
    "errors"
    "fmt"

    "github.com/rs/zerolog/log"

    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// ErrNoMoveFound is returned when no heuristic produced a move on a board that
// still has room. With the corner and side scans in the chain this should not
// happen.
var ErrNoMoveFound = errors.New("no valid move found")

// Strategy names a step of the selection chain.
type Strategy uint8

const (
    Win Strategy = iota
    Block
    Fork
    BlockFork
    Center
    OppositeCorner
    EmptyCorner
    EmptySide
    Exhausted
)

var strategyNames = [...]string{
    Win:            "win",
    Block:          "block",
    Fork:           "fork",
    BlockFork:      "block-fork",
    Center:         "center",
    OppositeCorner: "opposite-corner",
    EmptyCorner:    "empty-corner",
    EmptySide:      "empty-side",
    Exhausted:      "exhausted",
}

func (s Strategy) String() string {
    if int(s) < len(strategyNames) {
        return strategyNames[s]
    }
    return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Position is the read-only view every heuristic works from.
type Position struct {
    Grid     domain.Grid
    Self     domain.Mark
    Opponent domain.Mark
    Last     domain.Move
    HasLast  bool
    Filled   int
}

// PositionOf snapshots s.
func PositionOf(s domain.State) Position {
    return Position{
        Grid:     s.Grid,
        Self:     s.Self,
        Opponent: s.Opponent,
        Last:     s.Last,
        HasLast:  s.HasLast,
        Filled:   s.Filled,
    }
}

// Heuristic is one step of the chain.
type Heuristic interface {
    Strategy() Strategy
    Check(p Position) (domain.Coord, bool)
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc struct {
    S  Strategy
    Fn func(Position) (domain.Coord, bool)
}

func (h HeuristicFunc) Strategy() Strategy                     { return h.S }
func (h HeuristicFunc) Check(p Position) (domain.Coord, bool) { return h.Fn(p) }

// DefaultChain is the classical priority order.
func DefaultChain() []Heuristic {
    return []Heuristic{
        HeuristicFunc{Win, func(p Position) (domain.Coord, bool) { return FindThreat(p.Grid, p.Self) }},
        HeuristicFunc{Block, func(p Position) (domain.Coord, bool) { return FindThreat(p.Grid, p.Opponent) }},
        HeuristicFunc{Fork, func(p Position) (domain.Coord, bool) { return FindFork(p.Grid, p.Self, p.Filled) }},
        HeuristicFunc{BlockFork, func(p Position) (domain.Coord, bool) { return FindFork(p.Grid, p.Opponent, p.Filled) }},
        HeuristicFunc{Center, func(p Position) (domain.Coord, bool) { return CenterMove(p.Grid) }},
        HeuristicFunc{OppositeCorner, func(p Position) (domain.Coord, bool) {
            if !p.HasLast {
                return domain.Coord{}, false
            }
            return OppositeCornerMove(p.Grid, p.Last, p.Opponent)
        }},
        HeuristicFunc{EmptyCorner, func(p Position) (domain.Coord, bool) { return EmptyCornerMove(p.Grid) }},
        HeuristicFunc{EmptySide, func(p Position) (domain.Coord, bool) { return EmptySideMove(p.Grid) }},
    }
}

// Decision is a chosen move and the heuristic that produced it.
type Decision struct {
    Move     domain.Coord
    Strategy Strategy
}

// Selector runs heuristics in order and returns the first match.
type Selector struct {
    chain []Heuristic
}

// NewSelector uses DefaultChain when chain is empty.
func NewSelector(chain ...Heuristic) *Selector {
    if len(chain) == 0 {
        chain = DefaultChain()
    }
    return &Selector{chain: chain}
}

// Decide picks a move for s.Self. A full board fails with
// domain.ErrGameOver before any heuristic runs.
func (sel *Selector) Decide(s domain.State) (Decision, error) {
    if s.Filled >= len(s.Grid) {
        return Decision{Strategy: Exhausted}, domain.ErrGameOver
    }
    p := PositionOf(s)
    for _, h := range sel.chain {
        log.Debug().Stringer("strategy", h.Strategy()).Msg("checking strategy")
        c, ok := h.Check(p)
        if !ok {
            continue
        }
        if !p.Grid.IsEmpty(c) {
            // suggestions must be legal
            log.Warn().Stringer("strategy", h.Strategy()).Stringer("move", c).Msg("heuristic suggested an occupied cell")
            continue
        }
        log.Info().Stringer("strategy", h.Strategy()).Stringer("move", c).Stringer("mark", s.Self).Msg("move selected")
        return Decision{Move: c, Strategy: h.Strategy()}, nil
    }
    return Decision{Strategy: Exhausted}, ErrNoMoveFound
}

var defaultSelector = NewSelector()

// SelectMove picks a move with the default chain.
func SelectMove(s domain.State) (domain.Coord, error) {
    d, err := defaultSelector.Decide(s)
    if err != nil {
        return domain.Coord{}, err
    }
    return d.Move, nil
}
