package app

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog/log"

    "github.com/jaminalder/tictactoe-bot/internal/bot"
    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
)

// Turn is one entry of a game's history. Strategy is set for bot moves only.
type Turn struct {
    Move     domain.Move
    Bot      bool
    Strategy string
}

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID      string
    State   domain.State
    Human   domain.Mark
    Player  string
    History []Turn
    Created time.Time
    Updated time.Time
}

// Status summarises the outcome: "playing", "draw", or "X wins"/"O wins".
func (gs GameState) Status() string {
    if w := gs.State.Winner(); w != domain.NoMark {
        return w.String() + " wins"
    }
    if gs.State.Over() {
        return "draw"
    }
    return "playing"
}

func (gs GameState) snapshot() *GameState {
    cp := gs
    cp.History = append([]Turn(nil), gs.History...)
    return &cp
}

// subscriber channels are only sent on and closed while Service.mu is held.
type subscriber struct {
    ch     chan []byte
    closed bool
}

func (s *subscriber) close() {
    if !s.closed {
        s.closed = true
        close(s.ch)
    }
}

// Service manages games against the bot and their subscribers.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte
    bot    *bot.Selector
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService() *Service { return NewServiceWithRenderer(func(gs GameState) []byte { return nil }) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    return &Service{
        games:  make(map[string]*GameState),
        subs:   make(map[string]map[*subscriber]struct{}),
        render: renderer,
        bot:    bot.NewSelector(),
    }
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateGame registers a new game where the human plays the given mark. When
// the bot holds X it opens immediately.
func (s *Service) CreateGame(human domain.Mark) (*GameState, error) {
    if !human.Valid() {
        return nil, domain.ErrUnknownMark
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    id := uuid.NewString()
    now := time.Now()
    gs := &GameState{ID: id, State: domain.NewState(human.Opponent()), Human: human, Created: now, Updated: now}
    if gs.State.Next() == gs.State.Self {
        if err := s.botMoveLocked(gs); err != nil {
            return nil, err
        }
    }
    s.games[id] = gs
    log.Info().Str("game", id).Stringer("human", human).Msg("game created")
    return gs.snapshot(), nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    return gs.snapshot(), true
}

// Join claims the human seat if it is free; later players spectate and get
// NoMark.
func (s *Service) Join(id, playerID string) (domain.Mark, *GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return domain.NoMark, nil, ErrNotFound
    }
    side := domain.NoMark
    if gs.Player == "" || gs.Player == playerID {
        gs.Player = playerID
        side = gs.Human
    }
    gs.Updated = time.Now()
    return side, gs.snapshot(), nil
}

// Play applies the human move at c, lets the bot answer, and broadcasts the
// result.
func (s *Service) Play(id, playerID string, c domain.Coord) (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, ErrNotFound
    }
    if gs.Player == "" || gs.Player != playerID {
        return nil, ErrNotAPlayer
    }
    if gs.State.Over() {
        return nil, domain.ErrGameOver
    }
    if gs.State.Next() != gs.Human {
        return nil, ErrNotYourTurn
    }
    if err := gs.State.Apply(c, gs.Human); err != nil {
        return nil, err
    }
    gs.History = append(gs.History, Turn{Move: gs.State.Last})
    log.Debug().Str("game", id).Stringer("move", c).Msg("human moved")
    if !gs.State.Over() {
        if err := s.botMoveLocked(gs); err != nil {
            return nil, err
        }
    }
    gs.Updated = time.Now()

    cp := gs.snapshot()
    s.broadcastLocked(id, s.render(*cp))
    if cp.State.Over() {
        log.Info().Str("game", id).Str("status", cp.Status()).Msg("game finished")
    }
    return cp, nil
}

// broadcastLocked fans payload out without blocking; slow subscribers are
// closed and dropped.
func (s *Service) broadcastLocked(id string, payload []byte) {
    set := s.subs[id]
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            delete(set, sub)
        }
    }
    if len(set) == 0 {
        delete(s.subs, id)
    }
}

func (s *Service) botMoveLocked(gs *GameState) error {
    d, err := s.bot.Decide(gs.State)
    if err != nil {
        return fmt.Errorf("bot move: %w", err)
    }
    if err := gs.State.Apply(d.Move, gs.State.Self); err != nil {
        return fmt.Errorf("bot move %v: %w", d.Move, err)
    }
    gs.History = append(gs.History, Turn{Move: gs.State.Last, Bot: true, Strategy: d.Strategy.String()})
    return nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func. For unknown games the channel is already closed.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sub := &subscriber{ch: make(chan []byte, 1)}
    if _, ok := s.games[id]; !ok {
        sub.close()
        return sub.ch, func() {}
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            defer s.mu.Unlock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
                if len(set) == 0 {
                    delete(s.subs, id)
                }
            }
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}
