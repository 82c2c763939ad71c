package app

import (
    "context"
    "errors"
    "fmt"
    "testing"
    "time"

    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// minimal renderer for tests: encode filled cells as bytes
func testRenderer(gs GameState) []byte { return []byte(fmt.Sprintf("moves=%d", gs.State.Filled)) }

func firstEmpty(t *testing.T, s *Service, id string) domain.Coord {
    t.Helper()
    gs, ok := s.Get(id)
    if !ok {
        t.Fatalf("game %s not found", id)
    }
    empty := gs.State.Grid.Empty()
    if len(empty) == 0 {
        t.Fatalf("board is full")
    }
    return empty[0]
}

func TestCreateAndGet(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, err := s.CreateGame(domain.X)
    if err != nil {
        t.Fatalf("CreateGame error: %v", err)
    }
    if gs.ID == "" {
        t.Fatalf("expected non-empty game ID")
    }
    if gs.State.Self != domain.O || gs.Human != domain.X {
        t.Fatalf("expected bot O vs human X, got %v vs %v", gs.State.Self, gs.Human)
    }
    if gs.State.Filled != 0 || gs.Status() != "playing" {
        t.Fatalf("expected fresh game, filled=%d status=%s", gs.State.Filled, gs.Status())
    }
    if gs.Created.IsZero() || gs.Updated.IsZero() {
        t.Fatalf("expected timestamps to be set")
    }
    got, ok := s.Get(gs.ID)
    if !ok || got.ID != gs.ID {
        t.Fatalf("Get should find created game")
    }
}

func TestCreateBotOpensWhenHoldingX(t *testing.T) {
    s := NewService()
    gs, err := s.CreateGame(domain.O)
    if err != nil {
        t.Fatalf("CreateGame error: %v", err)
    }
    if gs.State.Filled != 1 || gs.State.Grid.At(domain.Center) != domain.X {
        t.Fatalf("expected bot to open in the center, got\n%v", gs.State.Grid)
    }
    if len(gs.History) != 1 || !gs.History[0].Bot || gs.History[0].Strategy != "center" {
        t.Fatalf("unexpected history %+v", gs.History)
    }
}

func TestCreateRejectsUnknownMark(t *testing.T) {
    s := NewService()
    if _, err := s.CreateGame(domain.NoMark); !errors.Is(err, domain.ErrUnknownMark) {
        t.Fatalf("expected ErrUnknownMark, got %v", err)
    }
}

func TestJoinSeatsAndRejoin(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, _ := s.CreateGame(domain.X)
    p1, p2 := "p1", "p2"

    side, _, err := s.Join(gs.ID, p1)
    if err != nil || side != domain.X {
        t.Fatalf("p1 should claim X, got %v, err=%v", side, err)
    }
    side, _, err = s.Join(gs.ID, p1)
    if err != nil || side != domain.X {
        t.Fatalf("p1 rejoin should keep X, got %v, err=%v", side, err)
    }
    side, _, err = s.Join(gs.ID, p2)
    if err != nil || side != domain.NoMark {
        t.Fatalf("p2 should spectate (NoMark), got %v, err=%v", side, err)
    }
    if _, _, err := s.Join("missing", p1); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
}

func TestPlayAppliesHumanMoveAndBotReply(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, _ := s.CreateGame(domain.X)
    s.Join(gs.ID, "p1")

    st, err := s.Play(gs.ID, "p1", domain.C(0, 0))
    if err != nil {
        t.Fatalf("play failed: %v", err)
    }
    if st.State.Filled != 2 {
        t.Fatalf("expected human and bot moves, filled=%d", st.State.Filled)
    }
    if st.State.Grid.At(domain.C(0, 0)) != domain.X || st.State.Grid.At(domain.Center) != domain.O {
        t.Fatalf("unexpected board\n%v", st.State.Grid)
    }
    if len(st.History) != 2 || st.History[0].Bot || !st.History[1].Bot || st.History[1].Strategy != "center" {
        t.Fatalf("unexpected history %+v", st.History)
    }
}

func TestPlayErrors(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, _ := s.CreateGame(domain.X)
    s.Join(gs.ID, "p1")
    s.Join(gs.ID, "p2") // spectator

    if _, err := s.Play("missing", "p1", domain.C(0, 0)); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
    if _, err := s.Play(gs.ID, "p2", domain.C(0, 0)); !errors.Is(err, ErrNotAPlayer) {
        t.Fatalf("expected ErrNotAPlayer, got %v", err)
    }
    if _, err := s.Play(gs.ID, "p1", domain.C(3, 0)); !errors.Is(err, domain.ErrOutOfBounds) {
        t.Fatalf("expected ErrOutOfBounds, got %v", err)
    }
    if _, err := s.Play(gs.ID, "p1", domain.C(0, 0)); err != nil {
        t.Fatalf("play failed: %v", err)
    }
    before, _ := s.Get(gs.ID)
    if _, err := s.Play(gs.ID, "p1", domain.Center); !errors.Is(err, domain.ErrOccupied) {
        t.Fatalf("expected ErrOccupied, got %v", err)
    }
    after, _ := s.Get(gs.ID)
    if after.State != before.State {
        t.Fatalf("failed move changed the game")
    }
}

func TestPlayUntilGameOver(t *testing.T) {
    s := NewService()
    gs, _ := s.CreateGame(domain.X)
    s.Join(gs.ID, "p1")
    for i := 0; i < 5; i++ {
        cur, _ := s.Get(gs.ID)
        if cur.State.Over() {
            break
        }
        if _, err := s.Play(gs.ID, "p1", firstEmpty(t, s, gs.ID)); err != nil {
            t.Fatalf("play %d failed: %v", i, err)
        }
    }
    final, _ := s.Get(gs.ID)
    if !final.State.Over() || final.Status() == "playing" {
        t.Fatalf("expected finished game, got status %s\n%v", final.Status(), final.State.Grid)
    }
    if final.State.Winner() == domain.X {
        t.Fatalf("bot should not lose to first-empty play\n%v", final.State.Grid)
    }
    if _, err := s.Play(gs.ID, "p1", domain.C(0, 0)); !errors.Is(err, domain.ErrGameOver) {
        t.Fatalf("expected ErrGameOver, got %v", err)
    }
}

func TestSubscribeAndBroadcast(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, _ := s.CreateGame(domain.X)
    s.Join(gs.ID, "p1")

    ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
    defer cancel()
    ch, unsub := s.Subscribe(ctx, gs.ID)
    defer unsub()

    if _, err := s.Play(gs.ID, "p1", domain.C(0, 0)); err != nil {
        t.Fatalf("play failed: %v", err)
    }

    select {
    case b, ok := <-ch:
        if !ok {
            t.Fatalf("channel closed unexpectedly")
        }
        if string(b) != "moves=2" {
            t.Fatalf("unexpected broadcast payload: %q", string(b))
        }
    case <-ctx.Done():
        t.Fatalf("timed out waiting for broadcast")
    }
}

func TestDropSlowSubscriber(t *testing.T) {
    s := NewServiceWithRenderer(testRenderer)
    gs, _ := s.CreateGame(domain.X)
    s.Join(gs.ID, "p1")

    // Slow subscriber: never read
    ctxSlow, cancelSlow := context.WithCancel(context.Background())
    defer cancelSlow()
    slowCh, _ := s.Subscribe(ctxSlow, gs.ID)

    ctxFast, cancelFast := context.WithTimeout(context.Background(), time.Second*2)
    defer cancelFast()
    fastCh, unsubFast := s.Subscribe(ctxFast, gs.ID)
    defer unsubFast()

    if _, err := s.Play(gs.ID, "p1", domain.C(0, 0)); err != nil {
        t.Fatalf("play1: %v", err)
    }
    <-fastCh
    if _, err := s.Play(gs.ID, "p1", firstEmpty(t, s, gs.ID)); err != nil {
        t.Fatalf("play2: %v", err)
    }
    select {
    case <-fastCh:
    case <-ctxFast.Done():
        t.Fatalf("fast subscriber did not receive updates in time")
    }

    // slow subscriber got the first payload, then was dropped and closed
    <-slowCh
    if _, ok := <-slowCh; ok {
        t.Fatalf("expected slow subscriber channel to be closed")
    }
}

func TestCancelSubscriberDuringPlay(t *testing.T) {
    for i := 0; i < 200; i++ {
        s := NewServiceWithRenderer(testRenderer)
        gs, _ := s.CreateGame(domain.X)
        s.Join(gs.ID, "p1")

        ctx, cancel := context.WithCancel(context.Background())
        ch, unsub := s.Subscribe(ctx, gs.ID)
        done := make(chan struct{})
        go func() {
            defer close(done)
            cancel()
            unsub()
        }()
        if _, err := s.Play(gs.ID, "p1", domain.C(0, 0)); err != nil {
            t.Fatalf("play: %v", err)
        }
        <-done
        // drains at most one payload, then sees the close
        for range ch {
        }
    }
}

func TestSubscribeUnknownGame(t *testing.T) {
    s := NewService()
    ch, unsub := s.Subscribe(context.Background(), "missing")
    defer unsub()
    if _, ok := <-ch; ok {
        t.Fatalf("expected closed channel for unknown game")
    }
    s.mu.Lock()
    n := len(s.subs)
    s.mu.Unlock()
    if n != 0 {
        t.Fatalf("expected no subscriber sets, got %d", n)
    }
}

func TestUnsubscribeReleasesGameSet(t *testing.T) {
    s := NewService()
    gs, _ := s.CreateGame(domain.X)
    _, unsub := s.Subscribe(context.Background(), gs.ID)
    unsub()
    unsub()
    s.mu.Lock()
    _, ok := s.subs[gs.ID]
    s.mu.Unlock()
    if ok {
        t.Fatalf("expected subscriber set to be removed after last unsubscribe")
    }
}
