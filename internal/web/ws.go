package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "github.com/rs/zerolog/log"
)

const wsWriteWait = 5 * time.Second

// gameWS streams the game as JSON: one snapshot on connect, then one per
// move. Idle connections get a ping every heartbeat.
func (h *handlers) gameWS(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        log.Debug().Err(err).Str("game", id).Msg("websocket upgrade failed")
        return
    }
    defer conn.Close()

    ctx := r.Context()
    updates, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()

    // reader only watches for the client going away
    closed := make(chan struct{})
    go func() {
        defer close(closed)
        for {
            if _, _, err := conn.ReadMessage(); err != nil {
                return
            }
        }
    }()

    send := func(v any) error {
        _ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
        return conn.WriteJSON(v)
    }
    if err := send(gameToDTO(*gs)); err != nil {
        return
    }

    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    for {
        select {
        case <-closed:
            return
        case <-ctx.Done():
            return
        case <-ticker.C:
            if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
                return
            }
        case _, ok := <-updates:
            if !ok {
                return
            }
            cur, found := h.svc.Get(id)
            if !found {
                return
            }
            if err := send(gameToDTO(*cur)); err != nil {
                return
            }
        }
    }
}
