package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"

    "github.com/jaminalder/tictactoe-bot/internal/app"
    "github.com/jaminalder/tictactoe-bot/internal/bot"
    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// Option customises NewServer.
type Option func(*handlers)

// WithHeartbeat sets the SSE and websocket keep-alive interval.
func WithHeartbeat(d time.Duration) Option {
    return func(h *handlers) {
        if d > 0 {
            h.heartbeat = d
        }
    }
}

// WithDefaultMark sets the mark given to players who do not choose one.
func WithDefaultMark(m domain.Mark) Option {
    return func(h *handlers) {
        if m.Valid() {
            h.defaultMark = m
        }
    }
}

// NewServer wires routes and returns an http.Handler. It installs a board
// renderer on s so SSE subscribers receive HTML fragments.
func NewServer(s *app.Service, opts ...Option) http.Handler {
    h := &handlers{
        svc:         s,
        tpl:         loadTemplates(),
        selector:    bot.NewSelector(),
        heartbeat:   15 * time.Second,
        defaultMark: domain.X,
    }
    for _, opt := range opts {
        opt(h)
    }
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(requestLogger)
    r.Use(middleware.Recoverer)

    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/join", h.join)
        r.Post("/play", h.play)
        r.Get("/events", h.events)
        r.Get("/ws", h.gameWS)
    })
    r.Route("/api", func(r chi.Router) {
        r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
            writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
        })
        r.Post("/games", h.apiCreate)
        r.Get("/games/{id}", h.apiGet)
        r.Post("/games/{id}/moves", h.apiMove)
        r.Post("/suggest", h.apiSuggest)
    })
    return r
}
