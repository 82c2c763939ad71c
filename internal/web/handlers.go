package web

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"

    "github.com/jaminalder/tictactoe-bot/internal/app"
    "github.com/jaminalder/tictactoe-bot/internal/bot"
    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

type handlers struct {
    svc         *app.Service
    tpl         *templates
    selector    *bot.Selector
    heartbeat   time.Duration
    defaultMark domain.Mark
}

type boardData struct {
    ID      string
    Board   domain.Grid
    Human   string
    Status  string
    LastBot string
    Error   string
}

func newBoardData(gs app.GameState, errMsg string) boardData {
    d := boardData{
        ID:     gs.ID,
        Board:  gs.State.Grid,
        Human:  gs.Human.String(),
        Status: gs.Status(),
        Error:  errMsg,
    }
    for i := len(gs.History) - 1; i >= 0; i-- {
        if t := gs.History[i]; t.Bot {
            d.LastBot = fmt.Sprintf("%v (%s)", t.Move.At, t.Strategy)
            break
        }
    }
    return d
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
    return renderTemplate(h.tpl.board, "", newBoardData(gs, errMsg))
}

// errorMessage maps service and domain errors to text for players.
func errorMessage(err error) string {
    switch {
    case errors.Is(err, app.ErrNotYourTurn):
        return "Not your turn"
    case errors.Is(err, app.ErrNotAPlayer):
        return "You are a spectator"
    case errors.Is(err, domain.ErrOccupied):
        return "Cell is occupied"
    case errors.Is(err, domain.ErrOutOfBounds):
        return "Out of bounds"
    case errors.Is(err, domain.ErrGameOver):
        return "Game is over"
    case errors.Is(err, domain.ErrUnknownMark):
        return "Unknown mark"
    case errors.Is(err, bot.ErrNoMoveFound):
        return "Bot found no move"
    default:
        return "Invalid move"
    }
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.index, "", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    mark, ok := domain.ParseMark(r.Form.Get("mark"))
    if !ok {
        mark = h.defaultMark
    }
    pid := ensurePlayerCookie(w, r)
    gs, err := h.svc.CreateGame(mark)
    if err != nil {
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    _, _, _ = h.svc.Join(gs.ID, pid)
    http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    // ensure cookie and auto-claim seat
    pid := ensurePlayerCookie(w, r)
    _, _, _ = h.svc.Join(id, pid)

    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    // Render page with embedded board container
    _, _ = w.Write(renderTemplate(h.tpl.game, "", newBoardData(*gs, "")))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _, gs, err := h.svc.Join(id, pid)
    if err != nil || gs == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*gs, ""))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _ = r.ParseForm()
    c := formCoord(r.Form.Get("c"), r.Form.Get("r"))
    gs, err := h.svc.Play(id, pid, c)
    var errMsg string
    if err != nil {
        if gs == nil {
            if g, ok := h.svc.Get(id); ok {
                gs = g
            }
        }
        errMsg = errorMessage(err)
    }
    if gs == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*gs, errMsg))
}

// formCoord parses column and row form values; unparsable input lands out of
// bounds so the domain rejects it.
func formCoord(col, row string) domain.Coord {
    ci, err := strconv.Atoi(col)
    if err != nil {
        ci = -1
    }
    ri, err := strconv.Atoi(row)
    if err != nil {
        ri = -1
    }
    return domain.C(ci, ri)
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub := h.svc.Subscribe(ctx, id)
    defer unsub()
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    // Initial flush of headers
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            _, _ = fmt.Fprintf(w, "event: board\n")
            // one data line per event
            _, _ = fmt.Fprintf(w, "data: %s\n\n", bytes.ReplaceAll(b, []byte("\n"), nil))
            flusher.Flush()
        }
    }
}
