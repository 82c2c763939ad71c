package web

import (
    "encoding/json"
    "errors"
    "io"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/google/uuid"

    "github.com/jaminalder/tictactoe-bot/internal/app"
    "github.com/jaminalder/tictactoe-bot/internal/bot"
    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

type coordDTO struct {
    Col int `json:"col"`
    Row int `json:"row"`
}

type turnDTO struct {
    Col      int    `json:"col"`
    Row      int    `json:"row"`
    Mark     string `json:"mark"`
    Bot      bool   `json:"bot"`
    Strategy string `json:"strategy,omitempty"`
}

type gameDTO struct {
    ID      string    `json:"id"`
    Player  string    `json:"player,omitempty"`
    Board   []string  `json:"board"`
    Human   string    `json:"human"`
    Bot     string    `json:"bot"`
    Next    string    `json:"next"`
    Status  string    `json:"status"`
    Winner  string    `json:"winner,omitempty"`
    History []turnDTO `json:"history"`
}

func gameToDTO(gs app.GameState) gameDTO {
    d := gameDTO{
        ID:      gs.ID,
        Board:   make([]string, 0, len(gs.State.Grid)),
        Human:   gs.Human.String(),
        Bot:     gs.State.Self.String(),
        Next:    gs.State.Next().String(),
        Status:  gs.Status(),
        History: make([]turnDTO, 0, len(gs.History)),
    }
    for _, m := range gs.State.Grid {
        if m == domain.NoMark {
            d.Board = append(d.Board, "")
            continue
        }
        d.Board = append(d.Board, m.String())
    }
    if w := gs.State.Winner(); w != domain.NoMark {
        d.Winner = w.String()
    }
    for _, t := range gs.History {
        d.History = append(d.History, turnDTO{
            Col:      t.Move.At.Col,
            Row:      t.Move.At.Row,
            Mark:     t.Move.Mark.String(),
            Bot:      t.Bot,
            Strategy: t.Strategy,
        })
    }
    return d
}

type errorDTO struct {
    Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(data)
}

// errorStatus maps service and domain errors to HTTP status codes.
func errorStatus(err error) int {
    switch {
    case errors.Is(err, app.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, app.ErrNotAPlayer):
        return http.StatusForbidden
    case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, domain.ErrOccupied), errors.Is(err, domain.ErrGameOver):
        return http.StatusConflict
    case errors.Is(err, domain.ErrOutOfBounds), errors.Is(err, domain.ErrUnknownMark):
        return http.StatusBadRequest
    case errors.Is(err, bot.ErrNoMoveFound):
        return http.StatusUnprocessableEntity
    default:
        return http.StatusInternalServerError
    }
}

func writeError(w http.ResponseWriter, err error) {
    writeJSON(w, errorStatus(err), errorDTO{Error: errorMessage(err)})
}

func (h *handlers) apiCreate(w http.ResponseWriter, r *http.Request) {
    var payload struct {
        Human string `json:"human"`
    }
    // an empty body takes the default mark
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
        writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid payload"})
        return
    }
    mark := h.defaultMark
    if payload.Human != "" {
        m, ok := domain.ParseMark(payload.Human)
        if !ok {
            writeError(w, domain.ErrUnknownMark)
            return
        }
        mark = m
    }
    gs, err := h.svc.CreateGame(mark)
    if err != nil {
        writeError(w, err)
        return
    }
    player := uuid.NewString()
    _, gs, err = h.svc.Join(gs.ID, player)
    if err != nil {
        writeError(w, err)
        return
    }
    d := gameToDTO(*gs)
    d.Player = player
    writeJSON(w, http.StatusCreated, d)
}

func (h *handlers) apiGet(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        writeError(w, app.ErrNotFound)
        return
    }
    writeJSON(w, http.StatusOK, gameToDTO(*gs))
}

func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
    var payload struct {
        Player string `json:"player"`
        coordDTO
    }
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid payload"})
        return
    }
    gs, err := h.svc.Play(chi.URLParam(r, "id"), payload.Player, domain.C(payload.Col, payload.Row))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, gameToDTO(*gs))
}

type suggestRequest struct {
    Board string    `json:"board"`
    Self  string    `json:"self"`
    Last  *coordDTO `json:"last,omitempty"`
}

type suggestResponse struct {
    coordDTO
    Strategy string `json:"strategy"`
}

// apiSuggest runs the selector on a board snapshot without creating a game.
// The last move, when given, is attributed to the opponent.
func (h *handlers) apiSuggest(w http.ResponseWriter, r *http.Request) {
    var req suggestRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid payload"})
        return
    }
    g, err := domain.ParseGrid(req.Board)
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorDTO{Error: err.Error()})
        return
    }
    self, ok := domain.ParseMark(req.Self)
    if !ok {
        writeError(w, domain.ErrUnknownMark)
        return
    }
    var last *domain.Move
    if req.Last != nil {
        last = &domain.Move{At: domain.C(req.Last.Col, req.Last.Row), Mark: self.Opponent()}
    }
    d, err := h.selector.Decide(domain.StateFromGrid(g, self, last))
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, suggestResponse{
        coordDTO: coordDTO{Col: d.Move.Col, Row: d.Move.Row},
        Strategy: d.Strategy.String(),
    })
}
