// Package tui is a terminal front end for playing against the bot.
package tui

import (
    "errors"
    "fmt"
    "io"
    "strings"

    tea "github.com/charmbracelet/bubbletea"

    "github.com/jaminalder/tictactoe-bot/internal/bot"
    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

type model struct {
    human    domain.Mark
    state    domain.State
    selector *bot.Selector
    cursor   domain.Coord
    lastBot  *bot.Decision
    message  string
}

func newModel(human domain.Mark) model {
    if !human.Valid() {
        human = domain.X
    }
    m := model{
        human:    human,
        state:    domain.NewState(human.Opponent()),
        selector: bot.NewSelector(),
        cursor:   domain.Center,
    }
    m.botTurn()
    return m
}

// botTurn lets the bot move if it is due.
func (m *model) botTurn() {
    if m.state.Over() || m.state.Next() != m.state.Self {
        return
    }
    d, err := m.selector.Decide(m.state)
    if err != nil {
        m.message = "bot: " + err.Error()
        return
    }
    if err := m.state.Apply(d.Move, m.state.Self); err != nil {
        m.message = "bot: " + err.Error()
        return
    }
    m.lastBot = &d
}

func (m *model) place() {
    m.message = ""
    err := m.state.Apply(m.cursor, m.human)
    var occ *domain.OccupiedError
    switch {
    case errors.As(err, &occ):
        m.message = fmt.Sprintf("%v is taken by %v", occ.At, occ.Owner)
        return
    case errors.Is(err, domain.ErrGameOver):
        m.message = "game over, press r for a new game"
        return
    case err != nil:
        m.message = err.Error()
        return
    }
    m.botTurn()
}

func (m *model) moveCursor(dc, dr int) {
    c := domain.C(m.cursor.Col+dc, m.cursor.Row+dr)
    if c.InBounds() {
        m.cursor = c
    }
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    key, ok := msg.(tea.KeyMsg)
    if !ok {
        return m, nil
    }
    switch key.String() {
    case "q", "esc", "ctrl+c":
        return m, tea.Quit
    case "up", "k":
        m.moveCursor(0, -1)
    case "down", "j":
        m.moveCursor(0, 1)
    case "left", "h":
        m.moveCursor(-1, 0)
    case "right", "l":
        m.moveCursor(1, 0)
    case "enter", " ":
        m.place()
    case "r":
        return newModel(m.human), nil
    }
    return m, nil
}

func (m model) status() string {
    switch w := m.state.Winner(); {
    case w == m.human:
        return "You win!"
    case w != domain.NoMark:
        return "The bot wins."
    case m.state.Over():
        return "Draw."
    default:
        return fmt.Sprintf("You play %v. Your move.", m.human)
    }
}

func (m model) View() string {
    var b strings.Builder
    for r := 0; r < domain.Size; r++ {
        for c := 0; c < domain.Size; c++ {
            at := domain.C(c, r)
            cell := m.state.Grid.At(at).String()
            if cell == domain.NoMark.String() {
                cell = " "
            }
            if at == m.cursor {
                fmt.Fprintf(&b, "[%s]", cell)
            } else {
                fmt.Fprintf(&b, " %s ", cell)
            }
            if c < domain.Size-1 {
                b.WriteString("|")
            }
        }
        b.WriteString("\n")
        if r < domain.Size-1 {
            b.WriteString("---+---+---\n")
        }
    }
    b.WriteString("\n" + m.status() + "\n")
    if m.lastBot != nil {
        fmt.Fprintf(&b, "Bot played %v (%v).\n", m.lastBot.Move, m.lastBot.Strategy)
    }
    if m.message != "" {
        b.WriteString(m.message + "\n")
    }
    b.WriteString("\narrows/hjkl move, enter place, r restart, q quit\n")
    return b.String()
}

// Run plays one session on in/out until the user quits.
func Run(human domain.Mark, in io.Reader, out io.Writer) error {
    p := tea.NewProgram(newModel(human), tea.WithInput(in), tea.WithOutput(out))
    _, err := p.Run()
    return err
}
