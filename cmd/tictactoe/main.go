// Command tictactoe serves the web game against the heuristic bot, or plays
// it in the terminal.
//
//    tictactoe [serve] [flags]
//    tictactoe play [flags]
package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/rs/zerolog/log"

    "github.com/jaminalder/tictactoe-bot/internal/app"
    "github.com/jaminalder/tictactoe-bot/internal/config"
    "github.com/jaminalder/tictactoe-bot/internal/tui"
    "github.com/jaminalder/tictactoe-bot/internal/web"
)

func main() {
    if err := run(os.Args[1:]); err != nil {
        fmt.Fprintln(os.Stderr, "tictactoe:", err)
        os.Exit(1)
    }
}

func run(args []string) error {
    cmd := "serve"
    if len(args) > 0 && (args[0] == "serve" || args[0] == "play") {
        cmd, args = args[0], args[1:]
    }
    base := config.Default()
    // the terminal UI owns stdout
    logOut := os.Stdout
    if cmd == "play" {
        logOut = os.Stderr
        base.LogLevel = "warn"
    }
    cfg, err := config.LoadFrom(base, cmd, args, os.Getenv)
    if err != nil {
        return err
    }
    logger, err := cfg.Logger(logOut)
    if err != nil {
        return err
    }
    log.Logger = logger

    switch cmd {
    case "play":
        return tui.Run(cfg.Mark(), os.Stdin, os.Stdout)
    default:
        return serve(cfg)
    }
}

func serve(cfg config.Config) error {
    svc := app.NewService()
    srv := &http.Server{
        Addr:              cfg.Addr,
        Handler:           web.NewServer(svc, web.WithHeartbeat(cfg.Heartbeat), web.WithDefaultMark(cfg.Mark())),
        ReadHeaderTimeout: 5 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    errCh := make(chan error, 1)
    go func() {
        log.Info().Str("addr", cfg.Addr).Msg("listening")
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- err
        }
        close(errCh)
    }()

    select {
    case err := <-errCh:
        return err
    case <-ctx.Done():
    }
    log.Info().Msg("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    return srv.Shutdown(shutdownCtx)
}
