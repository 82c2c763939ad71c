// Package config resolves runtime settings from defaults, environment
// variables and command-line flags, in that order of precedence (flags win).
package config

import (
    "errors"
    "flag"
    "fmt"
    "io"
    "os"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/jaminalder/tictactoe-bot/internal/domain"
)

// Environment variable names.
const (
    EnvAddr      = "TTT_ADDR"
    EnvLogLevel  = "TTT_LOG_LEVEL"
    EnvLogFormat = "TTT_LOG_FORMAT"
    EnvHeartbeat = "TTT_HEARTBEAT"
    EnvHumanMark = "TTT_HUMAN_MARK"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
    Addr      string
    LogLevel  string
    LogFormat string // console or json
    Heartbeat time.Duration
    HumanMark string
}

func Default() Config {
    return Config{
        Addr:      ":8080",
        LogLevel:  "info",
        LogFormat: "console",
        Heartbeat: 15 * time.Second,
        HumanMark: "X",
    }
}

// ApplyEnv overrides fields whose variable is set and non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) error {
    if v := getenv(EnvAddr); v != "" {
        c.Addr = v
    }
    if v := getenv(EnvLogLevel); v != "" {
        c.LogLevel = v
    }
    if v := getenv(EnvLogFormat); v != "" {
        c.LogFormat = v
    }
    if v := getenv(EnvHeartbeat); v != "" {
        d, err := time.ParseDuration(v)
        if err != nil {
            return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvHeartbeat, v, err)
        }
        c.Heartbeat = d
    }
    if v := getenv(EnvHumanMark); v != "" {
        c.HumanMark = v
    }
    return nil
}

// RegisterFlags binds the fields to fs using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
    fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
    fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
    fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console or json)")
    fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "SSE/websocket keep-alive interval")
    fs.StringVar(&c.HumanMark, "mark", c.HumanMark, "mark played by the human (X moves first)")
}

func (c Config) Validate() error {
    if strings.TrimSpace(c.Addr) == "" {
        return fmt.Errorf("%w: empty listen address", ErrInvalid)
    }
    if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
        return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
    }
    if c.LogFormat != "console" && c.LogFormat != "json" {
        return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
    }
    if c.Heartbeat <= 0 {
        return fmt.Errorf("%w: heartbeat must be positive, got %v", ErrInvalid, c.Heartbeat)
    }
    if _, ok := domain.ParseMark(c.HumanMark); !ok {
        return fmt.Errorf("%w: mark %q", ErrInvalid, c.HumanMark)
    }
    return nil
}

// Mark is the parsed HumanMark; X when it does not parse.
func (c Config) Mark() domain.Mark {
    if m, ok := domain.ParseMark(c.HumanMark); ok {
        return m
    }
    return domain.X
}

// Logger builds a zerolog logger writing to w.
func (c Config) Logger(w io.Writer) (zerolog.Logger, error) {
    level, err := zerolog.ParseLevel(c.LogLevel)
    if err != nil {
        return zerolog.Nop(), fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
    }
    if c.LogFormat == "console" {
        w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
    }
    return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Load resolves a Config from defaults, getenv and args (without the program
// name or subcommand).
func Load(name string, args []string, getenv func(string) string) (Config, error) {
    return LoadFrom(Default(), name, args, getenv)
}

// LoadFrom is Load starting from base instead of Default.
func LoadFrom(base Config, name string, args []string, getenv func(string) string) (Config, error) {
    if getenv == nil {
        getenv = os.Getenv
    }
    cfg := base
    if err := cfg.ApplyEnv(getenv); err != nil {
        return Config{}, err
    }
    fs := flag.NewFlagSet(name, flag.ContinueOnError)
    fs.SetOutput(io.Discard)
    cfg.RegisterFlags(fs)
    if err := fs.Parse(args); err != nil {
        return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}
