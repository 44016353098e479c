// Package debug holds process wide debug switches, read once from the
// environment, and the logger used for debug output.
package debug

import (
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

type debug struct {
	Coerce   bool
	Cache    bool
	Wrap     bool
	Registry bool
}

var (
	d      *debug
	logger atomic.Pointer[slog.Logger]
	level  = &slog.LevelVar{}
)

func init() {
	d = &debug{}
	d.Coerce = boolEnv("DTMPL_DEBUG_COERCE")
	d.Cache = boolEnv("DTMPL_DEBUG_CACHE")
	d.Wrap = boolEnv("DTMPL_DEBUG_WRAP")
	d.Registry = boolEnv("DTMPL_DEBUG_REGISTRY")
	level.Set(slog.LevelInfo)
	if d.Coerce || d.Cache || d.Wrap || d.Registry {
		level.Set(slog.LevelDebug)
	}
	logger.Store(NewLogger(level))
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Coerce reports whether coercion failures are logged.
func Coerce() bool {
	return d.Coerce
}

// Cache reports whether identity cache hits and misses are logged.
func Cache() bool {
	return d.Cache
}

// Wrap reports whether wrapper construction is logged.
func Wrap() bool {
	return d.Wrap
}

// Registry reports whether coercer and constructor registrations are logged.
func Registry() bool {
	return d.Registry
}

// Enable turns on every switch. Used by the CLI verbose flag.
func Enable() {
	d.Coerce, d.Cache, d.Wrap, d.Registry = true, true, true, true
	level.Set(slog.LevelDebug)
}

// NewLogger returns a tinted stderr logger at the given level. Color is
// disabled when stderr is not a terminal.
func NewLogger(lvl slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the debug logger.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logf logs msg and its key value pairs at debug level.
func Logf(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
