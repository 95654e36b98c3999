// Package obslog centralizes the registry's log/slog defaults.
//
// The registry core takes a *slog.Logger via core.Options directly; this
// package only exists to build a logger with the handler and level the
// rest of this project's tooling (cmd/privregctl, config-driven setup)
// expects, so those callers do not each re-derive slog.HandlerOptions.
package obslog

import (
	"log/slog"
	"os"
)

// New returns a text-handler slog.Logger writing to stderr at the given
// level. Passing an empty level string defaults to "info".
func New(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(orDefault(level, "info"))); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
