// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the structured logger used across the node. It builds on the
// go-ethereum slog based logger so every package logs key/value pairs the same way.
package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a Handler.
type Logger = ethlog.Logger

// levels
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

var (
	swap = newSwapHandler(NewTerminalHandler(os.Stderr, LevelWarn, false))
	root = ethlog.NewLogger(swap)
)

func init() {
	ethlog.SetDefault(root)
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// SetHandler replaces the handler of the root logger. Loggers derived earlier,
// e.g. package level ones, write to the new handler too.
func SetHandler(h slog.Handler) {
	swap.set(h)
}

// NewLogger returns a logger writing to h, detached from the root handler.
func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// WithContext returns a logger that prepends ctx to every record.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

// NewTerminalHandler returns a human readable handler at the given level.
func NewTerminalHandler(wr io.Writer, lvl slog.Leveler, useColor bool) slog.Handler {
	return &levelHandler{lvl, ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor)}
}

// NewJSONHandler returns a JSON lines handler at the given level.
func NewJSONHandler(wr io.Writer, lvl slog.Leveler) slog.Handler {
	return &levelHandler{lvl, ethlog.JSONHandlerWithLevel(wr, LevelTrace)}
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// FromVerbosity converts the 0 (crit) .. 5 (trace) verbosity scale of the
// command line into a level.
func FromVerbosity(v int) slog.Level {
	return ethlog.FromLegacyLevel(v)
}
