// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// swapHandler forwards records to a replaceable handler. Attributes and groups
// added through With are replayed on whatever handler is current.
type swapHandler struct {
	current *atomic.Pointer[slog.Handler]
	derive  func(slog.Handler) slog.Handler
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{
		current: new(atomic.Pointer[slog.Handler]),
		derive:  func(h slog.Handler) slog.Handler { return h },
	}
	s.set(h)
	return s
}

func (s *swapHandler) set(h slog.Handler) {
	s.current.Store(&h)
}

func (s *swapHandler) handler() slog.Handler {
	return s.derive(*s.current.Load())
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.current.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.handler().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	parent := s.derive
	return &swapHandler{
		current: s.current,
		derive:  func(h slog.Handler) slog.Handler { return parent(h).WithAttrs(attrs) },
	}
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	parent := s.derive
	return &swapHandler{
		current: s.current,
		derive:  func(h slog.Handler) slog.Handler { return parent(h).WithGroup(name) },
	}
}
