// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/stakebox/stakebox/log"
)

// RequestLogSettings decide which requests get logged. They can be changed
// while serving.
type RequestLogSettings struct {
	enabled      atomic.Bool
	slowQueries  atomic.Int64 // ms, 0 disables
	log5xxErrors atomic.Bool
}

func NewRequestLogSettings(enabled bool, slowQueriesThreshold time.Duration, log5xxErrors bool) *RequestLogSettings {
	s := &RequestLogSettings{}
	s.SetEnabled(enabled)
	s.SetSlowQueriesThreshold(slowQueriesThreshold)
	s.SetLog5xxErrors(log5xxErrors)
	return s
}

func (s *RequestLogSettings) Enabled() bool          { return s.enabled.Load() }
func (s *RequestLogSettings) SetEnabled(v bool)      { s.enabled.Store(v) }
func (s *RequestLogSettings) Log5xxErrors() bool     { return s.log5xxErrors.Load() }
func (s *RequestLogSettings) SetLog5xxErrors(v bool) { s.log5xxErrors.Store(v) }

func (s *RequestLogSettings) SlowQueriesThreshold() time.Duration {
	return time.Duration(s.slowQueries.Load()) * time.Millisecond
}

// SetSlowQueriesThreshold truncates d to milliseconds.
func (s *RequestLogSettings) SetSlowQueriesThreshold(d time.Duration) {
	s.slowQueries.Store(max(d.Milliseconds(), 0))
}

func (s *RequestLogSettings) idle() bool {
	return !s.Enabled() && s.slowQueries.Load() == 0 && !s.Log5xxErrors()
}

func (s *RequestLogSettings) shouldLog(m httpsnoop.Metrics) bool {
	if s.Enabled() {
		return true
	}
	if threshold := s.SlowQueriesThreshold(); threshold > 0 && m.Duration > threshold {
		return true
	}
	return s.Log5xxErrors() && m.Code >= http.StatusInternalServerError
}

// RequestLoggerMiddleware logs requests when enabled, when slower than the
// slow queries threshold or, with log5xxErrors, when they fail with a
// server error.
func RequestLoggerMiddleware(logger log.Logger, settings *RequestLogSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if settings.idle() {
				next.ServeHTTP(w, r)
				return
			}
			// the body can be read only once, hand a copy to next
			var bodyBytes []byte
			if r.Body != nil {
				var err error
				bodyBytes, err = io.ReadAll(r.Body)
				if err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "unreadable body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}

			m := httpsnoop.CaptureMetrics(next, w, r)
			if settings.shouldLog(m) {
				logger.Info("API Request",
					"requestID", RequestIDFrom(r.Context()),
					"durationMs", m.Duration.Milliseconds(),
					"status", m.Code,
					"uri", r.URL.String(),
					"method", r.Method,
					"body", string(bodyBytes),
				)
			}
		})
	}
}
