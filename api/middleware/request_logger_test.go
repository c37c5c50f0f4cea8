// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/log"
)

func TestRequestLoggerHandler(t *testing.T) {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	slow := func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(15 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}
	failing := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	rejected := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}

	tests := []struct {
		name          string
		handler       http.HandlerFunc
		enabled       bool
		slowThreshold time.Duration
		log5xxErrors  bool
		shouldLog     bool
	}{
		{"enabled", ok, true, 0, false, true},
		{"disabled", ok, false, 0, false, false},
		{"slow request", slow, false, 10 * time.Millisecond, false, true},
		{"fast request", ok, false, time.Second, false, false},
		{"5xx logged", failing, false, 0, true, true},
		{"5xx not logged", failing, false, 0, false, false},
		{"4xx not logged", rejected, false, 0, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewLogger(log.NewJSONHandler(&buf, log.LevelDebug))
			settings := NewRequestLogSettings(tt.enabled, tt.slowThreshold, tt.log5xxErrors)

			var seenBody string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				seenBody = string(b)
				tt.handler(w, r)
			})
			h := RequestID(RequestLoggerMiddleware(logger, settings)(next))

			req := httptest.NewRequest(http.MethodPost, "/staking/x/stake", strings.NewReader(`{"asset":"a"}`))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, `{"asset":"a"}`, seenBody, "body is passed on")
			if !tt.shouldLog {
				assert.Zero(t, buf.Len())
				return
			}
			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "API Request", entry["msg"])
			assert.Equal(t, `{"asset":"a"}`, entry["body"])
			assert.Equal(t, float64(rec.Code), entry["status"])
			assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["requestID"])
		})
	}
}

func TestRequestLogSettingsChangeWhileServing(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(log.NewJSONHandler(&buf, log.LevelDebug))
	settings := NewRequestLogSettings(false, 0, false)
	h := RequestLoggerMiddleware(logger, settings)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	serve := func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/node/info", nil))
	}

	serve()
	assert.Zero(t, buf.Len())

	settings.SetLog5xxErrors(true)
	serve()
	assert.NotZero(t, buf.Len())

	buf.Reset()
	settings.SetLog5xxErrors(false)
	settings.SetSlowQueriesThreshold(time.Millisecond)
	serve()
	assert.NotZero(t, buf.Len())

	buf.Reset()
	settings.SetSlowQueriesThreshold(time.Hour)
	serve()
	assert.Zero(t, buf.Len())
	assert.Equal(t, time.Hour, settings.SlowQueriesThreshold())

	settings.SetSlowQueriesThreshold(-time.Second)
	assert.Zero(t, settings.SlowQueriesThreshold())
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, got, 36)
	assert.Equal(t, got, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", got)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
