// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/api/utils"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           string
		expectedStatus int
		expectedLevel  string
		expectedError  string
	}{
		{"set debug", http.MethodPost, `{"level":"debug"}`, http.StatusOK, "DEBUG", ""},
		{"set crit", http.MethodPost, `{"level":"crit"}`, http.StatusOK, "ERROR+4", ""},
		{"invalid level", http.MethodPost, `{"level":"loud"}`, http.StatusBadRequest, "", "Invalid verbosity level"},
		{"invalid body", http.MethodPost, `{"lvl":"info"}`, http.StatusBadRequest, "", "Invalid request body"},
		{"get", http.MethodGet, "", http.StatusOK, "INFO", ""},
		{"unsupported method", http.MethodDelete, "", http.StatusMethodNotAllowed, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(slog.LevelInfo)

			router := mux.NewRouter()
			New(&level).Mount(router, "/admin/loglevel")

			req := httptest.NewRequest(tt.method, "/admin/loglevel", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedLevel != "" {
				var res Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Equal(t, tt.expectedLevel, res.CurrentLevel)
				assert.Equal(t, tt.expectedLevel, level.Level().String())
			}
			if tt.expectedError != "" {
				var res utils.ErrorBody
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Contains(t, res.Message, tt.expectedError)
			}
		})
	}
}
