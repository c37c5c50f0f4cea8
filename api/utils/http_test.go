// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("owner")), http.StatusBadRequest, ""},
		{"revert", reverts.ErrNotStaked, http.StatusConflict, "NotStaked"},
		{"wrapped revert", errors.WithMessage(reverts.ErrAlreadyStaked, "stake"), http.StatusConflict, "AlreadyStaked"},
		{"not found", reverts.ErrNotInitialized, http.StatusNotFound, "NotInitialized"},
		{"internal", errors.New("disk"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				return
			}
			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Asset string `json:"asset"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"asset":"x"}`), &v))
	assert.Equal(t, "x", v.Asset)
	assert.Error(t, ParseJSON(strings.NewReader(`{"asset":"x","tier":1}`), &v))
}

func TestUint64Query(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=7&bad=x", nil)

	v, err := Uint64Query(r, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	v, err = Uint64Query(r, "offset", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)

	_, err = Uint64Query(r, "bad", 0)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}
