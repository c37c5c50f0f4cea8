// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageLoggerFollowsHandler(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetHandler(NewJSONHandler(&buf, LevelDebug))
	t.Cleanup(func() { SetHandler(DiscardHandler()) })

	logger.Info("staked", "owner", "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "staked", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, "abc", rec["owner"])
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetHandler(NewJSONHandler(&buf, LevelWarn))
	t.Cleanup(func() { SetHandler(DiscardHandler()) })

	Root().Debug("hidden")
	assert.Zero(t, buf.Len())

	Root().Warn("shown")
	assert.NotZero(t, buf.Len())

	assert.Equal(t, LevelInfo, FromVerbosity(3))
}

func TestLevelVar(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	lvl.Set(LevelError)
	SetHandler(NewTerminalHandler(&buf, &lvl, false))
	t.Cleanup(func() { SetHandler(DiscardHandler()) })

	logger := WithContext("pkg", "test")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	lvl.Set(LevelInfo)
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "pkg=test")
}
