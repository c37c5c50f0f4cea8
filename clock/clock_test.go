// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	c := NewFixed(100)
	assert.Equal(t, uint64(100), c.Now())

	c.Advance(86400)
	assert.Equal(t, uint64(86500), c.Now())

	c.Set(5)
	assert.Equal(t, uint64(5), c.Now())
}

func TestSystem(t *testing.T) {
	now := uint64(time.Now().Unix())
	assert.InDelta(t, now, System.Now(), 2)
}

func stubQuery(t *testing.T, offset time.Duration, err error) {
	prev := queryOffset
	queryOffset = func(string) (time.Duration, error) { return offset, err }
	t.Cleanup(func() { queryOffset = prev })
}

func TestCheckOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		ok     bool
	}{
		{"in sync", 100 * time.Millisecond, true},
		{"ahead", 10 * time.Second, false},
		{"behind", -10 * time.Second, false},
		{"at tolerance", -5 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubQuery(t, tt.offset, nil)
			offset, ok, err := CheckOffset(DefaultNTPServer, 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCheckOffsetError(t *testing.T) {
	stubQuery(t, 0, errors.New("timeout"))
	_, ok, err := CheckOffset(DefaultNTPServer, time.Second)
	assert.EqualError(t, err, "timeout")
	assert.False(t, ok)
}

func TestWatchOffsetStops(t *testing.T) {
	stubQuery(t, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchOffset(ctx, DefaultNTPServer, time.Millisecond, time.Second)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
