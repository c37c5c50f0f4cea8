// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/stakebox/stakebox/log"
)

var logger = log.WithContext("pkg", "clock")

// DefaultNTPServer is queried when no server is configured.
const DefaultNTPServer = "pool.ntp.org"

var queryOffset = func(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// CheckOffset queries server and reports whether the local clock is within
// tolerance. Rewards accrue on wall time, so a drifting host clock over or
// under pays.
func CheckOffset(server string, tolerance time.Duration) (time.Duration, bool, error) {
	offset, err := queryOffset(server)
	if err != nil {
		return 0, false, err
	}
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	return offset, abs <= tolerance, nil
}

// WatchOffset checks the clock offset every interval until ctx is done,
// logging a warning when it exceeds tolerance.
func WatchOffset(ctx context.Context, server string, interval, tolerance time.Duration) {
	check := func() {
		offset, ok, err := CheckOffset(server, tolerance)
		if err != nil {
			logger.Debug("failed to access NTP", "server", server, "err", err)
			return
		}
		if !ok {
			logger.Warn("clock offset detected", "offset", common.PrettyDuration(offset))
		}
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
