// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/admin"
	"github.com/stakebox/stakebox/api/middleware"
)

// StartAdminServer serves the admin api on addr. It returns the base url and
// the func stopping the server.
func StartAdminServer(addr string, logLevel *slog.LevelVar, requestLogs *middleware.RequestLogSettings) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           admin.New(logLevel, requestLogs),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Serve(listener)
	}()
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		<-done
	}, nil
}
