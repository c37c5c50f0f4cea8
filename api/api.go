// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/stakebox/stakebox/api/accounts"
	"github.com/stakebox/stakebox/api/events"
	"github.com/stakebox/stakebox/api/lootbox"
	"github.com/stakebox/stakebox/api/middleware"
	"github.com/stakebox/stakebox/api/node"
	"github.com/stakebox/stakebox/api/oracle"
	"github.com/stakebox/stakebox/api/randomness"
	"github.com/stakebox/stakebox/api/staking"
	"github.com/stakebox/stakebox/api/subscriptions"
	"github.com/stakebox/stakebox/clock"
	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/logdb"
	"github.com/stakebox/stakebox/metrics"
	"github.com/stakebox/stakebox/program"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	EventsLimit    uint64
	EnableMetrics  bool
	RequestLogs    *middleware.RequestLogSettings
	Info           *node.Info
}

// New return api router. logDB may be nil, the event history is not served then.
func New(
	prog *program.Program,
	logDB *logdb.LogDB,
	clk clock.Clock,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(prog).
		Mount(router, "/staking")
	lootbox.New(prog).
		Mount(router, "/lootbox")
	randomness.New(prog).
		Mount(router, "/randomness")
	oracle.New(prog).
		Mount(router, "/oracle")
	accounts.New(prog).
		Mount(router, "/accounts")
	if logDB != nil {
		events.New(logDB, opts.EventsLimit).
			Mount(router, "/events")
	}
	info := opts.Info
	if info == nil {
		info = &node.Info{}
	}
	node.New(prog, info, clk).
		Mount(router, "/node")
	subs := subscriptions.New(prog, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		if h := metrics.HTTPHandler(); h != nil {
			router.Path("/metrics").Methods(http.MethodGet).Handler(h)
		}
		router.Use(metricsMiddleware)
	}

	requestLogs := opts.RequestLogs
	if requestLogs == nil {
		requestLogs = &middleware.RequestLogSettings{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, requestLogs))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(handler)
	handler = middleware.RequestID(handler)

	return handler.ServeHTTP, subs.Close
}
