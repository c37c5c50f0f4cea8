// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package apilogs lets operators switch request logging at runtime.
package apilogs

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/middleware"
	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/log"
)

var logger = log.WithContext("pkg", "apilogs")

// maxSlowQueriesThresholdMs caps the threshold at one hour.
const maxSlowQueriesThresholdMs = 3_600_000

type LogStatus struct {
	Enabled                bool   `json:"enabled"`
	SlowQueriesThresholdMs uint64 `json:"slowQueriesThresholdMs"`
	Log5xxErrors           bool   `json:"log5xxErrors"`
}

// Update changes the provided fields only.
type Update struct {
	Enabled                *bool   `json:"enabled"`
	SlowQueriesThresholdMs *uint64 `json:"slowQueriesThresholdMs"`
	Log5xxErrors           *bool   `json:"log5xxErrors"`
}

type APILogs struct {
	settings *middleware.RequestLogSettings
	mu       sync.Mutex
}

func New(settings *middleware.RequestLogSettings) *APILogs {
	return &APILogs{
		settings: settings,
	}
}

func (a *APILogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-api-logs").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGet))

	sub.Path("").
		Methods(http.MethodPost).
		Name("post-api-logs").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePost))
}

func (a *APILogs) status() LogStatus {
	return LogStatus{
		Enabled:                a.settings.Enabled(),
		SlowQueriesThresholdMs: uint64(a.settings.SlowQueriesThreshold().Milliseconds()),
		Log5xxErrors:           a.settings.Log5xxErrors(),
	}
}

func (a *APILogs) handleGet(w http.ResponseWriter, _ *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return utils.WriteJSON(w, a.status())
}

func (a *APILogs) handlePost(w http.ResponseWriter, r *http.Request) error {
	var req Update
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.SlowQueriesThresholdMs != nil && *req.SlowQueriesThresholdMs > maxSlowQueriesThresholdMs {
		return utils.BadRequest(errors.Errorf("slowQueriesThresholdMs: exceeds %d", maxSlowQueriesThresholdMs))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Enabled != nil {
		a.settings.SetEnabled(*req.Enabled)
	}
	if req.SlowQueriesThresholdMs != nil {
		a.settings.SetSlowQueriesThreshold(time.Duration(*req.SlowQueriesThresholdMs) * time.Millisecond)
	}
	if req.Log5xxErrors != nil {
		a.settings.SetLog5xxErrors(*req.Log5xxErrors)
	}
	status := a.status()
	logger.Info("api logs updated",
		"enabled", status.Enabled,
		"slowQueriesThresholdMs", status.SlowQueriesThresholdMs,
		"log5xxErrors", status.Log5xxErrors,
	)
	return utils.WriteJSON(w, status)
}
