// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/logdb"
	"github.com/stakebox/stakebox/program"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

// New creates the event history api. Queries return at most limit events.
func New(db *logdb.LogDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	query := req.URL.Query()
	filter := &logdb.EventFilter{Order: logdb.ASC}

	if s := query.Get("owner"); s != "" {
		owner, err := ledger.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "owner"))
		}
		filter.Owner = &owner
	}
	if s := query.Get("kind"); s != "" {
		for _, kind := range strings.Split(s, ",") {
			k := program.EventKind(strings.TrimSpace(kind))
			if !k.Valid() {
				return nil, utils.BadRequest(errors.Errorf("kind: unknown %q", kind))
			}
			filter.Kinds = append(filter.Kinds, k)
		}
	}
	switch order := query.Get("order"); order {
	case "", string(logdb.ASC):
	case string(logdb.DESC):
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("order: unknown %q", order))
	}

	from, err := utils.Uint64Query(req, "from", 0)
	if err != nil {
		return nil, err
	}
	to, err := utils.Uint64Query(req, "to", 0)
	if err != nil {
		return nil, err
	}
	if from > 0 || to > 0 {
		filter.Range = &logdb.Range{From: from, To: to}
	}

	offset, err := utils.Uint64Query(req, "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.Uint64Query(req, "limit", e.limit)
	if err != nil {
		return nil, err
	}
	if limit > e.limit {
		return nil, utils.Forbidden(errors.Errorf("limit: exceeds %d", e.limit))
	}
	filter.Options = &logdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*logdb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
