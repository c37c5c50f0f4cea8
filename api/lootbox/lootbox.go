// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lootbox

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/program"
)

type Lootbox struct {
	prog *program.Program
}

func New(prog *program.Program) *Lootbox {
	return &Lootbox{prog}
}

func (l *Lootbox) handleOpen(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	var body OpenRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Asset.IsZero() {
		return utils.BadRequest(errors.New("asset: required"))
	}
	ptr, err := l.prog.Open(req.Context(), owner, body.Asset, body.Tier)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPointer(ptr))
}

func (l *Lootbox) handleConsume(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	outcome, ptr, err := l.prog.Consume(req.Context(), owner)
	if err != nil {
		return err
	}
	res := &ConsumeResult{Outcome: outcome.String()}
	if ptr != nil {
		res.Pointer = convertPointer(ptr)
	}
	return utils.WriteJSON(w, res)
}

func (l *Lootbox) handleClaim(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	ptr, err := l.prog.Claim(req.Context(), owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPointer(ptr))
}

func (l *Lootbox) handleGetPointer(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	ptr, err := l.prog.Pointer(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPointer(ptr))
}

func (l *Lootbox) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}/open").
		Methods(http.MethodPost).
		Name("lootbox_open").
		HandlerFunc(utils.WrapHandlerFunc(l.handleOpen))
	sub.Path("/{owner}/consume").
		Methods(http.MethodPost).
		Name("lootbox_consume").
		HandlerFunc(utils.WrapHandlerFunc(l.handleConsume))
	sub.Path("/{owner}/claim").
		Methods(http.MethodPost).
		Name("lootbox_claim").
		HandlerFunc(utils.WrapHandlerFunc(l.handleClaim))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("lootbox_get_pointer").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetPointer))
}
