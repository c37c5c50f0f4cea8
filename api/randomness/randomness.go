// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package randomness

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/builtin/randomness"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

type InitRequest struct {
	Oracle ledger.Address `json:"oracle"`
}

// Consumer for marshal consumer state
type Consumer struct {
	Oracle       ledger.Address `json:"oracle"`
	Owner        ledger.Address `json:"owner"`
	LastConsumed ledger.Bytes32 `json:"lastConsumed"`
}

func convertConsumer(c *randomness.Consumer) *Consumer {
	return &Consumer{
		Oracle:       c.Oracle,
		Owner:        c.Owner,
		LastConsumed: c.LastConsumed,
	}
}

type Randomness struct {
	prog *program.Program
}

func New(prog *program.Program) *Randomness {
	return &Randomness{prog}
}

func (r *Randomness) handleInit(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	var body InitRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	c, err := r.prog.InitConsumer(req.Context(), owner, body.Oracle)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertConsumer(c))
}

func (r *Randomness) handleGetConsumer(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	c, err := r.prog.Consumer(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertConsumer(c))
}

func (r *Randomness) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}").
		Methods(http.MethodPost).
		Name("randomness_init_consumer").
		HandlerFunc(utils.WrapHandlerFunc(r.handleInit))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("randomness_get_consumer").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetConsumer))
}
