// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/program"
)

type Oracle struct {
	prog *program.Program
}

func New(prog *program.Program) *Oracle {
	return &Oracle{prog}
}

func (o *Oracle) handleGetRequest(w http.ResponseWriter, req *http.Request) error {
	ref, err := utils.AddressVar(req, "ref")
	if err != nil {
		return err
	}
	r, err := o.prog.OracleRequest(ref)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRequest(r))
}

func (o *Oracle) handleFulfill(w http.ResponseWriter, req *http.Request) error {
	ref, err := utils.AddressVar(req, "ref")
	if err != nil {
		return err
	}
	r, err := o.prog.Fulfill(req.Context(), ref)
	if err != nil {
		if err == program.ErrOracleKeyMissing {
			return utils.Forbidden(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertRequest(r))
}

func (o *Oracle) handleVerify(w http.ResponseWriter, req *http.Request) error {
	ref, err := utils.AddressVar(req, "ref")
	if err != nil {
		return err
	}
	ok, err := o.prog.VerifyRandomness(ref)
	if err != nil {
		if err == program.ErrOracleKeyMissing {
			return utils.Forbidden(err)
		}
		return err
	}
	return utils.WriteJSON(w, utils.M{"valid": ok})
}

func (o *Oracle) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{ref}").
		Methods(http.MethodGet).
		Name("oracle_get_request").
		HandlerFunc(utils.WrapHandlerFunc(o.handleGetRequest))
	sub.Path("/{ref}/fulfill").
		Methods(http.MethodPost).
		Name("oracle_fulfill").
		HandlerFunc(utils.WrapHandlerFunc(o.handleFulfill))
	sub.Path("/{ref}/verify").
		Methods(http.MethodGet).
		Name("oracle_verify").
		HandlerFunc(utils.WrapHandlerFunc(o.handleVerify))
}
