// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

type Staking struct {
	prog *program.Program
}

func New(prog *program.Program) *Staking {
	return &Staking{prog}
}

func parseRequest(req *http.Request) (owner, asset ledger.Address, err error) {
	if owner, err = utils.AddressVar(req, "owner"); err != nil {
		return
	}
	var body AssetRequest
	if err = utils.ParseJSON(req.Body, &body); err != nil {
		err = utils.BadRequest(errors.WithMessage(err, "body"))
		return
	}
	if body.Asset.IsZero() {
		err = utils.BadRequest(errors.New("asset: required"))
		return
	}
	return owner, body.Asset, nil
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	owner, asset, err := parseRequest(req)
	if err != nil {
		return err
	}
	rec, err := s.prog.Stake(req.Context(), owner, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Result{Record: convertRecord(rec)})
}

func (s *Staking) handleRedeem(w http.ResponseWriter, req *http.Request) error {
	owner, asset, err := parseRequest(req)
	if err != nil {
		return err
	}
	rec, paid, err := s.prog.Redeem(req.Context(), owner, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Result{Record: convertRecord(rec), Paid: paid})
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	owner, asset, err := parseRequest(req)
	if err != nil {
		return err
	}
	rec, paid, err := s.prog.Unstake(req.Context(), owner, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Result{Record: convertRecord(rec), Paid: paid})
}

func (s *Staking) handleGetRecord(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	rec, err := s.prog.StakeRecord(owner, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRecord(rec))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}/stake").
		Methods(http.MethodPost).
		Name("staking_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/{owner}/redeem").
		Methods(http.MethodPost).
		Name("staking_redeem").
		HandlerFunc(utils.WrapHandlerFunc(s.handleRedeem))
	sub.Path("/{owner}/unstake").
		Methods(http.MethodPost).
		Name("staking_unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/{owner}/{asset}").
		Methods(http.MethodGet).
		Name("staking_get_record").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetRecord))
}
