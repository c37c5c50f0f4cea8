// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/builtin/token"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

// Account for marshal token account
type Account struct {
	Address         ledger.Address `json:"address"`
	Mint            ledger.Address `json:"mint"`
	Owner           ledger.Address `json:"owner"`
	Amount          uint64         `json:"amount"`
	Delegate        ledger.Address `json:"delegate"`
	DelegatedAmount uint64         `json:"delegatedAmount"`
	Frozen          bool           `json:"frozen"`
}

func convertAccount(addr ledger.Address, acc *token.Account) *Account {
	return &Account{
		Address:         addr,
		Mint:            acc.Mint,
		Owner:           acc.Owner,
		Amount:          acc.Amount,
		Delegate:        acc.Delegate,
		DelegatedAmount: acc.DelegatedAmount,
		Frozen:          acc.Frozen,
	}
}

type Accounts struct {
	prog *program.Program
}

func New(prog *program.Program) *Accounts {
	return &Accounts{prog}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.prog.TokenAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(addr, acc))
}

func (a *Accounts) handleGetRewards(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	addr, acc, err := a.prog.RewardAccount(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(addr, acc))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/rewards").
		Methods(http.MethodGet).
		Name("accounts_get_rewards").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetRewards))
}
