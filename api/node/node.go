// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/mux"

	"github.com/stakebox/stakebox/api/utils"
	"github.com/stakebox/stakebox/clock"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

// Info describes the running node.
type Info struct {
	Name      string         `json:"name"`
	GenesisID ledger.Bytes32 `json:"genesisId"`
	Version   string         `json:"version"`
}

type Authorities struct {
	Program ledger.Address `json:"program"`
	Custody ledger.Address `json:"custody"`
	Mint    ledger.Address `json:"mint"`
}

// Params for marshal program parameters
type Params struct {
	ProgramID      ledger.Address   `json:"programId"`
	RewardMint     ledger.Address   `json:"rewardMint"`
	RatePerDay     uint64           `json:"ratePerDay"`
	RewardDecimals uint8            `json:"rewardDecimals"`
	Mode           string           `json:"mode"`
	Catalog        []ledger.Address `json:"catalog"`
	Authorities    Authorities      `json:"authorities"`
	OracleKey      hexutil.Bytes    `json:"oracleKey,omitempty"`
}

type Node struct {
	prog  *program.Program
	info  *Info
	clock clock.Clock
}

func New(prog *program.Program, info *Info, clk clock.Clock) *Node {
	return &Node{
		prog,
		info,
		clk,
	}
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, n.info)
}

func (n *Node) handleParams(w http.ResponseWriter, req *http.Request) error {
	p := n.prog.Params()
	auth := n.prog.Authorities()
	res := &Params{
		ProgramID:      p.ProgramID,
		RewardMint:     p.RewardMint,
		RatePerDay:     p.RatePerDay,
		RewardDecimals: p.RewardDecimals,
		Mode:           p.Mode.String(),
		Catalog:        p.Catalog,
		Authorities: Authorities{
			Program: auth.Program(),
			Custody: auth.Custody(),
			Mint:    auth.Mint(),
		},
	}
	if pub := n.prog.OraclePublicKey(); pub != nil {
		res.OracleKey = crypto.CompressPubkey(pub)
	}
	return utils.WriteJSON(w, res)
}

func (n *Node) handleTime(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, utils.M{"now": n.clock.Now()})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
	sub.Path("/params").
		Methods(http.MethodGet).
		Name("node_get_params").
		HandlerFunc(utils.WrapHandlerFunc(n.handleParams))
	sub.Path("/time").
		Methods(http.MethodGet).
		Name("node_get_time").
		HandlerFunc(utils.WrapHandlerFunc(n.handleTime))
}
