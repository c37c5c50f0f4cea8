// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/lvldb"
	"github.com/stakebox/stakebox/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	stateProcs []func(state *state.State) error
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID computes the genesis id on a throw-away store.
func (b *Builder) ComputeID() (ledger.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return ledger.Bytes32{}, err
	}
	defer db.Close()

	creator, err := state.NewCreator(db, 0)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	st, err := b.build(creator)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return st.Stage().Hash(), nil
}

func (b *Builder) build(creator *state.Creator) (*state.State, error) {
	st := creator.NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	return st, nil
}

// Build runs the state processes and commits them together with the genesis
// id. It returns the id.
func (b *Builder) Build(creator *state.Creator) (ledger.Bytes32, error) {
	st, err := b.build(creator)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	id := st.Stage().Hash()
	st.SetRawStorage(metaAddress, idKey, id.Bytes())
	if err := st.Stage().Commit(); err != nil {
		return ledger.Bytes32{}, errors.Wrap(err, "commit state")
	}
	return id, nil
}
