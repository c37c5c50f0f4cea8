// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"encoding/binary"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/ledger"
)

// DevAccount account for development.
type DevAccount struct {
	Address    ledger.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// AddressOf derives the ledger address of a public key.
func AddressOf(pub *ecdsa.PublicKey) ledger.Address {
	return ledger.Address(ledger.Blake2b(crypto.FromECDSAPub(pub)))
}

// DevAccounts returns the pre-funded accounts of the dev network.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{AddressOf(&pk.PublicKey), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevCollectibleMint returns the mint of the i-th collectible of the dev network.
func DevCollectibleMint(i int) ledger.Address {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i))
	return ledger.DeriveAddress(ledger.MetadataProgram, []byte("dev-collectible"), b[:])
}

// DevCollectibles gives each dev account perAccount collectibles.
func DevCollectibles(perAccount int) []Collectible {
	var out []Collectible
	for i, acc := range DevAccounts() {
		for j := 0; j < perAccount; j++ {
			out = append(out, Collectible{
				Mint:  DevCollectibleMint(i*perAccount + j),
				Owner: acc.Address,
			})
		}
	}
	return out
}

// NewDevnet creates the genesis of the dev network: the program of p plus two
// collectibles per dev account.
func NewDevnet(p *params.Params) (*Genesis, error) {
	return New("devnet", p, DevCollectibles(2))
}
