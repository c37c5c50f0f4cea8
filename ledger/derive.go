// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "io"

var derivedAddressMarker = []byte("ProgramDerivedAddress")

// DeriveAddress computes the address owned by program for the given seeds.
// The same program and seeds always produce the same address, and no private key
// exists for it, so only the program can act on its behalf.
func DeriveAddress(program Address, seeds ...[]byte) Address {
	return Address(Blake2bFn(func(w io.Writer) {
		for _, s := range seeds {
			// length prefix keeps ("ab","c") and ("a","bc") apart
			w.Write([]byte{byte(len(s))})
			w.Write(s)
		}
		w.Write(program[:])
		w.Write(derivedAddressMarker)
	}))
}
