// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// SecondsPerDay is the accrual period reward rates are quoted in.
const SecondsPerDay uint64 = 24 * 60 * 60

var (
	// TokenProgram owns mints and token accounts.
	TokenProgram = BytesToAddress([]byte("token-program"))
	// MetadataProgram owns the edition accounts of collectibles and performs custody.
	MetadataProgram = BytesToAddress([]byte("metadata-program"))
	// OracleProgram owns randomness request accounts.
	OracleProgram = BytesToAddress([]byte("oracle-program"))
)
