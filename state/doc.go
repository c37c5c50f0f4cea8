// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages program storage slots.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv batch ]
//	         |
//	   [ slot cache ]
//	         |
//	 [ committed kv store ]
//
// A State lives for exactly one operation. Nothing it writes is visible to other
// states until its Stage is committed, and a Stage commits in one atomic batch.
package state
