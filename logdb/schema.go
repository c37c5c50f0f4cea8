// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	owner BLOB(32) NOT NULL,
	asset BLOB(32),
	oracle BLOB(32),
	prize BLOB(32),
	amount BLOB(8),
	tier INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS eventOwnerIndex ON event(owner);
CREATE INDEX IF NOT EXISTS eventKindIndex ON event(kind);
CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(time);
`

const eventColumns = "seq, kind, owner, asset, oracle, prize, amount, tier, outcome, time"
