// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb keeps the history of committed program events in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"slices"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/program"
)

type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New creates or opens the log db at path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps in memory dbs alive and serializes writes
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem creates a log db in memory.
func NewMem() (*LogDB, error) {
	return New("file::memory:")
}

func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert appends events in one transaction.
func (db *LogDB) Insert(events ...*program.Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare("INSERT INTO event(kind, owner, asset, oracle, prize, amount, tier, outcome, time) VALUES(?,?,?,?,?,?,?,?,?)")
	if err != nil {
		return err
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	txStmt := tx.Stmt(stmt)
	for _, ev := range events {
		var amount [8]byte
		binary.BigEndian.PutUint64(amount[:], ev.Amount)
		if _, err := txStmt.Exec(
			string(ev.Kind),
			ev.Owner.Bytes(),
			addressBytes(ev.Asset),
			addressBytes(ev.Oracle),
			addressBytes(ev.Prize),
			amount[:],
			int64(ev.Tier),
			ev.Outcome,
			int64(ev.Time),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "insert %v", ev.Kind)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricInserted().Add(int64(len(events)))
	return nil
}

// FilterEvents returns the events matching filter. A nil filter returns all.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT "+eventColumns+" FROM event ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := "SELECT " + eventColumns + " FROM event WHERE 1"
	if filter.Owner != nil {
		args = append(args, filter.Owner.Bytes())
		stmt += " AND owner = ?"
	}
	if len(filter.Kinds) > 0 {
		// unique kinds keep the number of cached statements bounded
		kinds := slices.Clone(filter.Kinds)
		slices.Sort(kinds)
		kinds = slices.Compact(kinds)
		marks := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			args = append(args, string(kind))
			marks = append(marks, "?")
		}
		stmt += " AND kind IN (" + strings.Join(marks, ",") + ")"
	}
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND time <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	prepared, err := db.stmtCache.Prepare(stmt)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			kind    string
			owner   []byte
			asset   []byte
			oracle  []byte
			prize   []byte
			amount  []byte
			tier    int64
			outcome string
			time    int64
		)
		if err := rows.Scan(&seq, &kind, &owner, &asset, &oracle, &prize, &amount, &tier, &outcome, &time); err != nil {
			return nil, err
		}
		ev := &Event{
			Seq: uint64(seq),
			Event: program.Event{
				Kind:    program.EventKind(kind),
				Owner:   ledger.BytesToAddress(owner),
				Asset:   optionalAddress(asset),
				Oracle:  optionalAddress(oracle),
				Prize:   optionalAddress(prize),
				Tier:    uint64(tier),
				Outcome: outcome,
				Time:    uint64(time),
			},
		}
		if len(amount) == 8 {
			ev.Amount = binary.BigEndian.Uint64(amount)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func addressBytes(addr *ledger.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func optionalAddress(b []byte) *ledger.Address {
	if len(b) == 0 {
		return nil
	}
	addr := ledger.BytesToAddress(b)
	return &addr
}
