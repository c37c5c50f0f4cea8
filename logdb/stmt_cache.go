// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"

	"github.com/stakebox/stakebox/cache"
)

// stmtCache keeps the prepared insert and filter statements. Filter queries
// are built from a small set of clauses, so the set of keys stays bounded.
type stmtCache struct {
	db    *sql.DB
	mu    sync.RWMutex
	stmts map[string]*sql.Stmt
	stats cache.Stats
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{db: db, stmts: make(map[string]*sql.Stmt)}
}

func (sc *stmtCache) Prepare(query string) (*sql.Stmt, error) {
	sc.mu.RLock()
	stmt, ok := sc.stmts[query]
	sc.mu.RUnlock()
	if ok {
		sc.hit()
		return stmt, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if stmt, ok := sc.stmts[query]; ok {
		sc.hit()
		return stmt, nil
	}
	stmt, err := sc.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(err, "prepare")
	}
	sc.stmts[query] = stmt
	sc.stats.Miss()
	metricStmtCacheSize().Set(int64(len(sc.stmts)))
	return stmt, nil
}

func (sc *stmtCache) hit() {
	sc.stats.Hit()
	if changed, _, _ := sc.stats.Stats(); changed {
		metricStmtCacheHitRate().Set(int64(sc.stats.HitRate() * 1000))
	}
}

func (sc *stmtCache) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.stmts)
}

// Clear closes and drops every statement.
func (sc *stmtCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for query, stmt := range sc.stmts {
		_ = stmt.Close()
		delete(sc.stmts, query)
	}
	metricStmtCacheSize().Set(0)
}
