// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/stakebox/stakebox/metrics"
)

var (
	metricInserted             = metrics.LazyLoadCounter("logdb_events_inserted_total")
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricStmtCacheSize        = metrics.LazyLoadGauge("logdb_stmt_cache_size")
	metricStmtCacheHitRate     = metrics.LazyLoadGauge("logdb_stmt_cache_hit_permille")
	metricLimitBucket          = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	params := make([]string, 0, 3)
	if filter.Owner != nil {
		params = append(params, "owner")
	}
	if len(filter.Kinds) > 0 {
		params = append(params, "kind")
	}
	if filter.Range != nil {
		params = append(params, "range")
	}
	metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(params, ",")})

	order := string(ASC)
	if filter.Order == DESC {
		order = string(DESC)
	}
	metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": order})

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": "event"})
	}
}
