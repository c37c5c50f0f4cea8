// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"context"
	"errors"

	"github.com/stakebox/stakebox/builtin/reverts"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/metrics"
)

var (
	logger = log.WithContext("pkg", "oracle")

	metricFulfillments = metrics.LazyLoadCounterVec("oracle_fulfillments_total", []string{"result"})
	metricQueueDropped = metrics.LazyLoadCounter("oracle_queue_dropped_total")
)

// FulfillFunc fulfills the request account ref in its own transaction.
type FulfillFunc func(ctx context.Context, ref ledger.Address) error

// Fulfiller answers randomness requests as they are announced.
type Fulfiller struct {
	fulfill FulfillFunc
	queue   chan ledger.Address
}

// NewFulfiller creates a fulfiller holding up to queueSize unanswered requests.
func NewFulfiller(fulfill FulfillFunc, queueSize int) *Fulfiller {
	return &Fulfiller{
		fulfill: fulfill,
		queue:   make(chan ledger.Address, queueSize),
	}
}

// Notify queues ref for fulfillment. It never blocks; when the queue is full
// the request is dropped and has to be fulfilled manually.
func (f *Fulfiller) Notify(ref ledger.Address) {
	select {
	case f.queue <- ref:
	default:
		metricQueueDropped().Add(1)
		logger.Warn("fulfill queue full, request dropped", "ref", ref)
	}
}

// Run fulfills queued requests until ctx is done.
func (f *Fulfiller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ref := <-f.queue:
			f.handle(ctx, ref)
		}
	}
}

func (f *Fulfiller) handle(ctx context.Context, ref ledger.Address) {
	err := f.fulfill(ctx, ref)
	switch {
	case err == nil:
		metricFulfillments().AddWithLabel(1, map[string]string{"result": "ok"})
		logger.Debug("randomness fulfilled", "ref", ref)
	case errors.Is(err, reverts.ErrNothingToFulfill):
		metricFulfillments().AddWithLabel(1, map[string]string{"result": "skipped"})
		logger.Debug("nothing to fulfill", "ref", ref)
	default:
		metricFulfillments().AddWithLabel(1, map[string]string{"result": "failed"})
		logger.Warn("failed to fulfill randomness", "ref", ref, "err", err)
	}
}
