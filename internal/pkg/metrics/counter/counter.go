// Package counter keeps lightweight billing event counters in a Redis hash.
// Increments are fire and forget; a missing Redis client turns them into
// no-ops so the billing flow never blocks on metrics.
package counter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feepilot/feepilot/internal/pkg/cache"
)

const billingEventsKey = "billing:counters:events"

// Event names tracked in the billing counter hash.
const (
	EventPaymentCreated   = "payments_created"
	EventPaymentProcessed = "payments_processed"
	EventInvoiceGenerated = "invoices_generated"
	EventRenewalSucceeded = "renewals_succeeded"
	EventRenewalFailed    = "renewals_failed"
)

// Increment bumps the counter for an event by one.
func Increment(event string) error {
	return IncrementBy(event, 1)
}

// IncrementBy bumps the counter for an event. A nil Redis client is a no-op.
func IncrementBy(event string, delta int64) error {
	rdb := cache.Client()
	if rdb == nil {
		return nil
	}
	return rdb.HIncrBy(context.Background(), billingEventsKey, event, delta).Err()
}

// Snapshot returns the current counter values without resetting them.
func Snapshot() (map[string]int64, error) {
	rdb := cache.Client()
	if rdb == nil {
		return map[string]int64{}, nil
	}

	data, err := rdb.HGetAll(context.Background(), billingEventsKey).Result()
	if err != nil {
		return nil, err
	}
	return parseCounters(data), nil
}

// Drain atomically moves the counter hash aside and returns its values,
// resetting all counters to zero. In-flight increments land in the fresh
// hash and are not lost.
func Drain() (map[string]int64, error) {
	ctx := context.Background()
	rdb := cache.Client()
	if rdb == nil {
		return map[string]int64{}, nil
	}

	tmpKey := fmt.Sprintf("%s:tmp:%d", billingEventsKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", billingEventsKey, tmpKey).Err(); err != nil {
		// Nothing to drain when the key does not exist
		if strings.Contains(strings.ToLower(err.Error()), "no such key") || err.Error() == "redis: nil" {
			return map[string]int64{}, nil
		}
		return nil, err
	}
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return nil, err
	}
	return parseCounters(data), nil
}

func parseCounters(data map[string]string) map[string]int64 {
	counters := make(map[string]int64, len(data))
	for event, raw := range data {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		counters[event] = value
	}
	return counters
}
