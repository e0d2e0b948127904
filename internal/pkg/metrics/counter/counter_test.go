package counter

import (
	"testing"
)

func TestParseCounters(t *testing.T) {
	data := map[string]string{
		EventPaymentCreated:   "12",
		EventRenewalFailed:    "3",
		"corrupt":             "not-a-number",
		EventInvoiceGenerated: "0",
	}

	counters := parseCounters(data)

	if counters[EventPaymentCreated] != 12 {
		t.Errorf("Expected 12 payments created, got %d", counters[EventPaymentCreated])
	}
	if counters[EventRenewalFailed] != 3 {
		t.Errorf("Expected 3 failed renewals, got %d", counters[EventRenewalFailed])
	}
	if counters[EventInvoiceGenerated] != 0 {
		t.Errorf("Expected 0 invoices generated, got %d", counters[EventInvoiceGenerated])
	}
	if _, ok := counters["corrupt"]; ok {
		t.Error("Expected corrupt value to be skipped")
	}
}

func TestIncrementWithoutClient(t *testing.T) {
	// Without an initialized Redis client the counters are no-ops.
	if err := Increment(EventPaymentCreated); err != nil {
		t.Fatalf("Increment without client should be a no-op, got %v", err)
	}

	counters, err := Snapshot()
	if err != nil {
		t.Fatalf("Snapshot without client should be a no-op, got %v", err)
	}
	if len(counters) != 0 {
		t.Errorf("Expected empty snapshot, got %v", counters)
	}

	drained, err := Drain()
	if err != nil {
		t.Fatalf("Drain without client should be a no-op, got %v", err)
	}
	if len(drained) != 0 {
		t.Errorf("Expected empty drain, got %v", drained)
	}
}
