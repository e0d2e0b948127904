package billing

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/feepilot/feepilot/app/models"
)

func TestSimulatedGatewayCharge(t *testing.T) {
	gw := NewSimulatedGateway()

	result, err := gw.Charge(context.Background(), ChargeRequest{
		PaymentID: "p1",
		StudentID: "s1",
		Amount:    149.99,
		Method:    models.PaymentMethodCreditCard,
		Gateway:   models.GatewayStripe,
	})
	if err != nil {
		t.Fatalf("charge failed: %v", err)
	}

	if result.Status != models.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %q", result.Status)
	}
	if !strings.HasPrefix(result.TransactionID, "TXN-") {
		t.Fatalf("unexpected transaction id %q", result.TransactionID)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(result.Response, &response); err != nil {
		t.Fatalf("gateway response is not valid JSON: %v", err)
	}
	if response["gateway"] != models.GatewayStripe {
		t.Fatalf("expected gateway stripe in response, got %v", response["gateway"])
	}
	if response["status"] != "success" {
		t.Fatalf("expected success status in response, got %v", response["status"])
	}
}

func TestSimulatedGatewayUniqueTransactionIDs(t *testing.T) {
	gw := NewSimulatedGateway()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		result, err := gw.Charge(context.Background(), ChargeRequest{PaymentID: "p", Amount: 1})
		if err != nil {
			t.Fatalf("charge failed: %v", err)
		}
		if seen[result.TransactionID] {
			t.Fatalf("transaction id %q issued twice", result.TransactionID)
		}
		seen[result.TransactionID] = true
	}
}
