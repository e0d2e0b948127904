package billing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/feepilot/feepilot/app/models"
)

// ChargeRequest carries everything a gateway needs to charge a payment.
type ChargeRequest struct {
	PaymentID string
	StudentID string
	Amount    float64
	Method    string
	Gateway   string
}

// ChargeResult is the normalized outcome of a gateway charge.
type ChargeResult struct {
	TransactionID string
	Status        string
	Response      models.JSON
}

// Gateway abstracts the payment provider so a real integration can be
// substituted without touching the payment store contract.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// SimulatedGateway fabricates successful charges locally. No external call is
// made: a transaction id is generated and a synthetic provider response is
// attached, mirroring what a real adapter would return.
type SimulatedGateway struct{}

// NewSimulatedGateway creates the bundled no-op gateway adapter.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	_ = ctx
	txID, err := generateTransactionID()
	if err != nil {
		return nil, err
	}

	response := fmt.Sprintf(
		`{"gateway":%q,"transaction_id":%q,"status":"success","amount":%.2f,"method":%q,"processed_at":%q}`,
		req.Gateway, txID, req.Amount, req.Method, time.Now().UTC().Format(time.RFC3339),
	)

	return &ChargeResult{
		TransactionID: txID,
		Status:        models.PaymentStatusCompleted,
		Response:      models.JSON(response),
	}, nil
}

func generateTransactionID() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "TXN-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
