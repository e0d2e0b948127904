package billing

import (
	"time"

	"github.com/feepilot/feepilot/app/models"
)

// CreatePaymentInput is the normalized input for payment creation.
type CreatePaymentInput struct {
	StudentID      string
	Amount         float64
	Description    string
	DueDate        time.Time
	Status         string
	PaymentMethod  string
	PaymentGateway string
	PaymentDate    *time.Time
}

// CreateInvoiceInput is the normalized input for explicit invoice creation.
// Fields left zero are filled from the owning payment.
type CreateInvoiceInput struct {
	PaymentID   string
	Amount      float64
	Description string
	DueDate     time.Time
}

// CreatePaymentMethodInput is the normalized input for storing an instrument.
type CreatePaymentMethodInput struct {
	StudentID      string
	Type           string
	Provider       string
	Token          string
	LastFour       string
	ExpiryMonth    int
	ExpiryYear     int
	CardBrand      string
	IsDefault      bool
	BillingDetails models.JSON
}

// CreateSubscriptionInput is the normalized input for a recurring definition.
type CreateSubscriptionInput struct {
	StudentID       string
	Name            string
	Description     string
	Amount          float64
	Frequency       string
	StartDate       time.Time
	EndDate         *time.Time
	NextBillingDate time.Time
	PaymentMethodID string
}

// RenewalResult is the per-subscription outcome of a renewal pass.
type RenewalResult struct {
	SubscriptionID   string `json:"subscription_id"`
	SubscriptionName string `json:"subscription_name"`
	Success          bool   `json:"success"`
	PaymentID        string `json:"payment_id,omitempty"`
	Error            string `json:"error,omitempty"`
}

// RenewalReport summarizes a batch renewal pass. One subscription failing
// does not abort the batch; every outcome is collected here.
type RenewalReport struct {
	RanAt     time.Time       `json:"ran_at"`
	AsOf      time.Time       `json:"as_of"`
	Processed int             `json:"processed"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []RenewalResult `json:"results"`
}

// Stats aggregates payment totals for the dashboard.
type Stats struct {
	TotalPayments   int64            `json:"total_payments"`
	PendingCount    int64            `json:"pending_count"`
	CompletedCount  int64            `json:"completed_count"`
	OverdueCount    int64            `json:"overdue_count"`
	PendingAmount   float64          `json:"pending_amount"`
	CollectedAmount float64          `json:"collected_amount"`
	EventCounts     map[string]int64 `json:"event_counts,omitempty"`
	GeneratedAt     string           `json:"generated_at"`
}
