package billing

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/feepilot/feepilot/app/models"
	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/cache"
	"github.com/feepilot/feepilot/internal/pkg/metrics/counter"
	"gorm.io/gorm"
)

const (
	renewalReportCacheKey = "billing:renewals:last_run"
	statsCacheKey         = "billing:stats"
	statsCacheTTL         = time.Minute
)

// ReportCache stores small JSON documents with a TTL. The redis-backed
// adapter below satisfies it; a nil cache disables report caching.
type ReportCache interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
}

type redisReportCache struct{}

func (redisReportCache) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

func (redisReportCache) Get(key string) (string, error) {
	return cache.Get(key)
}

// NewRedisReportCache returns the redis-backed report cache.
func NewRedisReportCache() ReportCache {
	return redisReportCache{}
}

// Service owns the cross-entity billing rules: payment/invoice status
// mirroring, invoice generation, default payment methods and subscription
// renewals. Single-entity reads go straight to the repositories.
type Service struct {
	repos   *repository.Repositories
	gateway Gateway
	cache   ReportCache
}

// NewService creates a billing service from injected collaborators.
func NewService(repos *repository.Repositories, gateway Gateway, reportCache ReportCache) *Service {
	return &Service{repos: repos, gateway: gateway, cache: reportCache}
}

// NewServiceFromDB creates a billing service from a GORM DB handle, with the
// simulated gateway and the redis report cache.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(repository.NewRepositories(db), NewSimulatedGateway(), NewRedisReportCache())
}

// CreatePayment records a new monetary obligation for a student.
func (s *Service) CreatePayment(ctx context.Context, in CreatePaymentInput) (*models.Payment, error) {
	_ = ctx
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.Description) == "" || in.DueDate.IsZero() {
		return nil, NewValidationError("student_id, amount, description and due_date are required")
	}
	if in.Amount <= 0 {
		return nil, NewValidationError("amount must be positive")
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.PaymentStatusPending
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = models.PaymentMethodCreditCard
	}
	gateway := strings.ToLower(strings.TrimSpace(in.PaymentGateway))
	if gateway == "" {
		gateway = models.GatewayManual
	}

	paymentDate := in.PaymentDate
	if paymentDate == nil && status == models.PaymentStatusCompleted {
		now := time.Now()
		paymentDate = &now
	}

	payment := &models.Payment{
		StudentID:      strings.TrimSpace(in.StudentID),
		Amount:         in.Amount,
		Description:    strings.TrimSpace(in.Description),
		Status:         status,
		PaymentMethod:  method,
		PaymentGateway: gateway,
		DueDate:        in.DueDate,
		PaymentDate:    paymentDate,
	}
	if err := s.repos.Payment.Create(payment); err != nil {
		return nil, err
	}
	if err := counter.Increment(counter.EventPaymentCreated); err != nil {
		log.Printf("billing: counter increment failed: %v", err)
	}
	return payment, nil
}

// UpdatePaymentStatus overwrites a payment's status. Transitions are not
// restricted. When the new status is completed, the linked invoice (if any)
// is moved to completed as well; the payment write stays authoritative even
// if that cascade fails.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id, status string, paymentDate *time.Time) (*models.Payment, error) {
	_ = ctx
	status = strings.ToLower(strings.TrimSpace(status))
	if !isPaymentStatus(status) {
		return nil, NewValidationError("unknown payment status: " + status)
	}
	if _, err := s.getPayment(id); err != nil {
		return nil, err
	}

	if paymentDate == nil && status == models.PaymentStatusCompleted {
		now := time.Now()
		paymentDate = &now
	}
	if err := s.repos.Payment.UpdateStatus(id, status, paymentDate); err != nil {
		return nil, err
	}
	if status == models.PaymentStatusCompleted {
		s.cascadeInvoiceCompleted(id, paymentDate)
	}
	return s.getPayment(id)
}

// ProcessPayment charges a payment through the gateway adapter and stamps the
// result onto the record. When a payment method is given it must belong to
// the paying student.
func (s *Service) ProcessPayment(ctx context.Context, id, paymentMethodID, gatewayName string) (*models.Payment, error) {
	payment, err := s.getPayment(id)
	if err != nil {
		return nil, err
	}

	method := payment.PaymentMethod
	gateway := payment.PaymentGateway
	if paymentMethodID != "" {
		instrument, err := s.getPaymentMethod(paymentMethodID)
		if err != nil {
			return nil, err
		}
		if instrument.StudentID != payment.StudentID {
			return nil, &OwnershipError{Resource: "payment method", ID: paymentMethodID}
		}
		method = paymentMethodForInstrument(instrument.Type)
		if instrument.Provider != "" {
			gateway = instrument.Provider
		}
	}
	if g := strings.ToLower(strings.TrimSpace(gatewayName)); g != "" {
		gateway = g
	}

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		PaymentID: payment.ID,
		StudentID: payment.StudentID,
		Amount:    payment.Amount,
		Method:    method,
		Gateway:   gateway,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repos.Payment.UpdatePaymentDetails(id, result.TransactionID, result.Response, result.Status); err != nil {
		return nil, err
	}
	if err := counter.Increment(counter.EventPaymentProcessed); err != nil {
		log.Printf("billing: counter increment failed: %v", err)
	}
	if result.Status == models.PaymentStatusCompleted {
		now := time.Now()
		s.cascadeInvoiceCompleted(id, &now)
	}
	return s.getPayment(id)
}

// GenerateInvoice creates the invoice for a payment, or returns the existing
// one. A payment has at most one invoice, so this is idempotent. The second
// return value reports whether a new invoice was created.
func (s *Service) GenerateInvoice(ctx context.Context, paymentID string) (*models.Invoice, bool, error) {
	_ = ctx
	payment, err := s.getPayment(paymentID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repos.Invoice.GetByPaymentID(paymentID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	invoice := &models.Invoice{
		PaymentID:   payment.ID,
		StudentID:   payment.StudentID,
		Amount:      payment.Amount,
		Description: payment.Description,
		Status:      payment.Status,
		DueDate:     payment.DueDate,
		IssueDate:   time.Now(),
	}
	if payment.Status == models.PaymentStatusCompleted && payment.PaymentDate != nil {
		invoice.PaidDate = payment.PaymentDate
	}
	if err := s.repos.Invoice.Create(invoice); err != nil {
		return nil, false, err
	}
	if err := counter.Increment(counter.EventInvoiceGenerated); err != nil {
		log.Printf("billing: counter increment failed: %v", err)
	}
	return invoice, true, nil
}

// CreateInvoice creates an invoice explicitly. Fields left empty are filled
// from the owning payment; a payment that already has an invoice is rejected.
func (s *Service) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	_ = ctx
	if strings.TrimSpace(in.PaymentID) == "" {
		return nil, NewValidationError("payment_id is required")
	}
	payment, err := s.getPayment(in.PaymentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Invoice.GetByPaymentID(payment.ID); err == nil {
		return nil, NewValidationError("payment " + payment.ID + " already has an invoice")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	amount := in.Amount
	if amount == 0 {
		amount = payment.Amount
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = payment.Description
	}
	dueDate := in.DueDate
	if dueDate.IsZero() {
		dueDate = payment.DueDate
	}

	invoice := &models.Invoice{
		PaymentID:   payment.ID,
		StudentID:   payment.StudentID,
		Amount:      amount,
		Description: description,
		Status:      payment.Status,
		DueDate:     dueDate,
		IssueDate:   time.Now(),
	}
	if err := s.repos.Invoice.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoiceStatus overwrites an invoice's status. When the new status is
// completed, the owning payment is moved to completed as well; the invoice
// write stays authoritative even if that cascade fails.
func (s *Service) UpdateInvoiceStatus(ctx context.Context, id, status string, paidDate *time.Time) (*models.Invoice, error) {
	_ = ctx
	status = strings.ToLower(strings.TrimSpace(status))
	if !isPaymentStatus(status) {
		return nil, NewValidationError("unknown invoice status: " + status)
	}
	invoice, err := s.getInvoice(id)
	if err != nil {
		return nil, err
	}

	if paidDate == nil && status == models.InvoiceStatusCompleted {
		now := time.Now()
		paidDate = &now
	}
	if err := s.repos.Invoice.UpdateStatus(id, status, paidDate); err != nil {
		return nil, err
	}
	if status == models.InvoiceStatusCompleted {
		s.cascadePaymentCompleted(invoice.PaymentID, paidDate)
	}
	return s.getInvoice(id)
}

// CreatePaymentMethod stores a new payment instrument for a student.
func (s *Service) CreatePaymentMethod(ctx context.Context, in CreatePaymentMethodInput) (*models.PaymentMethod, error) {
	_ = ctx
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.Type) == "" {
		return nil, NewValidationError("student_id and type are required")
	}
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		provider = models.GatewayManual
	}

	method := &models.PaymentMethod{
		StudentID:      strings.TrimSpace(in.StudentID),
		Type:           strings.ToLower(strings.TrimSpace(in.Type)),
		Provider:       provider,
		Token:          in.Token,
		LastFour:       in.LastFour,
		ExpiryMonth:    in.ExpiryMonth,
		ExpiryYear:     in.ExpiryYear,
		CardBrand:      in.CardBrand,
		IsDefault:      in.IsDefault,
		BillingDetails: in.BillingDetails,
	}
	if err := s.repos.PaymentMethod.Create(method); err != nil {
		return nil, err
	}
	return method, nil
}

// UpdatePaymentMethod applies a partial update. When a student id is given
// the method must belong to that student.
func (s *Service) UpdatePaymentMethod(ctx context.Context, id, studentID string, fields map[string]interface{}) (*models.PaymentMethod, error) {
	_ = ctx
	method, err := s.getPaymentMethod(id)
	if err != nil {
		return nil, err
	}
	if studentID != "" && method.StudentID != studentID {
		return nil, &OwnershipError{Resource: "payment method", ID: id}
	}
	if len(fields) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	if err := s.repos.PaymentMethod.Update(id, fields); err != nil {
		return nil, err
	}
	return s.getPaymentMethod(id)
}

// SetDefaultPaymentMethod makes the given method its owner's default.
func (s *Service) SetDefaultPaymentMethod(ctx context.Context, id, studentID string) (*models.PaymentMethod, error) {
	_ = ctx
	method, err := s.getPaymentMethod(id)
	if err != nil {
		return nil, err
	}
	if studentID != "" && method.StudentID != studentID {
		return nil, &OwnershipError{Resource: "payment method", ID: id}
	}
	if err := s.repos.PaymentMethod.SetDefault(id); err != nil {
		return nil, err
	}
	return s.getPaymentMethod(id)
}

// DeletePaymentMethod removes a payment instrument.
func (s *Service) DeletePaymentMethod(ctx context.Context, id, studentID string) error {
	_ = ctx
	method, err := s.getPaymentMethod(id)
	if err != nil {
		return err
	}
	if studentID != "" && method.StudentID != studentID {
		return &OwnershipError{Resource: "payment method", ID: id}
	}
	return s.repos.PaymentMethod.Delete(id)
}

// CreateSubscription stores a recurring billing definition. The next billing
// date defaults to one frequency period after the start date.
func (s *Service) CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*models.Subscription, error) {
	_ = ctx
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, NewValidationError("student_id, name, amount and frequency are required")
	}
	if in.Amount <= 0 {
		return nil, NewValidationError("amount must be positive")
	}
	frequency := normalizeFrequency(in.Frequency)
	if frequency == "" {
		return nil, NewValidationError("unknown frequency: " + in.Frequency)
	}

	startDate := in.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}
	nextBilling := in.NextBillingDate
	if nextBilling.IsZero() {
		nextBilling = advanceBillingDate(startDate, frequency)
	}

	if in.PaymentMethodID != "" {
		method, err := s.getPaymentMethod(in.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if method.StudentID != strings.TrimSpace(in.StudentID) {
			return nil, &OwnershipError{Resource: "payment method", ID: in.PaymentMethodID}
		}
	}

	sub := &models.Subscription{
		StudentID:       strings.TrimSpace(in.StudentID),
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Amount:          in.Amount,
		Frequency:       frequency,
		StartDate:       startDate,
		EndDate:         in.EndDate,
		NextBillingDate: nextBilling,
		Status:          models.SubscriptionStatusActive,
		PaymentMethodID: in.PaymentMethodID,
	}
	if err := s.repos.Subscription.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubscriptionStatus overwrites a subscription's status.
func (s *Service) UpdateSubscriptionStatus(ctx context.Context, id, status string) (*models.Subscription, error) {
	_ = ctx
	status = strings.ToLower(strings.TrimSpace(status))
	if !isSubscriptionStatus(status) {
		return nil, NewValidationError("unknown subscription status: " + status)
	}
	if _, err := s.getSubscription(id); err != nil {
		return nil, err
	}
	if err := s.repos.Subscription.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.getSubscription(id)
}

// CancelSubscription sets status cancelled and stamps the end date.
func (s *Service) CancelSubscription(ctx context.Context, id string, endDate *time.Time) (*models.Subscription, error) {
	_ = ctx
	if _, err := s.getSubscription(id); err != nil {
		return nil, err
	}
	if err := s.repos.Subscription.Cancel(id, endDate); err != nil {
		return nil, err
	}
	return s.getSubscription(id)
}

// UpdateSubscriptionPaymentMethod links a payment method to a subscription.
// The method must belong to the subscription's student.
func (s *Service) UpdateSubscriptionPaymentMethod(ctx context.Context, id, paymentMethodID string) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.getSubscription(id)
	if err != nil {
		return nil, err
	}
	method, err := s.getPaymentMethod(paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method.StudentID != sub.StudentID {
		return nil, &OwnershipError{Resource: "payment method", ID: paymentMethodID}
	}
	if err := s.repos.Subscription.UpdatePaymentMethod(id, paymentMethodID); err != nil {
		return nil, err
	}
	return s.getSubscription(id)
}

// ProcessRenewal advances a subscription by one billing period: it creates
// the next pending payment (due now) and persists the advanced next billing
// date. The subscription's own status is untouched; completion happens later
// through the normal payment status path.
func (s *Service) ProcessRenewal(ctx context.Context, sub *models.Subscription) (*models.Payment, error) {
	_ = ctx
	newNextBillingDate := advanceBillingDate(sub.NextBillingDate, sub.Frequency)

	method := models.PaymentMethodCreditCard
	gateway := models.GatewayManual
	if sub.PaymentMethodID != "" {
		instrument, err := s.repos.PaymentMethod.GetByID(sub.PaymentMethodID)
		if err != nil {
			// The linked instrument may have been deleted since; bill with
			// the defaults rather than skipping the renewal.
			log.Printf("billing: renewal of subscription %s: payment method %s unavailable: %v", sub.ID, sub.PaymentMethodID, err)
		} else {
			method = paymentMethodForInstrument(instrument.Type)
			if instrument.Provider != "" {
				gateway = instrument.Provider
			}
		}
	}

	payment := &models.Payment{
		StudentID:      sub.StudentID,
		Amount:         sub.Amount,
		Description:    "Subscription renewal: " + sub.Name,
		Status:         models.PaymentStatusPending,
		PaymentMethod:  method,
		PaymentGateway: gateway,
		DueDate:        time.Now(),
	}
	if err := s.repos.Payment.Create(payment); err != nil {
		return nil, err
	}
	if err := s.repos.Subscription.UpdateNextBillingDate(sub.ID, newNextBillingDate); err != nil {
		return nil, err
	}
	return payment, nil
}

// ProcessDueRenewals runs a renewal pass over every subscription due as of
// the given date. Subscriptions are processed independently; a failure is
// recorded in the report and does not abort the batch.
func (s *Service) ProcessDueRenewals(ctx context.Context, asOf time.Time) (*RenewalReport, error) {
	subs, err := s.repos.Subscription.GetDueForRenewal(asOf)
	if err != nil {
		return nil, err
	}

	report := &RenewalReport{
		RanAt:     time.Now(),
		AsOf:      asOf,
		Processed: len(subs),
		Results:   make([]RenewalResult, 0, len(subs)),
	}
	for i := range subs {
		sub := subs[i]
		result := RenewalResult{SubscriptionID: sub.ID, SubscriptionName: sub.Name}
		payment, err := s.ProcessRenewal(ctx, &sub)
		if err != nil {
			log.Printf("billing: renewal of subscription %s failed: %v", sub.ID, err)
			result.Error = err.Error()
			report.Failed++
		} else {
			result.Success = true
			result.PaymentID = payment.ID
			report.Succeeded++
		}
		report.Results = append(report.Results, result)
	}

	if report.Succeeded > 0 {
		if err := counter.IncrementBy(counter.EventRenewalSucceeded, int64(report.Succeeded)); err != nil {
			log.Printf("billing: counter increment failed: %v", err)
		}
	}
	if report.Failed > 0 {
		if err := counter.IncrementBy(counter.EventRenewalFailed, int64(report.Failed)); err != nil {
			log.Printf("billing: counter increment failed: %v", err)
		}
	}

	s.cacheRenewalReport(report)
	return report, nil
}

// LastRenewalReport returns the cached report of the most recent renewal pass.
func (s *Service) LastRenewalReport(ctx context.Context) (*RenewalReport, error) {
	_ = ctx
	if s.cache == nil {
		return nil, &NotFoundError{Resource: "renewal report", ID: "last_run"}
	}
	raw, err := s.cache.Get(renewalReportCacheKey)
	if err != nil {
		return nil, &NotFoundError{Resource: "renewal report", ID: "last_run"}
	}
	var report RenewalReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) cacheRenewalReport(report *RenewalReport) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		log.Printf("billing: marshal renewal report: %v", err)
		return
	}
	if err := s.cache.Set(renewalReportCacheKey, string(raw), 0); err != nil {
		log.Printf("billing: cache renewal report: %v", err)
	}
}

// GetStats aggregates payment totals for the dashboard, cached briefly.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	_ = ctx
	if s.cache != nil {
		if raw, err := s.cache.Get(statsCacheKey); err == nil {
			var stats Stats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	total, err := s.repos.Payment.Count()
	if err != nil {
		return nil, err
	}
	pending, err := s.repos.Payment.CountByStatus(models.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	completed, err := s.repos.Payment.CountByStatus(models.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repos.Payment.GetOverdue()
	if err != nil {
		return nil, err
	}
	pendingAmount, err := s.repos.Payment.SumByStatus(models.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	collectedAmount, err := s.repos.Payment.SumByStatus(models.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}

	events, err := counter.Snapshot()
	if err != nil {
		log.Printf("billing: counter snapshot failed: %v", err)
		events = map[string]int64{}
	}

	stats := &Stats{
		TotalPayments:   total,
		PendingCount:    pending,
		CompletedCount:  completed,
		OverdueCount:    int64(len(overdue)),
		PendingAmount:   pendingAmount,
		CollectedAmount: collectedAmount,
		EventCounts:     events,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(statsCacheKey, string(raw), statsCacheTTL); err != nil {
				log.Printf("billing: cache stats: %v", err)
			}
		}
	}
	return stats, nil
}

// cascadeInvoiceCompleted mirrors a completed payment onto its invoice. The
// payment write is authoritative; a failed cascade is logged, not rolled back.
func (s *Service) cascadeInvoiceCompleted(paymentID string, paidDate *time.Time) {
	invoice, err := s.repos.Invoice.GetByPaymentID(paymentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("billing: lookup invoice for payment %s: %v", paymentID, err)
		}
		return
	}
	if invoice.Status == models.InvoiceStatusCompleted {
		return
	}
	if err := s.repos.Invoice.UpdateStatus(invoice.ID, models.InvoiceStatusCompleted, paidDate); err != nil {
		log.Printf("billing: cascade completed to invoice %s: %v", invoice.ID, err)
	}
}

// cascadePaymentCompleted mirrors a completed invoice onto its payment.
func (s *Service) cascadePaymentCompleted(paymentID string, paidDate *time.Time) {
	payment, err := s.repos.Payment.GetByID(paymentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("billing: lookup payment %s: %v", paymentID, err)
		}
		return
	}
	if payment.Status == models.PaymentStatusCompleted {
		return
	}
	if err := s.repos.Payment.UpdateStatus(payment.ID, models.PaymentStatusCompleted, paidDate); err != nil {
		log.Printf("billing: cascade completed to payment %s: %v", payment.ID, err)
	}
}

func (s *Service) getPayment(id string) (*models.Payment, error) {
	payment, err := s.repos.Payment.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "payment", ID: id}
		}
		return nil, err
	}
	return payment, nil
}

func (s *Service) getInvoice(id string) (*models.Invoice, error) {
	invoice, err := s.repos.Invoice.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "invoice", ID: id}
		}
		return nil, err
	}
	return invoice, nil
}

func (s *Service) getPaymentMethod(id string) (*models.PaymentMethod, error) {
	method, err := s.repos.PaymentMethod.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "payment method", ID: id}
		}
		return nil, err
	}
	return method, nil
}

func (s *Service) getSubscription(id string) (*models.Subscription, error) {
	sub, err := s.repos.Subscription.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "subscription", ID: id}
		}
		return nil, err
	}
	return sub, nil
}

func isPaymentStatus(status string) bool {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed,
		models.PaymentStatusRefunded, models.PaymentStatusOverdue:
		return true
	default:
		return false
	}
}

func isSubscriptionStatus(status string) bool {
	switch status {
	case models.SubscriptionStatusActive, models.SubscriptionStatusCancelled,
		models.SubscriptionStatusExpired, models.SubscriptionStatusSuspended:
		return true
	default:
		return false
	}
}

// paymentMethodForInstrument maps an instrument type onto the payment method
// enum. The enums differ in one place: stored bank accounts pay by transfer.
func paymentMethodForInstrument(instrumentType string) string {
	if instrumentType == models.MethodTypeBankAccount {
		return models.PaymentMethodBankTransfer
	}
	return instrumentType
}
