package billing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/feepilot/feepilot/app/models"
	"github.com/feepilot/feepilot/app/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the semantics the GORM
// implementations promise: newest-first ordering, clear-then-set for default
// payment methods and per-day invoice numbering.

func newFakeRepos() *repository.Repositories {
	return &repository.Repositories{
		Payment:       &fakePaymentRepo{payments: map[string]*models.Payment{}},
		Invoice:       &fakeInvoiceRepo{invoices: map[string]*models.Invoice{}},
		PaymentMethod: &fakeMethodRepo{methods: map[string]*models.PaymentMethod{}},
		Subscription:  &fakeSubscriptionRepo{subs: map[string]*models.Subscription{}},
	}
}

type fakePaymentRepo struct {
	payments  map[string]*models.Payment
	createErr error
	createSeq int
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.createSeq++
	p.CreatedAt = time.Now().Add(time.Duration(r.createSeq) * time.Millisecond)
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) GetByStudentID(studentID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) List(offset, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) GetByStatus(status string, offset, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(id, status string, paymentDate *time.Time) error {
	p, ok := r.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	if paymentDate != nil {
		p.PaymentDate = paymentDate
	}
	return nil
}

func (r *fakePaymentRepo) UpdatePaymentDetails(id, transactionID string, gatewayResponse models.JSON, status string) error {
	p, ok := r.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	p.TransactionID = transactionID
	p.GatewayResponse = gatewayResponse
	p.Status = status
	p.PaymentDate = &now
	return nil
}

func (r *fakePaymentRepo) GetOverdue() ([]models.Payment, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == models.PaymentStatusPending && p.DueDate.Before(today) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Count() (int64, error) {
	return int64(len(r.payments)), nil
}

func (r *fakePaymentRepo) CountByStatus(status string) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) SumByStatus(status string) (float64, error) {
	var total float64
	for _, p := range r.payments {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*models.Invoice
}

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.IssueDate.IsZero() {
		inv.IssueDate = time.Now()
	}
	if inv.InvoiceNumber == "" {
		prefix := "INV-" + time.Now().Format("20060102") + "-"
		seq := 0
		for _, existing := range r.invoices {
			if strings.HasPrefix(existing.InvoiceNumber, prefix) {
				var n int
				fmt.Sscanf(strings.TrimPrefix(existing.InvoiceNumber, prefix), "%d", &n)
				if n > seq {
					seq = n
				}
			}
		}
		inv.InvoiceNumber = fmt.Sprintf("%s%04d", prefix, seq+1)
	}
	for _, existing := range r.invoices {
		if existing.PaymentID == inv.PaymentID {
			return errors.New("duplicate invoice for payment " + inv.PaymentID)
		}
	}
	clone := *inv
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *fakeInvoiceRepo) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvoiceRepo) GetByStudentID(studentID string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.StudentID == studentID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetByPaymentID(paymentID string) (*models.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.PaymentID == paymentID {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvoiceRepo) List(offset, limit int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetByStatus(status string, offset, limit int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.Status == status {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetOverdue() ([]models.Invoice, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.Status == models.InvoiceStatusPending && inv.DueDate.Before(today) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string, paidDate *time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Status = status
	if paidDate != nil {
		inv.PaidDate = paidDate
	}
	return nil
}

type fakeMethodRepo struct {
	methods map[string]*models.PaymentMethod
}

func (r *fakeMethodRepo) Create(m *models.PaymentMethod) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.IsDefault {
		r.clearDefaults(m.StudentID)
	}
	clone := *m
	r.methods[m.ID] = &clone
	return nil
}

func (r *fakeMethodRepo) clearDefaults(studentID string) {
	for _, m := range r.methods {
		if m.StudentID == studentID {
			m.IsDefault = false
		}
	}
}

func (r *fakeMethodRepo) GetByID(id string) (*models.PaymentMethod, error) {
	m, ok := r.methods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMethodRepo) GetByStudentID(studentID string) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	for _, m := range r.methods {
		if m.StudentID == studentID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsDefault && !out[j].IsDefault })
	return out, nil
}

func (r *fakeMethodRepo) GetDefaultForStudent(studentID string) (*models.PaymentMethod, error) {
	for _, m := range r.methods {
		if m.StudentID == studentID && m.IsDefault {
			clone := *m
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMethodRepo) SetDefault(id string) error {
	m, ok := r.methods[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.clearDefaults(m.StudentID)
	m.IsDefault = true
	return nil
}

func (r *fakeMethodRepo) Update(id string, fields map[string]interface{}) error {
	m, ok := r.methods[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if isDefault, ok := fields["is_default"].(bool); ok {
		if isDefault {
			r.clearDefaults(m.StudentID)
		}
		m.IsDefault = isDefault
	}
	if provider, ok := fields["provider"].(string); ok {
		m.Provider = provider
	}
	if lastFour, ok := fields["last_four"].(string); ok {
		m.LastFour = lastFour
	}
	return nil
}

func (r *fakeMethodRepo) Delete(id string) error {
	if _, ok := r.methods[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.methods, id)
	return nil
}

type fakeSubscriptionRepo struct {
	subs map[string]*models.Subscription
}

func (r *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	clone := *sub
	r.subs[sub.ID] = &clone
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(id string) (*models.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeSubscriptionRepo) GetByStudentID(studentID string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.StudentID == studentID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(id, status string) error {
	sub, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.Status = status
	return nil
}

func (r *fakeSubscriptionRepo) UpdateNextBillingDate(id string, next time.Time) error {
	sub, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.NextBillingDate = next
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePaymentMethod(id, paymentMethodID string) error {
	sub, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.PaymentMethodID = paymentMethodID
	return nil
}

func (r *fakeSubscriptionRepo) Cancel(id string, endDate *time.Time) error {
	sub, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	end := time.Now()
	if endDate != nil {
		end = *endDate
	}
	sub.Status = models.SubscriptionStatusCancelled
	sub.EndDate = &end
	return nil
}

func (r *fakeSubscriptionRepo) GetActive() ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.Status == models.SubscriptionStatusActive {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) GetDueForRenewal(asOf time.Time) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.Status == models.SubscriptionStatusActive && !sub.NextBillingDate.After(asOf) {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextBillingDate.Before(out[j].NextBillingDate) })
	return out, nil
}

// fakeReportCache is a map-backed ReportCache.
type fakeReportCache struct {
	values map[string]string
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{values: map[string]string{}}
}

func (c *fakeReportCache) Set(key string, value interface{}, expiration time.Duration) error {
	c.values[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeReportCache) Get(key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}
