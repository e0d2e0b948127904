package repository

import (
	"time"

	"github.com/feepilot/feepilot/app/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment-related database operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByStudentID(studentID string) ([]models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)
	GetByStatus(status string, offset, limit int) ([]models.Payment, error)
	UpdateStatus(id, status string, paymentDate *time.Time) error
	UpdatePaymentDetails(id, transactionID string, gatewayResponse models.JSON, status string) error
	GetOverdue() ([]models.Payment, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	SumByStatus(status string) (float64, error)
}

// InvoiceRepository defines the interface for invoice-related database operations
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByID(id string) (*models.Invoice, error)
	GetByNumber(invoiceNumber string) (*models.Invoice, error)
	GetByStudentID(studentID string) ([]models.Invoice, error)
	GetByPaymentID(paymentID string) (*models.Invoice, error)
	List(offset, limit int) ([]models.Invoice, error)
	GetByStatus(status string, offset, limit int) ([]models.Invoice, error)
	GetOverdue() ([]models.Invoice, error)
	UpdateStatus(id, status string, paidDate *time.Time) error
}

// PaymentMethodRepository defines the interface for payment instrument
// operations. Implementations must uphold the at-most-one-default-per-student
// invariant on every write path that can set the default flag.
type PaymentMethodRepository interface {
	Create(method *models.PaymentMethod) error
	GetByID(id string) (*models.PaymentMethod, error)
	GetByStudentID(studentID string) ([]models.PaymentMethod, error)
	GetDefaultForStudent(studentID string) (*models.PaymentMethod, error)
	SetDefault(id string) error
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error
}

// SubscriptionRepository defines the interface for recurring billing definitions
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByID(id string) (*models.Subscription, error)
	GetByStudentID(studentID string) ([]models.Subscription, error)
	UpdateStatus(id, status string) error
	UpdateNextBillingDate(id string, next time.Time) error
	UpdatePaymentMethod(id, paymentMethodID string) error
	Cancel(id string, endDate *time.Time) error
	GetActive() ([]models.Subscription, error)
	GetDueForRenewal(asOf time.Time) ([]models.Subscription, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Payment       PaymentRepository
	Invoice       InvoiceRepository
	PaymentMethod PaymentMethodRepository
	Subscription  SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Payment:       NewPaymentRepository(db),
		Invoice:       NewInvoiceRepository(db),
		PaymentMethod: NewPaymentMethodRepository(db),
		Subscription:  NewSubscriptionRepository(db),
	}
}
