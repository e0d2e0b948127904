package repository

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/feepilot/feepilot/app/models"
	"gorm.io/gorm"
)

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create creates a new invoice, generating its human-readable number when
// none was provided. The issue date defaults to today.
func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	if invoice.IssueDate.IsZero() {
		invoice.IssueDate = time.Now()
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = r.nextInvoiceNumber()
	}
	if err := invoice.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(invoice).Error; err != nil {
		log.Printf("invoice repository: create for payment %s: %v", invoice.PaymentID, err)
		return err
	}
	return nil
}

// nextInvoiceNumber produces INV-<YYYYMMDD>-<seq>, where the 4-digit sequence
// restarts each calendar day. Read-then-increment: concurrent creates on the
// same day can race, the unique index rejects the loser.
func (r *invoiceRepository) nextInvoiceNumber() string {
	prefix := "INV-" + time.Now().Format("20060102") + "-"

	var last models.Invoice
	err := r.db.Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return prefix + "0001"
		}
		// Lookup failed for another reason. Fall back to a timestamp-derived
		// number so invoice creation itself still succeeds.
		log.Printf("invoice repository: number lookup failed, using timestamp fallback: %v", err)
		return fmt.Sprintf("%s%04d", prefix, time.Now().Unix()%10000)
	}

	seq, convErr := strconv.Atoi(strings.TrimPrefix(last.InvoiceNumber, prefix))
	if convErr != nil {
		log.Printf("invoice repository: unparsable invoice number %q, using timestamp fallback", last.InvoiceNumber)
		return fmt.Sprintf("%s%04d", prefix, time.Now().Unix()%10000)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1)
}

// GetByID retrieves an invoice by its ID
func (r *invoiceRepository) GetByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber retrieves an invoice by its human-readable number
func (r *invoiceRepository) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Where("invoice_number = ?", invoiceNumber).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByStudentID retrieves all invoices for a student, newest issue date first
func (r *invoiceRepository) GetByStudentID(studentID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("student_id = ?", studentID).Order("issue_date DESC").Find(&invoices).Error
	return invoices, err
}

// GetByPaymentID retrieves the invoice generated from a payment, if any
func (r *invoiceRepository) GetByPaymentID(paymentID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Where("payment_id = ?", paymentID).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List retrieves a paginated list of invoices, newest issue date first
func (r *invoiceRepository) List(offset, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Order("issue_date DESC").Offset(offset).Limit(limit).Find(&invoices).Error
	return invoices, err
}

// GetByStatus retrieves a paginated list of invoices with the given status
func (r *invoiceRepository) GetByStatus(status string, offset, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("status = ?", status).Order("issue_date DESC").Offset(offset).Limit(limit).Find(&invoices).Error
	return invoices, err
}

// GetOverdue returns pending invoices whose due date is strictly in the past
func (r *invoiceRepository) GetOverdue() ([]models.Invoice, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var invoices []models.Invoice
	err := r.db.Where("status = ? AND due_date < ?", models.InvoiceStatusPending, today).
		Order("due_date ASC").Find(&invoices).Error
	return invoices, err
}

// UpdateStatus overwrites the invoice status, optionally stamping a paid date
func (r *invoiceRepository) UpdateStatus(id, status string, paidDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paidDate != nil {
		updates["paid_date"] = paidDate
	}
	tx := r.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		log.Printf("invoice repository: update status %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
