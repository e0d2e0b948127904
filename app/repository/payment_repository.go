package repository

import (
	"log"
	"time"

	"github.com/feepilot/feepilot/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment in the database
func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(payment).Error; err != nil {
		log.Printf("payment repository: create for student %s: %v", payment.StudentID, err)
		return err
	}
	return nil
}

// GetByID retrieves a payment by its ID
func (r *paymentRepository) GetByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByStudentID retrieves all payments for a student, newest first
func (r *paymentRepository) GetByStudentID(studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// List retrieves a paginated list of payments, newest first
func (r *paymentRepository) List(offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

// GetByStatus retrieves a paginated list of payments with the given status
func (r *paymentRepository) GetByStatus(status string, offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("status = ?", status).Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

// UpdateStatus overwrites the payment status unconditionally. No transition
// table is enforced: any status may follow any other, and flows like a manual
// admin correction from failed to completed rely on that.
func (r *paymentRepository) UpdateStatus(id, status string, paymentDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paymentDate != nil {
		updates["payment_date"] = paymentDate
	}
	tx := r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		log.Printf("payment repository: update status %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePaymentDetails stamps gateway processing results onto a payment. The
// payment date is always set to now because this path only runs when the
// gateway reported a terminal result.
func (r *paymentRepository) UpdatePaymentDetails(id, transactionID string, gatewayResponse models.JSON, status string) error {
	now := time.Now()
	tx := r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"transaction_id":   transactionID,
		"gateway_response": gatewayResponse,
		"status":           status,
		"payment_date":     &now,
	})
	if tx.Error != nil {
		log.Printf("payment repository: update payment details %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetOverdue returns pending payments whose due date is strictly before
// today. A payment due today is not overdue.
func (r *paymentRepository) GetOverdue() ([]models.Payment, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var payments []models.Payment
	err := r.db.Where("status = ? AND due_date < ?", models.PaymentStatusPending, today).
		Order("due_date ASC").Find(&payments).Error
	return payments, err
}

// Count returns the total number of payments
func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of payments with the given status
func (r *paymentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// SumByStatus returns the total amount over payments with the given status
func (r *paymentRepository) SumByStatus(status string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Payment{}).Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
