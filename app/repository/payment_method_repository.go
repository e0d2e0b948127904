package repository

import (
	"log"

	"github.com/feepilot/feepilot/app/models"
	"gorm.io/gorm"
)

// paymentMethodRepository implements the PaymentMethodRepository interface
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository instance
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

// Create stores a new payment method. When the method is flagged as default,
// the default flag is first cleared on every other method of the same student
// inside the same transaction, so there is never a window with two defaults.
func (r *paymentMethodRepository) Create(method *models.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := clearDefaults(tx, method.StudentID); err != nil {
				return err
			}
		}
		return tx.Create(method).Error
	})
	if err != nil {
		log.Printf("payment method repository: create for student %s: %v", method.StudentID, err)
	}
	return err
}

func clearDefaults(tx *gorm.DB, studentID string) error {
	return tx.Model(&models.PaymentMethod{}).
		Where("student_id = ? AND is_default = ?", studentID, true).
		Update("is_default", false).Error
}

// GetByID retrieves a payment method by its ID
func (r *paymentMethodRepository) GetByID(id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.Where("id = ?", id).First(&method).Error
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// GetByStudentID retrieves a student's payment methods, default first then newest
func (r *paymentMethodRepository) GetByStudentID(studentID string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Where("student_id = ?", studentID).
		Order("is_default DESC, created_at DESC").Find(&methods).Error
	return methods, err
}

// GetDefaultForStudent retrieves the student's default payment method
func (r *paymentMethodRepository) GetDefaultForStudent(studentID string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.Where("student_id = ? AND is_default = ?", studentID, true).First(&method).Error
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// SetDefault marks the given method as its owner's default, clearing the flag
// on all other methods of that student in the same transaction.
func (r *paymentMethodRepository) SetDefault(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var method models.PaymentMethod
		if err := tx.Where("id = ?", id).First(&method).Error; err != nil {
			return err
		}
		if err := clearDefaults(tx, method.StudentID); err != nil {
			return err
		}
		return tx.Model(&models.PaymentMethod{}).Where("id = ?", id).
			Update("is_default", true).Error
	})
	if err != nil {
		log.Printf("payment method repository: set default %s: %v", id, err)
	}
	return err
}

// Update applies a partial field update. Setting is_default to true routes
// through the same clear-then-set sequence as SetDefault.
func (r *paymentMethodRepository) Update(id string, fields map[string]interface{}) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var method models.PaymentMethod
		if err := tx.Where("id = ?", id).First(&method).Error; err != nil {
			return err
		}
		if isDefault, ok := fields["is_default"].(bool); ok && isDefault {
			if err := clearDefaults(tx, method.StudentID); err != nil {
				return err
			}
		}
		return tx.Model(&models.PaymentMethod{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		log.Printf("payment method repository: update %s: %v", id, err)
	}
	return err
}

// Delete removes a payment method
func (r *paymentMethodRepository) Delete(id string) error {
	tx := r.db.Where("id = ?", id).Delete(&models.PaymentMethod{})
	if tx.Error != nil {
		log.Printf("payment method repository: delete %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
