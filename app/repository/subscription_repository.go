package repository

import (
	"log"
	"sync"
	"time"

	"github.com/feepilot/feepilot/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db        *gorm.DB
	tableOnce sync.Once
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// ensureTable lazily provisions the subscriptions table. Subscriptions were
// added after the other billing tables and some deployments have not run the
// migration that creates them.
func (r *subscriptionRepository) ensureTable() {
	r.tableOnce.Do(func() {
		if err := r.db.AutoMigrate(&models.Subscription{}); err != nil {
			log.Printf("subscription repository: ensure table: %v", err)
		}
	})
}

// Create stores a new subscription definition
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	r.ensureTable()
	if err := sub.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(sub).Error; err != nil {
		log.Printf("subscription repository: create for student %s: %v", sub.StudentID, err)
		return err
	}
	return nil
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByStudentID retrieves all subscriptions for a student, newest first
func (r *subscriptionRepository) GetByStudentID(studentID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

// UpdateStatus overwrites the subscription status unconditionally
func (r *subscriptionRepository) UpdateStatus(id, status string) error {
	tx := r.db.Model(&models.Subscription{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		log.Printf("subscription repository: update status %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateNextBillingDate persists the advanced billing date after a renewal
func (r *subscriptionRepository) UpdateNextBillingDate(id string, next time.Time) error {
	tx := r.db.Model(&models.Subscription{}).Where("id = ?", id).Update("next_billing_date", next)
	if tx.Error != nil {
		log.Printf("subscription repository: update next billing date %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePaymentMethod links a payment method to the subscription
func (r *subscriptionRepository) UpdatePaymentMethod(id, paymentMethodID string) error {
	tx := r.db.Model(&models.Subscription{}).Where("id = ?", id).Update("payment_method_id", paymentMethodID)
	if tx.Error != nil {
		log.Printf("subscription repository: update payment method %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel marks the subscription cancelled and stamps its end date. The end
// date defaults to now when none is given.
func (r *subscriptionRepository) Cancel(id string, endDate *time.Time) error {
	end := time.Now()
	if endDate != nil {
		end = *endDate
	}
	tx := r.db.Model(&models.Subscription{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   models.SubscriptionStatusCancelled,
		"end_date": &end,
	})
	if tx.Error != nil {
		log.Printf("subscription repository: cancel %s: %v", id, tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetActive returns all active subscriptions
func (r *subscriptionRepository) GetActive() ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("status = ?", models.SubscriptionStatusActive).
		Order("next_billing_date ASC").Find(&subs).Error
	return subs, err
}

// GetDueForRenewal returns active subscriptions whose next billing date has
// been reached as of the given date.
func (r *subscriptionRepository) GetDueForRenewal(asOf time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("status = ? AND next_billing_date <= ?", models.SubscriptionStatusActive, asOf).
		Order("next_billing_date ASC").Find(&subs).Error
	return subs, err
}
