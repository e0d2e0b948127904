package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FrequencyMonthly    = "monthly"
	FrequencyQuarterly  = "quarterly"
	FrequencySemiAnnual = "semi_annual"
	FrequencyAnnual     = "annual"
)

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusSuspended = "suspended"
)

// Subscription is a recurring billing definition that periodically spawns new
// pending payments. NextBillingDate advances by exactly one frequency period
// per renewal, computed from the previous value so delayed processing does
// not drift the schedule.
type Subscription struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	StudentID       string     `gorm:"type:varchar(36);not null;index" json:"student_id" validate:"required"`
	Name            string     `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Description     string     `gorm:"type:text" json:"description"`
	Amount          float64    `gorm:"type:decimal(10,2);not null" json:"amount" validate:"required,gt=0"`
	Frequency       string     `gorm:"type:enum('monthly','quarterly','semi_annual','annual');not null" json:"frequency" validate:"required,oneof=monthly quarterly semi_annual annual"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date" validate:"required"`
	EndDate         *time.Time `gorm:"type:date;default:null" json:"end_date,omitempty"`
	NextBillingDate time.Time  `gorm:"type:date;not null;index" json:"next_billing_date"`
	Status          string     `gorm:"type:enum('active','cancelled','expired','suspended');default:'active';index" json:"status" validate:"omitempty,oneof=active cancelled expired suspended"`
	PaymentMethodID string     `gorm:"type:varchar(36);default:null" json:"payment_method_id,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Subscription) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
