package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MethodTypeCreditCard  = "credit_card"
	MethodTypePayPal      = "paypal"
	MethodTypeBankAccount = "bank_account"
	MethodTypeStripe      = "stripe"
)

// PaymentMethod is a reusable payment instrument owned by a student. At most
// one method per student carries IsDefault = true; the repository upholds
// that invariant on every write path that can set the flag.
type PaymentMethod struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	StudentID      string    `gorm:"type:varchar(36);not null;index" json:"student_id" validate:"required"`
	Type           string    `gorm:"type:enum('credit_card','paypal','bank_account','stripe');not null" json:"type" validate:"required,oneof=credit_card paypal bank_account stripe"`
	Provider       string    `gorm:"type:enum('paypal','stripe','manual');default:'manual'" json:"provider" validate:"omitempty,oneof=paypal stripe manual"`
	Token          string    `gorm:"type:varchar(255);default:null" json:"-"`
	LastFour       string    `gorm:"type:varchar(4);default:null" json:"last_four,omitempty" validate:"omitempty,len=4,numeric"`
	ExpiryMonth    int       `gorm:"default:null" json:"expiry_month,omitempty" validate:"omitempty,min=1,max=12"`
	ExpiryYear     int       `gorm:"default:null" json:"expiry_year,omitempty"`
	CardBrand      string    `gorm:"type:varchar(50);default:null" json:"card_brand,omitempty"`
	IsDefault      bool      `gorm:"default:false;index" json:"is_default"`
	BillingDetails JSON      `gorm:"type:json" json:"billing_details,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *PaymentMethod) Validate() error {
	v := validator.New()

	return v.Struct(m)
}
