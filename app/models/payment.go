package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusOverdue   = "overdue"
)

const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodPayPal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodStripe       = "stripe"
)

const (
	GatewayPayPal = "paypal"
	GatewayStripe = "stripe"
	GatewayManual = "manual"
)

// Payment is a single monetary obligation owed by a student.
type Payment struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	StudentID       string     `gorm:"type:varchar(36);not null;index" json:"student_id" validate:"required"`
	Amount          float64    `gorm:"type:decimal(10,2);not null" json:"amount" validate:"required,gt=0"`
	Description     string     `gorm:"type:text;not null" json:"description" validate:"required"`
	Status          string     `gorm:"type:enum('pending','completed','failed','refunded','overdue');default:'pending';index" json:"status" validate:"omitempty,oneof=pending completed failed refunded overdue"`
	PaymentMethod   string     `gorm:"type:enum('credit_card','paypal','bank_transfer','cash','stripe');default:'credit_card'" json:"payment_method" validate:"omitempty,oneof=credit_card paypal bank_transfer cash stripe"`
	PaymentGateway  string     `gorm:"type:enum('paypal','stripe','manual');default:'manual'" json:"payment_gateway" validate:"omitempty,oneof=paypal stripe manual"`
	TransactionID   string     `gorm:"type:varchar(100);default:null" json:"transaction_id,omitempty"`
	GatewayResponse JSON       `gorm:"type:json" json:"gateway_response,omitempty"`
	DueDate         time.Time  `gorm:"type:date;not null" json:"due_date" validate:"required"`
	PaymentDate     *time.Time `gorm:"type:timestamp;default:null" json:"payment_date,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Payment) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
