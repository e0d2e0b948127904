package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses share the payment status enum because an invoice mirrors
// the payment it was generated from.
const (
	InvoiceStatusPending   = PaymentStatusPending
	InvoiceStatusCompleted = PaymentStatusCompleted
	InvoiceStatusFailed    = PaymentStatusFailed
	InvoiceStatusRefunded  = PaymentStatusRefunded
	InvoiceStatusOverdue   = PaymentStatusOverdue
)

// Invoice is a billing document generated from exactly one payment. The
// invoice number is human readable: INV-<YYYYMMDD>-<4 digit sequence>.
type Invoice struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceNumber string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	PaymentID     string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"payment_id" validate:"required"`
	StudentID     string     `gorm:"type:varchar(36);not null;index" json:"student_id" validate:"required"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount" validate:"required,gt=0"`
	Description   string     `gorm:"type:text" json:"description"`
	Status        string     `gorm:"type:enum('pending','completed','failed','refunded','overdue');default:'pending';index" json:"status" validate:"omitempty,oneof=pending completed failed refunded overdue"`
	DueDate       time.Time  `gorm:"type:date;not null" json:"due_date" validate:"required"`
	IssueDate     time.Time  `gorm:"type:date;not null" json:"issue_date"`
	PaidDate      *time.Time `gorm:"type:timestamp;default:null" json:"paid_date,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *Invoice) Validate() error {
	v := validator.New()

	return v.Struct(i)
}
