package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feepilot/feepilot/app/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm over mock: %v", err)
	}
	return db, mock
}

func paymentColumns() []string {
	return []string{"id", "student_id", "amount", "description", "status", "payment_method", "payment_gateway", "transaction_id", "due_date", "created_at", "updated_at"}
}

func TestPaymentRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows(paymentColumns()).
		AddRow("pay-1", "student-1", 125.50, "Tuition March", models.PaymentStatusPending,
			models.PaymentMethodCreditCard, models.GatewayManual, "",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Now(), time.Now())

	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE id = \\?").
		WithArgs("pay-1", 1).
		WillReturnRows(rows)

	payment, err := repo.GetByID("pay-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if payment.StudentID != "student-1" {
		t.Errorf("Expected student-1, got %s", payment.StudentID)
	}
	if payment.Amount != 125.50 {
		t.Errorf("Expected amount 125.50, got %f", payment.Amount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestPaymentRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE id = \\?").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))

	_, err := repo.GetByID("missing")
	if err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestPaymentRepositoryGetOverdueExcludesToday(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	// The overdue window must be strictly before today's midnight.
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE status = \\? AND due_date < \\?").
		WithArgs(models.PaymentStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))

	payments, err := repo.GetOverdue()
	if err != nil {
		t.Fatalf("GetOverdue failed: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("Expected no payments, got %d", len(payments))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestPaymentRepositoryCountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `payments` WHERE status = \\?").
		WithArgs(models.PaymentStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	count, err := repo.CountByStatus(models.PaymentStatusCompleted)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if count != 7 {
		t.Errorf("Expected count 7, got %d", count)
	}
}

func TestPaymentRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `payments` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus("missing", models.PaymentStatusCompleted, nil)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound, got %v", err)
	}
}
