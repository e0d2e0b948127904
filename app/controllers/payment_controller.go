package controllers

import (
	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/database"
	"github.com/gofiber/fiber/v2"
)

type createPaymentRequest struct {
	StudentID      string  `json:"student_id"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	DueDate        string  `json:"due_date"`
	Status         string  `json:"status"`
	PaymentMethod  string  `json:"payment_method"`
	PaymentGateway string  `json:"payment_gateway"`
	PaymentDate    string  `json:"payment_date"`
}

type updatePaymentStatusRequest struct {
	Status      string `json:"status"`
	PaymentDate string `json:"payment_date"`
}

type processPaymentRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	Gateway         string `json:"gateway"`
}

// HandleGetAllPayments returns a paginated list of payments, optionally
// filtered by status via the ?status query parameter.
func HandleGetAllPayments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentRepository()
	offset, limit := paginationParams(c)

	if status := c.Query("status"); status != "" {
		payments, err := repo.GetByStatus(status, offset, limit)
		if err != nil {
			return respondError(c, err)
		}
		return respondData(c, fiber.StatusOK, payments)
	}

	payments, err := repo.List(offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payments)
}

// HandleGetOverduePayments returns pending payments past their due date.
func HandleGetOverduePayments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payments, err := repo.GetOverdue()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payments)
}

// HandleGetPayment returns a single payment by id.
func HandleGetPayment(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payment, err := repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payment)
}

// HandleGetStudentPayments returns all payments of a student, newest first.
func HandleGetStudentPayments(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentRepository()
	payments, err := repo.GetByStudentID(c.Params("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payments)
}

// HandleCreatePayment records a new payment obligation.
func HandleCreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.DueDate == "" {
		return respondBadRequest(c, "due_date is required")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return respondBadRequest(c, "due_date must be a date (YYYY-MM-DD)")
	}
	paymentDate, err := parseDatePtr(req.PaymentDate)
	if err != nil {
		return respondBadRequest(c, "payment_date must be a date (YYYY-MM-DD)")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	payment, err := svc.CreatePayment(c.Context(), billing.CreatePaymentInput{
		StudentID:      req.StudentID,
		Amount:         req.Amount,
		Description:    req.Description,
		DueDate:        dueDate,
		Status:         req.Status,
		PaymentMethod:  req.PaymentMethod,
		PaymentGateway: req.PaymentGateway,
		PaymentDate:    paymentDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, payment)
}

// HandleUpdatePaymentStatus overwrites a payment's status. Setting completed
// also completes the linked invoice, if one exists.
func HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	var req updatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return respondBadRequest(c, "status is required")
	}
	paymentDate, err := parseDatePtr(req.PaymentDate)
	if err != nil {
		return respondBadRequest(c, "payment_date must be a date (YYYY-MM-DD)")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	payment, err := svc.UpdatePaymentStatus(c.Context(), c.Params("id"), req.Status, paymentDate)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payment)
}

// HandleProcessPayment charges a payment through the gateway adapter.
func HandleProcessPayment(c *fiber.Ctx) error {
	var req processPaymentRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return respondBadRequest(c, "invalid request body")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	payment, err := svc.ProcessPayment(c.Context(), c.Params("id"), req.PaymentMethodID, req.Gateway)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payment)
}

// HandleGenerateInvoice creates the invoice for a payment, or returns the
// existing one. Responds 201 only when an invoice was actually created.
func HandleGenerateInvoice(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	invoice, created, err := svc.GenerateInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return respondData(c, status, invoice)
}
