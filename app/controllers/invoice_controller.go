package controllers

import (
	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/database"
	"github.com/gofiber/fiber/v2"
)

type createInvoiceRequest struct {
	PaymentID   string  `json:"payment_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
}

type updateInvoiceStatusRequest struct {
	Status   string `json:"status"`
	PaidDate string `json:"paid_date"`
}

// HandleGetAllInvoices returns a paginated list of invoices, optionally
// filtered by status.
func HandleGetAllInvoices(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	offset, limit := paginationParams(c)

	if status := c.Query("status"); status != "" {
		invoices, err := repo.GetByStatus(status, offset, limit)
		if err != nil {
			return respondError(c, err)
		}
		return respondData(c, fiber.StatusOK, invoices)
	}

	invoices, err := repo.List(offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoices)
}

// HandleGetOverdueInvoices returns pending invoices past their due date.
func HandleGetOverdueInvoices(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoices, err := repo.GetOverdue()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoices)
}

// HandleGetInvoice returns a single invoice by id.
func HandleGetInvoice(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoice)
}

// HandleGetInvoiceByNumber returns a single invoice by its human-readable number.
func HandleGetInvoiceByNumber(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByNumber(c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoice)
}

// HandleGetStudentInvoices returns all invoices of a student, newest first.
func HandleGetStudentInvoices(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoices, err := repo.GetByStudentID(c.Params("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoices)
}

// HandleCreateInvoice creates an invoice for a payment explicitly. A payment
// that already has an invoice is rejected.
func HandleCreateInvoice(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.PaymentID == "" {
		return respondBadRequest(c, "payment_id is required")
	}
	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		return respondBadRequest(c, "due_date must be a date (YYYY-MM-DD)")
	}

	in := billing.CreateInvoiceInput{
		PaymentID:   req.PaymentID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if dueDate != nil {
		in.DueDate = *dueDate
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	invoice, err := svc.CreateInvoice(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, invoice)
}

// HandleUpdateInvoiceStatus overwrites an invoice's status. Setting completed
// also completes the owning payment.
func HandleUpdateInvoiceStatus(c *fiber.Ctx) error {
	var req updateInvoiceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return respondBadRequest(c, "status is required")
	}
	paidDate, err := parseDatePtr(req.PaidDate)
	if err != nil {
		return respondBadRequest(c, "paid_date must be a date (YYYY-MM-DD)")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	invoice, err := svc.UpdateInvoiceStatus(c.Context(), c.Params("id"), req.Status, paidDate)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, invoice)
}
