package controllers

import (
	"github.com/feepilot/feepilot/app/models"
	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/database"
	"github.com/gofiber/fiber/v2"
)

type createPaymentMethodRequest struct {
	StudentID      string      `json:"student_id"`
	Type           string      `json:"type"`
	Provider       string      `json:"provider"`
	Token          string      `json:"token"`
	LastFour       string      `json:"last_four"`
	ExpiryMonth    int         `json:"expiry_month"`
	ExpiryYear     int         `json:"expiry_year"`
	CardBrand      string      `json:"card_brand"`
	IsDefault      bool        `json:"is_default"`
	BillingDetails models.JSON `json:"billing_details"`
}

type updatePaymentMethodRequest struct {
	StudentID      string       `json:"student_id"`
	Provider       *string      `json:"provider"`
	Token          *string      `json:"token"`
	LastFour       *string      `json:"last_four"`
	ExpiryMonth    *int         `json:"expiry_month"`
	ExpiryYear     *int         `json:"expiry_year"`
	CardBrand      *string      `json:"card_brand"`
	IsDefault      *bool        `json:"is_default"`
	BillingDetails *models.JSON `json:"billing_details"`
}

type ownerRequest struct {
	StudentID string `json:"student_id"`
}

// HandleGetStudentPaymentMethods returns a student's stored instruments,
// default first.
func HandleGetStudentPaymentMethods(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentMethodRepository()
	methods, err := repo.GetByStudentID(c.Params("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, methods)
}

// HandleGetPaymentMethod returns a single payment method by id.
func HandleGetPaymentMethod(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPaymentMethodRepository()
	method, err := repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, method)
}

// HandleCreatePaymentMethod stores a new payment instrument.
func HandleCreatePaymentMethod(c *fiber.Ctx) error {
	var req createPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	method, err := svc.CreatePaymentMethod(c.Context(), billing.CreatePaymentMethodInput{
		StudentID:      req.StudentID,
		Type:           req.Type,
		Provider:       req.Provider,
		Token:          req.Token,
		LastFour:       req.LastFour,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CardBrand:      req.CardBrand,
		IsDefault:      req.IsDefault,
		BillingDetails: req.BillingDetails,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, method)
}

// HandleUpdatePaymentMethod applies a partial update. Only fields present in
// the body are touched; flipping is_default reroutes the default flag.
func HandleUpdatePaymentMethod(c *fiber.Ctx) error {
	var req updatePaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	fields := map[string]interface{}{}
	if req.Provider != nil {
		fields["provider"] = *req.Provider
	}
	if req.Token != nil {
		fields["token"] = *req.Token
	}
	if req.LastFour != nil {
		fields["last_four"] = *req.LastFour
	}
	if req.ExpiryMonth != nil {
		fields["expiry_month"] = *req.ExpiryMonth
	}
	if req.ExpiryYear != nil {
		fields["expiry_year"] = *req.ExpiryYear
	}
	if req.CardBrand != nil {
		fields["card_brand"] = *req.CardBrand
	}
	if req.IsDefault != nil {
		fields["is_default"] = *req.IsDefault
	}
	if req.BillingDetails != nil {
		fields["billing_details"] = *req.BillingDetails
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	method, err := svc.UpdatePaymentMethod(c.Context(), c.Params("id"), req.StudentID, fields)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, method)
}

// HandleSetDefaultPaymentMethod makes the given method its owner's default.
func HandleSetDefaultPaymentMethod(c *fiber.Ctx) error {
	var req ownerRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return respondBadRequest(c, "invalid request body")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	method, err := svc.SetDefaultPaymentMethod(c.Context(), c.Params("id"), req.StudentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, method)
}

// HandleDeletePaymentMethod removes a payment instrument. The owning student
// may be asserted via the ?student_id query parameter.
func HandleDeletePaymentMethod(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	if err := svc.DeletePaymentMethod(c.Context(), c.Params("id"), c.Query("student_id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "payment method deleted")
}
