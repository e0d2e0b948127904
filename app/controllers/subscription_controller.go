package controllers

import (
	"time"

	"github.com/feepilot/feepilot/app/repository"
	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/database"
	"github.com/gofiber/fiber/v2"
)

type createSubscriptionRequest struct {
	StudentID       string  `json:"student_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Frequency       string  `json:"frequency"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	NextBillingDate string  `json:"next_billing_date"`
	PaymentMethodID string  `json:"payment_method_id"`
}

type updateSubscriptionStatusRequest struct {
	Status string `json:"status"`
}

type cancelSubscriptionRequest struct {
	EndDate string `json:"end_date"`
}

type subscriptionPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

type processRenewalsRequest struct {
	Date string `json:"date"`
}

// HandleGetActiveSubscriptions returns all active subscriptions.
func HandleGetActiveSubscriptions(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	subs, err := repo.GetActive()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, subs)
}

// HandleGetSubscription returns a single subscription by id.
func HandleGetSubscription(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	sub, err := repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, sub)
}

// HandleGetStudentSubscriptions returns all subscriptions of a student.
func HandleGetStudentSubscriptions(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	subs, err := repo.GetByStudentID(c.Params("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, subs)
}

// HandleCreateSubscription stores a recurring billing definition.
func HandleCreateSubscription(c *fiber.Ctx) error {
	var req createSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	in := billing.CreateSubscriptionInput{
		StudentID:       req.StudentID,
		Name:            req.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		PaymentMethodID: req.PaymentMethodID,
	}
	for _, date := range []struct {
		value  string
		target *time.Time
		name   string
	}{
		{req.StartDate, &in.StartDate, "start_date"},
		{req.NextBillingDate, &in.NextBillingDate, "next_billing_date"},
	} {
		if date.value == "" {
			continue
		}
		t, err := parseDate(date.value)
		if err != nil {
			return respondBadRequest(c, date.name+" must be a date (YYYY-MM-DD)")
		}
		*date.target = t
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return respondBadRequest(c, "end_date must be a date (YYYY-MM-DD)")
	}
	in.EndDate = endDate

	svc := billing.NewServiceFromDB(database.GetDB())
	sub, err := svc.CreateSubscription(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, sub)
}

// HandleUpdateSubscriptionStatus overwrites a subscription's status.
func HandleUpdateSubscriptionStatus(c *fiber.Ctx) error {
	var req updateSubscriptionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return respondBadRequest(c, "status is required")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	sub, err := svc.UpdateSubscriptionStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, sub)
}

// HandleCancelSubscription cancels a subscription, stamping its end date.
func HandleCancelSubscription(c *fiber.Ctx) error {
	var req cancelSubscriptionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return respondBadRequest(c, "invalid request body")
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return respondBadRequest(c, "end_date must be a date (YYYY-MM-DD)")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	sub, err := svc.CancelSubscription(c.Context(), c.Params("id"), endDate)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, sub)
}

// HandleUpdateSubscriptionPaymentMethod links a payment method to a
// subscription. The method must belong to the subscription's student.
func HandleUpdateSubscriptionPaymentMethod(c *fiber.Ctx) error {
	var req subscriptionPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if req.PaymentMethodID == "" {
		return respondBadRequest(c, "payment_method_id is required")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	sub, err := svc.UpdateSubscriptionPaymentMethod(c.Context(), c.Params("id"), req.PaymentMethodID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, sub)
}

// HandleProcessRenewals runs a renewal pass over every subscription due as of
// the given date (default today) and reports per-subscription outcomes.
func HandleProcessRenewals(c *fiber.Ctx) error {
	var req processRenewalsRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return respondBadRequest(c, "invalid request body")
	}

	asOf := time.Now()
	if req.Date != "" {
		t, err := parseDate(req.Date)
		if err != nil {
			return respondBadRequest(c, "date must be a date (YYYY-MM-DD)")
		}
		asOf = t
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	report, err := svc.ProcessDueRenewals(c.Context(), asOf)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, report)
}

// HandleLastRenewalRun returns the cached report of the most recent renewal pass.
func HandleLastRenewalRun(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	report, err := svc.LastRenewalReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, report)
}

// HandleBillingStats returns aggregated payment totals for the dashboard.
func HandleBillingStats(c *fiber.Ctx) error {
	svc := billing.NewServiceFromDB(database.GetDB())
	stats, err := svc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}
