package router

import (
	"github.com/feepilot/feepilot/app/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Payments
	v1.Get("/payments/all", controllers.HandleGetAllPayments)
	v1.Get("/payments/overdue", controllers.HandleGetOverduePayments)
	v1.Get("/payments/student/:studentId", controllers.HandleGetStudentPayments)
	v1.Get("/payments/:id", controllers.HandleGetPayment)
	v1.Post("/payments", controllers.HandleCreatePayment)
	v1.Put("/payments/:id/status", controllers.HandleUpdatePaymentStatus)
	v1.Post("/payments/:id/process-payment", controllers.HandleProcessPayment)
	v1.Post("/payments/:id/generate-invoice", controllers.HandleGenerateInvoice)

	// Invoices
	v1.Get("/invoices/all", controllers.HandleGetAllInvoices)
	v1.Get("/invoices/overdue", controllers.HandleGetOverdueInvoices)
	v1.Get("/invoices/number/:number", controllers.HandleGetInvoiceByNumber)
	v1.Get("/invoices/id/:id", controllers.HandleGetInvoice)
	v1.Post("/invoices", controllers.HandleCreateInvoice)
	v1.Put("/invoices/:id/status", controllers.HandleUpdateInvoiceStatus)
	v1.Get("/student/:studentId/invoices", controllers.HandleGetStudentInvoices)

	// Payment methods
	v1.Get("/payment-methods/student/:studentId", controllers.HandleGetStudentPaymentMethods)
	v1.Get("/payment-methods/:id", controllers.HandleGetPaymentMethod)
	v1.Post("/payment-methods", controllers.HandleCreatePaymentMethod)
	v1.Put("/payment-methods/:id/default", controllers.HandleSetDefaultPaymentMethod)
	v1.Put("/payment-methods/:id", controllers.HandleUpdatePaymentMethod)
	v1.Delete("/payment-methods/:id", controllers.HandleDeletePaymentMethod)

	// Subscriptions
	v1.Get("/subscriptions/active", controllers.HandleGetActiveSubscriptions)
	v1.Get("/subscriptions/renewals/last-run", controllers.HandleLastRenewalRun)
	v1.Post("/subscriptions/process-renewals", controllers.HandleProcessRenewals)
	v1.Get("/subscriptions/:id", controllers.HandleGetSubscription)
	v1.Post("/subscriptions", controllers.HandleCreateSubscription)
	v1.Put("/subscriptions/:id/status", controllers.HandleUpdateSubscriptionStatus)
	v1.Put("/subscriptions/:id/cancel", controllers.HandleCancelSubscription)
	v1.Put("/subscriptions/:id/payment-method", controllers.HandleUpdateSubscriptionPaymentMethod)
	v1.Get("/student/:studentId/subscriptions", controllers.HandleGetStudentSubscriptions)

	// Aggregates
	v1.Get("/billing/stats", controllers.HandleBillingStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
