package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router. Los use cases se reciben por
// interfaz; en cmd/api son los de internal/application.
type RouterDeps struct {
	Preview   invoicePreviewer
	Certify   invoiceCertifier
	Cancel    invoiceCanceller
	Reports   reportService
	Inventory inventoryService
	Treasury  treasuryService
	JWTSecret string
	JWTIssuer string // vacío = no se comprueba el emisor
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Todas las rutas requieren Bearer Token; los tokens los emite el proveedor de identidad.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	anyRole := RequireRole(RoleAdmin, RoleAccountant, RoleOperator)
	operators := RequireRole(RoleAdmin, RoleOperator)
	accountants := RequireRole(RoleAdmin, RoleAccountant)

	invoiceHandler := NewInvoiceHandler(deps.Preview, deps.Certify, deps.Cancel, deps.Log)
	invoices := protected.Group("/invoices")
	invoices.Post("/preview", anyRole, invoiceHandler.Preview)
	invoices.Post("/:id/certify", operators, invoiceHandler.Certify)
	invoices.Post("/:id/cancel", operators, invoiceHandler.Cancel)

	reportHandler := NewReportHandler(deps.Reports, deps.Log)
	reports := protected.Group("/reports", anyRole)
	reports.Get("/modelo7", reportHandler.Modelo7)
	reports.Get("/modelo1", reportHandler.Modelo1)
	reports.Put("/modelo1/overrides", accountants, reportHandler.ReplaceOverrides)
	reports.Get("/stamp-duty", reportHandler.StampDuty)
	reports.Get("/saft", accountants, reportHandler.SAFT)

	dashboardHandler := NewDashboardHandler(deps.Reports, deps.Log)
	protected.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)

	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Log)
	inv := protected.Group("/inventory")
	inv.Get("/stock", anyRole, inventoryHandler.Stock)
	inv.Post("/adjustments", operators, inventoryHandler.RegisterAdjustment)
	inv.Post("/reconcile", RequireRole(RoleAdmin), inventoryHandler.Reconcile)

	treasuryHandler := NewTreasuryHandler(deps.Treasury, deps.Log)
	cash := protected.Group("/cash")
	cash.Get("/registers", anyRole, treasuryHandler.Registers)
	cash.Post("/movements", operators, treasuryHandler.Movement)
	cash.Post("/transfers", operators, treasuryHandler.Transfer)
}
