package main

import (
	"log"
	"strings"

	"github.com/SatyaGranuman/import-export-app/internal/admin"
	"github.com/SatyaGranuman/import-export-app/internal/auth"
	"github.com/SatyaGranuman/import-export-app/internal/config"
	"github.com/SatyaGranuman/import-export-app/internal/dashboard"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/payment"
	"github.com/SatyaGranuman/import-export-app/internal/purchase"
	"github.com/SatyaGranuman/import-export-app/internal/report"
	"github.com/SatyaGranuman/import-export-app/internal/sale"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Fatal("Veri klasörü hazırlanamadı: ", err)
	}
	if err := auth.SeedUsers(store); err != nil {
		log.Fatal("Varsayılan kullanıcılar oluşturulamadı: ", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// 🔥 CORS MIDDLEWARE
	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg, store))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(store))

	// Alım kayıtları
	protected.Post("/purchases", purchase.CreatePurchaseHandler(store))
	protected.Get("/purchases", purchase.ListPurchasesHandler(store))
	protected.Get("/purchases/:slno", purchase.GetPurchaseHandler(store))
	protected.Put("/purchases/:slno/shipment", purchase.UpdateShipmentHandler(store))
	protected.Post("/purchases/:slno/payments", purchase.CreatePaymentHandler(store))
	protected.Get("/purchases/:slno/payments", purchase.ListPurchasePaymentsHandler(store))

	// Ödeme defteri
	protected.Get("/payments", payment.ListPaymentsHandler(store))
	protected.Delete("/payments/:id", payment.DeletePaymentHandler(store))

	// Satışlar
	protected.Post("/sales", sale.CreateSaleHandler(store))
	protected.Get("/sales", sale.ListSalesHandler(store))

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler(store))
	protected.Get("/dashboard/alerts", dashboard.AlertsHandler(store))

	// Excel raporları
	protected.Get("/reports/purchases.xlsx", report.PurchasesReportHandler(store))
	protected.Get("/reports/payments.xlsx", report.PaymentsReportHandler(store))
	protected.Get("/reports/sales.xlsx", report.SalesReportHandler(store))

	// Kullanıcı yönetimi (sadece admin)
	adminRoutes := protected.Group("/users")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Get("", admin.ListUsersHandler(store))
	adminRoutes.Post("", admin.CreateUserHandler(store))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
