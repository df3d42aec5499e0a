package sale

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/ledger"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSaleRequest struct {
	Date         string  `json:"date"` // "2026-03-12"
	Buyer        string  `json:"buyer"`
	Material     string  `json:"material"`
	Qty          float64 `json:"qty"`
	UOM          string  `json:"uom"`
	SaleRate     float64 `json:"sale_rate"`
	PurchaseSlNo int     `json:"purchase_sl_no"` // opsiyonel, kâr takibi için alım bağlantısı
}

type SaleResponse struct {
	SlNo          int     `json:"sl_no"`
	Date          string  `json:"date"`
	Buyer         string  `json:"buyer"`
	Material      string  `json:"material"`
	Qty           float64 `json:"qty"`
	UOM           string  `json:"uom"`
	SaleRate      float64 `json:"sale_rate"`
	Total         float64 `json:"total"`
	PurchaseSlNo  int     `json:"purchase_sl_no"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	TotalProfit   float64 `json:"total_profit"`
}

func toSaleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		SlNo:          s.SlNo,
		Date:          models.FormatDate(s.Date),
		Buyer:         s.Buyer,
		Material:      s.Material,
		Qty:           s.Qty,
		UOM:           string(s.UOM),
		SaleRate:      s.SaleRate,
		Total:         s.Total,
		PurchaseSlNo:  s.PurchaseSlNo,
		ProfitPerUnit: s.ProfitPerUnit,
		TotalProfit:   s.TotalProfit,
	}
}

// -------------------------
// Sale CRUD
// -------------------------

// POST /api/sales
func CreateSaleHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		// Validasyon
		body.Buyer = strings.TrimSpace(body.Buyer)
		body.Material = strings.TrimSpace(body.Material)
		if body.Buyer == "" {
			return fiber.NewError(fiber.StatusBadRequest, "buyer boş olamaz")
		}
		if body.Material == "" {
			return fiber.NewError(fiber.StatusBadRequest, "material boş olamaz")
		}
		if body.Qty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "qty 0'dan büyük olmalı")
		}
		if body.SaleRate <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "sale_rate 0'dan büyük olmalı")
		}
		uom := models.UOM(body.UOM)
		if !uom.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "uom 'Metric Ton', 'Kg' veya 'Pieces' olmalı")
		}
		if body.PurchaseSlNo < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_sl_no geçersiz")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		draft := models.Sale{
			Date:         d,
			Buyer:        body.Buyer,
			Material:     body.Material,
			Qty:          body.Qty,
			UOM:          uom,
			SaleRate:     body.SaleRate,
			PurchaseSlNo: body.PurchaseSlNo,
		}

		var created models.Sale
		err = store.Exclusive(func() error {
			purchases := store.LoadPurchases()

			if draft.PurchaseSlNo > 0 {
				linked := false
				for _, p := range purchases {
					if p.SlNo == draft.PurchaseSlNo {
						linked = true
						break
					}
				}
				if !linked {
					return fiber.NewError(fiber.StatusBadRequest, "Bağlanacak alım kaydı bulunamadı")
				}
			}

			sales, record := ledger.RecordSale(store.LoadSales(), draft)
			sales = ledger.RecalcSales(sales, purchases)

			for _, s := range sales {
				if s.SlNo == record.SlNo {
					created = s
				}
			}

			return store.SaveSales(sales)
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
		}

		log.Printf("Satış %d oluşturuldu, toplam: %.2f", created.SlNo, created.Total)

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(created))
	}
}

// GET /api/sales?buyer=...
func ListSalesHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buyerFilter := strings.TrimSpace(c.Query("buyer"))

		var sales []models.Sale
		_ = store.Exclusive(func() error {
			// kâr alanları alım birim fiyatlarından her listelemede türetilir
			sales = ledger.RecalcSales(store.LoadSales(), store.LoadPurchases())
			return nil
		})

		resp := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			if buyerFilter != "" && !strings.Contains(strings.ToLower(s.Buyer), strings.ToLower(buyerFilter)) {
				continue
			}
			resp = append(resp, toSaleResponse(s))
		}

		return c.JSON(resp)
	}
}
