package dashboard

import (
	"sort"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/ledger"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// money büyük tutarları binlik ayraçla basar, panel dolar gösterir
var money = message.NewPrinter(language.English)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type SupplierTotal struct {
	Supplier string  `json:"supplier"`
	Paid     float64 `json:"paid"`
	Due      float64 `json:"due"`
}

type SummaryResponse struct {
	TotalPurchases        float64         `json:"total_purchases"`
	TotalPaid             float64         `json:"total_paid"`
	TotalDue              float64         `json:"total_due"`
	TotalSales            float64         `json:"total_sales"`
	TotalProfit           float64         `json:"total_profit"`
	TotalPurchasesDisplay string          `json:"total_purchases_display"`
	TotalPaidDisplay      string          `json:"total_paid_display"`
	TotalDueDisplay       string          `json:"total_due_display"`
	TotalSalesDisplay     string          `json:"total_sales_display"`
	TotalProfitDisplay    string          `json:"total_profit_display"`
	StatusCounts          []StatusCount   `json:"status_counts"`
	SupplierTotals        []SupplierTotal `json:"supplier_totals"`
}

type OverdueAlert struct {
	SlNo           int     `json:"sl_no"`
	Supplier       string  `json:"supplier"`
	Total          float64 `json:"total"`
	Paid           float64 `json:"paid"`
	Due            float64 `json:"due"`
	NextPaymentDue string  `json:"next_payment_due"`
}

type DelayedAlert struct {
	SlNo           int    `json:"sl_no"`
	Supplier       string `json:"supplier"`
	Material       string `json:"material"`
	ShipmentStatus string `json:"shipment_status"`
	ETA            string `json:"eta"`
}

type AlertsResponse struct {
	OverduePayments  []OverdueAlert `json:"overdue_payments"`
	DelayedShipments []DelayedAlert `json:"delayed_shipments"`
}

// GET /api/dashboard/summary
func SummaryHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		var sales []models.Sale
		_ = store.Exclusive(func() error {
			purchases = ledger.Reconcile(store.LoadPurchases(), store.LoadPayments())
			sales = ledger.RecalcSales(store.LoadSales(), purchases)
			return nil
		})

		resp := SummaryResponse{}

		statusCounts := make(map[models.ShipmentStatus]int)
		supplierAgg := make(map[string]*SupplierTotal)

		for _, p := range purchases {
			resp.TotalPurchases += p.Total
			resp.TotalPaid += p.Paid
			resp.TotalDue += p.Due
			statusCounts[p.ShipmentStatus]++

			agg, ok := supplierAgg[p.Supplier]
			if !ok {
				agg = &SupplierTotal{Supplier: p.Supplier}
				supplierAgg[p.Supplier] = agg
			}
			agg.Paid += p.Paid
			agg.Due += p.Due
		}

		for _, s := range sales {
			resp.TotalSales += s.Total
			resp.TotalProfit += s.TotalProfit
		}

		resp.TotalPurchases = ledger.Round2(resp.TotalPurchases)
		resp.TotalPaid = ledger.Round2(resp.TotalPaid)
		resp.TotalDue = ledger.Round2(resp.TotalDue)
		resp.TotalSales = ledger.Round2(resp.TotalSales)
		resp.TotalProfit = ledger.Round2(resp.TotalProfit)

		resp.TotalPurchasesDisplay = money.Sprintf("$%.2f", resp.TotalPurchases)
		resp.TotalPaidDisplay = money.Sprintf("$%.2f", resp.TotalPaid)
		resp.TotalDueDisplay = money.Sprintf("$%.2f", resp.TotalDue)
		resp.TotalSalesDisplay = money.Sprintf("$%.2f", resp.TotalSales)
		resp.TotalProfitDisplay = money.Sprintf("$%.2f", resp.TotalProfit)

		// durum dağılımı sabit sırayla, olmayan durumlar 0 sayılır
		for _, status := range []models.ShipmentStatus{
			models.ShipmentYetToDispatch,
			models.ShipmentDispatched,
			models.ShipmentDelayed,
			models.ShipmentDelivered,
		} {
			resp.StatusCounts = append(resp.StatusCounts, StatusCount{
				Status: string(status),
				Count:  statusCounts[status],
			})
		}

		resp.SupplierTotals = make([]SupplierTotal, 0, len(supplierAgg))
		for _, agg := range supplierAgg {
			agg.Paid = ledger.Round2(agg.Paid)
			agg.Due = ledger.Round2(agg.Due)
			resp.SupplierTotals = append(resp.SupplierTotals, *agg)
		}
		sort.Slice(resp.SupplierTotals, func(i, j int) bool {
			return resp.SupplierTotals[i].Supplier < resp.SupplierTotals[j].Supplier
		})

		return c.JSON(resp)
	}
}

// GET /api/dashboard/alerts
func AlertsHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		_ = store.Exclusive(func() error {
			purchases = ledger.Reconcile(store.LoadPurchases(), store.LoadPayments())
			return nil
		})

		now := time.Now()
		// bugünün 00:00'ı; kayıtlı tarihler UTC gece yarısı çözüldüğü için
		// gün sınırı da UTC'de sabitlenir
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		resp := AlertsResponse{
			OverduePayments:  make([]OverdueAlert, 0),
			DelayedShipments: make([]DelayedAlert, 0),
		}

		for _, p := range purchases {
			// vadesi geçmiş borç: borç var, vade tarihi dolu ve bugünden eski
			if p.Due > 0 && !p.NextPaymentDue.IsZero() && p.NextPaymentDue.Before(today) {
				resp.OverduePayments = append(resp.OverduePayments, OverdueAlert{
					SlNo:           p.SlNo,
					Supplier:       p.Supplier,
					Total:          p.Total,
					Paid:           p.Paid,
					Due:            p.Due,
					NextPaymentDue: models.FormatDate(p.NextPaymentDue),
				})
			}

			// geciken sevkiyat: ETA geçmiş ve durum teslim öncesi durumlardan
			// biri. Bozuk durum hücresi alarm üretmez.
			if p.ShipmentStatus.Valid() && p.ShipmentStatus != models.ShipmentDelivered &&
				!p.ETA.IsZero() && p.ETA.Before(today) {
				resp.DelayedShipments = append(resp.DelayedShipments, DelayedAlert{
					SlNo:           p.SlNo,
					Supplier:       p.Supplier,
					Material:       p.Material,
					ShipmentStatus: string(p.ShipmentStatus),
					ETA:            models.FormatDate(p.ETA),
				})
			}
		}

		return c.JSON(resp)
	}
}
