package purchase

import (
	"errors"
	"fmt"
	"log"
	"sort"
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

type CreatePurchaseRequest struct {
	Date            string  `json:"date"`     // "2026-03-10"
	Supplier        string  `json:"supplier"`
	Material        string  `json:"material"`
	Qty             float64 `json:"qty"`
	UOM             string  `json:"uom"`       // "Metric Ton", "Kg" veya "Pieces"
	UnitRate        float64 `json:"unit_rate"`
	PortLoading     string  `json:"port_loading"`
	PortDelivery    string  `json:"port_delivery"`
	PaymentOption   string  `json:"payment_option"` // "%10/%20/%30/%100 advance"
	ProformaInvoice string  `json:"proforma_invoice"`
}

type UpdateShipmentRequest struct {
	Status       string `json:"status"`
	InvoiceNo    string `json:"invoice_no"`
	BLNo         string `json:"bl_no"`
	ETA          string `json:"eta"` // "2026-04-02"
	ShippingLine string `json:"shipping_line"`
	PortLoading  string `json:"port_loading"`
	PortDelivery string `json:"port_delivery"`
}

type CreatePaymentRequest struct {
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"`             // "2026-03-10"
	Note           string  `json:"note"`             // opsiyonel
	NextPaymentDue string  `json:"next_payment_due"` // opsiyonel, alım kaydına da işlenir
}

type PurchaseResponse struct {
	SlNo            int     `json:"sl_no"`
	Date            string  `json:"date"`
	Supplier        string  `json:"supplier"`
	Material        string  `json:"material"`
	Qty             float64 `json:"qty"`
	UOM             string  `json:"uom"`
	UnitRate        float64 `json:"unit_rate"`
	Total           float64 `json:"total"`
	PortLoading     string  `json:"port_loading"`
	PortDelivery    string  `json:"port_delivery"`
	PaymentOption   string  `json:"payment_option"`
	ShipmentStatus  string  `json:"shipment_status"`
	ProformaInvoice string  `json:"proforma_invoice"`
	InvoiceNo       string  `json:"invoice_no"`
	BLNo            string  `json:"bl_no"`
	ETA             string  `json:"eta"`
	ShippingLine    string  `json:"shipping_line"`
	NextPaymentDue  string  `json:"next_payment_due"`
	Paid            float64 `json:"paid"`
	Due             float64 `json:"due"`
	PaymentFlag     string  `json:"payment_flag"`
}

type PaymentResponse struct {
	PaymentID      int     `json:"payment_id"`
	PurchaseSlNo   int     `json:"purchase_sl_no"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	Note           string  `json:"note"`
	NextPaymentDue string  `json:"next_payment_due"`
}

func toPurchaseResponse(p models.Purchase, today time.Time) PurchaseResponse {
	return PurchaseResponse{
		SlNo:            p.SlNo,
		Date:            models.FormatDate(p.Date),
		Supplier:        p.Supplier,
		Material:        p.Material,
		Qty:             p.Qty,
		UOM:             string(p.UOM),
		UnitRate:        p.UnitRate,
		Total:           p.Total,
		PortLoading:     p.PortLoading,
		PortDelivery:    p.PortDelivery,
		PaymentOption:   string(p.PaymentOption),
		ShipmentStatus:  string(p.ShipmentStatus),
		ProformaInvoice: p.ProformaInvoice,
		InvoiceNo:       p.InvoiceNo,
		BLNo:            p.BLNo,
		ETA:             models.FormatDate(p.ETA),
		ShippingLine:    p.ShippingLine,
		NextPaymentDue:  models.FormatDate(p.NextPaymentDue),
		Paid:            p.Paid,
		Due:             p.Due,
		PaymentFlag:     string(ledger.Flag(p, today)),
	}
}

func toPaymentResponse(p models.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		PurchaseSlNo:   p.PurchaseSlNo,
		Date:           models.FormatDate(p.Date),
		Amount:         p.Amount,
		Note:           p.Note,
		NextPaymentDue: models.FormatDate(p.NextPaymentDue),
	}
}

// -------------------------
// Yardımcı: sıra numarası çöz
// -------------------------
func parseSlNo(c *fiber.Ctx) (int, error) {
	slStr := c.Params("slno")
	var sl int
	if _, err := fmt.Sscan(slStr, &sl); err != nil || sl <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "slno geçersiz")
	}
	return sl, nil
}

// -------------------------
// Purchase CRUD
// -------------------------

// POST /api/purchases
func CreatePurchaseHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		// Validasyon
		body.Supplier = strings.TrimSpace(body.Supplier)
		body.Material = strings.TrimSpace(body.Material)
		if body.Supplier == "" {
			return fiber.NewError(fiber.StatusBadRequest, "supplier boş olamaz")
		}
		if body.Material == "" {
			return fiber.NewError(fiber.StatusBadRequest, "material boş olamaz")
		}
		if body.Qty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "qty 0'dan büyük olmalı")
		}
		if body.UnitRate <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "unit_rate 0'dan büyük olmalı")
		}
		uom := models.UOM(body.UOM)
		if !uom.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "uom 'Metric Ton', 'Kg' veya 'Pieces' olmalı")
		}
		option := models.PaymentOption(body.PaymentOption)
		if !option.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "payment_option '10% advance', '20% advance', '30% advance' veya '100% advance' olmalı")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		draft := models.Purchase{
			Date:            d,
			Supplier:        body.Supplier,
			Material:        body.Material,
			Qty:             body.Qty,
			UOM:             uom,
			UnitRate:        body.UnitRate,
			PortLoading:     strings.TrimSpace(body.PortLoading),
			PortDelivery:    strings.TrimSpace(body.PortDelivery),
			PaymentOption:   option,
			ProformaInvoice: strings.TrimSpace(body.ProformaInvoice),
		}

		today := time.Now()
		var created models.Purchase
		var advance float64
		err = store.Exclusive(func() error {
			purchases := store.LoadPurchases()
			payments := store.LoadPayments()

			purchases, created = ledger.RecordPurchase(purchases, draft)
			payments, advance = ledger.InitialAdvance(created, payments, today)
			purchases = ledger.Reconcile(purchases, payments)

			// peşinat sonrası güncel bakiyeyi yanıt için geri oku
			for _, p := range purchases {
				if p.SlNo == created.SlNo {
					created = p
				}
			}

			if err := store.SavePurchases(purchases); err != nil {
				return err
			}
			return store.SavePayments(payments)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alım kaydedilemedi")
		}

		log.Printf("Alım %d oluşturuldu, otomatik peşinat: %.2f", created.SlNo, advance)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"purchase":       toPurchaseResponse(created, today),
			"advance_amount": advance,
		})
	}
}

// GET /api/purchases?supplier=...&status=...
func ListPurchasesHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierFilter := strings.TrimSpace(c.Query("supplier"))
		statusFilter := strings.TrimSpace(c.Query("status"))

		if statusFilter != "" && !models.ShipmentStatus(statusFilter).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "status 'Yet to Dispatch', 'Dispatched', 'Delayed' veya 'Delivered' olmalı")
		}

		var purchases []models.Purchase
		_ = store.Exclusive(func() error {
			purchases = ledger.Reconcile(store.LoadPurchases(), store.LoadPayments())
			return nil
		})

		today := time.Now()
		resp := make([]PurchaseResponse, 0, len(purchases))
		for _, p := range purchases {
			if supplierFilter != "" && !strings.Contains(strings.ToLower(p.Supplier), strings.ToLower(supplierFilter)) {
				continue
			}
			if statusFilter != "" && string(p.ShipmentStatus) != statusFilter {
				continue
			}
			resp = append(resp, toPurchaseResponse(p, today))
		}

		return c.JSON(resp)
	}
}

// GET /api/purchases/:slno
func GetPurchaseHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sl, err := parseSlNo(c)
		if err != nil {
			return err
		}

		var found *models.Purchase
		var history []models.Payment
		_ = store.Exclusive(func() error {
			payments := store.LoadPayments()
			for _, p := range ledger.Reconcile(store.LoadPurchases(), payments) {
				if p.SlNo == sl {
					record := p
					found = &record
					break
				}
			}
			for _, pay := range payments {
				if pay.PurchaseSlNo == sl {
					history = append(history, pay)
				}
			}
			return nil
		})
		if found == nil {
			return fiber.NewError(fiber.StatusNotFound, "Alım kaydı bulunamadı")
		}

		sort.Slice(history, func(i, j int) bool {
			return history[i].Date.Before(history[j].Date)
		})

		historyResp := make([]PaymentResponse, 0, len(history))
		for _, pay := range history {
			historyResp = append(historyResp, toPaymentResponse(pay))
		}

		// ödeme ilerlemesi 0..100 aralığına sıkıştırılır
		pct := 0
		if found.Total > 0 {
			pct = int(found.Paid / found.Total * 100)
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}

		return c.JSON(fiber.Map{
			"purchase":     toPurchaseResponse(*found, time.Now()),
			"payments":     historyResp,
			"paid_percent": pct,
		})
	}
}

// -------------------------
// Shipment Update
// -------------------------

// PUT /api/purchases/:slno/shipment
func UpdateShipmentHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sl, err := parseSlNo(c)
		if err != nil {
			return err
		}

		var body UpdateShipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		status := models.ShipmentStatus(strings.TrimSpace(body.Status))
		if !status.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "status 'Yet to Dispatch', 'Dispatched', 'Delayed' veya 'Delivered' olmalı")
		}

		var eta time.Time
		if body.ETA != "" {
			eta, err = time.Parse("2006-01-02", body.ETA)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "eta formatı 'YYYY-MM-DD' olmalı")
			}
		}

		var updated models.Purchase
		err = store.Exclusive(func() error {
			purchases := ledger.Reconcile(store.LoadPurchases(), store.LoadPayments())

			idx := -1
			for i, p := range purchases {
				if p.SlNo == sl {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fiber.NewError(fiber.StatusNotFound, "Alım kaydı bulunamadı")
			}

			p := purchases[idx]
			if status == models.ShipmentDispatched {
				// sevkiyat onayı için fatura ve konşimento numarası şart
				inv := strings.TrimSpace(body.InvoiceNo)
				if inv == "" {
					inv = p.InvoiceNo
				}
				bl := strings.TrimSpace(body.BLNo)
				if bl == "" {
					bl = p.BLNo
				}
				if inv == "" || bl == "" {
					return fiber.NewError(fiber.StatusBadRequest, "Sevkiyat onayı için invoice_no ve bl_no zorunlu")
				}

				p.InvoiceNo = inv
				p.BLNo = bl
				if !eta.IsZero() {
					p.ETA = eta
				}
				if s := strings.TrimSpace(body.ShippingLine); s != "" {
					p.ShippingLine = s
				}
				if s := strings.TrimSpace(body.PortLoading); s != "" {
					p.PortLoading = s
				}
				if s := strings.TrimSpace(body.PortDelivery); s != "" {
					p.PortDelivery = s
				}
			}
			p.ShipmentStatus = status

			purchases[idx] = p
			updated = p
			return store.SavePurchases(purchases)
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat durumu kaydedilemedi")
		}

		return c.JSON(toPurchaseResponse(updated, time.Now()))
	}
}

// -------------------------
// Payment Update
// -------------------------

// POST /api/purchases/:slno/payments
func CreatePaymentHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sl, err := parseSlNo(c)
		if err != nil {
			return err
		}

		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var nextDue time.Time
		if body.NextPaymentDue != "" {
			nextDue, err = time.Parse("2006-01-02", body.NextPaymentDue)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "next_payment_due formatı 'YYYY-MM-DD' olmalı")
			}
		}

		draft := models.Payment{
			PurchaseSlNo:   sl,
			Date:           d,
			Amount:         body.Amount,
			Note:           strings.TrimSpace(body.Note),
			NextPaymentDue: nextDue,
		}

		var recorded models.Payment
		var parent models.Purchase
		err = store.Exclusive(func() error {
			purchases := store.LoadPurchases()
			payments := store.LoadPayments()

			newPurchases, newPayments, pay, err := ledger.ApplyPayment(purchases, payments, draft)
			if err != nil {
				return err
			}
			recorded = pay

			for _, p := range newPurchases {
				if p.SlNo == sl {
					parent = p
				}
			}

			if err := store.SavePurchases(newPurchases); err != nil {
				return err
			}
			return store.SavePayments(newPayments)
		})
		if err != nil {
			if errors.Is(err, ledger.ErrPurchaseNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Alım kaydı bulunamadı")
			}
			if errors.Is(err, ledger.ErrAmountNotPositive) {
				return fiber.NewError(fiber.StatusBadRequest, "amount 0'dan büyük olmalı")
			}
			var over *ledger.OverpaymentError
			if errors.As(err, &over) {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ödeme tutarı (%.2f) kalan borcu (%.2f) aşamaz", over.Amount, over.Due))
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme kaydedilemedi")
		}

		log.Printf("Alım %d için ödeme kaydedildi: %.2f", sl, recorded.Amount)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"payment":  toPaymentResponse(recorded),
			"purchase": toPurchaseResponse(parent, time.Now()),
		})
	}
}

// GET /api/purchases/:slno/payments
func ListPurchasePaymentsHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sl, err := parseSlNo(c)
		if err != nil {
			return err
		}

		found := false
		var history []models.Payment
		_ = store.Exclusive(func() error {
			for _, p := range store.LoadPurchases() {
				if p.SlNo == sl {
					found = true
					break
				}
			}
			for _, pay := range store.LoadPayments() {
				if pay.PurchaseSlNo == sl {
					history = append(history, pay)
				}
			}
			return nil
		})
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "Alım kaydı bulunamadı")
		}

		sort.Slice(history, func(i, j int) bool {
			return history[i].Date.Before(history[j].Date)
		})

		resp := make([]PaymentResponse, 0, len(history))
		for _, pay := range history {
			resp = append(resp, toPaymentResponse(pay))
		}

		return c.JSON(resp)
	}
}
