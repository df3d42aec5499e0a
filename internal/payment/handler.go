package payment

import (
	"fmt"
	"log"
	"sort"

	"github.com/SatyaGranuman/import-export-app/internal/ledger"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type PaymentResponse struct {
	PaymentID      int     `json:"payment_id"`
	PurchaseSlNo   int     `json:"purchase_sl_no"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	Note           string  `json:"note"`
	NextPaymentDue string  `json:"next_payment_due"`
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

// GET /api/payments
func ListPaymentsHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payments []models.Payment
		_ = store.Exclusive(func() error {
			payments = store.LoadPayments()
			return nil
		})

		// genel bakış alım numarası ve tarih sırasıyla verilir
		sort.Slice(payments, func(i, j int) bool {
			if payments[i].PurchaseSlNo != payments[j].PurchaseSlNo {
				return payments[i].PurchaseSlNo < payments[j].PurchaseSlNo
			}
			return payments[i].Date.Before(payments[j].Date)
		})

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, toPaymentResponse(p))
		}

		return c.JSON(resp)
	}
}

// DELETE /api/payments/:id
func DeletePaymentHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params("id")
		var id int
		if _, err := fmt.Sscan(idStr, &id); err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		err := store.Exclusive(func() error {
			payments := ledger.DeletePayment(store.LoadPayments(), id)
			purchases := ledger.Reconcile(store.LoadPurchases(), payments)

			if err := store.SavePayments(payments); err != nil {
				return err
			}
			return store.SavePurchases(purchases)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme silinemedi")
		}

		log.Printf("Ödeme %d silindi, bakiyeler yeniden hesaplandı", id)

		// kayıt yoksa da silme idempotenttir
		return c.SendStatus(fiber.StatusNoContent)
	}
}
