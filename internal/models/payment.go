package models

import "time"

// Payment - ödeme defteri kaydı (purchase_payments.csv satırı).
// Her kayıt tam olarak bir alıma bağlıdır.
type Payment struct {
	PaymentID      int
	PurchaseSlNo   int // bağlı alımın sıra numarası
	Date           time.Time
	Amount         float64
	Note           string
	NextPaymentDue time.Time // doluysa alımın NextPaymentDue alanının üzerine yazılır
}
