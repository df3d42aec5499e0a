package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/models"
)

var (
	ErrPurchaseNotFound  = errors.New("alım kaydı bulunamadı")
	ErrAmountNotPositive = errors.New("tutar 0'dan büyük olmalı")
)

// OverpaymentError - kalan borcu aşan ödeme denemesi. Reddedilir, sessizce
// kırpılmaz.
type OverpaymentError struct {
	Amount float64
	Due    float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("ödeme tutarı (%.2f) kalan borcu (%.2f) aşamaz", e.Amount, e.Due)
}

// Round2 - parasal değerler 2 ondalıkta tutulur
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Reconcile - her alımın Paid/Due alanlarını ödeme defterinden yeniden türetir.
// Ödemeler PurchaseSlNo üzerinden gruplanıp toplanır; tabloda olmayan bir alıma
// işaret eden ödemeler hata sayılmaz, yok sayılır. Girdiler değiştirilmez,
// çıktı yeni bir kopyadır; sıra ve diğer alanlar korunur.
func Reconcile(purchases []models.Purchase, payments []models.Payment) []models.Purchase {
	sums := make(map[int]float64, len(purchases))
	for _, pay := range payments {
		sums[pay.PurchaseSlNo] += pay.Amount
	}

	out := make([]models.Purchase, len(purchases))
	for i, p := range purchases {
		paid := sums[p.SlNo]
		p.Paid = Round2(paid)
		p.Due = Round2(math.Max(p.Total-paid, 0))
		out[i] = p
	}
	return out
}

// Flag - alımın vade aciliyet durumu. Karşılaştırma gün hassasiyetindedir.
func Flag(p models.Purchase, today time.Time) models.PaymentFlag {
	if p.Due <= 0 {
		return models.FlagPaid
	}
	if p.NextPaymentDue.IsZero() {
		return models.FlagDue
	}

	due := dateOnly(p.NextPaymentDue)
	ref := dateOnly(today)
	if due.Before(ref) {
		return models.FlagOverdue
	}
	// 7 günlük pencere sınır dahil
	if !due.After(ref.AddDate(0, 0, 7)) {
		return models.FlagDueSoon
	}
	return models.FlagDue
}

// dateOnly takvim gününü UTC gece yarısına indirger. Tablodan okunan
// tarihler de UTC gece yarısı çözülür, böylece kıyas sunucunun dilimi ne
// olursa olsun gün üzerinden yapılır.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextSlNo - bir sonraki alım sıra numarası. Numaralar en büyük mevcut
// değerin bir fazlasıdır, boş tabloda 1'dir; eski numaralar yeniden
// kullanılmaz.
func NextSlNo(purchases []models.Purchase) int {
	maxNo := 0
	for _, p := range purchases {
		if p.SlNo > maxNo {
			maxNo = p.SlNo
		}
	}
	return maxNo + 1
}

// NextPaymentID - bir sonraki ödeme kimliği (en büyük mevcut + 1, boş defterde 1)
func NextPaymentID(payments []models.Payment) int {
	maxID := 0
	for _, p := range payments {
		if p.PaymentID > maxID {
			maxID = p.PaymentID
		}
	}
	return maxID + 1
}

// RecordPurchase - yeni alımı numaralandırır, toplamını hesaplar ve koleksiyonun
// yeni bir kopyasına ekler. Paid 0, Due toplam ile başlar.
func RecordPurchase(purchases []models.Purchase, p models.Purchase) ([]models.Purchase, models.Purchase) {
	p.SlNo = NextSlNo(purchases)
	p.Total = Round2(p.Qty * p.UnitRate)
	p.Paid = 0
	p.Due = p.Total
	if p.ShipmentStatus == "" {
		p.ShipmentStatus = models.ShipmentYetToDispatch
	}

	out := make([]models.Purchase, 0, len(purchases)+1)
	out = append(out, purchases...)
	out = append(out, p)
	return out, p
}

// InitialAdvance - alım anında peşinat oranı kadar otomatik ödeme düşer.
// Oran × toplam sıfırsa defter olduğu gibi döner.
func InitialAdvance(p models.Purchase, payments []models.Payment, today time.Time) ([]models.Payment, float64) {
	advance := Round2(p.Total * p.PaymentOption.Fraction())
	if advance <= 0 {
		return payments, 0
	}

	pay := models.Payment{
		PaymentID:    NextPaymentID(payments),
		PurchaseSlNo: p.SlNo,
		Date:         today,
		Amount:       advance,
		Note:         "Initial advance",
	}

	out := make([]models.Payment, 0, len(payments)+1)
	out = append(out, payments...)
	out = append(out, pay)
	return out, advance
}

// ApplyPayment - ödemeyi doğrular, deftere ekler ve alımları yeniden hesaplar.
// pay.PurchaseSlNo hedef alımı seçer, pay.PaymentID çağıran tarafından boş
// bırakılır ve burada atanır. Reddedilen ödeme hiçbir koleksiyonu değiştirmez.
func ApplyPayment(purchases []models.Purchase, payments []models.Payment, pay models.Payment) ([]models.Purchase, []models.Payment, models.Payment, error) {
	reconciled := Reconcile(purchases, payments)

	idx := -1
	for i, p := range reconciled {
		if p.SlNo == pay.PurchaseSlNo {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil, models.Payment{}, ErrPurchaseNotFound
	}

	pay.Amount = Round2(pay.Amount)
	if pay.Amount <= 0 {
		return nil, nil, models.Payment{}, ErrAmountNotPositive
	}
	if due := reconciled[idx].Due; pay.Amount > due {
		return nil, nil, models.Payment{}, &OverpaymentError{Amount: pay.Amount, Due: due}
	}

	pay.PaymentID = NextPaymentID(payments)

	newPayments := make([]models.Payment, 0, len(payments)+1)
	newPayments = append(newPayments, payments...)
	newPayments = append(newPayments, pay)

	newPurchases := make([]models.Purchase, len(purchases))
	copy(newPurchases, purchases)
	if !pay.NextPaymentDue.IsZero() {
		newPurchases[idx].NextPaymentDue = pay.NextPaymentDue
	}
	newPurchases = Reconcile(newPurchases, newPayments)

	return newPurchases, newPayments, pay, nil
}

// DeletePayment - kaydı defterden çıkarır. Olmayan kimlik hata değildir,
// defter olduğu gibi döner; yeniden hesaplamayı çağıran tetikler.
func DeletePayment(payments []models.Payment, paymentID int) []models.Payment {
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.PaymentID == paymentID {
			continue
		}
		out = append(out, p)
	}
	return out
}
