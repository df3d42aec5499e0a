package models

import "time"

// UOM - miktar birimi
type UOM string

const (
	UOMMetricTon UOM = "Metric Ton"
	UOMKg        UOM = "Kg"
	UOMPieces    UOM = "Pieces"
)

func (u UOM) Valid() bool {
	switch u {
	case UOMMetricTon, UOMKg, UOMPieces:
		return true
	}
	return false
}

// PaymentOption - alım anında otomatik düşülen peşinat oranı
type PaymentOption string

const (
	Advance10  PaymentOption = "10% advance"
	Advance20  PaymentOption = "20% advance"
	Advance30  PaymentOption = "30% advance"
	Advance100 PaymentOption = "100% advance"
)

// Fraction - peşinat oranının ondalık karşılığı (bilinmeyen seçenek için 0)
func (p PaymentOption) Fraction() float64 {
	switch p {
	case Advance10:
		return 0.10
	case Advance20:
		return 0.20
	case Advance30:
		return 0.30
	case Advance100:
		return 1.0
	}
	return 0
}

func (p PaymentOption) Valid() bool {
	return p.Fraction() > 0
}

// ShipmentStatus - sevkiyat durumu
type ShipmentStatus string

const (
	ShipmentYetToDispatch ShipmentStatus = "Yet to Dispatch"
	ShipmentDispatched    ShipmentStatus = "Dispatched"
	ShipmentDelayed       ShipmentStatus = "Delayed"
	ShipmentDelivered     ShipmentStatus = "Delivered"
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentYetToDispatch, ShipmentDispatched, ShipmentDelayed, ShipmentDelivered:
		return true
	}
	return false
}

// PaymentFlag - vade aciliyet durumu
type PaymentFlag string

const (
	FlagPaid    PaymentFlag = "Paid"
	FlagDue     PaymentFlag = "Due"
	FlagDueSoon PaymentFlag = "DueSoon"
	FlagOverdue PaymentFlag = "Overdue"
)

// Purchase - alım kaydı (purchases.csv satırı).
// Paid ve Due türetilmiş alanlardır: ödeme defterinden yeniden hesaplanır,
// dosyadaki değerleri asla kaynak kabul edilmez.
type Purchase struct {
	SlNo            int       // sıra numarası, ekleme sırasına göre atanır
	Date            time.Time // alım tarihi
	Supplier        string
	Material        string
	Qty             float64
	UOM             UOM
	UnitRate        float64
	Total           float64 // Qty × UnitRate, 2 ondalığa yuvarlanmış
	PortLoading     string
	PortDelivery    string
	PaymentOption   PaymentOption
	ShipmentStatus  ShipmentStatus
	ProformaInvoice string
	InvoiceNo       string
	BLNo            string
	ETA             time.Time // sıfır değer = belirsiz
	ShippingLine    string
	NextPaymentDue  time.Time // sıfır değer = belirsiz
	Paid            float64
	Due             float64
}
