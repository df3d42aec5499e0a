package models

import "time"

// Sale - satış kaydı (sales.csv satırı).
// ProfitPerUnit ve TotalProfit türetilmiş alanlardır: bağlı alımın birim
// fiyatından hesaplanır, bağlantısız satışta 0 kalır.
type Sale struct {
	SlNo          int
	Date          time.Time
	Buyer         string
	Material      string
	Qty           float64
	UOM           UOM
	SaleRate      float64
	Total         float64 // Qty × SaleRate, 2 ondalığa yuvarlanmış
	PurchaseSlNo  int     // 0 = bağlantısız
	ProfitPerUnit float64
	TotalProfit   float64
}
