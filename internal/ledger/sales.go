package ledger

import "github.com/SatyaGranuman/import-export-app/internal/models"

// NextSaleNo - bir sonraki satış sıra numarası (alımlarla aynı kural)
func NextSaleNo(sales []models.Sale) int {
	maxNo := 0
	for _, s := range sales {
		if s.SlNo > maxNo {
			maxNo = s.SlNo
		}
	}
	return maxNo + 1
}

// RecordSale - yeni satışı numaralandırır ve koleksiyonun yeni bir kopyasına
// ekler. Kâr alanları RecalcSales ile türetilir.
func RecordSale(sales []models.Sale, s models.Sale) ([]models.Sale, models.Sale) {
	s.SlNo = NextSaleNo(sales)
	s.Total = Round2(s.Qty * s.SaleRate)

	out := make([]models.Sale, 0, len(sales)+1)
	out = append(out, sales...)
	out = append(out, s)
	return out, s
}

// RecalcSales - her satışın kâr alanlarını bağlı alımın birim fiyatından
// yeniden türetir. Bağlantısız ya da bilinmeyen alıma işaret eden satışta kâr
// 0'dır. Girdiler değiştirilmez.
func RecalcSales(sales []models.Sale, purchases []models.Purchase) []models.Sale {
	rates := make(map[int]float64, len(purchases))
	for _, p := range purchases {
		rates[p.SlNo] = p.UnitRate
	}

	out := make([]models.Sale, len(sales))
	for i, s := range sales {
		s.Total = Round2(s.Qty * s.SaleRate)
		if rate, ok := rates[s.PurchaseSlNo]; ok && s.PurchaseSlNo > 0 {
			s.ProfitPerUnit = Round2(s.SaleRate - rate)
			s.TotalProfit = Round2(s.ProfitPerUnit * s.Qty)
		} else {
			s.ProfitPerUnit = 0
			s.TotalProfit = 0
		}
		out[i] = s
	}
	return out
}
