package ledger

import (
	"testing"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRecordSaleAssignsTotals(t *testing.T) {
	sales, created := RecordSale(nil, models.Sale{
		Date:     time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		Buyer:    "Baltic Foods",
		Material: "Long grain rice",
		Qty:      4,
		UOM:      models.UOMMetricTon,
		SaleRate: 7.125,
	})

	require.Len(t, sales, 1)
	require.Equal(t, 1, created.SlNo)
	require.InDelta(t, 28.5, created.Total, 1e-9)

	sales, next := RecordSale(sales, models.Sale{Buyer: "Baltic Foods", Qty: 1, SaleRate: 10})
	require.Equal(t, 2, next.SlNo)
	require.Len(t, sales, 2)
}

func TestRecalcSalesProfit(t *testing.T) {
	purchases := []models.Purchase{{SlNo: 7, UnitRate: 5, Total: 50, Qty: 10}}
	sales := []models.Sale{
		{SlNo: 1, Qty: 4, SaleRate: 7.5, PurchaseSlNo: 7},
		{SlNo: 2, Qty: 3, SaleRate: 9, PurchaseSlNo: 0},
		{SlNo: 3, Qty: 2, SaleRate: 6, PurchaseSlNo: 99},
	}

	got := RecalcSales(sales, purchases)

	// bağlı satış: birim kâr satış ile alım birim fiyatı farkıdır
	require.InDelta(t, 2.5, got[0].ProfitPerUnit, 1e-9)
	require.InDelta(t, 10, got[0].TotalProfit, 1e-9)
	require.InDelta(t, 30, got[0].Total, 1e-9)

	// bağlantısız satışta kâr hesaplanmaz
	require.InDelta(t, 0, got[1].ProfitPerUnit, 1e-9)
	require.InDelta(t, 0, got[1].TotalProfit, 1e-9)

	// bilinmeyen alım referansı da kârsız kalır
	require.InDelta(t, 0, got[2].ProfitPerUnit, 1e-9)
	require.InDelta(t, 0, got[2].TotalProfit, 1e-9)

	// girdi değişmez
	require.InDelta(t, 0, sales[0].TotalProfit, 1e-9)
}
