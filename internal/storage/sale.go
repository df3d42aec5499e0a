package storage

import (
	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/go-gota/gota/dataframe"
)

var saleColumns = []string{
	"SlNo", "Date", "Buyer", "Material", "Qty", "UOM", "SaleRate", "Total",
	"PurchaseSlNo", "ProfitPerUnit", "TotalProfit",
}

func dfRowToSale(df dataframe.DataFrame, rowIdx int) models.Sale {
	return models.Sale{
		SlNo:          parseInt(getStr(df, "SlNo", rowIdx)),
		Date:          models.ParseDate(getStr(df, "Date", rowIdx)),
		Buyer:         getStr(df, "Buyer", rowIdx),
		Material:      getStr(df, "Material", rowIdx),
		Qty:           parseFloat(getStr(df, "Qty", rowIdx)),
		UOM:           models.UOM(getStr(df, "UOM", rowIdx)),
		SaleRate:      parseFloat(getStr(df, "SaleRate", rowIdx)),
		Total:         parseFloat(getStr(df, "Total", rowIdx)),
		PurchaseSlNo:  parseInt(getStr(df, "PurchaseSlNo", rowIdx)),
		ProfitPerUnit: parseFloat(getStr(df, "ProfitPerUnit", rowIdx)),
		TotalProfit:   parseFloat(getStr(df, "TotalProfit", rowIdx)),
	}
}

func (s *Store) LoadSales() []models.Sale {
	df := s.loadFrame(SalesFile)
	sales := make([]models.Sale, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		sales = append(sales, dfRowToSale(df, i))
	}
	return sales
}

func (s *Store) SaveSales(sales []models.Sale) error {
	rows := make([][]string, 0, len(sales))
	for _, sl := range sales {
		rows = append(rows, []string{
			formatInt(sl.SlNo),
			models.FormatDate(sl.Date),
			sl.Buyer,
			sl.Material,
			formatFloat(sl.Qty),
			string(sl.UOM),
			formatFloat(sl.SaleRate),
			formatFloat(sl.Total),
			formatInt(sl.PurchaseSlNo),
			formatFloat(sl.ProfitPerUnit),
			formatFloat(sl.TotalProfit),
		})
	}
	return s.saveFrame(SalesFile, saleColumns, rows)
}
