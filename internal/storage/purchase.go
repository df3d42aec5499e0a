package storage

import (
	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/go-gota/gota/dataframe"
)

var purchaseColumns = []string{
	"SlNo", "Date", "Supplier", "Material", "Qty", "UOM", "UnitRate", "Total",
	"PortLoading", "PortDelivery", "PaymentOption", "ShipmentStatus",
	"ProformaInvoice", "InvoiceNo", "BLNo", "ETA", "ShippingLine",
	"NextPaymentDue", "Paid", "Due",
}

func dfRowToPurchase(df dataframe.DataFrame, rowIdx int) models.Purchase {
	return models.Purchase{
		SlNo:            parseInt(getStr(df, "SlNo", rowIdx)),
		Date:            models.ParseDate(getStr(df, "Date", rowIdx)),
		Supplier:        getStr(df, "Supplier", rowIdx),
		Material:        getStr(df, "Material", rowIdx),
		Qty:             parseFloat(getStr(df, "Qty", rowIdx)),
		UOM:             models.UOM(getStr(df, "UOM", rowIdx)),
		UnitRate:        parseFloat(getStr(df, "UnitRate", rowIdx)),
		Total:           parseFloat(getStr(df, "Total", rowIdx)),
		PortLoading:     getStr(df, "PortLoading", rowIdx),
		PortDelivery:    getStr(df, "PortDelivery", rowIdx),
		PaymentOption:   models.PaymentOption(getStr(df, "PaymentOption", rowIdx)),
		ShipmentStatus:  models.ShipmentStatus(getStr(df, "ShipmentStatus", rowIdx)),
		ProformaInvoice: getStr(df, "ProformaInvoice", rowIdx),
		InvoiceNo:       getStr(df, "InvoiceNo", rowIdx),
		BLNo:            getStr(df, "BLNo", rowIdx),
		ETA:             models.ParseDate(getStr(df, "ETA", rowIdx)),
		ShippingLine:    getStr(df, "ShippingLine", rowIdx),
		NextPaymentDue:  models.ParseDate(getStr(df, "NextPaymentDue", rowIdx)),
		Paid:            parseFloat(getStr(df, "Paid", rowIdx)),
		Due:             parseFloat(getStr(df, "Due", rowIdx)),
	}
}

func (s *Store) LoadPurchases() []models.Purchase {
	df := s.loadFrame(PurchasesFile)
	purchases := make([]models.Purchase, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		purchases = append(purchases, dfRowToPurchase(df, i))
	}
	return purchases
}

func (s *Store) SavePurchases(purchases []models.Purchase) error {
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, []string{
			formatInt(p.SlNo),
			models.FormatDate(p.Date),
			p.Supplier,
			p.Material,
			formatFloat(p.Qty),
			string(p.UOM),
			formatFloat(p.UnitRate),
			formatFloat(p.Total),
			p.PortLoading,
			p.PortDelivery,
			string(p.PaymentOption),
			string(p.ShipmentStatus),
			p.ProformaInvoice,
			p.InvoiceNo,
			p.BLNo,
			models.FormatDate(p.ETA),
			p.ShippingLine,
			models.FormatDate(p.NextPaymentDue),
			formatFloat(p.Paid),
			formatFloat(p.Due),
		})
	}
	return s.saveFrame(PurchasesFile, purchaseColumns, rows)
}
