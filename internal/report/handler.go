package report

import (
	"fmt"

	"github.com/SatyaGranuman/import-export-app/internal/ledger"
	"github.com/SatyaGranuman/import-export-app/internal/models"
	"github.com/SatyaGranuman/import-export-app/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const sheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Başlık satırı stili: koyu yazı, açık mavi dolgu
func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	return style
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	style := headerStyle(f)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Rapor dosyası oluşturulamadı")
	}

	c.Set(fiber.HeaderContentType, sheetMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// GET /api/reports/purchases.xlsx
func PurchasesReportHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		_ = store.Exclusive(func() error {
			purchases = ledger.Reconcile(store.LoadPurchases(), store.LoadPayments())
			return nil
		})

		f := excelize.NewFile()
		sheet := "Purchases"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"SlNo", "Date", "Supplier", "Material", "Qty", "UOM", "UnitRate", "Total",
			"PortLoading", "PortDelivery", "PaymentOption", "ShipmentStatus",
			"ProformaInvoice", "InvoiceNo", "BLNo", "ETA", "ShippingLine",
			"NextPaymentDue", "Paid", "Due",
		}
		writeHeaderRow(f, sheet, headers)

		var totalSum, paidSum, dueSum float64
		for rowIdx, p := range purchases {
			row := rowIdx + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.SlNo)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), models.FormatDate(p.Date))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Supplier)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Material)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Qty)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), string(p.UOM))
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), p.UnitRate)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), p.Total)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), p.PortLoading)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), p.PortDelivery)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), string(p.PaymentOption))
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), string(p.ShipmentStatus))
			f.SetCellValue(sheet, fmt.Sprintf("M%d", row), p.ProformaInvoice)
			f.SetCellValue(sheet, fmt.Sprintf("N%d", row), p.InvoiceNo)
			f.SetCellValue(sheet, fmt.Sprintf("O%d", row), p.BLNo)
			f.SetCellValue(sheet, fmt.Sprintf("P%d", row), models.FormatDate(p.ETA))
			f.SetCellValue(sheet, fmt.Sprintf("Q%d", row), p.ShippingLine)
			f.SetCellValue(sheet, fmt.Sprintf("R%d", row), models.FormatDate(p.NextPaymentDue))
			f.SetCellValue(sheet, fmt.Sprintf("S%d", row), p.Paid)
			f.SetCellValue(sheet, fmt.Sprintf("T%d", row), p.Due)

			totalSum += p.Total
			paidSum += p.Paid
			dueSum += p.Due
		}

		// alt toplam satırı
		summaryRow := len(purchases) + 2
		summaryStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Toplam")
		f.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), ledger.Round2(totalSum))
		f.SetCellValue(sheet, fmt.Sprintf("S%d", summaryRow), ledger.Round2(paidSum))
		f.SetCellValue(sheet, fmt.Sprintf("T%d", summaryRow), ledger.Round2(dueSum))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("T%d", summaryRow), summaryStyle)

		return sendWorkbook(c, f, "purchases.xlsx")
	}
}

// GET /api/reports/payments.xlsx
func PaymentsReportHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payments []models.Payment
		_ = store.Exclusive(func() error {
			payments = store.LoadPayments()
			return nil
		})

		f := excelize.NewFile()
		sheet := "Payments"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"PaymentID", "PurchaseSlNo", "Date", "Amount", "Note", "NextPaymentDue"}
		writeHeaderRow(f, sheet, headers)

		var amountSum float64
		for rowIdx, p := range payments {
			row := rowIdx + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.PaymentID)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.PurchaseSlNo)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), models.FormatDate(p.Date))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Amount)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Note)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), models.FormatDate(p.NextPaymentDue))

			amountSum += p.Amount
		}

		summaryRow := len(payments) + 2
		summaryStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Toplam")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), ledger.Round2(amountSum))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

		return sendWorkbook(c, f, "purchase_payments.xlsx")
	}
}

// GET /api/reports/sales.xlsx
func SalesReportHandler(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sales []models.Sale
		_ = store.Exclusive(func() error {
			sales = ledger.RecalcSales(store.LoadSales(), store.LoadPurchases())
			return nil
		})

		f := excelize.NewFile()
		sheet := "Sales"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"SlNo", "Date", "Buyer", "Material", "Qty", "UOM", "SaleRate", "Total",
			"PurchaseSlNo", "ProfitPerUnit", "TotalProfit",
		}
		writeHeaderRow(f, sheet, headers)

		var totalSum, profitSum float64
		for rowIdx, s := range sales {
			row := rowIdx + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.SlNo)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), models.FormatDate(s.Date))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.Buyer)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.Material)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.Qty)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), string(s.UOM))
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), s.SaleRate)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), s.Total)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), s.PurchaseSlNo)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), s.ProfitPerUnit)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), s.TotalProfit)

			totalSum += s.Total
			profitSum += s.TotalProfit
		}

		summaryRow := len(sales) + 2
		summaryStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Toplam")
		f.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), ledger.Round2(totalSum))
		f.SetCellValue(sheet, fmt.Sprintf("K%d", summaryRow), ledger.Round2(profitSum))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("K%d", summaryRow), summaryStyle)

		return sendWorkbook(c, f, "sales.xlsx")
	}
}
