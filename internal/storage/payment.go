package storage

import (
	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/go-gota/gota/dataframe"
)

var paymentColumns = []string{
	"PaymentID", "PurchaseSlNo", "Date", "Amount", "Note", "NextPaymentDue",
}

func dfRowToPayment(df dataframe.DataFrame, rowIdx int) models.Payment {
	return models.Payment{
		PaymentID:      parseInt(getStr(df, "PaymentID", rowIdx)),
		PurchaseSlNo:   parseInt(getStr(df, "PurchaseSlNo", rowIdx)),
		Date:           models.ParseDate(getStr(df, "Date", rowIdx)),
		Amount:         parseFloat(getStr(df, "Amount", rowIdx)),
		Note:           getStr(df, "Note", rowIdx),
		NextPaymentDue: models.ParseDate(getStr(df, "NextPaymentDue", rowIdx)),
	}
}

func (s *Store) LoadPayments() []models.Payment {
	df := s.loadFrame(PaymentsFile)
	payments := make([]models.Payment, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		payments = append(payments, dfRowToPayment(df, i))
	}
	return payments
}

func (s *Store) SavePayments(payments []models.Payment) error {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			formatInt(p.PaymentID),
			formatInt(p.PurchaseSlNo),
			models.FormatDate(p.Date),
			formatFloat(p.Amount),
			p.Note,
			models.FormatDate(p.NextPaymentDue),
		})
	}
	return s.saveFrame(PaymentsFile, paymentColumns, rows)
}
