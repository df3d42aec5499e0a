package ledger

import (
	"testing"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePurchase(slNo int, total float64) models.Purchase {
	return models.Purchase{
		SlNo:           slNo,
		Date:           day(2026, time.March, 1),
		Supplier:       "Mekong Agro",
		Material:       "Long grain rice",
		Qty:            total / 5,
		UOM:            models.UOMMetricTon,
		UnitRate:       5,
		Total:          total,
		PaymentOption:  models.Advance10,
		ShipmentStatus: models.ShipmentYetToDispatch,
	}
}

func TestReconcileEmptyLedger(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 500), samplePurchase(2, 120.5)}

	got := Reconcile(purchases, nil)

	require.Len(t, got, 2)
	require.InDelta(t, 0, got[0].Paid, 1e-9)
	require.InDelta(t, 500, got[0].Due, 1e-9)
	require.InDelta(t, 0, got[1].Paid, 1e-9)
	require.InDelta(t, 120.5, got[1].Due, 1e-9)
}

func TestReconcileGroupsAndRounds(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100), samplePurchase(2, 200)}
	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 1, Amount: 0.1},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 0.1},
		{PaymentID: 3, PurchaseSlNo: 1, Amount: 0.1},
		{PaymentID: 4, PurchaseSlNo: 2, Amount: 33.333},
	}

	got := Reconcile(purchases, payments)

	require.InDelta(t, 0.3, got[0].Paid, 1e-9)
	require.InDelta(t, 99.7, got[0].Due, 1e-9)
	require.InDelta(t, 33.33, got[1].Paid, 1e-9)
	require.InDelta(t, 166.67, got[1].Due, 1e-9)
}

func TestReconcileIgnoresUnknownReference(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 99, Amount: 40},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 25},
	}

	got := Reconcile(purchases, payments)

	require.InDelta(t, 25, got[0].Paid, 1e-9)
	require.InDelta(t, 75, got[0].Due, 1e-9)
}

func TestReconcileOverpaymentClampsDue(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 1, Amount: 80},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 50},
	}

	got := Reconcile(purchases, payments)

	require.InDelta(t, 130, got[0].Paid, 1e-9)
	require.InDelta(t, 0, got[0].Due, 1e-9)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	purchases[0].Paid = -1
	purchases[0].Due = -1
	payments := []models.Payment{{PaymentID: 1, PurchaseSlNo: 1, Amount: 30}}

	got := Reconcile(purchases, payments)

	require.InDelta(t, -1, purchases[0].Paid, 1e-9)
	require.InDelta(t, -1, purchases[0].Due, 1e-9)
	require.InDelta(t, 30, got[0].Paid, 1e-9)
	require.InDelta(t, 70, got[0].Due, 1e-9)
}

func TestReconcileIdempotent(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100), samplePurchase(2, 250)}
	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 1, Amount: 33.333},
		{PaymentID: 2, PurchaseSlNo: 2, Amount: 100},
	}

	once := Reconcile(purchases, payments)
	twice := Reconcile(once, payments)

	require.Equal(t, once, twice)
}

func TestFlag(t *testing.T) {
	today := day(2026, time.March, 10)

	cases := []struct {
		name    string
		due     float64
		nextDue time.Time
		want    models.PaymentFlag
	}{
		{"fully paid ignores dates", 0, day(2020, time.January, 1), models.FlagPaid},
		{"negative due is paid", -0.01, time.Time{}, models.FlagPaid},
		{"due without date", 10, time.Time{}, models.FlagDue},
		{"yesterday is overdue", 10, day(2026, time.March, 9), models.FlagOverdue},
		{"today is due soon", 10, day(2026, time.March, 10), models.FlagDueSoon},
		{"seventh day still due soon", 10, day(2026, time.March, 17), models.FlagDueSoon},
		{"eighth day is plain due", 10, day(2026, time.March, 18), models.FlagDue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := samplePurchase(1, 100)
			p.Due = tc.due
			p.NextPaymentDue = tc.nextDue
			require.Equal(t, tc.want, Flag(p, today))
		})
	}
}

func TestFlagIgnoresServerTimezone(t *testing.T) {
	// tablodan okunan vade UTC gece yarısıdır, "bugün" ise sunucunun
	// dilimindeki duvar saatiyle gelir
	east := time.FixedZone("UTC+3", 3*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)

	cases := []struct {
		name    string
		today   time.Time
		nextDue time.Time
		want    models.PaymentFlag
	}{
		{"seventh day ahead of UTC", time.Date(2026, time.March, 10, 14, 0, 0, 0, east), models.ParseDate("2026-03-17"), models.FlagDueSoon},
		{"eighth day ahead of UTC", time.Date(2026, time.March, 10, 14, 0, 0, 0, east), models.ParseDate("2026-03-18"), models.FlagDue},
		{"same day behind UTC", time.Date(2026, time.March, 10, 14, 0, 0, 0, west), models.ParseDate("2026-03-10"), models.FlagDueSoon},
		{"yesterday behind UTC", time.Date(2026, time.March, 10, 14, 0, 0, 0, west), models.ParseDate("2026-03-09"), models.FlagOverdue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := samplePurchase(1, 100)
			p.Due = 10
			p.NextPaymentDue = tc.nextDue
			require.Equal(t, tc.want, Flag(p, tc.today))
		})
	}
}

func TestApplyPaymentRecordsAndReconciles(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{{PaymentID: 3, PurchaseSlNo: 1, Amount: 20}}
	nextDue := day(2026, time.April, 1)

	newPurchases, newPayments, recorded, err := ApplyPayment(purchases, payments, models.Payment{
		PurchaseSlNo:   1,
		Date:           day(2026, time.March, 10),
		Amount:         30,
		Note:           "second installment",
		NextPaymentDue: nextDue,
	})

	require.NoError(t, err)
	require.Equal(t, 4, recorded.PaymentID)
	require.Len(t, newPayments, 2)
	require.InDelta(t, 50, newPurchases[0].Paid, 1e-9)
	require.InDelta(t, 50, newPurchases[0].Due, 1e-9)
	require.Equal(t, nextDue, newPurchases[0].NextPaymentDue)
	// girdiler kopyalanır
	require.Len(t, payments, 1)
	require.True(t, purchases[0].NextPaymentDue.IsZero())
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 1000)}
	var payments []models.Payment

	newPurchases, newPayments, _, err := ApplyPayment(purchases, payments, models.Payment{
		PurchaseSlNo: 1,
		Date:         day(2026, time.March, 10),
		Amount:       1200,
	})

	var over *OverpaymentError
	require.ErrorAs(t, err, &over)
	require.InDelta(t, 1200, over.Amount, 1e-9)
	require.InDelta(t, 1000, over.Due, 1e-9)
	require.Nil(t, newPurchases)
	require.Nil(t, newPayments)

	got := Reconcile(purchases, payments)
	require.InDelta(t, 1000, got[0].Due, 1e-9)
}

func TestApplyPaymentRejectsUnknownPurchase(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}

	_, _, _, err := ApplyPayment(purchases, nil, models.Payment{PurchaseSlNo: 42, Amount: 10})

	require.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}

	for _, amount := range []float64{0, -5, 0.001} {
		_, _, _, err := ApplyPayment(purchases, nil, models.Payment{PurchaseSlNo: 1, Amount: amount})
		require.ErrorIs(t, err, ErrAmountNotPositive, "amount %v", amount)
	}
}

func TestApplyPaymentExactDueBecomesPaid(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{{PaymentID: 1, PurchaseSlNo: 1, Amount: 60}}

	newPurchases, _, _, err := ApplyPayment(purchases, payments, models.Payment{
		PurchaseSlNo: 1,
		Date:         day(2026, time.March, 10),
		Amount:       40,
	})

	require.NoError(t, err)
	require.InDelta(t, 0, newPurchases[0].Due, 1e-9)
	require.Equal(t, models.FlagPaid, Flag(newPurchases[0], day(2026, time.March, 10)))
}

func TestDeletePaymentAbsentIsNoop(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{{PaymentID: 1, PurchaseSlNo: 1, Amount: 30}}

	got := DeletePayment(payments, 99)

	require.Equal(t, payments, got)
	require.InDelta(t, 70, Reconcile(purchases, got)[0].Due, 1e-9)
}

func TestDeletePaymentRestoresDue(t *testing.T) {
	purchases := []models.Purchase{samplePurchase(1, 100)}
	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 1, Amount: 30},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 20},
	}

	got := DeletePayment(payments, 1)

	require.Len(t, got, 1)
	reconciled := Reconcile(purchases, got)
	require.InDelta(t, 20, reconciled[0].Paid, 1e-9)
	require.InDelta(t, 80, reconciled[0].Due, 1e-9)
}

func TestPaymentIDFollowsCurrentMax(t *testing.T) {
	require.Equal(t, 1, NextPaymentID(nil))

	payments := []models.Payment{
		{PaymentID: 1, PurchaseSlNo: 1, Amount: 10},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 10},
	}
	require.Equal(t, 3, NextPaymentID(payments))

	// en büyük kayıt silinirse kimlik mevcut en büyüğün bir fazlası olarak devam eder
	require.Equal(t, 2, NextPaymentID(DeletePayment(payments, 2)))
}

func TestPurchaseNumbersNeverReused(t *testing.T) {
	require.Equal(t, 1, NextSlNo(nil))

	purchases := []models.Purchase{samplePurchase(1, 100), samplePurchase(3, 100)}
	require.Equal(t, 4, NextSlNo(purchases))

	// ödeme silmek alım numaralarını etkilemez
	payments := []models.Payment{{PaymentID: 1, PurchaseSlNo: 3, Amount: 10}}
	_ = DeletePayment(payments, 1)
	require.Equal(t, 4, NextSlNo(purchases))
}

func TestRecordPurchaseAssignsTotals(t *testing.T) {
	newPurchases, created := RecordPurchase(nil, models.Purchase{
		Date:          day(2026, time.March, 10),
		Supplier:      "Mekong Agro",
		Material:      "Cashew W320",
		Qty:           2.5,
		UOM:           models.UOMMetricTon,
		UnitRate:      1401.334,
		PaymentOption: models.Advance30,
	})

	require.Len(t, newPurchases, 1)
	require.Equal(t, 1, created.SlNo)
	require.InDelta(t, 3503.34, created.Total, 1e-9)
	require.InDelta(t, 0, created.Paid, 1e-9)
	require.InDelta(t, created.Total, created.Due, 1e-9)
	require.Equal(t, models.ShipmentYetToDispatch, created.ShipmentStatus)
}

func TestInitialAdvanceSkipsZeroAmount(t *testing.T) {
	p := samplePurchase(1, 0)
	p.Total = 0

	payments, advance := InitialAdvance(p, nil, day(2026, time.March, 10))

	require.Empty(t, payments)
	require.InDelta(t, 0, advance, 1e-9)
}

func TestPurchaseLifecycle(t *testing.T) {
	today := day(2026, time.March, 10)

	// qty 10 × rate 5, %20 peşinat
	purchases, created := RecordPurchase(nil, models.Purchase{
		Date:          today,
		Supplier:      "Mekong Agro",
		Material:      "Long grain rice",
		Qty:           10,
		UOM:           models.UOMMetricTon,
		UnitRate:      5,
		PaymentOption: models.Advance20,
	})
	require.InDelta(t, 50, created.Total, 1e-9)

	payments, advance := InitialAdvance(created, nil, today)
	require.InDelta(t, 10, advance, 1e-9)
	require.Len(t, payments, 1)
	require.Equal(t, "Initial advance", payments[0].Note)

	purchases = Reconcile(purchases, payments)
	require.InDelta(t, 10, purchases[0].Paid, 1e-9)
	require.InDelta(t, 40, purchases[0].Due, 1e-9)

	purchases, payments, _, err := ApplyPayment(purchases, payments, models.Payment{
		PurchaseSlNo: created.SlNo,
		Date:         today,
		Amount:       40,
	})
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.InDelta(t, 50, purchases[0].Paid, 1e-9)
	require.InDelta(t, 0, purchases[0].Due, 1e-9)
	require.Equal(t, models.FlagPaid, Flag(purchases[0], today))
}
