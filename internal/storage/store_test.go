package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SatyaGranuman/import-export-app/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	return s, dir
}

func TestNewCreatesHeaderFiles(t *testing.T) {
	_, dir := newTestStore(t)

	want := map[string]string{
		UsersFile:     "username,password,role\n",
		PaymentsFile:  "PaymentID,PurchaseSlNo,Date,Amount,Note,NextPaymentDue\n",
		PurchasesFile: "SlNo,Date,Supplier",
		SalesFile:     "SlNo,Date,Buyer",
	}
	for file, prefix := range want {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), prefix), "%s başlığı beklenen biçimde değil", file)
	}
}

func TestNewKeepsExistingData(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.SaveUsers([]models.User{{Username: "ali", Password: "gizli", Role: models.RoleAdmin}}))

	again, err := New(dir)
	require.NoError(t, err)

	users := again.LoadUsers()
	require.Len(t, users, 1)
	require.Equal(t, "ali", users[0].Username)
}

func TestHeaderOnlyTableLoadsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	require.Empty(t, s.LoadPurchases())
	require.Empty(t, s.LoadPayments())
	require.Empty(t, s.LoadSales())
	require.Empty(t, s.LoadUsers())
}

func TestMissingFileLoadsEmpty(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.Remove(filepath.Join(dir, PurchasesFile)))

	require.Empty(t, s.LoadPurchases())
}

func TestPurchaseRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := []models.Purchase{
		{
			SlNo:            1,
			Date:            time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Supplier:        "Mekong Agro, Ltd",
			Material:        "Long grain rice",
			Qty:             12.5,
			UOM:             models.UOMMetricTon,
			UnitRate:        410.75,
			Total:           5134.38,
			PortLoading:     "Ho Chi Minh",
			PortDelivery:    "Mersin",
			PaymentOption:   models.Advance20,
			ShipmentStatus:  models.ShipmentDispatched,
			ProformaInvoice: "PI-2026-001",
			InvoiceNo:       "INV-17",
			BLNo:            "BL-9911",
			ETA:             time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
			ShippingLine:    "Maersk",
			NextPaymentDue:  time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
			Paid:            1026.88,
			Due:             4107.5,
		},
		{
			SlNo:           2,
			Supplier:       "Anatolia Pulses",
			Material:       "Red lentils",
			Qty:            3,
			UOM:            models.UOMKg,
			UnitRate:       2.4,
			Total:          7.2,
			PaymentOption:  models.Advance100,
			ShipmentStatus: models.ShipmentYetToDispatch,
			Due:            7.2,
		},
	}

	require.NoError(t, s.SavePurchases(in))
	require.Equal(t, in, s.LoadPurchases())
}

func TestPaymentRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := []models.Payment{
		{
			PaymentID:      1,
			PurchaseSlNo:   1,
			Date:           time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Amount:         1026.88,
			Note:           "Initial advance",
			NextPaymentDue: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		},
		{PaymentID: 2, PurchaseSlNo: 1, Amount: 500, Note: "wire, ref 4471"},
	}

	require.NoError(t, s.SavePayments(in))
	require.Equal(t, in, s.LoadPayments())
}

func TestSaleRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := []models.Sale{
		{
			SlNo:          1,
			Date:          time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
			Buyer:         "Baltic Foods",
			Material:      "Long grain rice",
			Qty:           4,
			UOM:           models.UOMMetricTon,
			SaleRate:      512.5,
			Total:         2050,
			PurchaseSlNo:  1,
			ProfitPerUnit: 101.75,
			TotalProfit:   407,
		},
	}

	require.NoError(t, s.SaveSales(in))
	require.Equal(t, in, s.LoadSales())
}

func TestSaveEmptyWritesHeaderOnly(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, s.SavePayments([]models.Payment{{PaymentID: 1, PurchaseSlNo: 1, Amount: 10}}))

	require.NoError(t, s.SavePayments(nil))

	data, err := os.ReadFile(filepath.Join(dir, PaymentsFile))
	require.NoError(t, err)
	require.Equal(t, "PaymentID,PurchaseSlNo,Date,Amount,Note,NextPaymentDue\n", string(data))
	require.Empty(t, s.LoadPayments())
}

func TestMalformedCellsParsePermissively(t *testing.T) {
	s, dir := newTestStore(t)

	raw := "SlNo,Date,Supplier,Material,Qty,UOM,UnitRate,Total,PortLoading,PortDelivery,PaymentOption,ShipmentStatus,ProformaInvoice,InvoiceNo,BLNo,ETA,ShippingLine,NextPaymentDue,Paid,Due\n" +
		"3.0,not-a-date,Mekong Agro,Rice,abc,MT,NaN,100,,,20%,Yet to Dispatch,,,,,,2026-03-20,xx,100\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, PurchasesFile), []byte(raw), 0o644))

	purchases := s.LoadPurchases()
	require.Len(t, purchases, 1)

	p := purchases[0]
	require.Equal(t, 3, p.SlNo)
	require.True(t, p.Date.IsZero())
	require.InDelta(t, 0, p.Qty, 1e-9)
	require.InDelta(t, 0, p.UnitRate, 1e-9)
	require.InDelta(t, 100, p.Total, 1e-9)
	require.InDelta(t, 0, p.Paid, 1e-9)
	require.Equal(t, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC), p.NextPaymentDue)
}

func TestExclusivePropagatesError(t *testing.T) {
	s, _ := newTestStore(t)
	want := errors.New("diskte yer yok")

	require.ErrorIs(t, s.Exclusive(func() error { return want }), want)
	require.NoError(t, s.Exclusive(func() error { return nil }))
}
