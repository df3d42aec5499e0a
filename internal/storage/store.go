package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Tablo başına tek CSV dosyası tutulur. Dosyalar tablo görünümünde
// okunup yazılır, satırların tipleri modele çevrilirken çözülür.
const (
	UsersFile     = "users.csv"
	PurchasesFile = "purchases.csv"
	PaymentsFile  = "purchase_payments.csv"
	SalesFile     = "sales.csv"
)

var tableColumns = map[string][]string{
	UsersFile:     userColumns,
	PurchasesFile: purchaseColumns,
	PaymentsFile:  paymentColumns,
	SalesFile:     saleColumns,
}

// Store veri klasöründeki CSV tablolarına erişimi yönetir. Load ve Save
// metotları kendi başına kilitlenmez, her erişim Exclusive içinden geçmelidir.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New veri klasörünü hazırlar ve eksik ya da boş tabloları başlık
// satırıyla oluşturur. Mevcut veriye dokunmaz.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("veri klasörü oluşturulamadı (%s): %v", dir, err)
	}

	s := &Store{dir: dir}
	for file, cols := range tableColumns {
		if err := s.ensureTable(file, cols); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Exclusive fn çalışırken başka hiçbir okuma ya da yazma olmamasını garanti
// eder. Oku-değiştir-yaz akışlarının tamamı tek fn içinde kalmalıdır.
func (s *Store) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

func (s *Store) ensureTable(file string, cols []string) error {
	p := s.path(file)
	info, err := os.Stat(p)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s incelenemedi: %v", file, err)
	}
	return writeHeader(p, cols)
}

func writeHeader(path string, cols []string) error {
	return os.WriteFile(path, []byte(strings.Join(cols, ",")+"\n"), 0o644)
}

// loadFrame tabloyu ham metin hücreler halinde okur. Eksik ya da bozuk
// dosya boş tablo sayılır.
func (s *Store) loadFrame(file string) dataframe.DataFrame {
	f, err := os.Open(s.path(file))
	if err != nil {
		return dataframe.DataFrame{}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithLazyQuotes(true),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}
	}
	return df
}

func (s *Store) saveFrame(file string, cols []string, rows [][]string) error {
	// gota başlıktan ibaret tabloyu kabul etmez, boş koleksiyon
	// doğrudan başlık satırı olarak yazılır.
	if len(rows) == 0 {
		return writeHeader(s.path(file), cols)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, cols)
	records = append(records, rows...)

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return fmt.Errorf("%s tablosu kurulamadı: %v", file, df.Error())
	}

	f, err := os.Create(s.path(file))
	if err != nil {
		return fmt.Errorf("%s dosyası açılamadı: %v", file, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("%s dosyasına yazılamadı: %v", file, err)
	}
	return nil
}
