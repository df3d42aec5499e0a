package storage

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// getStr hücreyi ham haliyle döndürür. Tabloda olmayan kolon boş sayılır.
func getStr(df dataframe.DataFrame, col string, rowIdx int) string {
	for _, name := range df.Names() {
		if name == col {
			return df.Col(col).Elem(rowIdx).String()
		}
	}
	return ""
}

// parseFloat bozuk sayısal hücreyi 0 kabul eder. NaN ve sonsuz değerler
// para alanı için geçersizdir.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseInt "3" kadar "3.0" biçimini de kabul eder, bozuk hücre 0 olur.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
