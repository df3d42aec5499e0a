package models

import "time"

// ParseDate - tablo hücresindeki tarihi çözer. Çözülemeyen değer belirsiz
// (sıfır) sayılır, hata üretmez.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate - gün hassasiyetinde yazım, belirsiz tarih boş string olur.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
