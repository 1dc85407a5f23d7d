package usecase

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as "R$ 1.234,56".
func FormatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

// FormatShortDate renders t as dd/mm/yyyy, or "-" for the zero time.
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
