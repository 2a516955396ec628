package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a monetary amount the way the UI displays it,
// with Brazilian digit grouping and decimal comma.
func FormatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}
