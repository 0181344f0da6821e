// Package money formats amounts the way the shop displays them: Indonesian
// rupiah, grouped per the id-ID locale. Amounts are integers in the smallest
// currency unit and are never computed here, only rendered.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders integer amounts as localized currency strings.
type Formatter struct {
	printer *message.Printer
}

// New creates a formatter for the given BCP 47 locale tag.
// Unparseable tags fall back to Indonesian, the shop's locale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders the amount as rupiah, e.g. 150000 -> "Rp 150.000,00".
func (f *Formatter) Format(amount int64) string {
	return f.printer.Sprintf("Rp %v", number.Decimal(amount, number.Scale(2)))
}

// FormatIDR renders with the default id-ID locale.
func FormatIDR(amount int64) string {
	return defaultFormatter.Format(amount)
}

var defaultFormatter = New("id-ID")
