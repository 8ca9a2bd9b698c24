package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for display with locale grouping separators.
type Formatter struct {
	p *message.Printer
}

// NewFormatter creates a Formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Int formats a whole number, e.g. 1,234,567.
func (f *Formatter) Int(n int64) string {
	return f.p.Sprintf("%d", n)
}

// Fixed2 formats with exactly two decimals, e.g. 1,234.50.
func (f *Formatter) Fixed2(v float64) string {
	return f.p.Sprintf("%.2f", v)
}

// Number formats with up to three decimals and no trailing zeros.
func (f *Formatter) Number(v float64) string {
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
