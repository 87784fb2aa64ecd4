package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/wrapped"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// amount formats v in currency, or as a plain number when the currency is unknown.
func amount(v decimal.Decimal, currency string) string {
	if currency == "" {
		return v.StringFixed(2)
	}
	return wrapped.M(v, currency).String()
}

// signedAmount is amount with an explicit sign, "-" for zero.
func signedAmount(v decimal.Decimal, currency string) string {
	if currency == "" {
		if v.IsPositive() {
			return "+" + v.StringFixed(2)
		}
		if v.IsZero() {
			return "-"
		}
		return v.StringFixed(2)
	}
	return wrapped.M(v, currency).SignedString()
}
