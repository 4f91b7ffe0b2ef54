package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Upstream catalog prices are USD; the storefront displays INR.
const rupeeSign = "₹"

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Converter turns upstream USD amounts into display-ready INR. The rate is
// injected from config rather than read from a package global.
type Converter struct {
	rate decimal.Decimal
}

func NewConverter(usdToINRRate float64) Converter {
	return Converter{rate: decimal.NewFromFloat(usdToINRRate)}
}

// ConvertUSDToINR multiplies by the configured rate and rounds to whole
// rupees, matching how the storefront presents prices.
func (c Converter) ConvertUSDToINR(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(c.rate).Round(0)
}

// DisplayPrice renders a USD amount as a formatted INR string.
func (c Converter) DisplayPrice(usd decimal.Decimal) string {
	return FormatINR(c.ConvertUSDToINR(usd))
}

// FormatINR renders an INR amount with the rupee sign and Indian digit
// grouping (lakh/crore), e.g. ₹1,23,456.
func FormatINR(amount decimal.Decimal) string {
	return rupeeSign + inPrinter.Sprint(number.Decimal(amount.Round(0).IntPart()))
}
