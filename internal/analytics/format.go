package analytics

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "₹"

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a whole-rupee amount with Indian digit grouping.
func FormatINR(v float64) string {
	return CurrencySymbol + indianPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// ParseAmount reads a numeric cell leniently. Currency symbols and grouping
// commas are ignored; anything unparseable counts as zero.
func ParseAmount(cell string) float64 {
	cleaned := strings.NewReplacer(",", "", CurrencySymbol, "", " ", "").Replace(cell)
	if cleaned == "" {
		return 0
	}
	v, err := cast.ToFloat64E(cleaned)
	if err != nil {
		return 0
	}
	return v
}
