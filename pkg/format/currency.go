// Package format renders amounts using the en-IN conventions: rupee symbol and
// lakh/crore digit grouping (e.g. "₹10,00,000").
package format

import (
	"fmt"
	"strings"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/mathutil"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RupeeSymbol prefixes every formatted currency amount.
const RupeeSymbol = "₹"

// printer groups digits the en-IN way: the last three digits, then pairs.
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Currency returns a whole-rupee amount with Indian grouping (e.g. "-₹20,000").
func Currency(amount float64) (string, error) {
	formatted, err := Number(amount, 0)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(formatted, "-") {
		return "-" + RupeeSymbol + formatted[1:], nil
	}
	return RupeeSymbol + formatted, nil
}

// Number returns amount with Indian grouping and at most decimals fraction
// digits. Halves round away from zero and trailing zeros are dropped, so
// Number(1234.5, 2) is "1,234.5".
func Number(amount float64, decimals int) (string, error) {
	if !mathutil.IsFinite(amount) {
		return "", validation.Fail(validation.ErrNonFiniteInput, "amount", amount)
	}
	if decimals < 0 || decimals > constants.MaxFractionDigits {
		return "", fmt.Errorf("%w: decimals must be between 0 and %d, got %d",
			validation.ErrInvalidInput, constants.MaxFractionDigits, decimals)
	}

	// decimal does the rounding; the printer only ever sees as many fraction
	// digits as survived it, so its own rounding never applies.
	rounded := decimal.NewFromFloat(amount).Round(int32(decimals))
	return printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.MaxFractionDigits(fractionDigits(rounded)))), nil
}

// Percent is Number followed by a percent sign.
func Percent(value float64, decimals int) (string, error) {
	formatted, err := Number(value, decimals)
	if err != nil {
		return "", err
	}
	return formatted + "%", nil
}

// fractionDigits counts the significant fraction digits of d.
func fractionDigits(d decimal.Decimal) int {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
