package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency every amount in the ledger is kept in.
const ReportingCurrency = "SEK"

// Tolerance is the largest difference still treated as zero when checking
// that a balance sheet or a transaction balances.
var Tolerance = decimal.New(1, -2)

// ParseAmount converts a decimal string to an amount. Both "1234.50" and the
// Swedish "1 234,50" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals, a space as thousands
// separator and a decimal comma. E.g. 1234.5 -> "1 234,50".
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}

// IsZero reports whether amount is within Tolerance of zero.
func IsZero(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(Tolerance)
}
