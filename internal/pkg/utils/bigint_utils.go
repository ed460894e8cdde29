package utils

import (
	"math/big"
	"strings"
)

// FormatBigInt converts a big.Int value to a human-readable decimal string,
// dividing by 10^decimals and trimming trailing zeros.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(amountFloat, divisor)

	formatted := value.Text('f', int(decimals))
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if formatted == "" || strings.HasPrefix(formatted, ".") {
		formatted = "0" + formatted
	}
	return formatted
}

// RawToUnit parses a node raw-unit decimal string and converts it to the
// chain's display unit using the given power-of-ten divisor string (e.g.
// "1e30" worth of zeros for nano raw). Malformed input yields a zero value;
// balance display degrades, it never fails a render.
func RawToUnit(raw string, divisor string) (*big.Int, float64) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return big.NewInt(0), 0
	}
	div, ok := new(big.Float).SetString(divisor)
	if !ok || div.Sign() == 0 {
		return amount, 0
	}
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), div).Float64()
	return amount, value
}
