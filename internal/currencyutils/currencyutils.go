// Package currencyutils parses monetary strings as they appear on Nigerian
// bank statements into exact decimal values.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Tokens that statements print in empty amount cells.
var nilTokens = map[string]struct{}{
	"":    {},
	"-":   {},
	"--":  {},
	"nil": {},
	"n/a": {},
	"na":  {},
	"nan": {},
}

var symbolRe = regexp.MustCompile(`[₦#,\s]|NGN`)

// ParseAmount parses a statement amount string into a decimal.
// Handles currency markers ("₦", "NGN", "#"), thousands commas, and
// accounting-style parentheses for negatives. Empty-cell tokens parse to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if _, ok := nilTokens[strings.ToLower(strings.TrimSpace(amountStr))]; ok {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount strips currency markers, separators, and whitespace, and
// converts parenthesized values to a leading minus sign.
func StandardizeAmount(amountStr string) string {
	amountStr = symbolRe.ReplaceAllString(amountStr, "")

	if strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")") {
		amountStr = "-" + strings.Trim(amountStr, "()")
	}

	return amountStr
}

// IsAmount reports whether the string parses as a non-empty monetary amount.
// Empty-cell tokens do not count.
func IsAmount(amountStr string) bool {
	if _, ok := nilTokens[strings.ToLower(strings.TrimSpace(amountStr))]; ok {
		return false
	}
	_, err := decimal.NewFromString(StandardizeAmount(amountStr))
	return err == nil
}
