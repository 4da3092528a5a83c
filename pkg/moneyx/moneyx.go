// Package moneyx formats integer cent amounts for display. Amounts are never
// held as floats anywhere in the service; this package is the only place cents
// become a decimal string.
package moneyx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var ErrInvalidAmount = errors.New("moneyx: invalid amount")

// Format renders cents as a US dollar string with digit grouping, e.g.
// 123456 -> "$1,234.56" and -500 -> "-$5.00".
func Format(cents int64) string {
	sign := ""
	u := uint64(cents) // #nosec G115
	if cents < 0 {
		sign = "-"
		u = uint64(-(cents + 1)) + 1 // #nosec G115
	}
	return printer.Sprintf("%s$%d.%02d", sign, u/100, u%100)
}

// Percent renders a ratio in [0,1] as a percentage with one
// decimal, e.g. 0.8126 -> "81.3%".
func Percent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}

// Parse converts a decimal dollar string ("12", "12.5", "$1,234.56") to cents.
// More than two fractional digits is an error rather than a rounding.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	d, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	c, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || c < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := d*100 + c
	if neg {
		cents = -cents
	}
	return cents, nil
}
