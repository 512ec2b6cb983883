// Package brnum parses Brazilian-formatted numbers, currencies and
// percentages ("R$ 1.234,56", "35%") and normalizes strings for
// accent-insensitive matching.
package brnum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parse converts a Brazilian formatted number or currency string to a
// float64. Thousands separators use ".", the decimal separator is ",",
// and an optional "R$" prefix is stripped. Returns NaN for empty or
// unparsable input; it never panics, callers decide the fallback.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	// Drop all inner whitespace ("R$ 36,50" -> "R$36,50").
	s = strings.Join(strings.Fields(s), "")

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "R") {
		s = s[1:]
		s = strings.TrimPrefix(s, "$")
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ParsePercent parses a percentage string such as "35%" or "12,5 %".
// The "%" sign is optional; the numeric part follows Parse rules.
func ParsePercent(s string) float64 {
	s = strings.ReplaceAll(s, "%", "")
	return Parse(s)
}

var keyStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey lowercases, trims and removes diacritics so that
// "Preço de Compra" and "preco de compra" compare equal.
func NormalizeKey(s string) string {
	out, _, err := transform.String(keyStripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// FormatCurrency renders a value as pt-BR currency: "R$ 1.234,56".
func FormatCurrency(v float64) string {
	neg := math.Signbit(v)
	v = math.Abs(v)

	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents)
}

// FormatPercent renders a percentage with two decimals: "35.00%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
