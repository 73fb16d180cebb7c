// Package currencyutils converts localized decimal text to integer minor
// units and back, using per-currency ISO 4217 exponents. Amounts are kept as
// int64 minor units end to end so that formatting is bit-identical across
// locales and platforms.
package currencyutils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"fjacquet/camt-export/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrAmountSyntax reports non-digit residue after separator normalization.
var ErrAmountSyntax = errors.New("amount is not a well-formed decimal")

// ErrAmountRange reports an amount that does not fit int64 minor units.
var ErrAmountRange = errors.New("amount overflows int64 minor units")

// exponents lists the currencies that deviate from the usual two decimal
// places. Everything else defaults to 2.
var exponents = map[string]int{
	"JPY": 0, "KRW": 0, "VND": 0,
	"BHD": 3, "KWD": 3, "OMR": 3, "TND": 3,
	"CLF": 4,
}

// Exponent returns the number of minor-unit digits for a currency code,
// defaulting to 2 for unknown codes.
func Exponent(currency string) int {
	if exp, ok := exponents[currency]; ok {
		return exp
	}
	return 2
}

// pow10 table up to the largest supported exponent.
var pow10 = [...]int64{1, 10, 100, 1000, 10000}

// ParseMinor converts decimal text like "1.234,56" or "1234.56" to minor
// units for the given currency.
//
// The separator closest to the end of the string (the later of the last '.'
// and the last ',') is the decimal point; the other one is treated as a
// grouping separator and stripped. Parentheses negate (accounting
// convention) and combine with a leading sign. The fraction is truncated or
// zero-padded to the currency exponent.
//
// Any non-digit residue, and any overflow during scaling, yields 0: callers
// treat 0 as "unparseable, no movement" rather than an error. Use
// ParseMinorStrict when the failure must surface.
func ParseMinor(text, currency string) int64 {
	v, err := parseMinor(text, Exponent(currency))
	if err != nil {
		log.WithFields(logrus.Fields{
			"amount":   text,
			"currency": currency,
		}).WithError(err).Debug("Amount degraded to zero")
		return 0
	}
	return v
}

// ParseMinorStrict is the non-default strict variant of ParseMinor: instead
// of degrading to 0 it reports malformed input (ErrAmountSyntax) and
// out-of-range values (ErrAmountRange).
func ParseMinorStrict(text, currency string) (int64, error) {
	v, err := parseMinor(text, Exponent(currency))
	if err != nil {
		return 0, fmt.Errorf("parsing %q as %s minor units: %w", text, currency, err)
	}
	return v, nil
}

func parseMinor(text string, exp int) (int64, error) {
	s := stripGroupingNoise(text)

	neg := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		neg = true
		s = s[1 : len(s)-1]
	}
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			neg = !neg
		}
		s = s[1:]
	}

	// Decimal separator: whichever of the last '.' / last ',' occurs later.
	lastDot := strings.LastIndexByte(s, '.')
	lastCom := strings.LastIndexByte(s, ',')
	var dec byte
	switch {
	case lastDot < 0 && lastCom < 0:
	case lastDot < 0:
		dec = ','
	case lastCom < 0:
		dec = '.'
	case lastDot > lastCom:
		dec = '.'
	default:
		dec = ','
	}

	var intPart, fracPart string
	if dec != 0 {
		pos := strings.LastIndexByte(s, dec)
		intPart, fracPart = s[:pos], s[pos+1:]
		other := byte('.')
		if dec == '.' {
			other = ','
		}
		intPart = strings.ReplaceAll(intPart, string(other), "")
		fracPart = strings.ReplaceAll(fracPart, string(other), "")
	} else {
		intPart = s
	}

	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrAmountSyntax
	}

	if exp < 0 {
		exp = 0
	}
	if len(fracPart) > exp {
		fracPart = fracPart[:exp]
	} else if len(fracPart) < exp {
		fracPart += strings.Repeat("0", exp-len(fracPart))
	}

	ip, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return 0, ErrAmountRange
	}
	var fp uint64
	if fracPart != "" {
		fp, err = strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return 0, ErrAmountRange
		}
	}
	if ip > math.MaxInt64 {
		return 0, ErrAmountRange
	}

	scale := pow10[exp]
	major := int64(ip)
	if major != 0 && major > math.MaxInt64/scale {
		return 0, ErrAmountRange
	}
	scaled := major * scale
	frac := int64(fp)
	if scaled > math.MaxInt64-frac {
		return 0, ErrAmountRange
	}
	v := scaled + frac
	if neg {
		v = -v
	}
	return v, nil
}

// stripGroupingNoise removes whitespace and the apostrophe/underscore/NBSP
// grouping characters some bank exports use.
func stripGroupingNoise(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', '\'', '_', '\u00A0':
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders a CurrencyAmount as plain decimal text with a '-' sign, '.'
// separator and a fixed-width fractional part of exactly the currency's
// exponent digits. No grouping, no currency suffix. Exact inverse of
// ParseMinor for in-range values.
func Format(a models.CurrencyAmount) string {
	exp := Exponent(a.Currency)
	v := a.Minor
	neg := v < 0
	if neg {
		v = -v
	}
	scale := pow10[exp]
	major := v / scale
	frac := v % scale

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(major, 10))
	if exp > 0 {
		b.WriteByte('.')
		f := strconv.FormatInt(frac, 10)
		for i := len(f); i < exp; i++ {
			b.WriteByte('0')
		}
		b.WriteString(f)
	}
	return b.String()
}

// Major converts a CurrencyAmount to its major-unit decimal value. Used for
// exchange-rate derivation only, never for amount arithmetic.
func Major(a models.CurrencyAmount) decimal.Decimal {
	return decimal.New(a.Minor, -int32(Exponent(a.Currency)))
}
