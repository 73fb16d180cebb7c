package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// asciiSpace is the whitespace set used for trimming display values. Only
// ASCII is trimmed; multi-byte whitespace inside values is the business of
// the freetext normalizer.
const asciiSpace = " \t\n\r\f\v"

func asciiTrim(s string) string {
	return strings.Trim(s, asciiSpace)
}

func asciiStripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}

// asciiUpper uppercases ASCII letters and leaves all other runes untouched.
// Bank references mix ASCII identifiers with occasional non-ASCII noise;
// full Unicode case mapping would destabilize those bytes across platforms.
func asciiUpper(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}

var caseFolder = cases.Fold()

// normalizeFreetext canonicalizes human-entered text for comparison: Unicode
// case folding, NFC composition, then removal of all whitespace and
// zero-width characters. The result is a matching key, not display text.
func normalizeFreetext(s string) string {
	s = norm.NFC.String(caseFolder.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeField canonicalizes a raw value for the given column. Dates,
// amounts and flags are only trimmed; their values are already canonical by
// construction and must never be rewritten here.
func NormalizeField(f Field, v string) string {
	switch f {
	case FieldRemittanceLine, FieldRemittanceStructured, FieldCounterpartyName:
		return normalizeFreetext(v)

	case FieldEndToEndID, FieldMandateID, FieldTxID, FieldBankRef, FieldPrimanota,
		FieldAccountIBAN, FieldCounterpartyIBAN, FieldAccountBIC, FieldCounterpartyBIC:
		return asciiUpper(asciiStripSpaces(v))

	case FieldCurrency, FieldChargesCurrency, FieldCreditDebit, FieldBkTxCd,
		FieldBookingCode, FieldDTACode, FieldGVCCode, FieldSWIFTTransactionCode:
		return asciiUpper(asciiTrim(v))

	default:
		return asciiTrim(v)
	}
}

// normalizeWhitelist lists the columns whose canonical value is derived from
// the display value after projection. The remaining columns either set their
// canonical form during projection (dates, amounts, ordinals, flags) or are
// canonicalized per remittance line before joining.
var normalizeWhitelist = []Field{
	FieldCurrency,
	FieldCounterpartyName,
	FieldCounterpartyIBAN,
	FieldCounterpartyBIC,
	FieldEndToEndID,
	FieldMandateID,
	FieldTxID,
	FieldBankRef,
	FieldAccountIBAN,
	FieldAccountBIC,
	FieldBkTxCd,
	FieldBookingCode,
	FieldStatus,
	FieldServicerBankName,
	FieldPrimanota,
	FieldDTACode,
	FieldGVCCode,
	FieldSWIFTTransactionCode,
	FieldChargesCurrency,
}

// normalizeRow fills the canonical form of whitelisted columns that are still
// empty. Canonical values assigned during projection are left alone.
func normalizeRow(row *Row) {
	for _, f := range normalizeWhitelist {
		if row[f].Canonical == "" {
			row[f].Canonical = NormalizeField(f, row[f].Display)
		}
	}
}
