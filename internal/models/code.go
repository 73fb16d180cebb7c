package models

import "strings"

// DecodeProprietaryCode splits a composite proprietary bank code into its
// '+'-delimited parts: [issuer-prefix]+[reference-code]+[primanota].
//
// Only the first '+' separates the prefix from the remainder. If the
// remainder itself contains another '+', it is split once more into the
// reference code and the primanota. Without any '+' the whole string is the
// prefix and the other two parts stay empty. Several bank dialects pack all
// three identifiers into this one field positionally.
func DecodeProprietaryCode(code string) (prefix, refCode, primanota string) {
	p := strings.IndexByte(code, '+')
	if p < 0 {
		return code, "", ""
	}
	prefix = code[:p]
	refCode = code[p+1:]
	if q := strings.IndexByte(refCode, '+'); q >= 0 {
		primanota = refCode[q+1:]
		refCode = refCode[:q]
	}
	return prefix, refCode, primanota
}
