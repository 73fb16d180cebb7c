// Package dateutils provides the small set of date operations the extractor
// needs: CAMT dates stay ISO display strings, with an integer YYYYMMDD form
// derived purely for sorting.
package dateutils

import "strconv"

// DateLayoutISO is the on-the-wire date form (and the prefix of DtTm values).
const DateLayoutISO = "2006-01-02"

// ISODatePrefix shortens a timestamp like "2025-10-08T14:11:02+01:00" to its
// date prefix. Strings shorter than the prefix are returned unchanged.
func ISODatePrefix(s string) string {
	if len(s) > len(DateLayoutISO) {
		return s[:len(DateLayoutISO)]
	}
	return s
}

// ToInt converts a "YYYY-MM-DD" string to the integer YYYYMMDD, e.g.
// "2025-10-08" to 20251008. Malformed or short strings yield 0; the integer
// form is only ever a sort key, never input to financial computation, so a
// bad date must not abort processing.
func ToInt(s string) int {
	if len(s) < 10 {
		return 0
	}
	y, err := strconv.Atoi(s[0:4])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(s[5:7])
	if err != nil {
		return 0
	}
	d, err := strconv.Atoi(s[8:10])
	if err != nil {
		return 0
	}
	return y*10000 + m*100 + d
}
