package export

import (
	"sort"
	"strconv"
	"strings"
)

func canonicalInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Sort orders rows by canonical date, account IBAN and the import ordinals,
// then recomputes the running balance per account over the new order. The
// sort is stable, so rows with fully equal keys keep their relative order and
// sorting an already sorted slice is a no-op.
func Sort(rows []Row, useBookingDate bool) {
	dateField := FieldValueDate
	if useBookingDate {
		dateField = FieldBookingDate
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]

		da := canonicalInt(a[dateField].Canonical)
		db := canonicalInt(b[dateField].Canonical)
		if da != db {
			return da < db
		}

		ia := a[FieldAccountIBAN].Canonical
		ib := b[FieldAccountIBAN].Canonical
		if ia != ib {
			return ia < ib
		}

		ea := canonicalInt(a[FieldEntryOrdinal].Canonical)
		eb := canonicalInt(b[FieldEntryOrdinal].Canonical)
		if ea != eb {
			return ea < eb
		}

		return canonicalInt(a[FieldTxOrdinal].Canonical) < canonicalInt(b[FieldTxOrdinal].Canonical)
	})

	recomputeRunningBalances(rows)
}

// accumulator is a decimal value at a grow-only scale. The scale adapts to
// the widest fraction seen so far for the account, so mixed-exponent amounts
// accumulate without losing digits.
type accumulator struct {
	value int64
	scale int
}

// recomputeRunningBalances rebuilds the running balance column per account
// IBAN in slice order. The amount column's canonical form is the absolute
// value; the sign comes from the canonical credit flag, flipped by reversal.
func recomputeRunningBalances(rows []Row) {
	bal := make(map[string]*accumulator)

	for i := range rows {
		row := &rows[i]
		iban := row[FieldAccountIBAN].Canonical
		amount := row[FieldAmount].Canonical
		credit := row[FieldCreditDebit].Canonical == "1"
		reversal := row[FieldReversal].Canonical == "1"

		sign := int64(-1)
		if credit {
			sign = 1
		}
		if reversal {
			sign = -sign
		}

		b := bal[iban]
		if b == nil {
			b = &accumulator{}
			bal[iban] = b
		}
		if s := fracDigits(amount); s > b.scale {
			for k := 0; k < s-b.scale; k++ {
				b.value *= 10
			}
			b.scale = s
		}

		b.value += sign * parseScaled(amount, b.scale)

		formatted := formatScaled(b.value, b.scale)
		row[FieldRunningBalance] = Cell{formatted, formatted}
	}
}

func fracDigits(s string) int {
	p := strings.IndexByte(s, '.')
	if p < 0 {
		return 0
	}
	return len(s) - p - 1
}

// parseScaled reads a decimal string as an integer at the given scale. The
// fraction is padded or truncated to the scale; garbage yields zero.
func parseScaled(s string, scale int) int64 {
	ip, fp := s, ""
	if p := strings.IndexByte(s, '.'); p >= 0 {
		ip, fp = s[:p], s[p+1:]
	}
	if len(fp) < scale {
		fp += strings.Repeat("0", scale-len(fp))
	} else if len(fp) > scale {
		fp = fp[:scale]
	}
	if ip == "" {
		ip = "0"
	}
	all := ip
	if scale > 0 {
		all += fp
	}
	v, err := strconv.ParseInt(all, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatScaled renders a scaled integer as a decimal string with trailing
// zeros and a trailing dot trimmed.
func formatScaled(v int64, scale int) string {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	s := strconv.FormatUint(u, 10)
	if scale > 0 {
		if len(s) <= scale {
			s = strings.Repeat("0", scale+1-len(s)) + s
		}
		dot := len(s) - scale
		s = s[:dot] + "." + s[dot:]
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" {
		s = "0"
	}
	if neg {
		s = "-" + s
	}
	return s
}
