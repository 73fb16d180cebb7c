package export

import (
	"strconv"
	"strings"
)

// hashItemSep separates accumulated items: ASCII unit separator, U+001F.
const hashItemSep = "\x1F"

// hashCoreFields is the default fingerprint field set: stable identity of a
// booking across exports. Volatile columns (running and statement balances,
// ordinals, status) are deliberately absent.
var hashCoreFields = []Field{
	FieldBookingDate,
	FieldAmount,
	FieldCreditDebit,
	FieldCurrency,
	FieldCounterpartyIBAN,
	FieldCounterpartyBIC,
	FieldRemittanceLine,
	FieldEndToEndID,
	FieldTxID,
	FieldBankRef,
	FieldAccountIBAN,
	FieldBkTxCd,
	FieldReversal,
	FieldPrimanota,
	FieldDTACode,
}

// AccumulateHash builds the deterministic fingerprint input for a row:
// "index=canonical" items in field index order, each terminated by the unit
// separator. Canonical values are taken as stored; a nil or empty field set
// selects the core fields. Hash the returned string with any digest to get a
// row identity.
func AccumulateHash(row *Row, fields []Field) string {
	if len(fields) == 0 {
		fields = hashCoreFields
	}
	selected := make(map[Field]bool, len(fields))
	for _, f := range fields {
		selected[f] = true
	}

	var b strings.Builder
	b.Grow(512)
	for f := Field(0); f < FieldCount; f++ {
		if !selected[f] {
			continue
		}
		b.WriteString(strconv.Itoa(int(f)))
		b.WriteByte('=')
		b.WriteString(row[f].Canonical)
		b.WriteString(hashItemSep)
	}
	return b.String()
}
