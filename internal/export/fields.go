// Package export projects a parsed CAMT document onto flat rows, normalizes
// and sorts them, computes per-account running balances and row fingerprints,
// and serializes the result as CSV.
//
// Every cell carries two values. Display is what lands in the CSV exactly as
// the bank delivered it; Canonical is a normalized shadow used for sorting,
// deduplication hashes and cross-bank comparison. The two never mix: a
// display value is never altered by normalization.
package export

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Field indexes one column of an exported row. The numeric order is the
// column order of the CSV and is part of the output contract.
type Field int

const (
	FieldBookingDate Field = iota
	FieldValueDate
	FieldAmount
	FieldCreditDebit
	FieldCurrency
	FieldCounterpartyName
	FieldCounterpartyIBAN
	FieldCounterpartyBIC
	FieldRemittanceLine
	FieldRemittanceStructured
	FieldEndToEndID
	FieldMandateID
	FieldTxID
	FieldBankRef
	FieldAccountIBAN
	FieldAccountBIC
	FieldBkTxCd
	FieldBookingCode
	FieldStatus
	FieldReversal
	FieldRunningBalance
	FieldServicerBankName
	FieldOpeningBalance
	FieldClosingBalance
	FieldPrimanota
	FieldDTACode
	FieldGVCCode
	FieldSWIFTTransactionCode
	FieldChargesAmount
	FieldChargesCurrency
	FieldChargesIncluded
	FieldEntryOrdinal
	FieldTxOrdinal

	// FieldCount is the number of columns per row.
	FieldCount
)

var fieldNames = [FieldCount]string{
	"BookingDate",
	"ValueDate",
	"Amount",
	"CreditDebit",
	"Currency",
	"CounterpartyName",
	"CounterpartyIBAN",
	"CounterpartyBIC",
	"RemittanceLine",
	"RemittanceStructured",
	"EndToEndId",
	"MandateId",
	"TxId",
	"BankRef",
	"AccountIBAN",
	"AccountBIC",
	"BkTxCd",
	"BookingCode",
	"Status",
	"Reversal",
	"RunningBalance",
	"ServicerBankName",
	"OpeningBalance",
	"ClosingBalance",
	"Primanota",
	"DTACode",
	"GVCCode",
	"SWIFTTransactionCode",
	"ChargesAmount",
	"ChargesCurrency",
	"ChargesIncluded",
	"EntryOrdinal",
	"TxOrdinal",
}

// Name returns the column name of f, or "" for an out-of-range field.
func (f Field) Name() string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return fieldNames[f]
}

// FieldByName resolves a column name back to its field, for configurable
// hash field sets. The bool reports whether the name is known.
func FieldByName(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Cell is one column value of a row: the display form that is written to the
// CSV and the canonical form used for sorting and hashing.
type Cell struct {
	Display   string
	Canonical string
}

// Row is one exported transaction line.
type Row [FieldCount]Cell
