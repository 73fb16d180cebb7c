package export

// Options controls projection and CSV serialization.
type Options struct {
	// Delimiter separates CSV columns.
	Delimiter byte

	// IncludeHeader emits the column name row first.
	IncludeHeader bool

	// WriteBOM prepends the UTF-8 byte order mark for Excel.
	WriteBOM bool

	// SignedAmount writes the amount column with sign (credit positive,
	// debit negative). When false the amount is always positive and the
	// direction lives only in the credit/debit column.
	SignedAmount bool

	// CreditAsBool renders the direction column as "1"/"0" under the
	// header "IsCredit" instead of "CRDT"/"DBIT" under "CreditDebit".
	CreditAsBool bool

	// RemittanceSeparator joins multiple unstructured remittance lines in
	// the display value, e.g. " | ". The canonical value always uses the
	// ASCII group separator regardless of this setting.
	RemittanceSeparator string

	// UseEffectiveCredit makes the direction column reflect the direction
	// after reversal handling instead of the raw indicator.
	UseEffectiveCredit bool

	// PreferUltimateCounterparty picks the ultimate debtor/creditor over
	// the direct one when the ultimate party is actually provided.
	PreferUltimateCounterparty bool

	// SortByBookingDate sorts on the booking date; false sorts on the
	// value date.
	SortByBookingDate bool
}

// DefaultOptions returns the standard export configuration.
func DefaultOptions() Options {
	return Options{
		Delimiter:                  ';',
		IncludeHeader:              true,
		SignedAmount:               true,
		CreditAsBool:               true,
		PreferUltimateCounterparty: true,
		SortByBookingDate:          true,
	}
}
