// Package models provides the data structures used throughout the application.
package models

// DocKind identifies which of the three bank-to-customer message variants a
// document was parsed from.
type DocKind int

const (
	// DocKindUnknown is the zero value; documents never carry it after a
	// successful parse.
	DocKindUnknown DocKind = iota
	// DocKindAccountReport is a camt.052 account report (BkToCstmrAcctRpt).
	DocKindAccountReport
	// DocKindStatement is a camt.053 statement (BkToCstmrStmt).
	DocKindStatement
	// DocKindNotification is a camt.054 debit/credit notification
	// (BkToCstmrDbtCdtNtfctn).
	DocKindNotification
)

// String returns the human-readable name of the document kind.
func (k DocKind) String() string {
	switch k {
	case DocKindAccountReport:
		return "AccountReport"
	case DocKindStatement:
		return "Statement"
	case DocKindNotification:
		return "Notification"
	default:
		return "Unknown"
	}
}

// CurrencyAmount is a monetary value in integer minor units (cents for EUR).
// Minor units are always interpreted with the currency's canonical exponent;
// floating point is never used for amounts.
type CurrencyAmount struct {
	Currency string `yaml:"currency"`
	Minor    int64  `yaml:"minor"`
}

// AccountID holds the account identity, either an IBAN or a proprietary
// identifier from Id/Othr/Id.
type AccountID struct {
	IBAN  string `yaml:"iban,omitempty"`
	Other string `yaml:"other,omitempty"`
}

// Value returns the IBAN if present, otherwise the proprietary identifier.
func (id AccountID) Value() string {
	if id.IBAN != "" {
		return id.IBAN
	}
	return id.Other
}

// Agent is a financial institution (FinInstnId).
type Agent struct {
	BIC  string `yaml:"bic,omitempty"`  // BIC or BICFI
	Name string `yaml:"name,omitempty"` // FinInstnId/Nm
}

// Account describes the statement's own account (Acct).
type Account struct {
	ID       AccountID `yaml:"id"`
	Name     string    `yaml:"name,omitempty"`     // Acct/Nm
	Currency string    `yaml:"currency,omitempty"` // Acct/Ccy
	Servicer Agent     `yaml:"servicer,omitempty"` // Svcr/FinInstnId
}

// Party is a debtor, creditor or one of their ultimate variants.
type Party struct {
	Name string `yaml:"name,omitempty"` // Nm
	IBAN string `yaml:"iban,omitempty"`
	BIC  string `yaml:"bic,omitempty"` // BIC or BICFI
}

// Purpose carries Purp/Cd and Purp/Prtry.
type Purpose struct {
	Code        string `yaml:"code,omitempty"`
	Proprietary string `yaml:"proprietary,omitempty"`
}

// References collects the transaction reference identifiers.
type References struct {
	EndToEndID  string `yaml:"endToEndId,omitempty"` // EndToEndId
	TxID        string `yaml:"txId,omitempty"`       // TxId
	AcctSvcrRef string `yaml:"acctSvcrRef,omitempty"`
	MandateID   string `yaml:"mandateId,omitempty"` // MndtId (SEPA direct debit)
	MsgID       string `yaml:"msgId,omitempty"`     // Refs/MsgId
}

// BankTransactionCode is the ISO domain/family/subfamily classification plus
// the proprietary code string.
type BankTransactionCode struct {
	Domain      string `yaml:"domain,omitempty"`    // Domn/Cd
	Family      string `yaml:"family,omitempty"`    // Domn/Fmly/Cd
	SubFamily   string `yaml:"subFamily,omitempty"` // Domn/Fmly/SubFmlyCd
	Proprietary string `yaml:"proprietary,omitempty"`
}

// ProprietaryBankTransactionCode carries Prtry/Cd and Prtry/Issr.
type ProprietaryBankTransactionCode struct {
	Code   string `yaml:"code,omitempty"`
	Issuer string `yaml:"issuer,omitempty"`
}

// StructuredRemittance is one Strd remittance block.
type StructuredRemittance struct {
	CreditorRefType string `yaml:"creditorRefType,omitempty"` // Strd/CdtrRefInf/RefTp/CdOrPrtry
	CreditorRef     string `yaml:"creditorRef,omitempty"`     // Strd/CdtrRefInf/Ref
	AdditionalInfo  string `yaml:"additionalInfo,omitempty"`  // Strd/AddtlRmtInf
}

// RemittanceInformation holds the free-text and structured remittance parts.
type RemittanceInformation struct {
	Unstructured []string               `yaml:"unstructured,omitempty"` // Ustrd[]
	Structured   []StructuredRemittance `yaml:"structured,omitempty"`   // Strd[]
}

// RelatedParties names both sides of a transaction and their accounts.
type RelatedParties struct {
	Debtor           Party     `yaml:"debtor,omitempty"`
	DebtorAccount    AccountID `yaml:"debtorAccount,omitempty"`
	UltimateDebtor   Party     `yaml:"ultimateDebtor,omitempty"`
	Creditor         Party     `yaml:"creditor,omitempty"`
	CreditorAccount  AccountID `yaml:"creditorAccount,omitempty"`
	UltimateCreditor Party     `yaml:"ultimateCreditor,omitempty"`
}

// RelatedAgents names the banks on both sides of a transaction.
type RelatedAgents struct {
	DebtorAgent   Agent `yaml:"debtorAgent,omitempty"`
	CreditorAgent Agent `yaml:"creditorAgent,omitempty"`
}

// ChargesRecord is one Chrgs/Rcrd.
type ChargesRecord struct {
	Amount         CurrencyAmount `yaml:"amount"`
	Agent          Agent          `yaml:"agent,omitempty"`
	HasCreditDebit bool           `yaml:"hasCreditDebit"` // CdtDbtInd present
	IsCredit       bool           `yaml:"isCredit"`       // CRDT=true, DBIT=false
	Included       bool           `yaml:"included"`       // ChrgInclInd
}

// Charges holds the optional aggregate plus the individual records.
type Charges struct {
	Total   CurrencyAmount  `yaml:"total,omitempty"` // TtlChrgsAndTaxAmt
	Records []ChargesRecord `yaml:"records,omitempty"`
}

// FxRateInfo describes a currency exchange attached to a transaction.
// Rate is "target units per source unit" after reconciliation; Inverted is
// set when the supplied rate matched only as the reciprocal of the rate
// derived from the observed amounts.
type FxRateInfo struct {
	SourceCurrency string  `yaml:"sourceCurrency,omitempty"` // SrcCcy
	TargetCurrency string  `yaml:"targetCurrency,omitempty"` // TrgtCcy
	UnitCurrency   string  `yaml:"unitCurrency,omitempty"`   // UnitCcy
	Rate           float64 `yaml:"rate,omitempty"`
	Has            bool    `yaml:"has"`
	Inverted       bool    `yaml:"inverted,omitempty"`
}

// EntryTransaction is one TxDtls sub-transaction of a (possibly batched)
// entry.
type EntryTransaction struct {
	Refs           References                     `yaml:"refs,omitempty"`
	Parties        RelatedParties                 `yaml:"parties,omitempty"`
	Agents         RelatedAgents                  `yaml:"agents,omitempty"`
	Remittance     RemittanceInformation          `yaml:"remittance,omitempty"`
	Purpose        Purpose                        `yaml:"purpose,omitempty"`
	BankTxCode     BankTransactionCode            `yaml:"bankTxCode,omitempty"`
	ProprietaryTx  ProprietaryBankTransactionCode `yaml:"proprietaryTx,omitempty"`
	ChargesInfo    Charges                        `yaml:"charges,omitempty"`
	AdditionalInfo string                         `yaml:"additionalInfo,omitempty"` // AddtlTxInf

	// TxAmount is the explicit transaction-level amount, nil when only the
	// entry amount applies.
	TxAmount *CurrencyAmount `yaml:"txAmount,omitempty"`

	// DTACode is the raw proprietary code, e.g. "NMSC+201+9310". GVC is the
	// remainder after the first '+'; DecodeProprietaryCode splits further.
	DTACode string `yaml:"dtaCode,omitempty"`
	GVC     string `yaml:"gvc,omitempty"`

	HasCreditDebit bool `yaml:"hasCreditDebit"` // CdtDbtInd present at Tx level
	IsCredit       bool `yaml:"isCredit"`

	Fx              FxRateInfo     `yaml:"fx,omitempty"`
	FxInstdAmt      CurrencyAmount `yaml:"fxInstdAmt,omitempty"`      // InstdAmt/Amt (instructed currency)
	FxTxAmt         CurrencyAmount `yaml:"fxTxAmt,omitempty"`         // TxAmt/Amt (settlement)
	FxCounterValAmt CurrencyAmount `yaml:"fxCounterValAmt,omitempty"` // CntrValAmt/Amt
	HasFxInstdAmt   bool           `yaml:"hasFxInstdAmt"`
	HasFxTxAmt      bool           `yaml:"hasFxTxAmt"`
	HasFxCounterVal bool           `yaml:"hasFxCounterVal"`

	// ImportOrdinal preserves the original TxDtls order inside the entry.
	// Assigned once at extraction time, zero-based; -1 means unassigned.
	ImportOrdinal int `yaml:"importOrdinal"`
}

// Entry is one booked line (Ntry).
type Entry struct {
	Amount      CurrencyAmount `yaml:"amount"`
	IsCredit    bool           `yaml:"isCredit"`    // CdtDbtInd == CRDT
	BookingDate string         `yaml:"bookingDate"` // BookgDt, ISO display form
	ValueDate   string         `yaml:"valueDate"`   // ValDt, ISO display form

	// Integer YYYYMMDD forms used only as sort keys; 0 when unparseable.
	BookingDateInt int `yaml:"bookingDateInt"`
	ValueDateInt   int `yaml:"valueDateInt"`

	EntryRef     string             `yaml:"entryRef,omitempty"` // NtryRef
	Transactions []EntryTransaction `yaml:"transactions,omitempty"`
	Reversal     bool               `yaml:"reversal"`         // RvslInd
	Status       string             `yaml:"status,omitempty"` // Sts
	AcctSvcrRef  string             `yaml:"acctSvcrRef,omitempty"`

	// ImportOrdinal is the running zero-based index within the statement,
	// in original document order; -1 means unassigned.
	ImportOrdinal int `yaml:"importOrdinal"`
}

// Balance is one Bal element.
type Balance struct {
	Type           string         `yaml:"type,omitempty"` // Tp/Cd or Tp/Prtry (OPBD, CLBD, ITBD, ...)
	Amount         CurrencyAmount `yaml:"amount"`
	Date           string         `yaml:"date,omitempty"`
	HasCreditDebit bool           `yaml:"hasCreditDebit"`
	IsCredit       bool           `yaml:"isCredit"` // only meaningful when HasCreditDebit
}

// GroupHeader is the optional GrpHdr above the statements.
type GroupHeader struct {
	MsgID            string `yaml:"msgId,omitempty"`
	CreationDateTime string `yaml:"creationDateTime,omitempty"`
	MessageRecipient string `yaml:"messageRecipient,omitempty"` // MsgRcpt/Nm
}

// Statement is one Stmt/Rpt/Ntfctn container with its account, balances and
// entries. Entries keep their document order; reordering happens only in the
// export layer using the import ordinals.
type Statement struct {
	ID               string      `yaml:"id,omitempty"`
	CreationDateTime string      `yaml:"creationDateTime,omitempty"`
	Account          Account     `yaml:"account"`
	GroupHeader      GroupHeader `yaml:"groupHeader,omitempty"`
	Balances         []Balance   `yaml:"balances,omitempty"`
	Entries          []Entry     `yaml:"entries,omitempty"`
}

// Document is the root of the parsed model. It exclusively owns the whole
// statement tree and is immutable after the parse call that built it.
type Document struct {
	Kind       DocKind     `yaml:"kind"`
	Statements []Statement `yaml:"statements,omitempty"`
}
