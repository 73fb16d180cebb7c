package export

import (
	"strconv"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/refcode"
)

// canonicalRemitSep joins unstructured remittance lines in the canonical
// value: ASCII group separator, U+001D.
const canonicalRemitSep = "\x1D"

// balancePlaceholder marks an absent opening/closing balance. A single space
// keeps the column visually empty while staying distinguishable from a true
// empty string downstream.
const balancePlaceholder = " "

// isProvided reports whether a party name carries information. Banks fill
// absent ultimate parties with the literal NOTPROVIDED.
func isProvided(s string) bool {
	return s != "" && s != "NOTPROVIDED"
}

func findFirstBalance(st *models.Statement, types ...string) *models.Balance {
	for i := range st.Balances {
		for _, t := range types {
			if st.Balances[i].Type == t {
				return &st.Balances[i]
			}
		}
	}
	return nil
}

func findLastBalance(st *models.Statement, types ...string) *models.Balance {
	var out *models.Balance
	for i := range st.Balances {
		for _, t := range types {
			if st.Balances[i].Type == t {
				out = &st.Balances[i]
			}
		}
	}
	return out
}

// interimForEntry finds an interim balance (ITBD/ITAV) dated on the entry's
// booking or value date.
func interimForEntry(st *models.Statement, e *models.Entry) *models.Balance {
	for i := range st.Balances {
		b := &st.Balances[i]
		if b.Type != "ITBD" && b.Type != "ITAV" {
			continue
		}
		if (e.BookingDate != "" && b.Date == e.BookingDate) ||
			(e.ValueDate != "" && b.Date == e.ValueDate) {
			return b
		}
	}
	return nil
}

// balanceNumber renders a balance as a plain signed number without currency.
// The credit/debit indicator, when present, forces the sign; the account
// currency only supplies the decimal exponent for currency-less balances.
func balanceNumber(st *models.Statement, bal *models.Balance) string {
	if bal == nil {
		return ""
	}
	a := bal.Amount
	if bal.HasCreditDebit {
		abs := a.Minor
		if abs < 0 {
			abs = -abs
		}
		if bal.IsCredit {
			a.Minor = abs
		} else {
			a.Minor = -abs
		}
	}
	if a.Currency == "" {
		a.Currency = st.Account.Currency
	}
	return currencyutils.Format(a)
}

// chargesSummary accumulates the signed charge total across a transaction's
// charge records. Direction priority is record, then transaction, then entry,
// with the entry's reversal flag flipping the result. Records without a
// currency are skipped; the first currency seen labels the total.
func chargesSummary(e *models.Entry, tx *models.EntryTransaction) (models.CurrencyAmount, bool) {
	var out models.CurrencyAmount
	anyIncluded := false
	if tx == nil {
		return out, false
	}
	for _, rec := range tx.ChargesInfo.Records {
		if rec.Amount.Currency == "" {
			continue
		}
		if out.Currency == "" {
			out.Currency = rec.Amount.Currency
		}

		absM := rec.Amount.Minor
		if absM < 0 {
			absM = -absM
		}

		creditBase := e.IsCredit
		if tx.HasCreditDebit {
			creditBase = tx.IsCredit
		}
		if rec.HasCreditDebit {
			creditBase = rec.IsCredit
		}
		effectiveCredit := creditBase
		if e.Reversal {
			effectiveCredit = !effectiveCredit
		}

		if effectiveCredit {
			out.Minor += absM
		} else {
			out.Minor -= absM
		}
		if rec.Included {
			anyIncluded = true
		}
	}
	return out, anyIncluded
}

// counterparty picks the party on the opposite side of the money flow. A
// credit means money came in, so the counterparty is the debtor side; a debit
// points at the creditor side. Direction here is the effective one, after
// reversal handling.
func counterparty(tx *models.EntryTransaction, effectiveCredit bool, preferUltimate bool) (name, iban, bic string) {
	if tx == nil {
		return "", "", ""
	}
	var direct, ultimate models.Party
	var acct models.AccountID
	var agent models.Agent
	if effectiveCredit {
		direct = tx.Parties.Debtor
		ultimate = tx.Parties.UltimateDebtor
		acct = tx.Parties.DebtorAccount
		agent = tx.Agents.DebtorAgent
	} else {
		direct = tx.Parties.Creditor
		ultimate = tx.Parties.UltimateCreditor
		acct = tx.Parties.CreditorAccount
		agent = tx.Agents.CreditorAgent
	}

	if preferUltimate {
		if isProvided(ultimate.Name) {
			name = ultimate.Name
		} else {
			name = direct.Name
		}
	} else {
		if isProvided(direct.Name) {
			name = direct.Name
		} else {
			name = ultimate.Name
		}
	}
	if acct.IBAN != "" {
		iban = acct.IBAN
	}
	return name, iban, agent.BIC
}

// statementProjector carries the per-statement running state of Project.
type statementProjector struct {
	st   *models.Statement
	opts Options

	runningMinor int64
	runCcy       string

	openGlobal  string
	closeGlobal string

	totalRows int
	rowIndex  int
}

// Project flattens a document into export rows: one row per transaction, one
// row per transaction-less entry. Rows come out in document order; use Sort
// for the delivery order.
func Project(doc *models.Document, opts Options) []Row {
	var rows []Row
	for i := range doc.Statements {
		st := &doc.Statements[i]

		p := statementProjector{
			st:     st,
			opts:   opts,
			runCcy: st.Account.Currency,
		}
		// Global balances appear once per statement: opening on the first
		// row, closing on the last.
		p.openGlobal = balanceNumber(st, findFirstBalance(st, "OPBD", "PRCD"))
		p.closeGlobal = balanceNumber(st, findLastBalance(st, "CLBD"))

		for j := range st.Entries {
			if n := len(st.Entries[j].Transactions); n > 0 {
				p.totalRows += n
			} else {
				p.totalRows++
			}
		}

		for j := range st.Entries {
			e := &st.Entries[j]
			if len(e.Transactions) > 0 {
				for k := range e.Transactions {
					rows = append(rows, p.writeRow(e, &e.Transactions[k]))
				}
			} else {
				rows = append(rows, p.writeRow(e, nil))
			}
		}
	}
	log.WithField("rows", len(rows)).Debug("Projected document to export rows")
	return rows
}

func (p *statementProjector) writeRow(e *models.Entry, tx *models.EntryTransaction) Row {
	st := p.st
	opts := p.opts

	// Direction: transaction indicator wins over the entry, reversal flips
	// exactly once.
	credit := e.IsCredit
	if tx != nil && tx.HasCreditDebit {
		credit = tx.IsCredit
	}
	effectiveCredit := credit
	if e.Reversal {
		effectiveCredit = !effectiveCredit
	}

	cpName, cpIBAN, cpBIC := counterparty(tx, effectiveCredit, opts.PreferUltimateCounterparty)

	// Remittance: display joined with the configured separator, canonical
	// joined with the group separator from per-line normalized values.
	var remitUDisp, remitUCanon string
	var remitSDisp, remitSCanon string
	if tx != nil {
		for i, part := range tx.Remittance.Unstructured {
			if i > 0 {
				remitUDisp += opts.RemittanceSeparator
				remitUCanon += canonicalRemitSep
			}
			remitUDisp += part
			remitUCanon += NormalizeField(FieldRemittanceLine, part)
		}
		if len(tx.Remittance.Structured) > 0 {
			sr := tx.Remittance.Structured[0]
			base := sr.CreditorRef
			if base == "" {
				base = sr.AdditionalInfo
			}
			remitSDisp = base
			remitSCanon = NormalizeField(FieldRemittanceStructured, base)
		}
	}

	var bk, pBk string
	if tx != nil {
		if tx.BankTxCode.Domain != "" || tx.BankTxCode.Family != "" || tx.BankTxCode.SubFamily != "" {
			bk = tx.BankTxCode.Domain + ":" + tx.BankTxCode.Family + ":" + tx.BankTxCode.SubFamily
		}
		pBk = tx.ProprietaryTx.Code
	}
	var swiftTxCode string
	if pBk != "" {
		if len(pBk) > 4 {
			swiftTxCode = pBk[:4]
		} else {
			swiftTxCode = pBk
		}
	}

	// Amount: transaction amount wins over the entry amount.
	amt := e.Amount
	if tx != nil && tx.TxAmount != nil {
		amt = *tx.TxAmount
	}
	if p.runCcy == "" {
		if amt.Currency != "" {
			p.runCcy = amt.Currency
		} else {
			p.runCcy = e.Amount.Currency
		}
	}

	absMinor := amt.Minor
	if absMinor < 0 {
		absMinor = -absMinor
	}
	signedMinor := absMinor
	if !effectiveCredit {
		signedMinor = -absMinor
	}
	amtAbs := amt
	amtAbs.Minor = absMinor
	if opts.SignedAmount {
		amt.Minor = signedMinor
	} else {
		amt.Minor = absMinor
	}
	p.runningMinor += signedMinor

	// Proprietary code split: "NMSC+201+9310" carries the reference code and
	// the primanota behind the pluses.
	var dtaCode, gvc, primanota string
	if tx != nil {
		dtaCode = tx.ProprietaryTx.Code
		_, gvc, primanota = models.DecodeProprietaryCode(dtaCode)
	}
	// Reference-code fallback from the ISO classification. Keyed on the raw
	// direction: a reversal is a booking in the original direction.
	if gvc == "" && tx != nil {
		flag := byte('D')
		if credit {
			flag = 'C'
		}
		gvc = refcode.Lookup(tx.BankTxCode.Domain, tx.BankTxCode.Family, tx.BankTxCode.SubFamily, flag)
	}

	openingStr := balancePlaceholder
	closingStr := balancePlaceholder
	if p.openGlobal != "" {
		if p.rowIndex == 0 {
			openingStr = p.openGlobal
		}
	} else if it := interimForEntry(st, e); it != nil {
		openingStr = balanceNumber(st, it)
	}
	if p.closeGlobal != "" {
		if p.rowIndex+1 == p.totalRows {
			closingStr = p.closeGlobal
		}
	} else if it := interimForEntry(st, e); it != nil {
		closingStr = balanceNumber(st, it)
	}

	var chargesAmt models.CurrencyAmount
	chargesIncluded := false
	if tx != nil {
		chargesAmt, chargesIncluded = chargesSummary(e, tx)
	}

	isCredit := credit
	if opts.UseEffectiveCredit {
		isCredit = effectiveCredit
	}

	currency := st.Account.Currency
	if currency == "" {
		if amt.Currency != "" {
			currency = amt.Currency
		} else {
			currency = p.runCcy
		}
	}

	bankRef := e.AcctSvcrRef
	if tx != nil && tx.Refs.AcctSvcrRef != "" {
		bankRef = tx.Refs.AcctSvcrRef
	}

	accountIBAN := st.Account.ID.Value()

	reversal := "0"
	if e.Reversal {
		reversal = "1"
	}
	chargesIncludedStr := "0"
	if chargesIncluded {
		chargesIncludedStr = "1"
	}
	rawCredit := "0"
	if credit {
		rawCredit = "1"
	}
	creditDisplay := creditDebitDisplay(isCredit, opts.CreditAsBool)

	entryOrdinal := ""
	if e.ImportOrdinal >= 0 {
		entryOrdinal = strconv.Itoa(e.ImportOrdinal)
	}
	txOrdinal := ""
	if tx != nil {
		txOrdinal = strconv.Itoa(tx.ImportOrdinal)
	}

	running := currencyutils.Format(models.CurrencyAmount{Currency: p.runCcy, Minor: p.runningMinor})
	chargesStr := currencyutils.Format(chargesAmt)

	var row Row
	row[FieldBookingDate] = Cell{e.BookingDate, strconv.Itoa(e.BookingDateInt)}
	row[FieldValueDate] = Cell{e.ValueDate, strconv.Itoa(e.ValueDateInt)}
	row[FieldAmount] = Cell{currencyutils.Format(amt), currencyutils.Format(amtAbs)}
	row[FieldCreditDebit] = Cell{creditDisplay, rawCredit}
	row[FieldCurrency] = Cell{Display: currency}
	row[FieldCounterpartyName] = Cell{Display: cpName}
	row[FieldCounterpartyIBAN] = Cell{Display: cpIBAN}
	row[FieldCounterpartyBIC] = Cell{Display: cpBIC}
	row[FieldRemittanceLine] = Cell{remitUDisp, remitUCanon}
	row[FieldRemittanceStructured] = Cell{remitSDisp, remitSCanon}
	if tx != nil {
		row[FieldEndToEndID] = Cell{Display: tx.Refs.EndToEndID}
		row[FieldMandateID] = Cell{Display: tx.Refs.MandateID}
		row[FieldTxID] = Cell{Display: tx.Refs.TxID}
	}
	row[FieldBankRef] = Cell{Display: bankRef}
	row[FieldAccountIBAN] = Cell{Display: accountIBAN}
	row[FieldAccountBIC] = Cell{Display: st.Account.Servicer.BIC}
	row[FieldBkTxCd] = Cell{Display: bk}
	row[FieldBookingCode] = Cell{Display: pBk}
	row[FieldStatus] = Cell{Display: e.Status}
	row[FieldReversal] = Cell{reversal, reversal}
	row[FieldRunningBalance] = Cell{running, running}
	row[FieldServicerBankName] = Cell{Display: st.Account.Servicer.Name}
	row[FieldOpeningBalance] = Cell{openingStr, openingStr}
	row[FieldClosingBalance] = Cell{closingStr, closingStr}
	row[FieldPrimanota] = Cell{Display: primanota}
	row[FieldDTACode] = Cell{Display: dtaCode}
	row[FieldGVCCode] = Cell{Display: gvc}
	row[FieldSWIFTTransactionCode] = Cell{Display: swiftTxCode}
	row[FieldChargesAmount] = Cell{chargesStr, chargesStr}
	row[FieldChargesCurrency] = Cell{Display: chargesAmt.Currency}
	row[FieldChargesIncluded] = Cell{chargesIncludedStr, chargesIncludedStr}
	row[FieldEntryOrdinal] = Cell{entryOrdinal, entryOrdinal}
	row[FieldTxOrdinal] = Cell{txOrdinal, txOrdinal}

	normalizeRow(&row)
	p.rowIndex++
	return row
}

func creditDebitDisplay(isCredit, asBool bool) string {
	if asBool {
		if isCredit {
			return "1"
		}
		return "0"
	}
	if isCredit {
		return "CRDT"
	}
	return "DBIT"
}

// HeaderRow returns the column names, honoring the credit/debit naming
// option.
func HeaderRow(opts Options) []string {
	names := make([]string, FieldCount)
	for f := Field(0); f < FieldCount; f++ {
		names[f] = f.Name()
	}
	if opts.CreditAsBool {
		names[FieldCreditDebit] = "IsCredit"
	}
	return names
}
