package camtparser

import (
	"strings"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/dateutils"
	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/xmlnav"

	"github.com/beevik/etree"
)

func parseGroupHeader(gh *etree.Element) models.GroupHeader {
	g := models.GroupHeader{
		MsgID:            xmlnav.ChildText(gh, "MsgId"),
		CreationDateTime: xmlnav.ChildText(gh, "CreDtTm"),
	}
	if r := xmlnav.Child(gh, "MsgRcpt"); r != nil {
		g.MessageRecipient = xmlnav.ChildText(r, "Nm")
	}
	return g
}

func parseStatement(stmt *etree.Element, hdr *models.GroupHeader) models.Statement {
	s := models.Statement{
		ID:               xmlnav.ChildText(stmt, "Id"),
		CreationDateTime: xmlnav.ChildText(stmt, "CreDtTm"),
	}
	if hdr != nil {
		s.GroupHeader = *hdr
	}
	if ac := xmlnav.Child(stmt, "Acct"); ac != nil {
		s.Account = parseAccount(ac)
	}

	for _, b := range xmlnav.Children(stmt, "Bal") {
		s.Balances = append(s.Balances, parseBalance(b))
	}

	// Ordinals are assigned in original XML order; the export layer relies on
	// them to restore document order after sorting.
	ordinal := 0
	for _, n := range xmlnav.Children(stmt, "Ntry") {
		e := parseEntry(n, s.Account.Currency)
		e.ImportOrdinal = ordinal
		ordinal++
		s.Entries = append(s.Entries, e)
	}
	return s
}

func parseAccount(acct *etree.Element) models.Account {
	a := models.Account{
		Name:     xmlnav.ChildText(acct, "Nm"),
		Currency: xmlnav.ChildText(acct, "Ccy"),
	}
	if id := xmlnav.Child(acct, "Id"); id != nil {
		a.ID = parseAccountID(id)
	}
	if sv := xmlnav.Child(acct, "Svcr"); sv != nil {
		a.Servicer = parseAgent(sv)
	}
	return a
}

func parseAccountID(id *etree.Element) models.AccountID {
	out := models.AccountID{IBAN: xmlnav.DescText(id, "IBAN")}
	if out.IBAN == "" {
		if o := xmlnav.Child(id, "Othr"); o != nil {
			out.Other = xmlnav.ChildText(o, "Id")
		}
	}
	return out
}

func parseAgent(node *etree.Element) models.Agent {
	var a models.Agent
	if fi := xmlnav.Child(node, "FinInstnId"); fi != nil {
		a.BIC = xmlnav.ChildText(fi, "BIC")
		if a.BIC == "" {
			a.BIC = xmlnav.ChildText(fi, "BICFI")
		}
		a.Name = xmlnav.ChildText(fi, "Nm")
	}
	return a
}

func parseParty(node *etree.Element) models.Party {
	p := models.Party{
		Name: xmlnav.DescText(node, "Nm"),
		IBAN: xmlnav.DescText(node, "IBAN"),
		BIC:  xmlnav.DescText(node, "BIC"),
	}
	if p.BIC == "" {
		p.BIC = xmlnav.DescText(node, "BICFI")
	}
	return p
}

// parseAmount reads an Amt element: the currency from the Ccy attribute, the
// value from the character data. Unparseable values degrade to zero minor
// units rather than failing the document.
func parseAmount(amt *etree.Element) models.CurrencyAmount {
	ccy := xmlnav.Attr(amt, "Ccy")
	text := xmlnav.Text(amt)
	if strictAmounts {
		minor, err := currencyutils.ParseMinorStrict(text, ccy)
		if err != nil {
			log.WithError(err).WithField("value", text).Error("Invalid amount value")
		}
		return models.CurrencyAmount{Currency: ccy, Minor: minor}
	}
	return models.CurrencyAmount{
		Currency: ccy,
		Minor:    currencyutils.ParseMinor(text, ccy),
	}
}

func parseBalance(bal *etree.Element) models.Balance {
	var b models.Balance

	// Banks place the balance type at several depths. Try the schema
	// locations first, then fall back to a recursive search under Tp.
	if tp := xmlnav.Child(bal, "Tp"); tp != nil {
		if cop := xmlnav.Child(tp, "CdOrPrtry"); cop != nil {
			b.Type = xmlnav.ChildText(cop, "Cd")
			if b.Type == "" {
				b.Type = xmlnav.ChildText(cop, "Prtry")
			}
		}
		if b.Type == "" {
			b.Type = xmlnav.ChildText(tp, "Cd")
		}
		if b.Type == "" {
			b.Type = xmlnav.ChildText(tp, "Prtry")
		}
		if b.Type == "" {
			b.Type = xmlnav.DescText(tp, "Cd")
		}
		if b.Type == "" {
			b.Type = xmlnav.DescText(tp, "Prtry")
		}
	}

	if a := xmlnav.Child(bal, "Amt"); a != nil {
		b.Amount = parseAmount(a)
	}

	if cdi := xmlnav.Child(bal, "CdtDbtInd"); cdi != nil {
		b.HasCreditDebit = true
		b.IsCredit = xmlnav.Text(cdi) == "CRDT"
	}

	if d := xmlnav.Child(bal, "Dt"); d != nil {
		b.Date = xmlnav.DescText(d, "Dt")
		if b.Date == "" {
			b.Date = xmlnav.Text(d)
		}
	}
	return b
}

// readDateChoice resolves BookgDt/ValDt elements that carry either a plain
// Dt, a DtTm timestamp, or bare text.
func readDateChoice(parent *etree.Element, name string) string {
	n := xmlnav.Child(parent, name)
	if n == nil {
		return ""
	}
	d := xmlnav.DescText(n, "Dt")
	if d == "" {
		if dtm := xmlnav.DescText(n, "DtTm"); dtm != "" {
			d = dateutils.ISODatePrefix(dtm)
		}
	}
	if d == "" {
		d = xmlnav.Text(n)
	}
	return d
}

func parseEntry(ntry *etree.Element, accountCcy string) models.Entry {
	e := models.Entry{ImportOrdinal: -1}

	if a := xmlnav.Child(ntry, "Amt"); a != nil {
		e.Amount = parseAmount(a)
	}
	e.IsCredit = xmlnav.ChildText(ntry, "CdtDbtInd") == "CRDT"

	e.BookingDate = readDateChoice(ntry, "BookgDt")
	e.BookingDateInt = dateutils.ToInt(e.BookingDate)
	e.ValueDate = readDateChoice(ntry, "ValDt")
	e.ValueDateInt = dateutils.ToInt(e.ValueDate)

	e.EntryRef = xmlnav.ChildText(ntry, "NtryRef")
	e.Status = xmlnav.ChildText(ntry, "Sts")
	if rv := xmlnav.ChildText(ntry, "RvslInd"); rv != "" {
		e.Reversal = rv == "true" || rv == "1"
	}
	e.AcctSvcrRef = xmlnav.ChildText(ntry, "AcctSvcrRef")

	if nd := xmlnav.Child(ntry, "NtryDtls"); nd != nil {
		txOrdinal := 0
		for _, td := range xmlnav.Children(nd, "TxDtls") {
			tx := parseTxDtls(td, accountCcy)
			tx.ImportOrdinal = txOrdinal
			txOrdinal++
			e.Transactions = append(e.Transactions, tx)
		}
	}
	return e
}

func parseRemittance(rmt *etree.Element, out *models.RemittanceInformation) {
	for _, u := range rmt.ChildElements() {
		switch u.Tag {
		case "Ustrd":
			if s := xmlnav.Text(u); s != "" {
				out.Unstructured = append(out.Unstructured, s)
			}
		case "Strd":
			var sr models.StructuredRemittance
			if rtp := xmlnav.Desc(u, "RefTp"); rtp != nil {
				sr.CreditorRefType = xmlnav.DescText(rtp, "Cd")
				if sr.CreditorRefType == "" {
					sr.CreditorRefType = xmlnav.DescText(rtp, "Prtry")
				}
			}
			if cri := xmlnav.Desc(u, "CdtrRefInf"); cri != nil {
				sr.CreditorRef = xmlnav.ChildText(cri, "Ref")
			}
			sr.AdditionalInfo = xmlnav.ChildText(u, "AddtlRmtInf")
			out.Structured = append(out.Structured, sr)
		}
	}
}

func parseRelatedParties(rp *etree.Element, out *models.RelatedParties) {
	if n := xmlnav.Child(rp, "Dbtr"); n != nil {
		out.Debtor = parseParty(n)
	}
	if n := xmlnav.Child(rp, "DbtrAcct"); n != nil {
		out.DebtorAccount = parseAccountID(xmlnav.Child(n, "Id"))
	}
	if n := xmlnav.Child(rp, "UltmtDbtr"); n != nil {
		out.UltimateDebtor = parseParty(n)
	}
	if n := xmlnav.Child(rp, "Cdtr"); n != nil {
		out.Creditor = parseParty(n)
	}
	if n := xmlnav.Child(rp, "CdtrAcct"); n != nil {
		out.CreditorAccount = parseAccountID(xmlnav.Child(n, "Id"))
	}
	if n := xmlnav.Child(rp, "UltmtCdtr"); n != nil {
		out.UltimateCreditor = parseParty(n)
	}
}

func parseRelatedAgents(ra *etree.Element, out *models.RelatedAgents) {
	if n := xmlnav.Child(ra, "DbtrAgt"); n != nil {
		out.DebtorAgent = parseAgent(n)
	}
	if n := xmlnav.Child(ra, "CdtrAgt"); n != nil {
		out.CreditorAgent = parseAgent(n)
	}
}

func parseBankTxCode(btc *etree.Element, out *models.BankTransactionCode) {
	if d := xmlnav.Child(btc, "Domn"); d != nil {
		out.Domain = xmlnav.ChildText(d, "Cd")
		if fm := xmlnav.Child(d, "Fmly"); fm != nil {
			out.Family = xmlnav.ChildText(fm, "Cd")
			out.SubFamily = xmlnav.ChildText(fm, "SubFmlyCd")
		}
	}
	if p := xmlnav.Child(btc, "Prtry"); p != nil {
		out.Proprietary = xmlnav.ChildText(p, "Cd")
		if out.Proprietary == "" {
			out.Proprietary = xmlnav.Text(p)
		}
	}
}

func parseProprietaryBankTxCode(n *etree.Element, out *models.ProprietaryBankTransactionCode) {
	if cd := xmlnav.Child(n, "Cd"); cd != nil {
		out.Code = xmlnav.Text(cd)
	}
	if is := xmlnav.Child(n, "Issr"); is != nil {
		out.Issuer = xmlnav.Text(is)
	}
}

func parseCharges(n *etree.Element, out *models.Charges) {
	if t := xmlnav.Child(n, "TtlChrgsAndTaxAmt"); t != nil {
		out.Total = parseAmount(t)
	}
	for _, r := range xmlnav.Children(n, "Rcrd") {
		var rec models.ChargesRecord
		if a := xmlnav.Child(r, "Amt"); a != nil {
			rec.Amount = parseAmount(a)
		}
		if ag := xmlnav.Child(r, "Agt"); ag != nil {
			rec.Agent = parseAgent(ag)
		}
		if ci := xmlnav.Child(r, "CdtDbtInd"); ci != nil {
			rec.HasCreditDebit = true
			rec.IsCredit = xmlnav.Text(ci) == "CRDT"
		}
		if ii := xmlnav.Child(r, "ChrgInclInd"); ii != nil {
			s := xmlnav.Text(ii)
			rec.Included = s == "true" || s == "1"
		}
		out.Records = append(out.Records, rec)
	}
}

// pickAmountInCcy selects the first AmtDtls sub-amount carried in the
// account's own currency, preferring the settlement amount.
func pickAmountInCcy(amtDtls *etree.Element, accountCcy string) *models.CurrencyAmount {
	if amtDtls == nil {
		return nil
	}
	for _, tag := range []string{"TxAmt", "InstdAmt", "CntrValAmt"} {
		n := xmlnav.Child(amtDtls, tag)
		if n == nil {
			continue
		}
		a := xmlnav.Child(n, "Amt")
		if a == nil {
			continue
		}
		ca := parseAmount(a)
		if ca.Currency == accountCcy {
			return &ca
		}
	}
	return nil
}

// parseTxDtls extracts one TxDtls block. accountCcy is the currency of the
// statement's own account and steers the amount preference for multi-currency
// entries; it may be empty.
func parseTxDtls(tx *etree.Element, accountCcy string) models.EntryTransaction {
	t := models.EntryTransaction{ImportOrdinal: -1}

	if refs := xmlnav.Child(tx, "Refs"); refs != nil {
		t.Refs.EndToEndID = xmlnav.ChildText(refs, "EndToEndId")
		t.Refs.TxID = xmlnav.ChildText(refs, "TxId")
		t.Refs.AcctSvcrRef = xmlnav.ChildText(refs, "AcctSvcrRef")
		t.Refs.MandateID = xmlnav.ChildText(refs, "MndtId")
		t.Refs.MsgID = xmlnav.ChildText(refs, "MsgId")
	}

	if btc := xmlnav.Child(tx, "BkTxCd"); btc != nil {
		parseBankTxCode(btc, &t.BankTxCode)

		if pr := xmlnav.Child(btc, "Prtry"); pr != nil {
			t.ProprietaryTx.Code = xmlnav.ChildText(pr, "Cd")
			t.ProprietaryTx.Issuer = xmlnav.ChildText(pr, "Issr")
		}

		// The raw proprietary code is kept verbatim; the reference code is
		// everything after the first '+', e.g. "NMSC+201+9310" -> "201+9310".
		t.DTACode = t.ProprietaryTx.Code
		if p := strings.IndexByte(t.DTACode, '+'); p >= 0 && p+1 < len(t.DTACode) {
			t.GVC = t.DTACode[p+1:]
		}
	}

	if rp := xmlnav.Child(tx, "RltdPties"); rp != nil {
		parseRelatedParties(rp, &t.Parties)
	}
	if ra := xmlnav.Child(tx, "RltdAgts"); ra != nil {
		parseRelatedAgents(ra, &t.Agents)
	}
	if rmt := xmlnav.Child(tx, "RmtInf"); rmt != nil {
		parseRemittance(rmt, &t.Remittance)
	}
	if p := xmlnav.Child(tx, "Purp"); p != nil {
		t.Purpose.Code = xmlnav.ChildText(p, "Cd")
		t.Purpose.Proprietary = xmlnav.ChildText(p, "Prtry")
	}
	// A sibling PrtryBkTxCd overrides code and issuer but not the already
	// derived DTACode/GVC.
	if pbc := xmlnav.Child(tx, "PrtryBkTxCd"); pbc != nil {
		parseProprietaryBankTxCode(pbc, &t.ProprietaryTx)
	}
	if ch := xmlnav.Child(tx, "Chrgs"); ch != nil {
		parseCharges(ch, &t.ChargesInfo)
	}
	t.AdditionalInfo = xmlnav.ChildText(tx, "AddtlTxInf")

	if a0 := xmlnav.Child(tx, "Amt"); a0 != nil {
		ca := parseAmount(a0)
		t.TxAmount = &ca
	} else if ad := xmlnav.Child(tx, "AmtDtls"); ad != nil {
		if ta := xmlnav.Child(ad, "TxAmt"); ta != nil {
			if a := xmlnav.Child(ta, "Amt"); a != nil {
				ca := parseAmount(a)
				t.TxAmount = &ca
			}
		}
	}

	if cdi := xmlnav.Child(tx, "CdtDbtInd"); cdi != nil {
		t.HasCreditDebit = true
		t.IsCredit = xmlnav.Text(cdi) == "CRDT"
	}

	if ad := xmlnav.Child(tx, "AmtDtls"); ad != nil {
		if ia := xmlnav.Child(ad, "InstdAmt"); ia != nil {
			if a := xmlnav.Child(ia, "Amt"); a != nil {
				t.FxInstdAmt = parseAmount(a)
				t.HasFxInstdAmt = true

				if cx := xmlnav.Child(ia, "CcyXchg"); cx != nil {
					t.Fx.SourceCurrency = xmlnav.ChildText(cx, "SrcCcy")
					t.Fx.TargetCurrency = xmlnav.ChildText(cx, "TrgtCcy")
					t.Fx.UnitCurrency = xmlnav.ChildText(cx, "UnitCcy")
					if n := xmlnav.Child(cx, "XchgRate"); n != nil {
						t.Fx.Rate = parseRate(xmlnav.Text(n))
						t.Fx.Has = true
					}
				}
			}
		}
		if ta := xmlnav.Child(ad, "TxAmt"); ta != nil {
			if a := xmlnav.Child(ta, "Amt"); a != nil {
				t.FxTxAmt = parseAmount(a)
				t.HasFxTxAmt = true
			}
		}
		if cv := xmlnav.Child(ad, "CntrValAmt"); cv != nil {
			if a := xmlnav.Child(cv, "Amt"); a != nil {
				t.FxCounterValAmt = parseAmount(a)
				t.HasFxCounterVal = true
			}
		}

		// Prefer an amount in the account's own currency; the explicit Tx
		// amount survives only if it already is in that currency.
		if accountCcy != "" {
			if acctAmt := pickAmountInCcy(ad, accountCcy); acctAmt != nil {
				if t.TxAmount == nil || t.TxAmount.Currency != accountCcy {
					t.TxAmount = acctAmt
				}
			}
		}
	}

	reconcileExchangeRate(&t)
	return t
}
