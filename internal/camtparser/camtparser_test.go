package camtparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/camt-export/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementXML = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08">
  <BkToCstmrStmt>
    <GrpHdr>
      <MsgId>MSG-20251008-001</MsgId>
      <CreDtTm>2025-10-08T12:00:00Z</CreDtTm>
      <MsgRcpt><Nm>ACME AG</Nm></MsgRcpt>
    </GrpHdr>
    <Stmt>
      <Id>STMT-001</Id>
      <CreDtTm>2025-10-08T12:00:00Z</CreDtTm>
      <Acct>
        <Id><IBAN>CH9300762011623852957</IBAN></Id>
        <Ccy>EUR</Ccy>
        <Svcr><FinInstnId><BICFI>POFICHBEXXX</BICFI><Nm>PostFinance AG</Nm></FinInstnId></Svcr>
      </Acct>
      <Bal>
        <Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="EUR">100.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <Dt><Dt>2025-10-07</Dt></Dt>
      </Bal>
      <Bal>
        <Tp><CdOrPrtry><Cd>CLBD</Cd></CdOrPrtry></Tp>
        <Amt Ccy="EUR">170.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <Dt><Dt>2025-10-08</Dt></Dt>
      </Bal>
      <Ntry>
        <Amt Ccy="EUR">100.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <RvslInd>false</RvslInd>
        <Sts>BOOK</Sts>
        <BookgDt><Dt>2025-10-08</Dt></BookgDt>
        <ValDt><DtTm>2025-10-09T00:00:00Z</DtTm></ValDt>
        <AcctSvcrRef>ENTRY-REF-1</AcctSvcrRef>
        <NtryDtls>
          <TxDtls>
            <Refs>
              <EndToEndId>E2E-1</EndToEndId>
              <TxId>TX-1</TxId>
              <AcctSvcrRef>SVCR-1</AcctSvcrRef>
              <MndtId>MANDATE-1</MndtId>
            </Refs>
            <Amt Ccy="EUR">70.00</Amt>
            <CdtDbtInd>CRDT</CdtDbtInd>
            <BkTxCd>
              <Domn><Cd>PMNT</Cd><Fmly><Cd>RCDT</Cd><SubFmlyCd>ESCT</SubFmlyCd></Fmly></Domn>
              <Prtry><Cd>NMSC+051+9310</Cd><Issr>ZKA</Issr></Prtry>
            </BkTxCd>
            <RltdPties>
              <Dbtr><Nm>Alice GmbH</Nm></Dbtr>
              <DbtrAcct><Id><IBAN>DE89370400440532013000</IBAN></Id></DbtrAcct>
              <UltmtDbtr><Nm>NOTPROVIDED</Nm></UltmtDbtr>
              <Cdtr><Nm>ACME AG</Nm></Cdtr>
            </RltdPties>
            <RltdAgts>
              <DbtrAgt><FinInstnId><BIC>COBADEFFXXX</BIC><Nm>Commerzbank</Nm></FinInstnId></DbtrAgt>
            </RltdAgts>
            <RmtInf>
              <Ustrd>Invoice 42</Ustrd>
              <Ustrd>Part two</Ustrd>
              <Strd>
                <CdtrRefInf>
                  <RefTp><Cd>SCOR</Cd></RefTp>
                  <Ref>RF18539007547034</Ref>
                </CdtrRefInf>
              </Strd>
            </RmtInf>
            <Chrgs>
              <Rcrd>
                <Amt Ccy="EUR">1.50</Amt>
                <CdtDbtInd>DBIT</CdtDbtInd>
                <ChrgInclInd>true</ChrgInclInd>
              </Rcrd>
            </Chrgs>
            <AddtlTxInf>extra info</AddtlTxInf>
          </TxDtls>
          <TxDtls>
            <Amt Ccy="EUR">30.00</Amt>
            <CdtDbtInd>DBIT</CdtDbtInd>
          </TxDtls>
        </NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestParseBytesStatement(t *testing.T) {
	doc, err := ParseBytes([]byte(statementXML))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, models.DocKindStatement, doc.Kind)
	require.Len(t, doc.Statements, 1)

	st := doc.Statements[0]
	assert.Equal(t, "STMT-001", st.ID)
	assert.Equal(t, "MSG-20251008-001", st.GroupHeader.MsgID)
	assert.Equal(t, "ACME AG", st.GroupHeader.MessageRecipient)
	assert.Equal(t, "CH9300762011623852957", st.Account.ID.IBAN)
	assert.Equal(t, "EUR", st.Account.Currency)
	assert.Equal(t, "POFICHBEXXX", st.Account.Servicer.BIC)
	assert.Equal(t, "PostFinance AG", st.Account.Servicer.Name)

	require.Len(t, st.Balances, 2)
	assert.Equal(t, "OPBD", st.Balances[0].Type)
	assert.Equal(t, int64(10000), st.Balances[0].Amount.Minor)
	assert.True(t, st.Balances[0].HasCreditDebit)
	assert.True(t, st.Balances[0].IsCredit)
	assert.Equal(t, "2025-10-07", st.Balances[0].Date)
	assert.Equal(t, "CLBD", st.Balances[1].Type)
	assert.Equal(t, int64(17000), st.Balances[1].Amount.Minor)
}

func TestParseBytesEntry(t *testing.T) {
	doc, err := ParseBytes([]byte(statementXML))
	require.NoError(t, err)
	require.Len(t, doc.Statements, 1)
	require.Len(t, doc.Statements[0].Entries, 1)

	e := doc.Statements[0].Entries[0]
	assert.Equal(t, int64(10000), e.Amount.Minor)
	assert.Equal(t, "EUR", e.Amount.Currency)
	assert.True(t, e.IsCredit)
	assert.False(t, e.Reversal)
	assert.Equal(t, "BOOK", e.Status)
	assert.Equal(t, "ENTRY-REF-1", e.AcctSvcrRef)
	assert.Equal(t, 0, e.ImportOrdinal)

	assert.Equal(t, "2025-10-08", e.BookingDate)
	assert.Equal(t, 20251008, e.BookingDateInt)
	// ValDt only carries a timestamp; the date prefix is extracted.
	assert.Equal(t, "2025-10-09", e.ValueDate)
	assert.Equal(t, 20251009, e.ValueDateInt)
}

func TestParseBytesTransactionDetails(t *testing.T) {
	doc, err := ParseBytes([]byte(statementXML))
	require.NoError(t, err)
	e := doc.Statements[0].Entries[0]
	require.Len(t, e.Transactions, 2)

	tx := e.Transactions[0]
	assert.Equal(t, "E2E-1", tx.Refs.EndToEndID)
	assert.Equal(t, "TX-1", tx.Refs.TxID)
	assert.Equal(t, "SVCR-1", tx.Refs.AcctSvcrRef)
	assert.Equal(t, "MANDATE-1", tx.Refs.MandateID)
	assert.Equal(t, 0, tx.ImportOrdinal)

	assert.Equal(t, "PMNT", tx.BankTxCode.Domain)
	assert.Equal(t, "RCDT", tx.BankTxCode.Family)
	assert.Equal(t, "ESCT", tx.BankTxCode.SubFamily)
	assert.Equal(t, "NMSC+051+9310", tx.ProprietaryTx.Code)
	assert.Equal(t, "ZKA", tx.ProprietaryTx.Issuer)
	assert.Equal(t, "NMSC+051+9310", tx.DTACode)
	assert.Equal(t, "051+9310", tx.GVC)

	assert.Equal(t, "Alice GmbH", tx.Parties.Debtor.Name)
	assert.Equal(t, "DE89370400440532013000", tx.Parties.DebtorAccount.IBAN)
	assert.Equal(t, "NOTPROVIDED", tx.Parties.UltimateDebtor.Name)
	assert.Equal(t, "ACME AG", tx.Parties.Creditor.Name)
	assert.Equal(t, "COBADEFFXXX", tx.Agents.DebtorAgent.BIC)

	require.Len(t, tx.Remittance.Unstructured, 2)
	assert.Equal(t, "Invoice 42", tx.Remittance.Unstructured[0])
	require.Len(t, tx.Remittance.Structured, 1)
	assert.Equal(t, "SCOR", tx.Remittance.Structured[0].CreditorRefType)
	assert.Equal(t, "RF18539007547034", tx.Remittance.Structured[0].CreditorRef)

	require.Len(t, tx.ChargesInfo.Records, 1)
	rec := tx.ChargesInfo.Records[0]
	assert.Equal(t, int64(150), rec.Amount.Minor)
	assert.True(t, rec.HasCreditDebit)
	assert.False(t, rec.IsCredit)
	assert.True(t, rec.Included)

	assert.Equal(t, "extra info", tx.AdditionalInfo)
	require.NotNil(t, tx.TxAmount)
	assert.Equal(t, int64(7000), tx.TxAmount.Minor)
	assert.True(t, tx.HasCreditDebit)
	assert.True(t, tx.IsCredit)

	tx2 := e.Transactions[1]
	assert.Equal(t, 1, tx2.ImportOrdinal)
	assert.True(t, tx2.HasCreditDebit)
	assert.False(t, tx2.IsCredit)
	require.NotNil(t, tx2.TxAmount)
	assert.Equal(t, int64(3000), tx2.TxAmount.Minor)
}

func TestParseBytesKinds(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		stmtTag  string
		expected models.DocKind
	}{
		{"statement", "BkToCstmrStmt", "Stmt", models.DocKindStatement},
		{"notification", "BkToCstmrDbtCdtNtfctn", "Ntfctn", models.DocKindNotification},
		{"account report", "BkToCstmrAcctRpt", "Rpt", models.DocKindAccountReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml := `<Document><` + tt.payload + `><` + tt.stmtTag + `><Id>X</Id></` + tt.stmtTag + `></` + tt.payload + `></Document>`
			doc, err := ParseBytes([]byte(xml))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Kind)
			require.Len(t, doc.Statements, 1)
			assert.Equal(t, "X", doc.Statements[0].ID)
		})
	}
}

func TestParseBytesVendorEnvelope(t *testing.T) {
	// Payload buried in a vendor wrapper; found by depth-first search.
	xml := `<Envelope><Body><Document><BkToCstmrStmt><Stmt><Id>WRAPPED</Id></Stmt></BkToCstmrStmt></Document></Body></Envelope>`
	doc, err := ParseBytes([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, models.DocKindStatement, doc.Kind)
	require.Len(t, doc.Statements, 1)
	assert.Equal(t, "WRAPPED", doc.Statements[0].ID)
}

func TestParseBytesPayloadAsRoot(t *testing.T) {
	xml := `<BkToCstmrDbtCdtNtfctn><Ntfctn><Id>N-1</Id></Ntfctn></BkToCstmrDbtCdtNtfctn>`
	doc, err := ParseBytes([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, models.DocKindNotification, doc.Kind)
}

func TestParseBytesErrors(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := ParseBytes([]byte("<!-- nothing here -->"))
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("unsupported root", func(t *testing.T) {
		_, err := ParseBytes([]byte("<Document><SomethingElse/></Document>"))
		assert.ErrorIs(t, err, ErrUnsupportedRoot)
	})
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(statementXML))
	require.NoError(t, err)
	assert.Equal(t, models.DocKindStatement, doc.Kind)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	camtFile := filepath.Join(dir, "stmt.xml")
	require.NoError(t, os.WriteFile(camtFile, []byte(statementXML), 0o600))

	otherFile := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(otherFile, []byte("<Root><Foo/></Root>"), 0o600))

	notXML := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(notXML, []byte("hello"), 0o600))

	ok, err := ValidateFormat(camtFile)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateFormat(otherFile)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ValidateFormat(notXML)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ValidateFormat(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
}
