package camtparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/parsererror"
)

const sampleStatement = `<?xml version="1.0" encoding="UTF-8"?>
<Document>
  <BkToCstmrStmt>
    <Stmt>
      <Ntry>
        <Amt Ccy="EUR">45.67</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2025-01-15</Dt></BookgDt>
        <NtryDtls>
          <TxDtls>
            <RmtInf><Ustrd>MERCADONA VALENCIA</Ustrd></RmtInf>
          </TxDtls>
        </NtryDtls>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">1234.56</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2025-01-16</Dt></BookgDt>
        <AddtlNtryInf>NOMINA ENERO</AddtlNtryInf>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">not-a-number</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2025-01-17</Dt></BookgDt>
        <AddtlNtryInf>BROKEN ENTRY</AddtlNtryInf>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCAMTParserParseFile(t *testing.T) {
	p := NewCAMTParser(&logging.MockLogger{})
	result, err := p.ParseFile(writeStatement(t, sampleStatement))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	require.Len(t, result.Rejections, 1)

	debit := result.Transactions[0]
	assert.Equal(t, "2025-01-15", debit.Date.ISO())
	assert.Equal(t, "MERCADONA VALENCIA", debit.Description)
	assert.Equal(t, "-45.67", debit.Amount.StringFixed(2))

	credit := result.Transactions[1]
	assert.Equal(t, "NOMINA ENERO", credit.Description)
	assert.Equal(t, "1234.56", credit.Amount.StringFixed(2))

	rejection := result.Rejections[0]
	assert.True(t, errors.Is(rejection, parsererror.ErrUnparsableAmount))
	assert.Equal(t, 3, rejection.Row)
}

func TestCAMTParserRejectsNonStatement(t *testing.T) {
	p := NewCAMTParser(&logging.MockLogger{})
	path := writeStatement(t, `<?xml version="1.0"?><Document><Other/></Document>`)

	_, err := p.ParseFile(path)
	var invalid *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &invalid)
}

func TestCAMTParserValidateFormat(t *testing.T) {
	p := NewCAMTParser(&logging.MockLogger{})

	ok, err := p.ValidateFormat(writeStatement(t, sampleStatement))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.ValidateFormat(writeStatement(t, `<root><data/></root>`))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.ValidateFormat(writeStatement(t, "not xml at all <"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntryDescriptionFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		remittance string
		addInfo    string
		creditor   string
		debtor     string
		outgoing   bool
		expected   string
	}{
		{"remittance wins", "PAGO RECIBO", "other", "ACME", "BANK", true, "PAGO RECIBO"},
		{"add info second", "", "CARGO TARJETA", "ACME", "", true, "CARGO TARJETA"},
		{"creditor for outgoing", "", "", "ACME SL", "PABLO", true, "ACME SL"},
		{"debtor for incoming", "", "", "ACME SL", "EMPRESA SA", false, "EMPRESA SA"},
		{"nothing available", "", "", "", "", true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := entryDescription(tc.remittance, tc.addInfo, tc.creditor, tc.debtor, tc.outgoing)
			assert.Equal(t, tc.expected, got)
		})
	}
}
