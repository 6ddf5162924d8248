package xmlutils

// XPath expressions for camt.053 statement reading. Entry fields are
// relative to their //Ntry node: optional elements are missing from some
// entries, so extraction is per node rather than document-wide.
const (
	XPathStatement = "//BkToCstmrStmt/Stmt"
	XPathEntry     = "//Ntry"

	XPathEntryAmount         = "Amt"
	XPathEntryCurrency       = "Amt/@Ccy"
	XPathEntryCreditDebitInd = "CdtDbtInd" // #nosec G101 -- XPath expression, not credentials
	XPathEntryBookingDate    = "BookgDt/Dt"

	XPathEntryRemittanceInfo = "NtryDtls/TxDtls/RmtInf/Ustrd"
	XPathEntryAddInfo        = "AddtlNtryInf"

	XPathEntryDebtorName   = "NtryDtls/TxDtls/RltdPties/Dbtr/Nm" // #nosec G101 -- XPath expression, not credentials
	XPathEntryCreditorName = "NtryDtls/TxDtls/RltdPties/Cdtr/Nm" // #nosec G101 -- XPath expression, not credentials
)
