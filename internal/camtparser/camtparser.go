// Package camtparser reads camt.053 bank statement XML and emits canonical
// rows. Extraction is XPath-based, per //Ntry node: the parser pulls the
// fields it needs and ignores the rest of the ISO 20022 message.
package camtparser

import (
	"pvillar/hogarfin/internal/currencyutils"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
	"pvillar/hogarfin/internal/textutils"
	"pvillar/hogarfin/internal/xmlutils"
)

// CAMTParser implements parser.StatementParser for camt.053 XML files.
type CAMTParser struct {
	parser.BaseParser
}

// NewCAMTParser creates a camt.053 statement parser.
func NewCAMTParser(logger logging.Logger) *CAMTParser {
	return &CAMTParser{BaseParser: parser.NewBaseParser(logger)}
}

// ParseFile reads and normalizes the camt.053 statement at path.
func (p *CAMTParser) ParseFile(path string) (*parser.Result, error) {
	root, err := xmlutils.LoadXMLFile(path)
	if err != nil {
		return nil, err
	}

	if !xmlutils.Exists(root, xmlutils.XPathStatement) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "camt.053 bank-to-customer statement",
			Msg:            "no BkToCstmrStmt/Stmt element",
		}
	}

	entries, err := xmlutils.Nodes(root, xmlutils.XPathEntry)
	if err != nil {
		return nil, err
	}

	result := &parser.Result{}
	for i, entry := range entries {
		rowNum := i + 1

		rawAmount := xmlutils.StringAt(entry, xmlutils.XPathEntryAmount)
		amount, err := currencyutils.ParseAmount(rawAmount)
		if err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableAmount(rowNum, rawAmount, err))
			continue
		}
		// camt amounts are unsigned; the indicator carries the sign.
		if xmlutils.StringAt(entry, xmlutils.XPathEntryCreditDebitInd) == "DBIT" {
			amount = amount.Neg()
		}

		rawDate := xmlutils.StringAt(entry, xmlutils.XPathEntryBookingDate)
		var date models.ISODate
		if err := date.UnmarshalCSV(rawDate); err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableDate(rowNum, rawDate, err))
			continue
		}

		description := entryDescription(
			xmlutils.StringAt(entry, xmlutils.XPathEntryRemittanceInfo),
			xmlutils.StringAt(entry, xmlutils.XPathEntryAddInfo),
			xmlutils.StringAt(entry, xmlutils.XPathEntryCreditorName),
			xmlutils.StringAt(entry, xmlutils.XPathEntryDebtorName),
			amount.IsNegative(),
		)
		if description == "" {
			continue
		}

		result.Transactions = append(result.Transactions, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
		})
	}

	p.GetLogger().WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejections)},
	).Info("Parsed camt.053 statement")
	return result, nil
}

// ValidateFormat checks for the camt.053 statement element without reading
// any entries.
func (p *CAMTParser) ValidateFormat(path string) (bool, error) {
	root, err := xmlutils.LoadXMLFile(path)
	if err != nil {
		return false, nil
	}
	return xmlutils.Exists(root, xmlutils.XPathStatement), nil
}

// entryDescription picks the best available description for an entry:
// unstructured remittance info first, then the additional entry info, then
// the counterparty name (creditor for outgoing money, debtor for incoming).
func entryDescription(remittance, addInfo, creditor, debtor string, outgoing bool) string {
	if d := textutils.CleanDescription(remittance); d != "" {
		return d
	}
	if d := textutils.CleanDescription(addInfo); d != "" {
		return d
	}
	party := debtor
	if outgoing {
		party = creditor
	}
	return textutils.CleanDescription(party)
}
