package statementparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pvillar/hogarfin/internal/logging"
)

func writeTempWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "extracto.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExcelParserStatement(t *testing.T) {
	path := writeTempWorkbook(t, [][]interface{}{
		{"Extracto de movimientos"},
		{"Fecha", "Concepto", "Importe", "Tarjeta"},
		{"15/01/2025", "MERCADONA VALENCIA", "-45,67", "*1234"},
		{"16/01/2025", "NOMINA ENERO", "1.234,56"},
	})

	p := NewExcelParser(&logging.MockLogger{})
	result, err := p.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Empty(t, result.Rejections)

	assert.Equal(t, "2025-01-15", result.Transactions[0].Date.ISO())
	assert.Equal(t, "-45.67", result.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "*1234", result.Transactions[0].CardSuffix)
	assert.Equal(t, "1234.56", result.Transactions[1].Amount.StringFixed(2))
}

func TestExcelParserValidateFormat(t *testing.T) {
	valid := writeTempWorkbook(t, [][]interface{}{
		{"Fecha", "Concepto", "Importe"},
		{"15/01/2025", "MERCADONA", "-45,67"},
	})
	noHeader := writeTempWorkbook(t, [][]interface{}{
		{"just", "some", "cells"},
	})

	p := NewExcelParser(&logging.MockLogger{})

	ok, err := p.ValidateFormat(valid)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.ValidateFormat(noHeader)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.ValidateFormat(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExcelParserRejectsNonWorkbook(t *testing.T) {
	path := writeTempStatement(t, "fake.xlsx", []byte("not a zip archive"))

	p := NewExcelParser(&logging.MockLogger{})
	_, err := p.ParseFile(path)
	assert.Error(t, err)
}
