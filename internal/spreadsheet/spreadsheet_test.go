package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cabanas/quote-service/internal/tariff"
)

func TestExportImportRoundTrip(t *testing.T) {
	table := tariff.Builtin(tariff.SeasonSpring)

	content, err := Export(table)
	require.NoError(t, err)

	res, err := Import(content)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, table.PeopleBands, res.Override.PeopleBands)
	assert.Equal(t, table.LongStayDiscounts, res.Override.LongStayDiscounts)
}

func TestExportWritesWholePesos(t *testing.T) {
	content, err := Export(tariff.Table{
		PeopleBands: []tariff.PeopleBand{{People: 2, PricePerNightCents: 8_000_050}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BandsSheet, DiscountsSheet}, f.GetSheetList())

	v, err := f.GetCellValue(BandsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "80001", v)
}

func TestImportMissingAndEmptySheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "discounts"))
	require.NoError(t, f.SetSheetRow("discounts", "A1", &[]interface{}{"Noches mínimas", "Descuento %"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := Import(buf.Bytes())
	require.NoError(t, err)

	// no Bands sheet: absent
	assert.Nil(t, res.Override.PeopleBands)
	// header only: present and empty
	assert.NotNil(t, res.Override.LongStayDiscounts)
	assert.Empty(t, res.Override.LongStayDiscounts)

	merged := tariff.MergeOverride(tariff.Builtin(tariff.SeasonSummer), res.Override)
	assert.Equal(t, tariff.Builtin(tariff.SeasonSummer).PeopleBands, merged.PeopleBands)
	assert.Empty(t, merged.LongStayDiscounts)
}

func TestImportReportsBadRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", BandsSheet))

	rows := [][]interface{}{
		{"Personas", "Precio por noche"},
		{2, "80.000"},
		{"x", 1000},
		{4, ""},
		{-1, 1000},
		{5, -5000},
		{6, 140000},
		{},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		require.NoError(t, f.SetSheetRow(BandsSheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := Import(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []tariff.PeopleBand{
		{People: 2, PricePerNightCents: 8_000_000},
		{People: 6, PricePerNightCents: 14_000_000},
	}, res.Override.PeopleBands)

	require.Len(t, res.Errors, 4)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, 4, res.Errors[1].Row)
	assert.Equal(t, 5, res.Errors[2].Row)
	assert.Equal(t, 6, res.Errors[3].Row)
	assert.Equal(t, "price must not be negative", res.Errors[3].Message)
	assert.Contains(t, res.Errors[0].Error(), "Bands row 3")

	assert.Nil(t, res.Override.LongStayDiscounts)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import([]byte("not a workbook"))
	assert.Error(t, err)
}
