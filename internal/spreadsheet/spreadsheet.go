// Package spreadsheet exports and imports tariff tables as XLSX workbooks.
//
// A workbook has a "Bands" sheet (people, nightly price in whole pesos) and
// a "Discounts" sheet (minimum nights, percent). The first row of each sheet
// is a header.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

const (
	BandsSheet     = "Bands"
	DiscountsSheet = "Discounts"
)

var (
	bandsHeader     = []interface{}{"Personas", "Precio por noche"}
	discountsHeader = []interface{}{"Noches mínimas", "Descuento %"}
)

// RowError describes a row that could not be imported.
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.Sheet, e.Row, e.Message)
}

// ImportResult is the outcome of reading a workbook.
type ImportResult struct {
	Override *tariff.Override `json:"override"`
	Errors   []RowError       `json:"errors,omitempty"`
}

// Export writes the table to an XLSX workbook.
func Export(t tariff.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), BandsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(DiscountsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := f.SetSheetRow(BandsSheet, "A1", &bandsHeader); err != nil {
		return nil, err
	}
	for i, b := range t.PeopleBands {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{b.People, money.ToWholeUnits(b.PricePerNightCents)}
		if err := f.SetSheetRow(BandsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write band %d: %w", i, err)
		}
	}

	if err := f.SetSheetRow(DiscountsSheet, "A1", &discountsHeader); err != nil {
		return nil, err
	}
	for i, d := range t.LongStayDiscounts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{d.MinNights, d.DiscountPercent}
		if err := f.SetSheetRow(DiscountsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write discount %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Import reads a workbook into an override. A missing sheet leaves that
// field absent; a sheet with only a header yields an empty list. Rows that
// cannot be parsed are reported and skipped.
func Import(content []byte) (*ImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	defer f.Close()

	res := &ImportResult{Override: &tariff.Override{}}
	sheets := sheetIndex(f)

	if name, ok := sheets[strings.ToLower(BandsSheet)]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		res.Override.PeopleBands = []tariff.PeopleBand{}
		for i, row := range dataRows(rows) {
			rowNum := i + 2
			people := cellInt(row, 0)
			if people <= 0 {
				res.Errors = append(res.Errors, RowError{Sheet: name, Row: rowNum, Message: "people must be a positive number"})
				continue
			}
			priceText := strings.TrimSpace(cell(row, 1))
			if strings.HasPrefix(priceText, "-") {
				res.Errors = append(res.Errors, RowError{Sheet: name, Row: rowNum, Message: "price must not be negative"})
				continue
			}
			price := money.ParseToCents(priceText)
			if price <= 0 {
				res.Errors = append(res.Errors, RowError{Sheet: name, Row: rowNum, Message: "price must be a positive amount"})
				continue
			}
			res.Override.PeopleBands = append(res.Override.PeopleBands, tariff.PeopleBand{
				People:             people,
				PricePerNightCents: price,
			})
		}
	}

	if name, ok := sheets[strings.ToLower(DiscountsSheet)]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		res.Override.LongStayDiscounts = []tariff.LongStayDiscount{}
		for i, row := range dataRows(rows) {
			rowNum := i + 2
			minNights := cellInt(row, 0)
			if minNights <= 0 {
				res.Errors = append(res.Errors, RowError{Sheet: name, Row: rowNum, Message: "minimum nights must be a positive number"})
				continue
			}
			if strings.TrimSpace(cell(row, 1)) == "" {
				res.Errors = append(res.Errors, RowError{Sheet: name, Row: rowNum, Message: "discount percent is required"})
				continue
			}
			res.Override.LongStayDiscounts = append(res.Override.LongStayDiscounts, tariff.LongStayDiscount{
				MinNights:       minNights,
				DiscountPercent: cellInt(row, 1),
			})
		}
	}

	return res, nil
}

// sheetIndex maps lower-cased sheet names to their real names.
func sheetIndex(f *excelize.File) map[string]string {
	idx := make(map[string]string)
	for _, name := range f.GetSheetList() {
		idx[strings.ToLower(strings.TrimSpace(name))] = name
	}
	return idx
}

// dataRows drops the header row and trailing blank rows.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	rows = rows[1:]
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// cellInt reads the integer part of a cell, ignoring any decimals.
// Negative numbers yield -1.
func cellInt(row []string, i int) int {
	s := strings.TrimSpace(cell(row, i))
	if strings.HasPrefix(s, "-") {
		return -1
	}
	if dot := strings.IndexAny(s, ".,"); dot >= 0 {
		s = s[:dot]
	}
	return money.ParseCount(s)
}
