package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	zipMagic  = []byte("PK\x03\x04")                                   // xlsx (OOXML)
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // legacy xls (BIFF)
)

// readSpreadsheet reads the first worksheet of an xlsx or xls workbook. The
// first non-empty row is the header; each following non-empty row becomes a
// RawRow. Cells are read as displayed text.
func readSpreadsheet(ctx context.Context, payload []byte) (ReadResult, error) {
	var (
		records [][]string
		err     error
	)
	switch {
	case bytes.HasPrefix(payload, zipMagic):
		records, err = xlsxRecords(payload)
	case bytes.HasPrefix(payload, ole2Magic):
		records, err = xlsRecords(payload)
	default:
		return ReadResult{}, fmt.Errorf("%w: not a spreadsheet workbook", ErrFileParse)
	}
	if err != nil {
		return ReadResult{}, err
	}
	return recordsToRows(ctx, records)
}

func xlsxRecords(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrFileParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrFileParse, sheets[0], err)
	}
	return rows, nil
}

func xlsRecords(payload []byte) (records [][]string, err error) {
	// The BIFF decoder panics on some truncated workbooks.
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("%w: corrupt workbook: %v", ErrFileParse, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(payload), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrFileParse, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: no workbook stream", ErrFileParse)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFileParse)
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		width := row.LastCol()
		if width == 0 {
			width = xlsMaxCols
		}
		cells := make([]string, width)
		for c := row.FirstCol(); c < width; c++ {
			cells[c] = row.Col(c)
		}
		records = append(records, cells)
	}
	return records, nil
}

// xlsMaxCols bounds the columns read from a row that has cells but no
// ROW record, which leaves its extent unknown.
const xlsMaxCols = 32

// xlsRow returns nil for rows with no cells. The decoder dereferences a
// missing row instead of reporting it.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func recordsToRows(ctx context.Context, records [][]string) (ReadResult, error) {
	var result ReadResult
	for len(records) > 0 && isEmptyRecord(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return result, nil
	}

	header := cleanHeader(records[0])
	for n, record := range records[1:] {
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ReadResult{}, err
			}
		}
		if row := rowFromCells(header, record); row != nil {
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}
