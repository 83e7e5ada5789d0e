package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ContextCheckInterval is how often, in rows, readers check for cancellation.
var ContextCheckInterval = 100

// readCSV treats the first non-empty record as the header and maps each
// following record to a RawRow. Records with no non-empty cells are
// skipped. Records shorter than the header leave the missing columns
// absent. Stray quotes inside unquoted fields are kept as text.
func readCSV(ctx context.Context, payload []byte) (ReadResult, error) {
	r := csv.NewReader(NewCleanReader(bytes.NewReader(payload)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.ReuseRecord = false

	var (
		header []string
		result ReadResult
	)
	for n := 0; ; n++ {
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ReadResult{}, err
			}
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ReadResult{}, fmt.Errorf("%w: %v", ErrFileParse, err)
		}

		if header == nil {
			if isEmptyRecord(record) {
				continue
			}
			header = cleanHeader(record)
			continue
		}

		if row := rowFromCells(header, record); row != nil {
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if CleanCell(cell) != "" {
			return false
		}
	}
	return true
}
