package core

import (
	"context"
	"strings"
)

// Pipe-delimited text layout.
const (
	textSeparator   = "|"
	textMinSegments = 4 // title | category | start | end
	textFullLayout  = 5 // title | description | category | start | end
)

// ReadText parses pipe-delimited free text, one task per line.
//
// Each line is split on "|" and every segment trimmed. Four segments map to
// title, category, start and end. Five or more map to title, description,
// category, start and end; segments past the fifth are ignored. Lines with
// fewer than four segments are counted in SkippedLines and dropped. Blank
// lines are ignored.
//
// Text that is empty after trimming returns ErrEmptyInput.
func ReadText(ctx context.Context, text string) (ReadResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ReadResult{}, ErrEmptyInput
	}

	var result ReadResult
	for n, line := range strings.Split(text, "\n") {
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ReadResult{}, err
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		row, ok := textLineRow(line)
		if !ok {
			result.SkippedLines++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// textLineRow maps one line to a RawRow keyed by canonical field names.
func textLineRow(line string) (RawRow, bool) {
	parts := strings.Split(line, textSeparator)
	if len(parts) < textMinSegments {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < textFullLayout {
		return RawRow{
			FieldTitle:     parts[0],
			FieldCategory:  parts[1],
			FieldStartTime: parts[2],
			FieldEndTime:   parts[3],
		}, true
	}
	return RawRow{
		FieldTitle:       parts[0],
		FieldDescription: parts[1],
		FieldCategory:    parts[2],
		FieldStartTime:   parts[3],
		FieldEndTime:     parts[4],
	}, true
}
