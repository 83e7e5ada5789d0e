package core

// validation.go converts RawRows into TaskDrafts.
//
// Validation is pure and total: every row either yields a draft or a
// ValidationError naming the first field that failed. Column names are
// resolved through a fixed synonym table so spreadsheets exported by
// different tools (camelCase, snake_case, "Title Case") map to the same
// logical field.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Logical field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Logical field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldStartTime   = "startTime"
	FieldEndTime     = "endTime"
)

// fieldSynonyms lists accepted column names per logical field, in precedence
// order. The first synonym holding a non-empty value wins.
var fieldSynonyms = map[string][]string{
	FieldTitle:       {"title", "Title"},
	FieldDescription: {"description", "Description"},
	FieldCategory:    {"category", "Category"},
	FieldStartTime:   {"startTime", "start_time", "Start Time"},
	FieldEndTime:     {"endTime", "end_time", "End Time"},
}

// FieldSynonyms returns the accepted column names for a logical field.
func FieldSynonyms(field string) []string {
	return append([]string(nil), fieldSynonyms[field]...)
}

// timeOfDay matches a zero-padded 24-hour HH:MM value.
var timeOfDay = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// IsTimeOfDay reports whether s is a strict HH:MM time of day.
func IsTimeOfDay(s string) bool {
	return timeOfDay.MatchString(s)
}

// lookup returns the first non-empty value among the field's synonyms.
func (r RawRow) lookup(field string) (any, bool) {
	for _, key := range fieldSynonyms[field] {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Lookup returns the trimmed string value of a logical field.
func (r RawRow) Lookup(field string) string {
	v, ok := r.lookup(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

// stringify coerces a scalar cell value to its string form.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ValidateRow converts one RawRow into a TaskDraft.
//
// A row is rejected when the title is missing, not a string, or blank after
// trimming; when either time is missing or not a strict HH:MM value; or when
// the end time is not strictly after the start time. Unknown categories fall
// back to DefaultCategory rather than rejecting the row.
func ValidateRow(row RawRow) (TaskDraft, error) {
	rawTitle, ok := row.lookup(FieldTitle)
	if !ok {
		return TaskDraft{}, ValidationError{Field: FieldTitle, Message: "required field is missing"}
	}
	title, isStr := rawTitle.(string)
	if !isStr {
		return TaskDraft{}, ValidationError{
			Field:   FieldTitle,
			Value:   stringify(rawTitle),
			Message: "must be text",
		}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return TaskDraft{}, ValidationError{Field: FieldTitle, Message: "required field is empty"}
	}

	start, err := timeField(row, FieldStartTime)
	if err != nil {
		return TaskDraft{}, err
	}
	end, err := timeField(row, FieldEndTime)
	if err != nil {
		return TaskDraft{}, err
	}

	if !endsAfter(start, end) {
		return TaskDraft{}, ValidationError{
			Field:   FieldEndTime,
			Value:   end,
			Message: fmt.Sprintf("must be after start time %s", start),
		}
	}

	return TaskDraft{
		Title:       title,
		Description: row.Lookup(FieldDescription),
		Category:    NormalizeCategory(row.Lookup(FieldCategory)),
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func timeField(row RawRow, field string) (string, error) {
	v, ok := row.lookup(field)
	if !ok {
		return "", ValidationError{Field: field, Message: "required field is missing"}
	}
	s := stringify(v)
	if !IsTimeOfDay(s) {
		return "", ValidationError{Field: field, Value: s, Message: "expected time as HH:MM (24-hour)"}
	}
	return s, nil
}

// endsAfter compares two HH:MM values on the same reference day.
func endsAfter(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return e.After(s)
}

// ValidateRows runs ValidateRow over rows, returning accepted drafts in input
// order along with a report of how many were rejected.
func ValidateRows(rows []RawRow) ([]TaskDraft, ImportReport) {
	report := ImportReport{TotalRows: len(rows)}
	drafts := make([]TaskDraft, 0, len(rows))
	for _, row := range rows {
		draft, err := ValidateRow(row)
		if err != nil {
			report.Rejected++
			continue
		}
		drafts = append(drafts, draft)
	}
	report.Accepted = len(drafts)
	return drafts, report
}
