package core

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateFileName is the suggested download name for the import template.
const TemplateFileName = "task_template.xlsx"

// TemplateSheetName is the worksheet holding template rows.
const TemplateSheetName = "Tasks"

// TemplateColumns are the header cells of the import template.
var TemplateColumns = []string{FieldTitle, FieldDescription, FieldCategory, FieldStartTime, FieldEndTime}

// TemplateRows are the sample tasks shipped in the template.
var TemplateRows = []TaskDraft{
	{
		Title:       "Sample Task 1",
		Description: "This is a sample task description",
		Category:    CategoryWork,
		StartTime:   "09:00",
		EndTime:     "10:00",
	},
	{
		Title:       "Sample Task 2",
		Description: "Another sample task",
		Category:    CategoryPersonal,
		StartTime:   "14:00",
		EndTime:     "15:30",
	},
}

// TemplateWorkbook builds the xlsx import template. Time cells are stored as
// text so they read back as HH:MM.
func TemplateWorkbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(TemplateColumns))
	for i, c := range TemplateColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(TemplateSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, d := range TemplateRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{d.Title, d.Description, string(d.Category), d.StartTime, d.EndTime}
		if err := f.SetSheetRow(TemplateSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
