package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
)

// GradebookSheet is the worksheet name used by WriteGradebookXLSX.
const GradebookSheet = "Notas"

// GradebookFileName builds the download name for a class gradebook.
func GradebookFileName(report dto.GradebookResponse) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '-' || r == '/':
			return '_'
		case r == '"' || r == '\\':
			return -1
		}
		return r
	}, report.ClassName)
	return fmt.Sprintf("notas_%s.xlsx", name)
}

// WriteGradebookXLSX renders the report as a spreadsheet: one header row with the
// assessment short names and one row per student with raw scores and the average.
func WriteGradebookXLSX(w io.Writer, report dto.GradebookResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", GradebookSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Nº", "Aluno", "Matrícula"}
	for _, assessment := range report.Assessments {
		headers = append(headers, assessment.Short)
	}
	headers = append(headers, "Média")

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(GradebookSheet, cell, header); err != nil {
			return err
		}
	}

	for r, row := range report.Rows {
		values := []interface{}{row.Index, row.Name, row.RegistrationNumber}
		for _, assessment := range report.Assessments {
			values = append(values, row.Scores[assessment.ID])
		}
		values = append(values, row.Average)

		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(GradebookSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write gradebook: %w", err)
	}
	return nil
}
