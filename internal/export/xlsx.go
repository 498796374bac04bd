// Package export renders a stored StructuredHistory as an XLSX workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-builder/internal/types"
)

// Sheet names, in workbook order
const (
	SheetContact        = "Contact"
	SheetSkills         = "Skills"
	SheetEducation      = "Education"
	SheetCertifications = "Certifications"
	SheetJobHistory     = "Job History"
)

// sheet is one worksheet: a header row followed by data rows
type sheet struct {
	name    string
	headers []string
	rows    [][]any
	widths  []float64
}

// HistoryXLSX returns an XLSX workbook (as bytes) with one sheet per history field
func HistoryXLSX(h types.StructuredHistory) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := buildSheets(h)
	for i, s := range sheets {
		if i == 0 {
			// the default sheet becomes the first one
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, h := range s.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return fmt.Errorf("write %s header: %w", s.name, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
	_ = f.SetCellStyle(s.name, "A1", last, headerStyle)

	for r, row := range s.rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("write %s row %d: %w", s.name, r+1, err)
			}
		}
	}

	for i, w := range s.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(s.name, col, col, w)
	}
	return nil
}

func buildSheets(h types.StructuredHistory) []sheet {
	contact := sheet{
		name:    SheetContact,
		headers: []string{"Field", "Value"},
		rows:    [][]any{{"Full Name", h.ContactInformation.FullName}},
		widths:  []float64{14, 40},
	}
	for _, e := range h.ContactInformation.Email {
		contact.rows = append(contact.rows, []any{"Email", e})
	}
	for _, p := range h.ContactInformation.Phones {
		contact.rows = append(contact.rows, []any{"Phone", p})
	}

	skills := sheet{name: SheetSkills, headers: []string{"Skill"}, widths: []float64{32}}
	for _, s := range h.Skills {
		skills.rows = append(skills.rows, []any{s})
	}

	education := sheet{
		name:    SheetEducation,
		headers: []string{"School", "Degree", "Start", "End", "Grade"},
		widths:  []float64{36, 36, 10, 10, 10},
	}
	for _, e := range h.Education {
		education.rows = append(education.rows, []any{e.School, e.Degree, FormatMonthYear(e.StartDate), FormatMonthYear(e.EndDate), e.Grade})
	}

	certifications := sheet{
		name:    SheetCertifications,
		headers: []string{"Certification", "Issuer", "Issued", "Credential ID"},
		widths:  []float64{44, 30, 10, 20},
	}
	for _, c := range h.Certifications {
		certifications.rows = append(certifications.rows, []any{c.CertName, c.Issuer, FormatMonthYear(c.IssuedDate), c.CredentialID})
	}

	jobs := sheet{
		name:    SheetJobHistory,
		headers: []string{"Title", "Company", "Start", "End", "Description", "Accomplishments"},
		widths:  []float64{30, 28, 10, 10, 48, 60},
	}
	for _, j := range h.JobHistory {
		end := FormatMonthYear(j.EndDate)
		if j.CurrentlyWorking {
			end = "Present"
		}
		jobs.rows = append(jobs.rows, []any{j.Title, j.Company, FormatMonthYear(j.StartDate), end, j.JobDescription, strings.Join(j.Accomplishments, "\n")})
	}

	return []sheet{contact, skills, education, certifications, jobs}
}

// FormatMonthYear renders a date as "MM/YYYY", "YYYY" or "" depending on which parts are known
func FormatMonthYear(m types.MonthYear) string {
	switch {
	case m.Year == "":
		return ""
	case m.Month == "":
		return m.Year
	default:
		return m.Month + "/" + m.Year
	}
}
