package export

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	attendanceSheet = "Asistencia"
	summarySheet    = "Resumen"
)

var summaryHeader = []string{"#", "RU", "CI", "Nombre", "Presentes", "Ausentes", "% Asistencia"}

// XLSX builds a workbook with the attendance sheet (same layout as CSV) and the summary sheet.
// The caller closes the returned file.
func XLSX(sh Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return nil, errors.Wrap(err, "renaming default sheet")
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, errors.Wrap(err, "creating summary sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}

	// attendance: preamble, blank row, header, rows
	rows := make([][]string, 0, 10+len(sh.Rows))
	for _, kv := range sh.preamble() {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	rows = append(rows, nil, header)
	headerRow := len(rows)
	for _, r := range sh.Rows {
		rows = append(rows, []string{
			sh.Date, sh.Teacher, sh.Class.Career, sh.Class.Subject, sh.Class.Section,
			sh.AcademicTerm, sh.Period,
			r.Student.RegistrationNumber, r.Student.NationalID, r.Student.Name, r.Student.Email,
			r.Record.Status, r.Record.Time,
		})
	}
	if err := writeRows(f, attendanceSheet, rows); err != nil {
		return nil, err
	}
	if err := formatHeader(f, attendanceSheet, headerRow, len(header), bold); err != nil {
		return nil, err
	}
	// preamble labels
	if err := f.SetCellStyle(attendanceSheet, "A1", "A8", bold); err != nil {
		return nil, errors.Wrap(err, "styling preamble")
	}

	// summary
	sumRows := [][]string{summaryHeader}
	for i, s := range sh.Summary {
		sumRows = append(sumRows, []string{
			strconv.Itoa(i + 1), s.Student.RegistrationNumber, s.Student.NationalID, s.Student.Name,
			strconv.Itoa(s.Present), strconv.Itoa(s.Absent), s.Percentage,
		})
	}
	if err := writeRows(f, summarySheet, sumRows); err != nil {
		return nil, err
	}
	if err := formatHeader(f, summarySheet, 1, len(summaryHeader), bold); err != nil {
		return nil, err
	}

	autoWidth(f, attendanceSheet, rows)
	autoWidth(f, summarySheet, sumRows)
	return f, nil
}

// WriteXLSX streams the workbook of sh to w.
func WriteXLSX(w io.Writer, sh Sheet) error {
	f, err := XLSX(sh)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.Wrap(err, "resolving cell")
			}
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return errors.Wrapf(err, "setting cell %s!%s", sheet, cell)
			}
		}
	}
	return nil
}

// formatHeader makes the header row bold and puts an auto filter on it.
func formatHeader(f *excelize.File, sheet string, row, cols int, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "resolving header cell")
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return errors.Wrap(err, "resolving header cell")
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return errors.Wrap(err, "styling header")
	}
	if err := f.AutoFilter(sheet, first+":"+last, nil); err != nil {
		return errors.Wrap(err, "setting auto filter")
	}
	return nil
}

// autoWidth sizes columns from their longest value, between 10 and 50.
func autoWidth(f *excelize.File, sheet string, rows [][]string) {
	var widths []float64
	for _, row := range rows {
		for c, val := range row {
			for len(widths) <= c {
				widths = append(widths, 10)
			}
			if w := float64(len([]rune(val))) * 1.1; w > widths[c] {
				if w > 50 {
					w = 50
				}
				widths[c] = w
			}
		}
	}
	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, w)
	}
}
