package export

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/asistencia/core/register"
)

// RosterFirstRow is the sheet row of the first student returned by ReadRoster.
const RosterFirstRow = 2

var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// ReadRoster reads students from the first sheet of an XLSX workbook.
// Row 1 is a header; columns are RU, CI, name and email (optional).
// Blank rows are kept as empty students so that row numbers stay aligned.
func ReadRoster(r io.Reader) ([]register.NewStudent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	var students []register.NewStudent
	for i, row := range rows {
		if i < RosterFirstRow-1 {
			continue // header
		}
		students = append(students, register.NewStudent{
			RegistrationNumber: cell(row, 0),
			NationalID:         cell(row, 1),
			Name:               cell(row, 2),
			Email:              cell(row, 3),
		})
	}
	// GetRows drops trailing empty rows already; drop blank ones at the end anyway
	for len(students) > 0 && students[len(students)-1] == (register.NewStudent{}) {
		students = students[:len(students)-1]
	}
	return students, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
