package export

import "strings"

// CSV renders the sheet: the metadata preamble, a blank line, the header and one line per student.
// Free-text fields are quoted, date/status/time are not; lines are joined with "\n".
func CSV(sh Sheet) string {
	lines := make([]string, 0, 10+len(sh.Rows))
	for _, kv := range sh.preamble() {
		lines = append(lines, kv[0]+","+kv[1])
	}
	lines = append(lines, "", strings.Join(header, ","))

	for _, r := range sh.Rows {
		lines = append(lines, strings.Join([]string{
			sh.Date,
			quote(sh.Teacher),
			quote(sh.Class.Career),
			quote(sh.Class.Subject),
			quote(sh.Class.Section),
			quote(sh.AcademicTerm),
			quote(sh.Period),
			quote(r.Student.RegistrationNumber),
			quote(r.Student.NationalID),
			quote(r.Student.Name),
			quote(r.Student.Email),
			r.Record.Status,
			r.Record.Time,
		}, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
