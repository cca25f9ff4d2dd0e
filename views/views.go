package views

import "github.com/trezcool/asistencia/core/register"

// empty-state messages
const (
	MsgNoTeachers    = "No hay docentes registrados aún."
	MsgNoClass       = "No hay clase activa. Cree o seleccione una clase."
	MsgNoStudents    = "No hay estudiantes registrados en la clase activa."
	MsgNoDates       = "Sin fechas registradas aún."
	MsgNoSummary     = "No hay clase activa para calcular el resumen."
	MsgEmptySummary  = "No hay registros de asistencia para calcular el resumen."
	placeholderEmail = "—"
	placeholderTime  = "-"
)

type (
	Header struct {
		Teacher      string `json:"teacher"`
		Class        string `json:"class"`
		AcademicTerm string `json:"academicTerm"`
		Period       string `json:"period"`
		Date         string `json:"date"`
	}

	ClassOption struct {
		ID       string `json:"id"`
		Label    string `json:"label"`
		Selected bool   `json:"selected"`
	}

	AttendanceRow struct {
		Index              int    `json:"index"`
		StudentID          string `json:"studentId"`
		RegistrationNumber string `json:"registrationNumber"`
		NationalID         string `json:"nationalId"`
		Name               string `json:"name"`
		Email              string `json:"email"`
		Status             string `json:"status"`
		StatusLabel        string `json:"statusLabel"`
		Time               string `json:"time"`
	}

	DateChip struct {
		Date   string `json:"date"`
		Active bool   `json:"active"`
	}

	SummaryRow struct {
		Index              int    `json:"index"`
		RegistrationNumber string `json:"registrationNumber"`
		NationalID         string `json:"nationalId"`
		Name               string `json:"name"`
		Present            int    `json:"present"`
		Absent             int    `json:"absent"`
		Percentage         string `json:"percentage"`
	}

	// Page is everything the main screen shows for one date.
	Page struct {
		Header       Header            `json:"header"`
		Classes      []ClassOption     `json:"classes"`
		Rows         []AttendanceRow   `json:"rows"`
		Stats        register.DayStats `json:"stats"`
		Dates        []DateChip        `json:"dates"`
		Summary      []SummaryRow      `json:"summary"`
		Empty        string            `json:"empty,omitempty"`
		EmptyDates   string            `json:"emptyDates,omitempty"`
		EmptySummary string            `json:"emptySummary,omitempty"`
	}
)

// Build projects st onto the main screen for date.
func Build(st *register.State, date string) Page {
	p := Page{
		Classes: ClassOptions(st),
		Rows:    []AttendanceRow{},
		Dates:   []DateChip{},
		Summary: []SummaryRow{},
	}

	term := st.Term()
	p.Header = Header{AcademicTerm: term.AcademicTerm, Period: term.Period, Date: date}
	if t, ok := st.CurrentTeacher(); ok {
		p.Header.Teacher = t.Name
	}

	cls, ok := st.CurrentClass()
	if !ok {
		p.Empty = MsgNoClass
		p.EmptyDates = MsgNoDates
		p.EmptySummary = MsgNoSummary
		return p
	}
	p.Header.Class = cls.Label()

	p.Rows = AttendanceRows(st, cls.ID, date)
	if len(p.Rows) == 0 {
		p.Empty = MsgNoStudents
	}
	p.Stats = st.DayStats(cls.ID, date)

	p.Dates = DateChips(st, cls.ID, date)
	if len(p.Dates) == 0 {
		p.EmptyDates = MsgNoDates
	}

	p.Summary = SummaryRows(st, cls.ID)
	if len(p.Summary) == 0 {
		p.EmptySummary = MsgEmptySummary
	}
	return p
}

// TeacherNames lists registered teachers for the login screen.
func TeacherNames(st *register.State) []string {
	teachers := st.Teachers()
	names := make([]string, 0, len(teachers))
	for _, t := range teachers {
		names = append(names, t.Name)
	}
	return names
}

// ClassOptions lists the current teacher's classes; empty when logged out.
func ClassOptions(st *register.State) []ClassOption {
	t, ok := st.CurrentTeacher()
	if !ok {
		return []ClassOption{}
	}
	active, _ := st.CurrentClass()
	classes := st.Classes(t.ID)
	opts := make([]ClassOption, 0, len(classes))
	for _, c := range classes {
		opts = append(opts, ClassOption{ID: c.ID, Label: c.Label(), Selected: c.ID == active.ID})
	}
	return opts
}

func AttendanceRows(st *register.State, classID, date string) []AttendanceRow {
	recs := st.Attendance(classID, date)
	roster := st.Roster(classID)
	rows := make([]AttendanceRow, 0, len(roster))
	for i, stu := range roster {
		rec := recs[stu.ID]
		row := AttendanceRow{
			Index:              i + 1,
			StudentID:          stu.ID,
			RegistrationNumber: stu.RegistrationNumber,
			NationalID:         stu.NationalID,
			Name:               stu.Name,
			Email:              orDefault(stu.Email, placeholderEmail),
			Status:             orDefault(rec.Status, register.StatusUnmarked),
			Time:               orDefault(rec.Time, placeholderTime),
		}
		row.StatusLabel = StatusLabel(row.Status)
		rows = append(rows, row)
	}
	return rows
}

func DateChips(st *register.State, classID, active string) []DateChip {
	dates := st.Dates(classID)
	chips := make([]DateChip, 0, len(dates))
	for _, d := range dates {
		chips = append(chips, DateChip{Date: d, Active: d == active})
	}
	return chips
}

// SummaryRows is empty until the class has both students and dates.
func SummaryRows(st *register.State, classID string) []SummaryRow {
	if len(st.Dates(classID)) == 0 {
		return []SummaryRow{}
	}
	sums := st.Summary(classID)
	rows := make([]SummaryRow, 0, len(sums))
	for i, s := range sums {
		rows = append(rows, SummaryRow{
			Index:              i + 1,
			RegistrationNumber: s.Student.RegistrationNumber,
			NationalID:         s.Student.NationalID,
			Name:               s.Student.Name,
			Present:            s.Present,
			Absent:             s.Absent,
			Percentage:         s.Percentage,
		})
	}
	return rows
}

func StatusLabel(status string) string {
	switch status {
	case register.StatusPresent:
		return "Presente"
	case register.StatusAbsent:
		return "Ausente"
	default:
		return "Sin marcar"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (r SummaryRow) PercentageLabel() string { return r.Percentage + " %" }

func (s DateChip) String() string {
	if s.Active {
		return "[" + s.Date + "]"
	}
	return s.Date
}
