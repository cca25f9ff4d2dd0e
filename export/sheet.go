package export

import (
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
)

var (
	ErrNoTeacher = errors.New("no teacher logged in")
	ErrNoClass   = errors.New("no class selected")
	ErrNoDate    = errors.New("no valid date selected")
)

type (
	// Sheet is the attendance record of the active class on one date, as exported.
	Sheet struct {
		Institution  string
		Faculty      string
		AcademicTerm string
		Period       string
		Teacher      string
		Class        register.Class
		Date         string
		Rows         []Row
		Summary      []register.StudentSummary
	}

	// Row is one rostered student. Record is zero when the student was not marked.
	Row struct {
		Student register.Student
		Record  register.Record
	}
)

// NewSheet collects the active class of st on date, in roster order.
func NewSheet(st *register.State, date string) (Sheet, error) {
	t, ok := st.CurrentTeacher()
	if !ok {
		return Sheet{}, ErrNoTeacher
	}
	cls, ok := st.CurrentClass()
	if !ok {
		return Sheet{}, ErrNoClass
	}
	date = core.CleanString(date)
	if !core.ValidDate(date) {
		return Sheet{}, ErrNoDate
	}

	term := st.Term()
	sh := Sheet{
		Institution:  core.Conf.GetString("institution"),
		Faculty:      core.Conf.GetString("faculty"),
		AcademicTerm: term.AcademicTerm,
		Period:       term.Period,
		Teacher:      t.Name,
		Class:        cls,
		Date:         date,
	}
	recs := st.Attendance(cls.ID, date)
	for _, stu := range st.Roster(cls.ID) {
		sh.Rows = append(sh.Rows, Row{Student: stu, Record: recs[stu.ID]})
	}
	sh.Summary = st.Summary(cls.ID)
	return sh, nil
}

// preamble is the metadata block above the table, as label/value pairs.
func (sh Sheet) preamble() [][2]string {
	return [][2]string{
		{"Universidad", sh.Institution},
		{"Facultad", sh.Faculty},
		{"Gestión académica", sh.AcademicTerm},
		{"Período", sh.Period},
		{"Docente", sh.Teacher},
		{"Carrera / Nivel", sh.Class.Career},
		{"Asignatura", sh.Class.Subject},
		{"Paralelo / Grupo", sh.Class.Section},
	}
}

var header = []string{
	"Fecha", "Docente", "Carrera/Nivel", "Asignatura", "Paralelo", "Gestión", "Período",
	"RU", "CI", "Nombre", "Correo", "Estado", "Hora",
}
