package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/asistencia/core/register"
	testutil "github.com/trezcool/asistencia/tests"
)

func newSheet(t *testing.T, svc *register.Service, date string) Sheet {
	var (
		sh  Sheet
		err error
	)
	svc.Read(func(st *register.State) { sh, err = NewSheet(st, date) })
	require.NoError(t, err)
	return sh
}

func TestCSV_markedStudent(t *testing.T) {
	svc, _ := testutil.NewService(t, nil)
	ctx := context.Background()

	testutil.CreateTeacher(t, svc, "Ana", "pw1")
	testutil.CreateClass(t, svc, "Sistemas", "BD", "A")
	luis := testutil.AddStudent(t, svc, "001", "123", "Luis", "")
	rec, err := svc.Mark(ctx, register.Mark{Date: "2024-03-01", StudentID: luis.ID, Status: register.StatusPresent})
	require.NoError(t, err)

	got := CSV(newSheet(t, svc, "2024-03-01"))
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 11)

	assert.Equal(t, []string{
		"Universidad,UNIVERSIDAD CENTRAL (UNICEN)",
		"Facultad,Facultad de Ciencias Empresariales",
		"Gestión académica,",
		"Período,",
		"Docente,Ana",
		"Carrera / Nivel,Sistemas",
		"Asignatura,BD",
		"Paralelo / Grupo,A",
		"",
		"Fecha,Docente,Carrera/Nivel,Asignatura,Paralelo,Gestión,Período,RU,CI,Nombre,Correo,Estado,Hora",
	}, lines[:10])
	assert.Equal(t, `2024-03-01,"Ana","Sistemas","BD","A","","","001","123","Luis","",presente,`+rec.Time, lines[10])
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, rec.Time)
}

func TestCSV_rows(t *testing.T) {
	sh := Sheet{
		Institution:  "U",
		Faculty:      "F",
		AcademicTerm: "2/2024",
		Period:       "Final",
		Teacher:      `Ana "la profe"`,
		Class:        register.Class{Career: "Sistemas", Subject: "BD, avanzada", Section: "A"},
		Date:         "2024-03-01",
		Rows: []Row{
			{Student: register.Student{RegistrationNumber: "001", NationalID: "1", Name: "Luis"}},
			{
				Student: register.Student{RegistrationNumber: "002", NationalID: "2", Name: "Eva", Email: "e@u.edu"},
				Record:  register.Record{Status: register.StatusAbsent},
			},
		},
	}
	lines := strings.Split(CSV(sh), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, `Docente,Ana "la profe"`, lines[4])
	assert.Equal(t, `2024-03-01,"Ana ""la profe""","Sistemas","BD, avanzada","A","2/2024","Final","001","1","Luis","",,`, lines[10])
	assert.Equal(t, `2024-03-01,"Ana ""la profe""","Sistemas","BD, avanzada","A","2/2024","Final","002","2","Eva","e@u.edu",ausente,`, lines[11])
	assert.False(t, strings.HasSuffix(CSV(sh), "\n"))
}

func TestNewSheet_errors(t *testing.T) {
	svc, _ := testutil.NewService(t, nil)

	check := func(date string, want error) {
		t.Helper()
		var err error
		svc.Read(func(st *register.State) { _, err = NewSheet(st, date) })
		assert.Equal(t, want, err)
	}

	check("2024-03-01", ErrNoTeacher)
	testutil.CreateTeacher(t, svc, "Ana", "pw1")
	check("2024-03-01", ErrNoClass)
	testutil.CreateClass(t, svc, "Sistemas", "BD", "A")
	check("", ErrNoDate)
	check("2024-02-31", ErrNoDate)
	check("2024-03-01", nil)
}
