package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/asistencia/core/register"
	testutil "github.com/trezcool/asistencia/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	svc, _ := testutil.NewService(t, nil)
	todayFunc = func() string { return "2024-03-01" }
	readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }

	out := new(bytes.Buffer)
	return &commandLine{svc: svc, out: out}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()

	for _, tt := range tests {
		args := append([]string{"asistencia"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(password); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

type password struct{ pwd string }

func Test_commandLine_session(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "register: no args", args: []string{"register"}, wantErr: errHelp},
		{name: "register: no password", args: []string{"register", "-name", "Ana"}, wantErr: errHelp},
		{name: "register", args: []string{"register", "-name", "Ana"}, extra: password{pwd: "pw1"}},
		{name: "register: duplicate name", args: []string{"register", "-name", "ana"}, extra: password{pwd: "x"}, wantErr: register.ErrTeacherExists},
		{name: "logout", args: []string{"logout"}},
		{name: "login: unknown teacher", args: []string{"login", "-name", "Bob"}, extra: password{pwd: "pw1"}, wantErr: register.ErrTeacherNotFound},
		{name: "login: wrong password", args: []string{"login", "-name", "Ana"}, extra: password{pwd: "nope"}, wantErr: register.ErrWrongPassword},
		{name: "login: case-insensitive name", args: []string{"login", "-name", "ANA"}, extra: password{pwd: "pw1"}},
		{name: "teachers", args: []string{"teachers"}},
		{name: "whoami", args: []string{"whoami"}},
		{name: "logout", args: []string{"logout"}},
		{name: "whoami: no session", args: []string{"whoami"}, wantErr: register.ErrNotLoggedIn},
	}
	runCLITests(t, cli, tests)

	assert.Contains(t, out.String(), "Docente registrado correctamente: Ana")
	assert.Contains(t, out.String(), "Sesión: Ana")
	assert.Contains(t, out.String(), "Docente: Ana")
}

func Test_commandLine_attendance(t *testing.T) {
	cli, out := setup(t)
	dir := t.TempDir()

	tests := []cliTest{
		{name: "class list: logged out", args: []string{"class", "list"}, wantErr: register.ErrNotLoggedIn},
		{name: "register", args: []string{"register", "-name", "Ana"}, extra: password{pwd: "pw1"}},
		{name: "student add: no class", args: []string{"student", "add", "-ru", "001", "-ci", "123", "-name", "Luis"}, wantErr: register.ErrNoClass},
		{name: "class create", args: []string{"class", "create", "-career", "Sistemas", "-subject", "BD", "-section", "A"}},
		{name: "class select: unknown", args: []string{"class", "select", "-id", "clase_x"}, wantErr: register.ErrClassNotFound},
		{name: "student add: missing name", args: []string{"student", "add", "-ru", "001", "-ci", "123"}, wantErrStr: "name"},
		{name: "student add", args: []string{"student", "add", "-ru", "001", "-ci", "123", "-name", "Luis"}},
		{name: "student add: duplicate ru", args: []string{"student", "add", "-ru", "001", "-ci", "9", "-name", "Eva"}, wantErr: register.ErrRegistrationExists},
		{name: "student add: second", args: []string{"student", "add", "-ru", "002", "-ci", "456", "-name", "Eva", "-email", "eva@unicen.edu"}},
		{name: "student edit", args: []string{"student", "edit", "-ru", "002", "-name", "Eva Paz"}},
		{name: "student edit: unknown ru", args: []string{"student", "edit", "-ru", "999", "-name", "X"}, wantErr: register.ErrStudentNotFound},
		{name: "mark: bad status", args: []string{"mark", "-ru", "001", "-status", "tarde"}, wantErrStr: "status"},
		{name: "mark: bad date", args: []string{"mark", "-ru", "001", "-status", "presente", "-date", "01/03/2024"}, wantErrStr: "date"},
		{name: "mark", args: []string{"mark", "-ru", "001", "-status", "presente"}},
		{name: "mark absent", args: []string{"mark", "-ru", "002", "-status", "ausente"}},
		{name: "markall", args: []string{"markall", "-date", "2024-03-02"}},
		{name: "term", args: []string{"term", "-term", "1/2024", "-period", "Primer Parcial"}},
		{name: "show", args: []string{"show"}},
		{name: "summary", args: []string{"summary"}},
		{name: "export", args: []string{"export", "-out", dir}},
		{name: "export xlsx", args: []string{"export", "-xlsx", "-out", dir}},
		{name: "print", args: []string{"print", "-out", dir}},
		{name: "clearday: not confirmed", args: []string{"clearday", "-date", "2024-03-02"}, wantErr: errNotConfirmed},
		{name: "clearday", args: []string{"clearday", "-date", "2024-03-02", "-yes"}},
		{name: "student delete: not confirmed", args: []string{"student", "delete", "-ru", "002"}, wantErr: errNotConfirmed},
		{name: "student delete", args: []string{"student", "delete", "-ru", "002", "-yes"}},
		{name: "student list", args: []string{"student", "list"}},
	}
	runCLITests(t, cli, tests)

	assert.Contains(t, out.String(), "Eva Paz")
	assert.Contains(t, out.String(), "[2024-03-01]")
	assert.Contains(t, out.String(), "2024-03-02: asistencia eliminada")

	base := "acta_asistencia_unicen_ana_sistemas_bd_a_2024-03-01"
	data, err := os.ReadFile(filepath.Join(dir, base+".csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `2024-03-01,"Ana","Sistemas","BD","A","1/2024","Primer Parcial","001","123","Luis","",presente,`)
	assert.Contains(t, string(data), `"002","456","Eva Paz","eva@unicen.edu",ausente,`)

	assert.FileExists(t, filepath.Join(dir, base+".xlsx"))
	assert.FileExists(t, filepath.Join(dir, base+".html"))
}

func Test_commandLine_missingRegistrationNumber(t *testing.T) {
	cli, out := setup(t)
	runCLITests(t, cli, []cliTest{
		{name: "register", args: []string{"register", "-name", "Ana"}, extra: password{pwd: "pw1"}},
		{name: "class create", args: []string{"class", "create", "-career", "Sistemas", "-subject", "BD", "-section", "A"}},
	})

	for _, args := range [][]string{
		{"mark", "-status", "presente"},
		{"student", "edit", "-name", "X"},
		{"student", "delete", "-yes"},
	} {
		out.Reset()
		err := cli.run(append([]string{"asistencia"}, args...))
		assert.Equal(t, errHelp, err)
		if !strings.Contains(out.String(), "-ru") {
			t.Errorf("%v: usage not printed, got %q", args, out.String())
		}
	}
}
