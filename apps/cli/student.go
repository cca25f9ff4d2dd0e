package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/export"
	"github.com/trezcool/asistencia/views"
)

func (cli *commandLine) student(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	switch args[0] {
	case "add":
		fs := cli.newFlagSet("student add")
		ru := fs.String("ru", "", "Registration number (unique in the class).")
		ci := fs.String("ci", "", "National ID.")
		name := fs.String("name", "", "Full name.")
		email := fs.String("email", "", "Email (optional).")
		if err := parse(fs, args[1:]); err != nil {
			return err
		}
		stu, err := cli.svc.AddStudent(ctx, register.NewStudent{RegistrationNumber: *ru, NationalID: *ci, Name: *name, Email: *email})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Estudiante agregado: %s %s\n", stu.RegistrationNumber, stu.Name)
		return nil
	case "edit":
		return cli.editStudent(ctx, args[1:])
	case "delete":
		fs := cli.newFlagSet("student delete")
		ru := fs.String("ru", "", "Registration number of the student.")
		yes := fs.Bool("yes", false, "Confirm the student and all their records are deleted.")
		if err := parse(fs, args[1:]); err != nil {
			return err
		}
		stu, err := cli.findStudent(fs, *ru)
		if err != nil {
			return err
		}
		if !*yes {
			return errNotConfirmed
		}
		return cli.svc.DeleteStudent(ctx, stu.ID)
	case "list":
		var rows []views.AttendanceRow
		var err error
		cli.svc.Read(func(st *register.State) {
			cls, ok := st.CurrentClass()
			if !ok {
				err = register.ErrNoClass
				return
			}
			rows = views.AttendanceRows(st, cls.ID, "")
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(cli.out, views.MsgNoStudents)
			return nil
		}
		for _, r := range rows {
			fmt.Fprintf(cli.out, "%d\t%s\t%s\t%s\t%s\n", r.Index, r.RegistrationNumber, r.NationalID, r.Name, r.Email)
		}
		return nil
	case "import":
		fs := cli.newFlagSet("student import")
		path := fs.String("file", "", "Workbook with RU, CI, name and email columns; row 1 is a header.")
		if err := parse(fs, args[1:]); err != nil {
			return err
		}
		if *path == "" {
			fs.Usage()
			return errHelp
		}
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		rows, err := export.ReadRoster(f)
		if err != nil {
			return err
		}
		res, err := cli.svc.ImportStudents(ctx, rows, export.RosterFirstRow)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Importados: %d, omitidos: %d\n", len(res.Added), len(res.Skipped))
		for _, s := range res.Skipped {
			fmt.Fprintf(cli.out, "  fila %d: %s\n", s.Row, s.Error)
		}
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// editStudent sends every field at once; flags left out keep the current value.
func (cli *commandLine) editStudent(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("student edit")
	ru := fs.String("ru", "", "Current registration number of the student.")
	newRU := fs.String("newru", "", "New registration number.")
	ci := fs.String("ci", "", "New national ID.")
	name := fs.String("name", "", "New full name.")
	email := fs.String("email", "", "New email; pass an empty value to clear it.")
	if err := parse(fs, args); err != nil {
		return err
	}
	stu, err := cli.findStudent(fs, *ru)
	if err != nil {
		return err
	}

	upd := register.UpdateStudent{
		RegistrationNumber: stu.RegistrationNumber,
		NationalID:         stu.NationalID,
		Name:               stu.Name,
		Email:              stu.Email,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "newru":
			upd.RegistrationNumber = *newRU
		case "ci":
			upd.NationalID = *ci
		case "name":
			upd.Name = *name
		case "email":
			upd.Email = *email
		}
	})
	stu, err = cli.svc.UpdateStudent(ctx, stu.ID, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Estudiante actualizado: %s %s\n", stu.RegistrationNumber, stu.Name)
	return nil
}

// findStudent looks a student of the active class up by registration number (case-insensitive).
func (cli *commandLine) findStudent(fs *flag.FlagSet, ru string) (register.Student, error) {
	ru = strings.TrimSpace(ru)
	if ru == "" {
		fs.Usage()
		return register.Student{}, errHelp
	}
	var (
		found register.Student
		err   error
	)
	cli.svc.Read(func(st *register.State) {
		cls, ok := st.CurrentClass()
		if !ok {
			err = register.ErrNoClass
			return
		}
		for _, stu := range st.Roster(cls.ID) {
			if strings.EqualFold(stu.RegistrationNumber, ru) {
				found = stu
				return
			}
		}
		err = errors.Wrapf(register.ErrStudentNotFound, "RU %s", ru)
	})
	return found, err
}
