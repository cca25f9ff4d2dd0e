package main

import (
	"context"
	"fmt"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

func (cli *commandLine) registerTeacher(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("register")
	name := fs.String("name", "", "The teacher's name. The password will be prompted next.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}
	t, err := cli.svc.RegisterTeacher(ctx, register.NewTeacher{Name: *name, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Docente registrado correctamente: %s\n", t.Name)
	return nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("login")
	name := fs.String("name", "", "The teacher's name. The password will be prompted next.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}
	t, err := cli.svc.Login(ctx, register.Credentials{Name: *name, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Sesión iniciada: %s\n", t.Name)
	return nil
}

func (cli *commandLine) teachers() error {
	var names []string
	var current register.Teacher
	cli.svc.Read(func(st *register.State) {
		names = views.TeacherNames(st)
		current, _ = st.CurrentTeacher()
	})
	if err := views.RenderTeachers(cli.out, names); err != nil {
		return err
	}
	if current.ID != "" {
		fmt.Fprintf(cli.out, "Sesión: %s\n", current.Name)
	}
	return nil
}

func (cli *commandLine) whoami() error {
	var (
		t        register.Teacher
		cls      register.Class
		loggedIn bool
		active   bool
	)
	cli.svc.Read(func(st *register.State) {
		t, loggedIn = st.CurrentTeacher()
		cls, active = st.CurrentClass()
	})
	if !loggedIn {
		return register.ErrNotLoggedIn
	}
	fmt.Fprintf(cli.out, "Docente: %s\n", t.Name)
	if active {
		fmt.Fprintf(cli.out, "Clase: %s\n", cls.Label())
	} else {
		fmt.Fprintln(cli.out, views.MsgNoClass)
	}
	return nil
}
