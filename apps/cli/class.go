package main

import (
	"context"
	"fmt"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

func (cli *commandLine) class(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	switch args[0] {
	case "create":
		fs := cli.newFlagSet("class create")
		career := fs.String("career", "", "Career / level.")
		subject := fs.String("subject", "", "Subject.")
		section := fs.String("section", "", "Section / group.")
		if err := parse(fs, args[1:]); err != nil {
			return err
		}
		cls, created, err := cli.svc.CreateClass(ctx, register.NewClass{Career: *career, Subject: *subject, Section: *section})
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cli.out, "Clase creada: %s (%s)\n", cls.Label(), cls.ID)
		}
		return nil
	case "select":
		fs := cli.newFlagSet("class select")
		id := fs.String("id", "", "The class id; empty clears the active class.")
		if err := parse(fs, args[1:]); err != nil {
			return err
		}
		return cli.svc.SelectClass(ctx, *id)
	case "list":
		var opts []views.ClassOption
		var loggedIn bool
		cli.svc.Read(func(st *register.State) {
			_, loggedIn = st.CurrentTeacher()
			opts = views.ClassOptions(st)
		})
		if !loggedIn {
			return register.ErrNotLoggedIn
		}
		return views.RenderClasses(cli.out, opts)
	default:
		cli.printUsage()
		return errHelp
	}
}
