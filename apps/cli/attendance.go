package main

import (
	"context"
	"fmt"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

func (cli *commandLine) mark(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("mark")
	date := dateFlag(fs)
	ru := fs.String("ru", "", "Registration number of the student.")
	status := fs.String("status", "", "presente or ausente.")
	if err := parse(fs, args); err != nil {
		return err
	}
	stu, err := cli.findStudent(fs, *ru)
	if err != nil {
		return err
	}
	rec, err := cli.svc.Mark(ctx, register.Mark{Date: *date, StudentID: stu.ID, Status: *status})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s %s: %s %s\n", *date, stu.Name, views.StatusLabel(rec.Status), rec.Time)
	return nil
}

func (cli *commandLine) markAll(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("markall")
	date := dateFlag(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	n, err := cli.svc.MarkAllPresent(ctx, *date)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %d presentes\n", *date, n)
	return nil
}

func (cli *commandLine) clearDay(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("clearday")
	date := dateFlag(fs)
	yes := fs.Bool("yes", false, "Confirm every mark of the date is dropped.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		return errNotConfirmed
	}
	cleared, err := cli.svc.ClearDay(ctx, *date)
	if err != nil {
		return err
	}
	if cleared {
		fmt.Fprintf(cli.out, "%s: asistencia eliminada\n", *date)
	}
	return nil
}

func (cli *commandLine) term(ctx context.Context, args []string) error {
	var current register.Term
	cli.svc.Read(func(st *register.State) { current = st.Term() })

	fs := cli.newFlagSet("term")
	academicTerm := fs.String("term", current.AcademicTerm, "Academic term label.")
	period := fs.String("period", current.Period, "Period.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.svc.SetTerm(ctx, register.Term{AcademicTerm: *academicTerm, Period: *period})
}

func (cli *commandLine) show(args []string) error {
	fs := cli.newFlagSet("show")
	date := dateFlag(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	page, err := cli.page(*date)
	if err != nil {
		return err
	}
	return views.RenderText(cli.out, page)
}

func (cli *commandLine) summary() error {
	page, err := cli.page("")
	if err != nil {
		return err
	}
	return views.RenderSummary(cli.out, page)
}

// page builds the main screen; logged out users only get the teacher list.
func (cli *commandLine) page(date string) (views.Page, error) {
	var (
		page     views.Page
		loggedIn bool
	)
	cli.svc.Read(func(st *register.State) {
		_, loggedIn = st.CurrentTeacher()
		page = views.Build(st, date)
	})
	if !loggedIn {
		return views.Page{}, register.ErrNotLoggedIn
	}
	return page, nil
}
