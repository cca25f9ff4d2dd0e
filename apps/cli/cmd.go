package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	todayFunc        = func() string { return time.Now().Format(core.DateLayout) }

	errHelp         = errors.New("help provided")
	errNotConfirmed = errors.New("not confirmed, pass -yes to proceed")
)

type commandLine struct {
	svc *register.Service
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  register -name NAME                          - register a teacher (password prompted) and log in")
	fmt.Fprintln(cli.out, "  login -name NAME                             - log in (password prompted)")
	fmt.Fprintln(cli.out, "  logout                                       - log out")
	fmt.Fprintln(cli.out, "  whoami                                       - show the session teacher and class")
	fmt.Fprintln(cli.out, "  teachers                                     - list registered teachers")
	fmt.Fprintln(cli.out, "  class create -career C -subject S -section P - create a class and make it active")
	fmt.Fprintln(cli.out, "  class select [-id ID]                        - make a class active (no id clears it)")
	fmt.Fprintln(cli.out, "  class list                                   - list your classes")
	fmt.Fprintln(cli.out, "  student add -ru RU -ci CI -name N [-email E] - add a student to the active class")
	fmt.Fprintln(cli.out, "  student edit -ru RU [-newru] [-ci] [-name] [-email] - edit a student")
	fmt.Fprintln(cli.out, "  student delete -ru RU -yes                   - delete a student and their records")
	fmt.Fprintln(cli.out, "  student list                                 - list the roster")
	fmt.Fprintln(cli.out, "  student import -file ROSTER.xlsx             - add students from a workbook")
	fmt.Fprintln(cli.out, "  mark -ru RU -status presente|ausente [-date D] - mark one student")
	fmt.Fprintln(cli.out, "  markall [-date D]                            - mark every student present")
	fmt.Fprintln(cli.out, "  clearday [-date D] -yes                      - drop every mark of a date")
	fmt.Fprintln(cli.out, "  term [-term T] [-period P]                   - set the academic term fields")
	fmt.Fprintln(cli.out, "  show [-date D]                               - show attendance, dates and summary")
	fmt.Fprintln(cli.out, "  summary                                      - show the attendance summary")
	fmt.Fprintln(cli.out, "  export [-date D] [-xlsx] [-out DIR]          - write the attendance record file")
	fmt.Fprintln(cli.out, "  print [-date D] [-out DIR]                   - write a printable HTML page")
	fmt.Fprintln(cli.out, "Dates are YYYY-MM-DD and default to today.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()
	rest := args[2:]

	switch args[1] {
	case "register":
		return cli.registerTeacher(ctx, rest)
	case "login":
		return cli.login(ctx, rest)
	case "logout":
		return cli.svc.Logout(ctx)
	case "whoami":
		return cli.whoami()
	case "teachers":
		return cli.teachers()
	case "class":
		return cli.class(ctx, rest)
	case "student":
		return cli.student(ctx, rest)
	case "mark":
		return cli.mark(ctx, rest)
	case "markall":
		return cli.markAll(ctx, rest)
	case "clearday":
		return cli.clearDay(ctx, rest)
	case "term":
		return cli.term(ctx, rest)
	case "show":
		return cli.show(rest)
	case "summary":
		return cli.summary()
	case "export":
		return cli.export(rest)
	case "print":
		return cli.printPage(rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse maps flag.ErrHelp onto errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) readPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// dateFlag registers -date, defaulting to today.
func dateFlag(fs *flag.FlagSet) *string {
	return fs.String("date", todayFunc(), "The attendance date (YYYY-MM-DD).")
}
