package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/export"
	"github.com/trezcool/asistencia/views"
)

func (cli *commandLine) sheet(date string) (export.Sheet, error) {
	var (
		sh  export.Sheet
		err error
	)
	cli.svc.Read(func(st *register.State) { sh, err = export.NewSheet(st, date) })
	return sh, err
}

func (cli *commandLine) export(args []string) error {
	fs := cli.newFlagSet("export")
	date := dateFlag(fs)
	xlsx := fs.Bool("xlsx", false, "Write an Excel workbook instead of CSV.")
	dir := fs.String("out", ".", "Output directory.")
	if err := parse(fs, args); err != nil {
		return err
	}
	sh, err := cli.sheet(*date)
	if err != nil {
		return err
	}

	var path string
	if *xlsx {
		path = filepath.Join(*dir, export.Filename(sh, "xlsx"))
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating export file")
		}
		if err := export.WriteXLSX(f, sh); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "closing export file")
		}
	} else {
		path = filepath.Join(*dir, export.Filename(sh, "csv"))
		if err := os.WriteFile(path, []byte(export.CSV(sh)), 0o644); err != nil {
			return errors.Wrap(err, "writing export file")
		}
	}
	fmt.Fprintln(cli.out, path)
	return nil
}

// printPage writes the printable page next to the exports; open it in a browser to print.
func (cli *commandLine) printPage(args []string) error {
	fs := cli.newFlagSet("print")
	date := dateFlag(fs)
	dir := fs.String("out", ".", "Output directory.")
	if err := parse(fs, args); err != nil {
		return err
	}
	sh, err := cli.sheet(*date)
	if err != nil {
		return err
	}
	page, err := cli.page(*date)
	if err != nil {
		return err
	}

	path := filepath.Join(*dir, export.Filename(sh, "html"))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating print file")
	}
	data := views.PrintData{
		Institution: core.Conf.GetString("institution"),
		Faculty:     core.Conf.GetString("faculty"),
		Page:        page,
	}
	if err := views.RenderPrint(f, data); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "rendering print page")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing print file")
	}
	fmt.Fprintln(cli.out, path)
	return nil
}
