package views

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderText writes p as plain-text tables for a terminal.
func RenderText(w io.Writer, p Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Docente:\t%s\n", p.Header.Teacher)
	fmt.Fprintf(tw, "Clase:\t%s\n", p.Header.Class)
	fmt.Fprintf(tw, "Gestión / Período:\t%s / %s\n", p.Header.AcademicTerm, p.Header.Period)
	fmt.Fprintf(tw, "Fecha:\t%s\n\n", p.Header.Date)

	if p.Empty != "" {
		fmt.Fprintln(tw, p.Empty)
	}
	if len(p.Rows) > 0 {
		fmt.Fprintln(tw, "#\tRU\tCI\tCorreo\tNombre\tEstado\tHora")
		for _, r := range p.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Index, r.RegistrationNumber, r.NationalID, r.Email, r.Name, r.StatusLabel, r.Time)
		}
	}
	fmt.Fprintf(tw, "\nTotal: %d  Presentes: %d  Ausentes: %d\n\n", p.Stats.Total, p.Stats.Present, p.Stats.Absent)

	if p.EmptyDates != "" {
		fmt.Fprintln(tw, "Fechas: "+p.EmptyDates)
	} else {
		chips := make([]string, 0, len(p.Dates))
		for _, d := range p.Dates {
			chips = append(chips, d.String())
		}
		fmt.Fprintln(tw, "Fechas: "+strings.Join(chips, " "))
	}
	fmt.Fprintln(tw)

	if err := tw.Flush(); err != nil {
		return err
	}
	return RenderSummary(w, p)
}

// RenderSummary writes the summary table of p.
func RenderSummary(w io.Writer, p Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Resumen")
	if p.EmptySummary != "" {
		fmt.Fprintln(tw, p.EmptySummary)
		return tw.Flush()
	}
	fmt.Fprintln(tw, "#\tRU\tCI\tNombre\tPresentes\tAusentes\t% Asistencia")
	for _, r := range p.Summary {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Index, r.RegistrationNumber, r.NationalID, r.Name, r.Present, r.Absent, r.PercentageLabel())
	}
	return tw.Flush()
}

// RenderTeachers writes the login screen list.
func RenderTeachers(w io.Writer, names []string) error {
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, MsgNoTeachers)
		return err
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, "- "+n); err != nil {
			return err
		}
	}
	return nil
}

// RenderClasses writes the class options, marking the active one.
func RenderClasses(w io.Writer, opts []ClassOption) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range opts {
		mark := " "
		if o.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", mark, o.ID, o.Label)
	}
	return tw.Flush()
}
